// Package parser turns a line of user input into a command.
package parser

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/fitbook/fitbook/internal/command"
	"github.com/fitbook/fitbook/internal/errors"
)

type parseFunc func(args string) (command.Command, error)

type entry struct {
	parse parseFunc
	usage string
}

var registry = map[string]entry{
	command.WordAdd:       {parseAdd, command.UsageAdd},
	command.WordEdit:      {parseEdit, command.UsageEdit},
	command.WordDelete:    {parseDelete, command.UsageDelete},
	command.WordFind:      {parseFind, command.UsageFind},
	command.WordList:      {noArgs(command.List{}), command.UsageList},
	command.WordWeight:    {parseWeight, command.UsageWeight},
	command.WordHeight:    {parseHeight, command.UsageHeight},
	command.WordNote:      {parseNote, command.UsageNote},
	command.WordEditNote:  {parseEditNote, command.UsageEditNote},
	command.WordFitAdd:    {parseFitAdd, command.UsageFitAdd},
	command.WordFitDelete: {parseFitDelete, command.UsageFitDelete},
	command.WordClear:     {parseClear, command.UsageClear},
	command.WordHelp:      {noArgs(command.Help{}), command.UsageHelp},
	command.WordExit:      {noArgs(command.Exit{}), command.UsageExit},
}

// Parse parses one line of input. The first word selects the command; the
// rest is handed to that command's parser. Parse errors carry the command's
// usage text.
func Parse(line string) (command.Command, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil, errors.NewInvalidCommandFormat(command.UsageHelp)
	}

	word, args := splitCommandWord(trimmed)
	e, ok := registry[word]
	if !ok {
		return nil, errors.NewUnknownCommand(word, suggest(word))
	}

	cmd, err := e.parse(args)
	if err != nil {
		return nil, errors.WithUsage(err, e.usage)
	}
	return cmd, nil
}

// CommandWord returns the first word of a line.
func CommandWord(line string) string {
	word, _ := splitCommandWord(strings.TrimSpace(line))
	return word
}

// splitCommandWord splits off the first word. args keeps its leading
// whitespace so a prefix right after the word is still recognized.
func splitCommandWord(line string) (word, args string) {
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return line, ""
	}
	return line[:i], line[i:]
}

// suggest returns the closest known command word, or "" if none is close.
func suggest(word string) string {
	ranks := fuzzy.RankFindFold(word, command.Words)
	if len(ranks) == 0 {
		// Also try the other direction so a word with an extra letter still finds its command.
		for _, w := range command.Words {
			if fuzzy.MatchFold(w, word) {
				return w
			}
		}
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}

func noArgs(c command.Command) parseFunc {
	return func(string) (command.Command, error) { return c, nil }
}

// parseIndex converts a 1-based index from user input to a 0-based one.
func parseIndex(raw, usage string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, errors.NewMissingIndex(usage)
	}
	if strings.HasPrefix(s, "+") {
		return 0, errors.NewInvalidIndex(s, usage)
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.NewInvalidIndex(s, usage)
	}
	return n - 1, nil
}
