package parser

import (
	"strings"
	"unicode"

	"github.com/fitbook/fitbook/internal/client"
	"github.com/fitbook/fitbook/internal/command"
	"github.com/fitbook/fitbook/internal/errors"
)

func parseDelete(args string) (command.Command, error) {
	index, err := parseIndex(args, command.UsageDelete)
	if err != nil {
		return nil, err
	}
	return command.Delete{Index: index}, nil
}

func parseEditNote(args string) (command.Command, error) {
	index, err := parseIndex(args, command.UsageEditNote)
	if err != nil {
		return nil, err
	}
	return command.EditNote{Index: index}, nil
}

// parseNote reads "INDEX [TEXT]". Everything after the index is the note.
func parseNote(args string) (command.Command, error) {
	s := strings.TrimSpace(args)
	raw, text := s, ""
	if i := strings.IndexFunc(s, unicode.IsSpace); i >= 0 {
		raw, text = s[:i], strings.TrimSpace(s[i:])
	}
	index, err := parseIndex(raw, command.UsageNote)
	if err != nil {
		return nil, err
	}
	return command.Note{Index: index, Text: text}, nil
}

func parseWeight(args string) (command.Command, error) {
	am := Tokenize(args, PrefixWeight)
	index, err := parseIndex(am.Preamble(), command.UsageWeight)
	if err != nil {
		return nil, err
	}
	if err := am.VerifyNoDuplicates(PrefixWeight); err != nil {
		return nil, err
	}
	raw, _ := am.Value(PrefixWeight)
	edit, err := appendOrRemove(raw, client.ParseWeight)
	if err != nil {
		return nil, err
	}
	return command.Weight{Index: index, Edit: edit}, nil
}

// parseHeight accepts h/ and, for compatibility with the documented usage, w/.
func parseHeight(args string) (command.Command, error) {
	am := Tokenize(args, PrefixHeight, PrefixWeight)
	index, err := parseIndex(am.Preamble(), command.UsageHeight)
	if err != nil {
		return nil, err
	}
	if err := am.VerifyNoDuplicates(PrefixHeight, PrefixWeight); err != nil {
		return nil, err
	}
	if am.Has(PrefixHeight) && am.Has(PrefixWeight) {
		return nil, errors.NewDuplicateField([]string{string(PrefixHeight), string(PrefixWeight)})
	}

	raw, ok := am.Value(PrefixHeight)
	if !ok {
		raw, _ = am.Value(PrefixWeight)
	}
	edit, err := appendOrRemove(raw, client.ParseHeight)
	if err != nil {
		return nil, err
	}
	return command.Height{Index: index, Edit: edit}, nil
}

// appendOrRemove maps a blank or zero value to removal and anything else to an append.
func appendOrRemove(raw string, parse func(string) (float64, error)) (command.SeriesEdit, error) {
	if client.IsZeroMeasurement(raw) {
		return command.SeriesEdit{Op: command.SeriesRemoveLatest}, nil
	}
	v, err := parse(raw)
	if err != nil {
		return command.SeriesEdit{}, err
	}
	return command.SeriesEdit{Op: command.SeriesAppend, Value: v}, nil
}
