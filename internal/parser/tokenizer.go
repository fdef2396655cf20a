package parser

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fitbook/fitbook/internal/errors"
)

// ArgMultimap maps each prefix to the values that followed it, in order.
type ArgMultimap struct {
	preamble string
	values   map[Prefix][]string
}

// Preamble returns the text before the first recognized prefix, untrimmed.
func (a ArgMultimap) Preamble() string { return a.preamble }

// Value returns the last value given for p.
func (a ArgMultimap) Value(p Prefix) (string, bool) {
	vs := a.values[p]
	if len(vs) == 0 {
		return "", false
	}
	return vs[len(vs)-1], true
}

// AllValues returns every value given for p. The slice is empty when p is absent.
func (a ArgMultimap) AllValues(p Prefix) []string {
	out := make([]string, len(a.values[p]))
	copy(out, a.values[p])
	return out
}

// Has reports whether p occurred at least once.
func (a ArgMultimap) Has(p Prefix) bool { return len(a.values[p]) > 0 }

// VerifyNoDuplicates fails when any of prefixes occurred more than once.
func (a ArgMultimap) VerifyNoDuplicates(prefixes ...Prefix) error {
	var dup []string
	for _, p := range prefixes {
		if len(a.values[p]) > 1 {
			dup = append(dup, string(p))
		}
	}
	if len(dup) > 0 {
		return errors.NewDuplicateField(dup)
	}
	return nil
}

type prefixPosition struct {
	prefix Prefix
	start  int
}

// Tokenize splits args into a preamble and per-prefix values. A prefix is
// recognized only at the start of args or right after whitespace. Values are
// not trimmed.
func Tokenize(args string, prefixes ...Prefix) ArgMultimap {
	var positions []prefixPosition
	for _, p := range prefixes {
		positions = append(positions, findPrefixPositions(args, p)...)
	}
	sort.Slice(positions, func(i, j int) bool { return positions[i].start < positions[j].start })

	out := ArgMultimap{values: make(map[Prefix][]string)}
	if len(positions) == 0 {
		out.preamble = args
		return out
	}

	out.preamble = args[:positions[0].start]
	for i, pos := range positions {
		end := len(args)
		if i+1 < len(positions) {
			end = positions[i+1].start
		}
		out.values[pos.prefix] = append(out.values[pos.prefix], args[pos.start+len(pos.prefix):end])
	}
	return out
}

func findPrefixPositions(args string, p Prefix) []prefixPosition {
	var out []prefixPosition
	for from := 0; from < len(args); {
		i := strings.Index(args[from:], string(p))
		if i < 0 {
			break
		}
		at := from + i
		if at == 0 || precededBySpace(args, at) {
			out = append(out, prefixPosition{prefix: p, start: at})
		}
		from = at + 1
	}
	return out
}

func precededBySpace(s string, at int) bool {
	r, _ := utf8.DecodeLastRuneInString(s[:at])
	return unicode.IsSpace(r)
}
