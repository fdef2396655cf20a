package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/fitbook/fitbook/internal/client"
	"github.com/fitbook/fitbook/internal/command"
	"github.com/fitbook/fitbook/internal/errors"
)

var textSearchPrefixes = []struct {
	prefix Prefix
	field  client.Field
}{
	{PrefixName, client.FieldName},
	{PrefixPhone, client.FieldPhone},
	{PrefixEmail, client.FieldEmail},
	{PrefixAddress, client.FieldAddress},
	{PrefixNote, client.FieldNote},
}

func parseFind(args string) (command.Command, error) {
	am := Tokenize(args, PrefixName, PrefixPhone, PrefixEmail, PrefixAddress, PrefixNote,
		PrefixTag, PrefixWeight, PrefixHeight, PrefixExercise)

	keywords := strings.Join(strings.Fields(am.Preamble()), " ")
	if keywords != "" && am.Has(PrefixName) {
		return nil, errors.NewInvalidCommandFormat(command.UsageFind)
	}
	if err := am.VerifyNoDuplicates(singleValuedClientPrefixes...); err != nil {
		return nil, err
	}

	var criteria []client.Criterion
	if keywords != "" {
		criteria = append(criteria, client.Criterion{Field: client.FieldName, Query: client.TextQuery{Text: keywords}})
	}

	for _, tp := range textSearchPrefixes {
		if raw, ok := am.Value(tp.prefix); ok {
			criteria = append(criteria, client.Criterion{Field: tp.field, Query: client.TextQuery{Text: strings.TrimSpace(raw)}})
		}
	}

	if am.Has(PrefixTag) {
		criteria = append(criteria, client.Criterion{Field: client.FieldTags, Query: client.TagQuery{Tags: nonBlank(am.AllValues(PrefixTag))}})
	}
	if am.Has(PrefixExercise) {
		criteria = append(criteria, client.Criterion{Field: client.FieldExercises, Query: client.ExerciseQuery{Names: nonBlank(am.AllValues(PrefixExercise))}})
	}

	for _, rp := range []struct {
		prefix Prefix
		field  client.Field
	}{{PrefixWeight, client.FieldWeight}, {PrefixHeight, client.FieldHeight}} {
		raw, ok := am.Value(rp.prefix)
		if !ok {
			continue
		}
		q, err := ParseRange(raw)
		if err != nil {
			return nil, err
		}
		criteria = append(criteria, client.Criterion{Field: rp.field, Query: q})
	}

	if len(criteria) == 0 {
		return nil, errors.NewInvalidCommandFormat(command.UsageFind)
	}
	return command.Find{Criteria: criteria}, nil
}

// ParseRange parses "LOW, HIGH" into a bounded range. A blank value is the
// empty range, which asks for clients that have any value.
func ParseRange(raw string) (client.RangeQuery, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return client.RangeQuery{}, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return client.RangeQuery{}, errors.NewInvalidRange(s)
	}
	low, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	high, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil || math.IsNaN(low) || math.IsNaN(high) || low > high {
		return client.RangeQuery{}, errors.NewInvalidRange(s)
	}
	return client.NewRange(low, high), nil
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
