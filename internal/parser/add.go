package parser

import (
	"strings"

	"github.com/fitbook/fitbook/internal/client"
	"github.com/fitbook/fitbook/internal/command"
	"github.com/fitbook/fitbook/internal/errors"
)

var singleValuedClientPrefixes = []Prefix{
	PrefixName, PrefixPhone, PrefixEmail, PrefixAddress, PrefixNote, PrefixWeight, PrefixHeight,
}

func parseAdd(args string) (command.Command, error) {
	am := Tokenize(args, PrefixName, PrefixPhone, PrefixEmail, PrefixAddress, PrefixNote,
		PrefixTag, PrefixWeight, PrefixHeight)

	if !am.Has(PrefixName) || !am.Has(PrefixPhone) || strings.TrimSpace(am.Preamble()) != "" {
		return nil, errors.NewInvalidCommandFormat(command.UsageAdd)
	}
	if err := am.VerifyNoDuplicates(singleValuedClientPrefixes...); err != nil {
		return nil, err
	}

	var d client.Details
	var err error
	if d.Name, err = trimmedValue(am, PrefixName, client.ValidateName); err != nil {
		return nil, err
	}
	if d.Phone, err = trimmedValue(am, PrefixPhone, client.ValidatePhone); err != nil {
		return nil, err
	}
	if d.Email, err = trimmedValue(am, PrefixEmail, client.ValidateEmail); err != nil {
		return nil, err
	}
	if d.Address, err = trimmedValue(am, PrefixAddress, client.ValidateAddress); err != nil {
		return nil, err
	}
	d.Note, _ = trimmedValue(am, PrefixNote, nil)

	if d.Tags, err = parseTags(am.AllValues(PrefixTag)); err != nil {
		return nil, err
	}

	cmd := command.Add{Details: d}
	if cmd.Weight, err = optionalMeasurement(am, PrefixWeight, client.ParseWeight); err != nil {
		return nil, err
	}
	if cmd.Height, err = optionalMeasurement(am, PrefixHeight, client.ParseHeight); err != nil {
		return nil, err
	}
	return cmd, nil
}

// trimmedValue returns the trimmed last value of p, validated when validate is non-nil.
// An absent prefix yields "".
func trimmedValue(am ArgMultimap, p Prefix, validate func(string) error) (string, error) {
	raw, ok := am.Value(p)
	if !ok {
		return "", nil
	}
	v := strings.TrimSpace(raw)
	if validate != nil {
		if err := validate(v); err != nil {
			return "", err
		}
	}
	return v, nil
}

// parseTags validates tag values. A single empty value yields an empty set.
func parseTags(raw []string) (client.TagSet, error) {
	if len(raw) == 1 && strings.TrimSpace(raw[0]) == "" {
		return client.TagSet{}, nil
	}
	tags := make([]string, 0, len(raw))
	for _, r := range raw {
		t := strings.TrimSpace(r)
		if err := client.ValidateTag(t); err != nil {
			return client.TagSet{}, err
		}
		tags = append(tags, t)
	}
	return client.NewTagSet(tags...), nil
}

// optionalMeasurement parses an initial weight or height. A missing or blank value is nil.
func optionalMeasurement(am ArgMultimap, p Prefix, parse func(string) (float64, error)) (*float64, error) {
	raw, ok := am.Value(p)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	v, err := parse(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
