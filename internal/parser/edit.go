package parser

import (
	"github.com/fitbook/fitbook/internal/client"
	"github.com/fitbook/fitbook/internal/command"
	"github.com/fitbook/fitbook/internal/errors"
)

func parseEdit(args string) (command.Command, error) {
	am := Tokenize(args, PrefixName, PrefixPhone, PrefixEmail, PrefixAddress, PrefixNote,
		PrefixTag, PrefixWeight, PrefixHeight)

	index, err := parseIndex(am.Preamble(), command.UsageEdit)
	if err != nil {
		return nil, err
	}
	if err := am.VerifyNoDuplicates(singleValuedClientPrefixes...); err != nil {
		return nil, err
	}

	var desc command.EditDescriptor
	fields := []struct {
		prefix   Prefix
		validate func(string) error
		dst      **string
	}{
		{PrefixName, client.ValidateName, &desc.Name},
		{PrefixPhone, client.ValidatePhone, &desc.Phone},
		{PrefixEmail, client.ValidateEmail, &desc.Email},
		{PrefixAddress, client.ValidateAddress, &desc.Address},
		{PrefixNote, nil, &desc.Note},
	}
	for _, f := range fields {
		if !am.Has(f.prefix) {
			continue
		}
		v, err := trimmedValue(am, f.prefix, f.validate)
		if err != nil {
			return nil, err
		}
		*f.dst = &v
	}

	if am.Has(PrefixTag) {
		tags, err := parseTags(am.AllValues(PrefixTag))
		if err != nil {
			return nil, err
		}
		desc.Tags = &tags
	}

	if desc.Weight, err = replaceOrRemove(am, PrefixWeight, client.ParseWeight); err != nil {
		return nil, err
	}
	if desc.Height, err = replaceOrRemove(am, PrefixHeight, client.ParseHeight); err != nil {
		return nil, err
	}

	if !desc.IsAnyFieldEdited() {
		return nil, errors.NewNothingToEdit(command.UsageEdit)
	}
	return command.Edit{Index: index, Desc: desc}, nil
}

// replaceOrRemove reads an edit's weight or height. A zero or blank value
// removes the latest entry; anything else replaces it.
func replaceOrRemove(am ArgMultimap, p Prefix, parse func(string) (float64, error)) (command.SeriesEdit, error) {
	raw, ok := am.Value(p)
	if !ok {
		return command.SeriesEdit{}, nil
	}
	if client.IsZeroMeasurement(raw) {
		return command.SeriesEdit{Op: command.SeriesRemoveLatest}, nil
	}
	v, err := parse(raw)
	if err != nil {
		return command.SeriesEdit{}, err
	}
	return command.SeriesEdit{Op: command.SeriesReplaceLatest, Value: v}, nil
}
