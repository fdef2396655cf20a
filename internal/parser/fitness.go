package parser

import (
	"strings"

	"github.com/fitbook/fitbook/internal/client"
	"github.com/fitbook/fitbook/internal/command"
	"github.com/fitbook/fitbook/internal/errors"
)

func parseFitAdd(args string) (command.Command, error) {
	am := Tokenize(args, PrefixName, PrefixSets, PrefixReps, PrefixRest)
	index, err := parseIndex(am.Preamble(), command.UsageFitAdd)
	if err != nil {
		return nil, err
	}
	if err := am.VerifyNoDuplicates(PrefixName, PrefixSets, PrefixReps, PrefixRest); err != nil {
		return nil, err
	}
	if !am.Has(PrefixName) {
		return nil, errors.NewInvalidCommandFormat(command.UsageFitAdd)
	}

	cmd := command.FitAdd{Index: index}
	if cmd.Name, err = trimmedValue(am, PrefixName, client.ValidateExerciseName); err != nil {
		return nil, err
	}
	cmd.Name = strings.Join(strings.Fields(cmd.Name), " ")

	for _, n := range []struct {
		prefix Prefix
		parse  func(string) (int, error)
		dst    **int
	}{
		{PrefixSets, client.ParseSets, &cmd.Sets},
		{PrefixReps, client.ParseReps, &cmd.Reps},
		{PrefixRest, client.ParseRest, &cmd.Rest},
	} {
		raw, ok := am.Value(n.prefix)
		if !ok {
			continue
		}
		v, err := n.parse(raw)
		if err != nil {
			return nil, err
		}
		*n.dst = &v
	}
	return cmd, nil
}

func parseFitDelete(args string) (command.Command, error) {
	am := Tokenize(args, PrefixName, PrefixAll)
	index, err := parseIndex(am.Preamble(), command.UsageFitDelete)
	if err != nil {
		return nil, err
	}
	if err := am.VerifyNoDuplicates(PrefixName, PrefixAll); err != nil {
		return nil, err
	}
	if am.Has(PrefixName) == am.Has(PrefixAll) {
		return nil, errors.NewInvalidCommandFormat(command.UsageFitDelete)
	}

	if am.Has(PrefixAll) {
		if rest, _ := am.Value(PrefixAll); strings.TrimSpace(rest) != "" {
			return nil, errors.NewInvalidCommandFormat(command.UsageFitDelete)
		}
		return command.FitDelete{Index: index, All: true}, nil
	}

	name, err := trimmedValue(am, PrefixName, client.ValidateExerciseName)
	if err != nil {
		return nil, err
	}
	return command.FitDelete{Index: index, Name: name}, nil
}

func parseClear(args string) (command.Command, error) {
	am := Tokenize(args, PrefixConfirm)
	if strings.TrimSpace(am.Preamble()) != "" {
		return nil, errors.NewInvalidCommandFormat(command.UsageClear)
	}
	if rest, ok := am.Value(PrefixConfirm); ok && strings.TrimSpace(rest) != "" {
		return nil, errors.NewInvalidCommandFormat(command.UsageClear)
	}
	return command.Clear{Confirmed: am.Has(PrefixConfirm)}, nil
}
