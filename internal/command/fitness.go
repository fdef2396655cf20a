package command

import (
	"github.com/fitbook/fitbook/internal/client"
	"github.com/fitbook/fitbook/internal/errors"
	"github.com/fitbook/fitbook/internal/model"
)

// FitAdd adds an exercise to the client at Index, overwriting one of the
// same name. Omitted numbers fall back to the existing exercise's values,
// or to the defaults for a new exercise.
type FitAdd struct {
	Index int
	Name  string
	Sets  *int
	Reps  *int
	Rest  *int
}

func (c FitAdd) Execute(m *model.Model) (Result, error) {
	target, err := m.At(c.Index)
	if err != nil {
		return Result{}, err
	}

	ex := client.Exercise{Name: c.Name, Sets: client.DefaultSets, Reps: client.DefaultReps, Rest: client.DefaultRest}
	existing, updating := target.Exercises().Get(c.Name)
	if updating {
		ex.Sets, ex.Reps, ex.Rest = existing.Sets, existing.Reps, existing.Rest
	}
	if c.Sets != nil {
		ex.Sets = *c.Sets
	}
	if c.Reps != nil {
		ex.Reps = *c.Reps
	}
	if c.Rest != nil {
		ex.Rest = *c.Rest
	}

	set := target.Exercises().With(ex)
	_, after, err := editAt(m, c.Index, EditDescriptor{Exercises: &set})
	if err != nil {
		return Result{}, err
	}
	if updating {
		return resultf("Updated exercise %s for %s", ex, after.Name()), nil
	}
	return resultf("Added exercise %s for %s", ex, after.Name()), nil
}

// FitDelete removes one named exercise, or every exercise when All is set.
type FitDelete struct {
	Index int
	Name  string
	All   bool
}

func (c FitDelete) Execute(m *model.Model) (Result, error) {
	target, err := m.At(c.Index)
	if err != nil {
		return Result{}, err
	}

	var set client.ExerciseSet
	if c.All {
		if target.Exercises().IsEmpty() {
			return Result{}, errors.NewNothingToDelete("exercises")
		}
	} else {
		var found bool
		set, found = target.Exercises().Without(c.Name)
		if !found {
			return Result{}, errors.NewExerciseNotFound(c.Name)
		}
	}

	_, after, err := editAt(m, c.Index, EditDescriptor{Exercises: &set})
	if err != nil {
		return Result{}, err
	}
	if c.All {
		return resultf("Deleted all exercises from %s", after.Name()), nil
	}
	return resultf("Deleted exercise %s from %s", c.Name, after.Name()), nil
}
