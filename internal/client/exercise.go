package client

import (
	"fmt"
	"strings"

	"github.com/fitbook/fitbook/internal/errors"
)

// Defaults applied by fitadd when a new exercise omits a value.
const (
	DefaultSets = 1
	DefaultReps = 1
	DefaultRest = 0
)

// Exercise is a named training prescription. Two exercises are the same
// exercise when their normalized names match, whatever their numbers.
type Exercise struct {
	Name string
	Sets int
	Reps int
	Rest int // seconds
}

// Key returns the normalized name used for identity.
func (e Exercise) Key() string { return Normalize(e.Name) }

// SameExercise reports whether both exercises share a name.
func (e Exercise) SameExercise(other Exercise) bool { return e.Key() == other.Key() }

// Validate checks every field of the exercise.
func (e Exercise) Validate() error {
	if err := ValidateExerciseName(e.Name); err != nil {
		return err
	}
	switch {
	case e.Sets < 1 || e.Sets > MaxSets:
		return errors.NewInvalidValue("sets", MessageSets)
	case e.Reps < 1 || e.Reps > MaxReps:
		return errors.NewInvalidValue("reps", MessageReps)
	case e.Rest < 0 || e.Rest > MaxRest:
		return errors.NewInvalidValue("rest", MessageRest)
	}
	return nil
}

func (e Exercise) String() string {
	return fmt.Sprintf("%s (%d sets x %d reps, %ds rest)", e.Name, e.Sets, e.Reps, e.Rest)
}

// ExerciseSet is an immutable set of exercises keyed by normalized name,
// kept in insertion order.
type ExerciseSet struct {
	items []Exercise
}

// NewExerciseSet builds a set; later exercises overwrite earlier ones of the same name.
func NewExerciseSet(exercises ...Exercise) ExerciseSet {
	s := ExerciseSet{}
	for _, e := range exercises {
		s = s.With(e)
	}
	return s
}

// With returns a set containing e, replacing any exercise of the same name in place.
func (s ExerciseSet) With(e Exercise) ExerciseSet {
	out := make([]Exercise, 0, len(s.items)+1)
	replaced := false
	for _, cur := range s.items {
		if cur.SameExercise(e) {
			out = append(out, e)
			replaced = true
			continue
		}
		out = append(out, cur)
	}
	if !replaced {
		out = append(out, e)
	}
	return ExerciseSet{items: out}
}

// Without returns a set lacking the named exercise and whether it was present.
func (s ExerciseSet) Without(name string) (ExerciseSet, bool) {
	key := Normalize(name)
	out := make([]Exercise, 0, len(s.items))
	found := false
	for _, cur := range s.items {
		if cur.Key() == key {
			found = true
			continue
		}
		out = append(out, cur)
	}
	return ExerciseSet{items: out}, found
}

// Get looks up an exercise by name.
func (s ExerciseSet) Get(name string) (Exercise, bool) {
	key := Normalize(name)
	for _, cur := range s.items {
		if cur.Key() == key {
			return cur, true
		}
	}
	return Exercise{}, false
}

// Has reports whether the named exercise is present.
func (s ExerciseSet) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

func (s ExerciseSet) Len() int      { return len(s.items) }
func (s ExerciseSet) IsEmpty() bool { return len(s.items) == 0 }

// Items returns a copy of the exercises in insertion order.
func (s ExerciseSet) Items() []Exercise {
	out := make([]Exercise, len(s.items))
	copy(out, s.items)
	return out
}

// Equal compares contents, ignoring order. Unlike SameExercise, every
// field of each exercise must match.
func (s ExerciseSet) Equal(other ExerciseSet) bool {
	if len(s.items) != len(other.items) {
		return false
	}
	for _, e := range s.items {
		o, ok := other.Get(e.Name)
		if !ok || o.Sets != e.Sets || o.Reps != e.Reps || o.Rest != e.Rest {
			return false
		}
	}
	return true
}

func (s ExerciseSet) String() string {
	parts := make([]string, len(s.items))
	for i, e := range s.items {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}
