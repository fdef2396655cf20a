package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExerciseSet_WithOverwritesByName(t *testing.T) {
	set := NewExerciseSet(
		Exercise{Name: "squats", Sets: 3, Reps: 10, Rest: 60},
		Exercise{Name: "lunges", Sets: 2, Reps: 8},
	)
	set = set.With(Exercise{Name: "Squats", Sets: 3, Reps: 12, Rest: 60})

	require.Equal(t, 2, set.Len())
	items := set.Items()
	assert.Equal(t, "Squats", items[0].Name, "overwrite keeps position")
	assert.Equal(t, 12, items[0].Reps)
	assert.Equal(t, "lunges", items[1].Name)
}

func TestExerciseSet_Without(t *testing.T) {
	set := NewExerciseSet(Exercise{Name: "squats", Sets: 1, Reps: 1})

	out, found := set.Without("SQUATS")
	assert.True(t, found)
	assert.True(t, out.IsEmpty())
	assert.Equal(t, 1, set.Len(), "receiver unchanged")

	_, found = set.Without("plank")
	assert.False(t, found)
}

func TestExerciseSet_Equal(t *testing.T) {
	a := NewExerciseSet(Exercise{Name: "a", Sets: 1, Reps: 1}, Exercise{Name: "b", Sets: 2, Reps: 2})
	b := NewExerciseSet(Exercise{Name: "b", Sets: 2, Reps: 2}, Exercise{Name: "a", Sets: 1, Reps: 1})
	c := NewExerciseSet(Exercise{Name: "a", Sets: 1, Reps: 5}, Exercise{Name: "b", Sets: 2, Reps: 2})

	assert.True(t, a.Equal(b), "order is ignored")
	assert.False(t, a.Equal(c), "numbers are compared")
}

func TestExercise_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ex      Exercise
		wantErr bool
	}{
		{"valid", Exercise{Name: "squats", Sets: 3, Reps: 10, Rest: 90}, false},
		{"blank name", Exercise{Name: " ", Sets: 1, Reps: 1}, true},
		{"zero sets", Exercise{Name: "x", Sets: 0, Reps: 1}, true},
		{"too many reps", Exercise{Name: "x", Sets: 1, Reps: 1001}, true},
		{"negative rest", Exercise{Name: "x", Sets: 1, Reps: 1, Rest: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ex.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTagSet(t *testing.T) {
	s := NewTagSet("owes", "friends", "owes")

	assert.Equal(t, []string{"friends", "owes"}, s.Values())
	assert.True(t, s.Has("FRIENDS"))
	assert.Equal(t, "[friends][owes]", s.String())
}
