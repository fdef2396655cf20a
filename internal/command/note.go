package command

import (
	"fmt"

	"github.com/fitbook/fitbook/internal/model"
)

// Note replaces the note of the client at Index. An empty Text clears it.
type Note struct {
	Index int
	Text  string
}

func (c Note) Execute(m *model.Model) (Result, error) {
	text := c.Text
	_, after, err := editAt(m, c.Index, EditDescriptor{Note: &text})
	if err != nil {
		return Result{}, err
	}
	if text == "" {
		return resultf("Removed note from Client: %s", after.Name()), nil
	}
	return resultf("Added note to Client: %s", after.Name()), nil
}

// EditNote suggests a note command prefilled with the client's current note.
// It changes nothing.
type EditNote struct {
	Index int
}

func (c EditNote) Execute(m *model.Model) (Result, error) {
	target, err := m.At(c.Index)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Message:        fmt.Sprintf("Editing note of %s", target.Name()),
		SuggestedInput: fmt.Sprintf("%s %d %s", WordNote, c.Index+1, target.Note()),
	}, nil
}
