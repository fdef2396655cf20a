package command

import (
	"github.com/fitbook/fitbook/internal/model"
)

// Edit merges a descriptor into the client at Index (0-based, filtered view).
type Edit struct {
	Index int
	Desc  EditDescriptor
}

func (c Edit) Execute(m *model.Model) (Result, error) {
	_, after, err := editAt(m, c.Index, c.Desc)
	if err != nil {
		return Result{}, err
	}
	return resultf("Edited Client: %s", after), nil
}

// Delete removes the client at Index (0-based, filtered view).
type Delete struct {
	Index int
}

func (c Delete) Execute(m *model.Model) (Result, error) {
	target, err := m.At(c.Index)
	if err != nil {
		return Result{}, err
	}
	if err := m.Delete(target); err != nil {
		return Result{}, err
	}
	return resultf("Deleted Client: %s", target), nil
}
