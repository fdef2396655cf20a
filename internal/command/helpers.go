package command

import (
	"github.com/fitbook/fitbook/internal/client"
	"github.com/fitbook/fitbook/internal/model"
)

// editAt applies desc to the client at a 0-based filtered index, substitutes
// the result in place and resets the view to show every client.
func editAt(m *model.Model, index int, desc EditDescriptor) (before, after *client.Client, err error) {
	before, err = m.At(index)
	if err != nil {
		return nil, nil, err
	}
	after, err = desc.Apply(before, m.Now())
	if err != nil {
		return nil, nil, err
	}
	if err := m.Set(before, after); err != nil {
		return nil, nil, err
	}
	m.ShowAll()
	return before, after, nil
}
