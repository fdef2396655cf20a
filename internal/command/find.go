package command

import (
	"github.com/fitbook/fitbook/internal/client"
	"github.com/fitbook/fitbook/internal/model"
)

// Find narrows the filtered view to clients matching every criterion.
type Find struct {
	Criteria []client.Criterion
}

func (c Find) Execute(m *model.Model) (Result, error) {
	m.SetFilter(client.Compose(c.Criteria...))
	return resultf("%d clients listed!", len(m.Filtered())), nil
}

// List resets the filtered view to every client.
type List struct{}

func (List) Execute(m *model.Model) (Result, error) {
	m.ShowAll()
	return Result{Message: "Listed all clients"}, nil
}
