package command

import (
	"github.com/fitbook/fitbook/internal/client"
	"github.com/fitbook/fitbook/internal/model"
)

// Add inserts a new client. Weight and Height, when set, become the first
// observation of each series, stamped at execution time.
type Add struct {
	Details client.Details
	Weight  *float64
	Height  *float64
}

func (c Add) Execute(m *model.Model) (Result, error) {
	d := c.Details
	now := m.Now()
	if c.Weight != nil {
		d.Weight = d.Weight.Append(now, *c.Weight)
	}
	if c.Height != nil {
		d.Height = d.Height.Append(now, *c.Height)
	}

	added := client.New(d)
	if err := m.Add(added); err != nil {
		return Result{}, err
	}
	return resultf("New client added: %s", added), nil
}
