package command

import (
	"github.com/fitbook/fitbook/internal/model"
)

// Weight appends to or removes from the weight series of the client at Index.
type Weight struct {
	Index int
	Edit  SeriesEdit
}

func (c Weight) Execute(m *model.Model) (Result, error) {
	_, after, err := editAt(m, c.Index, EditDescriptor{Weight: c.Edit})
	if err != nil {
		return Result{}, err
	}
	if c.Edit.Op == SeriesRemoveLatest {
		return resultf("Removed latest weight of %s", after.Name()), nil
	}
	return resultf("Recorded weight %g kg for %s", c.Edit.Value, after.Name()), nil
}

// Height appends to or removes from the height series of the client at Index.
type Height struct {
	Index int
	Edit  SeriesEdit
}

func (c Height) Execute(m *model.Model) (Result, error) {
	_, after, err := editAt(m, c.Index, EditDescriptor{Height: c.Edit})
	if err != nil {
		return Result{}, err
	}
	if c.Edit.Op == SeriesRemoveLatest {
		return resultf("Removed latest height of %s", after.Name()), nil
	}
	return resultf("Recorded height %g cm for %s", c.Edit.Value, after.Name()), nil
}
