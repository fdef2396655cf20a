package command

import (
	stderrors "errors"
	"time"

	"github.com/fitbook/fitbook/internal/client"
	"github.com/fitbook/fitbook/internal/errors"
)

// SeriesOp is the change an edit makes to a weight or height series.
type SeriesOp int

const (
	SeriesKeep SeriesOp = iota
	SeriesAppend
	SeriesRemoveLatest
	SeriesReplaceLatest
)

// SeriesEdit pairs an operation with its value. Value is ignored for
// SeriesKeep and SeriesRemoveLatest.
type SeriesEdit struct {
	Op    SeriesOp
	Value float64
}

// Apply runs the edit on s, stamping new observations with now.
func (e SeriesEdit) Apply(s client.Series, now time.Time, field string) (client.Series, error) {
	switch e.Op {
	case SeriesAppend:
		return s.Append(now, e.Value), nil

	case SeriesRemoveLatest:
		out, err := s.RemoveLatest()
		if stderrors.Is(err, client.ErrEmptySeries) {
			return s, errors.NewEmptySeries(field)
		}
		return out, err

	case SeriesReplaceLatest:
		if !s.IsEmpty() {
			s, _ = s.RemoveLatest()
		}
		return s.Append(now, e.Value), nil
	}
	return s, nil
}

// EditDescriptor carries optional replacement values for a client's fields.
// A nil field, or SeriesKeep, carries the existing value forward.
type EditDescriptor struct {
	Name      *string
	Phone     *string
	Email     *string
	Address   *string
	Note      *string
	Tags      *client.TagSet
	Weight    SeriesEdit
	Height    SeriesEdit
	Exercises *client.ExerciseSet
}

// IsAnyFieldEdited reports whether the descriptor changes anything.
func (d EditDescriptor) IsAnyFieldEdited() bool {
	return d.Name != nil || d.Phone != nil || d.Email != nil || d.Address != nil ||
		d.Note != nil || d.Tags != nil || d.Exercises != nil ||
		d.Weight.Op != SeriesKeep || d.Height.Op != SeriesKeep
}

// Apply builds the edited client from c. The result keeps c's ID.
func (d EditDescriptor) Apply(c *client.Client, now time.Time) (*client.Client, error) {
	next := c.Details()

	if d.Name != nil {
		next.Name = *d.Name
	}
	if d.Phone != nil {
		next.Phone = *d.Phone
	}
	if d.Email != nil {
		next.Email = *d.Email
	}
	if d.Address != nil {
		next.Address = *d.Address
	}
	if d.Note != nil {
		next.Note = *d.Note
	}
	if d.Tags != nil {
		next.Tags = *d.Tags
	}
	if d.Exercises != nil {
		next.Exercises = *d.Exercises
	}

	var err error
	if next.Weight, err = d.Weight.Apply(next.Weight, now, "weight"); err != nil {
		return nil, err
	}
	if next.Height, err = d.Height.Apply(next.Height, now, "height"); err != nil {
		return nil, err
	}

	return c.WithDetails(next), nil
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string { return &s }
