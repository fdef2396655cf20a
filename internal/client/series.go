package client

import (
	stderrors "errors"
	"sort"
	"time"
)

// ErrEmptySeries is returned when removing from a series with no observations.
var ErrEmptySeries = stderrors.New("series is empty")

// Observation is a single timestamped measurement.
type Observation struct {
	At    time.Time
	Value float64
}

// Series is an immutable, strictly timestamp-ordered measurement history.
// Timestamps are whole seconds; appending at an existing timestamp overwrites it.
type Series struct {
	obs []Observation
}

// NewSeries builds a series from observations in any order.
// Later entries win when two share a timestamp.
func NewSeries(observations ...Observation) Series {
	s := Series{}
	for _, o := range observations {
		s = s.Append(o.At, o.Value)
	}
	return s
}

// Append returns a new series with v recorded at at.
func (s Series) Append(at time.Time, v float64) Series {
	at = at.Truncate(time.Second)
	i := sort.Search(len(s.obs), func(i int) bool { return !s.obs[i].At.Before(at) })

	out := make([]Observation, 0, len(s.obs)+1)
	out = append(out, s.obs[:i]...)
	out = append(out, Observation{At: at, Value: v})
	if i < len(s.obs) && s.obs[i].At.Equal(at) {
		out = append(out, s.obs[i+1:]...)
	} else {
		out = append(out, s.obs[i:]...)
	}
	return Series{obs: out}
}

// RemoveLatest returns a new series without its most recent observation.
func (s Series) RemoveLatest() (Series, error) {
	if len(s.obs) == 0 {
		return s, ErrEmptySeries
	}
	out := make([]Observation, len(s.obs)-1)
	copy(out, s.obs)
	return Series{obs: out}, nil
}

// Latest returns the most recent observation.
func (s Series) Latest() (Observation, bool) {
	if len(s.obs) == 0 {
		return Observation{}, false
	}
	return s.obs[len(s.obs)-1], true
}

// Len returns the number of observations.
func (s Series) Len() int { return len(s.obs) }

// IsEmpty reports whether the series has no observations.
func (s Series) IsEmpty() bool { return len(s.obs) == 0 }

// Observations returns a copy of the history, oldest first.
func (s Series) Observations() []Observation {
	out := make([]Observation, len(s.obs))
	copy(out, s.obs)
	return out
}

// Equal reports whether both series hold the same observations.
func (s Series) Equal(other Series) bool {
	if len(s.obs) != len(other.obs) {
		return false
	}
	for i := range s.obs {
		if !s.obs[i].At.Equal(other.obs[i].At) || s.obs[i].Value != other.obs[i].Value {
			return false
		}
	}
	return true
}
