package storage

import (
	"fmt"
	"time"

	"github.com/fitbook/fitbook/internal/client"
)

// SchemaVersion is written into file snapshots and JSONL export headers.
const SchemaVersion = 1

// Record is the serialized form of a client shared by the file backends and
// JSONL export.
type Record struct {
	ID        string              `json:"id" yaml:"id"`
	Name      string              `json:"name" yaml:"name"`
	Phone     string              `json:"phone" yaml:"phone"`
	Email     string              `json:"email,omitempty" yaml:"email,omitempty"`
	Address   string              `json:"address,omitempty" yaml:"address,omitempty"`
	Note      string              `json:"note,omitempty" yaml:"note,omitempty"`
	Tags      []string            `json:"tags,omitempty" yaml:"tags,omitempty"`
	Weight    []ObservationRecord `json:"weight,omitempty" yaml:"weight,omitempty"`
	Height    []ObservationRecord `json:"height,omitempty" yaml:"height,omitempty"`
	Exercises []ExerciseRecord    `json:"exercises,omitempty" yaml:"exercises,omitempty"`
}

// ObservationRecord is one series entry. At is a Unix timestamp in seconds.
type ObservationRecord struct {
	At    int64   `json:"at" yaml:"at"`
	Value float64 `json:"value" yaml:"value"`
}

// ExerciseRecord is one exercise. Rest is in seconds.
type ExerciseRecord struct {
	Name string `json:"name" yaml:"name"`
	Sets int    `json:"sets" yaml:"sets"`
	Reps int    `json:"reps" yaml:"reps"`
	Rest int    `json:"rest" yaml:"rest"`
}

// ToRecord converts a client for serialization.
func ToRecord(c *client.Client) Record {
	r := Record{
		ID:      c.ID(),
		Name:    c.Name(),
		Phone:   c.Phone(),
		Email:   c.Email(),
		Address: c.Address(),
		Note:    c.Note(),
		Tags:    c.Tags().Values(),
		Weight:  toObservationRecords(c.Weight()),
		Height:  toObservationRecords(c.Height()),
	}
	if len(r.Tags) == 0 {
		r.Tags = nil
	}
	for _, e := range c.Exercises().Items() {
		r.Exercises = append(r.Exercises, ExerciseRecord{Name: e.Name, Sets: e.Sets, Reps: e.Reps, Rest: e.Rest})
	}
	return r
}

// ToRecords converts a client list in order.
func ToRecords(clients []*client.Client) []Record {
	out := make([]Record, len(clients))
	for i, c := range clients {
		out[i] = ToRecord(c)
	}
	return out
}

// FromRecord validates a record and rebuilds the client.
func FromRecord(r Record) (*client.Client, error) {
	d := client.Details{
		Name:    r.Name,
		Phone:   r.Phone,
		Email:   r.Email,
		Address: r.Address,
		Note:    r.Note,
		Tags:    client.NewTagSet(r.Tags...),
		Weight:  fromObservationRecords(r.Weight),
		Height:  fromObservationRecords(r.Height),
	}
	exercises := make([]client.Exercise, len(r.Exercises))
	for i, e := range r.Exercises {
		exercises[i] = client.Exercise{Name: e.Name, Sets: e.Sets, Reps: e.Reps, Rest: e.Rest}
	}
	d.Exercises = client.NewExerciseSet(exercises...)

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return client.Restore(r.ID, d), nil
}

// FromRecords rebuilds a client list. Any invalid record, or two records
// with the same identity, fails the whole conversion.
func FromRecords(records []Record) ([]*client.Client, error) {
	out := make([]*client.Client, 0, len(records))
	for i, r := range records {
		c, err := FromRecord(r)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		for _, prev := range out {
			if prev.IsSameClient(c) {
				return nil, fmt.Errorf("record %d: duplicate client %q (%s)", i+1, c.Name(), c.Phone())
			}
		}
		out = append(out, c)
	}
	return out, nil
}

func toObservationRecords(s client.Series) []ObservationRecord {
	obs := s.Observations()
	if len(obs) == 0 {
		return nil
	}
	out := make([]ObservationRecord, len(obs))
	for i, o := range obs {
		out[i] = ObservationRecord{At: o.At.Unix(), Value: o.Value}
	}
	return out
}

func fromObservationRecords(records []ObservationRecord) client.Series {
	obs := make([]client.Observation, len(records))
	for i, r := range records {
		obs[i] = client.Observation{At: time.Unix(r.At, 0).UTC(), Value: r.Value}
	}
	return client.NewSeries(obs...)
}
