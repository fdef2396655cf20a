package client

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Details holds every domain field of a client. Empty strings and empty
// collections stand in for "not provided".
type Details struct {
	Name      string
	Phone     string
	Email     string
	Address   string
	Note      string
	Tags      TagSet
	Weight    Series
	Height    Series
	Exercises ExerciseSet
}

// Client is an immutable client record. Commands replace clients rather
// than modify them.
type Client struct {
	// id is a ULID that keys the record in storage. It survives edits and
	// plays no part in equality or identity.
	id string
	d  Details
}

// NewID generates a new ULID.
func NewID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulid.Monotonic(rand.Reader, 0)).String()
}

// New creates a client with a fresh ID.
func New(d Details) *Client {
	return &Client{id: NewID(), d: d}
}

// Restore recreates a stored client with its existing ID.
func Restore(id string, d Details) *Client {
	if id == "" {
		id = NewID()
	}
	return &Client{id: id, d: d}
}

// WithDetails returns a new client carrying c's ID and the given details.
func (c *Client) WithDetails(d Details) *Client {
	return &Client{id: c.id, d: d}
}

func (c *Client) ID() string             { return c.id }
func (c *Client) Name() string           { return c.d.Name }
func (c *Client) Phone() string          { return c.d.Phone }
func (c *Client) Email() string          { return c.d.Email }
func (c *Client) Address() string        { return c.d.Address }
func (c *Client) Note() string           { return c.d.Note }
func (c *Client) Tags() TagSet           { return c.d.Tags }
func (c *Client) Weight() Series         { return c.d.Weight }
func (c *Client) Height() Series         { return c.d.Height }
func (c *Client) Exercises() ExerciseSet { return c.d.Exercises }

// Details returns a copy of the client's fields.
func (c *Client) Details() Details { return c.d }

// Value returns the attribute for a field.
func (c *Client) Value(f Field) Value {
	switch f {
	case FieldName:
		return Text(c.d.Name)
	case FieldPhone:
		return Text(c.d.Phone)
	case FieldEmail:
		return Text(c.d.Email)
	case FieldAddress:
		return Text(c.d.Address)
	case FieldNote:
		return Text(c.d.Note)
	case FieldTags:
		return c.d.Tags
	case FieldWeight:
		return c.d.Weight
	case FieldHeight:
		return c.d.Height
	case FieldExercises:
		return c.d.Exercises
	}
	return nil
}

// IsSameClient reports whether both records denote the same person:
// name and phone match.
func (c *Client) IsSameClient(other *Client) bool {
	if other == nil {
		return false
	}
	return c.d.Name == other.d.Name && c.d.Phone == other.d.Phone
}

// Equal compares every domain field. IDs are ignored.
func (c *Client) Equal(other *Client) bool {
	if other == nil {
		return false
	}
	for _, f := range Fields {
		if !Equal(c.Value(f), other.Value(f)) {
			return false
		}
	}
	return true
}

// Validate checks every field against its constraint.
func (d Details) Validate() error {
	if err := ValidateName(d.Name); err != nil {
		return err
	}
	if err := ValidatePhone(d.Phone); err != nil {
		return err
	}
	if err := ValidateEmail(d.Email); err != nil {
		return err
	}
	if err := ValidateAddress(d.Address); err != nil {
		return err
	}
	for _, tag := range d.Tags.Values() {
		if err := ValidateTag(tag); err != nil {
			return err
		}
	}
	for _, o := range d.Weight.Observations() {
		if err := CheckWeight(o.Value); err != nil {
			return err
		}
	}
	for _, o := range d.Height.Observations() {
		if err := CheckHeight(o.Value); err != nil {
			return err
		}
	}
	for _, e := range d.Exercises.Items() {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) String() string {
	var b strings.Builder
	b.WriteString(c.d.Name)
	b.WriteString("; Phone: ")
	b.WriteString(c.d.Phone)
	if c.d.Email != "" {
		b.WriteString("; Email: ")
		b.WriteString(c.d.Email)
	}
	if c.d.Address != "" {
		b.WriteString("; Address: ")
		b.WriteString(c.d.Address)
	}
	if w, ok := c.d.Weight.Latest(); ok {
		fmt.Fprintf(&b, "; Weight: %g kg", w.Value)
	}
	if h, ok := c.d.Height.Latest(); ok {
		fmt.Fprintf(&b, "; Height: %g cm", h.Value)
	}
	if c.d.Note != "" {
		b.WriteString("; Note: ")
		b.WriteString(c.d.Note)
	}
	if !c.d.Tags.IsEmpty() {
		b.WriteString("; Tags: ")
		b.WriteString(c.d.Tags.String())
	}
	if !c.d.Exercises.IsEmpty() {
		b.WriteString("; Exercises: ")
		b.WriteString(c.d.Exercises.String())
	}
	return b.String()
}
