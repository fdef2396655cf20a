// Package model holds the in-memory client book: an ordered list of unique
// clients and the filtered view that index-based commands address.
//
// Model has no locking. Callers serialize access.
package model

import (
	stderrors "errors"
	"time"

	"github.com/fitbook/fitbook/internal/client"
	"github.com/fitbook/fitbook/internal/errors"
)

var errClientNotFound = stderrors.New("client is not in the list")

// Model owns the client list and the current filter.
type Model struct {
	clients []*client.Client
	filter  client.Predicate
	clock   func() time.Time
	version uint64
}

// Option configures a Model.
type Option func(*Model)

// WithClock overrides the wall clock used for series timestamps.
func WithClock(clock func() time.Time) Option {
	return func(m *Model) { m.clock = clock }
}

// New creates an empty model showing all clients.
func New(opts ...Option) *Model {
	m := &Model{filter: client.ShowAll, clock: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Now returns the current time truncated to whole seconds.
func (m *Model) Now() time.Time {
	return m.clock().Truncate(time.Second)
}

// Version increases on every change to the client list. Filter changes do not count.
func (m *Model) Version() uint64 { return m.version }

// Size returns the number of clients.
func (m *Model) Size() int { return len(m.clients) }

// Clients returns a copy of the full list in order.
func (m *Model) Clients() []*client.Client {
	out := make([]*client.Client, len(m.clients))
	copy(out, m.clients)
	return out
}

// Filtered returns the clients visible through the current filter, in order.
func (m *Model) Filtered() []*client.Client {
	return client.Filter(m.clients, m.filter)
}

// At returns the client at a 0-based position in the filtered view.
func (m *Model) At(index int) (*client.Client, error) {
	view := m.Filtered()
	if index < 0 || index >= len(view) {
		return nil, errors.NewIndexOutOfRange(index+1, len(view))
	}
	return view[index], nil
}

// Has reports whether a client with the same identity exists.
func (m *Model) Has(c *client.Client) bool {
	for _, cur := range m.clients {
		if cur.IsSameClient(c) {
			return true
		}
	}
	return false
}

// Add appends a client. It fails if a client with the same identity exists.
func (m *Model) Add(c *client.Client) error {
	if m.Has(c) {
		return errors.NewDuplicateClient(c.Name(), c.Phone())
	}
	m.clients = append(m.clients, c)
	m.version++
	return nil
}

// Delete removes target from the list.
func (m *Model) Delete(target *client.Client) error {
	i := m.indexOf(target)
	if i < 0 {
		return errors.NewInternal(errClientNotFound)
	}
	m.clients = append(m.clients[:i:i], m.clients[i+1:]...)
	m.version++
	return nil
}

// Set replaces target with edited at the same position. It fails when edited
// denotes a different person who is already in the list.
func (m *Model) Set(target, edited *client.Client) error {
	i := m.indexOf(target)
	if i < 0 {
		return errors.NewInternal(errClientNotFound)
	}
	if !target.IsSameClient(edited) && m.Has(edited) {
		return errors.NewDuplicateClient(edited.Name(), edited.Phone())
	}
	next := make([]*client.Client, len(m.clients))
	copy(next, m.clients)
	next[i] = edited
	m.clients = next
	m.version++
	return nil
}

// Replace swaps the whole list. Duplicate identities are rejected and leave
// the model unchanged.
func (m *Model) Replace(clients []*client.Client) error {
	next := make([]*client.Client, 0, len(clients))
	for _, c := range clients {
		for _, cur := range next {
			if cur.IsSameClient(c) {
				return errors.NewDuplicateClient(c.Name(), c.Phone())
			}
		}
		next = append(next, c)
	}
	m.clients = next
	m.filter = client.ShowAll
	m.version++
	return nil
}

// Clear removes every client.
func (m *Model) Clear() {
	m.clients = nil
	m.filter = client.ShowAll
	m.version++
}

// SetFilter changes the filtered view.
func (m *Model) SetFilter(p client.Predicate) {
	if p == nil {
		p = client.ShowAll
	}
	m.filter = p
}

// ShowAll resets the filtered view to every client.
func (m *Model) ShowAll() { m.filter = client.ShowAll }

func (m *Model) indexOf(target *client.Client) int {
	for i, c := range m.clients {
		if c == target {
			return i
		}
	}
	return -1
}

// Snapshot captures the list and filter for Restore.
type Snapshot struct {
	clients []*client.Client
	filter  client.Predicate
	version uint64
}

// Snapshot records the current state. Clients are immutable, so a shallow
// copy of the list is enough.
func (m *Model) Snapshot() Snapshot {
	return Snapshot{clients: m.Clients(), filter: m.filter, version: m.version}
}

// Restore returns the model to a snapshot.
func (m *Model) Restore(s Snapshot) {
	m.clients = s.clients
	m.filter = s.filter
	m.version = s.version
}
