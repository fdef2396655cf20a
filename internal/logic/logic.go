// Package logic connects a presentation layer to the core: it parses a line,
// executes the command against the model and persists the result.
package logic

import (
	"context"
	stderrors "errors"
	"io"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/fitbook/fitbook/internal/client"
	"github.com/fitbook/fitbook/internal/command"
	"github.com/fitbook/fitbook/internal/errors"
	"github.com/fitbook/fitbook/internal/model"
	"github.com/fitbook/fitbook/internal/parser"
	"github.com/fitbook/fitbook/internal/storage"
)

// Manager owns the model and its storage. It is not safe for concurrent use.
type Manager struct {
	model  *model.Model
	store  storage.Storage
	logger *log.Logger
}

// New creates a manager. A nil logger discards log output.
func New(m *model.Model, store storage.Storage, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Manager{model: m, store: store, logger: logger}
}

// Load replaces the model contents with the stored clients. When nothing has
// been saved yet and seedSamples is set, sample clients are loaded and saved.
func (mg *Manager) Load(ctx context.Context, seedSamples bool) error {
	clients, err := mg.store.Load(ctx)
	if stderrors.Is(err, storage.ErrNoData) {
		if !seedSamples {
			mg.logger.Debug("no saved data, starting empty")
			mg.model.Clear()
			return nil
		}
		samples := storage.SampleClients(mg.model.Now())
		mg.logger.Info("no saved data, loading sample clients", "count", len(samples))
		return mg.Apply(ctx, "seed", func(m *model.Model) error {
			return m.Replace(samples)
		})
	}
	if err != nil {
		if ctx.Err() != nil {
			return errors.NewCancelled("load")
		}
		mg.logger.Error("failed to load clients", "err", err)
		return errors.NewStorage("load", err)
	}
	if err := mg.model.Replace(clients); err != nil {
		return errors.NewStorage("load", err)
	}
	mg.logger.Debug("loaded clients", "count", len(clients))
	return nil
}

// Execute parses and runs one line of user input. A failed save restores the
// model to its state before the command.
func (mg *Manager) Execute(ctx context.Context, line string) (command.Result, error) {
	if ctx.Err() != nil {
		return command.Result{}, errors.NewCancelled("execute")
	}

	cmd, err := parser.Parse(line)
	if err != nil {
		mg.logger.Debug("parse failed", "line", line, "err", err)
		return command.Result{}, err
	}

	word := parser.CommandWord(line)
	mg.logger.Debug("executing command", "command", word)

	var result command.Result
	err = mg.Apply(ctx, word, func(m *model.Model) error {
		var execErr error
		result, execErr = cmd.Execute(m)
		return execErr
	})
	if err != nil {
		return command.Result{}, err
	}
	return result, nil
}

// Apply runs fn against the model and saves if the client list changed.
// When fn or the save fails, the model is restored.
func (mg *Manager) Apply(ctx context.Context, op string, fn func(*model.Model) error) error {
	snap := mg.model.Snapshot()
	before := mg.model.Version()

	if err := fn(mg.model); err != nil {
		mg.model.Restore(snap)
		return err
	}
	if mg.model.Version() == before {
		return nil
	}

	if err := mg.store.Save(ctx, mg.model.Clients()); err != nil {
		mg.model.Restore(snap)
		if ctx.Err() != nil {
			return errors.NewCancelled(op)
		}
		mg.logger.Error("failed to save clients", "op", op, "err", err)
		return errors.NewStorage("save", err)
	}
	mg.logger.Debug("saved clients", "op", op, "count", mg.model.Size())
	return nil
}

// Clients returns the full list in order.
func (mg *Manager) Clients() []*client.Client { return mg.model.Clients() }

// Filtered returns the clients visible through the current filter.
func (mg *Manager) Filtered() []*client.Client { return mg.model.Filtered() }

// At returns the client at a 1-based index into the filtered view.
func (mg *Manager) At(index int) (*client.Client, error) {
	if index < 1 {
		return nil, errors.NewInvalidIndex(strconv.Itoa(index), "")
	}
	return mg.model.At(index - 1)
}

// Close closes the storage.
func (mg *Manager) Close() error { return mg.store.Close() }
