package logic

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitbook/fitbook/internal/client"
	"github.com/fitbook/fitbook/internal/errors"
	"github.com/fitbook/fitbook/internal/model"
	"github.com/fitbook/fitbook/internal/storage"
)

// memStore is an in-memory storage.Storage that can be told to fail.
type memStore struct {
	saved   []*client.Client
	hasData bool
	saves   int
	loadErr error
	saveErr error
}

func (s *memStore) Load(context.Context) ([]*client.Client, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if !s.hasData {
		return nil, storage.ErrNoData
	}
	return s.saved, nil
}

func (s *memStore) Save(_ context.Context, clients []*client.Client) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.saved = clients
	s.hasData = true
	return nil
}

func (s *memStore) Close() error { return nil }

var testNow = time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)

func newManager(t *testing.T, store *memStore) *Manager {
	t.Helper()
	m := model.New(model.WithClock(func() time.Time { return testNow }))
	return New(m, store, nil)
}

func TestLoad_SeedsSamplesWhenEmpty(t *testing.T) {
	store := &memStore{}
	mg := newManager(t, store)

	require.NoError(t, mg.Load(context.Background(), true))

	assert.Len(t, mg.Clients(), len(storage.SampleClients(testNow)))
	assert.Equal(t, 1, store.saves)
}

func TestLoad_SkipSamples(t *testing.T) {
	store := &memStore{}
	mg := newManager(t, store)

	require.NoError(t, mg.Load(context.Background(), false))
	assert.Empty(t, mg.Clients())
	assert.Zero(t, store.saves)
}

func TestLoad_ExistingData(t *testing.T) {
	alice := client.New(client.Details{Name: "Alice", Phone: "12345678"})
	store := &memStore{saved: []*client.Client{alice}, hasData: true}
	mg := newManager(t, store)

	require.NoError(t, mg.Load(context.Background(), true))
	require.Len(t, mg.Clients(), 1)
	assert.Equal(t, alice.ID(), mg.Clients()[0].ID())
	assert.Zero(t, store.saves)
}

func TestLoad_StorageFailure(t *testing.T) {
	store := &memStore{loadErr: stderrors.New("disk on fire")}
	mg := newManager(t, store)

	err := mg.Load(context.Background(), true)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindStorage))
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestExecute_PersistsMutations(t *testing.T) {
	store := &memStore{}
	mg := newManager(t, store)
	ctx := context.Background()
	require.NoError(t, mg.Load(ctx, false))

	res, err := mg.Execute(ctx, "add n/John Doe p/98765432 w/80")
	require.NoError(t, err)
	assert.Contains(t, res.Message, "New client added")
	assert.Equal(t, 1, store.saves)
	require.Len(t, store.saved, 1)
	assert.Equal(t, "John Doe", store.saved[0].Name())
}

func TestExecute_ReadOnlyCommandsDoNotSave(t *testing.T) {
	store := &memStore{}
	mg := newManager(t, store)
	ctx := context.Background()
	require.NoError(t, mg.Load(ctx, true))
	saves := store.saves

	for _, line := range []string{"list", "find Alex", "help", "editnote 1"} {
		_, err := mg.Execute(ctx, line)
		require.NoError(t, err, line)
	}
	assert.Equal(t, saves, store.saves)
}

func TestExecute_FindNarrowsView(t *testing.T) {
	mg := newManager(t, &memStore{})
	ctx := context.Background()
	require.NoError(t, mg.Load(ctx, true))

	res, err := mg.Execute(ctx, "find bernice")
	require.NoError(t, err)
	assert.Equal(t, "1 clients listed!", res.Message)
	require.Len(t, mg.Filtered(), 1)

	c, err := mg.At(1)
	require.NoError(t, err)
	assert.Equal(t, "Bernice Yu", c.Name())
}

func TestExecute_SaveFailureRollsBack(t *testing.T) {
	store := &memStore{}
	mg := newManager(t, store)
	ctx := context.Background()
	require.NoError(t, mg.Load(ctx, true))
	before := mg.Clients()

	store.saveErr = stderrors.New("read-only file system")
	_, err := mg.Execute(ctx, "delete 1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrStorage))
	assert.Contains(t, err.Error(), "read-only file system")

	after := mg.Clients()
	require.Len(t, after, len(before))
	for i := range before {
		assert.Same(t, before[i], after[i])
	}
}

func TestExecute_CommandErrorLeavesModel(t *testing.T) {
	store := &memStore{}
	mg := newManager(t, store)
	ctx := context.Background()
	require.NoError(t, mg.Load(ctx, false))

	_, err := mg.Execute(ctx, "delete 3")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrIndexOutOfRange))
	assert.Zero(t, store.saves)
}

func TestExecute_ParseError(t *testing.T) {
	mg := newManager(t, &memStore{})

	_, err := mg.Execute(context.Background(), "ad n/John")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnknownCommand))
}

func TestExecute_Cancelled(t *testing.T) {
	mg := newManager(t, &memStore{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mg.Execute(ctx, "list")
	assert.True(t, errors.Is(err, errors.ErrCancelled))
}

func TestApply_NoChangeNoSave(t *testing.T) {
	store := &memStore{}
	mg := newManager(t, store)

	err := mg.Apply(context.Background(), "noop", func(m *model.Model) error {
		m.ShowAll()
		return nil
	})
	require.NoError(t, err)
	assert.Zero(t, store.saves)
}

func TestApply_ErrorRestores(t *testing.T) {
	store := &memStore{}
	mg := newManager(t, store)
	ctx := context.Background()
	require.NoError(t, mg.Load(ctx, true))
	size := len(mg.Clients())

	boom := stderrors.New("boom")
	err := mg.Apply(ctx, "partial", func(m *model.Model) error {
		m.Clear()
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Len(t, mg.Clients(), size)
}

func TestAt_InvalidIndex(t *testing.T) {
	mg := newManager(t, &memStore{})

	_, err := mg.At(0)
	assert.True(t, errors.Is(err, errors.ErrInvalidIndex))
	_, err = mg.At(1)
	assert.True(t, errors.Is(err, errors.ErrIndexOutOfRange))
}
