package ops

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitbook/fitbook/internal/client"
	"github.com/fitbook/fitbook/internal/errors"
	"github.com/fitbook/fitbook/internal/storage"
)

// writeExport writes a JSONL file with a header followed by lines.
func writeExport(t *testing.T, baseDir, name string, lines ...string) string {
	t.Helper()
	header, err := json.Marshal(ExportHeader{FitbookExport: true, SchemaVersion: storage.SchemaVersion, ExportedAt: testNow.Unix()})
	require.NoError(t, err)

	path := filepath.Join(ExportsDir(baseDir), name)
	content := string(header) + "\n" + strings.Join(lines, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func recordLine(t *testing.T, c *client.Client) string {
	t.Helper()
	data, err := json.Marshal(storage.ToRecord(c))
	require.NoError(t, err)
	return string(data)
}

func TestImport_ModeError_HappyPath(t *testing.T) {
	baseDir := newBaseDir(t)
	alice := newClient("Alice", "12345678")
	bob := newClient("Bob", "87654321")
	path := writeExport(t, baseDir, "in.jsonl", recordLine(t, alice), "", recordLine(t, bob))

	mg, _ := newManager(t, baseDir)
	out, err := Import(context.Background(), mg, baseDir, nil, ImportInput{Path: path})
	require.NoError(t, err)

	assert.Equal(t, 2, out.Imported)
	assert.Zero(t, out.Skipped)
	assert.Empty(t, out.Errors)
	require.Len(t, mg.Clients(), 2)
	assert.Equal(t, "Alice", mg.Clients()[0].Name())
}

func TestImport_ModeError_InvalidLineImportsNothing(t *testing.T) {
	baseDir := newBaseDir(t)
	path := writeExport(t, baseDir, "in.jsonl",
		recordLine(t, newClient("Alice", "12345678")),
		`{"id":"x","name":"B*b","phone":"12345678"}`,
		`not json`,
	)

	mg, store := newManager(t, baseDir)
	out, err := Import(context.Background(), mg, baseDir, nil, ImportInput{Path: path})
	require.NoError(t, err)

	assert.Zero(t, out.Imported)
	require.Len(t, out.Errors, 2)
	assert.Equal(t, 3, out.Errors[0].Line)
	assert.Equal(t, "INVALID_RECORD", out.Errors[0].Code)
	assert.Equal(t, "PARSE_ERROR", out.Errors[1].Code)
	assert.Empty(t, mg.Clients())

	_, err = store.Load(context.Background())
	assert.ErrorIs(t, err, storage.ErrNoData)
}

func TestImport_ModeError_CollisionRollsBack(t *testing.T) {
	baseDir := newBaseDir(t)
	existing := newClient("Alice", "12345678")
	incoming := client.New(existing.Details())
	path := writeExport(t, baseDir, "in.jsonl",
		recordLine(t, newClient("Carol", "11112222")),
		recordLine(t, incoming),
	)

	mg, _ := newManager(t, baseDir, existing)
	out, err := Import(context.Background(), mg, baseDir, nil, ImportInput{Path: path})
	require.NoError(t, err)

	assert.Zero(t, out.Imported)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, string(errors.ErrDuplicateClient), out.Errors[0].Code)
	assert.Equal(t, 3, out.Errors[0].Line)

	require.Len(t, mg.Clients(), 1, "Carol must not be imported")
	assert.Same(t, existing, mg.Clients()[0])
}

func TestImport_ModeError_IDCollision(t *testing.T) {
	baseDir := newBaseDir(t)
	existing := newClient("Alice", "12345678")
	other := client.Restore(existing.ID(), client.Details{Name: "Dave", Phone: "55556666"})
	path := writeExport(t, baseDir, "in.jsonl", recordLine(t, other))

	mg, _ := newManager(t, baseDir, existing)
	out, err := Import(context.Background(), mg, baseDir, nil, ImportInput{Path: path})
	require.NoError(t, err)

	require.Len(t, out.Errors, 1)
	assert.Equal(t, "ID_COLLISION", out.Errors[0].Code)
	assert.Len(t, mg.Clients(), 1)
}

func TestImport_DuplicateWithinFile(t *testing.T) {
	baseDir := newBaseDir(t)
	alice := newClient("Alice", "12345678")
	path := writeExport(t, baseDir, "in.jsonl", recordLine(t, alice), recordLine(t, client.New(alice.Details())))

	mg, _ := newManager(t, baseDir)
	out, err := Import(context.Background(), mg, baseDir, nil, ImportInput{Path: path})
	require.NoError(t, err)

	require.Len(t, out.Errors, 1)
	assert.Contains(t, out.Errors[0].Message, "line 2")
	assert.Empty(t, mg.Clients())
}

func TestImport_ModeReplace(t *testing.T) {
	baseDir := newBaseDir(t)
	existing := newClient("Alice", "12345678")
	bob := newClient("Bob", "87654321")

	updated := existing.Details()
	updated.Email = "alice@example.com"
	replacement := client.New(updated)
	idClash := client.Restore(bob.ID(), client.Details{Name: "Erin", Phone: "99990000"})

	path := writeExport(t, baseDir, "in.jsonl",
		recordLine(t, replacement),
		`{"id":"bad","name":"","phone":"1"}`,
		recordLine(t, idClash),
	)

	mg, _ := newManager(t, baseDir, existing, bob)
	out, err := Import(context.Background(), mg, baseDir, nil, ImportInput{Path: path, Mode: ImportModeReplace})
	require.NoError(t, err)

	assert.Equal(t, 2, out.Imported)
	assert.Equal(t, 1, out.Skipped)
	require.Len(t, out.Errors, 1)

	got := mg.Clients()
	require.Len(t, got, 3)
	assert.Equal(t, existing.ID(), got[0].ID(), "replaced client keeps its id")
	assert.Equal(t, "alice@example.com", got[0].Email())
	assert.Equal(t, "Erin", got[2].Name())
	assert.NotEqual(t, bob.ID(), got[2].ID(), "clashing id is regenerated")
}

func TestImport_InvalidInput(t *testing.T) {
	baseDir := newBaseDir(t)
	mg, _ := newManager(t, baseDir)
	ctx := context.Background()

	_, err := Import(ctx, mg, baseDir, nil, ImportInput{})
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest))

	_, err = Import(ctx, mg, baseDir, nil, ImportInput{Path: "x.jsonl", Mode: "rename"})
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest))

	_, err = Import(ctx, mg, baseDir, nil, ImportInput{Path: filepath.Join(ExportsDir(baseDir), "missing.jsonl")})
	assert.True(t, errors.Is(err, errors.ErrFileNotFound))
}

func TestImport_NewerSchemaRejected(t *testing.T) {
	baseDir := newBaseDir(t)
	path := filepath.Join(ExportsDir(baseDir), "future.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(`{"_fitbook_export":true,"schema_version":99}`+"\n"), 0600))

	mg, _ := newManager(t, baseDir)
	_, err := Import(context.Background(), mg, baseDir, nil, ImportInput{Path: path})
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest))
}
