package ops

import (
	"bufio"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/fitbook/fitbook/internal/client"
	"github.com/fitbook/fitbook/internal/config"
	"github.com/fitbook/fitbook/internal/errors"
	"github.com/fitbook/fitbook/internal/logic"
	"github.com/fitbook/fitbook/internal/model"
	"github.com/fitbook/fitbook/internal/storage"
)

// ImportMode controls collision behavior during import.
type ImportMode string

const (
	ImportModeError   ImportMode = "error"   // fail on any invalid line or collision, import nothing
	ImportModeReplace ImportMode = "replace" // overwrite clients with the same identity
)

// maxImportLine bounds a single JSONL line.
const maxImportLine = 4 * 1024 * 1024

// ImportInput contains parameters for the Import operation.
type ImportInput struct {
	Path string     // required
	Mode ImportMode // default: error
}

// ImportOutput contains the result of the Import operation.
type ImportOutput struct {
	Imported int           `json:"imported"`
	Skipped  int           `json:"skipped"`
	Errors   []ImportError `json:"errors"`
}

// ImportError describes one rejected line.
type ImportError struct {
	Line    int    `json:"line"`
	Name    string `json:"name,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// importLine is either the export header or a client record.
type importLine struct {
	storage.Record
	FitbookExport bool `json:"_fitbook_export"`
	SchemaVersion int  `json:"schema_version"`
}

type parsedClient struct {
	line   int
	client *client.Client
}

var errImportAborted = stderrors.New("import aborted")

// Import reads a JSONL export file into the client book through mg, which
// persists the result. In error mode nothing is imported unless every line
// is valid and no client collides with an existing one.
func Import(ctx context.Context, mg *logic.Manager, baseDir string, cfg *config.Config, input ImportInput) (*ImportOutput, error) {
	if input.Path == "" {
		return nil, errors.NewInvalidRequest("path is required")
	}
	if input.Mode == "" {
		input.Mode = ImportModeError
	}
	if input.Mode != ImportModeError && input.Mode != ImportModeReplace {
		return nil, errors.NewInvalidRequest("mode must be one of: error, replace")
	}

	if err := ValidatePath(input.Path, PathCheckRead, ExtJSONL, baseDir, cfg); err != nil {
		return nil, err
	}

	file, err := openNoFollow(input.Path, os.O_RDONLY, 0)
	if err != nil {
		if errors.Is(err, errors.ErrFileNotFound) || errors.Is(err, errors.ErrInvalidRequest) {
			return nil, err
		}
		return nil, errors.NewInternal(fmt.Errorf("failed to open import file: %w", err))
	}
	defer file.Close()

	parsed, parseErrors, err := parseExportFile(file)
	if err != nil {
		return nil, err
	}

	if input.Mode == ImportModeError && len(parseErrors) > 0 {
		return &ImportOutput{Errors: parseErrors}, nil
	}

	out := &ImportOutput{Errors: parseErrors, Skipped: len(parseErrors)}
	if out.Errors == nil {
		out.Errors = []ImportError{}
	}

	err = mg.Apply(ctx, "import", func(m *model.Model) error {
		for _, p := range parsed {
			if ctx.Err() != nil {
				return errors.NewCancelled("import")
			}
			var err error
			if input.Mode == ImportModeError {
				err = importStrict(m, p, out)
			} else {
				err = importReplace(m, p)
			}
			if err != nil {
				return err
			}
			out.Imported++
		}
		m.ShowAll()
		return nil
	})
	if stderrors.Is(err, errImportAborted) {
		out.Imported = 0
		return out, nil
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// importStrict adds p, recording an error and aborting on any collision.
func importStrict(m *model.Model, p parsedClient, out *ImportOutput) error {
	c := p.client
	if m.Has(c) {
		out.Errors = append(out.Errors, ImportError{
			Line:    p.line,
			Name:    c.Name(),
			Code:    string(errors.ErrDuplicateClient),
			Message: fmt.Sprintf("client %q with phone %s already exists", c.Name(), c.Phone()),
		})
		return errImportAborted
	}
	if findByID(m, c.ID()) != nil {
		out.Errors = append(out.Errors, ImportError{
			Line:    p.line,
			Name:    c.Name(),
			Code:    "ID_COLLISION",
			Message: fmt.Sprintf("a different client already has id %q", c.ID()),
		})
		return errImportAborted
	}
	return m.Add(c)
}

// importReplace overwrites the client with the same identity, keeping its id.
// A new client whose id is taken gets a fresh one.
func importReplace(m *model.Model, p parsedClient) error {
	c := p.client
	if existing := findByIdentity(m, c); existing != nil {
		return m.Set(existing, existing.WithDetails(c.Details()))
	}
	if findByID(m, c.ID()) != nil {
		c = client.New(c.Details())
	}
	return m.Add(c)
}

func findByIdentity(m *model.Model, c *client.Client) *client.Client {
	for _, cur := range m.Clients() {
		if cur.IsSameClient(c) {
			return cur
		}
	}
	return nil
}

func findByID(m *model.Model, id string) *client.Client {
	for _, cur := range m.Clients() {
		if cur.ID() == id {
			return cur
		}
	}
	return nil
}

// parseExportFile decodes and validates every line. Blank lines and the
// header are skipped. Read failures are returned as err.
func parseExportFile(r io.Reader) ([]parsedClient, []ImportError, error) {
	var parsed []parsedClient
	var parseErrors []ImportError

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxImportLine)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var line importLine
		if err := json.Unmarshal(raw, &line); err != nil {
			parseErrors = append(parseErrors, ImportError{
				Line:    lineNum,
				Code:    "PARSE_ERROR",
				Message: fmt.Sprintf("invalid JSON: %v", err),
			})
			continue
		}

		if line.FitbookExport {
			if line.SchemaVersion > storage.SchemaVersion {
				return nil, nil, errors.NewInvalidRequest(fmt.Sprintf(
					"export schema version %d is newer than supported %d", line.SchemaVersion, storage.SchemaVersion))
			}
			continue
		}

		c, err := storage.FromRecord(line.Record)
		if err != nil {
			parseErrors = append(parseErrors, ImportError{
				Line:    lineNum,
				Name:    line.Name,
				Code:    "INVALID_RECORD",
				Message: displayMessage(err),
			})
			continue
		}

		if dup := findParsed(parsed, c); dup > 0 {
			parseErrors = append(parseErrors, ImportError{
				Line:    lineNum,
				Name:    c.Name(),
				Code:    string(errors.ErrDuplicateClient),
				Message: fmt.Sprintf("same client as line %d", dup),
			})
			continue
		}
		parsed = append(parsed, parsedClient{line: lineNum, client: c})
	}

	if err := scanner.Err(); err != nil {
		return nil, nil, errors.NewInternal(fmt.Errorf("failed to read import file: %w", err))
	}
	return parsed, parseErrors, nil
}

func findParsed(parsed []parsedClient, c *client.Client) int {
	for _, p := range parsed {
		if p.client.IsSameClient(c) {
			return p.line
		}
	}
	return 0
}

func displayMessage(err error) string {
	var fErr *errors.FitError
	if stderrors.As(err, &fErr) {
		return fErr.Display()
	}
	return err.Error()
}
