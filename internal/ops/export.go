package ops

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fitbook/fitbook/internal/client"
	"github.com/fitbook/fitbook/internal/config"
	"github.com/fitbook/fitbook/internal/errors"
	"github.com/fitbook/fitbook/internal/storage"
)

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	Path string // optional, default: <base>/exports/clients-<timestamp>.jsonl
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Path       string `json:"path"`
	Count      int    `json:"count"`
	ExportedAt int64  `json:"exported_at"`
}

// ExportHeader is the first line of a JSONL export file.
type ExportHeader struct {
	FitbookExport bool  `json:"_fitbook_export"`
	SchemaVersion int   `json:"schema_version"`
	ExportedAt    int64 `json:"exported_at"`
}

// Export writes clients to a JSONL file: one header line, then one record per client.
func Export(ctx context.Context, clients []*client.Client, baseDir string, cfg *config.Config, input ExportInput) (*ExportOutput, error) {
	now := time.Now()
	exportedAt := now.Unix()

	exportPath := input.Path
	if exportPath == "" {
		exportPath = defaultOutputPath(baseDir, "clients", ExtJSONL, now)
	}

	// Default paths are validated too
	if err := ValidatePath(exportPath, PathCheckWrite, ExtJSONL, baseDir, cfg); err != nil {
		return nil, err
	}

	count := 0
	err := writeAtomic(exportPath, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		header := ExportHeader{
			FitbookExport: true,
			SchemaVersion: storage.SchemaVersion,
			ExportedAt:    exportedAt,
		}
		if err := enc.Encode(header); err != nil {
			return errors.NewInternal(err)
		}

		for _, c := range clients {
			select {
			case <-ctx.Done():
				return errors.NewCancelled("export")
			default:
			}
			if err := enc.Encode(storage.ToRecord(c)); err != nil {
				return errors.NewInternal(err)
			}
			count++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ExportOutput{
		Path:       exportPath,
		Count:      count,
		ExportedAt: exportedAt,
	}, nil
}

// defaultOutputPath returns <base>/exports/<name>-<timestamp><ext>.
func defaultOutputPath(baseDir, name, ext string, now time.Time) string {
	timestamp := now.Format("2006-01-02T150405")
	filename := fmt.Sprintf("%s-%s%s", SanitizeForFilename(client.Normalize(name)), timestamp, ext)
	return filepath.Join(ExportsDir(baseDir), filename)
}
