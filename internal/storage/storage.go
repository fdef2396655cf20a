// Package storage persists the client list. Every backend round-trips the
// whole ordered list as one snapshot.
package storage

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/fitbook/fitbook/internal/client"
	"github.com/fitbook/fitbook/internal/config"
)

// ErrNoData is returned by Load when nothing has been saved yet.
var ErrNoData = stderrors.New("no saved data")

// Storage loads and saves snapshots of the client list.
type Storage interface {
	// Load returns the saved clients in order. A single invalid record fails
	// the whole load.
	Load(ctx context.Context) ([]*client.Client, error)

	// Save replaces the stored snapshot with clients.
	Save(ctx context.Context, clients []*client.Client) error

	Close() error
}

// Open returns the backend selected by cfg, creating baseDir and its
// exports subdirectory if needed.
func Open(cfg *config.Config, baseDir string, logger *log.Logger) (Storage, error) {
	if err := EnsureDirs(baseDir); err != nil {
		return nil, err
	}
	path := cfg.DataPath(baseDir)

	switch cfg.Backend {
	case config.BackendJSON, "":
		return NewJSONStore(path), nil
	case config.BackendYAML:
		return NewYAMLStore(path), nil
	case config.BackendSQLite:
		return OpenSQLite(path, cfg, logger)
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}

// EnsureDirs creates baseDir and baseDir/exports with owner-only permissions.
func EnsureDirs(baseDir string) error {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return fmt.Errorf("failed to create base directory: %w", err)
	}
	// Explicit chmod (best-effort, may not work on all platforms)
	_ = os.Chmod(baseDir, 0700)

	exportsDir := filepath.Join(baseDir, "exports")
	if err := os.MkdirAll(exportsDir, 0700); err != nil {
		return fmt.Errorf("failed to create exports directory: %w", err)
	}
	_ = os.Chmod(exportsDir, 0700)
	return nil
}
