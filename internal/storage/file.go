package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/fitbook/fitbook/internal/client"
)

// document is the on-disk layout of the file backends.
type document struct {
	Version int      `json:"version" yaml:"version"`
	Clients []Record `json:"clients" yaml:"clients"`
}

// FileStore keeps the snapshot in a single JSON or YAML file.
type FileStore struct {
	path      string
	marshal   func(any) ([]byte, error)
	unmarshal func([]byte, any) error
}

// NewJSONStore stores clients as indented JSON at path.
func NewJSONStore(path string) *FileStore {
	return &FileStore{
		path: path,
		marshal: func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		},
		unmarshal: json.Unmarshal,
	}
}

// NewYAMLStore stores clients as YAML at path.
func NewYAMLStore(path string) *FileStore {
	return &FileStore{path: path, marshal: yaml.Marshal, unmarshal: yaml.Unmarshal}
}

// Path returns the data file location.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load(ctx context.Context) ([]*client.Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, ErrNoData
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var doc document
	if err := s.unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.path, err)
	}
	if doc.Version > SchemaVersion {
		return nil, fmt.Errorf("%s has schema version %d, newer than supported %d", s.path, doc.Version, SchemaVersion)
	}
	return FromRecords(doc.Clients)
}

func (s *FileStore) Save(ctx context.Context, clients []*client.Client) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := s.marshal(document{Version: SchemaVersion, Clients: ToRecords(clients)})
	if err != nil {
		return fmt.Errorf("failed to encode clients: %w", err)
	}
	return writeFileAtomic(s.path, data)
}

func (s *FileStore) Close() error { return nil }

// writeFileAtomic writes to a temp file in the same directory, syncs it and
// renames it over path so a failed write keeps the previous file.
func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return fmt.Errorf("failed to generate temp file name: %w", err)
	}
	tempPath := path + "." + hex.EncodeToString(randBytes) + ".tmp"

	file, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	success := false
	defer func() {
		if file != nil {
			file.Close()
		}
		if !success {
			os.Remove(tempPath)
		}
	}()

	if _, err := file.Write(data); err != nil {
		return fmt.Errorf("failed to write data file: %w", err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to sync data file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close data file: %w", err)
	}
	file = nil

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to replace data file: %w", err)
	}
	success = true
	return nil
}
