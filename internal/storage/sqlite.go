package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"

	"github.com/fitbook/fitbook/internal/client"
	"github.com/fitbook/fitbook/internal/config"
)

// CurrentSchemaVersion is the latest SQLite schema version.
// Bump this when adding migrations.
const CurrentSchemaVersion = 1

const (
	kindWeight = "weight"
	kindHeight = "height"
)

// SQLiteStore keeps the snapshot in a SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	logger *log.Logger
}

// OpenSQLite opens (or creates) the database at path and applies migrations.
func OpenSQLite(path string, cfg *config.Config, logger *log.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = log.New(os.Stderr)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Pragmas in the connection string apply to every pooled connection.
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := verifyWALMode(db); err != nil {
		db.Close()
		return nil, err
	}
	if err := migrate(db, logger); err != nil {
		db.Close()
		return nil, err
	}
	configurePool(db, cfg)

	// Set file permissions after file exists (best-effort)
	_ = os.Chmod(path, 0600)

	return &SQLiteStore{db: db, logger: logger}, nil
}

// configurePool applies connection pool settings. Zero values keep sql.DB defaults.
func configurePool(db *sql.DB, cfg *config.Config) {
	if cfg == nil {
		return
	}
	if cfg.DBMaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	}
	if cfg.DBMaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	}
}

// migrate applies schema migrations based on user_version.
func migrate(db *sql.DB, logger *log.Logger) error {
	version, err := getUserVersion(db)
	if err != nil {
		return err
	}

	// Migration 0 -> 1: initial schema
	if version < 1 {
		schema := `
		CREATE TABLE IF NOT EXISTS clients (
		  id       TEXT PRIMARY KEY,
		  position INTEGER NOT NULL,
		  name     TEXT NOT NULL,
		  phone    TEXT NOT NULL,
		  email    TEXT NOT NULL DEFAULT '',
		  address  TEXT NOT NULL DEFAULT '',
		  note     TEXT NOT NULL DEFAULT '',
		  UNIQUE (name, phone)
		);

		CREATE TABLE IF NOT EXISTS client_tags (
		  client_id TEXT NOT NULL,
		  tag       TEXT NOT NULL,
		  PRIMARY KEY (client_id, tag)
		);

		CREATE TABLE IF NOT EXISTS observations (
		  client_id TEXT NOT NULL,
		  kind      TEXT NOT NULL,
		  at        INTEGER NOT NULL,
		  value     REAL NOT NULL,
		  PRIMARY KEY (client_id, kind, at)
		);

		CREATE TABLE IF NOT EXISTS exercises (
		  client_id TEXT NOT NULL,
		  position  INTEGER NOT NULL,
		  name      TEXT NOT NULL,
		  sets      INTEGER NOT NULL,
		  reps      INTEGER NOT NULL,
		  rest      INTEGER NOT NULL,
		  PRIMARY KEY (client_id, position)
		);

		CREATE TABLE IF NOT EXISTS meta (
		  key   TEXT PRIMARY KEY,
		  value TEXT NOT NULL
		);
		`
		if _, err := db.Exec(schema); err != nil {
			return fmt.Errorf("migration 1 failed: %w", err)
		}
		if err := setUserVersion(db, 1); err != nil {
			return err
		}
		logger.Debug("applied sqlite migration", "version", 1)
	}

	return nil
}

// verifyWALMode checks that WAL mode is active (set via connection string).
func verifyWALMode(db *sql.DB) error {
	var journalMode string
	if err := db.QueryRow("PRAGMA journal_mode;").Scan(&journalMode); err != nil {
		return fmt.Errorf("failed to verify journal mode: %w", err)
	}
	if journalMode != "wal" {
		return fmt.Errorf("expected WAL mode, got %s", journalMode)
	}
	return nil
}

func getUserVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get user_version: %w", err)
	}
	return version, nil
}

func setUserVersion(db *sql.DB, version int) error {
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version=%d", version)); err != nil {
		return fmt.Errorf("failed to set user_version: %w", err)
	}
	return nil
}

// DB exposes the underlying handle for tests and diagnostics.
func (s *SQLiteStore) DB() *sql.DB { return s.db }

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) Load(ctx context.Context) ([]*client.Client, error) {
	var savedAt string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'saved_at'`).Scan(&savedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read meta: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, phone, email, address, note FROM clients ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	var records []Record
	byID := make(map[string]int)
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Name, &r.Phone, &r.Email, &r.Address, &r.Note); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		byID[r.ID] = len(records)
		records = append(records, r)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.loadTags(ctx, records, byID); err != nil {
		return nil, err
	}
	if err := s.loadObservations(ctx, records, byID); err != nil {
		return nil, err
	}
	if err := s.loadExercises(ctx, records, byID); err != nil {
		return nil, err
	}
	return FromRecords(records)
}

func (s *SQLiteStore) loadTags(ctx context.Context, records []Record, byID map[string]int) error {
	rows, err := s.db.QueryContext(ctx, `SELECT client_id, tag FROM client_tags ORDER BY client_id, tag`)
	if err != nil {
		return fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id, tag string
		if err := rows.Scan(&id, &tag); err != nil {
			return fmt.Errorf("failed to scan tag: %w", err)
		}
		if i, ok := byID[id]; ok {
			records[i].Tags = append(records[i].Tags, tag)
		}
	}
	return rows.Err()
}

func (s *SQLiteStore) loadObservations(ctx context.Context, records []Record, byID map[string]int) error {
	rows, err := s.db.QueryContext(ctx, `SELECT client_id, kind, at, value FROM observations ORDER BY client_id, kind, at`)
	if err != nil {
		return fmt.Errorf("failed to query observations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id, kind string
		var o ObservationRecord
		if err := rows.Scan(&id, &kind, &o.At, &o.Value); err != nil {
			return fmt.Errorf("failed to scan observation: %w", err)
		}
		i, ok := byID[id]
		if !ok {
			continue
		}
		switch kind {
		case kindWeight:
			records[i].Weight = append(records[i].Weight, o)
		case kindHeight:
			records[i].Height = append(records[i].Height, o)
		default:
			return fmt.Errorf("unknown observation kind %q", kind)
		}
	}
	return rows.Err()
}

func (s *SQLiteStore) loadExercises(ctx context.Context, records []Record, byID map[string]int) error {
	rows, err := s.db.QueryContext(ctx, `SELECT client_id, name, sets, reps, rest FROM exercises ORDER BY client_id, position`)
	if err != nil {
		return fmt.Errorf("failed to query exercises: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		var e ExerciseRecord
		if err := rows.Scan(&id, &e.Name, &e.Sets, &e.Reps, &e.Rest); err != nil {
			return fmt.Errorf("failed to scan exercise: %w", err)
		}
		if i, ok := byID[id]; ok {
			records[i].Exercises = append(records[i].Exercises, e)
		}
	}
	return rows.Err()
}

// Save replaces every table's contents in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, clients []*client.Client) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for _, table := range []string{"clients", "client_tags", "observations", "exercises"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for pos, c := range clients {
		r := ToRecord(c)
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO clients (id, position, name, phone, email, address, note) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.ID, pos, r.Name, r.Phone, r.Email, r.Address, r.Note); err != nil {
			return fmt.Errorf("failed to insert client %q: %w", r.Name, err)
		}
		for _, tag := range r.Tags {
			if _, err := tx.ExecContext(ctx, `INSERT INTO client_tags (client_id, tag) VALUES (?, ?)`, r.ID, tag); err != nil {
				return fmt.Errorf("failed to insert tag: %w", err)
			}
		}
		for kind, obs := range map[string][]ObservationRecord{kindWeight: r.Weight, kindHeight: r.Height} {
			for _, o := range obs {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO observations (client_id, kind, at, value) VALUES (?, ?, ?, ?)`,
					r.ID, kind, o.At, o.Value); err != nil {
					return fmt.Errorf("failed to insert %s observation: %w", kind, err)
				}
			}
		}
		for i, e := range r.Exercises {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO exercises (client_id, position, name, sets, reps, rest) VALUES (?, ?, ?, ?, ?, ?)`,
				r.ID, i, e.Name, e.Sets, e.Reps, e.Rest); err != nil {
				return fmt.Errorf("failed to insert exercise: %w", err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES ('saved_at', ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		strconv.FormatInt(time.Now().Unix(), 10)); err != nil {
		return fmt.Errorf("failed to update meta: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	s.logger.Debug("saved clients", "backend", "sqlite", "count", len(clients))
	return nil
}
