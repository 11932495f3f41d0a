package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/otimme/attractor-engine/graph"
)

// SQLiteStore is a single-file SQLite-backed graph.CheckpointStore. It
// keeps one row per run, overwritten on every Save, which matches the
// "overwrite the previous checkpoint" semantics of spec.md §3 directly.
//
// SQLiteStore enables WAL mode for concurrent readers and caps the
// connection pool to one writer, since SQLite serializes writes anyway.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore opens (and, if necessary, creates) a SQLite database at
// path and ensures its schema exists. Use ":memory:" for an ephemeral
// database useful in tests.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite store: open: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx := context.Background()
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite store: %s: %w", pragma, err)
		}
	}

	s := &SQLiteStore{db: db}
	if err := s.createSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) createSchema(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS run_checkpoints (
			run_id TEXT PRIMARY KEY,
			checkpoint TEXT NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("sqlite store: create schema: %w", err)
	}
	return nil
}

// Save implements graph.CheckpointStore.
func (s *SQLiteStore) Save(ctx context.Context, runID string, checkpoint *graph.Checkpoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(checkpoint)
	if err != nil {
		return fmt.Errorf("sqlite store: marshal: %w", err)
	}

	const query = `
		INSERT INTO run_checkpoints (run_id, checkpoint)
		VALUES (?, ?)
		ON CONFLICT(run_id) DO UPDATE SET
			checkpoint = excluded.checkpoint,
			updated_at = CURRENT_TIMESTAMP
	`
	if _, err := s.db.ExecContext(ctx, query, runID, string(data)); err != nil {
		return fmt.Errorf("sqlite store: save: %w", err)
	}
	return nil
}

// Load implements graph.CheckpointStore.
func (s *SQLiteStore) Load(ctx context.Context, runID string) (*graph.Checkpoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	const query = `SELECT checkpoint FROM run_checkpoints WHERE run_id = ?`
	var data string
	err := s.db.QueryRowContext(ctx, query, runID).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite store: load: %w", err)
	}

	var cp graph.Checkpoint
	if err := json.Unmarshal([]byte(data), &cp); err != nil {
		return nil, fmt.Errorf("sqlite store: unmarshal: %w", err)
	}
	return &cp, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
