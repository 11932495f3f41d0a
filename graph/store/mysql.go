package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/otimme/attractor-engine/graph"
)

// MySQLStore is a MySQL/MariaDB-backed graph.CheckpointStore, suited to
// deployments where multiple processes share checkpoint state (distributed
// workers, audited production runs). One row per run_id is kept, replaced
// on every Save.
type MySQLStore struct {
	db *sql.DB
}

// NewMySQLStore opens a connection pool against dsn (see the
// go-sql-driver/mysql DSN format) and ensures the schema exists.
func NewMySQLStore(dsn string) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("mysql store: open: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("mysql store: ping: %w", err)
	}

	s := &MySQLStore{db: db}
	if err := s.createSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *MySQLStore) createSchema(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS run_checkpoints (
			run_id VARCHAR(255) NOT NULL PRIMARY KEY,
			checkpoint JSON NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("mysql store: create schema: %w", err)
	}
	return nil
}

// Save implements graph.CheckpointStore.
func (s *MySQLStore) Save(ctx context.Context, runID string, checkpoint *graph.Checkpoint) error {
	data, err := json.Marshal(checkpoint)
	if err != nil {
		return fmt.Errorf("mysql store: marshal: %w", err)
	}

	const query = `
		INSERT INTO run_checkpoints (run_id, checkpoint)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE checkpoint = VALUES(checkpoint)
	`
	if _, err := s.db.ExecContext(ctx, query, runID, string(data)); err != nil {
		return fmt.Errorf("mysql store: save: %w", err)
	}
	return nil
}

// Load implements graph.CheckpointStore.
func (s *MySQLStore) Load(ctx context.Context, runID string) (*graph.Checkpoint, error) {
	const query = `SELECT checkpoint FROM run_checkpoints WHERE run_id = ?`
	var data string
	err := s.db.QueryRowContext(ctx, query, runID).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mysql store: load: %w", err)
	}

	var cp graph.Checkpoint
	if err := json.Unmarshal([]byte(data), &cp); err != nil {
		return nil, fmt.Errorf("mysql store: unmarshal: %w", err)
	}
	return &cp, nil
}

// Close closes the underlying connection pool.
func (s *MySQLStore) Close() error {
	return s.db.Close()
}
