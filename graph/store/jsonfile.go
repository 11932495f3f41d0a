package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/otimme/attractor-engine/graph"
)

// JSONFileStore persists one checkpoint per run as a JSON file under Dir,
// named "<runID>.json". It is the default durable store for a single
// process: no server, no schema, human-readable on disk.
type JSONFileStore struct {
	Dir string

	mu sync.Mutex
}

// NewJSONFileStore creates a JSONFileStore rooted at dir, creating dir if
// it does not already exist.
func NewJSONFileStore(dir string) (*JSONFileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("jsonfile store: %w", err)
	}
	return &JSONFileStore{Dir: dir}, nil
}

func (s *JSONFileStore) path(runID string) string {
	return filepath.Join(s.Dir, runID+".json")
}

// Save implements graph.CheckpointStore.
func (s *JSONFileStore) Save(_ context.Context, runID string, checkpoint *graph.Checkpoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(checkpoint, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonfile store: marshal: %w", err)
	}
	if err := os.WriteFile(s.path(runID), data, 0o644); err != nil {
		return fmt.Errorf("jsonfile store: write: %w", err)
	}
	return nil
}

// Load implements graph.CheckpointStore.
func (s *JSONFileStore) Load(_ context.Context, runID string) (*graph.Checkpoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(runID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("jsonfile store: read: %w", err)
	}
	var cp graph.Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, fmt.Errorf("jsonfile store: unmarshal: %w", err)
	}
	return &cp, nil
}
