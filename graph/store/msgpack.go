package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/otimme/attractor-engine/graph"
)

// MsgpackFileStore persists one checkpoint per run as a msgpack-encoded
// file under Dir, named "<runID>.msgpack". It is a compact binary
// alternative to JSONFileStore for runs with large context snapshots or
// long logs, where JSON's text overhead is unwelcome.
type MsgpackFileStore struct {
	Dir string

	mu sync.Mutex
}

// NewMsgpackFileStore creates a MsgpackFileStore rooted at dir, creating
// dir if it does not already exist.
func NewMsgpackFileStore(dir string) (*MsgpackFileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("msgpack store: %w", err)
	}
	return &MsgpackFileStore{Dir: dir}, nil
}

func (s *MsgpackFileStore) path(runID string) string {
	return filepath.Join(s.Dir, runID+".msgpack")
}

// Save implements graph.CheckpointStore.
func (s *MsgpackFileStore) Save(_ context.Context, runID string, checkpoint *graph.Checkpoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := msgpack.Marshal(checkpoint)
	if err != nil {
		return fmt.Errorf("msgpack store: marshal: %w", err)
	}
	if err := os.WriteFile(s.path(runID), data, 0o644); err != nil {
		return fmt.Errorf("msgpack store: write: %w", err)
	}
	return nil
}

// Load implements graph.CheckpointStore.
func (s *MsgpackFileStore) Load(_ context.Context, runID string) (*graph.Checkpoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(runID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("msgpack store: read: %w", err)
	}
	var cp graph.Checkpoint
	if err := msgpack.Unmarshal(data, &cp); err != nil {
		return nil, fmt.Errorf("msgpack store: unmarshal: %w", err)
	}
	return &cp, nil
}
