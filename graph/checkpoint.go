package graph

import (
	"context"
	"encoding/hex"
	"fmt"
	"sort"
	"time"

	"github.com/zeebo/blake3"
)

// Checkpoint is a durable snapshot of run state, written after each node
// completion and overwriting the previous checkpoint (spec.md §3). It
// carries just enough to reproduce completedNodes and nodeOutcomes up to
// the point it was written, plus enough context to resume traversal.
type Checkpoint struct {
	// Timestamp records when this checkpoint was written.
	Timestamp time.Time `json:"timestamp"`

	// CurrentNode is the ID of the node that just completed (or, for the
	// initial checkpoint, the chosen start node before it has run).
	CurrentNode string `json:"current_node"`

	// CompletedNodes is the ordered sequence of node IDs that have
	// finished, in the order they completed.
	CompletedNodes []string `json:"completed_nodes"`

	// NodeRetries maps node ID to the number of attempts, counting the
	// first, that the node's most recent dispatch consumed.
	NodeRetries map[string]int `json:"node_retries"`

	// NodeOutcomes maps node ID to the string form of its last reported
	// Status.
	NodeOutcomes map[string]string `json:"node_outcomes"`

	// ContextValues is a flattened snapshot of the run Context at
	// checkpoint time, display-string values per spec.md §3.
	ContextValues map[string]string `json:"context_values"`

	// Logs is an ordered sequence of log lines carried with the checkpoint.
	// The Runner does not fill it in; checkpoints it writes leave Logs
	// empty.
	Logs []string `json:"logs"`

	// Fingerprint is a content hash of CurrentNode, CompletedNodes, and
	// NodeOutcomes, set by ComputeFingerprint. Comparing it against a
	// freshly computed fingerprint of a loaded checkpoint detects one that
	// was hand-edited or corrupted in storage; the Runner writes it but
	// never loads or verifies a checkpoint itself.
	Fingerprint string `json:"fingerprint,omitempty"`
}

// ComputeFingerprint hashes c's CurrentNode, CompletedNodes, and
// NodeOutcomes with blake3 and stores the result in c.Fingerprint,
// returning it. NodeOutcomes entries are sorted by key first since map
// iteration order is not stable, so the fingerprint is reproducible across
// runs that reach the same state.
func (c *Checkpoint) ComputeFingerprint() string {
	h := blake3.New()
	fmt.Fprintf(h, "current_node=%s\n", c.CurrentNode)
	for _, id := range c.CompletedNodes {
		fmt.Fprintf(h, "completed=%s\n", id)
	}
	keys := make([]string, 0, len(c.NodeOutcomes))
	for k := range c.NodeOutcomes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(h, "outcome=%s:%s\n", k, c.NodeOutcomes[k])
	}
	sum := hex.EncodeToString(h.Sum(nil))
	c.Fingerprint = sum
	return sum
}

// NewCheckpoint builds an empty Checkpoint with initialized maps, ready to
// be populated incrementally as the runner advances. Exported so
// graph/runner (which cannot reach an unexported package graph
// constructor) builds every Checkpoint through the same initialization as
// the rest of this package.
func NewCheckpoint() *Checkpoint {
	return &Checkpoint{
		NodeRetries:   make(map[string]int),
		NodeOutcomes:  make(map[string]string),
		ContextValues: make(map[string]string),
	}
}

// SnapshotContext flattens c into a display-string map suitable for
// Checkpoint.ContextValues.
func SnapshotContext(c *Context) map[string]string {
	keys := c.Keys()
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		out[k] = c.Get(k)
	}
	return out
}

// CheckpointStore persists and retrieves Checkpoint records for a run: an
// in-memory map, a SQLite/MySQL table, or a msgpack file on disk can each
// implement it and be handed to a Runner interchangeably (SPEC_FULL.md
// §4.K).
type CheckpointStore interface {
	// Save persists checkpoint under runID, overwriting any previously
	// saved checkpoint for that run.
	Save(ctx context.Context, runID string, checkpoint *Checkpoint) error

	// Load retrieves the most recently saved checkpoint for runID.
	// Returns store.ErrNotFound if none exists.
	Load(ctx context.Context, runID string) (*Checkpoint, error)
}
