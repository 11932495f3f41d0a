// Package store provides graph.CheckpointStore implementations: an
// in-memory map for tests, a JSON file and a msgpack file for single-process
// durability, and SQLite/MySQL tables for shared or production deployments.
// Every implementation persists the same non-generic graph.Checkpoint
// record, so a run can move between backends without any data migration.
package store

import "errors"

// ErrNotFound is returned when a requested run ID has no saved checkpoint.
var ErrNotFound = errors.New("not found")
