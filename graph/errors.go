// Package graph provides the core data model and execution engine for the
// attractor pipeline runner.
package graph

import "errors"

// ErrNoStartNode indicates the graph has no node of shape Mdiamond or type
// "start". Several such nodes are not an error: the Runner picks the one
// with the lowest node ID.
var ErrNoStartNode = errors.New("no start node found")

// ErrNoRoute indicates the runner could not determine a next node: no
// suggested next IDs, no matching or default edge.
var ErrNoRoute = errors.New("no route from node")

// ErrNodeNotFound indicates a referenced node ID does not exist in the graph.
var ErrNodeNotFound = errors.New("node not found")

// ErrMaxAttemptsExceeded indicates a node's retry policy was exhausted
// without a terminal SUCCESS/PARTIAL_SUCCESS/SKIPPED outcome.
var ErrMaxAttemptsExceeded = errors.New("max retries exceeded")

// ErrCancelled indicates the run was terminated by an external cancellation
// signal.
var ErrCancelled = errors.New("cancelled")

// ErrTimeout indicates a node-level timeout elapsed before the handler
// returned.
var ErrTimeout = errors.New("timeout")

// EngineError is a structured runner-level error, distinguishing
// configuration/validation failures from ordinary node FAIL outcomes.
type EngineError struct {
	Message string
	Code    string
}

// Error implements the error interface.
func (e *EngineError) Error() string { return e.Message }
