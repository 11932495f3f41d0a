// Package backend provides the pluggable LLM/codergen invocation surface
// used by the codergen and fan-in handlers: a single resolved-prompt turn
// that may return either plain text or a fully-formed graph.Outcome
// (spec.md §4.L).
package backend

import (
	"context"

	"github.com/otimme/attractor-engine/graph"
)

// RunOptions carries call-scoped configuration for a Backend invocation.
type RunOptions struct {
	// LogsRoot is the run's log directory root; backends that write
	// diagnostic artifacts (e.g. usage.json) place them under
	// LogsRoot/<nodeId>/.
	LogsRoot string

	// TimeoutMs bounds the call, honored by backends that can enforce it
	// directly (e.g. CLIBackend's subprocess).
	TimeoutMs int64
}

// Result is the tagged union a Backend returns: either plain response text
// (Text, IsOutcome false) destined for response.md, or a fully-formed
// Outcome the handler returns verbatim.
type Result struct {
	IsOutcome bool
	Text      string
	Outcome   graph.Outcome
}

// TextResult builds a plain-text Result.
func TextResult(text string) Result { return Result{Text: text} }

// OutcomeResult builds an Outcome-carrying Result.
func OutcomeResult(o graph.Outcome) Result { return Result{IsOutcome: true, Outcome: o} }

// Backend runs a single codergen turn for node, given the resolved prompt
// and the live run Context, per spec.md §4.L.
type Backend interface {
	Run(ctx context.Context, node *graph.Node, prompt string, pctx *graph.Context, opts RunOptions) (Result, error)
}
