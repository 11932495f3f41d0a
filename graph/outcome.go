package graph

// Status is a handler's reported outcome status.
type Status string

// The five outcome statuses a handler may report.
const (
	StatusSuccess        Status = "success"
	StatusPartialSuccess Status = "partial_success"
	StatusRetry          Status = "retry"
	StatusFail           Status = "fail"
	StatusSkipped        Status = "skipped"
)

// Outcome is a handler's return value: the status, any context updates to
// merge before the next node runs, suggested next node IDs (overriding
// edge-based traversal for that step), free-text notes, and a failure
// reason for FAIL outcomes (SPEC_FULL.md §3).
type Outcome struct {
	Status Status

	// PreferredLabel names the edge label this outcome prefers. wait.human
	// sets it when it falls back to its default choice; the Runner does not
	// read it when selecting the next node.
	PreferredLabel string

	// SuggestedNextIDs, if non-empty, overrides edge-based traversal for
	// this step; only the first entry is scheduled, the rest are
	// informational (SPEC_FULL.md §4.K).
	SuggestedNextIDs []string

	// ContextUpdates are applied to Context atomically before the next
	// node runs.
	ContextUpdates map[string]Attr

	Notes          string
	FailureReason  string
}

// Success builds a SUCCESS outcome with no context updates.
func Success() Outcome { return Outcome{Status: StatusSuccess} }

// Fail builds a FAIL outcome carrying reason as FailureReason.
func Fail(reason string) Outcome {
	return Outcome{Status: StatusFail, FailureReason: reason}
}

// Retry builds a RETRY outcome carrying notes.
func Retry(notes string) Outcome {
	return Outcome{Status: StatusRetry, Notes: notes}
}

// WithContext returns a copy of o with ContextUpdates set (merging with any
// existing updates, key wins on the new map).
func (o Outcome) WithContext(updates map[string]Attr) Outcome {
	if o.ContextUpdates == nil {
		o.ContextUpdates = make(map[string]Attr, len(updates))
	}
	for k, v := range updates {
		o.ContextUpdates[k] = v
	}
	return o
}

// WithNext returns a copy of o with SuggestedNextIDs set to ids.
func (o Outcome) WithNext(ids ...string) Outcome {
	o.SuggestedNextIDs = ids
	return o
}

// ParallelResult is one child outcome collected by a parallel (fan-out)
// region, aggregated into the `parallel.results` Context key for the fan-in
// handler to consume (SPEC_FULL.md §4.G).
type ParallelResult struct {
	NodeID         string
	Status         Status
	Notes          string
	ContextUpdates map[string]Attr
	Score          *float64
}
