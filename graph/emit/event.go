// Package emit provides the run-level event stream for the pipeline
// runner: a single-producer, multiple-consumer broadcast of Kind-tagged
// events, plus Drain adapters (log, null, OpenTelemetry) that subscribe to
// a Bus and forward events to an external sink.
package emit

import "time"

// Kind identifies the category of a pipeline event.
type Kind string

// The event kinds a Runner emits, per spec.md §4.I.
const (
	PipelineStarted   Kind = "PIPELINE_STARTED"
	StageStarted      Kind = "STAGE_STARTED"
	StageCompleted    Kind = "STAGE_COMPLETED"
	StageRetry        Kind = "STAGE_RETRY"
	PipelineCompleted Kind = "PIPELINE_COMPLETED"
	PipelineFailed    Kind = "PIPELINE_FAILED"

	// Warning is emitted by BoundedBus when it drops a queued event for a
	// slow consumer; it is not part of spec.md §4.I's minimum set.
	Warning Kind = "WARNING"
)

// Event is one occurrence on the pipeline event stream: a kind, a
// timestamp, an optional node ID, and an open data map (spec.md §4.I).
type Event struct {
	Kind      Kind
	Timestamp time.Time
	NodeID    string
	Data      map[string]any
}
