// Package runner implements the pipeline scheduler: it walks a transformed
// Graph from its start node to termination, dispatching each node to a
// handler under the retry engine, merging context updates, writing
// checkpoints after every step, and emitting the run's event stream
// (spec.md §4.K).
//
// It lives in its own package rather than package graph because it depends
// on graph/handler.Registry, and graph/handler already imports graph;
// putting the Runner in package graph would create an import cycle
// (graph -> graph/handler -> graph).
package runner

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
	"path/filepath"
	"sort"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/otimme/attractor-engine/graph"
	"github.com/otimme/attractor-engine/graph/emit"
	"github.com/otimme/attractor-engine/graph/handler"
)

// Options configures a Runner. All fields are optional; the zero value
// produces a Runner with no logging, no metrics, and a generous step
// ceiling.
type Options struct {
	// Logger receives structured diagnostics for every stage transition.
	// Nil disables logging.
	Logger *zap.Logger

	// Metrics receives Prometheus observations for every stage dispatch.
	// Nil disables metrics.
	Metrics *graph.Metrics

	// LogsRoot is the directory handlers write diagnostic artifacts under
	// (prompt.md, response.md, status.json, usage.json). Defaults to ".".
	LogsRoot string

	// MaxSteps bounds the number of node dispatches in a single run, as a
	// backstop against a misauthored graph that cycles forever without
	// ever reaching an exit node. Defaults to 10000.
	MaxSteps int

	// DefaultMaxRetry is the max_retries fallback used when neither a node
	// nor the graph's default_max_retry attribute specifies one.
	DefaultMaxRetry int
}

// Runner executes one Graph to completion per Run call. A Runner is safe
// for concurrent use across independent runs; it holds no per-run mutable
// state itself.
type Runner struct {
	registry        *handler.Registry
	store           graph.CheckpointStore
	bus             *emit.Bus
	logger          *zap.Logger
	metrics         *graph.Metrics
	logsRoot        string
	maxSteps        int
	defaultMaxRetry int

	// inflight counts nodes currently executing across every run dispatched
	// through this Runner (sequential dispatch plus parallel branches),
	// mirroring the teacher's engine.go runConcurrent inflight tracking.
	inflight int64
}

// New creates a Runner dispatching through registry, checkpointing via
// store, and publishing events on bus. store and bus may be nil (no
// checkpointing / no event stream, respectively); registry must not be nil.
func New(registry *handler.Registry, store graph.CheckpointStore, bus *emit.Bus, opts Options) *Runner {
	maxSteps := opts.MaxSteps
	if maxSteps <= 0 {
		maxSteps = 10000
	}
	logsRoot := opts.LogsRoot
	if logsRoot == "" {
		logsRoot = "."
	}
	return &Runner{
		registry:        registry,
		store:           store,
		bus:             bus,
		logger:          opts.Logger,
		metrics:         opts.Metrics,
		logsRoot:        logsRoot,
		maxSteps:        maxSteps,
		defaultMaxRetry: opts.DefaultMaxRetry,
	}
}

// RunResult is the outcome of one top-level Run: the final Outcome (status
// SUCCESS/PARTIAL_SUCCESS/FAIL of the last dispatched node, or a runner-level
// FAIL for a configuration problem such as a missing start node), the
// ordered list of node IDs that completed, their last-reported statuses, and
// the final checkpoint written.
type RunResult struct {
	Outcome        graph.Outcome
	CompletedNodes []string
	NodeOutcomes   map[string]string
	Checkpoint     *graph.Checkpoint
}

// Run executes g to completion, starting a fresh Context. If runID is
// empty, a ULID is generated (grounded on the pack's use of ULIDs for
// run-ordering identifiers; see graph/interview's use of UUIDs for the
// unrelated, externally-facing RemoteInterviewer mailbox IDs).
//
// Run never returns an error for an ordinary node FAIL outcome — that is
// reported as RunResult.Outcome with status FAIL. It returns a non-nil
// error only for configuration problems (no start node, a dangling node
// reference) or for context cancellation, matching spec.md §7's
// propagation policy.
func (r *Runner) Run(ctx context.Context, g *graph.Graph, runID string) (RunResult, error) {
	if runID == "" {
		runID = ulid.Make().String()
	}
	if path := g.AttrString("_policy_config"); path != "" {
		if cfg, err := graph.LoadPolicyConfig(path); err != nil {
			r.logWarn("policy config load failed", zap.String("path", path), zap.Error(err))
		} else {
			cfg.Apply()
			r.logInfo("policy config applied", zap.String("path", path))
		}
	}
	pctx := graph.NewContext()
	if goal, ok := g.Attr("goal"); ok {
		pctx.Set("goal", goal)
	}
	return r.execute(ctx, g, pctx, runID, "", r.logsRoot)
}

// RunSubPipeline implements graph/handler.SubPipelineRunner, letting a
// sub_pipeline node recurse into this same Runner (spec.md §4.K). The
// stage IDs emitted during the nested run are prefixed with idPrefix so
// their log paths stay distinguishable from the parent run's.
func (r *Runner) RunSubPipeline(ctx context.Context, g *graph.Graph, parent *graph.Context, logsRoot, idPrefix string) (graph.Outcome, *graph.Context, error) {
	result, err := r.execute(ctx, g, parent, idPrefix, idPrefix, logsRoot)
	if err != nil {
		return graph.Outcome{}, nil, err
	}
	return result.Outcome, parent, nil
}

// execute is the shared state machine behind both Run and RunSubPipeline.
// baseLogsRoot is the log directory in effect where this run was invoked
// from (the top-level Options.LogsRoot for Run, or the enclosing run's
// already-nested logsRoot for a recursive RunSubPipeline call); idPrefix,
// when non-empty, nests one more directory level under it so sibling and
// nested sub-pipelines never collide on a shared node ID.
func (r *Runner) execute(ctx context.Context, g *graph.Graph, pctx *graph.Context, runID, idPrefix, baseLogsRoot string) (RunResult, error) {
	start, err := selectStartNode(g)
	if err != nil {
		return RunResult{}, err
	}

	rng := seededRNG(runID)
	logsRoot := baseLogsRoot
	if idPrefix != "" {
		logsRoot = filepath.Join(baseLogsRoot, idPrefix)
	}
	checkpoint := graph.NewCheckpoint()
	completed := make([]string, 0, 8)

	r.publish(emit.PipelineStarted, stageID(idPrefix, start.ID), map[string]any{"run_id": runID})
	r.logInfo("pipeline started", zap.String("run_id", runID), zap.String("start_node", start.ID))

	currentID := start.ID
	var finalOutcome graph.Outcome

	for step := 0; ; step++ {
		if step >= r.maxSteps {
			finalOutcome = graph.Fail("max steps exceeded")
			r.publish(emit.PipelineFailed, stageID(idPrefix, currentID), map[string]any{"reason": finalOutcome.FailureReason})
			break
		}
		if err := ctx.Err(); err != nil {
			finalOutcome = graph.Fail("cancelled")
			r.publish(emit.PipelineFailed, stageID(idPrefix, currentID), map[string]any{"reason": "cancelled"})
			r.checkpointNow(ctx, runID, currentID, completed, checkpoint, pctx)
			return RunResult{Outcome: finalOutcome, CompletedNodes: completed, NodeOutcomes: checkpoint.NodeOutcomes, Checkpoint: checkpoint}, err
		}

		node, ok := g.Nodes[currentID]
		if !ok {
			return RunResult{}, &graph.EngineError{Message: "node not found during execution: " + currentID, Code: "NODE_NOT_FOUND"}
		}

		h, ok := r.registry.Resolve(node)
		if !ok {
			finalOutcome = graph.Fail("no handler registered for node " + node.ID)
			completed = append(completed, node.ID)
			checkpoint.NodeOutcomes[node.ID] = string(graph.StatusFail)
			r.publish(emit.PipelineFailed, stageID(idPrefix, node.ID), map[string]any{"reason": finalOutcome.FailureReason})
			break
		}

		sid := stageID(idPrefix, node.ID)

		var outcome graph.Outcome
		var attempts int
		if h.Type() == "parallel" {
			outcome, attempts, err = r.dispatchParallel(ctx, h, node, pctx, g, runID, sid, logsRoot, rng)
		} else {
			outcome, attempts, err = r.dispatchWithRetry(ctx, h, node, pctx, g, runID, sid, logsRoot, rng)
		}
		if err != nil {
			r.checkpointNow(ctx, runID, node.ID, completed, checkpoint, pctx)
			return RunResult{Outcome: graph.Fail("cancelled"), CompletedNodes: completed, NodeOutcomes: checkpoint.NodeOutcomes, Checkpoint: checkpoint}, err
		}

		pctx.ApplyUpdates(outcome.ContextUpdates)
		completed = append(completed, node.ID)
		checkpoint.NodeRetries[node.ID] = attempts
		checkpoint.NodeOutcomes[node.ID] = string(outcome.Status)
		r.checkpointNow(ctx, runID, node.ID, completed, checkpoint, pctx)

		if outcome.Status == graph.StatusFail {
			finalOutcome = outcome
			r.publish(emit.PipelineFailed, sid, map[string]any{"reason": outcome.FailureReason})
			break
		}

		if isExitNode(node) {
			finalOutcome = outcome
			r.publish(emit.PipelineCompleted, sid, map[string]any{"status": string(outcome.Status)})
			break
		}

		var nextID string
		var terminal bool
		if h.Type() == "parallel" {
			nextID, terminal = nextAfterParallel(g, node, pctx)
		} else {
			nextID, terminal = selectNextNode(outcome, node, pctx, g)
		}
		if terminal {
			finalOutcome = outcome
			r.publish(emit.PipelineCompleted, sid, map[string]any{"status": string(outcome.Status)})
			break
		}
		currentID = nextID
	}

	return RunResult{
		Outcome:        finalOutcome,
		CompletedNodes: completed,
		NodeOutcomes:   checkpoint.NodeOutcomes,
		Checkpoint:     checkpoint,
	}, nil
}

func (r *Runner) checkpointNow(ctx context.Context, runID, currentNode string, completed []string, checkpoint *graph.Checkpoint, pctx *graph.Context) {
	checkpoint.Timestamp = time.Now()
	checkpoint.CurrentNode = currentNode
	checkpoint.CompletedNodes = append([]string(nil), completed...)
	checkpoint.ContextValues = graph.SnapshotContext(pctx)
	checkpoint.ComputeFingerprint()
	if r.store == nil {
		return
	}
	err := r.store.Save(ctx, runID, checkpoint)
	if r.metrics != nil {
		r.metrics.RecordCheckpoint(runID, err)
	}
	if err != nil {
		r.logWarn("checkpoint save failed", zap.String("run_id", runID), zap.Error(err))
	}
}

// enterNode marks one more node as executing and reports the new total to
// r.metrics; exitNode, called by the caller once the handler returns,
// reverses it.
func (r *Runner) enterNode() {
	n := atomic.AddInt64(&r.inflight, 1)
	if r.metrics != nil {
		r.metrics.SetInflightNodes(int(n))
	}
}

func (r *Runner) exitNode() {
	n := atomic.AddInt64(&r.inflight, -1)
	if r.metrics != nil {
		r.metrics.SetInflightNodes(int(n))
	}
}

func (r *Runner) publish(kind emit.Kind, nodeID string, data map[string]any) {
	if r.bus == nil {
		return
	}
	r.bus.Publish(emit.Event{Kind: kind, Timestamp: time.Now(), NodeID: nodeID, Data: data})
}

func (r *Runner) logInfo(msg string, fields ...zap.Field) {
	if r.logger != nil {
		r.logger.Info(msg, fields...)
	}
}

func (r *Runner) logWarn(msg string, fields ...zap.Field) {
	if r.logger != nil {
		r.logger.Warn(msg, fields...)
	}
}

func (r *Runner) logDebug(msg string, fields ...zap.Field) {
	if r.logger != nil {
		r.logger.Debug(msg, fields...)
	}
}

// stageID prefixes id with prefix (for sub-pipeline nesting), separated by
// "/", matching the log path layout CodergenHandler writes artifacts under.
func stageID(prefix, id string) string {
	if prefix == "" {
		return id
	}
	return prefix + "/" + id
}

// selectStartNode picks the unique start node: the first (in a deterministic
// tie-break order) node with shape Mdiamond or type "start". The graph model
// stores nodes in a map with no retained parse order, so "first in
// declaration order" is approximated by ascending node ID, recorded as an
// Open Question resolution in DESIGN.md.
func selectStartNode(g *graph.Graph) (*graph.Node, error) {
	var candidates []string
	for id, n := range g.Nodes {
		if n.AttrString("shape") == "Mdiamond" || n.AttrString("type") == "start" {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return nil, graph.ErrNoStartNode
	}
	sort.Strings(candidates)
	return g.Nodes[candidates[0]], nil
}

// isExitNode reports whether node is the pipeline's exit node by shape or
// type attribute, per spec.md §4.K's unconditional termination rule.
func isExitNode(node *graph.Node) bool {
	return node.AttrString("shape") == "Msquare" || node.AttrString("type") == "exit"
}

// selectNextNode implements spec.md §4.K's next-node selection: suggested
// IDs win outright; otherwise the first outgoing edge whose guard predicate
// holds, else the first edge with no guard at all; an empty edge set
// terminates the run.
func selectNextNode(outcome graph.Outcome, node *graph.Node, pctx *graph.Context, g *graph.Graph) (string, bool) {
	if len(outcome.SuggestedNextIDs) > 0 {
		return outcome.SuggestedNextIDs[0], false
	}
	edges := graph.OutgoingEdges(g, node.ID)
	if len(edges) == 0 {
		return "", true
	}
	var fallback *graph.Edge
	for i := range edges {
		e := &edges[i]
		guard, hasGuard := e.Attr("guard")
		if !hasGuard {
			if fallback == nil {
				fallback = e
			}
			continue
		}
		if graph.EvaluatePredicate(pctx, guard.ToString()) {
			return e.To, false
		}
	}
	if fallback != nil {
		return fallback.To, false
	}
	return "", true
}

func (r *Runner) resolveMaxRetries(node *graph.Node, g *graph.Graph) int {
	if v, ok := node.Attr("max_retries"); ok {
		return int(v.AsInt())
	}
	if v, ok := g.Attr("default_max_retry"); ok {
		return int(v.AsInt())
	}
	return r.defaultMaxRetry
}

// seededRNG derives a run-local source of randomness for retry jitter from
// runID, so retry timing is reproducible across identical replays of the
// same run ID.
func seededRNG(runID string) *rand.Rand {
	hash := sha256.Sum256([]byte(runID))
	seed := int64(binary.BigEndian.Uint64(hash[:8])) // #nosec G115 -- deterministic seed derivation, not security-sensitive
	return rand.New(rand.NewSource(seed))            // #nosec G404 -- jitter timing, not security-sensitive
}
