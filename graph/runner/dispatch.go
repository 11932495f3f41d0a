package runner

import (
	"context"
	"math/rand"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/otimme/attractor-engine/graph"
	"github.com/otimme/attractor-engine/graph/emit"
	"github.com/otimme/attractor-engine/graph/handler"
)

// dispatchWithRetry runs node's handler under the node's resolved retry
// policy, exactly per spec.md §4.H's five-step loop. It returns the
// terminal Outcome (SUCCESS/PARTIAL_SUCCESS/SKIPPED/FAIL — never RETRY, the
// loop never exits on that status), the number of attempts consumed, and a
// non-nil error only when ctx was cancelled mid-dispatch.
func (r *Runner) dispatchWithRetry(ctx context.Context, h handler.Handler, node *graph.Node, pctx *graph.Context, g *graph.Graph, runID, stageID, logsRoot string, rng *rand.Rand) (graph.Outcome, int, error) {
	preset := graph.ResolvePreset(node.AttrString("retry_policy"))
	policy := graph.NewRetryPolicy(preset, r.resolveMaxRetries(node, g))

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return graph.Outcome{}, attempt - 1, err
		}

		r.publish(emit.StageStarted, stageID, map[string]any{"attempt": attempt, "max_attempts": policy.MaxAttempts})
		r.logDebug("stage started", zap.String("node_id", node.ID), zap.Int("attempt", attempt))

		r.enterNode()
		started := time.Now()
		outcome, err := h.Execute(ctx, node, pctx, g, logsRoot)
		latency := time.Since(started)
		r.exitNode()

		if err != nil {
			if ctx.Err() != nil {
				return graph.Outcome{}, attempt, ctx.Err()
			}
			r.recordLatency(runID, node.ID, latency, graph.StatusFail)

			if graph.ShouldRetry(err) && attempt < policy.MaxAttempts {
				r.retryOnce(ctx, runID, node.ID, stageID, policy, attempt, rng, err.Error())
				continue
			}
			failed := graph.Fail(err.Error())
			r.completeStage(runID, node.ID, stageID, failed, attempt)
			return failed, attempt, nil
		}

		r.recordLatency(runID, node.ID, latency, outcome.Status)

		switch outcome.Status {
		case graph.StatusSuccess, graph.StatusPartialSuccess, graph.StatusSkipped:
			pctx.Delete("internal.retry_count." + node.ID)
			r.completeStage(runID, node.ID, stageID, outcome, attempt)
			return outcome, attempt, nil

		case graph.StatusFail:
			r.completeStage(runID, node.ID, stageID, outcome, attempt)
			return outcome, attempt, nil

		case graph.StatusRetry:
			if attempt < policy.MaxAttempts {
				pctx.SetString("internal.retry_count."+node.ID, strconv.Itoa(attempt))
				r.retryOnce(ctx, runID, node.ID, stageID, policy, attempt, rng, outcome.Notes)
				continue
			}
			if allowPartial(node) {
				partial := graph.Outcome{Status: graph.StatusPartialSuccess, Notes: "partial accepted", ContextUpdates: outcome.ContextUpdates}
				r.completeStage(runID, node.ID, stageID, partial, attempt)
				return partial, attempt, nil
			}
			failed := graph.Fail("max retries exceeded")
			r.completeStage(runID, node.ID, stageID, failed, attempt)
			return failed, attempt, nil

		default:
			failed := graph.Fail("unrecognized outcome status: " + string(outcome.Status))
			r.completeStage(runID, node.ID, stageID, failed, attempt)
			return failed, attempt, nil
		}
	}
}

func allowPartial(node *graph.Node) bool {
	v, ok := node.Attr("allow_partial")
	return ok && v.AsBool()
}

func (r *Runner) retryOnce(ctx context.Context, runID, nodeID, stageID string, policy graph.RetryPolicy, attempt int, rng *rand.Rand, reason string) {
	if r.metrics != nil {
		r.metrics.IncrementRetries(runID, nodeID)
	}
	r.publish(emit.StageRetry, stageID, map[string]any{"attempt": attempt, "max_attempts": policy.MaxAttempts, "reason": reason})
	r.logDebug("stage retry", zap.String("node_id", nodeID), zap.Int("attempt", attempt), zap.String("reason", reason))

	delay := graph.ComputeBackoff(policy, attempt, rng)
	if delay <= 0 {
		return
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

func (r *Runner) recordLatency(runID, nodeID string, latency time.Duration, status graph.Status) {
	if r.metrics != nil {
		r.metrics.RecordNodeLatency(runID, nodeID, latency, status)
	}
}

func (r *Runner) completeStage(runID, nodeID, stageID string, outcome graph.Outcome, attempt int) {
	if r.metrics != nil {
		r.metrics.RecordOutcome(runID, nodeID, outcome.Status)
	}
	r.publish(emit.StageCompleted, stageID, map[string]any{"status": string(outcome.Status), "attempt": attempt})
	r.logDebug("stage completed", zap.String("node_id", nodeID), zap.String("status", string(outcome.Status)))
}
