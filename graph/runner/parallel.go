package runner

import (
	"context"
	"encoding/json"
	"math/rand"
	"sync"

	"github.com/otimme/attractor-engine/graph"
	"github.com/otimme/attractor-engine/graph/handler"
)

// dispatchParallel runs node's ParallelHandler (which only validates that
// outgoing edges exist), then fans out to each of those edges' target
// nodes concurrently, each against its own snapshot of the Context and
// under its own retry policy (spec.md §4.K, §5). Collected results are
// JSON-encoded into the `parallel.results` Context key of the *parent*
// Context for the fan-in node to read.
func (r *Runner) dispatchParallel(ctx context.Context, h handler.Handler, node *graph.Node, pctx *graph.Context, g *graph.Graph, runID, stageID, logsRoot string, rng *rand.Rand) (graph.Outcome, int, error) {
	validation, attempts, err := r.dispatchWithRetry(ctx, h, node, pctx, g, runID, stageID, logsRoot, rng)
	if err != nil || validation.Status == graph.StatusFail {
		return validation, attempts, err
	}

	edges := graph.OutgoingEdges(g, node.ID)
	results := make([]graph.ParallelResult, len(edges))

	var wg sync.WaitGroup
	for i, e := range edges {
		branch, ok := g.Nodes[e.To]
		if !ok {
			results[i] = graph.ParallelResult{NodeID: e.To, Status: graph.StatusFail, Notes: "parallel branch node not found"}
			continue
		}
		wg.Add(1)
		go func(idx int, branch *graph.Node) {
			defer wg.Done()
			branchCtx := pctx.Snapshot()
			bh, ok := r.registry.Resolve(branch)
			if !ok {
				results[idx] = graph.ParallelResult{NodeID: branch.ID, Status: graph.StatusFail, Notes: "no handler registered for node " + branch.ID}
				return
			}
			// Each branch gets its own *rand.Rand: math/rand.Rand is not
			// safe for concurrent use, and these goroutines run in
			// parallel, so the parent rng cannot be shared across them.
			branchRNG := seededRNG(runID + "/" + branch.ID)
			outcome, _, derr := r.dispatchWithRetry(ctx, bh, branch, branchCtx, g, runID, stageID+"/"+branch.ID, logsRoot, branchRNG)
			if derr != nil {
				results[idx] = graph.ParallelResult{NodeID: branch.ID, Status: graph.StatusFail, Notes: derr.Error()}
				return
			}
			results[idx] = graph.ParallelResult{
				NodeID:         branch.ID,
				Status:         outcome.Status,
				Notes:          outcome.Notes,
				ContextUpdates: outcome.ContextUpdates,
			}
		}(i, branch)
	}
	wg.Wait()

	encoded, encErr := json.Marshal(results)
	if encErr != nil {
		return graph.Fail("failed to encode parallel results: " + encErr.Error()), attempts, nil
	}
	pctx.SetString("parallel.results", string(encoded))

	return validation, attempts, nil
}

// nextAfterParallel resolves the node the run continues at once a parallel
// region's branches have all been dispatched: the common successor that
// every branch's own outgoing edge points to (the fan_in node), not the
// parallel node's own outgoing edges (those are the branches themselves
// and have already been consumed as the fan-out targets).
//
// If the branches disagree on their successor, the first branch's first
// edge target is used as a documented fallback; if no branch has any
// outgoing edge at all, the run terminates.
func nextAfterParallel(g *graph.Graph, node *graph.Node, _ *graph.Context) (string, bool) {
	edges := graph.OutgoingEdges(g, node.ID)
	var common string
	for _, e := range edges {
		branchEdges := graph.OutgoingEdges(g, e.To)
		if len(branchEdges) == 0 {
			continue
		}
		target := branchEdges[0].To
		if common == "" {
			common = target
		} else if common != target {
			return common, false
		}
	}
	if common == "" {
		return "", true
	}
	return common, false
}
