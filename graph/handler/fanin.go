package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/otimme/attractor-engine/graph"
	"github.com/otimme/attractor-engine/graph/backend"
)

// statusRank orders outcome statuses for fan-in candidate selection: lower
// rank wins (spec.md §4.G).
var statusRank = map[graph.Status]int{
	graph.StatusSuccess:        0,
	graph.StatusPartialSuccess: 1,
	graph.StatusRetry:          2,
	graph.StatusFail:           3,
}

// FanInHandler joins a parallel region (shape tripleoctagon / type
// "parallel.fan_in"). It reads the `parallel.results` Context key (a
// JSON-encoded []graph.ParallelResult written by the runner after the
// fan-out region completes) and selects a winner, per spec.md §4.G.
type FanInHandler struct {
	Backend backend.Backend
}

// Type implements Handler.
func (h *FanInHandler) Type() string { return "parallel.fan_in" }

// Execute implements Handler.
func (h *FanInHandler) Execute(ctx context.Context, node *graph.Node, pctx *graph.Context, g *graph.Graph, logsRoot string) (graph.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return graph.Outcome{}, err
	}

	raw := pctx.Get("parallel.results")
	if raw == "" {
		return graph.Fail("No parallel results"), nil
	}
	var results []graph.ParallelResult
	if err := json.Unmarshal([]byte(raw), &results); err != nil || len(results) == 0 {
		return graph.Fail("No parallel results"), nil
	}

	allFailed := true
	for _, r := range results {
		if r.Status != graph.StatusFail {
			allFailed = false
			break
		}
	}
	if allFailed {
		return graph.Fail("All parallel candidates failed"), nil
	}

	if prompt := node.AttrString("prompt"); prompt != "" && h.Backend != nil {
		if best, ok := h.selectViaBackend(ctx, node, prompt, pctx, logsRoot, results); ok {
			return h.winOutcome(node, best), nil
		}
	}

	best := selectHeuristic(results)
	return h.winOutcome(node, best), nil
}

// selectHeuristic ranks candidates by status, breaking ties by descending
// score then ascending node ID, per spec.md §4.G.
func selectHeuristic(results []graph.ParallelResult) graph.ParallelResult {
	ranked := append([]graph.ParallelResult(nil), results...)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if statusRank[a.Status] != statusRank[b.Status] {
			return statusRank[a.Status] < statusRank[b.Status]
		}
		as, bs := scoreOf(a), scoreOf(b)
		if as != bs {
			return as > bs
		}
		return a.NodeID < b.NodeID
	})
	return ranked[0]
}

func scoreOf(r graph.ParallelResult) float64 {
	if r.Score != nil {
		return *r.Score
	}
	return 0
}

// selectViaBackend builds an evaluation prompt listing the candidates and
// asks the backend to choose one. The first non-empty reply line is
// matched exactly against candidate IDs; failing that, the full reply is
// scanned for any candidate ID substring. On backend error or no match, ok
// is false and the caller falls back to the heuristic.
func (h *FanInHandler) selectViaBackend(ctx context.Context, node *graph.Node, prompt string, pctx *graph.Context, logsRoot string, results []graph.ParallelResult) (graph.ParallelResult, bool) {
	var b strings.Builder
	b.WriteString(prompt)
	b.WriteString("\n\nCandidates:\n")
	for _, r := range results {
		fmt.Fprintf(&b, "- %s: status=%s notes=%s\n", r.NodeID, r.Status, r.Notes)
	}

	result, err := h.Backend.Run(ctx, node, b.String(), pctx, backend.RunOptions{LogsRoot: logsRoot})
	if err != nil || result.IsOutcome {
		return graph.ParallelResult{}, false
	}

	reply := strings.TrimSpace(result.Text)
	firstLine := reply
	if idx := strings.IndexByte(reply, '\n'); idx >= 0 {
		firstLine = strings.TrimSpace(reply[:idx])
	}
	for _, r := range results {
		if firstLine == r.NodeID {
			return r, true
		}
	}
	for _, r := range results {
		if strings.Contains(reply, r.NodeID) {
			return r, true
		}
	}
	return graph.ParallelResult{}, false
}

func (h *FanInHandler) winOutcome(node *graph.Node, best graph.ParallelResult) graph.Outcome {
	return graph.Outcome{
		Status: graph.StatusSuccess,
		Notes:  "fan-in selected " + best.NodeID,
		ContextUpdates: map[string]graph.Attr{
			"last_stage":                   graph.String(node.ID),
			"parallel.fan_in.best_id":      graph.String(best.NodeID),
			"parallel.fan_in.best_outcome": graph.String(string(best.Status)),
		},
	}
}
