package handler

import (
	"context"
	"strings"

	"github.com/otimme/attractor-engine/graph"
)

// ParallelHandler marks a fan-out node (shape component / type "parallel").
// Execute itself does no dispatching: the runner special-cases the
// "parallel" handler type, collecting this node's outgoing edges and
// dispatching each target concurrently before continuing at the shared
// fan-in node (SPEC_FULL.md §4.K). Execute exists so the type still
// resolves to a Handler and can be invoked directly in isolation (e.g. by
// tests), in which case it simply reports the branch count it would fan
// out to.
type ParallelHandler struct{}

// Type implements Handler.
func (h *ParallelHandler) Type() string { return "parallel" }

// Execute implements Handler.
func (h *ParallelHandler) Execute(ctx context.Context, node *graph.Node, pctx *graph.Context, g *graph.Graph, logsRoot string) (graph.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return graph.Outcome{}, err
	}

	edges := graph.OutgoingEdges(g, node.ID)
	if len(edges) == 0 {
		return graph.Fail("no outgoing branches for parallel node: " + node.ID), nil
	}

	branches := make([]string, len(edges))
	for i, e := range edges {
		branches[i] = e.To
	}

	return graph.Outcome{
		Status: graph.StatusSuccess,
		Notes:  "parallel fan-out from " + node.ID,
		ContextUpdates: map[string]graph.Attr{
			"last_stage":        graph.String(node.ID),
			"parallel.branches": graph.String(strings.Join(branches, ",")),
		},
	}, nil
}
