package handler

import (
	"context"

	"github.com/otimme/attractor-engine/graph"
)

// ConditionalHandler selects an outgoing edge by predicate (shape diamond /
// type "conditional"). It evaluates each outgoing edge's `when` attribute
// (falling back to `label`) as a graph.EvaluatePredicate expression against
// the live Context, in declaration order; the first match wins. If none
// match, the edge labelled "default" is used. If there are no outgoing
// edges, or no match and no default edge, it fails (spec.md §4.G).
type ConditionalHandler struct{}

// Type implements Handler.
func (h *ConditionalHandler) Type() string { return "conditional" }

// Execute implements Handler.
func (h *ConditionalHandler) Execute(ctx context.Context, node *graph.Node, pctx *graph.Context, g *graph.Graph, logsRoot string) (graph.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return graph.Outcome{}, err
	}

	edges := graph.OutgoingEdges(g, node.ID)
	if len(edges) == 0 {
		return graph.Fail("no outgoing edges for conditional node: " + node.ID), nil
	}

	var defaultEdge *graph.Edge
	for i := range edges {
		e := &edges[i]
		label := e.AttrString("label")
		if label == "default" {
			defaultEdge = e
		}
		expr := e.AttrString("when")
		if expr == "" {
			expr = label
		}
		if expr == "default" {
			continue
		}
		if graph.EvaluatePredicate(pctx, expr) {
			return graph.Outcome{
				Status:           graph.StatusSuccess,
				Notes:            "conditional matched edge to " + e.To,
				SuggestedNextIDs: []string{e.To},
			}, nil
		}
	}

	if defaultEdge != nil {
		return graph.Outcome{
			Status:           graph.StatusSuccess,
			Notes:            "conditional fell through to default edge",
			SuggestedNextIDs: []string{defaultEdge.To},
		}, nil
	}

	return graph.Fail("conditional node " + node.ID + ": no edge matched and no default edge"), nil
}
