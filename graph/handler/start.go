package handler

import (
	"context"

	"github.com/otimme/attractor-engine/graph"
)

// StartHandler is the pipeline entry point (shape Mdiamond / type "start").
// It performs no work: the runner selects the start node before dispatch
// and it always reports SUCCESS with no context updates, per spec.md §4.G.
type StartHandler struct{}

// Type implements Handler.
func (h *StartHandler) Type() string { return "start" }

// Execute implements Handler.
func (h *StartHandler) Execute(ctx context.Context, node *graph.Node, pctx *graph.Context, g *graph.Graph, logsRoot string) (graph.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return graph.Outcome{}, err
	}
	return graph.Outcome{Status: graph.StatusSuccess, Notes: "started at " + node.ID}, nil
}
