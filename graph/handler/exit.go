package handler

import (
	"context"

	"github.com/otimme/attractor-engine/graph"
)

// ExitHandler is the pipeline terminal node (shape Msquare / type "exit").
// It reports SUCCESS with an empty SuggestedNextIDs, signaling the runner
// to terminate with PIPELINE_COMPLETED, per spec.md §4.G/§4.K.
type ExitHandler struct{}

// Type implements Handler.
func (h *ExitHandler) Type() string { return "exit" }

// Execute implements Handler.
func (h *ExitHandler) Execute(ctx context.Context, node *graph.Node, pctx *graph.Context, g *graph.Graph, logsRoot string) (graph.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return graph.Outcome{}, err
	}
	return graph.Outcome{
		Status:           graph.StatusSuccess,
		Notes:            "exited at " + node.ID,
		SuggestedNextIDs: nil,
	}, nil
}
