package handler

import (
	"context"
	"strings"

	"github.com/otimme/attractor-engine/graph"
)

// SubPipelineRunner is implemented by the Runner (package graph/runner). It is
// injected here, rather than imported directly, to avoid an import cycle:
// the Runner needs a handler.Registry to dispatch nodes, and a
// sub-pipeline node needs to recurse into the Runner.
type SubPipelineRunner interface {
	RunSubPipeline(ctx context.Context, g *graph.Graph, parent *graph.Context, logsRoot, idPrefix string) (graph.Outcome, *graph.Context, error)
}

// SubPipelineHandler treats a named referenced graph as a nested pipeline
// (shape house / type "sub_pipeline"). It runs the referenced graph with
// the same registry, backend, and emitter as the parent (via Runner), a
// child Context shallow-copied from the parent, and flows the keys named
// by the node's `export.keys` attribute (comma-separated) back into the
// parent's context updates. Sub-pipeline failure propagates as this node's
// outcome (spec.md §4.G).
type SubPipelineHandler struct {
	Runner SubPipelineRunner
	// Graphs maps a `pipeline` attribute value to the referenced Graph.
	Graphs map[string]*graph.Graph
}

// Type implements Handler.
func (h *SubPipelineHandler) Type() string { return "sub_pipeline" }

// Execute implements Handler.
func (h *SubPipelineHandler) Execute(ctx context.Context, node *graph.Node, pctx *graph.Context, g *graph.Graph, logsRoot string) (graph.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return graph.Outcome{}, err
	}

	name := node.AttrString("pipeline")
	if name == "" {
		return graph.Fail("sub_pipeline node " + node.ID + ": no `pipeline` attribute set"), nil
	}
	child, ok := h.Graphs[name]
	if !ok {
		return graph.Fail("sub_pipeline node " + node.ID + ": no graph registered under name " + name), nil
	}
	if h.Runner == nil {
		return graph.Fail("sub_pipeline node " + node.ID + ": no runner configured to execute it"), nil
	}

	outcome, childCtx, err := h.Runner.RunSubPipeline(ctx, child, pctx.Snapshot(), logsRoot, node.ID)
	if err != nil {
		return graph.Outcome{}, err
	}
	if outcome.Status == graph.StatusFail {
		return outcome, nil
	}

	updates := map[string]graph.Attr{"last_stage": graph.String(node.ID)}
	for _, key := range exportKeys(node.AttrString("export.keys")) {
		if v, ok := childCtx.GetAttr(key); ok {
			updates[key] = v
		}
	}

	return outcome.WithContext(updates), nil
}

func exportKeys(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
