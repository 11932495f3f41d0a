// Package handler provides the per-node execution units the Runner
// dispatches to: the Handler interface, a type/shape resolution Registry,
// and the nine built-in handlers (SPEC_FULL.md §4.F, §4.G).
package handler

import (
	"context"
	"fmt"

	"github.com/otimme/attractor-engine/graph"
	"github.com/otimme/attractor-engine/graph/backend"
	"github.com/otimme/attractor-engine/graph/interview"
)

// Handler executes one node. logsRoot is the run's log directory root;
// handlers that write diagnostic artifacts (prompt.md, status.json) place
// them under logsRoot/<nodeId>/.
type Handler interface {
	Type() string
	Execute(ctx context.Context, node *graph.Node, pctx *graph.Context, g *graph.Graph, logsRoot string) (graph.Outcome, error)
}

// Registry resolves a node to a Handler by the type→shape→default rules of
// SPEC_FULL.md §4.F.
type Registry struct {
	handlers    map[string]Handler
	defaultType string
}

// NewRegistry creates an empty Registry with no default handler.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds h to the registry, keyed by its Type(), replacing any
// handler previously registered under that name. It returns an error only
// if h reports an empty Type.
func (r *Registry) Register(h Handler) error {
	if h.Type() == "" {
		return fmt.Errorf("handler: cannot register a handler with an empty Type()")
	}
	r.handlers[h.Type()] = h
	return nil
}

// MustRegister registers h, panicking if it reports an empty Type. Intended
// for registry construction at startup, where a misconfigured handler is a
// programmer error, not a runtime condition to recover from.
func (r *Registry) MustRegister(h Handler) {
	if err := r.Register(h); err != nil {
		panic(err)
	}
}

// SetDefaultType names the handler type used when a node's type and shape
// both fail to resolve to a registered handler.
func (r *Registry) SetDefaultType(typeName string) {
	r.defaultType = typeName
}

// Get returns the handler registered under typeName, if any.
func (r *Registry) Get(typeName string) (Handler, bool) {
	h, ok := r.handlers[typeName]
	return h, ok
}

// Resolve finds the handler for node per SPEC_FULL.md §4.F: an explicit
// `type` attribute wins if registered; otherwise the node's `shape`
// attribute maps through ShapeToType; otherwise the registry's default
// handler, if one was set.
func (r *Registry) Resolve(node *graph.Node) (Handler, bool) {
	if typeName := node.AttrString("type"); typeName != "" {
		if h, ok := r.handlers[typeName]; ok {
			return h, true
		}
	}
	if shape := node.AttrString("shape"); shape != "" {
		if h, ok := r.handlers[ShapeToType(shape)]; ok {
			return h, true
		}
	}
	if r.defaultType != "" {
		if h, ok := r.handlers[r.defaultType]; ok {
			return h, true
		}
	}
	return nil, false
}

// shapeToType is the fixed Graphviz-shape to handler-type mapping named in
// spec.md §4.F.
var shapeToType = map[string]string{
	"Mdiamond":      "start",
	"Msquare":       "exit",
	"box":           "codergen",
	"diamond":       "conditional",
	"component":     "parallel",
	"tripleoctagon": "parallel.fan_in",
	"parallelogram": "tool",
	"house":         "sub_pipeline",
	"hexagon":       "wait.human",
}

// ShapeToType returns the handler type string for a Graphviz shape name, or
// "" if the shape has no fixed mapping.
func ShapeToType(shape string) string {
	return shapeToType[shape]
}

// DefaultRegistry builds a Registry with all nine built-in handlers
// registered and codergen set as the default. backend is used by codergen
// and fan-in (for LLM-assisted candidate selection); interviewer by
// wait.human; subRunner by sub_pipeline. Any of these may be nil, in which
// case the corresponding handler falls back to its documented stub/failure
// behavior.
func DefaultRegistry(cfg RegistryConfig) *Registry {
	r := NewRegistry()
	r.MustRegister(&StartHandler{})
	r.MustRegister(&ExitHandler{})
	r.MustRegister(&CodergenHandler{Backend: cfg.Backend})
	r.MustRegister(&ConditionalHandler{})
	r.MustRegister(&ParallelHandler{})
	r.MustRegister(&FanInHandler{Backend: cfg.Backend})
	r.MustRegister(&ToolHandler{Tools: cfg.Tools, MCPClient: cfg.MCPClient})
	r.MustRegister(&WaitForHumanHandler{Interviewer: cfg.Interviewer})
	r.MustRegister(&SubPipelineHandler{Runner: cfg.SubRunner, Graphs: cfg.SubGraphs})
	r.SetDefaultType("codergen")
	return r
}

// RegistryConfig bundles the optional collaborators DefaultRegistry wires
// into the built-in handlers. Every field may be left zero-valued; each
// handler degrades to its documented stub/failure behavior without its
// collaborator.
type RegistryConfig struct {
	Backend     backend.Backend
	Tools       map[string]backend.Tool
	MCPClient   MCPClient
	Interviewer interview.Interviewer
	SubRunner   SubPipelineRunner
	SubGraphs   map[string]*graph.Graph
}
