package handler

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/otimme/attractor-engine/graph"
	"github.com/otimme/attractor-engine/graph/backend"
)

// MCPClient resolves an (mcp_server, mcp_tool) node attribute pair to a
// callable Tool. Kept as an interface so graph/handler does not depend
// directly on the MCP transport package; graph/backend.DefaultMCPClient is
// the concrete implementation wired in at startup.
type MCPClient interface {
	Tool(serverCommand, toolName string) backend.Tool
}

// ToolHandler invokes an external tool (shape parallelogram / type
// "tool"). This is the ninth built-in handler, supplementing the
// distilled spec's shape table with an actual handler body
// (SPEC_FULL.md §4.G): it validates the node's `input` JSON attribute
// against an optional `schema` JSON Schema attribute, then resolves the
// tool either over MCP (when `mcp_server`/`mcp_tool` are set) or from a
// locally-registered Tool by the `tool_name` attribute.
type ToolHandler struct {
	Tools     map[string]backend.Tool
	MCPClient MCPClient
}

// Type implements Handler.
func (h *ToolHandler) Type() string { return "tool" }

// Execute implements Handler.
func (h *ToolHandler) Execute(ctx context.Context, node *graph.Node, pctx *graph.Context, g *graph.Graph, logsRoot string) (graph.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return graph.Outcome{}, err
	}

	input, err := parseToolInput(node.AttrString("input"))
	if err != nil {
		return graph.Fail("tool node " + node.ID + ": invalid input JSON: " + err.Error()), nil
	}

	if schemaSrc := node.AttrString("schema"); schemaSrc != "" {
		if err := validateInput(schemaSrc, input); err != nil {
			return graph.Fail("tool node " + node.ID + ": schema validation failed: " + err.Error()), nil
		}
	}

	tool, err := h.resolveTool(node)
	if err != nil {
		return graph.Fail(err.Error()), nil
	}

	output, err := tool.Call(ctx, input)
	if err != nil {
		return graph.Fail("tool " + tool.Name() + ": " + err.Error()), nil
	}

	outputJSON, _ := json.Marshal(output)

	return graph.Outcome{
		Status: graph.StatusSuccess,
		Notes:  "tool " + tool.Name() + " completed",
		ContextUpdates: map[string]graph.Attr{
			"last_stage":  graph.String(node.ID),
			"tool.output": graph.String(string(outputJSON)),
		},
	}, nil
}

func (h *ToolHandler) resolveTool(node *graph.Node) (backend.Tool, error) {
	if server := node.AttrString("mcp_server"); server != "" {
		toolName := node.AttrString("mcp_tool")
		if toolName == "" {
			return nil, &toolError{node.ID, "mcp_server is set but mcp_tool is missing"}
		}
		if h.MCPClient == nil {
			return nil, &toolError{node.ID, "mcp_server is set but no MCPClient is configured"}
		}
		return h.MCPClient.Tool(server, toolName), nil
	}

	name := node.AttrString("tool_name")
	if name == "" {
		return nil, &toolError{node.ID, "neither mcp_server nor tool_name is set"}
	}
	tool, ok := h.Tools[name]
	if !ok {
		return nil, &toolError{node.ID, "no tool registered under name " + name}
	}
	return tool, nil
}

type toolError struct {
	nodeID  string
	message string
}

func (e *toolError) Error() string {
	return "tool node " + e.nodeID + ": " + e.message
}

func parseToolInput(raw string) (map[string]any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return map[string]any{}, nil
	}
	var input map[string]any
	if err := json.Unmarshal([]byte(raw), &input); err != nil {
		return nil, err
	}
	return input, nil
}

func validateInput(schemaSrc string, input map[string]any) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", strings.NewReader(schemaSrc)); err != nil {
		return err
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return err
	}
	return schema.Validate(input)
}
