package backend

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MCPTool invokes a single named tool on a Model Context Protocol server
// launched as a subprocess, implementing the Tool interface so a `tool`
// node can call it the same way it calls any locally-registered Tool
// (SPEC_FULL.md §4.G).
type MCPTool struct {
	// ServerCommand is the command line that launches the MCP server, e.g.
	// "npx -y @modelcontextprotocol/server-filesystem /data".
	ServerCommand string
	// ToolName is the tool this MCPTool calls on the connected server.
	ToolName string

	mu      sync.Mutex
	session *mcp.ClientSession
}

// NewMCPTool creates an MCPTool for toolName on the server started by
// serverCommand. The connection is established lazily, on first Call.
func NewMCPTool(serverCommand, toolName string) *MCPTool {
	return &MCPTool{ServerCommand: serverCommand, ToolName: toolName}
}

// DefaultMCPClient implements graph/handler.MCPClient by creating a fresh
// MCPTool per call. Nothing is cached across Tool calls: each returned
// MCPTool connects lazily and keeps only its own session, so repeated
// calls to Tool with the same arguments dial a new subprocess; callers that invoke
// the same tool node repeatedly should cache the MCPTool themselves.
type DefaultMCPClient struct{}

// Tool implements graph/handler.MCPClient.
func (DefaultMCPClient) Tool(serverCommand, toolName string) Tool {
	return NewMCPTool(serverCommand, toolName)
}

// Name implements Tool, returning the MCP tool name.
func (m *MCPTool) Name() string { return m.ToolName }

// Call implements Tool by forwarding input as the tool's arguments and
// flattening the structured content blocks of the result into a map.
func (m *MCPTool) Call(ctx context.Context, input map[string]any) (map[string]any, error) {
	session, err := m.connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("mcp tool %s: connect: %w", m.ToolName, err)
	}

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      m.ToolName,
		Arguments: input,
	})
	if err != nil {
		return nil, fmt.Errorf("mcp tool %s: %w", m.ToolName, err)
	}
	if result.IsError {
		return nil, fmt.Errorf("mcp tool %s: server reported an error result", m.ToolName)
	}

	var text strings.Builder
	for _, c := range result.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			text.WriteString(tc.Text)
		}
	}
	return map[string]any{"text": text.String()}, nil
}

func (m *MCPTool) connect(ctx context.Context) (*mcp.ClientSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session != nil {
		return m.session, nil
	}

	parts := strings.Fields(m.ServerCommand)
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty mcp_server command")
	}
	cmd := exec.Command(parts[0], parts[1:]...)

	client := mcp.NewClient(&mcp.Implementation{Name: "attractor-engine", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &mcp.CommandTransport{Command: cmd}, nil)
	if err != nil {
		return nil, err
	}
	m.session = session
	return session, nil
}
