package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// Tool is an executable capability a `tool`-typed node invokes.
type Tool interface {
	Name() string
	Call(ctx context.Context, input map[string]any) (map[string]any, error)
}

// ToolCall records one MockTool invocation, for test assertions.
type ToolCall struct {
	Input map[string]any
}

// MockTool is a test double returning a configured sequence of outputs.
type MockTool struct {
	ToolName  string
	Responses []map[string]any
	Err       error

	mu    sync.Mutex
	calls []ToolCall
	next  int
}

// Name implements Tool.
func (m *MockTool) Name() string { return m.ToolName }

// Call implements Tool.
func (m *MockTool) Call(_ context.Context, input map[string]any) (map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, ToolCall{Input: input})
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Responses) == 0 {
		return map[string]any{}, nil
	}
	idx := m.next
	if idx >= len(m.Responses) {
		idx = len(m.Responses) - 1
	} else {
		m.next++
	}
	return m.Responses[idx], nil
}

// Calls returns a copy of the recorded invocation history.
func (m *MockTool) Calls() []ToolCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ToolCall(nil), m.calls...)
}

// HTTPTool makes an HTTP request described by its input map.
type HTTPTool struct {
	client *http.Client
}

// NewHTTPTool creates an HTTPTool with default client settings.
func NewHTTPTool() *HTTPTool {
	return &HTTPTool{client: &http.Client{}}
}

// Name implements Tool.
func (h *HTTPTool) Name() string { return "http_request" }

// Call implements Tool. Recognized input keys: method (default GET), url
// (required), headers, body.
func (h *HTTPTool) Call(ctx context.Context, input map[string]any) (map[string]any, error) {
	method, _ := input["method"].(string)
	if method == "" {
		method = http.MethodGet
	}
	url, _ := input["url"].(string)
	if url == "" {
		return nil, fmt.Errorf("http_request: url is required")
	}

	var body io.Reader
	if b, ok := input["body"].(string); ok {
		body = strings.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("http_request: %w", err)
	}
	if headers, ok := input["headers"].(map[string]any); ok {
		for k, v := range headers {
			if s, ok := v.(string); ok {
				req.Header.Set(k, s)
			}
		}
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http_request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, fmt.Errorf("http_request: reading response: %w", err)
	}

	respHeaders := make(map[string]any, len(resp.Header))
	for k, v := range resp.Header {
		respHeaders[k] = strings.Join(v, ", ")
	}

	return map[string]any{
		"status_code": resp.StatusCode,
		"headers":     respHeaders,
		"body":        buf.String(),
	}, nil
}
