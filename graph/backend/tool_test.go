package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMockTool_ReturnsResponsesInOrderThenRepeatsLast(t *testing.T) {
	m := &MockTool{ToolName: "mock", Responses: []map[string]any{
		{"n": 1},
		{"n": 2},
	}}

	for i, want := range []int{1, 2, 2} {
		got, err := m.Call(context.Background(), map[string]any{"i": i})
		if err != nil {
			t.Fatalf("Call[%d]: %v", i, err)
		}
		if got["n"] != want {
			t.Errorf("Call[%d][n] = %v, want %v", i, got["n"], want)
		}
	}

	calls := m.Calls()
	if len(calls) != 3 {
		t.Fatalf("len(calls) = %d, want 3", len(calls))
	}
}

func TestMockTool_Name(t *testing.T) {
	m := &MockTool{ToolName: "search"}
	if m.Name() != "search" {
		t.Errorf("Name() = %q, want search", m.Name())
	}
}

func TestHTTPTool_RequiresURL(t *testing.T) {
	h := NewHTTPTool()
	_, err := h.Call(context.Background(), map[string]any{})
	if err == nil {
		t.Fatal("expected error when url is missing")
	}
}

func TestHTTPTool_GetRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if r.Header.Get("X-Test") != "1" {
			t.Errorf("X-Test header = %q, want 1", r.Header.Get("X-Test"))
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("hello"))
	}))
	defer srv.Close()

	h := NewHTTPTool()
	out, err := h.Call(context.Background(), map[string]any{
		"url":     srv.URL,
		"headers": map[string]any{"X-Test": "1"},
	})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if out["status_code"] != http.StatusOK {
		t.Errorf("status_code = %v, want 200", out["status_code"])
	}
	if out["body"] != "hello" {
		t.Errorf("body = %v, want hello", out["body"])
	}
}
