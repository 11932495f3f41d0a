package backend

import (
	"context"
	"sync"

	"github.com/otimme/attractor-engine/graph"
)

// Call records one StubBackend invocation, for test assertions.
type Call struct {
	NodeID string
	Prompt string
}

// StubBackend is a test/default double: it returns a configured sequence
// of Results (repeating the last once exhausted) and records every call.
type StubBackend struct {
	Results []Result
	Err     error

	mu    sync.Mutex
	calls []Call
	next  int
}

// NewStubBackend creates a StubBackend that returns text in order.
func NewStubBackend(text ...string) *StubBackend {
	results := make([]Result, len(text))
	for i, t := range text {
		results[i] = TextResult(t)
	}
	return &StubBackend{Results: results}
}

// Run implements Backend.
func (s *StubBackend) Run(_ context.Context, node *graph.Node, prompt string, _ *graph.Context, _ RunOptions) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Call{NodeID: node.ID, Prompt: prompt})
	if s.Err != nil {
		return Result{}, s.Err
	}
	if len(s.Results) == 0 {
		return TextResult(""), nil
	}
	idx := s.next
	if idx >= len(s.Results) {
		idx = len(s.Results) - 1
	} else {
		s.next++
	}
	return s.Results[idx], nil
}

// Calls returns a copy of the recorded invocation history.
func (s *StubBackend) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}
