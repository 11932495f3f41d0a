package runner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/otimme/attractor-engine/graph"
	"github.com/otimme/attractor-engine/graph/emit"
	"github.com/otimme/attractor-engine/graph/handler"
	"github.com/otimme/attractor-engine/graph/store"
)

func trivialPipeline() *graph.Graph {
	g := graph.New("trivial")
	g.Nodes["start"] = &graph.Node{ID: "start", Attributes: map[string]graph.Attr{"shape": graph.String("Mdiamond")}}
	g.Nodes["a"] = &graph.Node{ID: "a", Attributes: map[string]graph.Attr{"prompt": graph.String("do a")}}
	g.Nodes["exit"] = &graph.Node{ID: "exit", Attributes: map[string]graph.Attr{"shape": graph.String("Msquare")}}
	g.Edges = []graph.Edge{
		{From: "start", To: "a"},
		{From: "a", To: "exit"},
	}
	return g
}

func newTestRunner() *Runner {
	reg := handler.DefaultRegistry(handler.RegistryConfig{})
	return New(reg, store.NewMemoryStore(), emit.NewBus(), Options{})
}

func TestRun_TrivialPipelineCompletes(t *testing.T) {
	r := newTestRunner()
	result, err := r.Run(context.Background(), trivialPipeline(), "run-1")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Outcome.Status != graph.StatusSuccess {
		t.Fatalf("status = %v, want success", result.Outcome.Status)
	}
	want := []string{"start", "a", "exit"}
	if len(result.CompletedNodes) != len(want) {
		t.Fatalf("completed = %v, want %v", result.CompletedNodes, want)
	}
	for i, id := range want {
		if result.CompletedNodes[i] != id {
			t.Errorf("completed[%d] = %q, want %q", i, result.CompletedNodes[i], id)
		}
	}
}

func TestRun_NoStartNodeFails(t *testing.T) {
	r := newTestRunner()
	g := graph.New("empty")
	g.Nodes["a"] = &graph.Node{ID: "a"}
	_, err := r.Run(context.Background(), g, "run-2")
	if !errors.Is(err, graph.ErrNoStartNode) {
		t.Fatalf("err = %v, want ErrNoStartNode", err)
	}
}

func TestRun_CheckpointFidelity(t *testing.T) {
	st := store.NewMemoryStore()
	reg := handler.DefaultRegistry(handler.RegistryConfig{})
	r := New(reg, st, emit.NewBus(), Options{})

	result, err := r.Run(context.Background(), trivialPipeline(), "run-checkpoint")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Outcome.Status != graph.StatusSuccess {
		t.Fatalf("status = %v, want success", result.Outcome.Status)
	}

	// The last checkpoint written during the run must be loadable from the
	// store independently of the in-memory RunResult, and its
	// CompletedNodes/NodeOutcomes must reproduce what the run actually did
	// (spec.md §8 "checkpoint fidelity").
	loaded, err := st.Load(context.Background(), "run-checkpoint")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.CompletedNodes) != len(result.CompletedNodes) {
		t.Fatalf("loaded.CompletedNodes = %v, want %v", loaded.CompletedNodes, result.CompletedNodes)
	}
	for i, id := range result.CompletedNodes {
		if loaded.CompletedNodes[i] != id {
			t.Errorf("loaded.CompletedNodes[%d] = %q, want %q", i, loaded.CompletedNodes[i], id)
		}
	}
	for nodeID, status := range result.NodeOutcomes {
		if got := loaded.NodeOutcomes[nodeID]; got != status {
			t.Errorf("loaded.NodeOutcomes[%q] = %q, want %q", nodeID, got, status)
		}
	}

	// The fingerprint is reproducible: recomputing it from the loaded
	// content must match what was persisted, detecting any drift or
	// corruption in the round trip.
	want := loaded.Fingerprint
	got := loaded.ComputeFingerprint()
	if got != want {
		t.Errorf("recomputed fingerprint = %q, want %q (stored)", got, want)
	}
	if want == "" {
		t.Error("stored checkpoint has empty fingerprint")
	}
}

func TestRun_ConditionalRouting(t *testing.T) {
	r := newTestRunner()
	g := graph.New("cond")
	g.Nodes["start"] = &graph.Node{ID: "start", Attributes: map[string]graph.Attr{"type": graph.String("start")}}
	g.Nodes["c"] = &graph.Node{ID: "c", Attributes: map[string]graph.Attr{"shape": graph.String("diamond")}}
	g.Nodes["yes"] = &graph.Node{ID: "yes", Attributes: map[string]graph.Attr{"prompt": graph.String("yes branch")}}
	g.Nodes["exit"] = &graph.Node{ID: "exit", Attributes: map[string]graph.Attr{"type": graph.String("exit")}}
	g.Edges = []graph.Edge{
		{From: "start", To: "c"},
		{From: "c", To: "yes", Attributes: map[string]graph.Attr{"when": graph.String("go=yes")}},
		{From: "c", To: "exit", Attributes: map[string]graph.Attr{"label": graph.String("default")}},
		{From: "yes", To: "exit"},
	}
	g.Attributes["goal"] = graph.String("g")

	// A fresh run's Context has no "go" key set, so the conditional
	// handler's guard ("go=yes") does not match and traversal falls
	// through to the default edge.
	result, err := r.Run(context.Background(), g, "run-3")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Outcome.Status != graph.StatusSuccess {
		t.Fatalf("status = %v, want success", result.Outcome.Status)
	}
	last := result.CompletedNodes[len(result.CompletedNodes)-1]
	if last != "exit" {
		t.Errorf("last completed = %q, want exit (default edge)", last)
	}
}

func TestRun_RetryThenSucceed(t *testing.T) {
	calls := 0
	h := &flakyHandler{
		failures: 2,
		calls:    &calls,
	}
	reg := handler.NewRegistry()
	reg.MustRegister(&handler.StartHandler{})
	reg.MustRegister(&handler.ExitHandler{})
	reg.MustRegister(h)
	reg.SetDefaultType("flaky")

	g := graph.New("retry")
	g.Nodes["start"] = &graph.Node{ID: "start", Attributes: map[string]graph.Attr{"type": graph.String("start")}}
	g.Nodes["flaky"] = &graph.Node{ID: "flaky", Attributes: map[string]graph.Attr{"retry_policy": graph.String("none")}}
	g.Nodes["exit"] = &graph.Node{ID: "exit", Attributes: map[string]graph.Attr{"type": graph.String("exit")}}
	g.Edges = []graph.Edge{{From: "start", To: "flaky"}, {From: "flaky", To: "exit"}}

	// retry_policy "none" has MaxAttempts=1 (max_retries defaults to 0),
	// so raise max_retries on the node to allow the two induced retries.
	g.Nodes["flaky"].Attributes["max_retries"] = graph.Int(3)
	g.Nodes["flaky"].Attributes["retry_policy"] = graph.String("standard")

	r := New(reg, store.NewMemoryStore(), emit.NewBus(), Options{})
	result, err := r.Run(context.Background(), g, "run-4")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Outcome.Status != graph.StatusSuccess {
		t.Fatalf("status = %v, want success after retries", result.Outcome.Status)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3 (2 failures + 1 success)", calls)
	}
}

// flakyHandler returns RETRY for `failures` calls, then SUCCESS.
type flakyHandler struct {
	failures int
	calls    *int
}

func (h *flakyHandler) Type() string { return "flaky" }

func (h *flakyHandler) Execute(_ context.Context, _ *graph.Node, _ *graph.Context, _ *graph.Graph, _ string) (graph.Outcome, error) {
	*h.calls++
	if *h.calls <= h.failures {
		return graph.Retry("not ready yet"), nil
	}
	return graph.Success(), nil
}

func TestRun_ParallelFanOutFanIn(t *testing.T) {
	reg := handler.DefaultRegistry(handler.RegistryConfig{})

	g := graph.New("parallel")
	g.Nodes["start"] = &graph.Node{ID: "start", Attributes: map[string]graph.Attr{"type": graph.String("start")}}
	g.Nodes["p"] = &graph.Node{ID: "p", Attributes: map[string]graph.Attr{"type": graph.String("parallel")}}
	g.Nodes["b1"] = &graph.Node{ID: "b1", Attributes: map[string]graph.Attr{"prompt": graph.String("branch one")}}
	g.Nodes["b2"] = &graph.Node{ID: "b2", Attributes: map[string]graph.Attr{"prompt": graph.String("branch two")}}
	g.Nodes["fin"] = &graph.Node{ID: "fin", Attributes: map[string]graph.Attr{"type": graph.String("parallel.fan_in")}}
	g.Nodes["exit"] = &graph.Node{ID: "exit", Attributes: map[string]graph.Attr{"type": graph.String("exit")}}
	g.Edges = []graph.Edge{
		{From: "start", To: "p"},
		{From: "p", To: "b1"},
		{From: "p", To: "b2"},
		{From: "b1", To: "fin"},
		{From: "b2", To: "fin"},
		{From: "fin", To: "exit"},
	}

	r := New(reg, store.NewMemoryStore(), emit.NewBus(), Options{})
	result, err := r.Run(context.Background(), g, "run-5")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Outcome.Status != graph.StatusSuccess {
		t.Fatalf("status = %v, want success", result.Outcome.Status)
	}
	want := []string{"start", "p", "fin", "exit"}
	if len(result.CompletedNodes) != len(want) {
		t.Fatalf("completed = %v, want traversal through fin without re-entering branches as sequential steps", result.CompletedNodes)
	}
	for i, id := range want {
		if result.CompletedNodes[i] != id {
			t.Errorf("completed[%d] = %q, want %q", i, result.CompletedNodes[i], id)
		}
	}
}

func TestRun_CancellationStopsRun(t *testing.T) {
	reg := handler.NewRegistry()
	reg.MustRegister(&handler.StartHandler{})
	slow := &slowHandler{delay: 200 * time.Millisecond}
	reg.MustRegister(slow)
	reg.SetDefaultType("slow")

	g := graph.New("cancel")
	g.Nodes["start"] = &graph.Node{ID: "start", Attributes: map[string]graph.Attr{"type": graph.String("start")}}
	g.Nodes["s"] = &graph.Node{ID: "s"}
	g.Edges = []graph.Edge{{From: "start", To: "s"}}

	r := New(reg, store.NewMemoryStore(), emit.NewBus(), Options{})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := r.Run(ctx, g, "run-6")
	if err == nil {
		t.Fatal("expected cancellation error, got nil")
	}
}

type slowHandler struct{ delay time.Duration }

func (h *slowHandler) Type() string { return "slow" }

func (h *slowHandler) Execute(ctx context.Context, _ *graph.Node, _ *graph.Context, _ *graph.Graph, _ string) (graph.Outcome, error) {
	select {
	case <-time.After(h.delay):
		return graph.Success(), nil
	case <-ctx.Done():
		return graph.Outcome{}, ctx.Err()
	}
}
