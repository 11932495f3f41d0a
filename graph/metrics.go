package graph

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects Prometheus-compatible observability data for a Runner,
// namespaced "attractor_", covering the node/outcome/retry vocabulary of
// this package. Merge-conflict and queue-backpressure metrics have no
// equivalent here (this runner has no concurrent-state-merge reducer and
// no bounded frontier queue) and are omitted rather than
// carried forward unused.
type Metrics struct {
	inflightNodes prometheus.Gauge
	stepLatency   *prometheus.HistogramVec
	retries       *prometheus.CounterVec
	checkpoints   *prometheus.CounterVec
	outcomes      *prometheus.CounterVec

	mu      sync.RWMutex
	enabled bool
}

// NewMetrics creates and registers all runner metrics with registry. Pass
// prometheus.DefaultRegisterer for the global registry, or a fresh
// prometheus.NewRegistry() for test isolation.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	m := &Metrics{enabled: true}

	m.inflightNodes = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: "attractor",
		Name:      "inflight_nodes",
		Help:      "Number of nodes currently executing, including concurrent branches of a parallel region",
	})

	m.stepLatency = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "attractor",
		Name:      "node_latency_ms",
		Help:      "Node dispatch duration in milliseconds, from handler invocation to a terminal outcome",
		Buckets:   []float64{1, 5, 10, 50, 100, 500, 1000, 5000, 10000, 60000},
	}, []string{"run_id", "node_id", "status"})

	m.retries = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "attractor",
		Name:      "retries_total",
		Help:      "Cumulative retry attempts across all nodes",
	}, []string{"run_id", "node_id"})

	m.checkpoints = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "attractor",
		Name:      "checkpoints_total",
		Help:      "Checkpoint writes, labeled by whether the write succeeded",
	}, []string{"run_id", "result"})

	m.outcomes = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "attractor",
		Name:      "node_outcomes_total",
		Help:      "Terminal node outcomes by status",
	}, []string{"run_id", "node_id", "status"})

	return m
}

// RecordNodeLatency records the duration of one node dispatch.
func (m *Metrics) RecordNodeLatency(runID, nodeID string, latency time.Duration, status Status) {
	if !m.isEnabled() {
		return
	}
	m.stepLatency.WithLabelValues(runID, nodeID, string(status)).Observe(float64(latency.Milliseconds()))
}

// IncrementRetries increments the retry counter for nodeID in runID.
func (m *Metrics) IncrementRetries(runID, nodeID string) {
	if !m.isEnabled() {
		return
	}
	m.retries.WithLabelValues(runID, nodeID).Inc()
}

// RecordOutcome increments the terminal-outcome counter for nodeID.
func (m *Metrics) RecordOutcome(runID, nodeID string, status Status) {
	if !m.isEnabled() {
		return
	}
	m.outcomes.WithLabelValues(runID, nodeID, string(status)).Inc()
}

// RecordCheckpoint increments the checkpoint-write counter, labeled "ok" or
// "error" depending on whether err is nil.
func (m *Metrics) RecordCheckpoint(runID string, err error) {
	if !m.isEnabled() {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.checkpoints.WithLabelValues(runID, result).Inc()
}

// SetInflightNodes sets the current number of concurrently executing nodes.
func (m *Metrics) SetInflightNodes(count int) {
	if !m.isEnabled() {
		return
	}
	m.inflightNodes.Set(float64(count))
}

func (m *Metrics) isEnabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.enabled
}

// Disable stops metric recording; useful for tests that construct a Runner
// without a registry.
func (m *Metrics) Disable() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = false
}

// Enable re-enables metric recording after Disable.
func (m *Metrics) Enable() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = true
}
