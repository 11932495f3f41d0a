package graph

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

// RetryPreset names one of the five fixed backoff parameter sets a node's
// retry_policy attribute may select (spec.md §4.H). An unrecognized name
// resolves to PresetStandard.
type RetryPreset string

// The five named retry presets.
const (
	PresetNone       RetryPreset = "none"
	PresetStandard   RetryPreset = "standard"
	PresetAggressive RetryPreset = "aggressive"
	PresetLinear     RetryPreset = "linear"
	PresetPatient    RetryPreset = "patient"
)

// RetryPolicy is the effective, resolved backoff configuration for a single
// node: an initial delay, exponential backoff factor, delay cap, and
// whether to apply jitter, resolved from one of the named presets below.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts allowed, including the
	// first (max_retries + 1, per spec.md §4.H).
	MaxAttempts int

	InitialDelay time.Duration
	Factor       float64
	MaxDelay     time.Duration
	Jitter       bool
}

// presetParams holds a preset's (initialDelayMs, backoffFactor, maxDelayMs,
// jitter) tuple as given in spec.md §4.H.
var presetParamsMu sync.RWMutex

var presetParams = map[RetryPreset]struct {
	initialMs int64
	factor    float64
	maxMs     int64
	jitter    bool
}{
	PresetNone:       {0, 1, 0, false},
	PresetStandard:   {200, 2.0, 60000, true},
	PresetAggressive: {500, 2.0, 60000, true},
	PresetLinear:     {500, 1.0, 60000, true},
	PresetPatient:    {2000, 3.0, 60000, true},
}

// setPresetParams installs an override for preset, guarded against concurrent
// reads from NewRetryPolicy. Used by PolicyConfig.Apply.
func setPresetParams(preset RetryPreset, initialMs int64, factor float64, maxMs int64, jitter bool) {
	presetParamsMu.Lock()
	defer presetParamsMu.Unlock()
	presetParams[preset] = struct {
		initialMs int64
		factor    float64
		maxMs     int64
		jitter    bool
	}{initialMs, factor, maxMs, jitter}
}

// ResolvePreset normalizes name to a known RetryPreset, falling back to
// PresetStandard for anything unrecognized (spec.md §4.H).
func ResolvePreset(name string) RetryPreset {
	switch RetryPreset(name) {
	case PresetNone, PresetStandard, PresetAggressive, PresetLinear, PresetPatient:
		return RetryPreset(name)
	default:
		return PresetStandard
	}
}

// NewRetryPolicy builds the effective RetryPolicy for a node from its
// resolved preset and maxRetries (max_retries, already defaulted from the
// node or graph-level default_max_retry by the caller).
func NewRetryPolicy(preset RetryPreset, maxRetries int) RetryPolicy {
	presetParamsMu.RLock()
	p, ok := presetParams[preset]
	if !ok {
		p = presetParams[PresetStandard]
	}
	presetParamsMu.RUnlock()
	return RetryPolicy{
		MaxAttempts:  maxRetries + 1,
		InitialDelay: time.Duration(p.initialMs) * time.Millisecond,
		Factor:       p.factor,
		MaxDelay:     time.Duration(p.maxMs) * time.Millisecond,
		Jitter:       p.jitter,
	}
}

// computeBackoff returns the delay before retry attempt n (1-based: the
// delay slept before the 2nd, 3rd, ... attempt), per the formula in
// spec.md §4.H:
//
//	min(initial * factor^(n-1), maxDelay), optionally scaled by a uniform
//	variate in [0.5, 1.5) when jitter is enabled, floored to whole
//	milliseconds.
func computeBackoff(p RetryPolicy, attempt int, rng *rand.Rand) time.Duration {
	if p.InitialDelay == 0 {
		return 0
	}
	delay := float64(p.InitialDelay) * pow(p.Factor, attempt-1)
	if max := float64(p.MaxDelay); max > 0 && delay > max {
		delay = max
	}
	if p.Jitter {
		var variate float64
		if rng != nil {
			variate = 0.5 + rng.Float64()
		} else {
			variate = 0.5 + rand.Float64() // #nosec G404 -- jitter timing, not security-sensitive
		}
		delay *= variate
	}
	ms := int64(delay / float64(time.Millisecond))
	return time.Duration(ms) * time.Millisecond
}

// ComputeBackoff is the exported entry point package graph/runner uses to
// compute the delay before a retry attempt; see computeBackoff for the
// formula.
func ComputeBackoff(p RetryPolicy, attempt int, rng *rand.Rand) time.Duration {
	return computeBackoff(p, attempt, rng)
}

// pow computes base^exp for a non-negative integer exponent without
// pulling in math.Pow's float edge-case handling, which this call site
// does not need.
func pow(base float64, exp int) float64 {
	if exp <= 0 {
		return 1
	}
	result := 1.0
	for i := 0; i < exp; i++ {
		result *= base
	}
	return result
}

// rateLimitMarkers are substrings (checked case-insensitively) that mark an
// error message as transient and therefore retryable by the default
// shouldRetry predicate (spec.md §4.H).
var rateLimitMarkers = []string{
	"rate limit", "rate-limit", "429",
	"500", "502", "503", "504",
	"timeout", "timed out", "network", "econnrefused", "connection refused",
}

// nonRetryableMarkers mark an error as authoritative and non-retryable even
// if a rate-limit-like substring also appears.
var nonRetryableMarkers = []string{
	"401", "403", "400", "validation", "configuration",
}

// ShouldRetry is the default exception-classification predicate: it
// inspects err's message for the markers above, per spec.md §4.H step 5.
func ShouldRetry(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, m := range nonRetryableMarkers {
		if strings.Contains(msg, m) {
			return false
		}
	}
	for _, m := range rateLimitMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}
