package graph

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// PolicyConfig holds retry preset overrides, a default node timeout, and a
// default backend name, loaded from the file named by a graph's
// `_policy_config` attribute (SPEC_FULL.md §2, §4.H, §6). The Runner applies
// only the retry preset overrides; the timeout and backend are exposed
// through ResolveTimeout and ResolveBackend and the Runner reads neither. A
// graph with no such attribute runs under the five built-in presets of
// spec.md §4.H unchanged.
type PolicyConfig struct {
	RetryPresets     map[string]RetryPresetOverride `yaml:"retry_presets,omitempty"`
	DefaultTimeoutMS int                            `yaml:"default_timeout_ms,omitempty"`
	DefaultBackend   string                         `yaml:"default_backend,omitempty"`
}

// RetryPresetOverride replaces one named preset's backoff parameters
// wholesale; fields are not merged field-by-field against the built-in
// preset, and a field left out of the file is applied as its zero value.
type RetryPresetOverride struct {
	InitialMS int     `yaml:"initial_ms"`
	Factor    float64 `yaml:"factor"`
	MaxMS     int     `yaml:"max_ms"`
	Jitter    bool    `yaml:"jitter"`
}

// LoadPolicyConfig reads and parses a PolicyConfig from a YAML file at path,
// rejecting unknown fields so a typo in a policy file fails loudly rather
// than silently applying the built-in defaults.
func LoadPolicyConfig(path string) (*PolicyConfig, error) {
	b, err := os.ReadFile(path) // #nosec G304 -- path is author-controlled graph configuration, not untrusted input
	if err != nil {
		return nil, fmt.Errorf("policy config: %w", err)
	}
	var cfg PolicyConfig
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("policy config %s: %w", path, err)
	}
	return &cfg, nil
}

// Apply installs cfg's retry preset overrides as the resolver's active
// parameter table. A nil cfg, or one with no RetryPresets, is a no-op.
func (cfg *PolicyConfig) Apply() {
	if cfg == nil {
		return
	}
	for name, o := range cfg.RetryPresets {
		setPresetParams(RetryPreset(name), int64(o.InitialMS), o.Factor, int64(o.MaxMS), o.Jitter)
	}
}

// ResolveTimeout returns cfg's DefaultTimeoutMS as a Duration, or fallback if
// cfg is nil or specifies none.
func (cfg *PolicyConfig) ResolveTimeout(fallback time.Duration) time.Duration {
	if cfg == nil || cfg.DefaultTimeoutMS == 0 {
		return fallback
	}
	return time.Duration(cfg.DefaultTimeoutMS) * time.Millisecond
}

// ResolveBackend returns cfg's DefaultBackend, or fallback if cfg is nil or
// specifies none.
func (cfg *PolicyConfig) ResolveBackend(fallback string) string {
	if cfg == nil || cfg.DefaultBackend == "" {
		return fallback
	}
	return cfg.DefaultBackend
}
