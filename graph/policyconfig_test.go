package graph

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPolicyConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yaml")
	contents := `
retry_presets:
  standard:
    initial_ms: 10
    factor: 1.5
    max_ms: 1000
    jitter: false
default_timeout_ms: 5000
default_backend: anthropic
`
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadPolicyConfig(path)
	if err != nil {
		t.Fatalf("LoadPolicyConfig: %v", err)
	}
	if cfg.DefaultBackend != "anthropic" {
		t.Errorf("DefaultBackend = %q, want anthropic", cfg.DefaultBackend)
	}
	if got := cfg.ResolveBackend("stub"); got != "anthropic" {
		t.Errorf("ResolveBackend = %q, want anthropic", got)
	}
	if got := cfg.ResolveTimeout(0); got.Milliseconds() != 5000 {
		t.Errorf("ResolveTimeout = %v, want 5000ms", got)
	}

	o, ok := cfg.RetryPresets["standard"]
	if !ok {
		t.Fatalf("RetryPresets missing standard override")
	}
	if o.InitialMS != 10 || o.Factor != 1.5 || o.MaxMS != 1000 || o.Jitter {
		t.Errorf("override = %+v, want {10 1.5 1000 false}", o)
	}
}

func TestLoadPolicyConfig_UnknownField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yaml")
	if err := os.WriteFile(path, []byte("nonsense_field: true\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadPolicyConfig(path); err == nil {
		t.Fatal("expected error for unknown field, got nil")
	}
}

func TestPolicyConfig_ApplyOverridesRetryPolicy(t *testing.T) {
	defer setPresetParams(PresetPatient, 2000, 3.0, 60000, true) // restore

	cfg := &PolicyConfig{
		RetryPresets: map[string]RetryPresetOverride{
			"patient": {InitialMS: 1, Factor: 1, MaxMS: 1, Jitter: false},
		},
	}
	cfg.Apply()

	policy := NewRetryPolicy(PresetPatient, 2)
	if policy.InitialDelay.Milliseconds() != 1 {
		t.Errorf("InitialDelay = %v, want 1ms after override", policy.InitialDelay)
	}
	if policy.Jitter {
		t.Error("Jitter = true, want false after override")
	}
}

func TestResolveTimeoutAndBackend_NilConfig(t *testing.T) {
	var cfg *PolicyConfig
	if got := cfg.ResolveTimeout(42); got != 42 {
		t.Errorf("ResolveTimeout(nil) = %v, want 42", got)
	}
	if got := cfg.ResolveBackend("stub"); got != "stub" {
		t.Errorf("ResolveBackend(nil) = %q, want stub", got)
	}
}
