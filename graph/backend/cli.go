package backend

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/otimme/attractor-engine/graph"
)

// CLIBackend invokes an external command-line coding agent as a
// subprocess, building argv from BaseArgs, the node's llm_model attribute
// (as "--model") and the prompt, honoring TimeoutMs, and scraping a `usage` object out of the
// subprocess's JSON stdout with gjson rather than a full struct unmarshal
// (spec.md §4.L), since the exact shape of that JSON is CLI-specific and
// only the usage sub-object and the top-level "result" text are needed.
type CLIBackend struct {
	// Command is the executable to invoke (e.g. "claude", "codex").
	Command string

	// BaseArgs are argv entries prepended before the prompt, e.g.
	// []string{"--print", "--output-format", "json"}.
	BaseArgs []string
}

// NewCLIBackend creates a CLIBackend invoking command with baseArgs.
func NewCLIBackend(command string, baseArgs ...string) *CLIBackend {
	return &CLIBackend{Command: command, BaseArgs: baseArgs}
}

// Run implements Backend.
func (b *CLIBackend) Run(ctx context.Context, node *graph.Node, prompt string, _ *graph.Context, opts RunOptions) (Result, error) {
	timeout := time.Duration(opts.TimeoutMs) * time.Millisecond
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	args := append([]string(nil), b.BaseArgs...)
	if model := node.AttrString("llm_model"); model != "" {
		args = append(args, "--model", model)
	}
	args = append(args, prompt)

	cmd := exec.CommandContext(ctx, b.Command, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return Result{}, fmt.Errorf("cli backend %q: %w: %s", b.Command, err, strings.TrimSpace(stderr.String()))
	}

	out := stdout.String()
	if opts.LogsRoot != "" {
		if usage := gjson.Get(out, "usage"); usage.Exists() {
			dir := filepath.Join(opts.LogsRoot, node.ID)
			if err := os.MkdirAll(dir, 0o755); err == nil {
				_ = os.WriteFile(filepath.Join(dir, "usage.json"), []byte(usage.Raw), 0o644)
			}
		}
	}

	if result := gjson.Get(out, "result"); result.Exists() {
		return TextResult(result.String()), nil
	}
	return TextResult(strings.TrimSpace(out)), nil
}
