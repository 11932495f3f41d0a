package handler

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/otimme/attractor-engine/graph"
	"github.com/otimme/attractor-engine/graph/backend"
)

const promptPreviewLen = 200

// CodergenHandler runs an LLM coding turn (shape box / type "codergen"),
// the default handler for nodes with no registered type or shape mapping.
// With no Backend configured it synthesizes a deterministic
// "[Simulated] ..." response so pipelines can be exercised without live
// model calls (spec.md §4.G).
type CodergenHandler struct {
	Backend backend.Backend
}

// Type implements Handler.
func (h *CodergenHandler) Type() string { return "codergen" }

// Execute implements Handler.
func (h *CodergenHandler) Execute(ctx context.Context, node *graph.Node, pctx *graph.Context, g *graph.Graph, logsRoot string) (graph.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return graph.Outcome{}, err
	}

	prompt := node.AttrStringOr("prompt", node.AttrStringOr("label", node.ID))
	prompt = expandRuntimeTokens(prompt, pctx)

	nodeDir := filepath.Join(logsRoot, node.ID)
	if err := os.MkdirAll(nodeDir, 0o755); err == nil {
		_ = os.WriteFile(filepath.Join(nodeDir, "prompt.md"), []byte(prompt), 0o644)
	}

	var responseText string
	var outcome graph.Outcome
	if h.Backend == nil {
		responseText = "[Simulated] " + prompt
		outcome = graph.Outcome{Status: graph.StatusSuccess, Notes: "codergen stub at " + node.ID}
	} else {
		result, err := h.Backend.Run(ctx, node, prompt, pctx, backend.RunOptions{LogsRoot: logsRoot})
		if err != nil {
			return graph.Fail(err.Error()).WithContext(map[string]graph.Attr{
				"last_stage": graph.String(node.ID),
			}), nil
		}
		if result.IsOutcome {
			outcome = result.Outcome
		} else {
			responseText = result.Text
			outcome = graph.Outcome{Status: graph.StatusSuccess}
		}
	}

	if responseText != "" {
		if err := os.MkdirAll(nodeDir, 0o755); err == nil {
			_ = os.WriteFile(filepath.Join(nodeDir, "response.md"), []byte(responseText), 0o644)
		}
	}

	preview := responseText
	if len(preview) > promptPreviewLen {
		preview = preview[:promptPreviewLen]
	}

	updates := map[string]graph.Attr{
		"last_stage": graph.String(node.ID),
	}
	if preview != "" {
		updates["last_response"] = graph.String(preview)
	}
	outcome = outcome.WithContext(updates)

	writeStatusJSON(nodeDir, outcome)

	return outcome, nil
}

// expandRuntimeTokens substitutes "$goal" with the goal Context value and
// "$context.<key>" with the named Context value, for tokens that survive
// transform-time expansion (SPEC_FULL.md §4.E only expands $goal once,
// before a Context exists; $context.* is only resolvable at execution
// time).
func expandRuntimeTokens(prompt string, pctx *graph.Context) string {
	if strings.Contains(prompt, "$goal") {
		prompt = strings.ReplaceAll(prompt, "$goal", pctx.Get("goal"))
	}
	for strings.Contains(prompt, "$context.") {
		idx := strings.Index(prompt, "$context.")
		rest := prompt[idx+len("$context."):]
		end := len(rest)
		for i, r := range rest {
			if !isTokenChar(r) {
				end = i
				break
			}
		}
		key := rest[:end]
		if key == "" {
			break
		}
		token := "$context." + key
		prompt = strings.ReplaceAll(prompt, token, pctx.Get(key))
	}
	return prompt
}

func isTokenChar(r rune) bool {
	return r == '_' || r == '.' || r == '-' ||
		('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9')
}

// writeStatusJSON writes a status.json artifact mirroring outcome under
// nodeDir. Failures are swallowed: artifact writing is diagnostic, never
// part of a node's success/failure contract.
func writeStatusJSON(nodeDir string, outcome graph.Outcome) {
	if err := os.MkdirAll(nodeDir, 0o755); err != nil {
		return
	}
	payload := map[string]any{
		"status":         string(outcome.Status),
		"notes":          outcome.Notes,
		"failure_reason": outcome.FailureReason,
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(filepath.Join(nodeDir, "status.json"), data, 0o644)
}
