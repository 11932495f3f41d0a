package handler

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/otimme/attractor-engine/graph"
	"github.com/otimme/attractor-engine/graph/interview"
)

// choice is one selectable option derived from an outgoing edge.
type choice struct {
	key    string
	label  string
	target string
}

// WaitForHumanHandler gates execution on a human decision (shape hexagon /
// type "wait.human"). Choices are derived from outgoing edges; the
// Interviewer presents them and the chosen edge's target becomes
// SuggestedNextIDs[0] (spec.md §4.G).
type WaitForHumanHandler struct {
	Interviewer interview.Interviewer
}

// Type implements Handler.
func (h *WaitForHumanHandler) Type() string { return "wait.human" }

// Execute implements Handler.
func (h *WaitForHumanHandler) Execute(ctx context.Context, node *graph.Node, pctx *graph.Context, g *graph.Graph, logsRoot string) (graph.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return graph.Outcome{}, err
	}

	edges := graph.OutgoingEdges(g, node.ID)
	if len(edges) == 0 {
		return graph.Fail("no outgoing edges for human gate: " + node.ID), nil
	}

	choices := make([]choice, len(edges))
	options := make([]interview.Option, len(edges))
	for i, e := range edges {
		label := e.AttrString("label")
		if label == "" {
			label = e.To
		}
		key := interview.FirstWordInitial(label)
		choices[i] = choice{key: key, label: label, target: e.To}
		options[i] = interview.Option{Key: key, Label: label}
	}

	if h.Interviewer == nil {
		return graph.Fail("no interviewer available for human gate: " + node.ID), nil
	}

	var timeoutSeconds int
	if v, ok := node.Attr("timeout_seconds"); ok {
		timeoutSeconds = int(v.AsInt())
	}

	question := interview.Question{
		Text:           node.AttrStringOr("label", "Select an option:"),
		Type:           interview.MultipleChoice,
		Options:        options,
		DefaultAnswer:  node.AttrString("human.default_choice"),
		TimeoutSeconds: timeoutSeconds,
		Stage:          node.ID,
	}

	answer, err := h.Interviewer.Ask(question)
	if err != nil {
		return graph.Fail("interviewer error: " + err.Error()), nil
	}

	nodeDir := filepath.Join(logsRoot, node.ID)

	switch answer.Value {
	case interview.AnswerTimeout:
		def := node.AttrString("human.default_choice")
		if def == "" {
			return graph.Retry("human gate timed out with no default_choice"), nil
		}
		if picked, ok := findChoice(choices, def); ok {
			return h.pick(node, nodeDir, picked, true), nil
		}
		return graph.Retry("human gate timed out; default_choice does not match any edge"), nil

	case interview.AnswerSkipped:
		return graph.Fail("human gate skipped: " + node.ID), nil
	}

	if answer.SelectedOption != nil {
		if picked, ok := findChoice(choices, answer.SelectedOption.Key); ok {
			return h.pick(node, nodeDir, picked, false), nil
		}
	}
	if picked, ok := findChoice(choices, answer.Value); ok {
		return h.pick(node, nodeDir, picked, false), nil
	}

	return h.pick(node, nodeDir, choices[0], false), nil
}

func findChoice(choices []choice, want string) (choice, bool) {
	norm := normalizeLabel(want)
	for _, c := range choices {
		if strings.EqualFold(c.key, want) || normalizeLabel(c.label) == norm {
			return c, true
		}
	}
	return choice{}, false
}

func normalizeLabel(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

func (h *WaitForHumanHandler) pick(node *graph.Node, nodeDir string, c choice, timedOut bool) graph.Outcome {
	outcome := graph.Outcome{
		Status:           graph.StatusSuccess,
		Notes:            "human selected: " + c.label,
		SuggestedNextIDs: []string{c.target},
		ContextUpdates: map[string]graph.Attr{
			"human.gate.selected": graph.String(c.key),
			"human.gate.label":    graph.String(c.label),
			"last_stage":          graph.String(node.ID),
		},
	}
	if timedOut {
		outcome.PreferredLabel = c.label
	}

	if err := os.MkdirAll(nodeDir, 0o755); err == nil {
		payload := map[string]any{
			"selected":  c.key,
			"label":     c.label,
			"timed_out": timedOut,
		}
		if data, err := json.MarshalIndent(payload, "", "  "); err == nil {
			_ = os.WriteFile(filepath.Join(nodeDir, "status.json"), data, 0o644)
		}
	}

	return outcome
}
