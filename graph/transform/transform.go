// Package transform provides the pure Graph -> Graph rewrite pipeline run
// once before a Runner executes a Graph: variable expansion, stylesheet
// application, and prompt-file inlining, followed by any user-registered
// transforms (SPEC_FULL.md §4.E).
package transform

import (
	"fmt"
	"strings"

	"github.com/otimme/attractor-engine/graph"
)

// Transform is a pure rewrite of a Graph; it must never mutate its input.
type Transform func(g *graph.Graph) (*graph.Graph, error)

// Pipeline runs the four built-in transforms, in order, followed by any
// transforms registered with Register, in registration order.
type Pipeline struct {
	user []namedTransform
}

type namedTransform struct {
	name string
	fn   Transform
}

// NewPipeline creates a Pipeline with no user transforms registered yet.
func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// Register appends a user transform to run after the built-ins.
func (p *Pipeline) Register(name string, t Transform) {
	p.user = append(p.user, namedTransform{name: name, fn: t})
}

// Run applies the built-in transforms and then every registered user
// transform, in order, returning the first error encountered (wrapped with
// the originating transform's name, per spec.md §7's "Transform error"
// handling).
func (p *Pipeline) Run(g *graph.Graph) (*graph.Graph, error) {
	steps := append([]namedTransform{
		{name: "expand_goal_variable", fn: ExpandGoalVariable},
		{name: "apply_stylesheet", fn: ApplyStylesheet},
		{name: "inline_prompt_files", fn: InlinePromptFiles},
		{name: "preamble", fn: Preamble},
	}, p.user...)

	current := g
	for _, step := range steps {
		next, err := step.fn(current)
		if err != nil {
			return nil, fmt.Errorf("transform %q: %w", step.name, err)
		}
		current = next
	}
	return current, nil
}

// Builtins returns the four spec-mandated transforms, in the fixed order
// they always run: variable expansion, stylesheet application, prompt-file
// inlining, then the no-op preamble placeholder.
func Builtins() []Transform {
	return []Transform{ExpandGoalVariable, ApplyStylesheet, InlinePromptFiles, Preamble}
}

// ExpandGoalVariable substitutes the literal token "$goal" in every node's
// string prompt attribute with the graph's goal attribute. A graph with no
// goal attribute leaves prompts unchanged. Only "$goal" is recognized here;
// "$context.*" expansion happens at execution time once a Context exists.
func ExpandGoalVariable(g *graph.Graph) (*graph.Graph, error) {
	goal := g.AttrString("goal")
	out := g.Clone()
	if goal == "" {
		return out, nil
	}
	for _, node := range out.Nodes {
		prompt, ok := node.Attr("prompt")
		if !ok || prompt.Kind() != graph.KindString {
			continue
		}
		text := prompt.ToString()
		if !strings.Contains(text, "$goal") {
			continue
		}
		node.Attributes["prompt"] = graph.String(strings.ReplaceAll(text, "$goal", goal))
	}
	return out, nil
}

// Preamble is a documented no-op: preamble construction happens during
// execution once a Context is available, not at transform time.
func Preamble(g *graph.Graph) (*graph.Graph, error) {
	return g, nil
}
