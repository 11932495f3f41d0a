package transform

import (
	"fmt"

	"github.com/otimme/attractor-engine/graph"
	"github.com/otimme/attractor-engine/graph/style"
)

// ApplyStylesheet parses the graph's "_stylesheet" attribute (if present) as
// a style.Parse stylesheet and applies it via style.Apply, which never
// overrides attributes a node already carries explicitly. A graph without a
// "_stylesheet" attribute is returned unchanged.
func ApplyStylesheet(g *graph.Graph) (*graph.Graph, error) {
	raw, ok := g.Attr("_stylesheet")
	if !ok {
		return g, nil
	}
	rules, err := style.Parse(raw.ToString())
	if err != nil {
		return nil, fmt.Errorf("_stylesheet: %w", err)
	}
	return style.Apply(g, rules), nil
}
