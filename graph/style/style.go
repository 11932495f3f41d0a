// Package style implements the small CSS-like stylesheet language used to
// set default node attributes in bulk: a sequence of `selector { prop:
// value; ... }` rules, applied to a Graph in specificity order without
// ever overriding an attribute a node already carries explicitly
// (SPEC_FULL.md §4.D).
package style

import (
	"fmt"
	"sort"
	"strings"

	"github.com/otimme/attractor-engine/graph"
)

// SelectorKind distinguishes the four selector forms, each with a fixed
// specificity.
type SelectorKind int

const (
	// Universal matches every node. Specificity 0.
	Universal SelectorKind = iota
	// Shape matches nodes whose shape attribute equals Value. Specificity 0.5.
	Shape
	// Class matches nodes whose comma-separated class attribute contains
	// Value. Specificity 1.
	Class
	// ID matches the node whose ID equals Value. Specificity 2.
	ID
)

// Selector is one parsed selector: a kind plus, for all but Universal, the
// literal it matches against.
type Selector struct {
	Kind  SelectorKind
	Value string
}

// Specificity returns the fixed weight spec.md §4.D assigns each selector
// kind.
func (s Selector) Specificity() float64 {
	switch s.Kind {
	case Universal:
		return 0
	case Shape:
		return 0.5
	case Class:
		return 1
	case ID:
		return 2
	default:
		return 0
	}
}

// Matches reports whether node satisfies the selector.
func (s Selector) Matches(node *graph.Node) bool {
	switch s.Kind {
	case Universal:
		return true
	case Shape:
		return node.AttrString("shape") == s.Value
	case ID:
		return node.ID == s.Value
	case Class:
		classes := strings.Split(node.AttrString("class"), ",")
		for _, c := range classes {
			if strings.TrimSpace(c) == s.Value {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Rule is one selector plus its ordered property:value declarations.
// Declaration order within a Rule is insignificant — property names are
// unique within a single rule body — but Rules themselves are applied in
// the caller-determined order after stable specificity sort.
type Rule struct {
	Selector     Selector
	Declarations map[string]string
}

// Apply applies rules to g in ascending-specificity, stable-sorted order:
// equal-specificity rules are applied in the order they appear in rules,
// so a later rule at the same specificity wins. For every matching node
// and declared property, the property is set only if the node does not
// already carry that attribute explicitly. Apply never mutates g; it
// returns a new Graph.
func Apply(g *graph.Graph, rules []Rule) *graph.Graph {
	out := g.Clone()

	ordered := make([]Rule, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Selector.Specificity() < ordered[j].Selector.Specificity()
	})

	for _, node := range out.Nodes {
		explicit := make(map[string]bool, len(node.Attributes))
		for prop := range node.Attributes {
			explicit[prop] = true
		}
		for _, rule := range ordered {
			if !rule.Selector.Matches(node) {
				continue
			}
			for prop, value := range rule.Declarations {
				if explicit[prop] {
					continue
				}
				node.Attributes[prop] = graph.String(value)
			}
		}
	}
	return out
}

// Parse reads a sequence of `selector { prop: value; ... }` rules. Selector
// syntax: `*` (universal), a bare identifier (shape), `.name` (class), or
// `#name` (id). Whitespace between tokens is insignificant. An empty
// declaration body is dropped (no Rule is produced for it).
func Parse(src string) ([]Rule, error) {
	p := &parser{src: src}
	return p.parseRules()
}

type parser struct {
	src string
	pos int
}

func (p *parser) parseRules() ([]Rule, error) {
	var rules []Rule
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return rules, nil
		}

		sel, err := p.parseSelector()
		if err != nil {
			return nil, err
		}

		p.skipSpace()
		if p.pos >= len(p.src) || p.src[p.pos] != '{' {
			return nil, fmt.Errorf("stylesheet: expected '{' after selector at position %d", p.pos)
		}
		p.pos++ // consume '{'

		decls, err := p.parseDeclarations()
		if err != nil {
			return nil, err
		}

		if len(decls) > 0 {
			rules = append(rules, Rule{Selector: sel, Declarations: decls})
		}
	}
}

func (p *parser) parseSelector() (Selector, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return Selector{}, fmt.Errorf("stylesheet: unexpected end of input, expected selector")
	}

	switch p.src[p.pos] {
	case '*':
		p.pos++
		return Selector{Kind: Universal}, nil
	case '.':
		p.pos++
		name := p.readIdent()
		if name == "" {
			return Selector{}, fmt.Errorf("stylesheet: empty class selector at position %d", p.pos)
		}
		return Selector{Kind: Class, Value: name}, nil
	case '#':
		p.pos++
		name := p.readIdent()
		if name == "" {
			return Selector{}, fmt.Errorf("stylesheet: empty id selector at position %d", p.pos)
		}
		return Selector{Kind: ID, Value: name}, nil
	default:
		name := p.readIdent()
		if name == "" {
			return Selector{}, fmt.Errorf("stylesheet: invalid selector at position %d", p.pos)
		}
		return Selector{Kind: Shape, Value: name}, nil
	}
}

func (p *parser) parseDeclarations() (map[string]string, error) {
	decls := make(map[string]string)
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, fmt.Errorf("stylesheet: unterminated rule body, expected '}'")
		}
		if p.src[p.pos] == '}' {
			p.pos++
			return decls, nil
		}

		prop := p.readUntilAny(":};")
		prop = strings.TrimSpace(prop)
		p.skipSpace()
		if p.pos >= len(p.src) || p.src[p.pos] != ':' {
			return nil, fmt.Errorf("stylesheet: expected ':' after property %q", prop)
		}
		p.pos++ // consume ':'

		value := p.readUntilAny(";}")
		value = strings.TrimSpace(value)
		if prop == "" {
			return nil, fmt.Errorf("stylesheet: empty property name in declaration")
		}
		decls[prop] = value

		p.skipSpace()
		if p.pos < len(p.src) && p.src[p.pos] == ';' {
			p.pos++
		}
	}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) readIdent() string {
	start := p.pos
	for p.pos < len(p.src) {
		r := p.src[p.pos]
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '{' || r == '}' || r == '.' || r == '#' {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) readUntilAny(stop string) string {
	start := p.pos
	for p.pos < len(p.src) && !strings.ContainsRune(stop, rune(p.src[p.pos])) {
		p.pos++
	}
	return p.src[start:p.pos]
}
