package graph

// Subgraph groups nodes for rendering/grouping purposes only. The runner
// ignores subgraphs entirely; they exist for visualization tooling upstream
// of this package.
type Subgraph struct {
	ID       string
	Label    string
	NodeIDs  []string
	ParentID string
}

// Graph is an immutable (post-transform) attributed directed graph: the
// Parser (out of scope for this module) produces a Graph, the transform
// pipeline rewrites it, and the Runner executes it without ever mutating it.
type Graph struct {
	Name       string
	Attributes map[string]Attr
	Nodes      map[string]*Node
	Edges      []Edge
	Subgraphs  []Subgraph
}

// New creates an empty Graph with initialized maps, ready for population by
// a parser or by test code constructing a graph literal.
func New(name string) *Graph {
	return &Graph{
		Name:       name,
		Attributes: make(map[string]Attr),
		Nodes:      make(map[string]*Node),
	}
}

// Attr returns the graph-level attribute under key, and whether it was
// present.
func (g *Graph) Attr(key string) (Attr, bool) {
	v, ok := g.Attributes[key]
	return v, ok
}

// AttrString returns the graph-level attribute under key as a display
// string, or the empty string if absent.
func (g *Graph) AttrString(key string) string {
	if v, ok := g.Attributes[key]; ok {
		return v.ToString()
	}
	return ""
}

// Clone returns a deep-enough copy of the Graph suitable for transforms to
// mutate freely without affecting the input: node attribute maps and the
// edge slice are copied, as required by the stylesheet and variable
// expansion transforms which must never mutate their input (SPEC_FULL.md §4.D).
func (g *Graph) Clone() *Graph {
	out := &Graph{
		Name:       g.Name,
		Attributes: cloneAttrMap(g.Attributes),
		Nodes:      make(map[string]*Node, len(g.Nodes)),
		Edges:      make([]Edge, len(g.Edges)),
		Subgraphs:  append([]Subgraph(nil), g.Subgraphs...),
	}
	for id, n := range g.Nodes {
		out.Nodes[id] = &Node{ID: n.ID, Attributes: cloneAttrMap(n.Attributes)}
	}
	for i, e := range g.Edges {
		out.Edges[i] = Edge{From: e.From, To: e.To, Attributes: cloneAttrMap(e.Attributes)}
	}
	return out
}

func cloneAttrMap(m map[string]Attr) map[string]Attr {
	out := make(map[string]Attr, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// OutgoingEdges returns the edges in declaration order whose From equals id.
// No hidden indexes are built: a linear scan is acceptable at this scale
// (SPEC_FULL.md §4.A).
func OutgoingEdges(g *Graph, id string) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.From == id {
			out = append(out, e)
		}
	}
	return out
}

// IncomingEdges returns the edges in declaration order whose To equals id.
func IncomingEdges(g *Graph, id string) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.To == id {
			out = append(out, e)
		}
	}
	return out
}
