package graph

// Edge represents a directed connection between two nodes in the pipeline
// graph. Edges are an ordered sequence, not a set: iteration order is
// significant for the conditional and wait.human handlers (SPEC_FULL.md §3).
type Edge struct {
	// From is the source node ID.
	From string

	// To is the destination node ID.
	To string

	// Attributes holds the edge's typed key/value attributes. The `label`,
	// `guard`, and `when` keys are recognized by the runner and by the
	// conditional/wait.human handlers.
	Attributes map[string]Attr
}

// Attr returns the edge's attribute under key, and whether it was present.
func (e *Edge) Attr(key string) (Attr, bool) {
	v, ok := e.Attributes[key]
	return v, ok
}

// AttrString returns the edge's attribute under key as a display string, or
// the empty string if absent.
func (e *Edge) AttrString(key string) string {
	if v, ok := e.Attributes[key]; ok {
		return v.ToString()
	}
	return ""
}
