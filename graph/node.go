package graph

// Node is a processing unit in the pipeline graph. A Node carries no
// behavior itself — at runtime it is dispatched to a Handler (see package
// github.com/otimme/attractor-engine/graph/handler) chosen by its type/shape
// attributes (see SPEC_FULL.md §4.F).
type Node struct {
	// ID uniquely identifies this node within its Graph.
	ID string

	// Attributes holds the node's typed key/value attributes. Selected
	// well-known keys (type, shape, prompt, ...) drive handler dispatch and
	// behavior; see SPEC_FULL.md §6 for the recognized set.
	Attributes map[string]Attr
}

// Attr returns the node's attribute under key, and whether it was present.
func (n *Node) Attr(key string) (Attr, bool) {
	v, ok := n.Attributes[key]
	return v, ok
}

// AttrString returns the node's attribute under key as a display string, or
// the empty string if absent.
func (n *Node) AttrString(key string) string {
	if v, ok := n.Attributes[key]; ok {
		return v.ToString()
	}
	return ""
}

// AttrStringOr returns the node's attribute under key as a display string,
// falling back to def if the attribute is absent.
func (n *Node) AttrStringOr(key, def string) string {
	if v, ok := n.Attributes[key]; ok {
		return v.ToString()
	}
	return def
}

// NodeError is a structured error produced during node execution, carrying
// enough context (node ID, a machine-readable code, the underlying cause)
// for observability tooling to act on without string-parsing Error().
type NodeError struct {
	// Message is the human-readable error description.
	Message string

	// Code is a machine-readable error code for programmatic handling.
	Code string

	// NodeID identifies which node produced this error.
	NodeID string

	// Cause is the underlying error that caused this NodeError.
	Cause error
}

// Error implements the error interface.
func (e *NodeError) Error() string {
	if e.NodeID != "" {
		return "node " + e.NodeID + ": " + e.Message
	}
	return e.Message
}

// Unwrap returns the underlying cause error for error wrapping support.
func (e *NodeError) Unwrap() error {
	return e.Cause
}
