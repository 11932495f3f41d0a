package graph

import "sync"

// Context is the process-local, dotted-key mapping from string keys to
// typed values that is the only mutable state visible across node
// executions within a run (SPEC_FULL.md §3). It is created fresh per run.
type Context struct {
	mu     sync.RWMutex
	values map[string]Attr
}

// NewContext creates an empty Context.
func NewContext() *Context {
	return &Context{values: make(map[string]Attr)}
}

// Get returns the display string for key, or the empty string if absent.
func (c *Context) Get(key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if v, ok := c.values[key]; ok {
		return v.ToString()
	}
	return ""
}

// GetAttr returns the typed attribute for key, and whether it was present.
func (c *Context) GetAttr(key string) (Attr, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[key]
	return v, ok
}

// Set stores value under key.
func (c *Context) Set(key string, value Attr) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
}

// SetString is a convenience wrapper storing a string-valued Attr.
func (c *Context) SetString(key, value string) {
	c.Set(key, String(value))
}

// Delete removes key, if present.
func (c *Context) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
}

// Keys returns all keys currently stored, in no particular order.
func (c *Context) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	return keys
}

// Snapshot returns a defensive copy of the Context, used when forking a
// parallel region or deriving a sub-pipeline child context, both of which
// must not observe or mutate the parent's live map (SPEC_FULL.md §4.G, §5).
func (c *Context) Snapshot() *Context {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := &Context{values: make(map[string]Attr, len(c.values))}
	for k, v := range c.values {
		out.values[k] = v
	}
	return out
}

// ApplyUpdates merges a contextUpdates map (as produced by an Outcome) into
// the Context atomically, as required before the next node runs
// (SPEC_FULL.md §3 invariants).
func (c *Context) ApplyUpdates(updates map[string]Attr) {
	if len(updates) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range updates {
		c.values[k] = v
	}
}
