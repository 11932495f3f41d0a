package graph

import "strings"

// EvaluatePredicate evaluates a small guard/when expression against pctx,
// used by edge guards (SPEC_FULL.md §4.K next-node selection) and by the
// conditional handler's label/when matching (SPEC_FULL.md §4.G). Recognized
// forms:
//
//   - "" (empty): always true — an unguarded edge.
//   - "key": true if Context holds a non-empty, non-"false" value for key.
//   - "key=value": true if Context.Get(key) equals value exactly.
//   - "key!=value": true if Context.Get(key) does not equal value.
//
// Unrecognized forms evaluate to false rather than erroring, since a guard
// is advisory routing logic, not a place the runner should abort a run.
func EvaluatePredicate(pctx *Context, expr string) bool {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return true
	}
	if idx := strings.Index(expr, "!="); idx >= 0 {
		key := strings.TrimSpace(expr[:idx])
		want := strings.TrimSpace(expr[idx+2:])
		return pctx.Get(key) != want
	}
	if idx := strings.Index(expr, "="); idx >= 0 {
		key := strings.TrimSpace(expr[:idx])
		want := strings.TrimSpace(expr[idx+1:])
		return pctx.Get(key) == want
	}
	v := pctx.Get(expr)
	return v != "" && v != "false"
}
