// Package graph provides the core data model and execution engine for the
// attractor pipeline runner: attributed directed graphs of handler-dispatched
// nodes, traversed by a retrying, checkpointing, event-emitting Runner.
package graph

import (
	"strconv"
	"time"
)

// AttrKind identifies which variant an Attr holds.
type AttrKind int

// The five attribute value variants recognized by the graph model.
const (
	KindString AttrKind = iota
	KindInt
	KindFloat
	KindBool
	KindDuration
)

// Attr is a tagged attribute value. Nodes, edges, and graphs carry attributes
// as string keys mapped to Attr; there is no declared schema, only a fixed set
// of well-known keys that drive handler dispatch and behavior.
//
// Duration values retain their original textual form (e.g. "900s") alongside
// the parsed millisecond count, so ToString round-trips exactly what the
// author wrote.
type Attr struct {
	kind AttrKind
	s    string
	i    int64
	f    float64
	b    bool
	// durMs is the duration in milliseconds; durText is the source text.
	durMs   int64
	durText string
}

// String constructs a string-valued Attr.
func String(v string) Attr { return Attr{kind: KindString, s: v} }

// Int constructs an integer-valued Attr.
func Int(v int64) Attr { return Attr{kind: KindInt, i: v} }

// Float constructs a float-valued Attr.
func Float(v float64) Attr { return Attr{kind: KindFloat, f: v} }

// Bool constructs a boolean-valued Attr.
func Bool(v bool) Attr { return Attr{kind: KindBool, b: v} }

// Duration constructs a duration-valued Attr from a millisecond count and the
// textual form it was parsed from (empty text is regenerated from ms).
func Duration(ms int64, text string) Attr {
	if text == "" {
		text = (time.Duration(ms) * time.Millisecond).String()
	}
	return Attr{kind: KindDuration, durMs: ms, durText: text}
}

// ParseDuration constructs a duration-valued Attr from a Go duration string
// such as "900s" or "15m", retaining the original text for ToString.
func ParseDuration(text string) (Attr, error) {
	d, err := time.ParseDuration(text)
	if err != nil {
		return Attr{}, err
	}
	return Attr{kind: KindDuration, durMs: d.Milliseconds(), durText: text}, nil
}

// Kind reports which variant this Attr holds.
func (a Attr) Kind() AttrKind { return a.kind }

// ToString renders the canonical display form of the attribute value.
func (a Attr) ToString() string {
	switch a.kind {
	case KindString:
		return a.s
	case KindInt:
		return strconv.FormatInt(a.i, 10)
	case KindFloat:
		return strconv.FormatFloat(a.f, 'g', -1, 64)
	case KindBool:
		if a.b {
			return "true"
		}
		return "false"
	case KindDuration:
		return a.durText
	default:
		return ""
	}
}

// AsInt coerces the attribute to an integer. Strings are parsed as base-10;
// durations yield their millisecond count; booleans yield 1/0. A float is
// truncated toward zero. Unparseable strings yield 0.
func (a Attr) AsInt() int64 {
	switch a.kind {
	case KindInt:
		return a.i
	case KindFloat:
		return int64(a.f)
	case KindBool:
		if a.b {
			return 1
		}
		return 0
	case KindDuration:
		return a.durMs
	case KindString:
		n, _ := strconv.ParseInt(a.s, 10, 64)
		return n
	default:
		return 0
	}
}

// AsFloat coerces the attribute to a float64.
func (a Attr) AsFloat() float64 {
	switch a.kind {
	case KindFloat:
		return a.f
	case KindInt:
		return float64(a.i)
	case KindDuration:
		return float64(a.durMs)
	case KindString:
		f, _ := strconv.ParseFloat(a.s, 64)
		return f
	case KindBool:
		if a.b {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// AsBool coerces the attribute to a boolean. A string is true iff it equals
// "true" (case-sensitive, per spec). Numeric kinds are true iff non-zero.
func (a Attr) AsBool() bool {
	switch a.kind {
	case KindBool:
		return a.b
	case KindString:
		return a.s == "true"
	case KindInt:
		return a.i != 0
	case KindFloat:
		return a.f != 0
	case KindDuration:
		return a.durMs != 0
	default:
		return false
	}
}

// AsDurationMillis coerces the attribute to a millisecond duration. An
// integer is taken directly as milliseconds, per spec.
func (a Attr) AsDurationMillis() int64 {
	switch a.kind {
	case KindDuration:
		return a.durMs
	case KindInt:
		return a.i
	case KindString:
		if d, err := time.ParseDuration(a.s); err == nil {
			return d.Milliseconds()
		}
		n, _ := strconv.ParseInt(a.s, 10, 64)
		return n
	default:
		return int64(a.AsFloat())
	}
}
