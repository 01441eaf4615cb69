package ast

import "github.com/npillmayer/combi"

// Result is the facade a caller receives from a successful parse: a
// ParsedRule tree paired with the input it spans, so text/value access
// never requires the caller to thread the input string through separately.
type Result struct {
	Root  *ParsedRule
	Input string
}

// NewResult wraps root and input into a Result.
func NewResult(root *ParsedRule, input string) Result {
	return Result{Root: root, Input: input}
}

// OK reports whether the parse succeeded.
func (r Result) OK() bool { return r.Root != nil }

// Span returns the root node's span.
func (r Result) Span() combi.Span { return r.Root.Span() }

// Text returns the substring spanned by the root node.
func (r Result) Text() string { return r.Root.Text(r.Input) }

// Value forces and returns the root node's value (resolving it if it was
// attached lazily).
func (r Result) Value() interface{} {
	if r.Root == nil {
		return nil
	}
	return r.Root.ResolvedValue()
}

// HasValue reports whether the root node carries a value.
func (r Result) HasValue() bool { return r.Root.HasValue() }

// Children returns the root node's immediate children.
func (r Result) Children() []*ParsedRule {
	if r.Root == nil {
		return nil
	}
	return r.Root.Children
}

// Child returns the facade of the i-th child, or a zero Result if out of
// range.
func (r Result) Child(i int) Result {
	cs := r.Children()
	if i < 0 || i >= len(cs) {
		return Result{}
	}
	return Result{Root: cs[i], Input: r.Input}
}
