/*
Package ast implements the parse-tree facade: the ParsedRule node produced
by a successful match, a lazy/light result wrapper exposing text/value/
children, and the tree-optimization post-processing pass.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package ast

import "github.com/npillmayer/combi"

// ParsedRule is an AST node: the result of a successful rule (or
// token-wrapper) match. Nodes hold only spans into the original input, not
// copies of the text, so a tree remains valid only as long as its input
// string does.
type ParsedRule struct {
	RuleID         combi.ID
	IsToken        bool
	TokenID        combi.ID
	Start          uint64
	Length         uint64
	PassedBarriers uint64
	Value          interface{}
	hasValue       bool
	lazy           func() interface{}
	Children       []*ParsedRule
	Occurrence     int // selected Choice branch / Repeat index; -1 if n/a
	Version        uint64
}

// NoOccurrence marks a node for which the "occurrence" field does not apply.
const NoOccurrence = -1

// End returns the position just behind this node's span.
func (n *ParsedRule) End() uint64 {
	if n == nil {
		return 0
	}
	return n.Start + n.Length
}

// Span returns this node's span as a combi.Span.
func (n *ParsedRule) Span() combi.Span {
	return combi.Span{n.Start, n.End()}
}

// HasValue reports whether an intermediate/user value was attached.
func (n *ParsedRule) HasValue() bool {
	return n != nil && n.hasValue
}

// SetValue attaches a value to the node.
func (n *ParsedRule) SetValue(v interface{}) {
	n.Value = v
	n.hasValue = true
}

// SetLazyValue attaches a value factory to be invoked at most once, the
// first time the value is actually needed — useful when a rule's
// ValueFactory is expensive and many matched subtrees are never inspected
// by the caller.
func (n *ParsedRule) SetLazyValue(fn func() interface{}) {
	n.lazy = fn
	n.hasValue = true
}

// ResolvedValue forces evaluation of a lazily-attached value (a no-op if
// the value was already eager or already resolved) and returns it.
func (n *ParsedRule) ResolvedValue() interface{} {
	if n.lazy != nil {
		n.Value = n.lazy()
		n.lazy = nil
	}
	return n.Value
}

// Text returns the substring of input covered by this node's span.
func (n *ParsedRule) Text(input string) string {
	if n == nil {
		return ""
	}
	return input[n.Start:n.End()]
}

// Clone returns a shallow copy of n (children slice is copied, but node
// pointers within it are shared) — used by the incremental reparser to
// splice in a re-parsed subtree without mutating shared structure.
func (n *ParsedRule) Clone() *ParsedRule {
	if n == nil {
		return nil
	}
	cp := *n
	if n.Children != nil {
		cp.Children = append([]*ParsedRule(nil), n.Children...)
	}
	return &cp
}

// Walk visits n and every descendant in pre-order.
func (n *ParsedRule) Walk(visit func(*ParsedRule)) {
	if n == nil {
		return
	}
	visit(n)
	for _, c := range n.Children {
		c.Walk(visit)
	}
}
