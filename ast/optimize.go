package ast

// RewriteRule transforms a node during a bottom-up tree optimization pass
//, grounded on terex/termr/rewrite.go's RewriteRule/NodeMapper
// style: return the node to keep it (possibly mutated), or nil to drop it
// from its parent's Children.
type RewriteRule func(*ParsedRule) *ParsedRule

// Rewrite applies every rule in rules, in order, to each node of the tree
// rooted at n — bottom-up, so a node's children have already been
// rewritten (and possibly dropped) by the time the node itself is visited.
// Returns the rewritten root, or nil as soon as any rule drops it (the
// remaining rules are then not applied to that node).
func Rewrite(n *ParsedRule, rules ...RewriteRule) *ParsedRule {
	if n == nil {
		return nil
	}
	kept := make([]*ParsedRule, 0, len(n.Children))
	for _, c := range n.Children {
		if rc := Rewrite(c, rules...); rc != nil {
			kept = append(kept, rc)
		}
	}
	n.Children = kept

	cur := n
	for _, r := range rules {
		if cur == nil {
			break
		}
		cur = r(cur)
	}
	return cur
}

// RemoveEmptyNodes drops zero-length, childless, valueless rule nodes —
// the residue left behind by an Optional or Repeat that matched nothing.
// Token nodes are never dropped by this rule (an EOF token legitimately
// matches zero-length).
func RemoveEmptyNodes(n *ParsedRule) *ParsedRule {
	if !n.IsToken && n.Length == 0 && len(n.Children) == 0 && !n.HasValue() {
		return nil
	}
	return n
}

// RemoveWhitespaceNodes returns a RewriteRule dropping token leaves whose
// matched text is entirely whitespace.
func RemoveWhitespaceNodes(input string) RewriteRule {
	return func(n *ParsedRule) *ParsedRule {
		if n.IsToken && n.Length > 0 && isAllWhitespace(n.Text(input)) {
			return nil
		}
		return n
	}
}

func isAllWhitespace(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return false
	}
	return true
}

// RemovePureLiterals drops token leaves carrying no value and no children —
// punctuation/keyword tokens matched only to enforce grammar shape, whose
// presence is already implied by their parent rule having matched at all.
func RemovePureLiterals(n *ParsedRule) *ParsedRule {
	if n.IsToken && !n.HasValue() && len(n.Children) == 0 {
		return nil
	}
	return n
}

// MergeSingleChildRules collapses a valueless rule node with exactly one
// remaining child into that child, eliminating the pass-through wrapper
// nodes Sequence/Choice/Optional otherwise leave behind once their
// punctuation siblings have been trimmed away.
func MergeSingleChildRules(n *ParsedRule) *ParsedRule {
	if !n.IsToken && len(n.Children) == 1 && !n.HasValue() {
		return n.Children[0]
	}
	return n
}

// TrimSpans shrinks every node's span to the union of its remaining
// children's spans, so whitespace absorbed by a SkipWhitespaces token or a
// now-removed punctuation sibling no longer shows up inside a node's span.
// Applied bottom-up, so children are already trimmed by the time a parent
// is visited.
func TrimSpans(n *ParsedRule) *ParsedRule {
	if len(n.Children) == 0 {
		return n
	}
	start, end := n.Children[0].Start, n.Children[0].End()
	for _, c := range n.Children[1:] {
		if c.Start < start {
			start = c.Start
		}
		if c.End() > end {
			end = c.End()
		}
	}
	n.Start, n.Length = start, end-start
	return n
}

// DefaultOptimizations returns the engine's standard post-processing
// preset: drop empty and whitespace-only nodes, drop bare
// punctuation leaves, collapse pass-through wrappers, then tighten spans.
func DefaultOptimizations(input string) []RewriteRule {
	return []RewriteRule{
		RemoveEmptyNodes,
		RemoveWhitespaceNodes(input),
		RemovePureLiterals,
		MergeSingleChildRules,
		TrimSpans,
	}
}
