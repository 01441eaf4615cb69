package build

import (
	"github.com/npillmayer/combi"
	"github.com/npillmayer/combi/internal/iteratable"
	"github.com/npillmayer/combi/rule"
)

// leftCornerEdges returns the rule ids exposed at p's own starting position
// without any other rule necessarily having consumed input first — i.e. the
// edges of the "left corner" graph whose cycles are unbreakable left
// recursion. This is a conservative approximation: Sequence
// only ever exposes its first child, regardless of whether that child may
// match empty (a fully precise version would also expose the second child
// when the first is nullable, and so on); RCustom is opaque and contributes
// no edges. Both approximations can only under-report cycles, never
// fabricate one, so a rejected grammar is always genuinely unbreakable.
func leftCornerEdges(p *rule.Pattern) []combi.ID {
	switch p.Kind {
	case rule.RSequence:
		if len(p.Children) == 0 {
			return nil
		}
		return p.Children[:1]
	case rule.RChoiceFirst, rule.RChoiceLongest, rule.RChoiceShortest:
		return p.Children
	case rule.ROptional, rule.RRepeat, rule.RLookaheadPositive, rule.RLookaheadNegative:
		return p.Children
	case rule.RSeparatedRepeat:
		if len(p.Children) == 0 {
			return nil
		}
		return p.Children[:1]
	case rule.RSwitch:
		edges := append([]combi.ID(nil), p.Branches...)
		if p.Default != combi.NoID {
			edges = append(edges, p.Default)
		}
		return edges
	case rule.RIf:
		edges := []combi.ID{p.Then}
		if p.HasElse {
			edges = append(edges, p.Else)
		}
		return edges
	}
	return nil // RToken, RCustom: opaque / leaf
}

// findUnbreakableCycle looks for left recursion that no branch can escape.
// A fixed point first marks every rule that has a left-corner branch ending
// in a leaf (a token or custom rule, or a reference outside the table) or in
// an already-marked rule; such a rule can always start without re-entering a
// cycle, so it is never reported. A depth-first walk of the left-corner graph
// from each remaining rule then looks for a path back to itself. Returns the
// rule ids of one discovered cycle (in traversal order), or nil if none
// exists.
func findUnbreakableCycle(rules []*rule.Pattern) []combi.ID {
	escapes := make([]bool, len(rules))
	for changed := true; changed; {
		changed = false
		for id, p := range rules {
			if p == nil || escapes[id] {
				continue
			}
			edges := leftCornerEdges(p)
			esc := len(edges) == 0
			for _, e := range edges {
				esc = esc || e < 0 || int(e) >= len(rules) || escapes[e]
			}
			escapes[id], changed = esc, changed || esc
		}
	}
	for start := range rules {
		if rules[start] == nil || escapes[start] {
			continue
		}
		if path := reachesSelf(rules, combi.ID(start)); path != nil {
			return path
		}
	}
	return nil
}

// reachesSelf reports whether start is reachable from itself via
// leftCornerEdges, returning the path if so.
func reachesSelf(rules []*rule.Pattern, start combi.ID) []combi.ID {
	visited := iteratable.NewSet(len(rules))
	var path []combi.ID

	var dfs func(id combi.ID) bool
	dfs = func(id combi.ID) bool {
		if id == start && len(path) > 0 {
			path = append(path, id)
			return true
		}
		if visited.Contains(id) {
			return false
		}
		visited.Add(id)
		path = append(path, id)
		p := rules[id]
		if p != nil {
			for _, next := range leftCornerEdges(p) {
				if dfs(next) {
					return true
				}
			}
		}
		path = path[:len(path)-1]
		return false
	}
	if dfs(start) {
		return path
	}
	return nil
}
