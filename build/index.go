package build

import (
	"github.com/emirpasic/gods/lists/arraylist"

	"github.com/npillmayer/combi"
)

// DispatchTable maps a first-input-character to the candidate rule ids
// whose FirstChars set contains it — the rule-level analogue of
// token/combinators.go's filterDeterministic, pre-computed once at build
// time instead of filtered on every Choice(first) call. Grounded on
// lr/tables.go's use of emirpasic/gods' arraylist.List for per-state edge
// lists; here each rune maps to an edge list of candidate rules.
type DispatchTable struct {
	byChar map[rune]*arraylist.List
}

// NewDispatchTable builds a DispatchTable for a Choice(first) rule's
// children, given each child's computed first-character set. Returns nil if
// any child is non-deterministic or has an empty/unknown first set, since
// then no safe per-character narrowing is possible.
func NewDispatchTable(children []combi.ID, firstOf func(combi.ID) *CharSetView) *DispatchTable {
	dt := &DispatchTable{byChar: make(map[rune]*arraylist.List)}
	for _, child := range children {
		fc := firstOf(child)
		if fc == nil || !fc.Deterministic || fc.Set.Len() == 0 {
			return nil
		}
		for _, r := range fc.Set.Runes() {
			l, ok := dt.byChar[r]
			if !ok {
				l = arraylist.New()
				dt.byChar[r] = l
			}
			l.Add(child)
		}
	}
	return dt
}

// Candidates returns the candidate rule ids for input character r, or nil
// if r is not claimed by any child's first-character set (meaning no child
// can possibly match there).
func (dt *DispatchTable) Candidates(r rune) []combi.ID {
	if dt == nil {
		return nil
	}
	l, ok := dt.byChar[r]
	if !ok {
		return nil
	}
	vals := l.Values()
	out := make([]combi.ID, len(vals))
	for i, v := range vals {
		out[i] = v.(combi.ID)
	}
	return out
}

// CharSetView adapts either a token.CharSet or a rule.CharSet (both
// structurally identical but distinct types, since token and rule are
// independent packages) into a common shape for DispatchTable construction.
type CharSetView struct {
	Set interface {
		Len() int
		Runes() []rune
	}
	Deterministic bool
}
