package token

import "golang.org/x/exp/slices"

// CharSet is a first-character set: the set of runes that may
// legally appear at position 0 of a match for some element. An empty,
// non-nil set paired with Deterministic==false means "unknown / accepts
// anything"; a complete set is marked via the owning Pattern's
// Deterministic flag.
type CharSet struct {
	runes map[rune]struct{}
}

// NewCharSet creates an empty first-character set.
func NewCharSet() *CharSet {
	return &CharSet{runes: make(map[rune]struct{})}
}

// Add inserts r into the set.
func (cs *CharSet) Add(r rune) {
	cs.runes[r] = struct{}{}
}

// AddAll inserts every rune of other into cs.
func (cs *CharSet) AddAll(other *CharSet) {
	if other == nil {
		return
	}
	for r := range other.runes {
		cs.runes[r] = struct{}{}
	}
}

// Contains reports whether r is in the set.
func (cs *CharSet) Contains(r rune) bool {
	if cs == nil {
		return false
	}
	_, ok := cs.runes[r]
	return ok
}

// Len returns the number of runes recorded.
func (cs *CharSet) Len() int {
	if cs == nil {
		return 0
	}
	return len(cs.runes)
}

// Runes returns the recorded runes in ascending order, so callers building
// a dispatch table or a dump get a stable, reproducible iteration order
// instead of Go's randomized map order.
func (cs *CharSet) Runes() []rune {
	out := make([]rune, 0, len(cs.runes))
	for r := range cs.runes {
		out = append(out, r)
	}
	slices.Sort(out)
	return out
}
