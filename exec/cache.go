package exec

import (
	"github.com/npillmayer/combi"
	"github.com/npillmayer/combi/ast"
)

// MemoCache memoizes rule match outcomes keyed by (rule id, position), so a
// rule dispatched more than once at the same position — the classic
// exponential blow-up of unconstrained backtracking combinators — runs its
// match procedure only once.
//
// Grounded on lr/sppf/forest.go's packed-forest node index, which keys
// shared subtrees by (symbol, span) so that a bounded number of distinct
// derivations are stored once each; MemoCache specializes that idea to a
// single deterministic outcome per (rule, position) rather than a set of
// packed alternatives, since a combi rule's Match is a pure function of its
// inputs with no ambiguity to preserve.
type MemoCache struct {
	entries map[memoKey]memoEntry
}

type memoKey struct {
	rule combi.ID
	pos  uint64
}

type memoEntry struct {
	node *ast.ParsedRule
	ok   bool
}

// NewMemoCache creates an empty cache.
func NewMemoCache() *MemoCache {
	return &MemoCache{entries: make(map[memoKey]memoEntry)}
}

// Get looks up a previous match outcome for (id, pos). found reports
// whether an entry exists at all; ok (meaningful only if found) reports
// whether that prior match succeeded.
func (m *MemoCache) Get(id combi.ID, pos uint64) (node *ast.ParsedRule, ok bool, found bool) {
	e, found := m.entries[memoKey{id, pos}]
	return e.node, e.ok, found
}

// Put records the outcome of matching id at pos.
func (m *MemoCache) Put(id combi.ID, pos uint64, node *ast.ParsedRule, ok bool) {
	m.entries[memoKey{id, pos}] = memoEntry{node: node, ok: ok}
}

// InvalidateFrom drops every cache entry at or past pos — used by the
// incremental reparser to discard memoized results downstream of an edit
// while keeping entries that precede the edit intact.
func (m *MemoCache) InvalidateFrom(pos uint64) {
	for k := range m.entries {
		if k.pos >= pos {
			delete(m.entries, k)
		}
	}
}

// Len reports how many outcomes are currently memoized.
func (m *MemoCache) Len() int {
	return len(m.entries)
}
