/*
Package incremental implements single-edit incremental reparsing:
given a previous parse tree and one text edit, reuse every subtree that
lies entirely outside the edit, shift the spans of nodes that follow it,
and re-derive only the smallest subtree that actually contains the edit.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package incremental

import (
	"github.com/npillmayer/combi"
	"github.com/npillmayer/combi/ast"
	"github.com/npillmayer/combi/build"
	"github.com/npillmayer/combi/exec"
)

// Edit describes replacing the OldLength bytes starting at Start with
// NewText.
type Edit struct {
	Start     uint64
	OldLength uint64
	NewText   string
}

func (e Edit) end() uint64 { return e.Start + e.OldLength }

func (e Edit) shift() int64 { return int64(len(e.NewText)) - int64(e.OldLength) }

// Reparser holds what Apply needs to re-derive unreusable subtrees: the
// grammar and entry rule to run, plus the exec options a fresh Context
// should be built with.
type Reparser struct {
	grammar *build.Grammar
	entry   combi.ID
	opts    []exec.Option
}

// NewReparser creates a Reparser for grammar, starting full reparses at
// entry.
func NewReparser(grammar *build.Grammar, entry combi.ID, opts ...exec.Option) *Reparser {
	return &Reparser{grammar: grammar, entry: entry, opts: opts}
}

// Apply applies edit to (prevInput, prevTree), returning the updated input
// and a parse tree consistent with it. Every node unaffected by the edit is
// reused verbatim (or span-shifted, if it lies after the edit); only the
// smallest subtree that entirely contains the edit is re-derived.
func (rp *Reparser) Apply(prevInput string, prevTree *ast.ParsedRule, edit Edit, version uint64) (string, *ast.ParsedRule) {
	newInput := prevInput[:edit.Start] + edit.NewText + prevInput[edit.end():]

	if prevTree == nil || !containsFully(prevTree, edit.Start, edit.end()) {
		// The edit falls (partially or fully) outside the root's previous
		// span, or there is no previous tree at all: nothing is reusable.
		return newInput, rp.reparseFull(newInput, version)
	}
	return newInput, rp.splice(prevTree, edit, newInput, version)
}

func containsFully(n *ast.ParsedRule, from, to uint64) bool {
	return n.Start <= from && to <= n.End()
}

// splice descends to the smallest node of n's subtree that still fully
// contains the edit, re-derives that node against newInput, and
// reconstructs every ancestor on the path back to n by swapping in the new
// child and shifting the spans of any later siblings.
func (rp *Reparser) splice(n *ast.ParsedRule, edit Edit, newInput string, version uint64) *ast.ParsedRule {
	for _, c := range n.Children {
		if containsFully(c, edit.Start, edit.end()) {
			newChild := rp.splice(c, edit, newInput, version)
			return spliceChild(n, c, newChild, edit.shift())
		}
	}
	// n is the smallest node fully containing the edit: re-derive it whole.
	ctx := exec.NewContext(rp.grammar, newInput, rp.opts...)
	ctx.SetVersion(version)
	node, ok := ctx.Dispatch(n.RuleID, n.Start)
	if !ok {
		return nil
	}
	return node
}

// spliceChild rebuilds parent with oldChild replaced by newChild, shifting
// every sibling positioned after oldChild by shift bytes.
func spliceChild(parent *ast.ParsedRule, oldChild, newChild *ast.ParsedRule, shift int64) *ast.ParsedRule {
	cp := parent.Clone()
	children := make([]*ast.ParsedRule, len(parent.Children))
	past := false
	for i, c := range parent.Children {
		switch {
		case c == oldChild:
			children[i] = newChild
			past = true
		case past:
			children[i] = shiftSubtree(c, shift)
		default:
			children[i] = c
		}
	}
	cp.Children = children
	if n := len(children); n > 0 && children[n-1] != nil {
		cp.Length = children[n-1].End() - cp.Start
	}
	return cp
}

// shiftSubtree returns a copy of n with every node's Start offset by shift,
// used for nodes positioned entirely after an edit.
func shiftSubtree(n *ast.ParsedRule, shift int64) *ast.ParsedRule {
	if n == nil {
		return nil
	}
	cp := n.Clone()
	cp.Start = uint64(int64(cp.Start) + shift)
	if len(cp.Children) > 0 {
		shifted := make([]*ast.ParsedRule, len(cp.Children))
		for i, c := range cp.Children {
			shifted[i] = shiftSubtree(c, shift)
		}
		cp.Children = shifted
	}
	return cp
}

func (rp *Reparser) reparseFull(input string, version uint64) *ast.ParsedRule {
	ctx := exec.NewContext(rp.grammar, input, rp.opts...)
	ctx.SetVersion(version)
	node, ok := ctx.Dispatch(rp.entry, 0)
	if !ok {
		return nil
	}
	return node
}
