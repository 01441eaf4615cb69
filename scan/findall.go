/*
Package scan implements scanning mode: finding every non-overlapping
match of a rule across an input, the structured-regex-like "find all"
side-entry into the engine, as opposed to matching a whole grammar starting
at position 0.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package scan

import (
	"github.com/npillmayer/combi"
	"github.com/npillmayer/combi/ast"
	"github.com/npillmayer/combi/build"
	"github.com/npillmayer/combi/exec"
)

// Match is one non-overlapping result of FindAll.
type Match struct {
	Node *ast.ParsedRule
}

// Start returns the match's starting offset.
func (m Match) Start() uint64 { return m.Node.Start }

// End returns the offset just past the match.
func (m Match) End() uint64 { return m.Node.End() }

// Text returns the substring of input the match covers.
func (m Match) Text(input string) string { return m.Node.Text(input) }

// FindAll scans input left to right, attempting rule id at every position
// not already covered by a previous match: on success the match is
// recorded and scanning resumes right after it; on failure the position
// advances by one and the attempt is retried. A single Context is reused
// across every attempt, so its memoization cache turns the overlapping
// re-attempts at shifted positions into the cheap case rather than
// quadratic rescanning.
func FindAll(g *build.Grammar, id combi.ID, input string, opts ...exec.Option) []Match {
	ctx := exec.NewContext(g, input, opts...)
	var matches []Match
	end := uint64(len(input))
	for pos := uint64(0); pos <= end; {
		node, ok := ctx.Dispatch(id, pos)
		if !ok {
			pos++
			continue
		}
		matches = append(matches, Match{Node: node})
		if node.Length == 0 {
			pos++
		} else {
			pos = node.End()
		}
	}
	return matches
}
