package exec

import (
	"github.com/npillmayer/combi/ast"
	"github.com/npillmayer/combi/rule"
)

// isSkippable reports whether b is an inter-element separator character
// skipped by the Skip* strategies. Only ASCII whitespace is
// skippable; grammars needing comment-skipping attach a custom
// SkipWhitespaces-style rule instead.
func isSkippable(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

func skipRun(input string, pos, barrier uint64) uint64 {
	for pos < barrier && pos < uint64(len(input)) && isSkippable(input[pos]) {
		pos++
	}
	return pos
}

// tryWithSkip attempts tryAt under one of the five skip strategies.
// tryAt(p) performs one unmemoized, unskipped match attempt at position p.
//
// The two Lazy variants (SkipBeforeLazy, SkipTryThenLazy) are
// implemented identically: both always attempt a match at the original,
// unskipped position first, then retry after consuming whitespace one
// character at a time until a match succeeds or the barrier is reached.
// They differ from each other only in name in this engine, since "try the
// unskipped position first" is exactly what a lazy, minimal-skip strategy
// means — there is no smaller skip to prefer. The two Greedy variants do
// differ: SkipBeforeGreedy always consumes the whole leading whitespace run
// before trying at all, while SkipTryThenGreedy gives the unskipped
// position first refusal and only then skips the whole run. This resolves
// the open question of how Lazy interacts with a rule that itself matches
// zero-length at a skippable position: such a rule gets first refusal at
// its true starting position under every strategy here except
// SkipBeforeGreedy.
func tryWithSkip(strategy rule.SkipStrategy, input string, pos, barrier uint64, tryAt func(uint64) (*ast.ParsedRule, bool)) (*ast.ParsedRule, bool) {
	switch strategy {
	case rule.SkipBeforeGreedy:
		return tryAt(skipRun(input, pos, barrier))
	case rule.SkipTryThenGreedy:
		if n, ok := tryAt(pos); ok {
			return n, true
		}
		return tryAt(skipRun(input, pos, barrier))
	case rule.SkipBeforeLazy, rule.SkipTryThenLazy:
		p := pos
		for {
			if n, ok := tryAt(p); ok {
				return n, true
			}
			if p >= barrier || p >= uint64(len(input)) || !isSkippable(input[p]) {
				return nil, false
			}
			p++
		}
	default: // SkipNone, SkipInherit (already resolved by caller)
		return tryAt(pos)
	}
}
