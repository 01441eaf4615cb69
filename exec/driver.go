package exec

import (
	"github.com/npillmayer/combi"
	"github.com/npillmayer/combi/ast"
	"github.com/npillmayer/combi/build"
	"github.com/npillmayer/combi/rule"
)

// Dispatch implements rule.Driver: it is the single entry point every
// rule-level combinator recurses through, running the full pipeline —
// recursion-depth guard, per-rule settings override, memoization, skip
// strategy, match, barrier/version bookkeeping, walk trace, and error
// recovery on failure.
func (c *Context) Dispatch(id combi.ID, position uint64) (*ast.ParsedRule, bool) {
	pat := c.grammar.Rule(id)
	if pat == nil {
		c.errorLog.Record(&ParseError{Kind: ErrInternal, RuleID: id, Position: position, Message: "unknown rule id"})
		return nil, false
	}

	if c.depth >= c.frame.settings.MaxRecursionDepth {
		c.errorLog.Record(&ParseError{Kind: ErrRecursionLimitExceeded, RuleID: id, Position: position})
		return nil, false
	}

	c.frame = c.frame.push(pat.Settings)
	c.depth++
	defer func() {
		c.depth--
		c.frame = c.frame.parent
	}()

	var flags build.Flags
	if int(id) < len(c.grammar.Flags) {
		flags = c.grammar.Flags[id]
	}
	memoize := c.frame.settings.EnableMemoization || flags.EnableMemoization

	if memoize {
		if node, ok, found := c.cache.Get(id, position); found {
			if c.frame.settings.RecordSkippedRules {
				c.skipped = append(c.skipped, id)
			}
			return node, ok
		}
	}

	barrier := c.Barrier(position)
	node, ok := tryWithSkip(c.frame.settings.Skip, c.input, position, barrier, func(p uint64) (*ast.ParsedRule, bool) {
		return pat.Match(c, p)
	})

	if ok {
		node.PassedBarriers = c.barriers.PassedBarriers(position, node.End())
		node.Version = c.version
	} else if s := c.frame.settings; s.Recovery != rule.RecoverNone && s.Recovery != rule.RecoverInherit {
		node, ok = c.attemptRuleRecovery(pat, id, position, s)
	}

	if c.frame.settings.RecordWalkTrace {
		length := uint64(0)
		if ok {
			length = node.Length
		}
		c.trace = append(c.trace, TraceEntry{RuleID: id, Position: position, Length: length, OK: ok, Depth: c.depth})
	}

	if memoize {
		c.cache.Put(id, position, node, ok)
	}
	return node, ok
}

// attemptRuleRecovery resynchronizes after a failed dispatch of pat at
// position, per the rule's configured RecoveryStrategy. On success,
// the returned node covers [position, recovered child's end) and contains
// the recovered child as its sole child, so the gap of skipped/invalid
// input remains visible in the span even though it has no node of its own.
func (c *Context) attemptRuleRecovery(pat *rule.Pattern, id combi.ID, position uint64, s ParserSettings) (*ast.ParsedRule, bool) {
	c.errorLog.Record(&ParseError{Kind: ErrUnexpectedToken, RuleID: id, Position: position, Message: "attempting recovery"})
	rec := c.recover(s.Recovery, s.RecoveryTarget, position)
	if !rec.recovered {
		c.errorLog.Record(&ParseError{Kind: ErrRecoveryFailed, RuleID: id, Position: position})
		return nil, false
	}
	child, ok := pat.Match(c, rec.position)
	if !ok {
		c.errorLog.Record(&ParseError{Kind: ErrRecoveryFailed, RuleID: id, Position: rec.position})
		return nil, false
	}
	return &ast.ParsedRule{
		RuleID:     id,
		Start:      position,
		Length:     child.End() - position,
		Children:   []*ast.ParsedRule{child},
		Occurrence: ast.NoOccurrence,
	}, true
}
