package exec

import (
	"github.com/npillmayer/combi"
	"github.com/npillmayer/combi/rule"
)

// recoveryResult reports the outcome of attempting to resynchronize after a
// failed match.
type recoveryResult struct {
	position  uint64
	recovered bool
}

// recover attempts to resynchronize the parse after a match failed at
// failPos, according to strategy.
func (c *Context) recover(strategy rule.RecoveryStrategy, target combi.ID, failPos uint64) recoveryResult {
	inputLen := uint64(len(c.input))
	switch strategy {
	case rule.RecoverSkipAfter:
		// Advance past exactly one character and let the caller retry from
		// there — the simplest possible resynchronization, useful when no
		// reliable synchronizing token exists.
		next := failPos + 1
		if next > inputLen {
			return recoveryResult{position: inputLen, recovered: false}
		}
		return recoveryResult{position: next, recovered: true}

	case rule.RecoverSkipUntil:
		// Scan forward for target and resume right before it, so the
		// calling rule gets another chance to match the synchronizing
		// token itself.
		for pos := failPos; pos <= inputLen; pos++ {
			if elem, ok := c.MatchToken(target, pos); ok {
				return recoveryResult{position: elem.Start, recovered: true}
			}
		}
		return recoveryResult{position: inputLen, recovered: false}

	case rule.RecoverFindNext:
		// Like SkipUntil, but resume after the synchronizing token, having
		// consumed it as part of the recovery.
		for pos := failPos; pos <= inputLen; pos++ {
			if elem, ok := c.MatchToken(target, pos); ok {
				return recoveryResult{position: elem.End(), recovered: true}
			}
		}
		return recoveryResult{position: inputLen, recovered: false}
	}
	return recoveryResult{position: failPos, recovered: false}
}
