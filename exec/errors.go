package exec

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/npillmayer/combi"
)

// ErrorKind discriminates the parse-error taxonomy.
type ErrorKind int

const (
	ErrUnexpectedToken ErrorKind = iota
	ErrRecursionLimitExceeded
	ErrSelectorOutOfRange // Switch selector had no matching branch and no default
	ErrRecoveryFailed
	ErrInternal
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnexpectedToken:
		return "unexpected token"
	case ErrRecursionLimitExceeded:
		return "recursion limit exceeded"
	case ErrSelectorOutOfRange:
		return "selector out of range"
	case ErrRecoveryFailed:
		return "recovery failed"
	case ErrInternal:
		return "internal error"
	}
	return "unknown error"
}

// ParseError records a single failed match.
type ParseError struct {
	Kind     ErrorKind
	RuleID   combi.ID
	TokenID  combi.ID
	Position uint64
	Message  string
}

func (e *ParseError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s at position %d: %s", e.Kind, e.Position, e.Message)
	}
	return fmt.Sprintf("%s at position %d", e.Kind, e.Position)
}

// ErrorLog is a capacity-bounded collection of ParseErrors: once full,
// inserting a new error evicts whichever recorded error has the lowest
// input position, and a new error positioned below every recorded one is
// dropped instead, on the theory that the parser's most-advanced failures
// are closest to the true site of the problem and are worth keeping over
// errors from early, likely-recovered-from backtracking.
type ErrorLog struct {
	capacity int
	errs     []*ParseError
}

// NewErrorLog creates a log bounded to capacity entries.
func NewErrorLog(capacity int) *ErrorLog {
	if capacity <= 0 {
		capacity = 1
	}
	return &ErrorLog{capacity: capacity}
}

// Record appends e. If the log is full, e takes the slot of the
// lowest-position entry, unless e's position is lower still, in which case
// e is dropped.
func (l *ErrorLog) Record(e *ParseError) {
	if len(l.errs) < l.capacity {
		l.errs = append(l.errs, e)
		return
	}
	minIdx := 0
	for i, existing := range l.errs {
		if existing.Position < l.errs[minIdx].Position {
			minIdx = i
		}
	}
	if e.Position >= l.errs[minIdx].Position {
		l.errs[minIdx] = e
	}
}

// Errors returns the recorded errors in insertion order, except that an
// error which replaced an evicted one sits in the evicted error's slot.
func (l *ErrorLog) Errors() []*ParseError {
	return l.errs
}

// Furthest returns the recorded error with the greatest input position, the
// conventional "best" single diagnostic to surface to a user, or nil if the
// log is empty.
func (l *ErrorLog) Furthest() *ParseError {
	if len(l.errs) == 0 {
		return nil
	}
	best := l.errs[0]
	for _, e := range l.errs[1:] {
		if e.Position > best.Position {
			best = e
		}
	}
	return best
}

// Render formats the log as a human-readable report using pterm, the way
// terex/terexlang/trepl/repl.go renders interpreter diagnostics to the
// console.
func (l *ErrorLog) Render(input string) string {
	var b strings.Builder
	for _, e := range l.errs {
		line, col := lineCol(input, e.Position)
		b.WriteString(pterm.FgRed.Sprintf("%s ", e.Kind))
		b.WriteString(pterm.FgLightWhite.Sprintf("(line %d, col %d)", line, col))
		if e.Message != "" {
			b.WriteString(": " + e.Message)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func lineCol(input string, pos uint64) (line, col int) {
	line, col = 1, 1
	for i := uint64(0); i < pos && i < uint64(len(input)); i++ {
		if input[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return
}
