/*
Package exec implements the recursive-descent driver that runs a built
Grammar over an input string: ParserContext/Context, per-rule settings
overrides, skip and error-recovery strategies, barrier-token handling,
match memoization, and the parse-error taxonomy.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package exec

import (
	"unicode/utf8"

	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/combi"
	"github.com/npillmayer/combi/ast"
	"github.com/npillmayer/combi/build"
	"github.com/npillmayer/combi/token"
)

func tracer() tracing.Trace {
	return tracing.Select("combi.exec")
}

// TraceEntry records one rule dispatch, kept when ParserSettings.RecordWalkTrace
// is set.
type TraceEntry struct {
	RuleID   combi.ID
	Position uint64
	Length   uint64
	OK       bool
	Depth    int
}

// Context is the single-threaded, per-parse execution state (position is
// implicit in each Dispatch call rather than stored, since the driver is
// recursive-descent rather than an explicit position cursor). A Context is
// built once per Parse call and must not be shared across goroutines.
type Context struct {
	input    string
	grammar  *build.Grammar
	param    interface{}
	barriers *BarrierStream

	cache    *MemoCache
	errorLog *ErrorLog
	trace    []TraceEntry
	skipped  []combi.ID

	root    ParserSettings
	frame   *settingsFrame
	depth   int
	version uint64
}

// NewContext builds a fresh execution context over input for grammar,
// configured by opts.
func NewContext(grammar *build.Grammar, input string, opts ...Option) *Context {
	settings := DefaultSettings()
	for _, opt := range opts {
		opt(&settings)
	}
	c := &Context{
		input:    input,
		grammar:  grammar,
		cache:    NewMemoCache(),
		errorLog: NewErrorLog(settings.ErrorLogCapacity),
		root:     settings,
		frame:    newRootFrame(settings),
	}
	if settings.BarrierTokenizer != nil {
		c.SetBarrierTokens(settings.BarrierTokenizer(input))
	}
	return c
}

// SetParam attaches the caller-supplied parse parameter, consulted by
// Switch/If rules.
func (c *Context) SetParam(p interface{}) { c.param = p }

// SetBarrierTokens installs the external barrier-token stream.
func (c *Context) SetBarrierTokens(tokens []combi.BarrierToken) {
	c.barriers = NewBarrierStream(tokens)
}

// SetVersion stamps every node produced from here on with version — used by
// the incremental reparser to distinguish freshly-parsed subtrees from
// spliced-in survivors of a previous parse.
func (c *Context) SetVersion(v uint64) { c.version = v }

// Input returns the text being parsed.
func (c *Context) Input() string { return c.input }

// Errors returns the error log accumulated so far.
func (c *Context) Errors() *ErrorLog { return c.errorLog }

// Trace returns the recorded walk trace (empty unless RecordWalkTrace was set).
func (c *Context) Trace() []TraceEntry { return c.trace }

// SkippedRules returns the ids of rules skipped during matching (empty
// unless RecordSkippedRules was set).
func (c *Context) SkippedRules() []combi.ID { return c.skipped }

// Cache exposes the memoization cache, e.g. for the incremental reparser to
// invalidate entries downstream of an edit.
func (c *Context) Cache() *MemoCache { return c.cache }

// --- token.ErrorSink, token.Table -----------------------------------------

// RecordTokenFailure implements token.ErrorSink.
func (c *Context) RecordTokenFailure(id combi.ID, position uint64) {
	if c.frame.settings.IgnoreErrors {
		return
	}
	c.errorLog.Record(&ParseError{Kind: ErrUnexpectedToken, TokenID: id, Position: position})
}

// Token implements token.Table by delegating to the grammar.
func (c *Context) Token(id combi.ID) *token.Pattern {
	return c.grammar.Token(id)
}

// --- rule.Driver -----------------------------------------------------------

// Param implements rule.Driver.
func (c *Context) Param() interface{} { return c.param }

// Barrier implements rule.Driver.
func (c *Context) Barrier(position uint64) uint64 {
	return c.barriers.NextBarrierPosition(position, uint64(len(c.input)))
}

// ComputeValue implements rule.Driver.
func (c *Context) ComputeValue() bool {
	return !c.frame.settings.UseLightAST
}

// LazyAST implements rule.Driver.
func (c *Context) LazyAST() bool {
	return c.frame.settings.UseLazyAST
}

// TryInline implements rule.Driver: bare RToken rules carrying no per-rule
// settings override skip the settings-frame push/pop, recursion-depth check
// and memoization lookup that Dispatch performs, since none of those can
// possibly apply to a rule with nothing to override and no children to
// recurse through. Skip strategy and barrier/version bookkeeping are still
// honored, since those are observable even for a bare token wrapper.
func (c *Context) TryInline(id combi.ID, position uint64) (*ast.ParsedRule, bool, bool) {
	var flags build.Flags
	if int(id) < len(c.grammar.Flags) {
		flags = c.grammar.Flags[id]
	}
	if !flags.InlineRules {
		return nil, false, false
	}
	pat := c.grammar.Rule(id)
	if pat == nil {
		return nil, false, true
	}
	barrier := c.Barrier(position)
	node, ok := tryWithSkip(c.frame.settings.Skip, c.input, position, barrier, func(p uint64) (*ast.ParsedRule, bool) {
		return pat.Match(c, p)
	})
	if ok {
		node.PassedBarriers = c.barriers.PassedBarriers(position, node.End())
		node.Version = c.version
	}
	if c.frame.settings.RecordWalkTrace {
		length := uint64(0)
		if ok {
			length = node.Length
		}
		c.trace = append(c.trace, TraceEntry{RuleID: id, Position: position, Length: length, OK: ok, Depth: c.depth})
	}
	return node, ok, true
}

// ChoiceCandidates implements rule.Driver.
func (c *Context) ChoiceCandidates(id combi.ID, position uint64) []combi.ID {
	var flags build.Flags
	if int(id) < len(c.grammar.Flags) {
		flags = c.grammar.Flags[id]
	}
	if flags.Dispatch == nil || position >= uint64(len(c.input)) {
		return nil
	}
	r, _ := utf8.DecodeRuneInString(c.input[position:])
	return flags.Dispatch.Candidates(r)
}

// RecordSwitchFailure implements rule.Driver.
func (c *Context) RecordSwitchFailure(id combi.ID, position uint64) {
	if c.frame.settings.IgnoreErrors {
		return
	}
	c.errorLog.Record(&ParseError{Kind: ErrSelectorOutOfRange, RuleID: id, Position: position})
}

// MatchToken implements rule.Driver: a direct, driver-overhead-free token
// match (no memoization, skip strategy or recovery — those are handled one
// layer up, in Dispatch).
func (c *Context) MatchToken(id combi.ID, position uint64) (combi.ParsedElement, bool) {
	pat := c.grammar.Token(id)
	if pat == nil {
		return combi.Fail, false
	}
	mc := &token.MatchContext{
		Input:        c.input,
		Position:     position,
		Barrier:      c.Barrier(position),
		Param:        c.param,
		ComputeValue: c.ComputeValue(),
		Errors:       c,
		Table:        c.grammar,
	}
	elem := pat.Match(mc)
	if !elem.OK() {
		return combi.Fail, false
	}
	return elem, true
}
