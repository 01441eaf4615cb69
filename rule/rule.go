/*
Package rule implements the closed set of parser-rule combinators: the
grammar layer built on top of token patterns. Like package token, Rule is a
single tagged union discriminated by Kind — Sequence, Choice, Repeat and a
Token leaf wrapper are all the same Go type, dispatched on by Match.

Rule-level combinators recurse through a Driver rather than a flat table,
since every rule-level dispatch must pass through the full execution
pipeline (recursion-depth check, settings, memoization, skip strategy,
barrier bookkeeping, error recording) — unlike token-level combinators,
which are self-contained.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package rule

import (
	"github.com/npillmayer/combi"
	"github.com/npillmayer/combi/ast"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("combi.rule")
}

// Kind discriminates the closed set of rule combinator variants.
type Kind int

const (
	RToken Kind = iota // leaf: wraps a token.Pattern by ID
	RSequence
	RChoiceFirst
	RChoiceLongest
	RChoiceShortest
	ROptional
	RRepeat
	RSeparatedRepeat
	RLookaheadPositive
	RLookaheadNegative
	RSwitch
	RIf
	RCustom // user-supplied match procedure
)

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

var kindNames = map[Kind]string{
	RToken: "Token", RSequence: "Sequence", RChoiceFirst: "Choice(first)",
	RChoiceLongest: "Choice(longest)", RChoiceShortest: "Choice(shortest)",
	ROptional: "Optional", RRepeat: "Repeat", RSeparatedRepeat: "SeparatedRepeat",
	RLookaheadPositive: "Lookahead(+)", RLookaheadNegative: "Lookahead(-)",
	RSwitch: "Switch", RIf: "If", RCustom: "Custom",
}

// SkipStrategy selects how inter-element whitespace is consumed
// before matching a rule's children.
type SkipStrategy int

const (
	SkipInherit SkipStrategy = iota // use the enclosing ParserSettings value
	SkipNone
	SkipBeforeLazy
	SkipBeforeGreedy
	SkipTryThenLazy
	SkipTryThenGreedy
)

// RecoveryStrategy selects how a failed rule attempts to resynchronize
// after a failed match.
type RecoveryStrategy int

const (
	RecoverInherit RecoveryStrategy = iota
	RecoverNone
	RecoverSkipAfter
	RecoverSkipUntil
	RecoverFindNext
)

// Override carries a per-rule settings override, applied on top of the
// enclosing ParserSettings by the driver before dispatching this rule.
// A zero value means "inherit everything".
type Override struct {
	Skip           SkipStrategy
	Recovery       RecoveryStrategy
	RecoveryTarget combi.ID // token id consulted by SkipUntil/FindNext
	Memoize        *bool    // nil = inherit enclosing EnableMemoization
}

// ValueFactory builds a rule's intermediate/user value from its matched
// children, when ComputeValue is requested.
type ValueFactory func(children []*ast.ParsedRule, param interface{}) interface{}

// CustomMatch is a user-supplied match procedure for an RCustom rule.
type CustomMatch func(drv Driver, position uint64) (*ast.ParsedRule, bool)

// Driver is the recursive-descent execution context a Rule dispatches
// through. Implemented by exec.Context; declared here (rather than in
// exec) so that package rule need not import package exec, avoiding an
// import cycle (exec imports rule).
type Driver interface {
	// Dispatch matches rule id at position, running the full pipeline:
	// recursion check, settings, memoization, skip strategy, recovery.
	Dispatch(id combi.ID, position uint64) (*ast.ParsedRule, bool)
	// MatchToken matches token id at position directly (no driver overhead
	// beyond what the token package itself performs).
	MatchToken(id combi.ID, position uint64) (combi.ParsedElement, bool)
	// Param returns the caller-supplied parse parameter (for Switch/If).
	Param() interface{}
	// Barrier returns the nearest barrier position at or after position.
	Barrier(position uint64) uint64
	// ComputeValue reports whether values should be computed on this path.
	ComputeValue() bool
	// LazyAST reports whether value computation should be deferred until
	// first access rather than performed eagerly.
	LazyAST() bool
	// TryInline attempts to match rule id at position as a build-time
	// specialized inline (a bare token wrapper with no settings override),
	// skipping Dispatch's settings-frame/recursion/memoization/recovery
	// bookkeeping. inlined reports whether id was actually eligible; when
	// false the caller must fall back to Dispatch.
	TryInline(id combi.ID, position uint64) (node *ast.ParsedRule, ok bool, inlined bool)
	// ChoiceCandidates narrows a Choice(first) rule's children to those
	// whose first-character set contains input[position], using the
	// build-time-computed dispatch table. Returns nil when no narrowing is
	// available, in which case the caller tries every child of id in
	// declaration order.
	ChoiceCandidates(id combi.ID, position uint64) []combi.ID
	// RecordSwitchFailure records that Switch rule id's selector matched no
	// branch and no default was configured.
	RecordSwitchFailure(id combi.ID, position uint64)
}

// Pattern is a single rule pattern. Constructed via the New* constructors
// below; assigned a stable ID and wired to token.Pattern/rule.Pattern
// children by the build package.
type Pattern struct {
	ID   combi.ID
	Kind Kind
	Name string // optional, for dumps/tracing only

	TokenID  combi.ID  // RToken
	Children []combi.ID // rule IDs, for combinator kinds

	RepeatMin int
	RepeatMax int // -1 = unbounded

	TrimStart bool // SeparatedRepeat: allowTrailing
	TrimEnd   bool // SeparatedRepeat: includeSep

	Selector func(param interface{}) int
	Branches []combi.ID
	Default  combi.ID

	Predicate func(param interface{}) bool
	Then      combi.ID
	Else      combi.ID
	HasElse   bool

	Factory ValueFactory
	Custom  CustomMatch

	Settings *Override

	// Computed by the build package.
	FirstChars    *CharSet
	Deterministic bool
	MayBeEmpty    bool
}

// --- Constructors --------------------------------------------------------

func NewToken(tokenID combi.ID) *Pattern {
	return &Pattern{Kind: RToken, TokenID: tokenID}
}

func NewSequence(children ...combi.ID) *Pattern {
	return &Pattern{Kind: RSequence, Children: children}
}

func NewChoiceFirst(children ...combi.ID) *Pattern {
	return &Pattern{Kind: RChoiceFirst, Children: children}
}

func NewChoiceLongest(children ...combi.ID) *Pattern {
	return &Pattern{Kind: RChoiceLongest, Children: children}
}

func NewChoiceShortest(children ...combi.ID) *Pattern {
	return &Pattern{Kind: RChoiceShortest, Children: children}
}

func NewOptional(child combi.ID) *Pattern {
	return &Pattern{Kind: ROptional, Children: []combi.ID{child}}
}

func NewRepeat(child combi.ID, min, max int) *Pattern {
	return &Pattern{Kind: RRepeat, Children: []combi.ID{child}, RepeatMin: min, RepeatMax: max}
}

func NewSeparatedRepeat(elem, sep combi.ID, min, max int, allowTrailing, includeSep bool) *Pattern {
	return &Pattern{
		Kind: RSeparatedRepeat, Children: []combi.ID{elem, sep},
		RepeatMin: min, RepeatMax: max, TrimStart: allowTrailing, TrimEnd: includeSep,
	}
}

func NewLookahead(child combi.ID, positive bool) *Pattern {
	k := RLookaheadNegative
	if positive {
		k = RLookaheadPositive
	}
	return &Pattern{Kind: k, Children: []combi.ID{child}}
}

func NewSwitch(selector func(interface{}) int, branches []combi.ID, dflt combi.ID) *Pattern {
	return &Pattern{Kind: RSwitch, Selector: selector, Branches: branches, Default: dflt}
}

func NewIf(pred func(interface{}) bool, then, els combi.ID, hasElse bool) *Pattern {
	return &Pattern{Kind: RIf, Predicate: pred, Then: then, Else: els, HasElse: hasElse}
}

func NewCustom(fn CustomMatch) *Pattern {
	return &Pattern{Kind: RCustom, Custom: fn}
}

// WithName attaches a debug name, returning p for chaining.
func (p *Pattern) WithName(name string) *Pattern {
	p.Name = name
	return p
}

// WithFactory attaches a value factory, returning p for chaining.
func (p *Pattern) WithFactory(f ValueFactory) *Pattern {
	p.Factory = f
	return p
}

// WithSettings attaches a per-rule settings override, returning p for chaining.
func (p *Pattern) WithSettings(o *Override) *Pattern {
	p.Settings = o
	return p
}

// IsLeaf reports whether this pattern has no rule-id children.
func (p *Pattern) IsLeaf() bool {
	return p.Kind == RToken || p.Kind == RCustom
}
