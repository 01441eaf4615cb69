package exec

import (
	"github.com/npillmayer/combi"
	"github.com/npillmayer/combi/rule"
)

// ParserSettings configures a Context's behavior. Constructed via
// DefaultSettings and the With* functional options, the same
// option-function idiom used throughout the rest of this module.
type ParserSettings struct {
	Skip              rule.SkipStrategy
	Recovery          rule.RecoveryStrategy
	RecoveryTarget    combi.ID
	EnableMemoization bool
	MaxRecursionDepth int

	RecordWalkTrace    bool
	RecordSkippedRules bool
	UseLazyAST         bool
	UseLightAST        bool
	IgnoreErrors       bool
	ErrorLogCapacity   int

	BarrierTokenizer combi.BarrierTokenizer
}

// DefaultSettings returns the engine's baseline configuration.
func DefaultSettings() ParserSettings {
	return ParserSettings{
		Skip:              rule.SkipNone,
		Recovery:          rule.RecoverNone,
		RecoveryTarget:    combi.NoID,
		EnableMemoization: true,
		MaxRecursionDepth: 4096,
		ErrorLogCapacity:  64,
	}
}

// Option configures a ParserSettings value.
type Option func(*ParserSettings)

func WithSkipStrategy(s rule.SkipStrategy) Option {
	return func(ps *ParserSettings) { ps.Skip = s }
}

func WithRecoveryStrategy(r rule.RecoveryStrategy, target combi.ID) Option {
	return func(ps *ParserSettings) { ps.Recovery = r; ps.RecoveryTarget = target }
}

func WithMemoization(b bool) Option {
	return func(ps *ParserSettings) { ps.EnableMemoization = b }
}

func WithMaxRecursionDepth(n int) Option {
	return func(ps *ParserSettings) { ps.MaxRecursionDepth = n }
}

func WithWalkTrace(b bool) Option {
	return func(ps *ParserSettings) { ps.RecordWalkTrace = b }
}

func WithSkippedRulesTrace(b bool) Option {
	return func(ps *ParserSettings) { ps.RecordSkippedRules = b }
}

func WithLazyAST(b bool) Option {
	return func(ps *ParserSettings) { ps.UseLazyAST = b; if b { ps.UseLightAST = false } }
}

func WithLightAST(b bool) Option {
	return func(ps *ParserSettings) { ps.UseLightAST = b; if b { ps.UseLazyAST = false } }
}

func WithIgnoreErrors(b bool) Option {
	return func(ps *ParserSettings) { ps.IgnoreErrors = b }
}

func WithErrorLogCapacity(n int) Option {
	return func(ps *ParserSettings) { ps.ErrorLogCapacity = n }
}

// WithBarrierTokenizer installs an external barrier tokenizer, run once over
// the input by NewContext before the first Dispatch — the only way a caller
// of the parser facade can exercise barrier positions (e.g. INDENT/DEDENT)
// without reaching past it into exec internals.
func WithBarrierTokenizer(bt combi.BarrierTokenizer) Option {
	return func(ps *ParserSettings) { ps.BarrierTokenizer = bt }
}

// settingsFrame is a parent-linked stack of per-rule settings overrides,
// mirroring runtime/memframe.go's MemoryFrameStack: every rule dispatch
// pushes a frame layering its Override on top of the enclosing settings and
// pops it on return, so nested rules see their own ancestor's overrides
// without mutating a shared global.
type settingsFrame struct {
	parent   *settingsFrame
	settings ParserSettings
}

func newRootFrame(base ParserSettings) *settingsFrame {
	return &settingsFrame{settings: base}
}

func (f *settingsFrame) push(o *rule.Override) *settingsFrame {
	if o == nil {
		return &settingsFrame{parent: f, settings: f.settings}
	}
	s := f.settings
	if o.Skip != rule.SkipInherit {
		s.Skip = o.Skip
	}
	if o.Recovery != rule.RecoverInherit {
		s.Recovery = o.Recovery
		s.RecoveryTarget = o.RecoveryTarget
	}
	if o.Memoize != nil {
		s.EnableMemoization = *o.Memoize
	}
	return &settingsFrame{parent: f, settings: s}
}
