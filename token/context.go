package token

import "github.com/npillmayer/combi"

// ErrorSink receives notifications about token match failures, so that the
// parse driver can maintain a "furthest error" record. It is
// satisfied by exec.Context; kept as an interface here to avoid an import
// cycle between token and exec.
type ErrorSink interface {
	RecordTokenFailure(id combi.ID, position uint64)
}

// Table resolves token IDs to patterns, letting combinator patterns (which
// only hold child IDs) recurse without holding Go pointers to each other.
type Table interface {
	Token(id combi.ID) *Pattern
}

// MatchContext carries everything a Pattern.Match call needs: the input,
// the current position, the nearest upcoming barrier position, an opaque
// per-parse parameter (used by Switch/If selectors), whether to bother
// computing an intermediate value, and the table needed to recurse into
// children.
type MatchContext struct {
	Input        string
	Position     uint64
	Barrier      uint64
	Param        interface{}
	ComputeValue bool
	Errors       ErrorSink
	Table        Table
}

// at returns a MatchContext identical to mc but positioned at pos.
func (mc *MatchContext) at(pos uint64) *MatchContext {
	cp := *mc
	cp.Position = pos
	return &cp
}

func (mc *MatchContext) recordFailure(id combi.ID) {
	if mc.Errors != nil {
		mc.Errors.RecordTokenFailure(id, mc.Position)
	}
}

// Match resolves id through mc.Table and invokes its match procedure. This
// is how combinator patterns recurse into their children.
func (mc *MatchContext) Match(id combi.ID) combi.ParsedElement {
	p := mc.Table.Token(id)
	if p == nil {
		return combi.Fail
	}
	return p.Match(mc)
}
