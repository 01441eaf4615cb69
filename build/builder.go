/*
Package build turns a set of named token and rule definitions into a
Grammar: a contiguously-indexed, cycle-checked, deduplicated and
specialized form ready for the exec package's driver to run. This mirrors
how package lr's LRAnalysis turns a grammar's Symbol/Rule declarations
into closure/goto tables before a parser can run — here the "tables" are
per-pattern first-character sets, nullability and specialization flags
instead of LR item sets.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package build

import (
	"fmt"

	"github.com/npillmayer/combi"
	"github.com/npillmayer/combi/rule"
	"github.com/npillmayer/combi/token"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("combi.build")
}

// Builder accumulates named token and rule definitions and turns them into
// a Grammar via Build. The zero value is not usable; create one with
// NewBuilder.
type Builder struct {
	tokenNames  []string
	tokenByName map[string]combi.ID
	tokens      []*token.Pattern

	ruleNames   []string
	ruleByName  map[string]combi.ID
	rules       []*rule.Pattern
	ruleDefined []bool

	errs []error
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		tokenByName: make(map[string]combi.ID),
		ruleByName:  make(map[string]combi.ID),
	}
}

// Token registers a token pattern under name and returns its id. Tokens
// must be defined in dependency order, leaves before the combinators that
// reference them — package build does not forward-declare token names,
// since token patterns never participate in the grammar's left-recursion
// cycle (only rule patterns do; see RuleRef).
func (b *Builder) Token(name string, p *token.Pattern) combi.ID {
	if _, exists := b.tokenByName[name]; exists {
		b.fail("duplicate token definition %q", name)
		return combi.NoID
	}
	id := combi.ID(len(b.tokens))
	p.ID = id
	b.tokens = append(b.tokens, p)
	b.tokenNames = append(b.tokenNames, name)
	b.tokenByName[name] = id
	return id
}

// TokenRef resolves a previously-defined token name to its id.
func (b *Builder) TokenRef(name string) combi.ID {
	id, ok := b.tokenByName[name]
	if !ok {
		b.fail("reference to undefined token %q", name)
		return combi.NoID
	}
	return id
}

// RuleRef returns the id for name, forward-declaring an empty slot if name
// has not been defined yet. This is what lets two mutually-recursive rules
// reference one another regardless of definition order; Build rejects the
// grammar if a forward reference is never resolved by a matching Rule call,
// or if it turns out to close an unbreakable left-recursive cycle.
func (b *Builder) RuleRef(name string) combi.ID {
	if id, ok := b.ruleByName[name]; ok {
		return id
	}
	id := combi.ID(len(b.rules))
	b.rules = append(b.rules, nil)
	b.ruleDefined = append(b.ruleDefined, false)
	b.ruleNames = append(b.ruleNames, name)
	b.ruleByName[name] = id
	return id
}

// Rule defines (or completes the forward declaration of) name's pattern and
// returns its id.
func (b *Builder) Rule(name string, p *rule.Pattern) combi.ID {
	id := b.RuleRef(name)
	if id == combi.NoID {
		return id
	}
	if b.ruleDefined[id] {
		b.fail("duplicate rule definition %q", name)
		return id
	}
	p.ID = id
	if p.Name == "" {
		p.Name = name
	}
	b.rules[id] = p
	b.ruleDefined[id] = true
	return id
}

func (b *Builder) fail(format string, args ...interface{}) {
	err := fmt.Errorf(format, args...)
	tracer().Errorf("combi/build: %v", err)
	b.errs = append(b.errs, err)
}

// Build finalizes the grammar: checks every forward reference was resolved,
// deduplicates structurally-identical tokens, rejects unbreakable
// left-recursive rule cycles, propagates first-character/nullability/
// determinism, computes per-pattern specialization flags, and returns the
// resulting Grammar with entryName as its start rule.
func (b *Builder) Build(entryName string) (*Grammar, error) {
	if len(b.errs) > 0 {
		return nil, joinErrors(b.errs)
	}
	for i, defined := range b.ruleDefined {
		if !defined {
			return nil, fmt.Errorf("combi/build: rule %q referenced but never defined", b.ruleNames[i])
		}
	}
	entryID, ok := b.ruleByName[entryName]
	if !ok {
		return nil, fmt.Errorf("combi/build: entry rule %q not defined", entryName)
	}

	tokens, tokenRemap := dedupTokens(b.tokens)
	for _, p := range b.rules {
		remapRuleTokenRefs(p, tokenRemap)
	}

	if cyc := findUnbreakableCycle(b.rules); cyc != nil {
		names := make([]string, len(cyc))
		for i, id := range cyc {
			names[i] = b.ruleNames[id]
		}
		return nil, fmt.Errorf("combi/build: unbreakable left recursion: %v", names)
	}

	g := &Grammar{
		Tokens:    tokens,
		Rules:     b.rules,
		EntryRule: entryID,
	}
	propagateTokenProperties(g.Tokens)
	propagateRuleProperties(g)
	specialize(g)
	return g, nil
}

func joinErrors(errs []error) error {
	if len(errs) == 1 {
		return errs[0]
	}
	msg := fmt.Sprintf("%d errors building grammar:", len(errs))
	for _, e := range errs {
		msg += "\n  " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}

// Grammar is the finalized, specializable form of a combi grammar: a
// contiguous token table and rule table plus the entry rule to start
// parsing from. Grammar implements token.Table directly.
type Grammar struct {
	Tokens    []*token.Pattern
	Rules     []*rule.Pattern
	EntryRule combi.ID

	Flags []Flags // parallel to Rules
}

// Token implements token.Table.
func (g *Grammar) Token(id combi.ID) *token.Pattern {
	if id < 0 || int(id) >= len(g.Tokens) {
		return nil
	}
	return g.Tokens[id]
}

// Rule returns the rule pattern for id, or nil if out of range.
func (g *Grammar) Rule(id combi.ID) *rule.Pattern {
	if id < 0 || int(id) >= len(g.Rules) {
		return nil
	}
	return g.Rules[id]
}
