package build

import (
	"github.com/npillmayer/combi"
	"github.com/npillmayer/combi/rule"
	"github.com/npillmayer/combi/token"
)

// Flags carries the per-rule specialization decisions computed by
// specialize: which cross-cutting behaviors the exec driver
// should apply when dispatching this rule.
type Flags struct {
	InlineRules         bool // wraps a single token with nothing else to do
	FirstCharacterMatch bool // safe to narrow Choice(first) candidates by input[pos]
	EnableMemoization   bool // worth caching (expensive backtracking or reentrant)
	Dispatch            *DispatchTable
}

// propagateTokenProperties computes FirstChars/Deterministic/MayBeEmpty for
// every token pattern. Tokens are already in dependency order (package
// build never forward-declares them), so a single bottom-up pass suffices —
// no fixed-point iteration is needed, unlike rules.
func propagateTokenProperties(tokens []*token.Pattern) {
	for _, p := range tokens {
		computeTokenProps(p, tokens)
	}
}

func computeTokenProps(p *token.Pattern, tokens []*token.Pattern) {
	fc := token.NewCharSet()
	deterministic := true
	mayEmpty := false

	switch p.Kind {
	case token.KLiteral:
		if len(p.Literal) > 0 {
			fc.Add(rune(p.Literal[0]))
		} else {
			mayEmpty = true
		}
	case token.KLiteralChar:
		fc.Add(p.Char)
	case token.KLiteralChoice, token.KKeywordChoice:
		for _, c := range p.Choices {
			if len(c) > 0 {
				fc.Add(rune(c[0]))
			} else {
				mayEmpty = true
			}
		}
	case token.KKeyword:
		if len(p.Literal) > 0 {
			fc.Add(rune(p.Literal[0]))
		}
	case token.KEmpty:
		mayEmpty = true
		deterministic = false
	case token.KEOF, token.KFail:
		deterministic = false
	case token.KSequence:
		for _, c := range p.Children {
			child := tokens[c]
			fc.AddAll(child.FirstChars)
			deterministic = deterministic && child.Deterministic
			if !child.MayBeEmpty {
				break
			}
			if c == p.Children[len(p.Children)-1] {
				mayEmpty = true
			}
		}
	case token.KChoiceFirst, token.KChoiceLongest, token.KChoiceShortest:
		// A precise "non-overlapping first sets" check would be needed to
		// mark these fully Deterministic; conservatively require every
		// child to be individually deterministic and leave overlap
		// detection to the runtime's filterDeterministic fallback, which
		// still behaves correctly (just without the dispatch-table
		// shortcut) if two children do share a first character.
		for _, c := range p.Children {
			child := tokens[c]
			fc.AddAll(child.FirstChars)
			deterministic = deterministic && child.Deterministic
			mayEmpty = mayEmpty || child.MayBeEmpty
		}
	case token.KOptional, token.KRepeat, token.KSkipWhitespaces, token.KMap, token.KReturn,
		token.KCaptureText, token.KLookaheadPositive, token.KLookaheadNegative:
		if len(p.Children) > 0 {
			child := tokens[p.Children[0]]
			fc.AddAll(child.FirstChars)
			deterministic = child.Deterministic
			mayEmpty = true
			if p.Kind == token.KRepeat && p.RepeatMin > 0 {
				mayEmpty = child.MayBeEmpty
			}
		}
	case token.KSeparatedRepeat, token.KBetween, token.KFirst, token.KSecond:
		if len(p.Children) > 0 {
			child := tokens[p.Children[0]]
			fc.AddAll(child.FirstChars)
			deterministic = child.Deterministic
			mayEmpty = child.MayBeEmpty && p.RepeatMin == 0
		}
	default:
		// Identifier, Number, Regex, Whitespaces, Spaces, Newline, Character,
		// RepeatCharacters, TextUntil, EscapedText: no statically-known
		// first-character set (depends on runtime predicates/regex/escape
		// tables), so leave deterministic=false (accepts-anything default).
		deterministic = false
	}

	p.FirstChars = fc
	p.Deterministic = deterministic
	p.MayBeEmpty = mayEmpty
}

// propagateRuleProperties computes FirstChars/Deterministic/MayBeEmpty for
// every rule via fixed-point iteration (rules may reference each other out
// of definition order), grounded on lr/tables.go's closure fixed point: a
// worklist of "possibly changed" rules is re-evaluated until nothing
// changes.
func propagateRuleProperties(g *Grammar) {
	for _, p := range g.Rules {
		if p != nil {
			p.FirstChars = rule.NewCharSet()
		}
	}
	changed := true
	for changed {
		changed = false
		for _, p := range g.Rules {
			if p == nil {
				continue
			}
			if updateRuleProps(p, g) {
				changed = true
			}
		}
	}
}

func updateRuleProps(p *rule.Pattern, g *Grammar) bool {
	before := snapshot(p)

	fc := rule.NewCharSet()
	deterministic := true
	mayEmpty := false

	switch p.Kind {
	case rule.RToken:
		t := g.Token(p.TokenID)
		if t != nil {
			if t.FirstChars != nil {
				for _, r := range t.FirstChars.Runes() {
					fc.Add(r)
				}
			}
			deterministic = t.Deterministic
			mayEmpty = t.MayBeEmpty
		} else {
			deterministic = false
		}
	case rule.RSequence:
		for i, id := range p.Children {
			child := g.Rule(id)
			if child == nil {
				deterministic = false
				break
			}
			fc.AddAll(child.FirstChars)
			deterministic = deterministic && child.Deterministic
			if !child.MayBeEmpty {
				break
			}
			if i == len(p.Children)-1 {
				mayEmpty = true
			}
		}
	case rule.RChoiceFirst, rule.RChoiceLongest, rule.RChoiceShortest:
		for _, id := range p.Children {
			child := g.Rule(id)
			if child == nil {
				deterministic = false
				continue
			}
			fc.AddAll(child.FirstChars)
			deterministic = deterministic && child.Deterministic
			mayEmpty = mayEmpty || child.MayBeEmpty
		}
	case rule.ROptional, rule.RRepeat:
		if len(p.Children) > 0 {
			if child := g.Rule(p.Children[0]); child != nil {
				fc.AddAll(child.FirstChars)
				deterministic = child.Deterministic
				mayEmpty = true
				if p.Kind == rule.RRepeat && p.RepeatMin > 0 {
					mayEmpty = child.MayBeEmpty
				}
			}
		}
	case rule.RLookaheadPositive, rule.RLookaheadNegative:
		deterministic = false
		mayEmpty = true
	case rule.RSeparatedRepeat:
		if len(p.Children) > 0 {
			if child := g.Rule(p.Children[0]); child != nil {
				fc.AddAll(child.FirstChars)
				deterministic = child.Deterministic
				mayEmpty = p.RepeatMin == 0
			}
		}
	case rule.RSwitch:
		deterministic = false
		for _, id := range p.Branches {
			if child := g.Rule(id); child != nil {
				fc.AddAll(child.FirstChars)
				mayEmpty = mayEmpty || child.MayBeEmpty
			}
		}
		if p.Default != combi.NoID {
			if child := g.Rule(p.Default); child != nil {
				fc.AddAll(child.FirstChars)
				mayEmpty = mayEmpty || child.MayBeEmpty
			}
		}
	case rule.RIf:
		deterministic = false
		if child := g.Rule(p.Then); child != nil {
			fc.AddAll(child.FirstChars)
			mayEmpty = mayEmpty || child.MayBeEmpty
		}
		if p.HasElse {
			if child := g.Rule(p.Else); child != nil {
				fc.AddAll(child.FirstChars)
				mayEmpty = mayEmpty || child.MayBeEmpty
			}
		}
	case rule.RCustom:
		deterministic = false
	}

	p.FirstChars = fc
	p.Deterministic = deterministic
	p.MayBeEmpty = mayEmpty

	return snapshot(p) != before
}

type propSnapshot struct {
	n    int
	det  bool
	empt bool
}

func snapshot(p *rule.Pattern) propSnapshot {
	return propSnapshot{n: p.FirstChars.Len(), det: p.Deterministic, empt: p.MayBeEmpty}
}

// specialize computes Flags for every rule once first-character sets have
// reached their fixed point.
func specialize(g *Grammar) {
	g.Flags = make([]Flags, len(g.Rules))
	for i, p := range g.Rules {
		if p == nil {
			continue
		}
		f := Flags{InlineRules: p.Kind == rule.RToken && p.Settings == nil}

		if p.Kind == rule.RChoiceFirst && p.Deterministic {
			f.Dispatch = NewDispatchTable(p.Children, func(id combi.ID) *CharSetView {
				child := g.Rule(id)
				if child == nil {
					return nil
				}
				return &CharSetView{Set: child.FirstChars, Deterministic: child.Deterministic}
			})
			f.FirstCharacterMatch = f.Dispatch != nil
		}

		switch p.Kind {
		case rule.RChoiceLongest, rule.RChoiceShortest, rule.RSeparatedRepeat:
			f.EnableMemoization = true
		}
		g.Flags[i] = f
	}
}
