package build

import (
	"testing"

	"github.com/npillmayer/combi/rule"
	"github.com/npillmayer/combi/token"
)

func TestBuilderSimpleGrammar(t *testing.T) {
	b := NewBuilder()
	lit := b.Token("let-tok", token.NewLiteral("let", true))
	b.Rule("stmt", rule.NewToken(lit))

	g, err := b.Build("stmt")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if g.EntryRule != b.ruleByName["stmt"] {
		t.Errorf("EntryRule = %d, want the id of 'stmt'", g.EntryRule)
	}
	if len(g.Tokens) != 1 || len(g.Rules) != 1 {
		t.Errorf("got %d tokens / %d rules, want 1 / 1", len(g.Tokens), len(g.Rules))
	}
}

func TestBuilderUnresolvedForwardReferenceFails(t *testing.T) {
	b := NewBuilder()
	b.RuleRef("never-defined")
	if _, err := b.Build("never-defined"); err == nil {
		t.Fatalf("expected Build to reject a forward reference that was never completed")
	}
}

func TestBuilderMutualRecursionRegardlessOfOrder(t *testing.T) {
	b := NewBuilder()
	// "even" references "odd" before "odd" is defined.
	oddRef := b.RuleRef("odd")
	digit := b.Token("digit", token.NewCharacter(func(r rune) bool { return r >= '0' && r <= '9' }))
	digitRule := b.Rule("digit-rule", rule.NewToken(digit))
	even := b.Rule("even", rule.NewChoiceFirst(digitRule, oddRef))
	b.Rule("odd", rule.NewChoiceFirst(digitRule, even))

	if _, err := b.Build("even"); err != nil {
		t.Fatalf("expected mutually-recursive rules to build regardless of definition order, got: %v", err)
	}
}

func TestBuilderDuplicateTokenNameFails(t *testing.T) {
	b := NewBuilder()
	b.Token("x", token.NewLiteral("x", true))
	b.Token("x", token.NewLiteral("y", true))
	b.Rule("entry", rule.NewToken(0))
	if _, err := b.Build("entry"); err == nil {
		t.Fatalf("expected duplicate token name to be rejected")
	}
}

func TestBuilderUnbreakableLeftRecursionFails(t *testing.T) {
	b := NewBuilder()
	selfRef := b.RuleRef("loop")
	b.Rule("loop", rule.NewSequence(selfRef))
	if _, err := b.Build("loop"); err == nil {
		t.Fatalf("expected a directly left-recursive rule to be rejected")
	}
}
