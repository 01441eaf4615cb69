package build

import (
	"testing"

	"github.com/npillmayer/combi/rule"
	"github.com/npillmayer/combi/token"
)

func TestPropagateTokenPropertiesLiteralIsDeterministic(t *testing.T) {
	lit := token.NewLiteral("func", true)
	lit.ID = 0
	propagateTokenProperties([]*token.Pattern{lit})

	if !lit.Deterministic {
		t.Errorf("a literal token should be deterministic")
	}
	if !lit.FirstChars.Contains('f') {
		t.Errorf("expected first-char set to contain 'f'")
	}
	if lit.MayBeEmpty {
		t.Errorf("a non-empty literal must not be MayBeEmpty")
	}
}

func TestPropagateTokenPropertiesEmptyLiteralMayBeEmpty(t *testing.T) {
	lit := token.NewLiteral("", true)
	lit.ID = 0
	propagateTokenProperties([]*token.Pattern{lit})
	if !lit.MayBeEmpty {
		t.Errorf("an empty-string literal must be MayBeEmpty")
	}
}

func TestPropagateTokenPropertiesIdentifierIsNotDeterministic(t *testing.T) {
	id := token.NewIdentifier(nil, nil, 1)
	id.ID = 0
	propagateTokenProperties([]*token.Pattern{id})
	if id.Deterministic {
		t.Errorf("Identifier has no statically-known first-character set and should not be marked Deterministic")
	}
}

func buildSimpleChoiceGrammar(t *testing.T) *Grammar {
	t.Helper()
	b := NewBuilder()
	foo := b.Token("foo-tok", token.NewLiteral("foo", true))
	bar := b.Token("bar-tok", token.NewLiteral("bar", true))
	fooRule := b.Rule("foo", rule.NewToken(foo))
	barRule := b.Rule("bar", rule.NewToken(bar))
	b.Rule("entry", rule.NewChoiceFirst(fooRule, barRule))

	g, err := b.Build("entry")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return g
}

func TestSpecializeBuildsDispatchTableForDeterministicChoice(t *testing.T) {
	g := buildSimpleChoiceGrammar(t)
	entryID := g.EntryRule
	flags := g.Flags[entryID]
	if flags.Dispatch == nil {
		t.Fatalf("expected a DispatchTable for a Choice(first) of two disjoint literals")
	}
	if cands := flags.Dispatch.Candidates('f'); len(cands) != 1 {
		t.Errorf("Candidates('f') = %v, want exactly the 'foo' rule", cands)
	}
	if cands := flags.Dispatch.Candidates('z'); len(cands) != 0 {
		t.Errorf("Candidates('z') = %v, want no candidates", cands)
	}
}

func TestPropagateRulePropertiesFixedPointOverMutualRecursion(t *testing.T) {
	b := NewBuilder()
	oddRef := b.RuleRef("odd")
	digit := b.Token("digit", token.NewLiteralChoice([]string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}, true))
	digitRule := b.Rule("digit-rule", rule.NewToken(digit))
	even := b.Rule("even", rule.NewChoiceFirst(digitRule, oddRef))
	b.Rule("odd", rule.NewChoiceFirst(digitRule, even))

	g, err := b.Build("even")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if g.Rule(even).FirstChars.Len() == 0 {
		t.Errorf("expected first-character propagation to reach a fixed point across mutually recursive rules")
	}
}

func TestDispatchTableCandidatesNilIsSafe(t *testing.T) {
	var dt *DispatchTable
	if cands := dt.Candidates('x'); cands != nil {
		t.Errorf("Candidates on a nil DispatchTable should return nil, got %v", cands)
	}
}
