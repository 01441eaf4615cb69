package exec

import (
	"testing"

	"github.com/npillmayer/combi"
	"github.com/npillmayer/combi/build"
	"github.com/npillmayer/combi/rule"
	"github.com/npillmayer/combi/token"
)

func TestTryInlineRejectsNonTokenRule(t *testing.T) {
	g, entry := buildGrammar(t)
	if len(g.Flags) == 0 {
		t.Fatalf("expected build.specialize to have populated Flags")
	}
	ctx := NewContext(g, "foo")

	node, ok, inlined := ctx.TryInline(entry, 0)
	if inlined {
		t.Fatalf("entry is a SeparatedRepeat, never eligible for InlineRules")
	}
	if ok || node != nil {
		t.Fatalf("a non-inlined TryInline must report ok=false and a nil node, got ok=%v node=%+v", ok, node)
	}
}

func TestTryInlineMatchesBareTokenWrapper(t *testing.T) {
	b := build.NewBuilder()
	ident := b.Token("ident", token.NewIdentifier(nil, nil, 1))
	identRule := b.Rule("ident-rule", rule.NewToken(ident))
	g, err := b.Build("ident-rule")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	flags := g.Flags[identRule]
	if !flags.InlineRules {
		t.Fatalf("expected a bare RToken rule with no Settings override to be flagged InlineRules")
	}

	ctx := NewContext(g, "abc")
	node, ok, inlined := ctx.TryInline(identRule, 0)
	if !inlined {
		t.Fatalf("expected a flagged InlineRules rule to be accepted by TryInline")
	}
	if !ok || node.Length != 3 {
		t.Fatalf("got ok=%v node=%+v, want ok=true Length=3", ok, node)
	}
}

func TestTryInlineSkippedWhenRuleHasSettingsOverride(t *testing.T) {
	b := build.NewBuilder()
	ident := b.Token("ident", token.NewIdentifier(nil, nil, 1))
	wrapped := rule.NewToken(ident)
	wrapped.Settings = &rule.Override{Recovery: rule.RecoverSkipAfter}
	identRule := b.Rule("ident-rule", wrapped)
	g, err := b.Build("ident-rule")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if g.Flags[identRule].InlineRules {
		t.Fatalf("a rule with a non-nil Settings override must never be inlined, since overrides require Dispatch's settings-frame handling")
	}
}

func TestChoiceCandidatesNilWithoutDeterministicFirstSet(t *testing.T) {
	b := build.NewBuilder()
	ident := b.Token("ident", token.NewIdentifier(nil, nil, 1))
	number := b.Token("number", token.NewNumber(token.Signed, token.NumberAuto))
	identRule := b.Rule("ident-rule", rule.NewToken(ident))
	numberRule := b.Rule("number-rule", rule.NewToken(number))
	word := rule.NewChoiceFirst(identRule, numberRule)
	wordID := b.Rule("word", word)
	g, err := b.Build("word")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	ctx := NewContext(g, "abc")
	// Identifier's first-character set isn't statically deterministic (it
	// depends on a runtime predicate), so no narrowing should be available
	// here; ChoiceCandidates must return nil rather than an empty slice.
	if cand := ctx.ChoiceCandidates(wordID, 0); cand != nil {
		t.Errorf("ChoiceCandidates = %v, want nil (Identifier has no statically-known first set)", cand)
	}
}

func TestRecordSwitchFailureLogsSelectorOutOfRange(t *testing.T) {
	b := build.NewBuilder()
	comma := b.Token("comma", token.NewLiteralChar(','))
	branchID := b.Rule("branch", rule.NewToken(comma))
	sw := rule.NewSwitch(func(interface{}) int { return 9 }, []combi.ID{branchID}, combi.NoID)
	swID := b.Rule("switch", sw)
	g, err := b.Build("switch")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	ctx := NewContext(g, ",")
	if _, ok := ctx.Dispatch(swID, 0); ok {
		t.Fatalf("expected an out-of-range selector with no default to fail")
	}
	found := false
	for _, e := range ctx.Errors().Errors() {
		if e.Kind == ErrSelectorOutOfRange {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ErrSelectorOutOfRange to be recorded, got %+v", ctx.Errors().Errors())
	}
}

func TestBarrierTokenizerOptionInstallsBarrierStream(t *testing.T) {
	g, entry := buildGrammar(t)
	tokenizer := func(input string) []combi.BarrierToken {
		return []combi.BarrierToken{{Position: 3, Kind: 1}}
	}
	ctx := NewContext(g, "foo", WithBarrierTokenizer(tokenizer))
	if got := ctx.Barrier(0); got != 3 {
		t.Errorf("Barrier(0) = %d, want 3 (from the installed tokenizer)", got)
	}
}
