package scan

import (
	"testing"

	"github.com/npillmayer/combi"
	"github.com/npillmayer/combi/build"
	"github.com/npillmayer/combi/rule"
	"github.com/npillmayer/combi/token"
)

func buildIdentGrammar(t *testing.T) (*build.Grammar, combi.ID) {
	t.Helper()
	b := build.NewBuilder()
	ident := b.Token("ident", token.NewIdentifier(nil, nil, 1))
	identRule := b.Rule("ident-rule", rule.NewToken(ident))

	g, err := b.Build("ident-rule")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return g, identRule
}

func TestFindAllNonOverlappingMatches(t *testing.T) {
	g, identRuleID := buildIdentGrammar(t)
	input := "12 foo 34 bar"
	matches := FindAll(g, identRuleID, input)

	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2 ('foo' and 'bar'), matches=%v", len(matches), matches)
	}
	if matches[0].Text(input) != "foo" {
		t.Errorf("matches[0] = %q, want %q", matches[0].Text(input), "foo")
	}
	if matches[1].Text(input) != "bar" {
		t.Errorf("matches[1] = %q, want %q", matches[1].Text(input), "bar")
	}
}

func TestFindAllNoMatchesReturnsEmpty(t *testing.T) {
	g, identRuleID := buildIdentGrammar(t)
	matches := FindAll(g, identRuleID, "123 456")
	if len(matches) != 0 {
		t.Errorf("expected no matches over a digits-only input, got %d", len(matches))
	}
}
