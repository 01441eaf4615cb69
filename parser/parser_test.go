package parser

import (
	"testing"

	"github.com/npillmayer/combi"
	"github.com/npillmayer/combi/ast"
	"github.com/npillmayer/combi/build"
	"github.com/npillmayer/combi/exec"
	"github.com/npillmayer/combi/incremental"
	"github.com/npillmayer/combi/rule"
	"github.com/npillmayer/combi/token"
)

type wordGrammar struct {
	parser    *Parser
	identTok  combi.ID
	identRule combi.ID
}

func buildWordGrammar(t *testing.T) wordGrammar {
	t.Helper()
	b := build.NewBuilder()
	ident := b.Token("ident", token.NewIdentifier(nil, nil, 1))
	space := b.Token("space", token.NewLiteralChar(' '))
	identRule := b.Rule("ident-rule", rule.NewToken(ident))
	spaceRule := b.Rule("space-rule", rule.NewToken(space))
	b.Rule("entry", rule.NewSeparatedRepeat(identRule, spaceRule, 1, -1, false, false))

	p, err := Build(b, "entry")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return wordGrammar{parser: p, identTok: ident, identRule: identRule}
}

func TestBuildRejectsUnknownEntry(t *testing.T) {
	b := build.NewBuilder()
	b.Token("ident", token.NewIdentifier(nil, nil, 1))
	if _, err := Build(b, "nonexistent"); err == nil {
		t.Fatalf("expected Build() to fail for an unresolved entry rule name")
	}
}

func TestParseSucceedsAndExposesResult(t *testing.T) {
	wg := buildWordGrammar(t)
	result, ctx := wg.parser.Parse("foo bar baz")
	if ctx == nil {
		t.Fatalf("expected a non-nil exec.Context")
	}
	if !result.OK() {
		t.Fatalf("expected the parse to succeed")
	}
	if got := result.Text(); got != "foo bar baz" {
		t.Errorf("result.Text() = %q, want %q", got, "foo bar baz")
	}
	if got := len(result.Children()); got == 0 {
		t.Errorf("expected the entry rule to have children, got none")
	}
}

func TestParseFailureReportsNotOK(t *testing.T) {
	wg := buildWordGrammar(t)
	result, _ := wg.parser.Parse("123")
	if result.OK() {
		t.Fatalf("expected the parse of a digits-only input to fail against an identifier-only grammar")
	}
}

func TestParseRuleRunsASpecificRule(t *testing.T) {
	wg := buildWordGrammar(t)
	result, _ := wg.parser.ParseRule(wg.identRule, "foobar")
	if !result.OK() {
		t.Fatalf("expected ParseRule to succeed for a bare identifier")
	}
	if got := result.Text(); got != "foobar" {
		t.Errorf("result.Text() = %q, want %q", got, "foobar")
	}
}

func TestMatchTokenBypassesRuleLayer(t *testing.T) {
	wg := buildWordGrammar(t)
	elem, ok := wg.parser.MatchToken(wg.identTok, "xyz 123", 0)
	if !ok {
		t.Fatalf("expected MatchToken to match the leading identifier")
	}
	if elem.Length != 3 {
		t.Errorf("matched length = %d, want 3", elem.Length)
	}
}

func TestFindAllMatchesScansWholeInput(t *testing.T) {
	wg := buildWordGrammar(t)
	matches := wg.parser.FindAllMatches(wg.identRule, "12 foo 34 bar")
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2, matches=%v", len(matches), matches)
	}
}

func TestReparseIncrementalAppliesEdit(t *testing.T) {
	wg := buildWordGrammar(t)
	result, _ := wg.parser.Parse("foo bar baz")
	edit := incremental.Edit{Start: 4, OldLength: 3, NewText: "quux"}
	newInput, newTree := wg.parser.ReparseIncremental("foo bar baz", result.Root, edit, 1)
	if newInput != "foo quux baz" {
		t.Fatalf("newInput = %q, want %q", newInput, "foo quux baz")
	}
	if newTree == nil {
		t.Fatalf("expected a non-nil reparsed tree")
	}
}

// TestParseHonorsBarrierTokenizer proves a caller of the public facade can
// install an external barrier stream (e.g. an INDENT/DEDENT pre-pass)
// without reaching past Parser into exec internals: a repeat of 'a' over
// "aaaaa" stops exactly at a synthetic barrier placed at position 3.
func TestParseHonorsBarrierTokenizer(t *testing.T) {
	b := build.NewBuilder()
	a := b.Token("a", token.NewLiteralChar('a'))
	aRule := b.Rule("a-rule", rule.NewToken(a))
	b.Rule("entry", rule.NewRepeat(aRule, 0, -1))
	p, err := Build(b, "entry")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	tokenizer := func(input string) []combi.BarrierToken {
		return []combi.BarrierToken{{Position: 3, Kind: 1}}
	}
	result, _ := p.Parse("aaaaa", exec.WithBarrierTokenizer(tokenizer))
	if !result.OK() {
		t.Fatalf("expected the repeat to succeed up to the barrier")
	}
	if got := result.Text(); got != "aaa" {
		t.Errorf("result.Text() = %q, want %q (matching must stop at the barrier)", got, "aaa")
	}
}

func TestOptimizeCollapsesWrapperOntoValuedLeaf(t *testing.T) {
	input := "x"
	leaf := &ast.ParsedRule{IsToken: true, Start: 0, Length: 1}
	leaf.SetValue("x")
	root := &ast.ParsedRule{Start: 0, Length: 1, Children: []*ast.ParsedRule{leaf}}

	got := Optimize(root, input)
	if got == nil {
		t.Fatalf("expected a surviving node after optimization")
	}
	if got.Value != "x" {
		t.Errorf("got Value=%v, want %q", got.Value, "x")
	}
}
