package incremental

import (
	"testing"

	"github.com/npillmayer/combi/ast"
	"github.com/npillmayer/combi/build"
	"github.com/npillmayer/combi/exec"
	"github.com/npillmayer/combi/rule"
	"github.com/npillmayer/combi/token"
)

func buildWordListGrammar(t *testing.T) *build.Grammar {
	t.Helper()
	b := build.NewBuilder()
	ident := b.Token("ident", token.NewIdentifier(nil, nil, 1))
	space := b.Token("space", token.NewLiteralChar(' '))
	identRule := b.Rule("ident-rule", rule.NewToken(ident))
	spaceRule := b.Rule("space-rule", rule.NewToken(space))
	b.Rule("entry", rule.NewSeparatedRepeat(identRule, spaceRule, 1, -1, false, false))

	g, err := b.Build("entry")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return g
}

func parseFull(t *testing.T, g *build.Grammar, input string) *ast.ParsedRule {
	t.Helper()
	ctx := exec.NewContext(g, input)
	node, ok := ctx.Dispatch(g.EntryRule, 0)
	if !ok {
		t.Fatalf("expected %q to parse", input)
	}
	return node
}

func TestReparserSpliceReusesUnaffectedSubtree(t *testing.T) {
	g := buildWordListGrammar(t)
	prevInput := "foo bar baz"
	prevTree := parseFull(t, g, prevInput)

	// Edit only "bar" (positions 4..7), extending it to "barnacle".
	rp := NewReparser(g, g.EntryRule)
	edit := Edit{Start: 4, OldLength: 3, NewText: "barnacle"}
	newInput, newTree := rp.Apply(prevInput, prevTree, edit, 1)

	wantInput := "foo barnacle baz"
	if newInput != wantInput {
		t.Fatalf("newInput = %q, want %q", newInput, wantInput)
	}
	if newTree == nil {
		t.Fatalf("expected a non-nil reparsed tree")
	}
	if newTree.End() != uint64(len(wantInput)) {
		t.Errorf("reparsed tree span end = %d, want %d", newTree.End(), len(wantInput))
	}

	// "foo" (the first word) lies entirely before the edit and must be the
	// exact same node, reused rather than re-derived.
	firstWord := prevTree.Children[0]
	if newTree.Children[0] != firstWord {
		t.Errorf("expected the untouched leading word to be reused verbatim")
	}
}

func TestReparserFullReparseWhenNoPreviousTree(t *testing.T) {
	g := buildWordListGrammar(t)
	rp := NewReparser(g, g.EntryRule)
	newInput, newTree := rp.Apply("", nil, Edit{Start: 0, OldLength: 0, NewText: "foo bar"}, 1)
	if newInput != "foo bar" {
		t.Fatalf("newInput = %q, want %q", newInput, "foo bar")
	}
	if newTree == nil {
		t.Fatalf("expected a full reparse to succeed")
	}
}

func TestContainsFully(t *testing.T) {
	n := &ast.ParsedRule{Start: 2, Length: 5} // [2,7)
	if !containsFully(n, 3, 6) {
		t.Errorf("expected [3,6) to be fully contained in [2,7)")
	}
	if containsFully(n, 1, 6) {
		t.Errorf("expected [1,6) to NOT be fully contained in [2,7)")
	}
}
