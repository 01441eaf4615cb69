package build

import (
	"strings"
	"testing"

	"github.com/npillmayer/combi/rule"
	"github.com/npillmayer/combi/token"
)

func TestDumpRulesListsNamesAndChildren(t *testing.T) {
	b := NewBuilder()
	lit := b.Token("let-tok", token.NewLiteral("let", true))
	litRule := b.Rule("let-rule", rule.NewToken(lit))
	b.Rule("stmt", rule.NewSequence(litRule))

	g, err := b.Build("stmt")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	var buf strings.Builder
	g.DumpRules(&buf)
	out := buf.String()
	if !strings.Contains(out, "let-rule") || !strings.Contains(out, "stmt") {
		t.Errorf("DumpRules output missing expected rule names: %q", out)
	}
}

func TestDumpTokensListsEachToken(t *testing.T) {
	b := NewBuilder()
	b.Token("let-tok", token.NewLiteral("let", true))
	b.Rule("stmt", rule.NewToken(b.TokenRef("let-tok")))

	g, err := b.Build("stmt")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	var buf strings.Builder
	g.DumpTokens(&buf)
	if !strings.Contains(buf.String(), "token#0") {
		t.Errorf("DumpTokens output missing token#0: %q", buf.String())
	}
}
