package build

import (
	"fmt"
	"io"
)

// DumpRules writes a textual listing of g's indexed rule table: one line
// per rule, giving its id, name, kind and children — the combinator-engine
// analogue of lr.Grammar.Dump(), used to inspect a built grammar without a
// debugger.
func (g *Grammar) DumpRules(w io.Writer) {
	for id, p := range g.Rules {
		name := p.Name
		if name == "" {
			name = "<anon>"
		}
		fmt.Fprintf(w, "rule#%d %s kind=%v children=%v\n", id, name, p.Kind, p.Children)
	}
}

// DumpTokens writes a textual listing of g's indexed token table: one line
// per token, giving its id and kind.
func (g *Grammar) DumpTokens(w io.Writer) {
	for id, p := range g.Tokens {
		fmt.Fprintf(w, "token#%d kind=%v\n", id, p.Kind)
	}
}
