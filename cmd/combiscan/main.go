/*
combiscan is a small interactive sandbox for scanning mode: it builds
a demo grammar recognizing identifiers, numbers and quoted strings, then
repeatedly reads a line of text and prints every non-overlapping match it
finds. Intended as a playground for experimenting with combi grammars, in
the spirit of terex/terexlang/trepl's T.REPL sandbox for term rewriting.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/combi"
	"github.com/npillmayer/combi/build"
	"github.com/npillmayer/combi/rule"
	"github.com/npillmayer/combi/token"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/combi/parser"
)

// wrapToken registers a rule named name wrapping tokenID, so a bare token
// can be used wherever a rule id (a Sequence/Choice child) is required.
func wrapToken(b *build.Builder, name string, tokenID combi.ID) combi.ID {
	return b.Rule(name, rule.NewToken(tokenID))
}

func tracer() tracing.Trace {
	return tracing.Select("combi.combiscan")
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// makeWordGrammar builds "word": Identifier | Number | quoted string, the
// demo grammar scanned over each line of input.
func makeWordGrammar() *parser.Parser {
	b := build.NewBuilder()

	ident := b.Token("ident-tok", token.NewIdentifier(nil, nil, 1))
	number := b.Token("number-tok", token.NewNumber(token.Signed|token.DecimalPoint, token.NumberAuto))
	quote := b.Token("quote-tok", token.NewLiteralChar('"'))
	escText := b.Token("string-body-tok", token.NewEscapedText(map[string]string{`\"`: `"`, `\\`: `\`}, []string{`"`}))

	identRule := wrapToken(b, "ident", ident)
	numberRule := wrapToken(b, "number", number)
	openQuote := wrapToken(b, "string-open", quote)
	body := wrapToken(b, "string-body", escText)
	closeQuote := wrapToken(b, "string-close", quote)
	stringRule := b.Rule("string", rule.NewSequence(openQuote, body, closeQuote))

	b.Rule("word", rule.NewChoiceFirst(identRule, numberRule, stringRule))

	p, err := parser.Build(b, "word")
	if err != nil {
		tracer().Errorf("combi/combiscan: building demo grammar: %v", err)
		panic(err)
	}
	return p
}

func main() {
	initDisplay()
	gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	flag.Parse()
	tracer().SetTraceLevel(traceLevel(*tlevel))
	pterm.Info.Println("combiscan — enter a line to scan it for words/numbers/strings")

	p := makeWordGrammar()

	repl, err := readline.New("combiscan> ")
	if err != nil {
		tracer().Errorf("%v", err)
		os.Exit(3)
	}
	defer repl.Close()

	for {
		line, err := repl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			break
		}
		line = strings.TrimRight(line, "\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		matches := p.FindAllMatches(p.Entry, line)
		if len(matches) == 0 {
			pterm.Warning.Println("no matches")
			continue
		}
		tree := pterm.TreeNode{Text: fmt.Sprintf("%q", line)}
		for _, m := range matches {
			tree.Children = append(tree.Children, pterm.TreeNode{
				Text: fmt.Sprintf("[%d,%d) %q", m.Start(), m.End(), m.Text(line)),
			})
		}
		pterm.DefaultTree.WithRoot(tree).Render()
	}
}

func traceLevel(s string) tracing.TraceLevel {
	switch strings.ToLower(s) {
	case "debug":
		return tracing.LevelDebug
	case "error":
		return tracing.LevelError
	default:
		return tracing.LevelInfo
	}
}
