/*
Package parser ties together build, exec, ast, scan and incremental into
the public API of a compiled grammar: Build, Parse, ParseRule, MatchToken,
FindAllMatches, ReparseIncremental and Optimize.

It is deliberately not the module's root package (github.com/npillmayer/combi):
every one of build/exec/ast/scan/incremental imports the root package for
its primitive types (ID, ParsedElement, Span, BarrierToken), so an
orchestration layer importing all of them must live below the root to avoid
an import cycle — the same reason the root gorgo package in the sibling
gorgo module never imports its own lr or terex subpackages back.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package parser

import (
	"github.com/npillmayer/combi"
	"github.com/npillmayer/combi/ast"
	"github.com/npillmayer/combi/build"
	"github.com/npillmayer/combi/exec"
	"github.com/npillmayer/combi/incremental"
	"github.com/npillmayer/combi/scan"
)

// Parser is the finalized handle returned by Build: a specialized Grammar
// plus the rule it starts parsing from.
type Parser struct {
	Grammar *build.Grammar
	Entry   combi.ID
}

// Build finalizes b (see build.NewBuilder) into a Parser starting at
// entryName.
func Build(b *build.Builder, entryName string) (*Parser, error) {
	g, err := b.Build(entryName)
	if err != nil {
		return nil, err
	}
	return &Parser{Grammar: g, Entry: g.EntryRule}, nil
}

// Parse runs the parser's entry rule over input, starting at position 0.
func (p *Parser) Parse(input string, opts ...exec.Option) (ast.Result, *exec.Context) {
	return p.ParseRule(p.Entry, input, opts...)
}

// ParseRule runs rule id over input, starting at position 0.
func (p *Parser) ParseRule(id combi.ID, input string, opts ...exec.Option) (ast.Result, *exec.Context) {
	ctx := exec.NewContext(p.Grammar, input, opts...)
	node, ok := ctx.Dispatch(id, 0)
	if !ok {
		return ast.Result{}, ctx
	}
	return ast.NewResult(node, input), ctx
}

// MatchToken matches token pattern id directly at position, bypassing the
// rule layer entirely.
func (p *Parser) MatchToken(id combi.ID, input string, position uint64) (combi.ParsedElement, bool) {
	ctx := exec.NewContext(p.Grammar, input)
	return ctx.MatchToken(id, position)
}

// FindAllMatches runs scanning mode for rule id over input.
func (p *Parser) FindAllMatches(id combi.ID, input string, opts ...exec.Option) []scan.Match {
	return scan.FindAll(p.Grammar, id, input, opts...)
}

// ReparseIncremental applies a single text edit to a previous parse tree,
// reusing as much of it as possible.
func (p *Parser) ReparseIncremental(prevInput string, prevTree *ast.ParsedRule, edit incremental.Edit, version uint64, opts ...exec.Option) (string, *ast.ParsedRule) {
	rp := incremental.NewReparser(p.Grammar, p.Entry, opts...)
	return rp.Apply(prevInput, prevTree, edit, version)
}

// Optimize applies post-processing rewrite rules to root, defaulting
// to ast.DefaultOptimizations when none are supplied.
func Optimize(root *ast.ParsedRule, input string, rules ...ast.RewriteRule) *ast.ParsedRule {
	if len(rules) == 0 {
		rules = ast.DefaultOptimizations(input)
	}
	return ast.Rewrite(root, rules...)
}
