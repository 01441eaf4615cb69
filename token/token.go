/*
Package token implements the closed set of leaf and combinator token
patterns used by a combi grammar.

Patterns are modeled as a single tagged union (Pattern, discriminated by
Kind), per the engine's "tagged unions, not class hierarchies" design rule —
every token, whether a leaf matcher like Literal or a combinator like
Sequence, is the same Go type, and Match dispatches on Kind. Combinator
variants (Sequence, Choice, …) hold child token IDs and recurse through a
Table, so the graph of patterns never contains Go-level pointer cycles —
only ID references, resolved by the build package.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package token

import (
	"github.com/npillmayer/combi"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'combi.token'.
func tracer() tracing.Trace {
	return tracing.Select("combi.token")
}

// Kind discriminates the closed set of token pattern variants.
type Kind int

const (
	KLiteral Kind = iota
	KLiteralChar
	KLiteralChoice
	KKeyword
	KKeywordChoice
	KNumber
	KRegex
	KIdentifier
	KWhitespaces
	KSpaces
	KNewline
	KCharacter
	KRepeatCharacters
	KTextUntil
	KEscapedText
	KEOF
	KEmpty
	KFail
	KSequence
	KChoiceFirst
	KChoiceLongest
	KChoiceShortest
	KOptional
	KRepeat
	KSeparatedRepeat
	KBetween
	KFirst
	KSecond
	KMap
	KReturn
	KCaptureText
	KSkipWhitespaces
	KLookaheadPositive
	KLookaheadNegative
	KSwitch
	KIf
)

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

var kindNames = map[Kind]string{
	KLiteral: "Literal", KLiteralChar: "LiteralChar", KLiteralChoice: "LiteralChoice",
	KKeyword: "Keyword", KKeywordChoice: "KeywordChoice", KNumber: "Number",
	KRegex: "Regex", KIdentifier: "Identifier", KWhitespaces: "Whitespaces",
	KSpaces: "Spaces", KNewline: "Newline", KCharacter: "Character",
	KRepeatCharacters: "RepeatCharacters", KTextUntil: "TextUntil",
	KEscapedText: "EscapedText", KEOF: "EOF", KEmpty: "Empty", KFail: "Fail",
	KSequence: "Sequence", KChoiceFirst: "Choice(first)", KChoiceLongest: "Choice(longest)",
	KChoiceShortest: "Choice(shortest)", KOptional: "Optional", KRepeat: "Repeat",
	KSeparatedRepeat: "SeparatedRepeat", KBetween: "Between", KFirst: "First",
	KSecond: "Second", KMap: "Map", KReturn: "Return", KCaptureText: "CaptureText",
	KSkipWhitespaces: "SkipWhitespaces", KLookaheadPositive: "Lookahead(+)",
	KLookaheadNegative: "Lookahead(-)", KSwitch: "Switch", KIf: "If",
}

// RunePredicate classifies a single rune, e.g. for Character/RepeatCharacters/
// Identifier start-and-continue predicates.
type RunePredicate func(rune) bool

// IsIdentCont is the default "continue" predicate used by Keyword when no
// forbidden-follow predicate is supplied: letters, digits and underscore.
func IsIdentCont(r rune) bool {
	return r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9')
}

// IsIdentStart is the default identifier-start predicate: letters and underscore.
func IsIdentStart(r rune) bool {
	return r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

// Pattern is a single token pattern: a leaf matcher or a combinator over
// other token IDs. Constructed via the New* constructors below; assigned a
// stable ID by the build package.
type Pattern struct {
	ID   combi.ID
	Kind Kind

	// Leaf fields (meaning depends on Kind; unused fields are zero).
	Literal        string
	CaseSensitive  bool
	Char           rune
	Choices        []string
	trie           *trieNode // built lazily from Choices on first match
	ForbiddenAfter RunePredicate
	NumberFlags    NumberFlags
	NumberTarget   NumberTarget
	Regexp         Regexp
	IdentStart     RunePredicate
	IdentCont      RunePredicate
	IdentMinLen    int
	CharPred       RunePredicate
	RepeatMin      int
	RepeatMax      int // -1 = unbounded
	Terminators    []string
	EscapeMap      map[string]string
	Forbidden      []string

	// Combinator fields.
	Children  []combi.ID
	MapFn     func(interface{}) interface{}
	ReturnVal interface{}
	TrimStart bool
	TrimEnd   bool
	Selector  func(param interface{}) int
	Branches  []combi.ID
	Default   combi.ID
	Predicate func(param interface{}) bool
	Then      combi.ID
	Else      combi.ID
	HasElse   bool

	// Computed by the build package's init/optimization pass.
	FirstChars    *CharSet
	Deterministic bool
	MayBeEmpty    bool
}

// Regexp is the minimal interface a compiled, position-anchored regular
// expression pattern must satisfy. *regexp.Regexp (via AnchoredRegexp)
// implements it.
type Regexp interface {
	// FindAnchored returns the length of a match starting exactly at
	// input[pos:], or -1 if none.
	FindAnchored(input string, pos int) int
}

// --- Leaf constructors ------------------------------------------------

func NewLiteral(s string, caseSensitive bool) *Pattern {
	return &Pattern{Kind: KLiteral, Literal: s, CaseSensitive: caseSensitive}
}

func NewLiteralChar(c rune) *Pattern {
	return &Pattern{Kind: KLiteralChar, Char: c}
}

func NewLiteralChoice(choices []string, caseSensitive bool) *Pattern {
	return &Pattern{Kind: KLiteralChoice, Choices: append([]string(nil), choices...), CaseSensitive: caseSensitive}
}

func NewKeyword(s string, forbiddenAfter RunePredicate) *Pattern {
	if forbiddenAfter == nil {
		forbiddenAfter = IsIdentCont
	}
	return &Pattern{Kind: KKeyword, Literal: s, ForbiddenAfter: forbiddenAfter}
}

func NewKeywordChoice(choices []string, forbiddenAfter RunePredicate) *Pattern {
	if forbiddenAfter == nil {
		forbiddenAfter = IsIdentCont
	}
	return &Pattern{Kind: KKeywordChoice, Choices: append([]string(nil), choices...), ForbiddenAfter: forbiddenAfter}
}

func NewRegex(re Regexp) *Pattern {
	return &Pattern{Kind: KRegex, Regexp: re}
}

func NewIdentifier(start, cont RunePredicate, minLen int) *Pattern {
	if start == nil {
		start = IsIdentStart
	}
	if cont == nil {
		cont = IsIdentCont
	}
	if minLen <= 0 {
		minLen = 1
	}
	return &Pattern{Kind: KIdentifier, IdentStart: start, IdentCont: cont, IdentMinLen: minLen}
}

func NewWhitespaces() *Pattern { return &Pattern{Kind: KWhitespaces} }
func NewSpaces() *Pattern      { return &Pattern{Kind: KSpaces} }
func NewNewline() *Pattern     { return &Pattern{Kind: KNewline} }

func NewCharacter(pred RunePredicate) *Pattern {
	return &Pattern{Kind: KCharacter, CharPred: pred}
}

func NewRepeatCharacters(pred RunePredicate, min, max int) *Pattern {
	return &Pattern{Kind: KRepeatCharacters, CharPred: pred, RepeatMin: min, RepeatMax: max}
}

func NewTextUntil(terminators []string) *Pattern {
	return &Pattern{Kind: KTextUntil, Terminators: append([]string(nil), terminators...)}
}

func NewEscapedText(escapes map[string]string, forbidden []string) *Pattern {
	return &Pattern{Kind: KEscapedText, EscapeMap: escapes, Forbidden: append([]string(nil), forbidden...)}
}

func NewEOF() *Pattern   { return &Pattern{Kind: KEOF} }
func NewEmpty() *Pattern { return &Pattern{Kind: KEmpty} }
func NewFail() *Pattern  { return &Pattern{Kind: KFail} }

// --- Combinator constructors --------------------------------------------

func NewSequence(children ...combi.ID) *Pattern {
	return &Pattern{Kind: KSequence, Children: children}
}

func NewChoiceFirst(children ...combi.ID) *Pattern {
	return &Pattern{Kind: KChoiceFirst, Children: children}
}

func NewChoiceLongest(children ...combi.ID) *Pattern {
	return &Pattern{Kind: KChoiceLongest, Children: children}
}

func NewChoiceShortest(children ...combi.ID) *Pattern {
	return &Pattern{Kind: KChoiceShortest, Children: children}
}

func NewOptional(child combi.ID) *Pattern {
	return &Pattern{Kind: KOptional, Children: []combi.ID{child}}
}

func NewRepeat(child combi.ID, min, max int) *Pattern {
	return &Pattern{Kind: KRepeat, Children: []combi.ID{child}, RepeatMin: min, RepeatMax: max}
}

func NewSeparatedRepeat(elem, sep combi.ID, min, max int, allowTrailing, includeSep bool) *Pattern {
	p := &Pattern{Kind: KSeparatedRepeat, Children: []combi.ID{elem, sep}, RepeatMin: min, RepeatMax: max}
	p.TrimStart = allowTrailing // reuse booleans to avoid two more fields
	p.TrimEnd = includeSep
	return p
}

func NewBetween(a, b, c combi.ID) *Pattern {
	return &Pattern{Kind: KBetween, Children: []combi.ID{a, b, c}}
}

func NewFirst(a, b combi.ID) *Pattern {
	return &Pattern{Kind: KFirst, Children: []combi.ID{a, b}}
}

func NewSecond(a, b combi.ID) *Pattern {
	return &Pattern{Kind: KSecond, Children: []combi.ID{a, b}}
}

func NewMap(child combi.ID, fn func(interface{}) interface{}) *Pattern {
	return &Pattern{Kind: KMap, Children: []combi.ID{child}, MapFn: fn}
}

func NewReturn(child combi.ID, val interface{}) *Pattern {
	return &Pattern{Kind: KReturn, Children: []combi.ID{child}, ReturnVal: val}
}

func NewCaptureText(child combi.ID, trimStart, trimEnd bool) *Pattern {
	return &Pattern{Kind: KCaptureText, Children: []combi.ID{child}, TrimStart: trimStart, TrimEnd: trimEnd}
}

func NewSkipWhitespaces(child combi.ID) *Pattern {
	return &Pattern{Kind: KSkipWhitespaces, Children: []combi.ID{child}}
}

func NewLookahead(child combi.ID, positive bool) *Pattern {
	k := KLookaheadNegative
	if positive {
		k = KLookaheadPositive
	}
	return &Pattern{Kind: k, Children: []combi.ID{child}}
}

func NewSwitch(selector func(interface{}) int, branches []combi.ID, dflt combi.ID) *Pattern {
	return &Pattern{Kind: KSwitch, Selector: selector, Branches: branches, Default: dflt}
}

func NewIf(pred func(interface{}) bool, then combi.ID, els combi.ID, hasElse bool) *Pattern {
	return &Pattern{Kind: KIf, Predicate: pred, Then: then, Else: els, HasElse: hasElse}
}

// IsLeaf reports whether this pattern's Kind has no children (does not
// dispatch through a Table).
func (p *Pattern) IsLeaf() bool {
	switch p.Kind {
	case KLiteral, KLiteralChar, KLiteralChoice, KKeyword, KKeywordChoice,
		KNumber, KRegex, KIdentifier, KWhitespaces, KSpaces, KNewline,
		KCharacter, KRepeatCharacters, KTextUntil, KEscapedText, KEOF, KEmpty, KFail:
		return true
	}
	return false
}
