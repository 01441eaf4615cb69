package token

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/combi"
)

// Match executes p's match procedure. It may read only
// mc.Input[mc.Position:mc.Barrier]. On success it returns a ParsedElement
// with Start == mc.Position; on failure it returns combi.Fail and, for leaf
// patterns, reports the failure to mc.Errors.
func (p *Pattern) Match(mc *MatchContext) combi.ParsedElement {
	switch p.Kind {
	case KLiteral:
		return p.matchLiteral(mc)
	case KLiteralChar:
		return p.matchLiteralChar(mc)
	case KLiteralChoice:
		return p.matchLiteralChoice(mc)
	case KKeyword:
		return p.matchKeyword(mc)
	case KKeywordChoice:
		return p.matchKeywordChoice(mc)
	case KNumber:
		return p.matchNumber(mc)
	case KRegex:
		return p.matchRegex(mc)
	case KIdentifier:
		return p.matchIdentifier(mc)
	case KWhitespaces:
		return p.matchRunRun(mc, isWhitespace, 1, -1)
	case KSpaces:
		return p.matchRunRun(mc, isSpace, 1, -1)
	case KNewline:
		return p.matchNewline(mc)
	case KCharacter:
		return p.matchCharacter(mc)
	case KRepeatCharacters:
		return p.matchRunRun(mc, p.CharPred, p.RepeatMin, p.RepeatMax)
	case KTextUntil:
		return p.matchTextUntil(mc)
	case KEscapedText:
		return p.matchEscapedText(mc)
	case KEOF:
		return p.matchEOF(mc)
	case KEmpty:
		return p.matchEmptyPattern(mc)
	case KFail:
		mc.recordFailure(p.ID)
		return combi.Fail
	case KSequence:
		return p.matchSequence(mc)
	case KChoiceFirst:
		return p.matchChoiceFirst(mc)
	case KChoiceLongest:
		return p.matchChoiceExtremal(mc, true)
	case KChoiceShortest:
		return p.matchChoiceExtremal(mc, false)
	case KOptional:
		return p.matchOptional(mc)
	case KRepeat:
		return p.matchRepeat(mc)
	case KSeparatedRepeat:
		return p.matchSeparatedRepeat(mc)
	case KBetween:
		return p.matchBetween(mc)
	case KFirst:
		return p.matchFirst(mc)
	case KSecond:
		return p.matchSecond(mc)
	case KMap:
		return p.matchMap(mc)
	case KReturn:
		return p.matchReturn(mc)
	case KCaptureText:
		return p.matchCaptureText(mc)
	case KSkipWhitespaces:
		return p.matchSkipWhitespaces(mc)
	case KLookaheadPositive:
		return p.matchLookahead(mc, true)
	case KLookaheadNegative:
		return p.matchLookahead(mc, false)
	case KSwitch:
		return p.matchSwitch(mc)
	case KIf:
		return p.matchIf(mc)
	}
	mc.recordFailure(p.ID)
	return combi.Fail
}

func inRange(mc *MatchContext, n int) bool {
	return mc.Position+uint64(n) <= mc.Barrier && mc.Position+uint64(n) <= uint64(len(mc.Input))
}

// --- Literals -----------------------------------------------------------

func (p *Pattern) matchLiteral(mc *MatchContext) combi.ParsedElement {
	if !inRange(mc, len(p.Literal)) {
		mc.recordFailure(p.ID)
		return combi.Fail
	}
	slice := mc.Input[mc.Position : mc.Position+uint64(len(p.Literal))]
	matched := slice == p.Literal
	if !matched && !p.CaseSensitive {
		matched = strings.EqualFold(slice, p.Literal)
	}
	if !matched {
		mc.recordFailure(p.ID)
		return combi.Fail
	}
	return combi.Elem(mc.Position, uint64(len(p.Literal)))
}

func (p *Pattern) matchLiteralChar(mc *MatchContext) combi.ParsedElement {
	if mc.Position >= mc.Barrier || mc.Position >= uint64(len(mc.Input)) {
		mc.recordFailure(p.ID)
		return combi.Fail
	}
	r, size := utf8.DecodeRuneInString(mc.Input[mc.Position:])
	if r != p.Char {
		mc.recordFailure(p.ID)
		return combi.Fail
	}
	return combi.Elem(mc.Position, uint64(size))
}

func (p *Pattern) ensureTrie() *trieNode {
	if p.trie == nil {
		p.trie = buildTrie(p.Choices)
	}
	return p.trie
}

// trieMatchLen returns the length of the longest choice matching at
// mc.Position, or -1.
func (p *Pattern) trieMatchLen(mc *MatchContext, caseSensitive bool) int {
	t := p.ensureTrie()
	limit := mc.Input
	if mc.Barrier < uint64(len(mc.Input)) {
		limit = mc.Input[:mc.Barrier]
	}
	if caseSensitive {
		return t.matchAt(limit, mc.Position)
	}
	return t.matchAtFold(limit, mc.Position)
}

func (p *Pattern) matchLiteralChoice(mc *MatchContext) combi.ParsedElement {
	n := p.trieMatchLen(mc, p.CaseSensitive)
	if n < 0 {
		mc.recordFailure(p.ID)
		return combi.Fail
	}
	match := mc.Input[mc.Position : mc.Position+uint64(n)]
	if mc.ComputeValue {
		return combi.ElemWithValue(mc.Position, uint64(n), match)
	}
	return combi.Elem(mc.Position, uint64(n))
}

// --- Keywords -------------------------------------------------------------

func followOK(mc *MatchContext, afterPos uint64, forbidden RunePredicate) bool {
	if afterPos >= uint64(len(mc.Input)) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(mc.Input[afterPos:])
	return !forbidden(r)
}

func (p *Pattern) matchKeyword(mc *MatchContext) combi.ParsedElement {
	if !inRange(mc, len(p.Literal)) || mc.Input[mc.Position:mc.Position+uint64(len(p.Literal))] != p.Literal {
		mc.recordFailure(p.ID)
		return combi.Fail
	}
	end := mc.Position + uint64(len(p.Literal))
	if !followOK(mc, end, p.ForbiddenAfter) {
		mc.recordFailure(p.ID)
		return combi.Fail
	}
	return combi.Elem(mc.Position, uint64(len(p.Literal)))
}

func (p *Pattern) matchKeywordChoice(mc *MatchContext) combi.ParsedElement {
	n := p.trieMatchLen(mc, true)
	if n < 0 {
		mc.recordFailure(p.ID)
		return combi.Fail
	}
	end := mc.Position + uint64(n)
	if !followOK(mc, end, p.ForbiddenAfter) {
		mc.recordFailure(p.ID)
		return combi.Fail
	}
	match := mc.Input[mc.Position:end]
	if mc.ComputeValue {
		return combi.ElemWithValue(mc.Position, uint64(n), match)
	}
	return combi.Elem(mc.Position, uint64(n))
}

// --- Character classes ----------------------------------------------------

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' || r == '\v'
}

func isSpace(r rune) bool { return r == ' ' || r == '\t' }

func (p *Pattern) matchCharacter(mc *MatchContext) combi.ParsedElement {
	if mc.Position >= mc.Barrier || mc.Position >= uint64(len(mc.Input)) {
		mc.recordFailure(p.ID)
		return combi.Fail
	}
	r, size := utf8.DecodeRuneInString(mc.Input[mc.Position:])
	if p.CharPred != nil && !p.CharPred(r) {
		mc.recordFailure(p.ID)
		return combi.Fail
	}
	return combi.Elem(mc.Position, uint64(size))
}

func (p *Pattern) matchRunRun(mc *MatchContext, pred RunePredicate, min, max int) combi.ParsedElement {
	pos := mc.Position
	count := 0
	for (max < 0 || count < max) && pos < mc.Barrier && pos < uint64(len(mc.Input)) {
		r, size := utf8.DecodeRuneInString(mc.Input[pos:])
		if !pred(r) {
			break
		}
		pos += uint64(size)
		count++
	}
	if count < min {
		mc.recordFailure(p.ID)
		return combi.Fail
	}
	return combi.Elem(mc.Position, pos-mc.Position)
}

func (p *Pattern) matchNewline(mc *MatchContext) combi.ParsedElement {
	if mc.Position >= mc.Barrier || mc.Position >= uint64(len(mc.Input)) {
		mc.recordFailure(p.ID)
		return combi.Fail
	}
	if mc.Input[mc.Position] == '\r' {
		if mc.Position+1 < mc.Barrier && mc.Position+1 < uint64(len(mc.Input)) && mc.Input[mc.Position+1] == '\n' {
			return combi.Elem(mc.Position, 2)
		}
		return combi.Elem(mc.Position, 1)
	}
	if mc.Input[mc.Position] == '\n' {
		return combi.Elem(mc.Position, 1)
	}
	mc.recordFailure(p.ID)
	return combi.Fail
}

func (p *Pattern) matchIdentifier(mc *MatchContext) combi.ParsedElement {
	if mc.Position >= mc.Barrier || mc.Position >= uint64(len(mc.Input)) {
		mc.recordFailure(p.ID)
		return combi.Fail
	}
	r, size := utf8.DecodeRuneInString(mc.Input[mc.Position:])
	if !p.IdentStart(r) {
		mc.recordFailure(p.ID)
		return combi.Fail
	}
	pos := mc.Position + uint64(size)
	count := 1
	for pos < mc.Barrier && pos < uint64(len(mc.Input)) {
		r, size := utf8.DecodeRuneInString(mc.Input[pos:])
		if !p.IdentCont(r) {
			break
		}
		pos += uint64(size)
		count++
	}
	if count < p.IdentMinLen {
		mc.recordFailure(p.ID)
		return combi.Fail
	}
	return combi.Elem(mc.Position, pos-mc.Position)
}

// --- EOF / Empty / Fail -----------------------------------------------

func (p *Pattern) matchEOF(mc *MatchContext) combi.ParsedElement {
	if mc.Position == uint64(len(mc.Input)) {
		return combi.Elem(mc.Position, 0)
	}
	mc.recordFailure(p.ID)
	return combi.Fail
}

func (p *Pattern) matchEmptyPattern(mc *MatchContext) combi.ParsedElement {
	if mc.Position <= mc.Barrier && mc.Position <= uint64(len(mc.Input)) {
		return combi.Elem(mc.Position, 0)
	}
	mc.recordFailure(p.ID)
	return combi.Fail
}

// --- TextUntil / EscapedText --------------------------------------------

func (p *Pattern) matchTextUntil(mc *MatchContext) combi.ParsedElement {
	t := buildTrie(p.Terminators)
	pos := mc.Position
	for pos < mc.Barrier && pos < uint64(len(mc.Input)) {
		if t.matchAt(mc.Input, pos) >= 0 {
			break
		}
		_, size := utf8.DecodeRuneInString(mc.Input[pos:])
		pos += uint64(size)
	}
	return combi.Elem(mc.Position, pos-mc.Position)
}

func (p *Pattern) matchEscapedText(mc *MatchContext) combi.ParsedElement {
	forbidden := buildTrie(p.Forbidden)
	var sb strings.Builder
	pos := mc.Position
	for pos < mc.Barrier && pos < uint64(len(mc.Input)) {
		matchedEscape := false
		for esc, repl := range p.EscapeMap {
			if strings.HasPrefix(mc.Input[pos:], esc) {
				sb.WriteString(repl)
				pos += uint64(len(esc))
				matchedEscape = true
				break
			}
		}
		if matchedEscape {
			continue
		}
		if forbidden.matchAt(mc.Input, pos) >= 0 {
			break
		}
		r, size := utf8.DecodeRuneInString(mc.Input[pos:])
		sb.WriteRune(r)
		pos += uint64(size)
	}
	if mc.ComputeValue {
		return combi.ElemWithValue(mc.Position, pos-mc.Position, sb.String())
	}
	return combi.Elem(mc.Position, pos-mc.Position)
}

// --- Regex ----------------------------------------------------------------

func (p *Pattern) matchRegex(mc *MatchContext) combi.ParsedElement {
	n := p.Regexp.FindAnchored(mc.Input[:minInt(mc.Barrier, uint64(len(mc.Input)))], int(mc.Position))
	if n < 0 {
		mc.recordFailure(p.ID)
		return combi.Fail
	}
	if mc.ComputeValue {
		return combi.ElemWithValue(mc.Position, uint64(n), mc.Input[mc.Position:mc.Position+uint64(n)])
	}
	return combi.Elem(mc.Position, uint64(n))
}

func minInt(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

// --- Number -----------------------------------------------------------

func (p *Pattern) matchNumber(mc *MatchContext) combi.ParsedElement {
	pos := mc.Position
	limit := mc.Barrier
	if uint64(len(mc.Input)) < limit {
		limit = uint64(len(mc.Input))
	}
	start := pos
	if pos < limit && p.NumberFlags&Signed != 0 && (mc.Input[pos] == '+' || mc.Input[pos] == '-') {
		pos++
	}
	intDigits := 0
	for pos < limit && isDigit(mc.Input[pos]) {
		pos++
		intDigits++
	}
	sawDecimal := false
	fracDigits := 0
	if p.NumberFlags&DecimalPoint != 0 && pos < limit && mc.Input[pos] == '.' {
		// Tentatively consume the decimal point; back out if it would leave
		// us without any digits on either side and implicit parts are
		// disallowed.
		savedPos := pos
		pos++
		for pos < limit && isDigit(mc.Input[pos]) {
			pos++
			fracDigits++
		}
		if intDigits == 0 && p.NumberFlags&ImplicitIntegerPart == 0 {
			pos = savedPos
		} else if fracDigits == 0 && p.NumberFlags&ImplicitFractionalPart == 0 {
			pos = savedPos
		} else {
			sawDecimal = true
		}
	}
	if intDigits == 0 && !sawDecimal {
		mc.recordFailure(p.ID)
		return combi.Fail
	}
	sawExponent := false
	if p.NumberFlags&Exponent != 0 && pos < limit && (mc.Input[pos] == 'e' || mc.Input[pos] == 'E') {
		savedPos := pos
		epos := pos + 1
		if epos < limit && (mc.Input[epos] == '+' || mc.Input[epos] == '-') {
			epos++
		}
		expDigits := 0
		for epos < limit && isDigit(mc.Input[epos]) {
			epos++
			expDigits++
		}
		if expDigits > 0 {
			pos = epos
			sawExponent = true
		} else {
			pos = savedPos
		}
	}
	text := mc.Input[start:pos]
	target := p.NumberTarget
	if target == NumberAuto {
		if sawDecimal || sawExponent {
			target = NumberFloat
		} else {
			target = NumberInt
		}
	}
	var value interface{}
	switch target {
	case NumberInt:
		iv, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			mc.recordFailure(p.ID)
			return combi.Fail
		}
		value = iv
	case NumberFloat:
		fv, err := strconv.ParseFloat(text, 64)
		if err != nil {
			mc.recordFailure(p.ID)
			return combi.Fail
		}
		value = fv
	}
	if mc.ComputeValue {
		return combi.ElemWithValue(start, pos-start, value)
	}
	return combi.Elem(start, pos-start)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
