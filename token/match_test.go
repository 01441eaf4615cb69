package token

import (
	"testing"

	"github.com/npillmayer/combi"
)

// testTable is a minimal token.Table backed by a slice, indexed by Pattern.ID.
type testTable []*Pattern

func (t testTable) Token(id combi.ID) *Pattern {
	if int(id) < 0 || int(id) >= len(t) {
		return nil
	}
	return t[id]
}

type recordingSink struct {
	failures []combi.ID
}

func (s *recordingSink) RecordTokenFailure(id combi.ID, position uint64) {
	s.failures = append(s.failures, id)
}

func mc(input string, table Table) *MatchContext {
	return &MatchContext{
		Input:        input,
		Position:     0,
		Barrier:      uint64(len(input)),
		ComputeValue: true,
		Errors:       &recordingSink{},
		Table:        table,
	}
}

func TestMatchLiteral(t *testing.T) {
	tests := []struct {
		name    string
		pattern *Pattern
		input   string
		wantOK  bool
		wantLen uint64
	}{
		{"exact", NewLiteral("func", true), "func main", true, 4},
		{"case-insensitive", NewLiteral("func", false), "FUNC main", true, 4},
		{"case-sensitive mismatch", NewLiteral("func", true), "FUNC main", false, 0},
		{"too short", NewLiteral("func", true), "fun", false, 0},
		{"no match", NewLiteral("func", true), "package", false, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := tc.pattern.Match(mc(tc.input, testTable{tc.pattern}))
			if res.OK() != tc.wantOK {
				t.Fatalf("OK() = %v, want %v", res.OK(), tc.wantOK)
			}
			if tc.wantOK && res.Length != tc.wantLen {
				t.Errorf("Length = %d, want %d", res.Length, tc.wantLen)
			}
		})
	}
}

func TestMatchIdentifier(t *testing.T) {
	p := NewIdentifier(nil, nil, 1)
	res := p.Match(mc("hello_world more", testTable{p}))
	if !res.OK() || res.Length != 11 {
		t.Fatalf("got OK=%v Length=%d, want OK=true Length=11", res.OK(), res.Length)
	}
}

func TestMatchIdentifierMinLen(t *testing.T) {
	p := NewIdentifier(nil, nil, 5)
	res := p.Match(mc("ab cd", testTable{p}))
	if res.OK() {
		t.Fatalf("expected failure below min length, got OK with Length=%d", res.Length)
	}
}

func TestMatchSequenceStopsAtFirstFailure(t *testing.T) {
	a := NewLiteral("a", true)
	b := NewLiteral("b", true)
	seq := NewSequence(0, 1)
	table := testTable{a, b, seq}
	a.ID, b.ID, seq.ID = 0, 1, 2

	res := seq.Match(mc("ac", table))
	if res.OK() {
		t.Fatalf("expected sequence to fail when second child doesn't match, got %+v", res)
	}
}

func TestMatchSequenceSuccess(t *testing.T) {
	a := NewLiteral("a", true)
	b := NewLiteral("b", true)
	seq := NewSequence(0, 1)
	table := testTable{a, b, seq}
	a.ID, b.ID, seq.ID = 0, 1, 2

	res := seq.Match(mc("ab", table))
	if !res.OK() || res.Length != 2 {
		t.Fatalf("got OK=%v Length=%d, want OK=true Length=2", res.OK(), res.Length)
	}
}

func TestMatchChoiceFirstTriesInOrder(t *testing.T) {
	a := NewLiteral("cat", true)
	b := NewLiteral("catalog", true)
	choice := NewChoiceFirst(0, 1)
	table := testTable{a, b, choice}
	a.ID, b.ID, choice.ID = 0, 1, 2

	res := choice.Match(mc("catalog", table))
	if !res.OK() || res.Length != 3 {
		t.Fatalf("Choice(first) should take the first matching alternative: got Length=%d, want 3", res.Length)
	}
}

func TestMatchChoiceLongestPicksLongestAlternative(t *testing.T) {
	a := NewLiteral("cat", true)
	b := NewLiteral("catalog", true)
	choice := NewChoiceLongest(0, 1)
	table := testTable{a, b, choice}
	a.ID, b.ID, choice.ID = 0, 1, 2

	res := choice.Match(mc("catalog", table))
	if !res.OK() || res.Length != 7 {
		t.Fatalf("Choice(longest) should prefer the longer alternative: got Length=%d, want 7", res.Length)
	}
}

func TestMatchChoiceShortestPicksShortestAlternative(t *testing.T) {
	a := NewLiteral("cat", true)
	b := NewLiteral("catalog", true)
	choice := NewChoiceShortest(0, 1)
	table := testTable{a, b, choice}
	a.ID, b.ID, choice.ID = 0, 1, 2

	res := choice.Match(mc("catalog", table))
	if !res.OK() || res.Length != 3 {
		t.Fatalf("Choice(shortest) should prefer the shorter alternative: got Length=%d, want 3", res.Length)
	}
}

func TestMatchOptionalNeverFails(t *testing.T) {
	lit := NewLiteral("x", true)
	opt := NewOptional(0)
	table := testTable{lit, opt}
	lit.ID, opt.ID = 0, 1

	res := opt.Match(mc("y", table))
	if !res.OK() || res.Length != 0 {
		t.Fatalf("Optional over a non-matching child should succeed with zero length, got OK=%v Length=%d", res.OK(), res.Length)
	}
}

func TestMatchRepeatZeroLengthChildTerminates(t *testing.T) {
	// An Empty child always matches with Length 0; Repeat must count one
	// such match and stop rather than looping forever.
	empty := NewEmpty()
	rep := NewRepeat(0, 0, -1)
	table := testTable{empty, rep}
	empty.ID, rep.ID = 0, 1

	res := rep.Match(mc("abc", table))
	if !res.OK() || res.Length != 0 {
		t.Fatalf("got OK=%v Length=%d, want a terminating zero-length match", res.OK(), res.Length)
	}
}

func TestMatchRepeatRespectsMinMax(t *testing.T) {
	digit := NewCharacter(func(r rune) bool { return r >= '0' && r <= '9' })
	rep := NewRepeat(0, 2, 3)
	table := testTable{digit, rep}
	digit.ID, rep.ID = 0, 1

	if res := rep.Match(mc("1", table)); res.OK() {
		t.Errorf("expected failure below RepeatMin, got success")
	}
	if res := rep.Match(mc("12345", table)); !res.OK() || res.Length != 3 {
		t.Errorf("expected Repeat to stop at RepeatMax=3, got OK=%v Length=%d", res.OK(), res.Length)
	}
}

func TestMatchEOF(t *testing.T) {
	eof := NewEOF()
	table := testTable{eof}
	eof.ID = 0

	if res := eof.Match(mc("", table)); !res.OK() {
		t.Errorf("expected EOF to match at end of input")
	}
	mctx := mc("x", table)
	if res := eof.Match(mctx); res.OK() {
		t.Errorf("expected EOF to fail when input remains")
	}
}

func TestMatchEscapedText(t *testing.T) {
	body := NewEscapedText(map[string]string{`\"`: `"`, `\\`: `\`}, []string{`"`})
	table := testTable{body}
	body.ID = 0

	res := body.Match(mc(`hi \"there\" end"`, table))
	if !res.OK() {
		t.Fatalf("expected EscapedText to match up to the unescaped terminator")
	}
	if res.Value != `hi "there" end` {
		t.Errorf("Value = %q, want %q", res.Value, `hi "there" end`)
	}
}
