package token

import "regexp"

// AnchoredRegexp adapts a stdlib *regexp.Regexp to the Regexp interface,
// forcing the match to start exactly at the given position regardless of
// whether the caller's pattern source began with "^".
type AnchoredRegexp struct {
	re *regexp.Regexp
}

// NewAnchoredRegexp compiles pattern and wraps it for position-anchored
// matching. The pattern itself should not rely on "^"/"$"; anchoring is
// applied structurally instead.
func NewAnchoredRegexp(pattern string) (*AnchoredRegexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &AnchoredRegexp{re: re}, nil
}

// FindAnchored implements Regexp.
func (a *AnchoredRegexp) FindAnchored(input string, pos int) int {
	loc := a.re.FindStringIndex(input[pos:])
	if loc == nil || loc[0] != 0 {
		return -1
	}
	return loc[1] - loc[0]
}
