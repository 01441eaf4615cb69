package exec

import (
	"sort"

	"github.com/npillmayer/combi"
)

// BarrierStream holds the external, pre-tokenized stream of synthetic
// barrier positions (e.g. INDENT/DEDENT markers) a grammar can consult
// without re-deriving them from the grammar itself. Grounded on lr/scanner's adapter of an externally-driven token
// source feeding into the parser rather than the parser scanning itself.
type BarrierStream struct {
	tokens []combi.BarrierToken // sorted by Position
}

// NewBarrierStream builds a stream from an unordered slice of barrier
// tokens, typically produced by a combi.BarrierTokenizer.
func NewBarrierStream(tokens []combi.BarrierToken) *BarrierStream {
	sorted := append([]combi.BarrierToken(nil), tokens...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Position < sorted[j].Position })
	return &BarrierStream{tokens: sorted}
}

// NextBarrierPosition returns the nearest barrier position at or after pos,
// or inputLen if no further barrier exists — the position a rule's match
// may never cross.
func (bs *BarrierStream) NextBarrierPosition(pos, inputLen uint64) uint64 {
	if bs == nil {
		return inputLen
	}
	lo, hi := 0, len(bs.tokens)
	for lo < hi {
		mid := (lo + hi) / 2
		if bs.tokens[mid].Position < pos {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(bs.tokens) {
		return bs.tokens[lo].Position
	}
	return inputLen
}

// PassedBarriers returns a bitmap (bit i set for barrier Kind i mod 64) of
// every barrier crossed in the half-open range [from, to) — recorded on the
// ast.ParsedRule node that spans it.
func (bs *BarrierStream) PassedBarriers(from, to uint64) uint64 {
	if bs == nil {
		return 0
	}
	var mask uint64
	for _, t := range bs.tokens {
		if t.Position >= to {
			break
		}
		if t.Position >= from {
			mask |= 1 << uint(t.Kind%64)
		}
	}
	return mask
}
