package build

import (
	"github.com/cnf/structhash"

	"github.com/npillmayer/combi"
	"github.com/npillmayer/combi/rule"
	"github.com/npillmayer/combi/token"
)

// tokenHashKey is the structurally-hashable projection of a token.Pattern
// used for dedup. Function-valued fields (MapFn, Selector, Predicate,
// Regexp, CharPred, Ident*, ForbiddenAfter) are deliberately excluded —
// structhash cannot hash Go closures, so any pattern carrying one is never
// considered a dedup candidate (see hasUnhashableState). ReturnVal and
// EscapeMap are not part of the key either, so a pattern carrying one is
// likewise never a dedup candidate. This mirrors the way
// lr/earley/earley.go hashes only an item's comparable fields (item,
// stateno) rather than the whole parser state.
type tokenHashKey struct {
	Kind          int
	Literal       string
	CaseSensitive bool
	Char          rune
	Choices       []string
	NumberFlags   uint8
	NumberTarget  int
	IdentMinLen   int
	RepeatMin     int
	RepeatMax     int
	Terminators   []string
	Forbidden     []string
	TrimStart     bool
	TrimEnd       bool
	Children      []combi.ID
}

func hasUnhashableState(p *token.Pattern) bool {
	return p.MapFn != nil || p.Selector != nil || p.Predicate != nil ||
		p.Regexp != nil || p.CharPred != nil || p.IdentStart != nil ||
		p.IdentCont != nil || p.ForbiddenAfter != nil ||
		p.ReturnVal != nil || len(p.EscapeMap) > 0
}

// dedupTokens collapses structurally-identical token patterns to a single
// representative and returns the deduplicated, contiguously
// reindexed table plus a map from every original id to its final id.
// Tokens must already be in dependency order (builder.Token enforces this),
// so every child id has already been processed and remapped by the time its
// parent is visited.
func dedupTokens(tokens []*token.Pattern) ([]*token.Pattern, map[combi.ID]combi.ID) {
	remap := make(map[combi.ID]combi.ID, len(tokens))
	seen := make(map[string]combi.ID, len(tokens))
	out := make([]*token.Pattern, 0, len(tokens))

	for _, p := range tokens {
		oldID := p.ID
		remappedChildren := make([]combi.ID, len(p.Children))
		for i, c := range p.Children {
			remappedChildren[i] = remap[c]
		}

		if hasUnhashableState(p) {
			out, remap = appendFresh(out, remap, p, oldID, remappedChildren)
			continue
		}

		key := tokenHashKey{
			Kind: int(p.Kind), Literal: p.Literal, CaseSensitive: p.CaseSensitive,
			Char: p.Char, Choices: p.Choices, NumberFlags: uint8(p.NumberFlags),
			NumberTarget: int(p.NumberTarget), IdentMinLen: p.IdentMinLen,
			RepeatMin: p.RepeatMin, RepeatMax: p.RepeatMax,
			Terminators: p.Terminators, Forbidden: p.Forbidden,
			TrimStart: p.TrimStart, TrimEnd: p.TrimEnd, Children: remappedChildren,
		}
		sum, err := structhash.Hash(key, 1)
		if err != nil {
			tracer().Debugf("combi/build: hashing token %d: %v (treating as unique)", oldID, err)
			out, remap = appendFresh(out, remap, p, oldID, remappedChildren)
			continue
		}
		if existing, ok := seen[sum]; ok {
			remap[oldID] = existing
			continue
		}
		newID := combi.ID(len(out))
		p.ID = newID
		p.Children = remappedChildren
		out = append(out, p)
		seen[sum] = newID
		remap[oldID] = newID
	}
	return out, remap
}

func appendFresh(out []*token.Pattern, remap map[combi.ID]combi.ID, p *token.Pattern, oldID combi.ID, children []combi.ID) ([]*token.Pattern, map[combi.ID]combi.ID) {
	newID := combi.ID(len(out))
	p.ID = newID
	p.Children = children
	out = append(out, p)
	remap[oldID] = newID
	return out, remap
}

// remapRuleTokenRefs rewrites a Token-wrapper rule's reference after token
// dedup reindexed the token table.
func remapRuleTokenRefs(p *rule.Pattern, tokenRemap map[combi.ID]combi.ID) {
	if p == nil || p.Kind != rule.RToken {
		return
	}
	if remapped, ok := tokenRemap[p.TokenID]; ok {
		p.TokenID = remapped
	}
}
