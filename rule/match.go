package rule

import (
	"github.com/npillmayer/combi"
	"github.com/npillmayer/combi/ast"
)

// Match dispatches on p.Kind and attempts to match starting at position,
// recursing through drv for every child rule/token. Returns (node, true) on
// success, (nil, false) on failure; failure does not advance drv's notion
// of position (the driver's Dispatch is responsible for any memoization or
// error recording around this call; Match itself is pure).
func (p *Pattern) Match(drv Driver, position uint64) (*ast.ParsedRule, bool) {
	switch p.Kind {
	case RToken:
		return p.matchToken(drv, position)
	case RSequence:
		return p.matchSequence(drv, position)
	case RChoiceFirst:
		return p.matchChoiceFirst(drv, position)
	case RChoiceLongest:
		return p.matchChoiceExtremal(drv, position, true)
	case RChoiceShortest:
		return p.matchChoiceExtremal(drv, position, false)
	case ROptional:
		return p.matchOptional(drv, position)
	case RRepeat:
		return p.matchRepeat(drv, position)
	case RSeparatedRepeat:
		return p.matchSeparatedRepeat(drv, position)
	case RLookaheadPositive:
		return p.matchLookahead(drv, position, true)
	case RLookaheadNegative:
		return p.matchLookahead(drv, position, false)
	case RSwitch:
		return p.matchSwitch(drv, position)
	case RIf:
		return p.matchIf(drv, position)
	case RCustom:
		return p.Custom(drv, position)
	}
	tracer().Errorf("combi/rule: unknown kind %v", p.Kind)
	return nil, false
}

// dispatch runs id through drv's build-time inline fast path before falling
// back to the full Dispatch pipeline.
func dispatch(drv Driver, id combi.ID, position uint64) (*ast.ParsedRule, bool) {
	if node, ok, inlined := drv.TryInline(id, position); inlined {
		return node, ok
	}
	return drv.Dispatch(id, position)
}

func (p *Pattern) node(position, length uint64, children []*ast.ParsedRule, occurrence int) *ast.ParsedRule {
	n := &ast.ParsedRule{
		RuleID:     p.ID,
		Start:      position,
		Length:     length,
		Children:   children,
		Occurrence: occurrence,
	}
	return n
}

func (p *Pattern) withValue(drv Driver, n *ast.ParsedRule) *ast.ParsedRule {
	if !drv.ComputeValue() || p.Factory == nil {
		return n
	}
	if drv.LazyAST() {
		children, param := n.Children, drv.Param()
		n.SetLazyValue(func() interface{} { return p.Factory(children, param) })
		return n
	}
	n.SetValue(p.Factory(n.Children, drv.Param()))
	return n
}

func (p *Pattern) matchToken(drv Driver, position uint64) (*ast.ParsedRule, bool) {
	elem, ok := drv.MatchToken(p.TokenID, position)
	if !ok {
		return nil, false
	}
	n := &ast.ParsedRule{
		RuleID: p.ID, IsToken: true, TokenID: p.TokenID,
		Start: elem.Start, Length: elem.Length, Occurrence: ast.NoOccurrence,
	}
	if elem.HasValue() {
		n.SetValue(elem.Value)
	}
	return n, true
}

func (p *Pattern) matchSequence(drv Driver, position uint64) (*ast.ParsedRule, bool) {
	pos := position
	children := make([]*ast.ParsedRule, 0, len(p.Children))
	for _, id := range p.Children {
		child, ok := dispatch(drv, id, pos)
		if !ok {
			return nil, false
		}
		children = append(children, child)
		pos = child.End()
	}
	n := p.node(position, pos-position, children, ast.NoOccurrence)
	return p.withValue(drv, n), true
}

func (p *Pattern) matchChoiceFirst(drv Driver, position uint64) (*ast.ParsedRule, bool) {
	candidates := p.Children
	if narrowed := drv.ChoiceCandidates(p.ID, position); narrowed != nil {
		candidates = narrowed
	}
	for _, id := range candidates {
		child, ok := dispatch(drv, id, position)
		if ok {
			n := p.node(position, child.Length, []*ast.ParsedRule{child}, indexOfChild(p.Children, id))
			return p.withValue(drv, n), true
		}
	}
	return nil, false
}

// indexOfChild returns the position of id within children (the original,
// unfiltered declaration order), so Occurrence stays meaningful even when
// matchChoiceFirst only tried a narrowed candidate subset.
func indexOfChild(children []combi.ID, id combi.ID) int {
	for i, c := range children {
		if c == id {
			return i
		}
	}
	return ast.NoOccurrence
}

func (p *Pattern) matchChoiceExtremal(drv Driver, position uint64, longest bool) (*ast.ParsedRule, bool) {
	var best *ast.ParsedRule
	bestIdx := -1
	for i, id := range p.Children {
		child, ok := dispatch(drv, id, position)
		if !ok {
			continue
		}
		if best == nil {
			best, bestIdx = child, i
			continue
		}
		if longest && child.Length > best.Length {
			best, bestIdx = child, i
		} else if !longest && child.Length < best.Length {
			best, bestIdx = child, i
		}
	}
	if best == nil {
		return nil, false
	}
	n := p.node(position, best.Length, []*ast.ParsedRule{best}, bestIdx)
	return p.withValue(drv, n), true
}

func (p *Pattern) matchOptional(drv Driver, position uint64) (*ast.ParsedRule, bool) {
	child, ok := dispatch(drv, p.Children[0], position)
	if !ok {
		return p.node(position, 0, nil, ast.NoOccurrence), true
	}
	n := p.node(position, child.Length, []*ast.ParsedRule{child}, 0)
	return p.withValue(drv, n), true
}

func (p *Pattern) matchRepeat(drv Driver, position uint64) (*ast.ParsedRule, bool) {
	pos := position
	children := make([]*ast.ParsedRule, 0)
	for p.RepeatMax < 0 || len(children) < p.RepeatMax {
		child, ok := dispatch(drv, p.Children[0], pos)
		if !ok {
			break
		}
		children = append(children, child)
		pos = child.End()
		if child.Length == 0 {
			// zero-length match: count once and stop (no infinite loop).
			break
		}
	}
	if len(children) < p.RepeatMin {
		return nil, false
	}
	n := p.node(position, pos-position, children, ast.NoOccurrence)
	return p.withValue(drv, n), true
}

func (p *Pattern) matchSeparatedRepeat(drv Driver, position uint64) (*ast.ParsedRule, bool) {
	elemID, sepID := p.Children[0], p.Children[1]
	allowTrailing := p.TrimStart
	pos := position
	children := make([]*ast.ParsedRule, 0)

	first, ok := dispatch(drv, elemID, pos)
	if !ok {
		if p.RepeatMin == 0 {
			return p.node(position, 0, nil, ast.NoOccurrence), true
		}
		return nil, false
	}
	if first.Length == 0 {
		return nil, false
	}
	children = append(children, first)
	pos = first.End()

	for p.RepeatMax < 0 || len(children) < p.RepeatMax {
		sep, ok := dispatch(drv, sepID, pos)
		if !ok {
			break
		}
		afterSep := sep.End()
		elem, ok := dispatch(drv, elemID, afterSep)
		if !ok {
			if allowTrailing {
				if p.TrimEnd {
					children = append(children, sep)
				}
				pos = afterSep
			}
			break
		}
		if sep.Length == 0 || elem.Length == 0 {
			return nil, false
		}
		if p.TrimEnd {
			children = append(children, sep)
		}
		children = append(children, elem)
		pos = elem.End()
	}
	if len(children) < p.RepeatMin {
		return nil, false
	}
	n := p.node(position, pos-position, children, ast.NoOccurrence)
	return p.withValue(drv, n), true
}

func (p *Pattern) matchLookahead(drv Driver, position uint64, positive bool) (*ast.ParsedRule, bool) {
	_, ok := dispatch(drv, p.Children[0], position)
	if ok == positive {
		return p.node(position, 0, nil, ast.NoOccurrence), true
	}
	return nil, false
}

func (p *Pattern) matchSwitch(drv Driver, position uint64) (*ast.ParsedRule, bool) {
	idx := p.Selector(drv.Param())
	var target combi.ID
	if idx >= 0 && idx < len(p.Branches) {
		target = p.Branches[idx]
	} else if p.Default != combi.NoID {
		target = p.Default
	} else {
		drv.RecordSwitchFailure(p.ID, position)
		return nil, false
	}
	child, ok := dispatch(drv, target, position)
	if !ok {
		return nil, false
	}
	n := p.node(position, child.Length, []*ast.ParsedRule{child}, idx)
	return p.withValue(drv, n), true
}

func (p *Pattern) matchIf(drv Driver, position uint64) (*ast.ParsedRule, bool) {
	var target combi.ID
	if p.Predicate(drv.Param()) {
		target = p.Then
	} else if p.HasElse {
		target = p.Else
	} else {
		return nil, false
	}
	child, ok := dispatch(drv, target, position)
	if !ok {
		return nil, false
	}
	n := p.node(position, child.Length, []*ast.ParsedRule{child}, ast.NoOccurrence)
	return p.withValue(drv, n), true
}
