package token

import "github.com/npillmayer/combi"

func (mc *MatchContext) withComputeValue(v bool) *MatchContext {
	if mc.ComputeValue == v {
		return mc
	}
	cp := *mc
	cp.ComputeValue = v
	return &cp
}

func (p *Pattern) matchSequence(mc *MatchContext) combi.ParsedElement {
	pos := mc.Position
	for _, child := range p.Children {
		res := mc.at(pos).Match(child)
		if !res.OK() {
			return combi.Fail
		}
		pos = res.End()
	}
	return combi.Elem(mc.Position, pos-mc.Position)
}

func (p *Pattern) matchChoiceFirst(mc *MatchContext) combi.ParsedElement {
	candidates := p.Children
	if p.Deterministic && mc.Position < uint64(len(mc.Input)) {
		if filtered, ok := filterDeterministic(mc, p.Children); ok {
			candidates = filtered
		}
	}
	for _, child := range candidates {
		res := mc.Match(child)
		if res.OK() {
			return res
		}
	}
	mc.recordFailure(p.ID)
	return combi.Fail
}

// filterDeterministic narrows a Choice(first)'s candidate list to children
// whose first-character set contains input[position], when every candidate
// is itself deterministic.
func filterDeterministic(mc *MatchContext, children []combi.ID) ([]combi.ID, bool) {
	r := rune(mc.Input[mc.Position])
	out := make([]combi.ID, 0, len(children))
	for _, c := range children {
		pat := mc.Table.Token(c)
		if pat == nil || pat.FirstChars == nil || !pat.Deterministic {
			return nil, false
		}
		if pat.FirstChars.Contains(r) {
			out = append(out, c)
		}
	}
	return out, true
}

func (p *Pattern) matchChoiceExtremal(mc *MatchContext, longest bool) combi.ParsedElement {
	var best combi.ParsedElement
	found := false
	for _, child := range p.Children {
		res := mc.Match(child)
		if !res.OK() {
			continue
		}
		if !found {
			best, found = res, true
			continue
		}
		if longest && res.Length > best.Length {
			best = res
		} else if !longest && res.Length < best.Length {
			best = res
		}
	}
	if !found {
		mc.recordFailure(p.ID)
		return combi.Fail
	}
	return best
}

func (p *Pattern) matchOptional(mc *MatchContext) combi.ParsedElement {
	res := mc.Match(p.Children[0])
	if res.OK() {
		return res
	}
	return combi.Elem(mc.Position, 0)
}

func (p *Pattern) matchRepeat(mc *MatchContext) combi.ParsedElement {
	pos := mc.Position
	count := 0
	for p.RepeatMax < 0 || count < p.RepeatMax {
		res := mc.at(pos).Match(p.Children[0])
		if !res.OK() {
			break
		}
		if res.Length == 0 {
			// Zero-length match: count it once, then stop — prevents
			// infinite loops.
			pos = res.End()
			count++
			break
		}
		pos = res.End()
		count++
	}
	if count < p.RepeatMin {
		mc.recordFailure(p.ID)
		return combi.Fail
	}
	return combi.Elem(mc.Position, pos-mc.Position)
}

func (p *Pattern) matchSeparatedRepeat(mc *MatchContext) combi.ParsedElement {
	elemID, sepID := p.Children[0], p.Children[1]
	allowTrailing, includeSep := p.TrimStart, p.TrimEnd
	_ = includeSep
	pos := mc.Position
	count := 0

	first := mc.at(pos).Match(elemID)
	if !first.OK() {
		if p.RepeatMin == 0 {
			return combi.Elem(mc.Position, 0)
		}
		mc.recordFailure(p.ID)
		return combi.Fail
	}
	if first.Length == 0 {
		mc.recordFailure(p.ID)
		return combi.Fail
	}
	pos = first.End()
	count = 1

	for p.RepeatMax < 0 || count < p.RepeatMax {
		sepRes := mc.at(pos).Match(sepID)
		if !sepRes.OK() {
			break
		}
		afterSep := sepRes.End()
		elemRes := mc.at(afterSep).Match(elemID)
		if !elemRes.OK() {
			if allowTrailing {
				pos = afterSep
			}
			break
		}
		if sepRes.Length == 0 || elemRes.Length == 0 {
			mc.recordFailure(p.ID)
			return combi.Fail
		}
		pos = elemRes.End()
		count++
	}
	if count < p.RepeatMin {
		mc.recordFailure(p.ID)
		return combi.Fail
	}
	return combi.Elem(mc.Position, pos-mc.Position)
}

func (p *Pattern) matchBetween(mc *MatchContext) combi.ParsedElement {
	a, b, c := p.Children[0], p.Children[1], p.Children[2]
	resA := mc.withComputeValue(false).Match(a)
	if !resA.OK() {
		return combi.Fail
	}
	resB := mc.at(resA.End()).Match(b)
	if !resB.OK() {
		return combi.Fail
	}
	resC := mc.withComputeValue(false).at(resB.End()).Match(c)
	if !resC.OK() {
		return combi.Fail
	}
	if mc.ComputeValue && resB.HasValue() {
		return combi.ElemWithValue(mc.Position, resC.End()-mc.Position, resB.Value)
	}
	return combi.Elem(mc.Position, resC.End()-mc.Position)
}

func (p *Pattern) matchFirst(mc *MatchContext) combi.ParsedElement {
	a, b := p.Children[0], p.Children[1]
	resA := mc.Match(a)
	if !resA.OK() {
		return combi.Fail
	}
	resB := mc.withComputeValue(false).at(resA.End()).Match(b)
	if !resB.OK() {
		return combi.Fail
	}
	if mc.ComputeValue && resA.HasValue() {
		return combi.ElemWithValue(mc.Position, resB.End()-mc.Position, resA.Value)
	}
	return combi.Elem(mc.Position, resB.End()-mc.Position)
}

func (p *Pattern) matchSecond(mc *MatchContext) combi.ParsedElement {
	a, b := p.Children[0], p.Children[1]
	resA := mc.withComputeValue(false).Match(a)
	if !resA.OK() {
		return combi.Fail
	}
	resB := mc.at(resA.End()).Match(b)
	if !resB.OK() {
		return combi.Fail
	}
	if mc.ComputeValue && resB.HasValue() {
		return combi.ElemWithValue(mc.Position, resB.End()-mc.Position, resB.Value)
	}
	return combi.Elem(mc.Position, resB.End()-mc.Position)
}

func (p *Pattern) matchMap(mc *MatchContext) combi.ParsedElement {
	res := mc.Match(p.Children[0])
	if !res.OK() {
		return combi.Fail
	}
	if mc.ComputeValue && p.MapFn != nil {
		return combi.ElemWithValue(res.Start, res.Length, p.MapFn(res.Value))
	}
	return res
}

func (p *Pattern) matchReturn(mc *MatchContext) combi.ParsedElement {
	res := mc.withComputeValue(false).Match(p.Children[0])
	if !res.OK() {
		return combi.Fail
	}
	if mc.ComputeValue {
		return combi.ElemWithValue(res.Start, res.Length, p.ReturnVal)
	}
	return combi.Elem(res.Start, res.Length)
}

func (p *Pattern) matchCaptureText(mc *MatchContext) combi.ParsedElement {
	res := mc.withComputeValue(false).Match(p.Children[0])
	if !res.OK() {
		return combi.Fail
	}
	start, end := res.Start, res.End()
	if p.TrimStart {
		for start < end && isWhitespace(rune(mc.Input[start])) {
			start++
		}
	}
	if p.TrimEnd {
		for end > start && isWhitespace(rune(mc.Input[end-1])) {
			end--
		}
	}
	text := mc.Input[start:end]
	if mc.ComputeValue {
		return combi.ElemWithValue(res.Start, res.Length, text)
	}
	return combi.Elem(res.Start, res.Length)
}

func (p *Pattern) matchSkipWhitespaces(mc *MatchContext) combi.ParsedElement {
	pos := mc.Position
	for pos < mc.Barrier && pos < uint64(len(mc.Input)) && isWhitespace(rune(mc.Input[pos])) {
		pos++
	}
	res := mc.at(pos).Match(p.Children[0])
	if !res.OK() {
		return combi.Fail
	}
	if mc.ComputeValue && res.HasValue() {
		return combi.ElemWithValue(mc.Position, res.End()-mc.Position, res.Value)
	}
	return combi.Elem(mc.Position, res.End()-mc.Position)
}

func (p *Pattern) matchLookahead(mc *MatchContext, positive bool) combi.ParsedElement {
	res := mc.withComputeValue(false).Match(p.Children[0])
	ok := res.OK()
	if ok == positive {
		return combi.Elem(mc.Position, 0)
	}
	mc.recordFailure(p.ID)
	return combi.Fail
}

func (p *Pattern) matchSwitch(mc *MatchContext) combi.ParsedElement {
	idx := p.Selector(mc.Param)
	var target combi.ID
	if idx >= 0 && idx < len(p.Branches) {
		target = p.Branches[idx]
	} else if p.Default != combi.NoID {
		target = p.Default
	} else {
		mc.recordFailure(p.ID)
		return combi.Fail
	}
	return mc.Match(target)
}

func (p *Pattern) matchIf(mc *MatchContext) combi.ParsedElement {
	if p.Predicate(mc.Param) {
		return mc.Match(p.Then)
	}
	if p.HasElse {
		return mc.Match(p.Else)
	}
	mc.recordFailure(p.ID)
	return combi.Fail
}
