package estimate

import "github.com/IMQS/qalgebra/query"

// Bounds is a (min, est, max) match-count triple: min <= est <= max is
// not guaranteed to hold exactly for every combinator's approximation,
// but every formula here is built to keep it true in practice.
type Bounds struct {
	Min, Est, Max int
}

// Estimate computes match-count bounds for q, which must already be
// optimised (no KindWildcard/KindEditDistance leaves) - see package
// optimize.
func Estimate(q query.Query, env Environment) (Bounds, error) {
	switch q.Kind() {
	case query.KindMatchAll:
		n := env.CollectionSize()
		return Bounds{n, n, n}, nil
	case query.KindMatchNothing:
		return Bounds{}, nil
	case query.KindTerm:
		min, est, max := env.TermBounds(q.LeafTerm())
		return Bounds{min, est, max}, nil
	case query.KindPostingSource:
		min, est, max := env.PostingSourceBounds(q.PostingSource())
		return Bounds{min, est, max}, nil
	case query.KindWildcard, query.KindEditDistance:
		return Bounds{}, ErrUnoptimised
	case query.KindCompound:
		return estimateCompound(q, env)
	}
	return Bounds{}, nil
}

func childBounds(q query.Query, env Environment) ([]Bounds, error) {
	n := q.NumSubqueries()
	out := make([]Bounds, n)
	for i := 0; i < n; i++ {
		b, err := Estimate(q.Subquery(i), env)
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

func estimateCompound(q query.Query, env Environment) (Bounds, error) {
	n := env.CollectionSize()

	switch q.Op() {
	case query.OpValueGE:
		min, est, max := env.ValueRangeBounds(q.ValueSlot(), q.ValueLo(), "")
		return Bounds{min, est, max}, nil
	case query.OpValueLE:
		min, est, max := env.ValueRangeBounds(q.ValueSlot(), "", q.ValueHi())
		return Bounds{min, est, max}, nil
	case query.OpValueRange:
		min, est, max := env.ValueRangeBounds(q.ValueSlot(), q.ValueLo(), q.ValueHi())
		return Bounds{min, est, max}, nil
	}

	children, err := childBounds(q, env)
	if err != nil {
		return Bounds{}, err
	}

	switch q.Op() {
	case query.OpAnd:
		return andBounds(children, n), nil
	case query.OpOr, query.OpSynonym, query.OpMax, query.OpEliteSet:
		return orBounds(children, n), nil
	case query.OpXor:
		return xorBounds(children, n), nil
	case query.OpAndNot:
		return andNotBounds(children[0], children[1], n), nil
	case query.OpAndMaybe:
		return children[0], nil
	case query.OpFilter:
		return andBounds(children, n), nil
	case query.OpScaleWeight:
		return children[0], nil
	case query.OpPhrase, query.OpNear:
		return phraseBounds(children, n, q.Window(), env.AverageDocumentLength()), nil
	}
	return Bounds{}, nil
}

func andBounds(children []Bounds, n int) Bounds {
	sumMin := 0
	max := -1
	estProduct := 1.0
	for _, c := range children {
		sumMin += c.Min
		if max < 0 || c.Max < max {
			max = c.Max
		}
		estProduct *= safeRatio(c.Est, n)
	}
	min := sumMin - n*(len(children)-1)
	if min < 0 {
		min = 0
	}
	if max < 0 {
		max = 0
	}
	est := int(float64(n) * estProduct)
	if n == 0 {
		est = 0
	}
	if est > max {
		est = max
	}
	if est < min {
		est = min
	}
	return Bounds{min, est, max}
}

func orBounds(children []Bounds, n int) Bounds {
	min := 0
	sumMax := 0
	remaining := 1.0
	for _, c := range children {
		if c.Min > min {
			min = c.Min
		}
		sumMax += c.Max
		remaining *= 1.0 - safeRatio(c.Est, n)
	}
	max := sumMax
	if n > 0 && max > n {
		max = n
	}
	est := int(float64(n) * (1.0 - remaining))
	if n == 0 {
		est = 0
		for _, c := range children {
			est += c.Est
		}
	}
	if est > max {
		est = max
	}
	if est < min {
		est = min
	}
	return Bounds{min, est, max}
}

// xorBounds uses the exact parity-probability formula for independent
// events: P(odd count) = (1 - Π(1-2pᵢ)) / 2. At pᵢ=1 for every child
// (every child matches the whole collection) this reduces exactly to
// 0 for an even child count and 1 for an odd one (xor3) - no special
// case is needed.
func xorBounds(children []Bounds, n int) Bounds {
	sumMax := 0
	parity := 1.0
	for _, c := range children {
		sumMax += c.Max
		p := safeRatio(c.Est, n)
		parity *= 1.0 - 2.0*p
	}
	max := sumMax
	if n > 0 && max > n {
		max = n
	}
	est := 0
	if n > 0 {
		est = int(float64(n) * (1.0 - parity) / 2.0)
	}
	if est > max {
		est = max
	}
	if est < 0 {
		est = 0
	}
	return Bounds{0, est, max}
}

func andNotBounds(left, right Bounds, n int) Bounds {
	min := left.Min - right.Max
	if min < 0 {
		min = 0
	}
	max := left.Max
	est := int(float64(left.Est) * (1.0 - safeRatio(right.Est, n)))
	if n == 0 {
		est = left.Est
	}
	if est > max {
		est = max
	}
	if est < min {
		est = min
	}
	return Bounds{min, est, max}
}

// phraseBounds bounds a PHRASE/NEAR by its AND intersection, using
// each child's own min as its contribution to the max formula (a
// phrase can never match more documents than its least-common child
// guarantees), then narrows the AND-independence estimate by how much
// of an average document the window actually spans.
func phraseBounds(children []Bounds, n int, window int, avgDocLen float64) Bounds {
	maxInputs := make([]Bounds, len(children))
	for i, c := range children {
		maxInputs[i] = Bounds{Min: c.Min, Est: c.Est, Max: c.Min}
	}
	and := andBounds(children, n)
	maxBound := andBounds(maxInputs, n).Max

	factor := 1.0
	if avgDocLen > 0 && window > 0 {
		factor = float64(window) / avgDocLen
		if factor > 1 {
			factor = 1
		}
	}
	est := int(float64(and.Est) * factor)
	if est > maxBound {
		est = maxBound
	}
	if est < 0 {
		est = 0
	}
	return Bounds{0, est, maxBound}
}

// safeRatio returns a/b, or 0 if b <= 0 - the one guard that keeps
// every formula above from dividing by a zero collection size
// (zeroestimate1).
func safeRatio(a, b int) float64 {
	if b <= 0 {
		return 0
	}
	return float64(a) / float64(b)
}
