package match

import (
	"github.com/IMQS/qalgebra/posting"
	"github.com/IMQS/qalgebra/query"
)

// Lower evaluates q against idx and returns a single pull-based
// posting.Source, positioned at its first match (or already at_end).
// q must already be optimised - see package doc.
func Lower(q query.Query, idx Index, w Weighting) (posting.Source, error) {
	return lower(q, idx, w, true)
}

func lower(q query.Query, idx Index, w Weighting, weighted bool) (posting.Source, error) {
	switch q.Kind() {
	case query.KindMatchAll:
		return idx.AllDocsPostings(), nil
	case query.KindMatchNothing:
		return emptySource{}, nil
	case query.KindTerm:
		raw := idx.TermPostings(q.LeafTerm())
		if !weighted {
			return raw, nil
		}
		termFreq := raw.TermFreqEst()
		return newWeightedLeaf(raw, idx, w, termFreq, q.LeafWqf()), nil
	case query.KindPostingSource:
		src, ok := q.PostingSource().(posting.Source)
		if !ok {
			return nil, ErrInvalidPostingSource
		}
		if !weighted {
			return src, nil
		}
		return newWeightedLeaf(src, idx, w, src.TermFreqEst(), 1), nil
	case query.KindWildcard, query.KindEditDistance:
		return nil, ErrUnoptimised
	case query.KindCompound:
		return lowerCompound(q, idx, w, weighted)
	}
	return emptySource{}, nil
}

func lowerChildren(q query.Query, idx Index, w Weighting, weighted bool) ([]posting.Source, error) {
	n := q.NumSubqueries()
	out := make([]posting.Source, n)
	for i := 0; i < n; i++ {
		c, err := lower(q.Subquery(i), idx, w, weighted)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

func lowerCompound(q query.Query, idx Index, w Weighting, weighted bool) (posting.Source, error) {
	switch q.Op() {
	case query.OpAnd:
		children, err := lowerChildren(q, idx, w, weighted)
		if err != nil {
			return nil, err
		}
		return newAndSource(children), nil

	case query.OpOr:
		children, err := lowerChildren(q, idx, w, weighted)
		if err != nil {
			return nil, err
		}
		return newOrSource(children), nil

	case query.OpXor:
		children, err := lowerChildren(q, idx, w, weighted)
		if err != nil {
			return nil, err
		}
		return newXorSource(children), nil

	case query.OpAndNot:
		l, err := lower(q.Subquery(0), idx, w, weighted)
		if err != nil {
			return nil, err
		}
		r, err := lower(q.Subquery(1), idx, w, false)
		if err != nil {
			return nil, err
		}
		return newAndNotSource(l, r), nil

	case query.OpAndMaybe:
		l, err := lower(q.Subquery(0), idx, w, weighted)
		if err != nil {
			return nil, err
		}
		r, err := lower(q.Subquery(1), idx, w, weighted)
		if err != nil {
			return nil, err
		}
		return newAndMaybeSource(l, r), nil

	case query.OpFilter:
		l, err := lower(q.Subquery(0), idx, w, weighted)
		if err != nil {
			return nil, err
		}
		r, err := lower(q.Subquery(1), idx, w, false)
		if err != nil {
			return nil, err
		}
		return newFilterSource(l, r), nil

	case query.OpSynonym:
		raw, err := lowerChildren(q, idx, w, false)
		if err != nil {
			return nil, err
		}
		merged := posting.NewSynonymSource(raw, maxDocIDRange(raw))
		if !weighted {
			return merged, nil
		}
		wqf := 0
		for i := 0; i < q.NumSubqueries(); i++ {
			if q.Subquery(i).Kind() == query.KindTerm {
				wqf += q.Subquery(i).LeafWqf()
			}
		}
		if wqf == 0 {
			wqf = 1
		}
		return newWeightedLeaf(merged, idx, w, merged.TermFreqEst(), wqf), nil

	case query.OpMax:
		children, err := lowerChildren(q, idx, w, weighted)
		if err != nil {
			return nil, err
		}
		return newMaxSource(children), nil

	case query.OpEliteSet:
		children, err := lowerChildren(q, idx, w, weighted)
		if err != nil {
			return nil, err
		}
		return newEliteSetSource(q.EliteK(), children), nil

	case query.OpScaleWeight:
		c, err := lower(q.Subquery(0), idx, w, weighted)
		if err != nil {
			return nil, err
		}
		return newScaleSource(q.Factor(), c), nil

	case query.OpPhrase, query.OpNear:
		for i := 0; i < q.NumSubqueries(); i++ {
			if c := q.Subquery(i); c.Kind() == query.KindCompound {
				switch c.Op() {
				case query.OpAnd, query.OpNear, query.OpPhrase:
					return nil, ErrUnsupportedComposition
				}
			}
		}
		if !idx.HasPositions() {
			return emptySource{}, nil
		}
		children, err := lowerChildren(q, idx, w, weighted)
		if err != nil {
			return nil, err
		}
		if q.Op() == query.OpPhrase {
			return newPhraseSource(children, q.Window()), nil
		}
		return newNearSource(children, q.Window()), nil

	case query.OpValueGE:
		return idx.ValueRangePostings(q.ValueSlot(), q.ValueLo(), ""), nil
	case query.OpValueLE:
		return idx.ValueRangePostings(q.ValueSlot(), "", q.ValueHi()), nil
	case query.OpValueRange:
		return idx.ValueRangePostings(q.ValueSlot(), q.ValueLo(), q.ValueHi()), nil
	}
	return emptySource{}, nil
}

func maxDocIDRange(children []posting.Source) posting.DocID {
	max := posting.DocID(0)
	for _, c := range children {
		if c.DocIDRangeMax() > max {
			max = c.DocIDRangeMax()
		}
	}
	return max
}
