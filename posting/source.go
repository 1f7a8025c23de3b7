package posting

// DocID identifies a document within one index.
type DocID uint32

// Source is the uniform posting-list iterator contract every operand
// of the matcher is lowered to. Implementations are forward-only:
// AdvanceTo never moves to a smaller docid than the current one.
type Source interface {
	// CurrentDocID returns the docid the iterator is positioned at.
	// Undefined once AtEnd() is true.
	CurrentDocID() DocID

	// AdvanceTo positions the iterator at the least docid >= target
	// that matches. Calling with a docid <= the current one is a no-op.
	AdvanceTo(target DocID)

	// AtEnd reports whether the iterator has been exhausted.
	AtEnd() bool

	// CurrentWeight returns this source's raw weight contribution for
	// the current document (before any weighting-scheme transform).
	CurrentWeight() float64

	// Positions returns the sorted term positions within the current
	// document, or nil if this source carries no positional data.
	Positions() []int

	// TermFreqMin, TermFreqEst, TermFreqMax bound the number of
	// documents this source can ever match.
	TermFreqMin() int
	TermFreqEst() int
	TermFreqMax() int

	// DocIDRangeMin, DocIDRangeMax bound the docids this source can
	// ever report.
	DocIDRangeMin() DocID
	DocIDRangeMax() DocID
}

// advanceLinear is the forward-scan helper used by ValueRangeSource:
// postings here are
// small enough that a linear scan from the current index is simpler,
// and no less correct, than maintaining a skip-list.
func advanceLinear(docs []DocID, idx int, target DocID) int {
	for idx < len(docs) && docs[idx] < target {
		idx++
	}
	return idx
}
