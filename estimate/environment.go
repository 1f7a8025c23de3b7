package estimate

// Environment is the external collaborator Estimate consults for leaf
// bounds - the same aggregate statistics package match's posting
// sources expose, but read directly without lowering or iterating.
type Environment interface {
	// TermBounds returns (min, est, max) documents matching term. For a
	// concrete in-memory posting list all three are typically equal
	// (exact document frequency).
	TermBounds(term string) (min, est, max int)

	// PostingSourceBounds returns bounds for an opaque
	// KindPostingSource leaf's reference.
	PostingSourceBounds(ref interface{}) (min, est, max int)

	// ValueRangeBounds returns bounds for a VALUE_GE (hi == ""),
	// VALUE_LE (lo == ""), or VALUE_RANGE (both set) leaf.
	ValueRangeBounds(slot int, lo, hi string) (min, est, max int)

	// CollectionSize returns the total number of documents (N).
	CollectionSize() int

	// AverageDocumentLength returns the collection's mean document
	// length, used only to scale PHRASE/NEAR's estimate by window
	// size. Returning <= 0 disables the scaling (treated as "no
	// positional narrowing applied").
	AverageDocumentLength() float64
}
