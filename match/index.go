package match

import "github.com/IMQS/qalgebra/posting"

// Index is the external collaborator (§6) a Matcher evaluates a query
// against: one logical shard's worth of postings and statistics.
type Index interface {
	// TermPostings returns term's posting source, or an already-at-end
	// source if the term is absent.
	TermPostings(term string) posting.Source

	// AllDocsPostings returns a source matching every document.
	AllDocsPostings() posting.Source

	// ValueRangePostings returns the posting source for a VALUE_GE (hi
	// == ""), VALUE_LE (lo == ""), or VALUE_RANGE (both set) node.
	ValueRangePostings(slot int, lo, hi string) posting.Source

	// DocLength returns a document's length, in whatever unit the
	// weighting scheme expects (typically token count).
	DocLength(docid posting.DocID) int

	// CollectionSize returns the total number of documents.
	CollectionSize() int

	// HasPositions reports whether this shard carries positional data.
	// A PHRASE/NEAR subtree contributes zero matches against a shard
	// that does not.
	HasPositions() bool
}
