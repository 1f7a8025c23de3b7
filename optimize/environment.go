package optimize

import (
	"github.com/IMQS/qalgebra/expand"
	"github.com/IMQS/qalgebra/posting"
)

// Environment is the external collaborator Optimise consults to decide
// whether a Term/VALUE_* leaf's posting list is provably empty, and to
// expand Wildcard/EditDistance leaves. A single Environment is expected
// to be shared across every query optimised against one index snapshot,
// so its Cache can amortise repeated dictionary scans.
type Environment interface {
	// TermPostings returns term's posting source, positioned at its
	// first entry. Optimise only ever inspects AtEnd() on the result; it
	// never advances or reads weights from it.
	TermPostings(term string) posting.Source

	// ValueRangePostings returns the posting source for a VALUE_GE (hi
	// == ""), VALUE_LE (lo == ""), or VALUE_RANGE (both set) leaf.
	ValueRangePostings(slot int, lo, hi string) posting.Source

	// Dictionary is consulted to expand Wildcard/EditDistance leaves.
	Dictionary() expand.Dictionary

	// Cache memoises dictionary scans across the Optimise calls that
	// share this Environment. May return nil.
	Cache() *expand.Cache
}
