package match

import (
	"github.com/IMQS/qalgebra/posting"
	"github.com/IMQS/qalgebra/query"
)

// Matcher binds an Index and a Weighting scheme and evaluates queries
// against them.
type Matcher struct {
	idx       Index
	weighting Weighting
}

// NewMatcher builds a Matcher. weighting may be BoolWeight{} for a
// pure boolean, unranked match.
func NewMatcher(idx Index, weighting Weighting) *Matcher {
	return &Matcher{idx: idx, weighting: weighting}
}

// Find lowers an already-optimised query into a posting.Source
// positioned at its first match.
func (m *Matcher) Find(optimised query.Query) (posting.Source, error) {
	return Lower(optimised, m.idx, m.weighting)
}

// MatchingTerms returns the set of explicit leaf terms in original (the
// pre-optimisation query, so that wildcard/edit-distance-expanded
// terms are excluded unless they also occur as an explicit leaf) that
// match docid. Terms() already skips unexpanded Wildcard/EditDistance
// leaves, so this set is exactly the "explicit" terms the spec
// describes without any extra provenance bookkeeping.
func (m *Matcher) MatchingTerms(original query.Query, docid posting.DocID) []string {
	var out []string
	for _, t := range original.UniqueTerms() {
		src := m.idx.TermPostings(t)
		src.AdvanceTo(docid)
		if !src.AtEnd() && src.CurrentDocID() == docid {
			out = append(out, t)
		}
	}
	return out
}
