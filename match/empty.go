package match

import "github.com/IMQS/qalgebra/posting"

// emptySource is the lowering of MatchNothing, and of a positional
// subtree evaluated against a shard that lacks positions.
type emptySource struct{}

func (emptySource) CurrentDocID() posting.DocID { return 0 }
func (emptySource) AdvanceTo(posting.DocID)      {}
func (emptySource) AtEnd() bool                  { return true }
func (emptySource) CurrentWeight() float64       { return 0 }
func (emptySource) Positions() []int             { return nil }
func (emptySource) TermFreqMin() int             { return 0 }
func (emptySource) TermFreqEst() int             { return 0 }
func (emptySource) TermFreqMax() int             { return 0 }
func (emptySource) DocIDRangeMin() posting.DocID { return 0 }
func (emptySource) DocIDRangeMax() posting.DocID { return 0 }
