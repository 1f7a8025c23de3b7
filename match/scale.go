package match

import "github.com/IMQS/qalgebra/posting"

// scaleSource delegates matching to child and multiplies its weight
// by factor.
type scaleSource struct {
	child  posting.Source
	factor float64
}

func newScaleSource(factor float64, child posting.Source) *scaleSource {
	return &scaleSource{child: child, factor: factor}
}

func (s *scaleSource) CurrentDocID() posting.DocID   { return s.child.CurrentDocID() }
func (s *scaleSource) AdvanceTo(target posting.DocID) { s.child.AdvanceTo(target) }
func (s *scaleSource) AtEnd() bool                   { return s.child.AtEnd() }
func (s *scaleSource) CurrentWeight() float64        { return s.child.CurrentWeight() * s.factor }
func (s *scaleSource) Positions() []int              { return s.child.Positions() }
func (s *scaleSource) TermFreqMin() int              { return s.child.TermFreqMin() }
func (s *scaleSource) TermFreqEst() int              { return s.child.TermFreqEst() }
func (s *scaleSource) TermFreqMax() int              { return s.child.TermFreqMax() }
func (s *scaleSource) DocIDRangeMin() posting.DocID  { return s.child.DocIDRangeMin() }
func (s *scaleSource) DocIDRangeMax() posting.DocID  { return s.child.DocIDRangeMax() }
