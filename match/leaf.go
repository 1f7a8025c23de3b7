package match

import "github.com/IMQS/qalgebra/posting"

// weightedLeaf wraps a raw posting.Source - a single term, or a
// merged SYNONYM pseudo-term - and replaces its raw within-document
// weight with the configured Weighting scheme's output, recomputed
// fresh at every current document since doc length varies per doc.
type weightedLeaf struct {
	src       posting.Source
	idx       Index
	weighting Weighting
	termFreq  int // global document frequency for this leaf/pseudo-term
	wqf       int
}

func newWeightedLeaf(src posting.Source, idx Index, w Weighting, termFreq, wqf int) *weightedLeaf {
	return &weightedLeaf{src: src, idx: idx, weighting: w, termFreq: termFreq, wqf: wqf}
}

func (l *weightedLeaf) CurrentDocID() posting.DocID { return l.src.CurrentDocID() }
func (l *weightedLeaf) AdvanceTo(target posting.DocID) { l.src.AdvanceTo(target) }
func (l *weightedLeaf) AtEnd() bool { return l.src.AtEnd() }

func (l *weightedLeaf) CurrentWeight() float64 {
	if l.src.AtEnd() {
		return 0
	}
	stats := TermStats{
		CollectionSize: l.idx.CollectionSize(),
		TermFreq:       l.termFreq,
		DocLength:      l.idx.DocLength(l.src.CurrentDocID()),
		Wqf:            l.wqf,
	}
	tf := int(l.src.CurrentWeight())
	if tf <= 0 {
		tf = 1
	}
	return l.weighting.Weight(stats, tf)
}

func (l *weightedLeaf) Positions() []int { return l.src.Positions() }

func (l *weightedLeaf) TermFreqMin() int { return l.src.TermFreqMin() }
func (l *weightedLeaf) TermFreqEst() int { return l.src.TermFreqEst() }
func (l *weightedLeaf) TermFreqMax() int { return l.src.TermFreqMax() }

func (l *weightedLeaf) DocIDRangeMin() posting.DocID { return l.src.DocIDRangeMin() }
func (l *weightedLeaf) DocIDRangeMax() posting.DocID { return l.src.DocIDRangeMax() }
