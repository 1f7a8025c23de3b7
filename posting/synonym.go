package posting

import "sort"

// SynonymSource treats its children as synonyms of one pseudo-term: at
// each docid any child matches, the combined weight is the sum of
// every matching child's weight, and the combined positions are the
// sorted union of every matching child's positions. This lets the
// matcher present a single pseudo-term to the weighting scheme instead
// of double-counting each synonym's contribution.
type SynonymSource struct {
	children []Source
	rangeMax DocID
	atEnd    bool

	curDoc    DocID
	curWeight float64
	curPos    []int
}

// NewSynonymSource builds a merged-sorted-union Source over children.
func NewSynonymSource(children []Source, rangeMax DocID) *SynonymSource {
	s := &SynonymSource{children: children, rangeMax: rangeMax}
	s.settle()
	return s
}

// settle recomputes curDoc/curWeight/curPos from whichever children are
// currently positioned at the lowest docid.
func (s *SynonymSource) settle() {
	least := DocID(0)
	found := false
	for _, c := range s.children {
		if c.AtEnd() {
			continue
		}
		if !found || c.CurrentDocID() < least {
			least = c.CurrentDocID()
			found = true
		}
	}
	if !found {
		s.atEnd = true
		return
	}
	s.curDoc = least
	s.curWeight = 0
	var posSet = map[int]bool{}
	for _, c := range s.children {
		if !c.AtEnd() && c.CurrentDocID() == least {
			s.curWeight += c.CurrentWeight()
			for _, p := range c.Positions() {
				posSet[p] = true
			}
		}
	}
	if len(posSet) > 0 {
		pos := make([]int, 0, len(posSet))
		for p := range posSet {
			pos = append(pos, p)
		}
		sort.Ints(pos)
		s.curPos = pos
	} else {
		s.curPos = nil
	}
}

func (s *SynonymSource) CurrentDocID() DocID { return s.curDoc }

func (s *SynonymSource) AdvanceTo(target DocID) {
	if s.atEnd || target <= s.curDoc {
		return
	}
	for _, c := range s.children {
		if !c.AtEnd() {
			c.AdvanceTo(target)
		}
	}
	s.settle()
}

func (s *SynonymSource) AtEnd() bool { return s.atEnd }

func (s *SynonymSource) CurrentWeight() float64 { return s.curWeight }

func (s *SynonymSource) Positions() []int { return s.curPos }

func (s *SynonymSource) TermFreqMin() int {
	m := 0
	for _, c := range s.children {
		if v := c.TermFreqMin(); v > m {
			m = v
		}
	}
	return m
}

func (s *SynonymSource) TermFreqMax() int {
	sum := 0
	for _, c := range s.children {
		sum += c.TermFreqMax()
	}
	if sum > int(s.rangeMax) {
		return int(s.rangeMax)
	}
	return sum
}

func (s *SynonymSource) TermFreqEst() int {
	n := float64(s.rangeMax)
	if n <= 0 {
		return 0
	}
	remaining := 1.0
	for _, c := range s.children {
		remaining *= 1.0 - float64(c.TermFreqEst())/n
	}
	return int(n * (1.0 - remaining))
}

func (s *SynonymSource) DocIDRangeMin() DocID {
	min := DocID(0)
	found := false
	for _, c := range s.children {
		if !found || c.DocIDRangeMin() < min {
			min = c.DocIDRangeMin()
			found = true
		}
	}
	return min
}

func (s *SynonymSource) DocIDRangeMax() DocID { return s.rangeMax }
