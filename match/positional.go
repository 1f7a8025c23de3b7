package match

import (
	"sort"

	"github.com/IMQS/qalgebra/posting"
)

// phraseSource evaluates PHRASE(window): documents where the inner
// AND intersection holds *and* each child's positions can be picked,
// in child order, as a strictly increasing subsequence whose last and
// first positions differ by less than window (so the picks fit in window
// consecutive positions). NEAR reuses the same type with ordered=false,
// using a span-only (order-independent) check instead.
type phraseSource struct {
	inner    *andSource
	children []posting.Source
	window   int
	ordered  bool
}

func newPhraseSource(children []posting.Source, window int) *phraseSource {
	p := &phraseSource{inner: newAndSource(children), children: children, window: window, ordered: true}
	p.skipToValid()
	return p
}

func newNearSource(children []posting.Source, window int) *phraseSource {
	p := &phraseSource{inner: newAndSource(children), children: children, window: window, ordered: false}
	p.skipToValid()
	return p
}

func (p *phraseSource) skipToValid() {
	for !p.inner.AtEnd() {
		positions := make([][]int, len(p.children))
		for i, c := range p.children {
			positions[i] = c.Positions()
		}
		var ok bool
		if p.ordered {
			ok = phraseSpanOK(positions, p.window)
		} else {
			ok = nearSpanOK(positions, p.window)
		}
		if ok {
			return
		}
		p.inner.AdvanceTo(p.inner.CurrentDocID() + 1)
	}
}

func (p *phraseSource) CurrentDocID() posting.DocID { return p.inner.CurrentDocID() }

func (p *phraseSource) AdvanceTo(target posting.DocID) {
	p.inner.AdvanceTo(target)
	p.skipToValid()
}

func (p *phraseSource) AtEnd() bool { return p.inner.AtEnd() }

func (p *phraseSource) CurrentWeight() float64 { return p.inner.CurrentWeight() }

func (p *phraseSource) Positions() []int {
	seen := map[int]bool{}
	for _, c := range p.children {
		for _, x := range c.Positions() {
			seen[x] = true
		}
	}
	out := make([]int, 0, len(seen))
	for x := range seen {
		out = append(out, x)
	}
	sort.Ints(out)
	return out
}

func (p *phraseSource) TermFreqMin() int              { return p.inner.TermFreqMin() }
func (p *phraseSource) TermFreqEst() int              { return p.inner.TermFreqEst() }
func (p *phraseSource) TermFreqMax() int              { return p.inner.TermFreqMax() }
func (p *phraseSource) DocIDRangeMin() posting.DocID  { return p.inner.DocIDRangeMin() }
func (p *phraseSource) DocIDRangeMax() posting.DocID  { return p.inner.DocIDRangeMax() }

// phraseSpanOK reports whether an ordered, strictly-increasing
// subsequence of one position per child (in child order) exists with
// span (last - first) < window. Each candidate start in the first
// child's own positions is tried; subsequent children greedily take
// their earliest position past the previous pick, which always finds
// the tightest-possible completion for that start.
func phraseSpanOK(childPositions [][]int, window int) bool {
	if len(childPositions) == 0 {
		return false
	}
	for _, start := range childPositions[0] {
		prev := start
		ok := true
		for i := 1; i < len(childPositions); i++ {
			next := firstGreaterThan(childPositions[i], prev)
			if next < 0 {
				ok = false
				break
			}
			prev = next
		}
		if ok && prev-start < window {
			return true
		}
	}
	return false
}

func firstGreaterThan(sorted []int, x int) int {
	for _, p := range sorted {
		if p > x {
			return p
		}
	}
	return -1
}

// nearSpanOK reports whether some window of positions covers at least
// one occurrence from every child with span < window, order
// irrelevant. It finds the minimum such span over the merged,
// sorted stream of (position, child) pairs - the standard
// minimum-window-covering-all-types sliding window - and compares
// that minimum to window.
func nearSpanOK(childPositions [][]int, window int) bool {
	n := len(childPositions)
	if n == 0 {
		return false
	}
	type pair struct {
		pos, child int
	}
	var all []pair
	for i, ps := range childPositions {
		for _, p := range ps {
			all = append(all, pair{pos: p, child: i})
		}
	}
	if len(all) == 0 {
		return false
	}
	sort.Slice(all, func(i, j int) bool { return all[i].pos < all[j].pos })

	count := make([]int, n)
	distinct := 0
	left := 0
	best := -1
	for right := range all {
		if count[all[right].child] == 0 {
			distinct++
		}
		count[all[right].child]++
		for distinct == n {
			span := all[right].pos - all[left].pos
			if best < 0 || span < best {
				best = span
			}
			count[all[left].child]--
			if count[all[left].child] == 0 {
				distinct--
			}
			left++
		}
	}
	return best >= 0 && best < window
}
