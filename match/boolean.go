package match

import (
	"sort"

	"github.com/IMQS/qalgebra/posting"
)

// andSource intersects its children: a document matches only when
// every child is currently positioned there.
type andSource struct {
	children []posting.Source
	atEnd    bool
	curDoc   posting.DocID
}

func newAndSource(children []posting.Source) *andSource {
	a := &andSource{children: children}
	a.settle()
	return a
}

func (a *andSource) settle() {
	if a.atEnd {
		return
	}
	for _, c := range a.children {
		if c.AtEnd() {
			a.atEnd = true
			return
		}
	}
	for {
		max := posting.DocID(0)
		for _, c := range a.children {
			if c.CurrentDocID() > max {
				max = c.CurrentDocID()
			}
		}
		aligned := true
		for _, c := range a.children {
			if c.CurrentDocID() != max {
				aligned = false
				c.AdvanceTo(max)
				if c.AtEnd() {
					a.atEnd = true
					return
				}
			}
		}
		if aligned {
			a.curDoc = max
			return
		}
	}
}

func (a *andSource) CurrentDocID() posting.DocID { return a.curDoc }

func (a *andSource) AdvanceTo(target posting.DocID) {
	if a.atEnd || target <= a.curDoc {
		return
	}
	for _, c := range a.children {
		c.AdvanceTo(target)
	}
	a.settle()
}

func (a *andSource) AtEnd() bool { return a.atEnd }

func (a *andSource) CurrentWeight() float64 {
	sum := 0.0
	for _, c := range a.children {
		sum += c.CurrentWeight()
	}
	return sum
}

func (a *andSource) Positions() []int { return nil }

func (a *andSource) TermFreqMin() int {
	m := -1
	for _, c := range a.children {
		if m < 0 || c.TermFreqMin() < m {
			m = c.TermFreqMin()
		}
	}
	if m < 0 {
		m = 0
	}
	return m
}

func (a *andSource) TermFreqMax() int {
	m := -1
	for _, c := range a.children {
		if m < 0 || c.TermFreqMax() < m {
			m = c.TermFreqMax()
		}
	}
	if m < 0 {
		m = 0
	}
	return m
}

func (a *andSource) TermFreqEst() int {
	m := a.TermFreqMax()
	for _, c := range a.children {
		if c.TermFreqEst() < m {
			m = c.TermFreqEst()
		}
	}
	return m
}

func (a *andSource) DocIDRangeMin() posting.DocID {
	max := posting.DocID(0)
	for _, c := range a.children {
		if c.DocIDRangeMin() > max {
			max = c.DocIDRangeMin()
		}
	}
	return max
}

func (a *andSource) DocIDRangeMax() posting.DocID {
	min := posting.DocID(0)
	found := false
	for _, c := range a.children {
		if !found || c.DocIDRangeMax() < min {
			min = c.DocIDRangeMax()
			found = true
		}
	}
	return min
}

// orSource unions its children: a document matches if any child does;
// weight is the sum over the children currently matching it. This is
// a true k-way merge - every child at the minimum current docid
// contributes, not just the first one found (boolorbug1: a naive
// "first matching child wins" union silently drops weight from, and
// can mis-rank, documents matched by more than one child).
type orSource struct {
	children []posting.Source
	atEnd    bool
	curDoc   posting.DocID
	atMin    []posting.Source
}

func newOrSource(children []posting.Source) *orSource {
	o := &orSource{children: children}
	o.settle()
	return o
}

func (o *orSource) settle() {
	least := posting.DocID(0)
	found := false
	for _, c := range o.children {
		if c.AtEnd() {
			continue
		}
		if !found || c.CurrentDocID() < least {
			least = c.CurrentDocID()
			found = true
		}
	}
	if !found {
		o.atEnd = true
		o.atMin = nil
		return
	}
	o.curDoc = least
	o.atMin = o.atMin[:0]
	for _, c := range o.children {
		if !c.AtEnd() && c.CurrentDocID() == least {
			o.atMin = append(o.atMin, c)
		}
	}
}

func (o *orSource) CurrentDocID() posting.DocID { return o.curDoc }

func (o *orSource) AdvanceTo(target posting.DocID) {
	if o.atEnd || target <= o.curDoc {
		return
	}
	for _, c := range o.children {
		if !c.AtEnd() {
			c.AdvanceTo(target)
		}
	}
	o.settle()
}

func (o *orSource) AtEnd() bool { return o.atEnd }

func (o *orSource) CurrentWeight() float64 {
	sum := 0.0
	for _, c := range o.atMin {
		sum += c.CurrentWeight()
	}
	return sum
}

// Positions returns the sorted union of positions of whichever
// children are currently at the minimum docid - needed so a PHRASE/
// NEAR child that is itself an OR of terms (complexphrase3) still
// reports a usable position list for its slot.
func (o *orSource) Positions() []int {
	if len(o.atMin) == 1 {
		return o.atMin[0].Positions()
	}
	seen := map[int]bool{}
	for _, c := range o.atMin {
		for _, p := range c.Positions() {
			seen[p] = true
		}
	}
	if len(seen) == 0 {
		return nil
	}
	out := make([]int, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

func (o *orSource) TermFreqMin() int {
	m := 0
	for _, c := range o.children {
		if c.TermFreqMin() > m {
			m = c.TermFreqMin()
		}
	}
	return m
}

func (o *orSource) TermFreqMax() int {
	sum := 0
	for _, c := range o.children {
		sum += c.TermFreqMax()
	}
	max := o.DocIDRangeMax()
	if posting.DocID(sum) > max && max > 0 {
		return int(max)
	}
	return sum
}

func (o *orSource) TermFreqEst() int {
	n := float64(o.DocIDRangeMax())
	if n <= 0 {
		sum := 0
		for _, c := range o.children {
			sum += c.TermFreqEst()
		}
		return sum
	}
	remaining := 1.0
	for _, c := range o.children {
		remaining *= 1.0 - float64(c.TermFreqEst())/n
	}
	return int(n * (1.0 - remaining))
}

func (o *orSource) DocIDRangeMin() posting.DocID {
	min := posting.DocID(0)
	found := false
	for _, c := range o.children {
		if !found || c.DocIDRangeMin() < min {
			min = c.DocIDRangeMin()
			found = true
		}
	}
	return min
}

func (o *orSource) DocIDRangeMax() posting.DocID {
	max := posting.DocID(0)
	for _, c := range o.children {
		if c.DocIDRangeMax() > max {
			max = c.DocIDRangeMax()
		}
	}
	return max
}

// xorSource matches a document iff an odd number of children match it.
type xorSource struct {
	children []posting.Source
	atEnd    bool
	curDoc   posting.DocID
	atMin    []posting.Source
}

func newXorSource(children []posting.Source) *xorSource {
	x := &xorSource{children: children}
	x.advance()
	return x
}

// advance moves to the next docid where an odd number of children
// coincide, starting from the current position (inclusive).
func (x *xorSource) advance() {
	for {
		least := posting.DocID(0)
		found := false
		for _, c := range x.children {
			if c.AtEnd() {
				continue
			}
			if !found || c.CurrentDocID() < least {
				least = c.CurrentDocID()
				found = true
			}
		}
		if !found {
			x.atEnd = true
			x.atMin = nil
			return
		}
		var at []posting.Source
		for _, c := range x.children {
			if !c.AtEnd() && c.CurrentDocID() == least {
				at = append(at, c)
			}
		}
		if len(at)%2 == 1 {
			x.curDoc = least
			x.atMin = at
			return
		}
		for _, c := range at {
			c.AdvanceTo(least + 1)
		}
	}
}

func (x *xorSource) CurrentDocID() posting.DocID { return x.curDoc }

func (x *xorSource) AdvanceTo(target posting.DocID) {
	if x.atEnd || target <= x.curDoc {
		return
	}
	for _, c := range x.children {
		if !c.AtEnd() {
			c.AdvanceTo(target)
		}
	}
	x.advance()
}

func (x *xorSource) AtEnd() bool { return x.atEnd }

func (x *xorSource) CurrentWeight() float64 {
	sum := 0.0
	for _, c := range x.atMin {
		sum += c.CurrentWeight()
	}
	return sum
}

func (x *xorSource) Positions() []int { return nil }

func (x *xorSource) TermFreqMin() int { return 0 }

func (x *xorSource) TermFreqMax() int {
	sum := 0
	for _, c := range x.children {
		sum += c.TermFreqMax()
	}
	return sum
}

func (x *xorSource) TermFreqEst() int {
	sum := 0
	for _, c := range x.children {
		sum += c.TermFreqEst()
	}
	n := int(x.DocIDRangeMax())
	if n > 0 && sum > n {
		return n
	}
	return sum
}

func (x *xorSource) DocIDRangeMin() posting.DocID {
	min := posting.DocID(0)
	found := false
	for _, c := range x.children {
		if !found || c.DocIDRangeMin() < min {
			min = c.DocIDRangeMin()
			found = true
		}
	}
	return min
}

func (x *xorSource) DocIDRangeMax() posting.DocID {
	max := posting.DocID(0)
	for _, c := range x.children {
		if c.DocIDRangeMax() > max {
			max = c.DocIDRangeMax()
		}
	}
	return max
}

// andNotSource matches documents in left but not in right; weight
// comes from left alone.
type andNotSource struct {
	left, right posting.Source
}

func newAndNotSource(left, right posting.Source) *andNotSource {
	a := &andNotSource{left: left, right: right}
	a.skipRight()
	return a
}

func (a *andNotSource) skipRight() {
	for !a.left.AtEnd() && !a.right.AtEnd() && a.right.CurrentDocID() < a.left.CurrentDocID() {
		a.right.AdvanceTo(a.left.CurrentDocID())
	}
	for !a.left.AtEnd() && !a.right.AtEnd() && a.right.CurrentDocID() == a.left.CurrentDocID() {
		a.left.AdvanceTo(a.left.CurrentDocID() + 1)
		for !a.left.AtEnd() && !a.right.AtEnd() && a.right.CurrentDocID() < a.left.CurrentDocID() {
			a.right.AdvanceTo(a.left.CurrentDocID())
		}
	}
}

func (a *andNotSource) CurrentDocID() posting.DocID { return a.left.CurrentDocID() }

func (a *andNotSource) AdvanceTo(target posting.DocID) {
	if a.left.AtEnd() {
		return
	}
	a.left.AdvanceTo(target)
	a.skipRight()
}

func (a *andNotSource) AtEnd() bool { return a.left.AtEnd() }

func (a *andNotSource) CurrentWeight() float64 { return a.left.CurrentWeight() }
func (a *andNotSource) Positions() []int       { return a.left.Positions() }

func (a *andNotSource) TermFreqMin() int {
	m := a.left.TermFreqMin() - a.right.TermFreqMax()
	if m < 0 {
		m = 0
	}
	return m
}
func (a *andNotSource) TermFreqMax() int { return a.left.TermFreqMax() }
func (a *andNotSource) TermFreqEst() int {
	m := a.left.TermFreqEst() - a.right.TermFreqEst()
	if m < 0 {
		m = 0
	}
	return m
}

func (a *andNotSource) DocIDRangeMin() posting.DocID { return a.left.DocIDRangeMin() }
func (a *andNotSource) DocIDRangeMax() posting.DocID { return a.left.DocIDRangeMax() }

// andMaybeSource always matches what left matches; right only adds
// weight when it also matches, never restricts.
type andMaybeSource struct {
	left, right posting.Source
}

func newAndMaybeSource(left, right posting.Source) *andMaybeSource {
	a := &andMaybeSource{left: left, right: right}
	if !a.left.AtEnd() && !a.right.AtEnd() {
		a.right.AdvanceTo(a.left.CurrentDocID())
	}
	return a
}

func (a *andMaybeSource) CurrentDocID() posting.DocID { return a.left.CurrentDocID() }

func (a *andMaybeSource) AdvanceTo(target posting.DocID) {
	a.left.AdvanceTo(target)
	if !a.right.AtEnd() {
		a.right.AdvanceTo(a.left.CurrentDocID())
	}
}

func (a *andMaybeSource) AtEnd() bool { return a.left.AtEnd() }

func (a *andMaybeSource) CurrentWeight() float64 {
	w := a.left.CurrentWeight()
	if !a.right.AtEnd() && a.right.CurrentDocID() == a.left.CurrentDocID() {
		w += a.right.CurrentWeight()
	}
	return w
}

func (a *andMaybeSource) Positions() []int { return a.left.Positions() }

func (a *andMaybeSource) TermFreqMin() int { return a.left.TermFreqMin() }
func (a *andMaybeSource) TermFreqMax() int { return a.left.TermFreqMax() }
func (a *andMaybeSource) TermFreqEst() int { return a.left.TermFreqEst() }

func (a *andMaybeSource) DocIDRangeMin() posting.DocID { return a.left.DocIDRangeMin() }
func (a *andMaybeSource) DocIDRangeMax() posting.DocID { return a.left.DocIDRangeMax() }

// filterSource restricts left to right's docid set; weight comes from
// left alone and right contributes nothing to it.
type filterSource struct {
	*andSource
	left posting.Source
}

func newFilterSource(left, right posting.Source) *filterSource {
	inner := newAndSource([]posting.Source{left, right})
	return &filterSource{andSource: inner, left: left}
}

func (f *filterSource) CurrentWeight() float64 {
	if f.atEnd {
		return 0
	}
	return f.left.CurrentWeight()
}

func (f *filterSource) Positions() []int {
	if f.atEnd {
		return nil
	}
	return f.left.Positions()
}
