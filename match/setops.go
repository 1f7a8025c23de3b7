package match

import "github.com/IMQS/qalgebra/posting"

// maxSource unions its children like OR, but reports the single
// highest child weight at each matching document instead of the sum -
// approximating "the best of several ways to match" rather than
// accumulating them.
type maxSource struct {
	*orSource
}

func newMaxSource(children []posting.Source) *maxSource {
	return &maxSource{orSource: newOrSource(children)}
}

func (m *maxSource) CurrentWeight() float64 {
	best := 0.0
	first := true
	for _, c := range m.atMin {
		w := c.CurrentWeight()
		if first || w > best {
			best = w
			first = false
		}
	}
	return best
}

// eliteSetSource restricts matching to the k children with the
// highest upper-bound weight (TermFreqMax used as a proxy in the
// absence of a tighter per-child weight bound), then behaves like OR
// over exactly those - an approximation of OR that trades recall for
// not having to score every child.
type eliteSetSource struct {
	*orSource
}

func newEliteSetSource(k int, children []posting.Source) *eliteSetSource {
	if k > 0 && k < len(children) {
		type scored struct {
			src   posting.Source
			bound int
		}
		scoredChildren := make([]scored, len(children))
		for i, c := range children {
			scoredChildren[i] = scored{src: c, bound: c.TermFreqMax()}
		}
		// Simple selection of the k highest bounds; k and the child
		// count are both small in practice (query-sized, not corpus-sized).
		for i := 0; i < k; i++ {
			max := i
			for j := i + 1; j < len(scoredChildren); j++ {
				if scoredChildren[j].bound > scoredChildren[max].bound {
					max = j
				}
			}
			scoredChildren[i], scoredChildren[max] = scoredChildren[max], scoredChildren[i]
		}
		selected := make([]posting.Source, k)
		for i := 0; i < k; i++ {
			selected[i] = scoredChildren[i].src
		}
		children = selected
	}
	return &eliteSetSource{orSource: newOrSource(children)}
}
