package query

import "sort"

// NumSubqueries returns the number of direct children of a compound
// node, or 0 for leaves.
func (q Query) NumSubqueries() int {
	if q.n.kind != KindCompound {
		return 0
	}
	return len(q.n.children)
}

// Subquery returns the i'th direct child of a compound node.
func (q Query) Subquery(i int) Query { return wrap(q.n.children[i]) }

// Op returns the compound operator; only valid when Kind() == KindCompound.
func (q Query) Op() Op { return q.n.op }

// Window returns the PHRASE/NEAR window size.
func (q Query) Window() int { return q.n.window }

// Factor returns the SCALE_WEIGHT multiplier.
func (q Query) Factor() float64 { return q.n.factor }

// EliteK returns the ELITE_SET cutoff.
func (q Query) EliteK() int { return q.n.eliteK }

// ValueSlot, ValueLo, ValueHi expose VALUE_GE/VALUE_LE/VALUE_RANGE parameters.
func (q Query) ValueSlot() int   { return q.n.slot }
func (q Query) ValueLo() string  { return q.n.lo }
func (q Query) ValueHi() string  { return q.n.hi }

// LeafTerm, LeafWqf, LeafPosition are only valid for Kind() == KindTerm.
func (q Query) LeafTerm() string  { return q.n.term }
func (q Query) LeafWqf() int      { return q.n.wqf }
func (q Query) LeafPosition() int { return q.n.position }

// PostingSource returns the opaque reference stored by PostingSourceRef.
func (q Query) PostingSource() interface{} { return q.n.source }

// WildcardPattern, EditDistanceTarget, MaxExpansion, Policy, Combiner,
// Flags, EditDistance, FixedPrefixLen expose Wildcard/EditDistance
// parameters.
func (q Query) WildcardPattern() string     { return q.n.pattern }
func (q Query) EditDistanceTarget() string  { return q.n.target }
func (q Query) MaxExpansion() int           { return q.n.maxExpansion }
func (q Query) Policy() LimitPolicy         { return q.n.limitPolicy }
func (q Query) Combiner() Op                { return q.n.combiner }
func (q Query) Flags() WildcardFlags        { return q.n.flags }
func (q Query) EditDistance() int           { return q.n.editDistance }
func (q Query) FixedPrefixLen() int         { return q.n.fixedPrefixLen }

// TermOccurrence is one yield from Terms(): a term string together with
// the wqf/position it carried at that occurrence.
type TermOccurrence struct {
	Term     string
	Wqf      int
	Position int
}

func isSyntheticLeaf(n *Node) bool {
	switch n.kind {
	case KindMatchAll, KindMatchNothing, KindPostingSource:
		return true
	}
	return false
}

// Terms returns every explicit leaf term in source order, duplicates
// preserved. MatchAll, MatchNothing, PostingSource leaves and empty
// strings are never yielded. Unexpanded Wildcard/EditDistance leaves
// carry no concrete term and are skipped too.
func (q Query) Terms() []TermOccurrence {
	var out []TermOccurrence
	var walk func(n *Node)
	walk = func(n *Node) {
		switch n.kind {
		case KindTerm:
			if n.term != "" {
				out = append(out, TermOccurrence{Term: n.term, Wqf: n.wqf, Position: n.position})
			}
		case KindCompound:
			for _, c := range n.children {
				walk(c)
			}
		default:
			// MatchAll, MatchNothing, PostingSource, Wildcard, EditDistance
		}
	}
	walk(q.n)
	return out
}

// UniqueTerms returns the deduplicated set of explicit leaf terms,
// sorted lexicographically by byte value.
func (q Query) UniqueTerms() []string {
	seen := map[string]bool{}
	for _, t := range q.Terms() {
		seen[t.Term] = true
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
