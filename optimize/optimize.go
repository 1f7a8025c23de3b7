package optimize

import "github.com/IMQS/qalgebra/query"

// Optimise rewrites q into an equivalent tree - same matching docid set
// and relative weight ordering - that the matcher can evaluate more
// cheaply. It is idempotent: Optimise(Optimise(q, env), env) always
// produces a tree description()-identical to Optimise(q, env).
//
// env may be nil, in which case term/value-range emptiness collapse
// (rule 4) and wildcard/edit-distance expansion are skipped and the
// tree is rewritten using only construction-time identities plus
// associative flattening (rule 2).
func Optimise(q query.Query, env Environment) (query.Query, error) {
	switch q.Kind() {
	case query.KindMatchAll, query.KindMatchNothing, query.KindPostingSource:
		return q, nil

	case query.KindTerm:
		if env != nil {
			if src := env.TermPostings(q.LeafTerm()); src != nil && src.AtEnd() {
				return query.MatchNothing(), nil
			}
		}
		return q, nil

	case query.KindWildcard:
		if env == nil {
			return q, nil
		}
		expanded, err := expandWildcard(q, env)
		if err != nil {
			return query.Query{}, err
		}
		return Optimise(expanded, env)

	case query.KindEditDistance:
		if env == nil {
			return q, nil
		}
		expanded, err := expandEditDistance(q, env)
		if err != nil {
			return query.Query{}, err
		}
		return Optimise(expanded, env)

	case query.KindCompound:
		return optimiseCompound(q, env)
	}
	return q, nil
}

func optimiseCompound(q query.Query, env Environment) (query.Query, error) {
	op := q.Op()

	// VALUE_GE/VALUE_LE/VALUE_RANGE are leaf-like compounds: no
	// children to recurse into, just an emptiness check against env.
	switch op {
	case query.OpValueGE:
		if env != nil {
			if src := env.ValueRangePostings(q.ValueSlot(), q.ValueLo(), ""); src != nil && src.AtEnd() {
				return query.MatchNothing(), nil
			}
		}
		return q, nil
	case query.OpValueLE:
		if env != nil {
			if src := env.ValueRangePostings(q.ValueSlot(), "", q.ValueHi()); src != nil && src.AtEnd() {
				return query.MatchNothing(), nil
			}
		}
		return q, nil
	case query.OpValueRange:
		if env != nil {
			if src := env.ValueRangePostings(q.ValueSlot(), q.ValueLo(), q.ValueHi()); src != nil && src.AtEnd() {
				return query.MatchNothing(), nil
			}
		}
		return q, nil
	}

	n := q.NumSubqueries()
	children := make([]query.Query, n)
	for i := 0; i < n; i++ {
		c, err := Optimise(q.Subquery(i), env)
		if err != nil {
			return query.Query{}, err
		}
		children[i] = c
	}

	switch op {
	case query.OpAnd:
		return accumulateN(flattenAssoc(children, query.OpAnd), (*query.Query).AndAssign)
	case query.OpOr:
		return accumulateN(flattenAssoc(children, query.OpOr), (*query.Query).OrAssign)
	case query.OpXor:
		return accumulateN(flattenAssoc(children, query.OpXor), (*query.Query).XorAssign)

	case query.OpAndNot:
		return query.AndNot(children[0], children[1]), nil
	case query.OpAndMaybe:
		return query.AndMaybe(children[0], children[1]), nil
	case query.OpFilter:
		return query.Filter(children[0], children[1]), nil

	case query.OpScaleWeight:
		return query.Scale(q.Factor(), children[0])

	case query.OpPhrase:
		// Children are position slots, not associative operands: never
		// flattened, never dropped, count preserved exactly.
		return query.PhraseN(children, q.Window())
	case query.OpNear:
		return query.NearN(children, q.Window())

	case query.OpSynonym:
		return query.SynonymN(children)
	case query.OpMax:
		return query.MaxN(children)
	case query.OpEliteSet:
		return query.EliteSetN(q.EliteK(), children)
	}
	return q, nil
}

// flattenAssoc splices any direct child that is itself a compound of
// the same associative op into the returned slice, one level deep.
// Children were already optimised bottom-up, so their own same-op
// nesting was already flattened at their level - one pass here reaches
// the overall fixpoint. Never called for PHRASE/NEAR/SYNONYM/MAX/
// ELITE_SET/AND_NOT/AND_MAYBE/FILTER/SCALE_WEIGHT/VALUE_*, so AND_NOT's
// operands are never pulled up into a surrounding AND (hoistnotbug1).
// accumulateN folds children left to right through assign (one of the
// query accumulator methods): the MatchAll/MatchNothing identities still
// apply, and surviving operands are appended to a single n-ary node
// rather than nested pairwise. After flattenAssoc no child is a
// compound of the same op, so the first fold builds a fresh node and
// no shared node is appended to.
func accumulateN(children []query.Query, assign func(*query.Query, query.Query)) (query.Query, error) {
	if len(children) == 0 {
		return query.Query{}, query.ErrInvalidArgument
	}
	acc := children[0]
	for _, c := range children[1:] {
		assign(&acc, c)
	}
	return acc, nil
}

func flattenAssoc(children []query.Query, op query.Op) []query.Query {
	out := make([]query.Query, 0, len(children))
	for _, c := range children {
		if c.Kind() == query.KindCompound && c.Op() == op {
			for i := 0; i < c.NumSubqueries(); i++ {
				out = append(out, c.Subquery(i))
			}
			continue
		}
		out = append(out, c)
	}
	return out
}
