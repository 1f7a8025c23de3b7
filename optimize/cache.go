package optimize

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pierrec/xxHash/xxHash32"

	"github.com/IMQS/qalgebra/query"
)

// Cache memoises Optimise results keyed by a structural hash of the
// input tree, the same shape as expand's per-shard candidate cache:
// an LRU of a fixed size, keyed by an xxHash32 digest rather than the
// tree itself, since repeated identical subtrees are common across a
// batch of related queries (the same filter clause appended to many
// searches) and re-running the fixpoint rewrite loop on them is pure
// waste.
type Cache struct {
	cache *lru.Cache
}

// NewCache builds an optimiser cache holding up to size distinct
// optimised trees.
func NewCache(size int) *Cache {
	c, err := lru.New(size)
	if err != nil {
		// Only returns an error for a non-positive size, which we
		// never pass.
		panic(err)
	}
	return &Cache{cache: c}
}

type cachedResult struct {
	q   query.Query
	err error
}

// OptimiseCached behaves exactly as Optimise, but consults cache first
// and stores the result under the input tree's structural hash.
func OptimiseCached(q query.Query, env Environment, cache *Cache) (query.Query, error) {
	if cache == nil {
		return Optimise(q, env)
	}
	key := structuralHash(q)
	if v, ok := cache.cache.Get(key); ok {
		r := v.(cachedResult)
		return r.q, r.err
	}
	out, err := Optimise(q, env)
	cache.cache.Add(key, cachedResult{q: out, err: err})
	return out, err
}

// structuralHash walks q and digests every field Optimise's behaviour
// can depend on - not just the shape Describe prints, but also a
// Term's wqf/position and a wildcard's limit policy, since two leaves
// that describe identically can still carry different weighting or
// expansion metadata that must not collide in the cache.
func structuralHash(q query.Query) uint32 {
	var b strings.Builder
	writeHashable(&b, q)
	return xxHash32.Checksum([]byte(b.String()), 0)
}

func writeHashable(b *strings.Builder, q query.Query) {
	fmt.Fprintf(b, "%d|", q.Kind())
	switch q.Kind() {
	case query.KindTerm:
		fmt.Fprintf(b, "%q,%d,%d", q.LeafTerm(), q.LeafWqf(), q.LeafPosition())
	case query.KindWildcard:
		fmt.Fprintf(b, "%q,%d,%d,%d,%d", q.WildcardPattern(), q.MaxExpansion(), q.Policy(), q.Combiner(), q.Flags())
	case query.KindEditDistance:
		fmt.Fprintf(b, "%q,%d,%d,%d,%d,%d", q.EditDistanceTarget(), q.EditDistance(), q.FixedPrefixLen(), q.MaxExpansion(), q.Policy(), q.Combiner())
	case query.KindPostingSource:
		fmt.Fprintf(b, "%p", q.PostingSource())
	case query.KindCompound:
		fmt.Fprintf(b, "%d,%g,%d,%d", q.Op(), q.Factor(), q.Window(), q.EliteK())
		fmt.Fprintf(b, "%d,%q,%q", q.ValueSlot(), q.ValueLo(), q.ValueHi())
		n := q.NumSubqueries()
		fmt.Fprintf(b, "[%d]", n)
		for i := 0; i < n; i++ {
			b.WriteByte('(')
			writeHashable(b, q.Subquery(i))
			b.WriteByte(')')
		}
	}
}
