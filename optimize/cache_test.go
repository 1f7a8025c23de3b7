package optimize

import (
	"testing"

	"github.com/IMQS/qalgebra/query"
)

func TestOptimiseCachedReturnsEquivalentTreeOnHit(t *testing.T) {
	cache := NewCache(8)

	q := query.And(query.TermDefault("hack"), query.TermDefault("which"))

	first, err := OptimiseCached(q, nil, cache)
	if err != nil {
		t.Fatal(err)
	}
	second, err := OptimiseCached(q, nil, cache)
	if err != nil {
		t.Fatal(err)
	}
	if query.Describe(first) != query.Describe(second) {
		t.Fatalf("cached result diverged: %q vs %q", query.Describe(first), query.Describe(second))
	}
}

func TestOptimiseCachedDistinguishesDifferentWqf(t *testing.T) {
	cache := NewCache(8)

	a := query.Term("hack", 1, 0)
	b := query.Term("hack", 5, 0)

	if structuralHash(a) == structuralHash(b) {
		t.Fatalf("expected different wqf to hash differently")
	}

	outA, err := OptimiseCached(a, nil, cache)
	if err != nil {
		t.Fatal(err)
	}
	outB, err := OptimiseCached(b, nil, cache)
	if err != nil {
		t.Fatal(err)
	}
	if outA.LeafWqf() == outB.LeafWqf() {
		t.Fatalf("expected distinct wqf to survive the cache, both got %d", outA.LeafWqf())
	}
}
