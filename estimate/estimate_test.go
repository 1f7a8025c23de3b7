package estimate

import (
	"testing"

	"github.com/IMQS/qalgebra/query"
)

type fakeEnv struct {
	n      int
	terms  map[string][3]int
	avgLen float64
}

func (f *fakeEnv) TermBounds(term string) (int, int, int) {
	b := f.terms[term]
	return b[0], b[1], b[2]
}
func (f *fakeEnv) PostingSourceBounds(interface{}) (int, int, int) { return 0, 0, 0 }
func (f *fakeEnv) ValueRangeBounds(slot int, lo, hi string) (int, int, int) { return 0, 0, 0 }
func (f *fakeEnv) CollectionSize() int                                     { return f.n }
func (f *fakeEnv) AverageDocumentLength() float64                          { return f.avgLen }

func TestZeroCollectionNeverDividesByZero(t *testing.T) {
	env := &fakeEnv{n: 0, terms: map[string][3]int{"a": {0, 0, 0}, "b": {0, 0, 0}}}
	q := query.And(query.TermDefault("a"), query.TermDefault("b"))
	b, err := Estimate(q, env)
	if err != nil {
		t.Fatal(err)
	}
	if b.Min != 0 || b.Est != 0 || b.Max != 0 {
		t.Fatalf("expected all-zero bounds on an empty collection, got %+v", b)
	}

	orQ := query.Or(query.TermDefault("a"), query.TermDefault("b"))
	b2, err := Estimate(orQ, env)
	if err != nil {
		t.Fatal(err)
	}
	if b2.Min != 0 || b2.Est != 0 || b2.Max != 0 {
		t.Fatalf("expected all-zero OR bounds on an empty collection, got %+v", b2)
	}
}

func TestXorAllFullEvenCountIsZero(t *testing.T) {
	env := &fakeEnv{n: 100, terms: map[string][3]int{
		"a": {100, 100, 100},
		"b": {100, 100, 100},
	}}
	q, _ := query.XorN([]query.Query{query.TermDefault("a"), query.TermDefault("b")})
	b, err := Estimate(q, env)
	if err != nil {
		t.Fatal(err)
	}
	if b.Est != 0 {
		t.Fatalf("XOR of two full children (even count) must estimate 0 matches, got %+v", b)
	}
}

func TestXorAllFullOddCountIsN(t *testing.T) {
	env := &fakeEnv{n: 100, terms: map[string][3]int{
		"a": {100, 100, 100},
		"b": {100, 100, 100},
		"c": {100, 100, 100},
	}}
	q, _ := query.XorN([]query.Query{query.TermDefault("a"), query.TermDefault("b"), query.TermDefault("c")})
	b, err := Estimate(q, env)
	if err != nil {
		t.Fatal(err)
	}
	if b.Est != 100 {
		t.Fatalf("XOR of three full children (odd count) must estimate all N matches, got %+v", b)
	}
}

func TestAndNotMaxNeverExceedsLeft(t *testing.T) {
	env := &fakeEnv{n: 1000, terms: map[string][3]int{
		"a": {10, 10, 10},
		"b": {900, 900, 900},
	}}
	q := query.AndNot(query.TermDefault("a"), query.TermDefault("b"))
	b, err := Estimate(q, env)
	if err != nil {
		t.Fatal(err)
	}
	if b.Max != 10 {
		t.Fatalf("AND_NOT max must equal left's max, got %+v", b)
	}
	if b.Min != 0 {
		t.Fatalf("expected min 0 (right could cover all of left), got %+v", b)
	}
}

func TestPhraseMaxBoundedByRarestChildMin(t *testing.T) {
	env := &fakeEnv{n: 1000, avgLen: 100, terms: map[string][3]int{
		"a": {5, 5, 5},
		"b": {500, 500, 500},
	}}
	p, _ := query.PhraseN([]query.Query{query.TermDefault("a"), query.TermDefault("b")}, 3)
	b, err := Estimate(p, env)
	if err != nil {
		t.Fatal(err)
	}
	if b.Max != 5 {
		t.Fatalf("expected PHRASE max bounded by rarest child's min (5), got %+v", b)
	}
}
