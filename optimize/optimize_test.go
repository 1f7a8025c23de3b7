package optimize

import (
	"testing"

	"github.com/IMQS/qalgebra/expand"
	"github.com/IMQS/qalgebra/posting"
	"github.com/IMQS/qalgebra/query"
)

// fakeEnv is a minimal Environment backed by in-memory maps, enough to
// drive the collapse and expansion rules under test.
type fakeEnv struct {
	postings   map[string][]posting.Entry
	valueRange map[string][]posting.DocID
	dict       expand.Dictionary
	cache      *expand.Cache
}

func (f *fakeEnv) TermPostings(term string) posting.Source {
	return posting.NewTermSource(f.postings[term], 1000)
}

func (f *fakeEnv) ValueRangePostings(slot int, lo, hi string) posting.Source {
	key := lo + ".." + hi
	return posting.NewValueRangeSource(f.valueRange[key], 1000)
}

func (f *fakeEnv) Dictionary() expand.Dictionary { return f.dict }
func (f *fakeEnv) Cache() *expand.Cache          { return f.cache }

func TestTermEmptinessCollapses(t *testing.T) {
	env := &fakeEnv{postings: map[string][]posting.Entry{
		"present": {{Doc: 1, Positions: []int{0}, Weight: 1}},
	}}
	q := query.TermDefault("absent")
	out, err := Optimise(q, env)
	if err != nil {
		t.Fatal(err)
	}
	if out.Kind() != query.KindMatchNothing {
		t.Fatalf("expected MatchNothing, got %s", query.Describe(out))
	}

	q2 := query.TermDefault("present")
	out2, err := Optimise(q2, env)
	if err != nil {
		t.Fatal(err)
	}
	if out2.Kind() != query.KindTerm {
		t.Fatalf("expected Term to survive, got %s", query.Describe(out2))
	}
}

func TestAndFlattensNestedSameOp(t *testing.T) {
	a, b, c := query.TermDefault("a"), query.TermDefault("b"), query.TermDefault("c")
	inner := query.And(a, b)
	outer := query.And(inner, c)
	out, err := Optimise(outer, nil)
	if err != nil {
		t.Fatal(err)
	}
	if out.NumSubqueries() != 3 {
		t.Fatalf("expected flattened 3-way AND, got %d children: %s", out.NumSubqueries(), query.Describe(out))
	}
}

func TestAndNotNeverFlattenedIntoSurroundingAnd(t *testing.T) {
	phrase, _ := query.PhraseN([]query.Query{query.TermDefault("a"), query.TermDefault("b")}, 0)
	x := query.TermDefault("x")
	c := query.TermDefault("c")
	notted := query.AndNot(phrase, x)
	outer := query.And(notted, c)
	out, err := Optimise(outer, nil)
	if err != nil {
		t.Fatal(err)
	}
	if out.NumSubqueries() != 2 {
		t.Fatalf("AND_NOT subtree must not be absorbed into the AND: %s", query.Describe(out))
	}
	if out.Subquery(0).Op() != query.OpAndNot {
		t.Fatalf("expected AND_NOT preserved as a single child, got %s", query.Describe(out))
	}
}

func TestScaleCompositionMultipliesFactors(t *testing.T) {
	inner, _ := query.Scale(2.0, query.TermDefault("t"))
	outer, _ := query.Scale(3.0, inner)
	out, err := Optimise(outer, nil)
	if err != nil {
		t.Fatal(err)
	}
	if out.Op() != query.OpScaleWeight || out.Factor() != 6.0 {
		t.Fatalf("expected composed SCALE_WEIGHT of 6, got %s", query.Describe(out))
	}
}

func TestPhraseWindowPreservedAcrossOptimise(t *testing.T) {
	p, _ := query.PhraseN([]query.Query{query.TermDefault("a"), query.TermDefault("b")}, 5)
	out, err := Optimise(p, nil)
	if err != nil {
		t.Fatal(err)
	}
	if out.Window() != 5 {
		t.Fatalf("expected window 5 preserved, got %d", out.Window())
	}
	if out.NumSubqueries() != 2 {
		t.Fatalf("PHRASE children must not be flattened or dropped, got %d", out.NumSubqueries())
	}
}
