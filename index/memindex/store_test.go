package memindex

import (
	"testing"

	"github.com/IMQS/qalgebra/match"
	"github.com/IMQS/qalgebra/optimize"
	"github.com/IMQS/qalgebra/posting"
	"github.com/IMQS/qalgebra/query"
)

func buildStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(true)
	if err != nil {
		t.Fatal(err)
	}
	must := func(err error) {
		if err != nil {
			t.Fatal(err)
		}
	}
	must(s.AddTerm("hack", []posting.Entry{{Doc: 1, Positions: []int{0}, Weight: 1}, {Doc: 2, Positions: []int{3}, Weight: 1}}))
	must(s.AddTerm("which", []posting.Entry{{Doc: 1, Positions: []int{1}, Weight: 1}, {Doc: 3, Positions: []int{0}, Weight: 1}}))
	s.SetDocLength(1, 10)
	s.SetDocLength(2, 8)
	s.SetDocLength(3, 12)
	return s
}

func TestStoreRoundTripsCompressedPostings(t *testing.T) {
	s := buildStore(t)
	src := s.TermPostings("hack")
	if src.AtEnd() || src.CurrentDocID() != 1 {
		t.Fatalf("expected first posting at doc 1, got atEnd=%v", src.AtEnd())
	}
	src.AdvanceTo(2)
	if src.AtEnd() || src.CurrentDocID() != 2 {
		t.Fatalf("expected second posting at doc 2")
	}
}

func TestStoreWiresThroughOptimizeAndMatch(t *testing.T) {
	s := buildStore(t)
	q := query.And(query.TermDefault("hack"), query.TermDefault("which"))

	optimised, err := optimize.Optimise(q, s)
	if err != nil {
		t.Fatal(err)
	}

	m := match.NewMatcher(s, match.BoolWeight{})
	src, err := m.Find(optimised)
	if err != nil {
		t.Fatal(err)
	}
	if src.AtEnd() || src.CurrentDocID() != 1 {
		t.Fatalf("expected doc 1 to be the sole AND match, got atEnd=%v", src.AtEnd())
	}
}

func TestStoreOptimiseCollapsesAbsentTerm(t *testing.T) {
	s := buildStore(t)
	q := query.TermDefault("absent")
	optimised, err := optimize.Optimise(q, s)
	if err != nil {
		t.Fatal(err)
	}
	if optimised.Kind() != query.KindMatchNothing {
		t.Fatalf("expected absent term to collapse to MatchNothing, got %s", query.Describe(optimised))
	}
}

func TestValueRangeFiltersLexicographically(t *testing.T) {
	s := buildStore(t)
	s.AddValue(0, "apple", 1)
	s.AddValue(0, "mango", 2)
	s.AddValue(0, "zebra", 3)

	src := s.ValueRangePostings(0, "b", "n")
	if src.AtEnd() || src.CurrentDocID() != 2 {
		t.Fatalf("expected only doc 2 (mango) in range [b,n], got atEnd=%v", src.AtEnd())
	}
	src.AdvanceTo(3)
	if !src.AtEnd() {
		t.Fatalf("expected no further matches in range")
	}
}
