package match

import (
	"testing"

	"github.com/IMQS/qalgebra/posting"
	"github.com/IMQS/qalgebra/query"
)

type fakeIndex struct {
	postings     map[string][]posting.Entry
	rangeMax     posting.DocID
	docLen       map[posting.DocID]int
	hasPositions bool
}

func (f *fakeIndex) TermPostings(term string) posting.Source {
	return posting.NewTermSource(f.postings[term], f.rangeMax)
}
func (f *fakeIndex) AllDocsPostings() posting.Source { return posting.NewAllDocsSource(f.rangeMax) }
func (f *fakeIndex) ValueRangePostings(slot int, lo, hi string) posting.Source {
	return posting.NewValueRangeSource(nil, f.rangeMax)
}
func (f *fakeIndex) DocLength(docid posting.DocID) int { return f.docLen[docid] }
func (f *fakeIndex) CollectionSize() int               { return int(f.rangeMax) }
func (f *fakeIndex) HasPositions() bool                { return f.hasPositions }

func newFakeIndex() *fakeIndex {
	return &fakeIndex{
		rangeMax:     10,
		docLen:       map[posting.DocID]int{1: 20, 2: 20, 3: 20},
		hasPositions: true,
		postings: map[string][]posting.Entry{
			"a": {{Doc: 1, Positions: []int{0, 5}, Weight: 1}, {Doc: 2, Positions: []int{2}, Weight: 1}},
			"b": {{Doc: 1, Positions: []int{1, 6}, Weight: 1}, {Doc: 3, Positions: []int{0}, Weight: 1}},
		},
	}
}

func TestAndIntersects(t *testing.T) {
	idx := newFakeIndex()
	q := query.And(query.TermDefault("a"), query.TermDefault("b"))
	src, err := Lower(q, idx, BoolWeight{})
	if err != nil {
		t.Fatal(err)
	}
	if src.AtEnd() || src.CurrentDocID() != 1 {
		t.Fatalf("expected single match at doc 1, got atEnd=%v doc=%v", src.AtEnd(), src.CurrentDocID())
	}
	src.AdvanceTo(2)
	if !src.AtEnd() {
		t.Fatalf("expected no further matches, got doc %v", src.CurrentDocID())
	}
}

func TestOrUnionDoesNotDropSecondChild(t *testing.T) {
	idx := newFakeIndex()
	q := query.Or(query.TermDefault("a"), query.TermDefault("b"))
	src, err := Lower(q, idx, BoolWeight{})
	if err != nil {
		t.Fatal(err)
	}
	var docs []posting.DocID
	for !src.AtEnd() {
		docs = append(docs, src.CurrentDocID())
		src.AdvanceTo(src.CurrentDocID() + 1)
	}
	if len(docs) != 3 {
		t.Fatalf("expected 3 union matches (1,2,3), got %v", docs)
	}
}

func TestPhraseMatchesWithinWindow(t *testing.T) {
	idx := newFakeIndex()
	p, _ := query.PhraseN([]query.Query{query.TermDefault("a"), query.TermDefault("b")}, 2)
	src, err := Lower(p, idx, BoolWeight{})
	if err != nil {
		t.Fatal(err)
	}
	if src.AtEnd() || src.CurrentDocID() != 1 {
		t.Fatalf("expected doc 1 to satisfy PHRASE within window 2 (a@0,b@1), got atEnd=%v", src.AtEnd())
	}
}

func TestPhraseRejectsTooNarrowWindow(t *testing.T) {
	idx := newFakeIndex()
	// Window 2 is the narrowest a two-child PHRASE allows (PhraseN
	// clamps smaller windows up to it), so put b two positions after a.
	idx.postings["b"] = []posting.Entry{{Doc: 1, Positions: []int{2}, Weight: 1}, {Doc: 3, Positions: []int{0}, Weight: 1}}
	p, _ := query.PhraseN([]query.Query{query.TermDefault("a"), query.TermDefault("b")}, 2)
	src, err := Lower(p, idx, BoolWeight{})
	if err != nil {
		t.Fatal(err)
	}
	if !src.AtEnd() {
		t.Fatalf("window 2 should reject a@0,b@2 (span 2, not < 2)")
	}
}

func TestPhraseOverCompositeChildIsUnimplemented(t *testing.T) {
	idx := newFakeIndex()
	inner := query.And(query.TermDefault("a"), query.TermDefault("b"))
	p, _ := query.PhraseN([]query.Query{inner, query.TermDefault("c")}, 5)
	_, err := Lower(p, idx, BoolWeight{})
	if err != ErrUnsupportedComposition {
		t.Fatalf("expected ErrUnsupportedComposition, got %v", err)
	}
}

func TestPositionlessShardYieldsNoPhraseMatches(t *testing.T) {
	idx := newFakeIndex()
	idx.hasPositions = false
	p, _ := query.PhraseN([]query.Query{query.TermDefault("a"), query.TermDefault("b")}, 5)
	src, err := Lower(p, idx, BoolWeight{})
	if err != nil {
		t.Fatal(err)
	}
	if !src.AtEnd() {
		t.Fatalf("positionless shard must contribute zero matches to PHRASE, not an error or false positive")
	}
}

func TestSynonymWeightsOnceNotPerChild(t *testing.T) {
	idx := newFakeIndex()
	syn, _ := query.SynonymN([]query.Query{query.TermDefault("a"), query.TermDefault("b")})
	w := TFIDFWeight{}
	src, err := Lower(syn, idx, w)
	if err != nil {
		t.Fatal(err)
	}
	if src.AtEnd() || src.CurrentDocID() != 1 {
		t.Fatalf("expected doc 1 (only doc both a and b touch) to be first match")
	}
	got := src.CurrentWeight()

	// Reconstruct what a correct single application should produce:
	// tf = sum of both children's doc-1 weight (1+1=2), termfreq = the
	// merged source's own estimate, wqf = 2 (summed across both leaves).
	raw := posting.NewSynonymSource([]posting.Source{
		posting.NewTermSource(idx.postings["a"], idx.rangeMax),
		posting.NewTermSource(idx.postings["b"], idx.rangeMax),
	}, idx.rangeMax)
	want := w.Weight(TermStats{CollectionSize: idx.CollectionSize(), TermFreq: raw.TermFreqEst(), DocLength: idx.DocLength(1), Wqf: 2}, int(raw.CurrentWeight()))
	if got != want {
		t.Fatalf("synonym weight not applied exactly once: got %v want %v (double-counting would roughly double this)", got, want)
	}
}

func TestXorMatchesOddCountOnly(t *testing.T) {
	idx := &fakeIndex{
		rangeMax: 10,
		docLen:   map[posting.DocID]int{1: 10},
		postings: map[string][]posting.Entry{
			"x": {{Doc: 1, Weight: 1}},
			"y": {{Doc: 1, Weight: 1}},
			"z": {{Doc: 1, Weight: 1}},
		},
	}
	two, _ := query.XorN([]query.Query{query.TermDefault("x"), query.TermDefault("y")})
	src, err := Lower(two, idx, BoolWeight{})
	if err != nil {
		t.Fatal(err)
	}
	if !src.AtEnd() {
		t.Fatalf("doc matched by both x and y (even count) must not satisfy XOR")
	}

	three, _ := query.XorN([]query.Query{query.TermDefault("x"), query.TermDefault("y"), query.TermDefault("z")})
	src3, err := Lower(three, idx, BoolWeight{})
	if err != nil {
		t.Fatal(err)
	}
	if src3.AtEnd() || src3.CurrentDocID() != 1 {
		t.Fatalf("doc matched by all three (odd count) must satisfy XOR")
	}
}

func TestAndNotExcludesRightMatches(t *testing.T) {
	idx := newFakeIndex()
	q := query.AndNot(query.TermDefault("a"), query.TermDefault("b"))
	src, err := Lower(q, idx, BoolWeight{})
	if err != nil {
		t.Fatal(err)
	}
	if src.AtEnd() || src.CurrentDocID() != 2 {
		t.Fatalf("expected doc 2 (a without b), got atEnd=%v doc=%v", src.AtEnd(), src.CurrentDocID())
	}
	src.AdvanceTo(3)
	if !src.AtEnd() {
		t.Fatalf("doc 1 matches both a and b, must be excluded")
	}
}

func TestAndMaybeAddsRightWeightWhenRightStartsBehindLeft(t *testing.T) {
	// "rare" only touches doc 5; "common" touches doc 1 first, then
	// doc 5 - right's first posting is behind left's, so the
	// andMaybeSource constructor must sync right up to left's doc
	// before the very first CurrentWeight() call, or right's doc-5
	// contribution is silently dropped.
	idx := &fakeIndex{
		rangeMax: 10,
		docLen:   map[posting.DocID]int{5: 20},
		postings: map[string][]posting.Entry{
			"rare":   {{Doc: 5, Weight: 1}},
			"common": {{Doc: 1, Weight: 1}, {Doc: 5, Weight: 1}},
		},
	}
	w := TFIDFWeight{}

	q := query.AndMaybe(query.TermDefault("rare"), query.TermDefault("common"))
	src, err := Lower(q, idx, w)
	if err != nil {
		t.Fatal(err)
	}
	if src.AtEnd() || src.CurrentDocID() != 5 {
		t.Fatalf("expected first match at doc 5, got atEnd=%v doc=%v", src.AtEnd(), src.CurrentDocID())
	}
	got := src.CurrentWeight()

	leftOnly, err := Lower(query.TermDefault("rare"), idx, w)
	if err != nil {
		t.Fatal(err)
	}
	if got <= leftOnly.CurrentWeight() {
		t.Fatalf("expected right's doc-5 weight to be added on top of left's alone (%v), got %v", leftOnly.CurrentWeight(), got)
	}
}

func TestMatchingTermsExcludesUnexpandedWildcardMatches(t *testing.T) {
	idx := newFakeIndex()
	m := NewMatcher(idx, BoolWeight{})
	// "b*" would expand to b, which doc 1 and doc 3 contain; only the
	// explicit leaf a may be reported.
	original := query.Or(query.TermDefault("a"), query.Wildcard("b*", query.FlagGlob, 0, query.LimitError, query.OpSynonym))
	terms := m.MatchingTerms(original, 1)
	if len(terms) != 1 || terms[0] != "a" {
		t.Fatalf("expected [a], got %v", terms)
	}
	none := m.MatchingTerms(original, 3)
	if len(none) != 0 {
		t.Fatalf("doc 3 contains only the wildcard-expanded term b, expected no matching terms, got %v", none)
	}
}
