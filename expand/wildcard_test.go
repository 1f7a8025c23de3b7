package expand

import (
	"sort"
	"testing"

	"github.com/IMQS/qalgebra/query"
)

// fakeShard is a single in-memory dictionary partition for exercising
// PrefixIterator-driven expansion without a real index.Provider.
type fakeShard struct {
	id    string
	terms map[string]int // term -> collection frequency
}

func (s *fakeShard) ID() string { return s.id }

func (s *fakeShard) PrefixIterator(prefix string) Iterator {
	var matched []string
	for t := range s.terms {
		if len(t) >= len(prefix) && t[:len(prefix)] == prefix {
			matched = append(matched, t)
		}
	}
	sort.Strings(matched)
	return &fakeIterator{shard: s, terms: matched, i: -1}
}

type fakeIterator struct {
	shard *fakeShard
	terms []string
	i     int
}

func (it *fakeIterator) Next() bool {
	it.i++
	return it.i < len(it.terms)
}

func (it *fakeIterator) Term() string { return it.terms[it.i] }

func (it *fakeIterator) CollectionFrequency() int { return it.shard.terms[it.terms[it.i]] }

type fakeDictionary struct {
	shards []Shard
}

func (d *fakeDictionary) Shards() []Shard { return d.shards }

func newFakeDictionary(terms map[string]int) *fakeDictionary {
	return &fakeDictionary{shards: []Shard{&fakeShard{id: "s0", terms: terms}}}
}

func TestExpandWildcardQuestionMarkDoesNotCollapseToMatchAll(t *testing.T) {
	dict := newFakeDictionary(map[string]int{"a": 1, "ab": 1, "abc": 1})

	q := query.Wildcard("?", query.FlagGlob, 0, query.LimitError, query.OpSynonym)
	if q.Kind() == query.KindMatchAll {
		t.Fatalf("Wildcard(\"?\", ...) must not collapse to MatchAll")
	}

	expanded, err := ExpandWildcard(q, dict, nil)
	if err != nil {
		t.Fatal(err)
	}
	terms := expanded.UniqueTerms()
	if len(terms) != 1 || terms[0] != "a" {
		t.Fatalf("expected only the single-character term \"a\", got %v", terms)
	}
}

func TestExpandWildcardStarCollapsesToMatchAll(t *testing.T) {
	for _, pattern := range []string{"*", "?*", "*?", "*?*"} {
		q := query.Wildcard(pattern, query.FlagGlob, 0, query.LimitError, query.OpSynonym)
		if q.Kind() != query.KindMatchAll {
			t.Fatalf("Wildcard(%q, ...) should collapse to MatchAll", pattern)
		}
	}
}

func TestExpandWildcardLimitFirstKeepsDictionaryOrder(t *testing.T) {
	dict := newFakeDictionary(map[string]int{
		"cat1": 5, "cat2": 1, "cat3": 9, "cat4": 2,
	})
	q := query.Wildcard("cat*", query.FlagGlob, 2, query.LimitFirst, query.OpSynonym)
	expanded, err := ExpandWildcard(q, dict, nil)
	if err != nil {
		t.Fatal(err)
	}
	terms := expanded.UniqueTerms()
	if len(terms) != 2 || terms[0] != "cat1" || terms[1] != "cat2" {
		t.Fatalf("LimitFirst should keep the first 2 terms in dictionary order, got %v", terms)
	}
}

func TestExpandWildcardLimitMostFrequentKeepsDictionaryOrderAmongWinners(t *testing.T) {
	dict := newFakeDictionary(map[string]int{
		"cat1": 5, "cat2": 1, "cat3": 9, "cat4": 2,
	})
	q := query.Wildcard("cat*", query.FlagGlob, 2, query.LimitMostFrequent, query.OpSynonym)
	expanded, err := ExpandWildcard(q, dict, nil)
	if err != nil {
		t.Fatal(err)
	}
	terms := expanded.UniqueTerms()
	// cat3 (freq 9) and cat1 (freq 5) are the two most frequent, but
	// the result preserves dictionary order among the selected terms.
	if len(terms) != 2 || terms[0] != "cat1" || terms[1] != "cat3" {
		t.Fatalf("LimitMostFrequent should keep cat1,cat3 in dictionary order, got %v", terms)
	}
}

func TestExpandWildcardLimitErrorExceeded(t *testing.T) {
	dict := newFakeDictionary(map[string]int{"cat1": 1, "cat2": 1, "cat3": 1})
	q := query.Wildcard("cat*", query.FlagGlob, 2, query.LimitError, query.OpSynonym)
	_, err := ExpandWildcard(q, dict, nil)
	if err != ErrExpansionLimitExceeded {
		t.Fatalf("expected ErrExpansionLimitExceeded, got %v", err)
	}
}

func TestExpandEditDistanceRespectsFixedPrefixAndDistance(t *testing.T) {
	dict := newFakeDictionary(map[string]int{
		"hack": 1, "hacks": 1, "hacky": 1, "rack": 1, "jack": 1,
	})
	q := query.EditDistanceQuery("hack", 1, 2, 0, query.LimitError, query.OpSynonym)
	expanded, err := ExpandEditDistance(q, dict, nil)
	if err != nil {
		t.Fatal(err)
	}
	terms := expanded.UniqueTerms()
	// "rack" and "jack" share a one-character edit with "hack" but
	// don't share its 2-character fixed prefix "ha", so they're
	// excluded even though the edit distance alone would admit them.
	want := []string{"hack", "hacks", "hacky"}
	if len(terms) != len(want) {
		t.Fatalf("expected %v, got %v", want, terms)
	}
	for i, w := range want {
		if terms[i] != w {
			t.Fatalf("expected %v, got %v", want, terms)
		}
	}
}
