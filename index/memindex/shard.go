package memindex

import (
	"sort"
	"strings"

	"github.com/IMQS/qalgebra/expand"
)

// memShard is the single expand.Shard a Store exposes: its whole term
// set, scanned in lexicographic order from the given prefix.
type memShard struct {
	store *Store
}

func (sh *memShard) ID() string { return "memindex" }

func (sh *memShard) PrefixIterator(prefix string) expand.Iterator {
	sh.store.mu.RLock()
	terms := make([]string, 0, len(sh.store.terms))
	for t := range sh.store.terms {
		if strings.HasPrefix(t, prefix) {
			terms = append(terms, t)
		}
	}
	sh.store.mu.RUnlock()
	sort.Strings(terms)
	return &memIterator{store: sh.store, terms: terms, idx: -1}
}

type memIterator struct {
	store *Store
	terms []string
	idx   int
}

func (it *memIterator) Next() bool {
	it.idx++
	return it.idx < len(it.terms)
}

func (it *memIterator) Term() string { return it.terms[it.idx] }

func (it *memIterator) CollectionFrequency() int {
	return len(it.store.decodeTerm(it.terms[it.idx]))
}
