package postgresindex

import (
	"database/sql"

	"github.com/IMQS/qalgebra/expand"
)

// pgShard is the single expand.Shard a Store exposes: its whole term
// dictionary, scanned in lexicographic order from the given prefix via
// a range-bounded index scan rather than a LIKE 'prefix%' (which
// Postgres can satisfy from the same btree as long as the pattern has
// no leading wildcard, but a plain >= / < range is clearer about what
// it relies on).
type pgShard struct {
	store *Store
}

func (sh *pgShard) ID() string { return "postgresindex" }

func (sh *pgShard) PrefixIterator(prefix string) expand.Iterator {
	rows, err := sh.store.db.Query(
		`SELECT term, count(*) FROM term_postings
		 WHERE term >= $1 AND term < $2
		 GROUP BY term ORDER BY term`,
		prefix, prefixUpperBound(prefix),
	)
	if err != nil {
		return &pgIterator{}
	}
	return &pgIterator{rows: rows}
}

// prefixUpperBound returns the lexicographically smallest string that
// sorts after every string with the given prefix, so a BETWEEN-style
// range scan ">= prefix AND < upperBound" is equivalent to a prefix
// match. An empty prefix, and a prefix whose bytes are all 0xff, have
// no finite upper bound in the general case; "￿￿￿￿"
// is used as a stand-in, which under-scans terms containing bytes
// above it. Fine at demo scale; a real dictionary would want a
// sentinel (or a NULL-bounded open range) guaranteed to sort after
// every possible term.
func prefixUpperBound(prefix string) string {
	if prefix == "" {
		return "￿￿￿￿"
	}
	b := []byte(prefix)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] < 0xff {
			b[i]++
			return string(b[:i+1])
		}
	}
	return "￿￿￿￿"
}

// pgIterator walks a *sql.Rows cursor lazily: PrefixIterator reads one
// row per Next rather than loading the result set up front. expand still
// reads it to the end before applying the expansion limit.
type pgIterator struct {
	rows *sql.Rows
	term string
	freq int
}

func (it *pgIterator) Next() bool {
	if it.rows == nil || !it.rows.Next() {
		if it.rows != nil {
			it.rows.Close()
		}
		return false
	}
	if err := it.rows.Scan(&it.term, &it.freq); err != nil {
		it.rows.Close()
		return false
	}
	return true
}

func (it *pgIterator) Term() string { return it.term }

func (it *pgIterator) CollectionFrequency() int { return it.freq }
