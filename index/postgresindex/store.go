package postgresindex

import (
	"database/sql"
	"sort"

	"github.com/BurntSushi/migration"
	"github.com/lib/pq"

	"github.com/IMQS/qalgebra/expand"
	"github.com/IMQS/qalgebra/posting"
)

// Store is a Postgres-backed index.Provider. It opens (and, on first
// connect, migrates) one database per instance, following the same
// migration.Open pattern the wider ambient stack uses for its own
// service databases.
type Store struct {
	db           *sql.DB
	hasPositions bool
	cache        *expand.Cache
}

// Open connects to dsn via driver (normally "postgres"), running any
// migrations this package has not yet applied. hasPositions declares
// whether rows written to this store will carry positional data -
// PHRASE/NEAR subtrees evaluated against a Store built with
// hasPositions=false always contribute zero matches.
func Open(driver, dsn string, hasPositions bool) (*Store, error) {
	db, err := migration.Open(driver, dsn, migrations)
	if err != nil {
		return nil, err
	}
	return &Store{
		db:           db,
		hasPositions: hasPositions,
		cache:        expand.NewCache(256),
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// AddTerm writes (or replaces) one term's posting list.
func (s *Store) AddTerm(term string, entries []posting.Entry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM term_postings WHERE term = $1`, term); err != nil {
		tx.Rollback()
		return err
	}
	for _, e := range entries {
		positions := make(pq.Int64Array, len(e.Positions))
		for i, p := range e.Positions {
			positions[i] = int64(p)
		}
		if _, err := tx.Exec(
			`INSERT INTO term_postings (term, docid, positions, weight) VALUES ($1, $2, $3, $4)`,
			term, int64(e.Doc), positions, e.Weight,
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// AddValue records doc's value in the given VALUE_* slot.
func (s *Store) AddValue(slot int, value string, doc posting.DocID) error {
	_, err := s.db.Exec(
		`INSERT INTO value_postings (slot, value, docid) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
		slot, value, int64(doc),
	)
	return err
}

// SetDocLength records doc's length.
func (s *Store) SetDocLength(doc posting.DocID, length int) error {
	_, err := s.db.Exec(
		`INSERT INTO doc_lengths (docid, length) VALUES ($1, $2)
		 ON CONFLICT (docid) DO UPDATE SET length = EXCLUDED.length`,
		int64(doc), length,
	)
	return err
}

func (s *Store) rangeMax() posting.DocID {
	var max sql.NullInt64
	s.db.QueryRow(`SELECT max(docid) FROM doc_lengths`).Scan(&max)
	if !max.Valid {
		return 0
	}
	return posting.DocID(max.Int64)
}

func (s *Store) fetchTerm(term string) []posting.Entry {
	rows, err := s.db.Query(
		`SELECT docid, positions, weight FROM term_postings WHERE term = $1 ORDER BY docid`, term,
	)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var entries []posting.Entry
	for rows.Next() {
		var docid int64
		var positions pq.Int64Array
		var weight float64
		if err := rows.Scan(&docid, &positions, &weight); err != nil {
			return nil
		}
		pos := make([]int, len(positions))
		for i, p := range positions {
			pos[i] = int(p)
		}
		entries = append(entries, posting.Entry{Doc: posting.DocID(docid), Positions: pos, Weight: weight})
	}
	return entries
}

func (s *Store) TermPostings(term string) posting.Source {
	return posting.NewTermSource(s.fetchTerm(term), s.rangeMax())
}

func (s *Store) AllDocsPostings() posting.Source {
	return posting.NewAllDocsSource(s.rangeMax())
}

func (s *Store) ValueRangePostings(slot int, lo, hi string) posting.Source {
	rows, err := s.db.Query(
		`SELECT DISTINCT docid FROM value_postings
		 WHERE slot = $1 AND ($2 = '' OR value >= $2) AND ($3 = '' OR value <= $3)
		 ORDER BY docid`,
		slot, lo, hi,
	)
	if err != nil {
		return posting.NewValueRangeSource(nil, s.rangeMax())
	}
	defer rows.Close()

	var docs []posting.DocID
	for rows.Next() {
		var docid int64
		if err := rows.Scan(&docid); err != nil {
			return posting.NewValueRangeSource(nil, s.rangeMax())
		}
		docs = append(docs, posting.DocID(docid))
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i] < docs[j] })
	return posting.NewValueRangeSource(docs, s.rangeMax())
}

func (s *Store) DocLength(docid posting.DocID) int {
	var length int
	s.db.QueryRow(`SELECT length FROM doc_lengths WHERE docid = $1`, int64(docid)).Scan(&length)
	return length
}

func (s *Store) CollectionSize() int {
	var n int
	s.db.QueryRow(`SELECT count(*) FROM doc_lengths`).Scan(&n)
	return n
}

func (s *Store) HasPositions() bool { return s.hasPositions }

func (s *Store) AverageDocumentLength() float64 {
	var avg sql.NullFloat64
	s.db.QueryRow(`SELECT avg(length) FROM doc_lengths`).Scan(&avg)
	if !avg.Valid {
		return 0
	}
	return avg.Float64
}

func (s *Store) TermBounds(term string) (min, est, max int) {
	var n int
	s.db.QueryRow(`SELECT count(*) FROM term_postings WHERE term = $1`, term).Scan(&n)
	return n, n, n
}

func (s *Store) PostingSourceBounds(ref interface{}) (min, est, max int) {
	src, ok := ref.(posting.Source)
	if !ok {
		return 0, 0, 0
	}
	return src.TermFreqMin(), src.TermFreqEst(), src.TermFreqMax()
}

func (s *Store) ValueRangeBounds(slot int, lo, hi string) (min, est, max int) {
	n := s.ValueRangePostings(slot, lo, hi).TermFreqMax()
	return n, n, n
}

func (s *Store) Dictionary() expand.Dictionary { return s }
func (s *Store) Cache() *expand.Cache          { return s.cache }

// Shards implements expand.Dictionary: the whole Store is one shard.
func (s *Store) Shards() []expand.Shard { return []expand.Shard{&pgShard{store: s}} }
