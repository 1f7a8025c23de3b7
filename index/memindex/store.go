package memindex

import (
	"bytes"
	"encoding/gob"
	"sort"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/IMQS/qalgebra/expand"
	"github.com/IMQS/qalgebra/posting"
)

// valueEntry is one (value, docid) pair within a VALUE_* slot.
type valueEntry struct {
	Value string
	Doc   posting.DocID
}

// Store is an in-memory, zstd-block-compressed index.Provider.
type Store struct {
	mu sync.RWMutex

	rangeMax     posting.DocID
	hasPositions bool

	terms  map[string][]byte // gob(entries), zstd-compressed
	values map[int][]valueEntry
	docLen map[posting.DocID]int

	enc   *zstd.Encoder
	dec   *zstd.Decoder
	cache *expand.Cache
}

// New builds an empty Store. hasPositions declares whether this shard
// carries positional data - PHRASE/NEAR subtrees evaluated against a
// Store built with hasPositions=false always contribute zero matches.
func New(hasPositions bool) (*Store, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	return &Store{
		hasPositions: hasPositions,
		terms:        map[string][]byte{},
		values:       map[int][]valueEntry{},
		docLen:       map[posting.DocID]int{},
		enc:          enc,
		dec:          dec,
		cache:        expand.NewCache(256),
	}, nil
}

// AddTerm indexes entries (ascending DocID order) under term,
// replacing any previous posting list for it.
func (s *Store) AddTerm(term string, entries []posting.Entry) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(entries); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.terms[term] = s.enc.EncodeAll(buf.Bytes(), nil)
	for _, e := range entries {
		if e.Doc > s.rangeMax {
			s.rangeMax = e.Doc
		}
	}
	return nil
}

// AddValue records doc's value in the given VALUE_* slot.
func (s *Store) AddValue(slot int, value string, doc posting.DocID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[slot] = append(s.values[slot], valueEntry{Value: value, Doc: doc})
	if doc > s.rangeMax {
		s.rangeMax = doc
	}
	sort.Slice(s.values[slot], func(i, j int) bool {
		if s.values[slot][i].Value != s.values[slot][j].Value {
			return s.values[slot][i].Value < s.values[slot][j].Value
		}
		return s.values[slot][i].Doc < s.values[slot][j].Doc
	})
}

// SetDocLength records doc's length, consulted by weighting schemes
// and by AverageDocumentLength.
func (s *Store) SetDocLength(doc posting.DocID, length int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docLen[doc] = length
	if doc > s.rangeMax {
		s.rangeMax = doc
	}
}

func (s *Store) decodeTerm(term string) []posting.Entry {
	s.mu.RLock()
	blob, ok := s.terms[term]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	raw, err := s.dec.DecodeAll(blob, nil)
	if err != nil {
		return nil
	}
	var entries []posting.Entry
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&entries); err != nil {
		return nil
	}
	return entries
}

func (s *Store) TermPostings(term string) posting.Source {
	return posting.NewTermSource(s.decodeTerm(term), s.rangeMax)
}

func (s *Store) AllDocsPostings() posting.Source {
	return posting.NewAllDocsSource(s.rangeMax)
}

func (s *Store) ValueRangePostings(slot int, lo, hi string) posting.Source {
	s.mu.RLock()
	all := s.values[slot]
	s.mu.RUnlock()

	var docs []posting.DocID
	for _, v := range all {
		if lo != "" && v.Value < lo {
			continue
		}
		if hi != "" && v.Value > hi {
			continue
		}
		docs = append(docs, v.Doc)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i] < docs[j] })
	return posting.NewValueRangeSource(docs, s.rangeMax)
}

func (s *Store) DocLength(docid posting.DocID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docLen[docid]
}

func (s *Store) CollectionSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docLen)
}

func (s *Store) HasPositions() bool { return s.hasPositions }

func (s *Store) AverageDocumentLength() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.docLen) == 0 {
		return 0
	}
	sum := 0
	for _, l := range s.docLen {
		sum += l
	}
	return float64(sum) / float64(len(s.docLen))
}

func (s *Store) TermBounds(term string) (min, est, max int) {
	n := len(s.decodeTerm(term))
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
func (s *Store) Shards() []expand.Shard { return []expand.Shard{&memShard{store: s}} }
