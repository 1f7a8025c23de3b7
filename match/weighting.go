package match

import "math"

// TermStats carries the per-leaf statistics a Weighting scheme needs
// to compute a document's weight contribution for one term: the
// collection size and the term's (global) document frequency are
// query-invariant; doc length and within-document frequency (tf) vary
// per matched document.
type TermStats struct {
	CollectionSize int
	TermFreq       int // number of documents containing the term
	DocLength      int
	Wqf            int // within-query frequency
}

// Weighting produces a document's weight contribution for one term
// (or pseudo-term, for SYNONYM) from its statistics and within-
// document term frequency.
type Weighting interface {
	Weight(stats TermStats, tf int) float64
}

// BoolWeight is the no-op weighting scheme: every match weighs 0, so
// result order reduces to docid order and AND/OR/etc. behave as pure
// boolean set operators.
type BoolWeight struct{}

func (BoolWeight) Weight(TermStats, int) float64 { return 0 }

// TFIDFWeight is classic tf*idf: idf = ln(N/df).
type TFIDFWeight struct{}

func (TFIDFWeight) Weight(stats TermStats, tf int) float64 {
	if stats.TermFreq <= 0 || stats.CollectionSize <= 0 || tf <= 0 {
		return 0
	}
	idf := math.Log(float64(stats.CollectionSize) / float64(stats.TermFreq))
	if idf < 0 {
		idf = 0
	}
	return float64(tf*stats.Wqf) * idf
}

// BM25Weight implements Okapi BM25. AvgDocLength is supplied once by
// the caller (computed over the whole collection), since the Index
// interface exposes per-document length but not the collection
// average.
type BM25Weight struct {
	K1            float64
	B             float64
	AvgDocLength  float64
}

// NewBM25Weight returns a BM25Weight with the conventional k1=1.2,
// b=0.75 defaults.
func NewBM25Weight(avgDocLength float64) BM25Weight {
	return BM25Weight{K1: 1.2, B: 0.75, AvgDocLength: avgDocLength}
}

func (w BM25Weight) Weight(stats TermStats, tf int) float64 {
	if stats.TermFreq <= 0 || stats.CollectionSize <= 0 || tf <= 0 {
		return 0
	}
	idf := math.Log(1 + (float64(stats.CollectionSize)-float64(stats.TermFreq)+0.5)/(float64(stats.TermFreq)+0.5))
	avgdl := w.AvgDocLength
	if avgdl <= 0 {
		avgdl = float64(stats.DocLength)
	}
	if avgdl <= 0 {
		avgdl = 1
	}
	norm := 1 - w.B + w.B*(float64(stats.DocLength)/avgdl)
	tff := float64(tf)
	return float64(stats.Wqf) * idf * (tff * (w.K1 + 1)) / (tff + w.K1*norm)
}
