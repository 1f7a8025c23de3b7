package server

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/IMQS/qalgebra/match"
)

// weightingFile is the shape of weighting.toml, kept separate from
// the JSON structural config (shards, HTTP bind) since weighting
// constants get retuned far more often than shards get added or
// removed.
type weightingFile struct {
	Scheme string
	K1     float64
	B      float64
}

// LoadWeightingFile reads path (if non-empty) and overlays it onto
// cfg.Weighting; a missing path is not an error, since a fresh install
// runs fine on the JSON config's built-in BM25 defaults.
func LoadWeightingFile(path string, cfg *ConfigWeighting) error {
	if path == "" {
		return nil
	}
	var w weightingFile
	if _, err := toml.DecodeFile(path, &w); err != nil {
		return fmt.Errorf("loading weighting file %v: %v", path, err)
	}
	if w.Scheme != "" {
		cfg.Scheme = w.Scheme
	}
	if w.K1 != 0 {
		cfg.K1 = w.K1
	}
	if w.B != 0 {
		cfg.B = w.B
	}
	return nil
}

// BuildWeighting realises cfg as a match.Weighting. avgDocLength is
// only consulted for the "bm25" scheme.
func BuildWeighting(cfg ConfigWeighting, avgDocLength float64) (match.Weighting, error) {
	switch cfg.Scheme {
	case "", "bm25":
		w := match.NewBM25Weight(avgDocLength)
		if cfg.K1 != 0 {
			w.K1 = cfg.K1
		}
		if cfg.B != 0 {
			w.B = cfg.B
		}
		return w, nil
	case "tfidf":
		return match.TFIDFWeight{}, nil
	case "bool":
		return match.BoolWeight{}, nil
	}
	return nil, fmt.Errorf("unknown weighting scheme %q", cfg.Scheme)
}
