package expand

import (
	"sort"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pierrec/xxHash/xxHash32"

	"github.com/IMQS/qalgebra/query"
)

type candidate struct {
	term string
	freq int
}

// shardCache memoises the full (unfiltered) candidate list for a given
// (shard, prefix) pair, so that repeated expansions against the same
// shard - common within one optimiser pass touching several similarly
// prefixed wildcards - don't re-walk the dictionary.
type shardCache struct {
	cache *lru.Cache
}

func newShardCache(size int) *shardCache {
	c, err := lru.New(size)
	if err != nil {
		// Only returns an error for a non-positive size, which we
		// never pass.
		panic(err)
	}
	return &shardCache{cache: c}
}

func cacheKey(shardID, pattern string) uint32 {
	return xxHash32.Checksum([]byte(shardID+"\x00"+pattern), 0)
}

func (s *shardCache) get(shardID, pattern string) ([]candidate, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.cache.Get(cacheKey(shardID, pattern))
	if !ok {
		return nil, false
	}
	return v.([]candidate), true
}

func (s *shardCache) put(shardID, pattern string, c []candidate) {
	if s == nil {
		return
	}
	s.cache.Add(cacheKey(shardID, pattern), c)
}

// applyLimitPolicy truncates candidates (already in dictionary order)
// per policy. maxExpansion <= 0 means unlimited for every policy.
func applyLimitPolicy(candidates []candidate, maxExpansion int, policy query.LimitPolicy) ([]candidate, error) {
	if maxExpansion <= 0 || len(candidates) <= maxExpansion {
		return candidates, nil
	}
	switch policy {
	case query.LimitError:
		return nil, ErrExpansionLimitExceeded
	case query.LimitFirst:
		return candidates[:maxExpansion], nil
	case query.LimitMostFrequent:
		byFreq := make([]candidate, len(candidates))
		copy(byFreq, candidates)
		// stable sort: descending frequency, ties keep dictionary order
		sort.SliceStable(byFreq, func(i, j int) bool { return byFreq[i].freq > byFreq[j].freq })
		top := byFreq[:maxExpansion]
		// restore dictionary order among the selected terms
		selected := map[string]bool{}
		for _, c := range top {
			selected[c.term] = true
		}
		out := make([]candidate, 0, maxExpansion)
		for _, c := range candidates {
			if selected[c.term] {
				out = append(out, c)
				delete(selected, c.term) // dedupe if terms repeat in candidates
			}
		}
		return out, nil
	}
	return candidates, nil
}
