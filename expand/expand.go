package expand

import "github.com/IMQS/qalgebra/query"

// Cache memoises per-shard dictionary scans across repeated
// expansions sharing the same literal prefix within a search session.
type Cache struct {
	shard *shardCache
}

// NewCache builds an expansion cache holding up to size distinct
// (shard, prefix) scan results.
func NewCache(size int) *Cache {
	return &Cache{shard: newShardCache(size)}
}

func collectForShards(dict Dictionary, cache *Cache, _, prefix string, maxExpansion int, policy query.LimitPolicy, match func(term string) bool) ([]string, error) {
	seen := map[string]bool{}
	var result []string

	var sc *shardCache
	if cache != nil {
		sc = cache.shard
	}

	for _, shard := range dict.Shards() {
		scanned, ok := sc.get(shard.ID(), prefix)
		if !ok {
			it := shard.PrefixIterator(prefix)
			for it.Next() {
				scanned = append(scanned, candidate{term: it.Term(), freq: it.CollectionFrequency()})
			}
			sc.put(shard.ID(), prefix, scanned)
		}
		var candidates []candidate
		for _, c := range scanned {
			if match(c.term) {
				candidates = append(candidates, c)
			}
		}

		limited, err := applyLimitPolicy(candidates, maxExpansion, policy)
		if err != nil {
			return nil, err
		}
		for _, c := range limited {
			if !seen[c.term] {
				seen[c.term] = true
				result = append(result, c.term)
			}
		}
	}
	return result, nil
}

func combine(terms []string, combiner query.Op) (query.Query, error) {
	if len(terms) == 0 {
		return query.MatchNothing(), nil
	}
	children := make([]query.Query, len(terms))
	for i, t := range terms {
		children[i] = query.TermDefault(t)
	}
	switch combiner {
	case query.OpOr:
		return query.OrN(children)
	case query.OpMax:
		return query.MaxN(children)
	default: // query.OpSynonym, or unspecified - SYNONYM is the documented default
		return query.SynonymN(children)
	}
}
