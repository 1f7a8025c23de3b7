package expand

import "github.com/IMQS/qalgebra/query"

// levenshtein computes the edit distance between a and b over Unicode
// scalars (not bytes).
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			m := del
			if ins < m {
				m = ins
			}
			if sub < m {
				m = sub
			}
			curr[j] = m
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func sharesFixedPrefix(target, term []rune, fixedPrefixLen int) bool {
	if fixedPrefixLen <= 0 {
		return true
	}
	if len(target) < fixedPrefixLen || len(term) < fixedPrefixLen {
		return false
	}
	for i := 0; i < fixedPrefixLen; i++ {
		if target[i] != term[i] {
			return false
		}
	}
	return true
}

// ExpandEditDistance materialises a KindEditDistance leaf into a
// combiner compound over every dictionary term within edit_distance of
// target that shares its mandatory fixed prefix.
func ExpandEditDistance(q query.Query, dict Dictionary, cache *Cache) (query.Query, error) {
	target := []rune(q.EditDistanceTarget())
	maxDist := q.EditDistance()
	prefixLen := q.FixedPrefixLen()
	prefix := string(target[:min(prefixLen, len(target))])

	terms, err := collectForShards(dict, cache, q.EditDistanceTarget(), prefix, q.MaxExpansion(), q.Policy(), func(term string) bool {
		t := []rune(term)
		if !sharesFixedPrefix(target, t, prefixLen) {
			return false
		}
		return levenshtein(target, t) <= maxDist
	})
	if err != nil {
		return query.Query{}, err
	}
	return combine(terms, q.Combiner())
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
