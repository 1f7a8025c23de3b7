package expand

import (
	"github.com/IMQS/qalgebra/query"
)

// matchGlob reports whether term matches pattern where '*' matches
// zero or more Unicode scalars and '?' matches exactly one, both
// active (GLOB flags). Matching is done over []rune, not bytes, so
// multi-byte scalars count as one position each.
func matchGlob(pattern, term []rune) bool {
	return matchGlobAt(pattern, term, 0, 0)
}

func matchGlobAt(pattern, term []rune, pi, ti int) bool {
	for pi < len(pattern) {
		switch pattern[pi] {
		case '*':
			// Skip consecutive '*' - equivalent to one.
			for pi < len(pattern) && pattern[pi] == '*' {
				pi++
			}
			if pi == len(pattern) {
				return true
			}
			for t := ti; t <= len(term); t++ {
				if matchGlobAt(pattern, term, pi, t) {
					return true
				}
			}
			return false
		case '?':
			if ti >= len(term) {
				return false
			}
			pi++
			ti++
		default:
			if ti >= len(term) || term[ti] != pattern[pi] {
				return false
			}
			pi++
			ti++
		}
	}
	return ti == len(term)
}

// matchSingle matches only '?' as a metacharacter; '*' is literal.
func matchSingle(pattern, term []rune) bool {
	if len(pattern) != len(term) {
		return false
	}
	for i, p := range pattern {
		if p != '?' && p != term[i] {
			return false
		}
	}
	return true
}

// matchMulti matches only '*' as a metacharacter; '?' is literal.
func matchMulti(pattern, term []rune) bool {
	// matchMultiAt is matchGlobAt without the '?' case: every rune
	// other than '*' is compared literally.
	return matchMultiAt(pattern, term, 0, 0)
}

func matchMultiAt(pattern, term []rune, pi, ti int) bool {
	for pi < len(pattern) {
		if pattern[pi] == '*' {
			for pi < len(pattern) && pattern[pi] == '*' {
				pi++
			}
			if pi == len(pattern) {
				return true
			}
			for t := ti; t <= len(term); t++ {
				if matchMultiAt(pattern, term, pi, t) {
					return true
				}
			}
			return false
		}
		if ti >= len(term) || term[ti] != pattern[pi] {
			return false
		}
		pi++
		ti++
	}
	return ti == len(term)
}

func wildcardMatches(pattern string, flags query.WildcardFlags, term string) bool {
	p, t := []rune(pattern), []rune(term)
	switch flags {
	case query.FlagGlob:
		return matchGlob(p, t)
	case query.FlagSingle:
		return matchSingle(p, t)
	case query.FlagMulti:
		return matchMulti(p, t)
	default: // FlagPrefix
		if len(p) > len(t) {
			return false
		}
		for i, r := range p {
			if t[i] != r {
				return false
			}
		}
		return true
	}
}

// fixedWildcardPrefix returns the longest literal prefix of pattern
// under flags - the part before the first metacharacter - so dictionary
// scans can narrow to PrefixIterator(prefix) instead of a full walk.
func fixedWildcardPrefix(pattern string, flags query.WildcardFlags) string {
	isMeta := func(r rune) bool {
		switch flags {
		case query.FlagGlob:
			return r == '*' || r == '?'
		case query.FlagSingle:
			return r == '?'
		case query.FlagMulti:
			return r == '*'
		default:
			return false
		}
	}
	runes := []rune(pattern)
	for i, r := range runes {
		if isMeta(r) {
			return string(runes[:i])
		}
	}
	return pattern
}

// ExpandWildcard materialises a KindWildcard leaf into a combiner
// compound over concrete Term nodes, applying the limit policy
// independently within each shard of dict.
func ExpandWildcard(q query.Query, dict Dictionary, cache *Cache) (query.Query, error) {
	pattern := q.WildcardPattern()
	flags := q.Flags()
	prefix := fixedWildcardPrefix(pattern, flags)

	terms, err := collectForShards(dict, cache, pattern, prefix, q.MaxExpansion(), q.Policy(), func(term string) bool {
		return wildcardMatches(pattern, flags, term)
	})
	if err != nil {
		return query.Query{}, err
	}
	return combine(terms, q.Combiner())
}
