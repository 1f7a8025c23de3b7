package optimize

import (
	"github.com/IMQS/qalgebra/expand"
	"github.com/IMQS/qalgebra/query"
)

// expandWildcard and expandEditDistance adapt package expand's
// dictionary-shaped API to an Environment. Rule 5 (unmatched wildcard
// expansion collapses to MatchNothing, not an error) is already
// implemented inside expand.combine; a LimitError policy that actually
// exceeds max_expansion surfaces here as expand.ErrExpansionLimitExceeded.
func expandWildcard(q query.Query, env Environment) (query.Query, error) {
	return expand.ExpandWildcard(q, env.Dictionary(), env.Cache())
}

func expandEditDistance(q query.Query, env Environment) (query.Query, error) {
	return expand.ExpandEditDistance(q, env.Dictionary(), env.Cache())
}
