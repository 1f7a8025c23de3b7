package index

import (
	"github.com/IMQS/qalgebra/estimate"
	"github.com/IMQS/qalgebra/expand"
	"github.com/IMQS/qalgebra/match"
	"github.com/IMQS/qalgebra/optimize"
)

// Provider is the full external Index surface: everything
// package optimize needs to collapse provably-empty subtrees and
// expand wildcards, everything package match needs to evaluate a
// query, and everything package estimate needs to bound one, bundled
// behind a single handle so a caller wires up one type per backing
// store instead of three.
type Provider interface {
	match.Index
	optimize.Environment
	estimate.Environment
	expand.Dictionary
}
