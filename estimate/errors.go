package estimate

import "errors"

// ErrUnoptimised is returned by Estimate if it encounters a
// KindWildcard or KindEditDistance leaf - run optimize.Optimise first.
var ErrUnoptimised = errors.New("estimate: query contains an unexpanded wildcard/edit-distance leaf")
