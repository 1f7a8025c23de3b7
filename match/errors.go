package match

import "errors"

// ErrUnsupportedComposition is the UnimplementedError of §7: a
// positional operator (PHRASE/NEAR) whose immediate child is itself
// AND, NEAR, or PHRASE. Raised at match/lower time, never at
// construction or optimisation.
var ErrUnsupportedComposition = errors.New("match: unsupported positional composition")

// ErrUnoptimised is returned by Lower if it encounters a KindWildcard
// or KindEditDistance leaf - the caller must run optimize.Optimise
// (or expand the leaf some other way) before matching.
var ErrUnoptimised = errors.New("match: query contains an unexpanded wildcard/edit-distance leaf")

// ErrInvalidPostingSource is returned when a KindPostingSource leaf's
// opaque reference does not implement posting.Source.
var ErrInvalidPostingSource = errors.New("match: posting source reference does not implement posting.Source")
