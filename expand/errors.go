package expand

import "errors"

// ErrExpansionLimitExceeded is returned when a Wildcard/EditDistance
// expansion under limit policy ERROR would exceed max_expansion in at
// least one shard.
var ErrExpansionLimitExceeded = errors.New("expand: expansion limit exceeded")
