package query

import "errors"

// ErrInvalidArgument is returned by constructors when given a value the
// query algebra forbids: a negative SCALE_WEIGHT factor, or an empty
// child list for an operator that requires at least one operand.
var ErrInvalidArgument = errors.New("query: invalid argument")
