package chebtech

import "errors"

var (
	// ErrInvalidArgument is returned for malformed inputs: bad domains, bad
	// breakpoints, shape mismatches between supplied values and grids.
	ErrInvalidArgument = errors.New("chebtech: invalid argument")

	// ErrDimensionMismatch is returned when two functions cannot be paired,
	// e.g. differing domains or column counts.
	ErrDimensionMismatch = errors.New("chebtech: dimension mismatch")
)
