package spherefun

import "errors"

var (
	ErrInvalidArgument   = errors.New("spherefun: invalid argument")
	ErrDimensionMismatch = errors.New("spherefun: dimension mismatch")
	// ErrSolve wraps a failure of the constrained least squares solve
	ErrSolve = errors.New("spherefun: constrained least squares failed")
)
