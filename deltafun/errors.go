package deltafun

import "errors"

var (
	// ErrInvalidArgument covers bad operand kinds, non-scalar numeric operands
	// and malformed point mass data.
	ErrInvalidArgument = errors.New("deltafun: invalid argument")

	// ErrUnsupportedOperation is returned when both operands of an inner
	// product carry point masses; at most one operand may be a non-trivial
	// distribution.
	ErrUnsupportedOperation = errors.New("deltafun: unsupported operation")
)
