package deltafun

import (
	"fmt"

	"github.com/notargets/spectralfun/chebtech"
)

// Operand is one side of an inner product: Smooth, Distribution or Scalar
type Operand interface {
	isEmpty() bool
	kind() string
}

// Smooth is a plain function with no point masses
type Smooth struct{ F *chebtech.Chebtech }

// Distribution is a smooth function that may carry point masses
type Distribution struct{ D *DeltaFunction }

// Scalar is a numeric operand. Only a single value is a valid inner
// product operand; it stands for the constant function.
type Scalar []float64

func (s Smooth) isEmpty() bool       { return s.F.IsEmpty() }
func (d Distribution) isEmpty() bool { return d.D.IsEmpty() }
func (s Scalar) isEmpty() bool       { return len(s) == 0 }

func (Smooth) kind() string       { return "smooth function" }
func (Distribution) kind() string { return "distribution" }
func (Scalar) kind() string       { return "scalar" }

// asSmooth resolves an operand to a scalar valued Chebtech on domain. A
// distribution is accepted only when it carries no point masses.
func asSmooth(op Operand, domain [2]float64) (*chebtech.Chebtech, error) {
	switch v := op.(type) {
	case Smooth:
		return v.F, nil
	case Distribution:
		if v.D.HasPointMasses() {
			return nil, fmt.Errorf("%w: at most one operand may be a non-trivial distribution",
				ErrUnsupportedOperation)
		}
		return v.D.fun, nil
	case Scalar:
		if len(v) != 1 {
			return nil, fmt.Errorf("%w: numeric operand must be a single value, have %d values",
				ErrInvalidArgument, len(v))
		}
		return chebtech.NewConstant(v[0], domain)
	default:
		return nil, fmt.Errorf("%w: unsupported operand type %T", ErrInvalidArgument, op)
	}
}
