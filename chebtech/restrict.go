package chebtech

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Restrict maps f onto the sub-intervals [s_0,s_1], [s_1,s_2], ... of its
// domain and returns one function per sub-interval.
//
// Restricting to the whole domain returns f itself. Otherwise each piece
// is refitted from samples of f on the Chebyshev grid of the same length
// mapped onto the piece; the refitted coefficients are not truncated, so a
// piece may carry more coefficients than it needs.
func (f *Chebtech) Restrict(s []float64) ([]*Chebtech, error) {
	if err := f.checkBreakpoints(s); err != nil {
		return nil, err
	}
	if len(s) == 2 && s[0] == f.domain[0] && s[1] == f.domain[1] {
		return []*Chebtech{f}, nil
	}
	nInt := len(s) - 1
	if f.IsEmpty() {
		out := make([]*Chebtech, nInt)
		for i := range out {
			out[i] = NewEmpty([2]float64{s[i], s[i+1]})
		}
		return out, nil
	}

	n, k := f.coeffs.Dims()
	y := Points(n)

	// Sample every sub-interval grid in one pass: rows [i*n,(i+1)*n) of
	// stacked hold interval i, one column per component of f.
	x := make([]float64, 0, n*nInt)
	for i := 0; i < nInt; i++ {
		x = append(x, mapFromReference(y, [2]float64{s[i], s[i+1]})...)
	}
	stacked := f.Evaluate(x)

	// Regroup as interval-major then component: column i*k+j is component j
	// of interval i.
	values := mat.NewDense(n, nInt*k, nil)
	for i := 0; i < nInt; i++ {
		for j := 0; j < k; j++ {
			for r := 0; r < n; r++ {
				values.Set(r, i*k+j, stacked.At(i*n+r, j))
			}
		}
	}
	coeffs := ValsToCoeffs(values)
	vscale := columnMaxAbs(values)

	out := make([]*Chebtech, nInt)
	for i := 0; i < nInt; i++ {
		out[i] = &Chebtech{
			domain: [2]float64{s[i], s[i+1]},
			coeffs: mat.DenseCopyOf(coeffs.Slice(0, n, i*k, (i+1)*k)),
			vscale: append([]float64(nil), vscale[i*k:(i+1)*k]...),
		}
	}
	return out, nil
}

func (f *Chebtech) checkBreakpoints(s []float64) error {
	if len(s) < 2 {
		return fmt.Errorf("%w: not a valid interval, need at least two breakpoints, have %d",
			ErrInvalidArgument, len(s))
	}
	a, b := f.domain[0], f.domain[1]
	if floats.HasNaN(s) || floats.Min(s) < a || floats.Max(s) > b {
		return fmt.Errorf("%w: not a valid interval, breakpoints %v outside [%g,%g]",
			ErrInvalidArgument, s, a, b)
	}
	for i, v := range s {
		if i > 0 && !(v > s[i-1]) {
			return fmt.Errorf("%w: not a valid interval, breakpoints must be strictly increasing",
				ErrInvalidArgument)
		}
	}
	return nil
}
