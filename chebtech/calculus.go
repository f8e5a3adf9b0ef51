package chebtech

import (
	"fmt"

	vecmath "github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/spectralfun/quadrature"
)

// Diff returns the first derivative. The result has one coefficient fewer
// per column, and at least one.
func (f *Chebtech) Diff() *Chebtech {
	if f.IsEmpty() {
		return NewEmpty(f.domain)
	}
	n, k := f.coeffs.Dims()
	if n == 1 {
		return &Chebtech{
			domain: f.domain,
			coeffs: mat.NewDense(1, k, nil),
			vscale: make([]float64, k),
		}
	}
	// d/dx = 2/(b-a) d/dt
	scale := 2. / (f.domain[1] - f.domain[0])
	d := mat.NewDense(n-1, k, nil)
	for j := 0; j < k; j++ {
		// d_i = d_{i+2} + 2(i+1) c_{i+1}, with d_0 halved
		var dp1, dp2 float64
		for i := n - 2; i >= 0; i-- {
			di := dp2 + 2*float64(i+1)*f.coeffs.At(i+1, j)
			d.Set(i, j, di)
			dp1, dp2 = di, dp1
		}
		d.Set(0, j, 0.5*d.At(0, j))
	}
	d.Scale(scale, d)
	return &Chebtech{
		domain: f.domain,
		coeffs: d,
		vscale: columnMaxAbs(CoeffsToVals(d)),
	}
}

// DiffN applies Diff order times
func (f *Chebtech) DiffN(order int) *Chebtech {
	g := f
	for i := 0; i < order; i++ {
		g = g.Diff()
	}
	return g
}

// InnerProduct returns the L2 pairing ∫ conj(f) g over the common domain.
// Both functions must be scalar valued; the functions are real so the
// conjugation is the identity.
func (f *Chebtech) InnerProduct(g *Chebtech) (float64, error) {
	if f.IsEmpty() || g.IsEmpty() {
		return 0, fmt.Errorf("%w: inner product with an empty function", ErrInvalidArgument)
	}
	if f.domain != g.domain {
		return 0, fmt.Errorf("%w: domains [%g,%g] and [%g,%g]", ErrDimensionMismatch,
			f.domain[0], f.domain[1], g.domain[0], g.domain[1])
	}
	if f.Columns() != 1 || g.Columns() != 1 {
		return 0, fmt.Errorf("%w: inner product needs scalar valued functions, have %d and %d columns",
			ErrDimensionMismatch, f.Columns(), g.Columns())
	}
	// the product has degree nf+ng-2, exact for a rule with (nf+ng)/2 nodes
	nq := (f.Length()+g.Length())/2 + 1
	X, W := quadrature.LegendreGauss(nq)
	X, W = quadrature.MapToInterval(X, W, f.domain[0], f.domain[1])
	fv := f.EvalColumn(X, 0)
	gv := g.EvalColumn(X, 0)
	prod := make([]float64, nq)
	vecmath.MulBlock(prod, fv, gv)
	return vecmath.DotProduct(prod, W), nil
}

// Sum returns the definite integral of each component over the domain
func (f *Chebtech) Sum() []float64 {
	if f.IsEmpty() {
		return nil
	}
	n, k := f.coeffs.Dims()
	half := 0.5 * (f.domain[1] - f.domain[0])
	out := make([]float64, k)
	for j := 0; j < k; j++ {
		// ∫ T_i = 2/(1-i^2) for even i, 0 for odd i
		for i := 0; i < n; i += 2 {
			out[j] += f.coeffs.At(i, j) * 2 / (1 - float64(i*i))
		}
		out[j] *= half
	}
	return out
}
