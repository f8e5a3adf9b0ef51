package chebtech

import (
	"fmt"
	"math"
	"strings"

	vecmath "github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/mat"
)

// Chebtech is an array-valued Chebyshev expansion on a closed interval.
//
// Column j of the coefficient matrix holds the coefficients of the j-th
// component in the basis T_0..T_{n-1} of the variable t in [-1,1], which
// is mapped affinely onto Domain. A Chebtech is never modified after
// construction; every operation returns a new instance.
type Chebtech struct {
	domain [2]float64
	coeffs *mat.Dense // [n × k], nil when empty
	vscale []float64  // max |value| per column on the grid
}

// DefaultDomain is the reference interval [-1,1]
var DefaultDomain = [2]float64{-1, 1}

// NewEmpty returns the empty function on domain
func NewEmpty(domain [2]float64) *Chebtech {
	return &Chebtech{domain: domain}
}

// New builds a Chebtech from coefficients. The matrix is copied.
func New(coeffs mat.Matrix, domain [2]float64) (*Chebtech, error) {
	if err := checkDomain(domain); err != nil {
		return nil, err
	}
	n, k := coeffs.Dims()
	if n == 0 || k == 0 {
		return NewEmpty(domain), nil
	}
	c := mat.DenseCopyOf(coeffs)
	return &Chebtech{
		domain: domain,
		coeffs: c,
		vscale: columnMaxAbs(CoeffsToVals(c)),
	}, nil
}

// NewFromValues fits a Chebtech to values sampled on the Chebyshev grid of
// length n mapped onto domain, one column per component.
func NewFromValues(values mat.Matrix, domain [2]float64) (*Chebtech, error) {
	if err := checkDomain(domain); err != nil {
		return nil, err
	}
	n, k := values.Dims()
	if n == 0 || k == 0 {
		return NewEmpty(domain), nil
	}
	v := mat.DenseCopyOf(values)
	return &Chebtech{
		domain: domain,
		coeffs: ValsToCoeffs(v),
		vscale: columnMaxAbs(v),
	}, nil
}

// NewFromFunc samples f on an n point Chebyshev grid over domain
func NewFromFunc(f func(x float64) float64, n int, domain [2]float64) (*Chebtech, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: grid length %d", ErrInvalidArgument, n)
	}
	if err := checkDomain(domain); err != nil {
		return nil, err
	}
	x := mapFromReference(Points(n), domain)
	values := mat.NewDense(n, 1, nil)
	for i, xi := range x {
		values.Set(i, 0, f(xi))
	}
	return NewFromValues(values, domain)
}

// NewConstant returns the constant function c on domain
func NewConstant(c float64, domain [2]float64) (*Chebtech, error) {
	return New(mat.NewDense(1, 1, []float64{c}), domain)
}

func (f *Chebtech) IsEmpty() bool { return f == nil || f.coeffs == nil }

func (f *Chebtech) Domain() [2]float64 { return f.domain }

// Length returns the number of coefficients per column
func (f *Chebtech) Length() int {
	if f.IsEmpty() {
		return 0
	}
	n, _ := f.coeffs.Dims()
	return n
}

// Columns returns the number of components
func (f *Chebtech) Columns() int {
	if f.IsEmpty() {
		return 0
	}
	_, k := f.coeffs.Dims()
	return k
}

// Coeffs returns a copy of the coefficient matrix
func (f *Chebtech) Coeffs() *mat.Dense {
	if f.IsEmpty() {
		return nil
	}
	return mat.DenseCopyOf(f.coeffs)
}

// Values returns the function values on the Chebyshev grid of the same length
func (f *Chebtech) Values() *mat.Dense {
	if f.IsEmpty() {
		return nil
	}
	return CoeffsToVals(f.coeffs)
}

// Points returns the physical grid the values live on
func (f *Chebtech) Points() []float64 {
	return mapFromReference(Points(f.Length()), f.domain)
}

// VScale returns the per column scale of the fitted values
func (f *Chebtech) VScale() []float64 {
	return append([]float64(nil), f.vscale...)
}

// Column returns component j as a scalar valued Chebtech
func (f *Chebtech) Column(j int) *Chebtech {
	if f.IsEmpty() {
		return NewEmpty(f.domain)
	}
	n, _ := f.coeffs.Dims()
	c := mat.DenseCopyOf(f.coeffs.Slice(0, n, j, j+1))
	return &Chebtech{
		domain: f.domain,
		coeffs: c,
		vscale: []float64{f.vscale[j]},
	}
}

// Eval evaluates all components at x
func (f *Chebtech) Eval(x float64) []float64 {
	if f.IsEmpty() {
		return nil
	}
	t := toReference(x, f.domain)
	out := make([]float64, f.Columns())
	for j := range out {
		out[j] = clenshaw(t, f.coeffs, j)
	}
	return out
}

// EvalColumn evaluates component j at every point of x
func (f *Chebtech) EvalColumn(x []float64, j int) []float64 {
	out := make([]float64, len(x))
	if f.IsEmpty() {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}
	for i, xi := range x {
		out[i] = clenshaw(toReference(xi, f.domain), f.coeffs, j)
	}
	return out
}

// Evaluate evaluates every component at every point of x, one row per point
func (f *Chebtech) Evaluate(x []float64) *mat.Dense {
	if f.IsEmpty() || len(x) == 0 {
		return nil
	}
	k := f.Columns()
	out := mat.NewDense(len(x), k, nil)
	for i, xi := range x {
		t := toReference(xi, f.domain)
		for j := 0; j < k; j++ {
			out.Set(i, j, clenshaw(t, f.coeffs, j))
		}
	}
	return out
}

func (f *Chebtech) String() string {
	if f.IsEmpty() {
		return fmt.Sprintf("Chebtech on [%g,%g]: empty", f.domain[0], f.domain[1])
	}
	var sb strings.Builder
	n, k := f.coeffs.Dims()
	sb.WriteString(fmt.Sprintf("Chebtech on [%g,%g]: length %d, columns %d\n",
		f.domain[0], f.domain[1], n, k))
	sb.WriteString(fmt.Sprintf("vscale: %v\n", f.vscale))
	sb.WriteString(fmt.Sprintf("coeffs:\n%v\n", mat.Formatted(f.coeffs, mat.Squeeze())))
	return sb.String()
}

// clenshaw sums column j of c at t in [-1,1]
func clenshaw(t float64, c *mat.Dense, j int) float64 {
	n, _ := c.Dims()
	var b1, b2 float64
	for k := n - 1; k >= 1; k-- {
		b1, b2 = c.At(k, j)+2*t*b1-b2, b1
	}
	return c.At(0, j) + t*b1 - b2
}

func checkDomain(domain [2]float64) error {
	a, b := domain[0], domain[1]
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) || !(a < b) {
		return fmt.Errorf("%w: domain [%g,%g]", ErrInvalidArgument, a, b)
	}
	return nil
}

func toReference(x float64, domain [2]float64) float64 {
	a, b := domain[0], domain[1]
	return (2*x - a - b) / (b - a)
}

// mapFromReference returns 0.5*(b-a)*t + 0.5*(a+b) for each reference point t
func mapFromReference(t []float64, domain [2]float64) []float64 {
	if len(t) == 0 {
		return nil
	}
	a, b := domain[0], domain[1]
	x := make([]float64, len(t))
	vecmath.ScaleBlock(x, t, 0.5*(b-a))
	mid := 0.5 * (a + b)
	for i := range x {
		x[i] += mid
	}
	x[0], x[len(x)-1] = math.Max(x[0], a), math.Min(x[len(x)-1], b)
	return x
}

func columnMaxAbs(v *mat.Dense) []float64 {
	n, k := v.Dims()
	out := make([]float64, k)
	col := make([]float64, n)
	for j := 0; j < k; j++ {
		mat.Col(col, j, v)
		out[j] = vecmath.MaxAbs(col)
	}
	return out
}
