package spherefun

import (
	"fmt"
	"io"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/spectralfun/trigtech"
)

// Spherefun is a function on the sphere in doubled Fourier sphere form,
//
//	f(θ,λ) = Σ_j c_j(θ) d_j r_j(λ),
//
// where θ in [-π,π] is the doubled colatitude (θ in [0,π] is the sphere,
// the poles are θ = 0 and θ = π) and λ in [-π,π] is longitude. The column
// functions c_j live in Cols, the row functions r_j in Rows and the d_j are
// the pivots. With NonZeroPoles set, term 0 is the pole term: its row
// function is constant and it alone may be nonzero at the poles.
type Spherefun struct {
	cols         *trigtech.Trigtech // [m × r]
	rows         *trigtech.Trigtech // [n × r]
	pivots       []float64
	nonZeroPoles bool

	poleValues     *mat.Dense // [2 × r]: c_j(0), c_j(π)
	rowPointValues []float64  // r_j(-π)
}

// New assembles a Spherefun from its column and row expansions. The rank
// is the common column count of cols and rows and must equal len(pivots).
func New(cols, rows *trigtech.Trigtech, pivots []float64, nonZeroPoles bool) (*Spherefun, error) {
	if cols.IsEmpty() || rows.IsEmpty() || len(pivots) == 0 {
		if cols.IsEmpty() && rows.IsEmpty() && len(pivots) == 0 {
			return &Spherefun{cols: trigtech.NewEmpty(), rows: trigtech.NewEmpty()}, nil
		}
		return nil, fmt.Errorf("%w: cols, rows and pivots must be all empty or all non-empty",
			ErrInvalidArgument)
	}
	if cols.Columns() != len(pivots) || rows.Columns() != len(pivots) {
		return nil, fmt.Errorf("%w: rank mismatch, cols %d, rows %d, pivots %d",
			ErrDimensionMismatch, cols.Columns(), rows.Columns(), len(pivots))
	}
	for _, p := range pivots {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return nil, fmt.Errorf("%w: non-finite pivot %v", ErrInvalidArgument, p)
		}
	}
	f := &Spherefun{
		cols:         cols,
		rows:         rows,
		pivots:       append([]float64(nil), pivots...),
		nonZeroPoles: nonZeroPoles,
	}
	f.updatePointValues()
	return f, nil
}

// updatePointValues evaluates the column functions at both poles and the
// row functions at the left end of the longitude interval
func (f *Spherefun) updatePointValues() {
	r := f.Rank()
	f.poleValues = mat.NewDense(2, r, nil)
	f.poleValues.SetRow(0, f.cols.Eval(0))
	f.poleValues.SetRow(1, f.cols.Eval(math.Pi))
	f.rowPointValues = f.rows.Eval(-math.Pi)
}

func (f *Spherefun) IsEmpty() bool { return f == nil || len(f.pivots) == 0 }

func (f *Spherefun) Rank() int {
	if f == nil {
		return 0
	}
	return len(f.pivots)
}

func (f *Spherefun) Cols() *trigtech.Trigtech { return f.cols }
func (f *Spherefun) Rows() *trigtech.Trigtech { return f.rows }
func (f *Spherefun) NonZeroPoles() bool       { return f.nonZeroPoles }

func (f *Spherefun) Pivots() []float64 { return append([]float64(nil), f.pivots...) }

// PoleValues returns the column functions at θ = 0 (row 0) and θ = π (row 1)
func (f *Spherefun) PoleValues() *mat.Dense {
	if f.IsEmpty() {
		return nil
	}
	return mat.DenseCopyOf(f.poleValues)
}

// RowPointValues returns the row functions at λ = -π
func (f *Spherefun) RowPointValues() []float64 {
	return append([]float64(nil), f.rowPointValues...)
}

// Eval returns f(θ,λ) in doubled coordinates
func (f *Spherefun) Eval(theta, lambda float64) float64 {
	if f.IsEmpty() {
		return 0
	}
	c := f.cols.Eval(theta)
	r := f.rows.Eval(lambda)
	var sum float64
	for j, p := range f.pivots {
		sum += c[j] * p * r[j]
	}
	return sum
}

// SampleDFS samples f on the nθ × nλ tensor grid of trigtech points,
// row i is θ_i and column j is λ_j
func (f *Spherefun) SampleDFS(nTheta, nLambda int) *mat.Dense {
	if nTheta <= 0 || nLambda <= 0 {
		return nil
	}
	out := mat.NewDense(nTheta, nLambda, nil)
	if f.IsEmpty() {
		return out
	}
	r := f.Rank()
	C := mat.NewDense(nTheta, r, nil)
	for i, th := range trigtech.Points(nTheta) {
		c := f.cols.Eval(th)
		for j := range c {
			c[j] *= f.pivots[j]
		}
		C.SetRow(i, c)
	}
	R := mat.NewDense(nLambda, r, nil)
	for i, la := range trigtech.Points(nLambda) {
		R.SetRow(i, f.rows.Eval(la))
	}
	out.Mul(C, R.T())
	return out
}

func (f *Spherefun) String() string {
	if f.IsEmpty() {
		return "Spherefun: empty"
	}
	return fmt.Sprintf("Spherefun: rank %d, cols length %d, rows length %d, nonZeroPoles %v",
		f.Rank(), f.cols.Length(), f.rows.Length(), f.nonZeroPoles)
}

// Debug writes the full representation to w
func (f *Spherefun) Debug(w io.Writer) {
	var sb strings.Builder
	sb.WriteString("=== Spherefun Debug Info ===\n")
	sb.WriteString(f.String() + "\n")
	if !f.IsEmpty() {
		sb.WriteString(fmt.Sprintf("pivots: %v\n", f.pivots))
		sb.WriteString(fmt.Sprintf("pole values:\n%v\n", mat.Formatted(f.poleValues, mat.Squeeze())))
		sb.WriteString(fmt.Sprintf("row point values: %v\n", f.rowPointValues))
		sb.WriteString("cols " + f.cols.String())
		sb.WriteString("rows " + f.rows.String())
	}
	fmt.Fprint(w, sb.String())
}
