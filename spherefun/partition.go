package spherefun

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/spectralfun/trigtech"
	"github.com/notargets/spectralfun/utils"
)

func isEven(k int) bool { return k%2 == 0 }
func isOdd(k int) bool  { return k%2 != 0 }

// Partition splits f into the part with even longitude wave numbers and
// the part with odd ones, f = fp + fm. Terms whose row function vanishes
// in a part are dropped from that part. The pole term, if any, stays with
// the even part.
func (f *Spherefun) Partition() (fp, fm *Spherefun, err error) {
	return f.PartitionWith(utils.DefaultTolerances())
}

// PartitionWith is Partition with explicit tolerances for dropping terms
func (f *Spherefun) PartitionWith(tol utils.Tolerances) (fp, fm *Spherefun, err error) {
	if f.IsEmpty() {
		return f, f, nil
	}
	if err = tol.Validate(); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	even := &Spherefun{
		cols:         f.cols,
		rows:         f.rows.ZeroModes(isOdd),
		pivots:       f.Pivots(),
		nonZeroPoles: f.nonZeroPoles,
	}
	odd := &Spherefun{
		cols:   f.cols,
		rows:   f.rows.ZeroModes(isEven),
		pivots: f.Pivots(),
	}
	// both parts are measured against the rows of f
	rScale := utils.MaxAbsCDense(f.rows.Coeffs())
	if fp, err = even.compress(tol, rScale); err != nil {
		return nil, nil, err
	}
	if fm, err = odd.compress(tol, rScale); err != nil {
		return nil, nil, err
	}
	return fp, fm, nil
}

// Plus returns f + g. Ranks add; expansions are prolonged to the longer of
// the two lengths. At most one operand may carry a pole term, which becomes
// term 0 of the sum.
func (f *Spherefun) Plus(g *Spherefun) (*Spherefun, error) {
	switch {
	case f.IsEmpty():
		return g, nil
	case g.IsEmpty():
		return f, nil
	case f.nonZeroPoles && g.nonZeroPoles:
		return nil, fmt.Errorf("%w: both operands carry a pole term", ErrInvalidArgument)
	case g.nonZeroPoles:
		f, g = g, f
	}
	m := max(f.cols.Length(), g.cols.Length())
	n := max(f.rows.Length(), g.rows.Length())
	cols := utils.HCatCDense(f.cols.Prolong(m).Coeffs(), g.cols.Prolong(m).Coeffs())
	rows := utils.HCatCDense(f.rows.Prolong(n).Coeffs(), g.rows.Prolong(n).Coeffs())
	pivots := append(f.Pivots(), g.pivots...)
	return New(trigtech.New(cols), trigtech.New(rows), pivots, f.nonZeroPoles)
}

// compress drops terms with a negligible pivot or a vanishing column or row
// function, row functions being measured against rowScale. Dropping the
// pole term clears the pole flag.
func (f *Spherefun) compress(tol utils.Tolerances, rowScale float64) (*Spherefun, error) {
	C := f.cols.Coeffs()
	R := f.rows.Coeffs()
	cScale := math.Max(utils.MaxAbsCDense(C), math.SmallestNonzeroFloat64)
	rScale := math.Max(rowScale, math.SmallestNonzeroFloat64)
	var pScale float64
	for _, p := range f.pivots {
		pScale = math.Max(pScale, math.Abs(p))
	}
	var keep []int
	for j, p := range f.pivots {
		if math.Abs(p) <= tol.Eps*pScale {
			continue
		}
		if columnMaxAbs(C, j) <= tol.ZeroTol*cScale || columnMaxAbs(R, j) <= tol.ZeroTol*rScale {
			continue
		}
		keep = append(keep, j)
	}
	if len(keep) == 0 {
		return New(trigtech.NewEmpty(), trigtech.NewEmpty(), nil, false)
	}
	pivots := make([]float64, len(keep))
	for i, j := range keep {
		pivots[i] = f.pivots[j]
	}
	return New(f.cols.SelectColumns(keep), f.rows.SelectColumns(keep), pivots,
		f.nonZeroPoles && keep[0] == 0)
}

func columnMaxAbs(c *mat.CDense, j int) (mx float64) {
	for _, v := range utils.ColumnCDense(c, j) {
		if a := math.Hypot(real(v), imag(v)); a > mx {
			mx = a
		}
	}
	return
}
