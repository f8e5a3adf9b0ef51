package deltafun

import (
	"fmt"
	"math"
	"strings"

	vecmath "github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/spectralfun/chebtech"
	"github.com/notargets/spectralfun/utils"
)

// DeltaFunction is a smooth function plus point masses. Column j of the
// impulse matrix belongs to Locations()[j]; row i is the weight of the i-th
// derivative of the Dirac delta at that location.
type DeltaFunction struct {
	fun       *chebtech.Chebtech
	locations []float64
	impulses  *mat.Dense // [m × k], nil when there are no point masses
}

// New builds a DeltaFunction. Locations are sorted, must lie in the domain
// of fun, and one impulse column is required per location. Exactly repeated
// locations are merged by summing their impulses.
func New(fun *chebtech.Chebtech, impulses mat.Matrix, locations []float64) (*DeltaFunction, error) {
	if fun == nil {
		return nil, fmt.Errorf("%w: nil smooth part", ErrInvalidArgument)
	}
	d := &DeltaFunction{fun: fun}
	if impulses == nil || len(locations) == 0 {
		if len(locations) != 0 {
			return nil, fmt.Errorf("%w: %d locations without impulses", ErrInvalidArgument, len(locations))
		}
		return d, nil
	}
	m, k := impulses.Dims()
	if k != len(locations) || m == 0 {
		return nil, fmt.Errorf("%w: impulse matrix is %d×%d for %d locations",
			ErrInvalidArgument, m, k, len(locations))
	}
	dom := fun.Domain()
	for _, x := range locations {
		if math.IsNaN(x) || x < dom[0] || x > dom[1] {
			return nil, fmt.Errorf("%w: location %g outside [%g,%g]", ErrInvalidArgument, x, dom[0], dom[1])
		}
	}
	d.locations, d.impulses = sortByLocation(locations, mat.DenseCopyOf(impulses))
	d.locations, d.impulses = mergeLocations(d.locations, d.impulses, 0)
	return d, nil
}

// NewDirac returns the order-th derivative of a unit delta at x0 on a zero
// smooth part over domain
func NewDirac(x0 float64, order int, domain [2]float64) (*DeltaFunction, error) {
	if order < 0 {
		return nil, fmt.Errorf("%w: negative derivative order %d", ErrInvalidArgument, order)
	}
	zero, err := chebtech.NewConstant(0, domain)
	if err != nil {
		return nil, err
	}
	imp := mat.NewDense(order+1, 1, nil)
	imp.Set(order, 0, 1)
	return New(zero, imp, []float64{x0})
}

func (d *DeltaFunction) IsEmpty() bool { return d == nil || d.fun.IsEmpty() }

func (d *DeltaFunction) Domain() [2]float64 { return d.fun.Domain() }

// Smooth returns the smooth part
func (d *DeltaFunction) Smooth() *chebtech.Chebtech { return d.fun }

func (d *DeltaFunction) Locations() []float64 {
	return append([]float64(nil), d.locations...)
}

// Impulses returns a copy of the impulse matrix, nil without point masses
func (d *DeltaFunction) Impulses() *mat.Dense {
	if d.impulses == nil {
		return nil
	}
	return mat.DenseCopyOf(d.impulses)
}

// Order returns m, the length of every impulse vector
func (d *DeltaFunction) Order() int {
	if d.impulses == nil {
		return 0
	}
	m, _ := d.impulses.Dims()
	return m
}

// HasPointMasses reports whether any impulse weight is nonzero
func (d *DeltaFunction) HasPointMasses() bool {
	if d == nil || d.impulses == nil {
		return false
	}
	for _, v := range d.impulses.RawMatrix().Data {
		if v != 0 {
			return true
		}
	}
	return false
}

// Eval evaluates the smooth part; point masses have no pointwise value
func (d *DeltaFunction) Eval(x float64) []float64 { return d.fun.Eval(x) }

// Simplify merges point masses closer than the default merge tolerance and
// removes negligible ones
func (d *DeltaFunction) Simplify() *DeltaFunction {
	return d.SimplifyWith(utils.DefaultTolerances())
}

// SimplifyWith canonicalizes the point masses: locations within
// tol.MergeTol of each other are merged by summing impulses, impulse columns
// whose largest weight is below tol.ZeroTol relative to the largest weight
// overall are dropped, and trailing all-zero derivative rows are trimmed.
func (d *DeltaFunction) SimplifyWith(tol utils.Tolerances) *DeltaFunction {
	out := &DeltaFunction{fun: d.fun}
	if d.impulses == nil {
		return out
	}
	locs, imp := mergeLocations(d.locations, mat.DenseCopyOf(d.impulses), tol.MergeTol)

	m, k := imp.Dims()
	scale := vecmath.MaxAbs(imp.RawMatrix().Data)
	if scale == 0 {
		return out
	}
	var keep []int
	col := make([]float64, m)
	for j := 0; j < k; j++ {
		mat.Col(col, j, imp)
		if vecmath.MaxAbs(col) > tol.ZeroTol*scale {
			keep = append(keep, j)
		}
	}
	imp = utils.SelectColumns(imp, keep)
	locs = selectFloats(locs, keep)

	// trailing rows of zeros carry no derivative information
	last := 0
	row := make([]float64, len(keep))
	for i := 0; i < m; i++ {
		mat.Row(row, i, imp)
		if vecmath.MaxAbs(row) > tol.ZeroTol*scale {
			last = i
		}
	}
	out.locations = locs
	out.impulses = mat.DenseCopyOf(imp.Slice(0, last+1, 0, len(keep)))
	return out
}

// Diff differentiates the smooth part and raises the derivative order of
// every point mass by one.
func (d *DeltaFunction) Diff() *DeltaFunction {
	out := &DeltaFunction{fun: d.fun.Diff(), locations: d.Locations()}
	if d.impulses == nil {
		return out
	}
	m, k := d.impulses.Dims()
	imp := mat.NewDense(m+1, k, nil)
	imp.Slice(1, m+1, 0, k).(*mat.Dense).Copy(d.impulses)
	out.impulses = imp
	return out
}

func (d *DeltaFunction) String() string {
	var sb strings.Builder
	dom := d.Domain()
	sb.WriteString(fmt.Sprintf("DeltaFunction on [%g,%g]\n", dom[0], dom[1]))
	if d.impulses == nil {
		sb.WriteString("no point masses\n")
	} else {
		sb.WriteString(fmt.Sprintf("locations: %v\n", d.locations))
		sb.WriteString(fmt.Sprintf("impulses:\n%v\n", mat.Formatted(d.impulses, mat.Squeeze())))
	}
	sb.WriteString(d.fun.String())
	return sb.String()
}

func sortByLocation(locs []float64, imp *mat.Dense) ([]float64, *mat.Dense) {
	sorted := append([]float64(nil), locs...)
	idx := make([]int, len(locs))
	floats.Argsort(sorted, idx)
	return sorted, utils.SelectColumns(imp, idx)
}

// mergeLocations sums the impulses of consecutive sorted locations that are
// within tol of the first location of their group
func mergeLocations(locs []float64, imp *mat.Dense, tol float64) ([]float64, *mat.Dense) {
	m, _ := imp.Dims()
	var (
		outLocs []float64
		cols    [][]float64
	)
	col := make([]float64, m)
	for j, x := range locs {
		mat.Col(col, j, imp)
		if n := len(outLocs); n > 0 && x-outLocs[n-1] <= tol {
			vecmath.AddBlockInPlace(cols[n-1], col)
			continue
		}
		outLocs = append(outLocs, x)
		cols = append(cols, append([]float64(nil), col...))
	}
	out := mat.NewDense(m, len(cols), nil)
	for j, c := range cols {
		out.SetCol(j, c)
	}
	return outLocs, out
}

func selectFloats(s []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, k := range idx {
		out[i] = s[k]
	}
	return out
}
