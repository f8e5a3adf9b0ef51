package deltafun

import (
	"fmt"

	vecmath "github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/spectralfun/chebtech"
)

// InnerProduct returns <f,g> = ∫ conj(f) g where at most one operand carries
// point masses. ok is false when either operand is empty, in which case
// there is no value and no error.
//
// A delta derivative pairs by integration by parts:
//
//	<δ^(i)(x-x0), g> = (-1)^i g^(i)(x0)
//
// Once the distributional operand is known to carry point masses only the
// point mass contribution is returned; the pairing of its smooth part with
// g is not computed and contributes zero.
func InnerProduct(f, g Operand) (ip float64, ok bool, err error) {
	if f == nil || g == nil {
		return 0, false, fmt.Errorf("%w: nil operand", ErrInvalidArgument)
	}
	if f.isEmpty() || g.isEmpty() {
		return 0, false, nil
	}

	fd, fIsDist := f.(Distribution)
	gd, gIsDist := g.(Distribution)
	if fIsDist && gIsDist {
		fMass, gMass := fd.D.HasPointMasses(), gd.D.HasPointMasses()
		switch {
		case !fMass && !gMass:
			return smoothInnerProduct(fd.D.fun, gd.D.fun)
		case fMass && gMass:
			return 0, false, fmt.Errorf("%w: at most one operand may be a non-trivial distribution",
				ErrUnsupportedOperation)
		}
	}

	// Put the distributional operand first
	if !fIsDist || (gIsDist && !fd.D.HasPointMasses()) {
		f, g = g, f
	}
	F, isDist := f.(Distribution)
	if !isDist {
		return innerProductNoDistribution(f, g)
	}

	gf, err := asSmooth(g, F.D.Domain())
	if err != nil {
		return 0, false, err
	}
	if !F.D.HasPointMasses() {
		return smoothInnerProduct(F.D.fun, gf)
	}
	if gf.Domain() != F.D.Domain() {
		return 0, false, fmt.Errorf("%w: domains [%g,%g] and [%g,%g] differ", ErrInvalidArgument,
			F.D.Domain()[0], F.D.Domain()[1], gf.Domain()[0], gf.Domain()[1])
	}
	if gf.Columns() != 1 {
		return 0, false, fmt.Errorf("%w: smooth operand must be scalar valued, has %d columns",
			ErrInvalidArgument, gf.Columns())
	}

	D := F.D.Simplify()
	deltaPart := pairPointMasses(D.locations, D.impulses, gf)

	// The smooth part of F is not paired with g.
	var smoothPart float64
	return deltaPart + smoothPart, true, nil
}

// pairPointMasses sums (-1)^i M[i,j] g^(i)(loc_j) over derivative orders i
// and locations j
func pairPointMasses(loc []float64, M *mat.Dense, g *chebtech.Chebtech) float64 {
	if M == nil {
		return 0
	}
	m, k := M.Dims()

	// row i holds the i-th derivative of g at every location
	samples := mat.NewDense(m, k, nil)
	gi := g
	for i := 0; i < m; i++ {
		if i > 0 {
			gi = gi.Diff()
		}
		samples.SetRow(i, gi.EvalColumn(loc, 0))
	}

	signs := make([]float64, m)
	for i := range signs {
		signs[i] = 1
		if i%2 == 1 {
			signs[i] = -1
		}
	}

	contrib := make([]float64, k)
	imp := make([]float64, m)
	sgnImp := make([]float64, m)
	smp := make([]float64, m)
	for j := 0; j < k; j++ {
		mat.Col(imp, j, M)
		mat.Col(smp, j, samples)
		vecmath.MulBlock(sgnImp, imp, signs)
		contrib[j] = vecmath.DotProduct(sgnImp, smp)
	}
	return vecmath.Sum(contrib)
}

func smoothInnerProduct(f, g *chebtech.Chebtech) (float64, bool, error) {
	ip, err := f.InnerProduct(g)
	if err != nil {
		return 0, false, err
	}
	return ip, true, nil
}

// innerProductNoDistribution pairs two operands neither of which is a
// distribution; a scalar is promoted on the domain of the other operand.
func innerProductNoDistribution(f, g Operand) (float64, bool, error) {
	fs, fOK := f.(Smooth)
	gs, gOK := g.(Smooth)
	switch {
	case fOK && gOK:
		return smoothInnerProduct(fs.F, gs.F)
	case fOK:
		gf, err := asSmooth(g, fs.F.Domain())
		if err != nil {
			return 0, false, err
		}
		return smoothInnerProduct(fs.F, gf)
	case gOK:
		ff, err := asSmooth(f, gs.F.Domain())
		if err != nil {
			return 0, false, err
		}
		return smoothInnerProduct(ff, gs.F)
	}
	return 0, false, fmt.Errorf("%w: unsupported operand types %s and %s",
		ErrInvalidArgument, f.kind(), g.kind())
}
