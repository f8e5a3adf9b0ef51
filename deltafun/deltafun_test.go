package deltafun

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/spectralfun/chebtech"
	"github.com/notargets/spectralfun/utils"
)

var dom = chebtech.DefaultDomain

func smooth(t *testing.T, f func(float64) float64, n int) *chebtech.Chebtech {
	t.Helper()
	c, err := chebtech.NewFromFunc(f, n, dom)
	require.NoError(t, err)
	return c
}

func TestNewSortsAndValidates(t *testing.T) {
	fun := smooth(t, math.Cos, 10)
	imp := mat.NewDense(2, 3, []float64{
		1, 2, 3,
		0, 0, 4,
	})
	d, err := New(fun, imp, []float64{0.5, -0.5, 0})
	require.NoError(t, err)
	assert.Equal(t, []float64{-0.5, 0, 0.5}, d.Locations())
	assert.Equal(t, []float64{2, 3, 1, 0, 4, 0}, d.Impulses().RawMatrix().Data)
	assert.Equal(t, 2, d.Order())

	_, err = New(fun, imp, []float64{0, 1.5, 0.2})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = New(fun, imp, []float64{0, 0.2})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = New(nil, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// exact duplicates merge
	d, err = New(fun, mat.NewDense(1, 2, []float64{1, 2}), []float64{0.3, 0.3})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.3}, d.Locations())
	assert.Equal(t, []float64{3}, d.Impulses().RawMatrix().Data)
}

func TestSimplify(t *testing.T) {
	fun := smooth(t, math.Exp, 12)
	imp := mat.NewDense(3, 3, []float64{
		1, 1.e-20, 2,
		0, 0, 0,
		0, 0, 0,
	})
	d, err := New(fun, imp, []float64{-0.2, 0.1, 0.1 + 1.e-15})
	require.NoError(t, err)
	s := d.Simplify()
	// the close pair merges, then trailing zero derivative rows are trimmed
	assert.Equal(t, []float64{-0.2, 0.1}, s.Locations())
	assert.Equal(t, 1, s.Order())
	assert.InDeltaSlice(t, []float64{1, 2}, s.Impulses().RawMatrix().Data, 1.e-15)

	tol := utils.DefaultTolerances()
	tol.MergeTol = 0
	s = d.SimplifyWith(tol)
	// no merging, but the negligible mass at 0.1 is dropped
	assert.Equal(t, []float64{-0.2, 0.1 + 1.e-15}, s.Locations())

	zero, err := New(fun, mat.NewDense(1, 1, nil), []float64{0})
	require.NoError(t, err)
	assert.False(t, zero.HasPointMasses())
	assert.Nil(t, zero.Simplify().Impulses())
}

func TestDiffRaisesOrder(t *testing.T) {
	d, err := NewDirac(0.25, 0, dom)
	require.NoError(t, err)
	dd := d.Diff()
	assert.Equal(t, 2, dd.Order())
	assert.Equal(t, []float64{0, 1}, dd.Impulses().RawMatrix().Data)
	assert.Equal(t, []float64{0.25}, dd.Locations())
}

func TestInnerProductSmoothDelegation(t *testing.T) {
	f := smooth(t, math.Sin, 16)
	g := smooth(t, math.Exp, 16)
	want, err := f.InnerProduct(g)
	require.NoError(t, err)

	df, err := New(f, nil, nil)
	require.NoError(t, err)
	dg, err := New(g, nil, nil)
	require.NoError(t, err)

	for _, pair := range [][2]Operand{
		{Distribution{df}, Distribution{dg}},
		{Distribution{df}, Smooth{g}},
		{Smooth{f}, Distribution{dg}},
		{Smooth{f}, Smooth{g}},
	} {
		ip, ok, err := InnerProduct(pair[0], pair[1])
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, want, ip)
	}
}

func TestInnerProductTwoDistributionsFails(t *testing.T) {
	a, err := NewDirac(0, 0, dom)
	require.NoError(t, err)
	b, err := NewDirac(0.5, 1, dom)
	require.NoError(t, err)
	_, _, err = InnerProduct(Distribution{a}, Distribution{b})
	assert.ErrorIs(t, err, ErrUnsupportedOperation)
}

func TestInnerProductUnitDelta(t *testing.T) {
	g := smooth(t, math.Exp, 20)
	for _, x0 := range []float64{-1, -0.3, 0, 0.71, 1} {
		d, err := NewDirac(x0, 0, dom)
		require.NoError(t, err)
		ip, ok, err := InnerProduct(Distribution{d}, Smooth{g})
		require.NoError(t, err)
		require.True(t, ok)
		assert.InDelta(t, math.Exp(x0), ip, 1.e-13)
	}
}

func TestInnerProductDerivativeSigns(t *testing.T) {
	g := smooth(t, math.Sin, 24)
	x0 := 0.4
	// 2δ - 3δ' + 5δ'' pairs to 2g + 3g' + 5g''
	fun, err := chebtech.NewConstant(0, dom)
	require.NoError(t, err)
	d, err := New(fun, mat.NewDense(3, 1, []float64{2, -3, 5}), []float64{x0})
	require.NoError(t, err)
	ip, ok, err := InnerProduct(Distribution{d}, Smooth{g})
	require.NoError(t, err)
	require.True(t, ok)
	want := 2*math.Sin(x0) + 3*math.Cos(x0) - 5*math.Sin(x0)
	assert.InDelta(t, want, ip, 1.e-10)
}

func TestInnerProductSeveralLocations(t *testing.T) {
	g := smooth(t, func(x float64) float64 { return x * x * x }, 4)
	fun, err := chebtech.NewConstant(0, dom)
	require.NoError(t, err)
	imp := mat.NewDense(2, 2, []float64{
		1, 2,
		1, 0,
	})
	d, err := New(fun, imp, []float64{-0.5, 0.5})
	require.NoError(t, err)
	ip, _, err := InnerProduct(Distribution{d}, Smooth{g})
	require.NoError(t, err)
	// g(-0.5) - g'(-0.5) + 2 g(0.5)
	assert.InDelta(t, -0.125-0.75+0.25, ip, 1.e-13)
}

func TestInnerProductIsSymmetric(t *testing.T) {
	g := smooth(t, math.Cos, 20)
	d, err := NewDirac(-0.2, 1, dom)
	require.NoError(t, err)
	a, _, err := InnerProduct(Distribution{d}, Smooth{g})
	require.NoError(t, err)
	b, _, err := InnerProduct(Smooth{g}, Distribution{d})
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.InDelta(t, math.Sin(-0.2), a, 1.e-12)
}

func TestInnerProductScalarPromotion(t *testing.T) {
	fun := smooth(t, math.Exp, 12)
	d, err := New(fun, mat.NewDense(2, 2, []float64{1, 2, 3, 4}), []float64{-0.5, 0.25})
	require.NoError(t, err)
	c, err := chebtech.NewConstant(2.5, dom)
	require.NoError(t, err)

	viaScalar, ok, err := InnerProduct(Distribution{d}, Scalar{2.5})
	require.NoError(t, err)
	require.True(t, ok)
	viaConst, _, err := InnerProduct(Distribution{d}, Smooth{c})
	require.NoError(t, err)
	assert.Equal(t, viaConst, viaScalar)
	assert.InDelta(t, 2.5*(1+2), viaScalar, 1.e-14)

	swapped, _, err := InnerProduct(Scalar{2.5}, Distribution{d})
	require.NoError(t, err)
	assert.Equal(t, viaScalar, swapped)

	_, _, err = InnerProduct(Distribution{d}, Scalar{1, 2})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, _, err = InnerProduct(Scalar{1}, Scalar{2})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestInnerProductEmpty(t *testing.T) {
	g := smooth(t, math.Exp, 8)
	empty, err := New(chebtech.NewEmpty(dom), nil, nil)
	require.NoError(t, err)
	ip, ok, err := InnerProduct(Distribution{empty}, Smooth{g})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, ip)
	_, ok, err = InnerProduct(Smooth{g}, Scalar{})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInnerProductIgnoresSmoothPartOfDistribution(t *testing.T) {
	g := smooth(t, math.Exp, 16)
	fun := smooth(t, math.Cos, 16)
	d, err := New(fun, mat.NewDense(1, 1, []float64{1}), []float64{0})
	require.NoError(t, err)
	ip, _, err := InnerProduct(Distribution{d}, Smooth{g})
	require.NoError(t, err)
	assert.InDelta(t, 1., ip, 1.e-14)
}
