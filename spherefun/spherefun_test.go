package spherefun

import (
	"bytes"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/spectralfun/trigtech"
)

func TestNewValidation(t *testing.T) {
	cols := trigtech.NewFromValues(mat.NewDense(5, 2, nil))
	rows3 := trigtech.NewFromValues(mat.NewDense(4, 3, nil))
	rows2 := trigtech.NewFromValues(mat.NewDense(4, 2, nil))

	_, err := New(cols, rows3, []float64{1, 1}, false)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = New(cols, rows2, []float64{1, math.NaN()}, false)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = New(cols, trigtech.NewEmpty(), []float64{1, 1}, false)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	f, err := New(cols, rows2, []float64{1, 2}, false)
	require.NoError(t, err)
	assert.Equal(t, 2, f.Rank())
	assert.False(t, f.IsEmpty())

	e, err := New(trigtech.NewEmpty(), trigtech.NewEmpty(), nil, true)
	require.NoError(t, err)
	assert.True(t, e.IsEmpty())
	assert.False(t, e.NonZeroPoles())
	assert.Nil(t, e.PoleValues())
	assert.Equal(t, 0.0, e.Eval(0.3, 0.2))
}

func TestEvalSeparable(t *testing.T) {
	// f(θ,λ) = 2 cos θ + 3 sin θ cos λ
	cv := mat.NewDense(8, 2, nil)
	rv := mat.NewDense(6, 2, nil)
	for i, th := range trigtech.Points(8) {
		cv.Set(i, 0, math.Cos(th))
		cv.Set(i, 1, math.Sin(th))
	}
	for i, la := range trigtech.Points(6) {
		rv.Set(i, 0, 1)
		rv.Set(i, 1, math.Cos(la))
	}
	f, err := New(trigtech.NewFromValues(cv), trigtech.NewFromValues(rv), []float64{2, 3}, true)
	require.NoError(t, err)

	for _, th := range []float64{0, 0.4, 1.9, math.Pi} {
		for _, la := range []float64{-math.Pi, -1, 0.5, 2.5} {
			want := 2*math.Cos(th) + 3*math.Sin(th)*math.Cos(la)
			assert.InDelta(t, want, f.Eval(th, la), 1.e-13)
		}
	}
	pv := f.PoleValues()
	assert.InDeltaSlice(t, []float64{1, 0}, pv.RawRowView(0), 1.e-14)
	assert.InDeltaSlice(t, []float64{-1, 0}, pv.RawRowView(1), 1.e-14)
	assert.InDeltaSlice(t, []float64{1, -1}, f.RowPointValues(), 1.e-14)

	// a function already in BMC-I form is left unchanged
	g, err := f.ProjectOntoBMCI()
	require.NoError(t, err)
	assert.InDeltaSlice(t, f.SampleDFS(9, 7).RawMatrix().Data, g.SampleDFS(9, 7).RawMatrix().Data, 1.e-13)
}

func TestSampleDFSMatchesEval(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	f := randomSpherefun(t, rng, 7, 6, 3, false)
	S := f.SampleDFS(5, 4)
	for i, th := range trigtech.Points(5) {
		for j, la := range trigtech.Points(4) {
			assert.InDelta(t, f.Eval(th, la), S.At(i, j), 1.e-13)
		}
	}
	assert.Nil(t, f.SampleDFS(0, 4))
}

func TestPartitionPlusReconstruct(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for _, poles := range []bool{false, true} {
		f := randomSpherefun(t, rng, 9, 10, 3, poles)
		fp, fm, err := f.Partition()
		require.NoError(t, err)
		assert.Equal(t, poles, fp.NonZeroPoles())
		assert.False(t, fm.NonZeroPoles())

		sum, err := fp.Plus(fm)
		require.NoError(t, err)
		assert.InDeltaSlice(t, f.SampleDFS(11, 12).RawMatrix().Data, sum.SampleDFS(11, 12).RawMatrix().Data, 1.e-13)

		// the even part is π periodic in λ, the odd part π antiperiodic
		for _, la := range []float64{-2, 0.1, 1.3} {
			assert.InDelta(t, fp.Eval(0.7, la), fp.Eval(0.7, la+math.Pi), 1.e-13)
			assert.InDelta(t, fm.Eval(0.7, la), -fm.Eval(0.7, la+math.Pi), 1.e-13)
		}
	}
}

func TestPartitionDropsVanishingTerms(t *testing.T) {
	// a constant row function has no odd part
	cv := mat.NewDense(5, 1, []float64{1, 2, 3, 4, 5})
	rv := mat.NewDense(6, 1, []float64{1, 1, 1, 1, 1, 1})
	f, err := New(trigtech.NewFromValues(cv), trigtech.NewFromValues(rv), []float64{1}, true)
	require.NoError(t, err)
	fp, fm, err := f.Partition()
	require.NoError(t, err)
	assert.Equal(t, 1, fp.Rank())
	assert.True(t, fp.NonZeroPoles())
	assert.True(t, fm.IsEmpty())
}

func TestPlus(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	a := randomSpherefun(t, rng, 6, 8, 2, true)
	b := randomSpherefun(t, rng, 9, 5, 3, false)

	_, err := a.Plus(a)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// the pole term leads regardless of operand order
	s, err := b.Plus(a)
	require.NoError(t, err)
	assert.Equal(t, 5, s.Rank())
	assert.True(t, s.NonZeroPoles())
	assert.Equal(t, 9, s.Cols().Length())
	assert.Equal(t, 8, s.Rows().Length())
	assert.Equal(t, a.Pivots()[0], s.Pivots()[0])
	for _, th := range []float64{0.2, 2.2} {
		for _, la := range []float64{-0.5, 1.7} {
			assert.InDelta(t, a.Eval(th, la)+b.Eval(th, la), s.Eval(th, la), 1.e-13)
		}
	}

	e, err := New(trigtech.NewEmpty(), trigtech.NewEmpty(), nil, false)
	require.NoError(t, err)
	s, err = e.Plus(b)
	require.NoError(t, err)
	assert.Same(t, b, s)
}

func TestDebug(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	f := randomSpherefun(t, rng, 5, 4, 2, true)
	var buf bytes.Buffer
	f.Debug(&buf)
	out := buf.String()
	assert.Contains(t, out, "=== Spherefun Debug Info ===")
	assert.Contains(t, out, "rank 2")
	assert.Contains(t, out, "nonZeroPoles true")
	assert.Contains(t, out, "pole values:")
}
