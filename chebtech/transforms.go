package chebtech

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/mat"
)

// Points returns the n Chebyshev points of the second kind on [-1,1] in
// ascending order, x_j = -cos(pi*j/(n-1)). The sine form keeps the grid
// exactly symmetric about zero.
func Points(n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{0}
	}
	m := n - 1
	x := make([]float64, n)
	for j := 0; j < n; j++ {
		x[j] = math.Sin(math.Pi * float64(2*j-m) / float64(2*m))
	}
	return x
}

// ValsToCoeffs converts values on the ascending Chebyshev grid into
// Chebyshev coefficients, one column at a time.
//
// With w_j = v_{n-1-j} (values on the descending grid cos(pi*j/(n-1))) the
// even extension of w has a real spectrum a_k and c_k = a_k/(n-1), with the
// first and last coefficient halved.
func ValsToCoeffs(values *mat.Dense) *mat.Dense {
	n, k := values.Dims()
	coeffs := mat.NewDense(n, k, nil)
	if n == 1 {
		coeffs.Copy(values)
		return coeffs
	}
	N := 2*n - 2
	fft := fourier.NewFFT(N)
	seq := make([]float64, N)
	spec := make([]complex128, N/2+1)
	scale := 1. / float64(n-1)
	for col := 0; col < k; col++ {
		for j := 0; j < n; j++ {
			seq[j] = values.At(n-1-j, col)
		}
		for j := 1; j < n-1; j++ {
			seq[N-j] = seq[j]
		}
		fft.Coefficients(spec, seq)
		for i := 0; i < n; i++ {
			c := real(spec[i]) * scale
			if i == 0 || i == n-1 {
				c *= 0.5
			}
			coeffs.Set(i, col, c)
		}
	}
	return coeffs
}

// CoeffsToVals evaluates Chebyshev coefficients on the ascending grid of the
// same length, the inverse of ValsToCoeffs.
func CoeffsToVals(coeffs *mat.Dense) *mat.Dense {
	n, k := coeffs.Dims()
	values := mat.NewDense(n, k, nil)
	if n == 1 {
		values.Copy(coeffs)
		return values
	}
	N := 2*n - 2
	fft := fourier.NewFFT(N)
	spec := make([]complex128, N/2+1)
	seq := make([]float64, N)
	for col := 0; col < k; col++ {
		for i := 0; i < n; i++ {
			c := coeffs.At(i, col)
			if i != 0 && i != n-1 {
				c *= 0.5
			}
			spec[i] = complex(c, 0)
		}
		fft.Sequence(seq, spec)
		for j := 0; j < n; j++ {
			values.Set(n-1-j, col, seq[j])
		}
	}
	return values
}
