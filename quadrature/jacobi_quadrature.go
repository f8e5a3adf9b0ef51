package quadrature

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// JacobiGQ computes the N+1 point Gauss quadrature for the Jacobi weight
// (1-x)^alpha (1+x)^beta on [-1,1]. Nodes are the eigenvalues of the
// symmetric Jacobi matrix (Golub-Welsch), returned in ascending order.
func JacobiGQ(alpha, beta float64, N int) (X, W []float64) {
	var (
		fac        float64
		h1, d0, d1 []float64
		VVr        *mat.Dense
	)
	if N < 0 {
		return nil, nil
	}
	if N == 0 {
		X = []float64{-(alpha - beta) / (alpha + beta + 2.)}
		W = []float64{2.}
		return X, W
	}

	h1 = make([]float64, N+1)
	for i := 0; i < N+1; i++ {
		h1[i] = 2*float64(i) + alpha + beta
	}

	// main diagonal: d0[i] = -(β²-α²)/((2i+α+β)*(2i+α+β+2))
	d0 = make([]float64, N+1)
	fac = (beta*beta - alpha*alpha)
	for i := 0; i < N+1; i++ {
		val := h1[i]
		d0[i] = fac / (val * (val + 2.))
	}

	// 0/0 at i=0 when alpha+beta vanishes
	eps := 1.e-16
	if alpha+beta < 10*eps {
		d0[0] = 0.
	}

	// 1st upper diagonal
	d1 = make([]float64, N)
	for i := 0; i < N; i++ {
		ip1 := float64(i + 1)
		val := h1[i]
		d1[i] = 2.0 / (val + 2.0) * math.Sqrt(
			ip1*(ip1+alpha+beta)*(ip1+alpha)*(ip1+beta)/(val+1)/(val+3),
		)
	}

	JJ := symTriDiagonal(d0, d1)

	var eig mat.EigenSym
	ok := eig.Factorize(JJ, true)
	if !ok {
		panic("quadrature: eigenvalue decomposition failed")
	}
	X = eig.Values(nil)

	VVr = mat.NewDense(len(X), len(X), nil)
	eig.VectorsTo(VVr)
	W = make([]float64, len(X))
	copy(W, VVr.RawRowView(0))
	g0 := Gamma0(alpha, beta)
	for i := range W {
		W[i] *= W[i] * g0
	}
	return X, W
}

// JacobiGL computes the N+1 Gauss-Lobatto points for the Jacobi weight.
// These are the zeros of (1-x^2)*P'_N^{alpha,beta}(x).
func JacobiGL(alpha, beta float64, N int) []float64 {
	if N == 0 {
		return []float64{0.0}
	}

	if N == 1 {
		return []float64{-1.0, 1.0}
	}

	// N-1 interior points plus both endpoints
	xint, _ := JacobiGQ(alpha+1, beta+1, N-2)

	x := make([]float64, N+1)
	x[0] = -1.0
	copy(x[1:N], xint)
	x[N] = 1.0

	return x
}

// LegendreGauss returns the n point Gauss-Legendre rule on [-1,1]. It
// integrates polynomials of degree 2n-1 exactly.
func LegendreGauss(n int) (X, W []float64) {
	if n <= 0 {
		return nil, nil
	}
	return JacobiGQ(0, 0, n-1)
}

// MapToInterval maps a rule on [-1,1] onto [a,b] in place and returns it.
func MapToInterval(X, W []float64, a, b float64) ([]float64, []float64) {
	half, mid := 0.5*(b-a), 0.5*(b+a)
	for i := range X {
		X[i] = half*X[i] + mid
	}
	for i := range W {
		W[i] *= half
	}
	return X, W
}

func Gamma0(alpha, beta float64) float64 {
	ab1 := alpha + beta + 1.
	a1 := alpha + 1.
	b1 := beta + 1.
	return math.Gamma(a1) * math.Gamma(b1) * math.Pow(2, ab1) / ab1 / math.Gamma(ab1)
}

func symTriDiagonal(d0, d1 []float64) (Tri *mat.SymDense) {
	n := len(d0)
	dd := make([]float64, n*n)
	for i := 0; i < n; i++ {
		dd[i*n+i] = d0[i]
		if i != n-1 {
			dd[i*n+i+1] = d1[i]
		}
	}
	Tri = mat.NewSymDense(n, dd)
	return
}
