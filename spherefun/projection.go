package spherefun

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/spectralfun/trigtech"
	"github.com/notargets/spectralfun/utils"
)

// ProjectOntoBMCI returns the function nearest to f, in the Frobenius norm
// of the column coefficients, that has BMC-I symmetry:
//
//	f(-θ, λ+π) = f(θ, λ)
//
// Terms with even longitude wave numbers get column functions even in θ,
// terms with odd wave numbers odd ones, and apart from the pole term every
// column function vanishes at both poles. An empty f is returned as is.
func (f *Spherefun) ProjectOntoBMCI() (*Spherefun, error) {
	if f.IsEmpty() {
		return f, nil
	}
	fp, fm, err := f.Partition()
	if err != nil {
		return nil, err
	}
	if fp, err = projectOntoEvenBMCI(fp); err != nil {
		return nil, err
	}
	if fm, err = projectOntoOddBMCI(fm); err != nil {
		return nil, err
	}
	return fp.Plus(fm)
}

// projectOntoEvenBMCI corrects the column coefficients of the even part so
// that X_k = X_{-k} and, apart from the pole term, Σ X_k = Σ (-1)^k X_k = 0;
// odd longitude wave numbers are removed from the rows.
func projectOntoEvenBMCI(f *Spherefun) (*Spherefun, error) {
	if f.IsEmpty() {
		return f, nil
	}
	re, im := utils.SplitComplex(f.cols.Coeffs())
	re, im, padded := padToOddLength(re), padToOddLength(im), isEvenLength(re)
	m, r := re.Dims()

	zeroMode := 0
	if f.nonZeroPoles {
		// the pole term only has to be even in θ
		if A := evenConstraint(m); A != nil {
			if err := correctColumns(A, re, im, 0, 1); err != nil {
				return nil, err
			}
		}
		zeroMode = 1
	}
	if r > zeroMode {
		A := stackRows(poleConstraint(m), evenConstraint(m))
		if err := correctColumns(A, re, im, zeroMode, r); err != nil {
			return nil, err
		}
	}
	if padded {
		re, im = unpad(re), unpad(im)
	}

	cols := realTrigtech(utils.JoinComplex(re, im))
	rows := f.rows.ZeroModes(isOdd)
	return New(cols, rows, f.pivots, f.nonZeroPoles)
}

// projectOntoOddBMCI corrects the column coefficients of the odd part so
// that X_k = -X_{-k}; even longitude wave numbers are removed from the rows.
// Odd column functions vanish at both poles, so there is no pole constraint.
func projectOntoOddBMCI(f *Spherefun) (*Spherefun, error) {
	if f.IsEmpty() {
		return f, nil
	}
	re, im := utils.SplitComplex(f.cols.Coeffs())
	re, im, padded := padToOddLength(re), padToOddLength(im), isEvenLength(re)
	m, r := re.Dims()

	if err := correctColumns(oddConstraint(m), re, im, 0, r); err != nil {
		return nil, err
	}
	if padded {
		re, im = unpad(re), unpad(im)
	}

	cols := realTrigtech(utils.JoinComplex(re, im))
	rows := f.rows.ZeroModes(isEven)
	return New(cols, rows, f.pivots, f.nonZeroPoles)
}

// correctColumns subtracts from columns [j0,j1) of re and im the minimum
// Frobenius norm correction C with A(X-C) = 0. A is real, so the real and
// imaginary parts are corrected independently.
func correctColumns(A *mat.Dense, re, im *mat.Dense, j0, j1 int) error {
	m, _ := re.Dims()
	for _, X := range []*mat.Dense{re, im} {
		Xs := X.Slice(0, m, j0, j1).(*mat.Dense)
		C, err := minNormCorrection(A, Xs)
		if err != nil {
			return err
		}
		Xs.Sub(Xs, C)
	}
	return nil
}

// minNormCorrection returns C = A⁺(AX), the least norm solution of
// A C = A X. For a wide A of full row rank the LQ based solve returns
// exactly this solution.
func minNormCorrection(A, X *mat.Dense) (*mat.Dense, error) {
	var AX, C mat.Dense
	AX.Mul(A, X)
	if err := C.Solve(A, &AX); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSolve, err)
	}
	return &C, nil
}

// evenConstraint returns the first (m-1)/2 rows of I - J, J the row
// reversal, for odd m: row i enforces X_i = X_{m-1-i}. It is nil for m = 1.
func evenConstraint(m int) *mat.Dense {
	h := (m - 1) / 2
	if h == 0 {
		return nil
	}
	A := mat.NewDense(h, m, nil)
	for i := 0; i < h; i++ {
		A.Set(i, i, 1)
		A.Set(i, m-1-i, -1)
	}
	return A
}

// oddConstraint returns the first (m+1)/2 rows of I + J for odd m with the
// self-paired middle entry set to 1: row i enforces X_i = -X_{m-1-i} and the
// middle row X_0 = 0.
func oddConstraint(m int) *mat.Dense {
	h := (m + 1) / 2
	A := mat.NewDense(h, m, nil)
	for i := 0; i < h; i++ {
		A.Set(i, i, A.At(i, i)+1)
		A.Set(i, m-1-i, A.At(i, m-1-i)+1)
	}
	A.Set(h-1, h-1, 1)
	return A
}

// poleConstraint returns the rows evaluating an odd length expansion at
// θ = 0, Σ X_k, and at θ = π, Σ (-1)^k X_k. For m = 1 the two poles give the
// same row and only one is kept.
func poleConstraint(m int) *mat.Dense {
	if m == 1 {
		return mat.NewDense(1, 1, []float64{1})
	}
	A := mat.NewDense(2, m, nil)
	for i, k := range trigtech.WaveNumbers(m) {
		A.Set(0, i, 1)
		if k%2 == 0 {
			A.Set(1, i, 1)
		} else {
			A.Set(1, i, -1)
		}
	}
	return A
}

func stackRows(a, b *mat.Dense) *mat.Dense {
	if b == nil {
		return a
	}
	var out mat.Dense
	out.Stack(a, b)
	return &out
}

func isEvenLength(X *mat.Dense) bool {
	m, _ := X.Dims()
	return m%2 == 0
}

// padToOddLength splits the cosine mode of an even length expansion into
// equal halves at wave numbers -m/2 and m/2: row 0 is halved and appended
// as a new last row. Odd lengths are returned unchanged.
func padToOddLength(X *mat.Dense) *mat.Dense {
	m, r := X.Dims()
	if m%2 != 0 {
		return X
	}
	out := mat.NewDense(m+1, r, nil)
	out.Slice(0, m, 0, r).(*mat.Dense).Copy(X)
	row := make([]float64, r)
	mat.Row(row, 0, X)
	for j := range row {
		row[j] *= 0.5
	}
	out.SetRow(0, row)
	out.SetRow(m, row)
	return out
}

// unpad folds the last row back onto row 0 by a plain add and drops it
func unpad(X *mat.Dense) *mat.Dense {
	m, r := X.Dims()
	out := mat.DenseCopyOf(X.Slice(0, m-1, 0, r))
	first := out.RawRowView(0)
	for j := 0; j < r; j++ {
		first[j] += X.At(m-1, j)
	}
	return out
}

// realTrigtech rebuilds an expansion from the real part of its values
func realTrigtech(c *mat.CDense) *trigtech.Trigtech {
	return trigtech.NewFromValues(trigtech.CoeffsToVals(c))
}
