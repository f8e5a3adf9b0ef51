package utils

import (
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// SplitComplex returns the real and imaginary parts of a complex matrix
func SplitComplex(c *mat.CDense) (re, im *mat.Dense) {
	r, k := c.Dims()
	re = mat.NewDense(r, k, nil)
	im = mat.NewDense(r, k, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < k; j++ {
			v := c.At(i, j)
			re.Set(i, j, real(v))
			im.Set(i, j, imag(v))
		}
	}
	return
}

// JoinComplex builds re + i*im. Both parts must have the same shape.
func JoinComplex(re, im mat.Matrix) *mat.CDense {
	r, k := re.Dims()
	ri, ki := im.Dims()
	if r != ri || k != ki {
		panic(mat.ErrShape)
	}
	c := mat.NewCDense(r, k, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < k; j++ {
			c.Set(i, j, complex(re.At(i, j), im.At(i, j)))
		}
	}
	return c
}

// CloneCDense returns a deep copy of c
func CloneCDense(c *mat.CDense) *mat.CDense {
	r, k := c.Dims()
	out := mat.NewCDense(r, k, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < k; j++ {
			out.Set(i, j, c.At(i, j))
		}
	}
	return out
}

// MaxAbsCDense returns the largest entry magnitude of c
func MaxAbsCDense(c *mat.CDense) (mx float64) {
	r, k := c.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < k; j++ {
			if a := cmplx.Abs(c.At(i, j)); a > mx {
				mx = a
			}
		}
	}
	return
}

// ColumnCDense extracts column j of c
func ColumnCDense(c *mat.CDense, j int) []complex128 {
	r, _ := c.Dims()
	col := make([]complex128, r)
	for i := range col {
		col[i] = c.At(i, j)
	}
	return col
}

// SelectColumns returns a new matrix made of the listed columns of m, in order
func SelectColumns(m *mat.Dense, cols []int) *mat.Dense {
	r, _ := m.Dims()
	if len(cols) == 0 {
		return nil
	}
	out := mat.NewDense(r, len(cols), nil)
	for jj, j := range cols {
		for i := 0; i < r; i++ {
			out.Set(i, jj, m.At(i, j))
		}
	}
	return out
}

// SelectColumnsCDense is SelectColumns for complex matrices
func SelectColumnsCDense(c *mat.CDense, cols []int) *mat.CDense {
	r, _ := c.Dims()
	if len(cols) == 0 {
		return nil
	}
	out := mat.NewCDense(r, len(cols), nil)
	for jj, j := range cols {
		for i := 0; i < r; i++ {
			out.Set(i, jj, c.At(i, j))
		}
	}
	return out
}

// HCatCDense concatenates complex matrices with equal row counts side by side
func HCatCDense(a, b *mat.CDense) *mat.CDense {
	ra, ka := a.Dims()
	rb, kb := b.Dims()
	if ra != rb {
		panic(mat.ErrShape)
	}
	out := mat.NewCDense(ra, ka+kb, nil)
	for i := 0; i < ra; i++ {
		for j := 0; j < ka; j++ {
			out.Set(i, j, a.At(i, j))
		}
		for j := 0; j < kb; j++ {
			out.Set(i, ka+j, b.At(i, j))
		}
	}
	return out
}
