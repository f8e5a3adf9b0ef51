package trigtech

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/spectralfun/utils"
)

var ErrInvalidArgument = errors.New("trigtech: invalid argument")

// Trigtech is an array-valued trigonometric expansion on the periodic
// interval [-pi,pi).
//
// Row i of the coefficient matrix is wave number WaveNumber(i,n): the
// ascending range -(n-1)/2..(n-1)/2 for odd n and -n/2..n/2-1 for even n.
// For even n the -n/2 row is the cosine mode cos(n*x/2).
type Trigtech struct {
	coeffs *mat.CDense // [n × k], nil when empty
}

// WaveNumber returns the wave number stored in row i of an n row matrix
func WaveNumber(i, n int) int { return i - n/2 }

// WaveNumbers lists the wave numbers of an n row coefficient matrix
func WaveNumbers(n int) []int {
	k := make([]int, n)
	for i := range k {
		k[i] = WaveNumber(i, n)
	}
	return k
}

// Points returns the n equispaced points -pi + 2*pi*j/n
func Points(n int) []float64 {
	x := make([]float64, n)
	for j := range x {
		x[j] = -math.Pi + 2*math.Pi*float64(j)/float64(n)
	}
	return x
}

func NewEmpty() *Trigtech { return &Trigtech{} }

// New builds a Trigtech from a copy of coeffs
func New(coeffs *mat.CDense) *Trigtech {
	if coeffs == nil || coeffs.IsEmpty() {
		return NewEmpty()
	}
	return &Trigtech{coeffs: utils.CloneCDense(coeffs)}
}

// NewFromValues fits coefficients to real samples on Points(n)
func NewFromValues(values *mat.Dense) *Trigtech {
	if values == nil || values.IsEmpty() {
		return NewEmpty()
	}
	return &Trigtech{coeffs: ValsToCoeffs(values)}
}

// NewFromFunc samples f on n points
func NewFromFunc(f func(x float64) float64, n int) (*Trigtech, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: grid length %d", ErrInvalidArgument, n)
	}
	values := mat.NewDense(n, 1, nil)
	for i, x := range Points(n) {
		values.Set(i, 0, f(x))
	}
	return NewFromValues(values), nil
}

// ValsToCoeffs converts values on Points(n) to coefficients,
// c_k = (-1)^k/n * F[k mod n] where F is the unnormalized DFT.
func ValsToCoeffs(values *mat.Dense) *mat.CDense {
	n, k := values.Dims()
	fft := fourier.NewCmplxFFT(n)
	seq := make([]complex128, n)
	coeffs := mat.NewCDense(n, k, nil)
	for col := 0; col < k; col++ {
		for j := 0; j < n; j++ {
			seq[j] = complex(values.At(j, col), 0)
		}
		fft.Coefficients(seq, seq)
		for i := 0; i < n; i++ {
			w := WaveNumber(i, n)
			c := seq[mod(w, n)] / complex(float64(n), 0)
			if w%2 != 0 {
				c = -c
			}
			coeffs.Set(i, col, c)
		}
	}
	return coeffs
}

// CoeffsToVals evaluates coefficients on Points(n). Only the real part is
// returned; the represented functions are real valued.
func CoeffsToVals(coeffs *mat.CDense) *mat.Dense {
	n, k := coeffs.Dims()
	fft := fourier.NewCmplxFFT(n)
	seq := make([]complex128, n)
	values := mat.NewDense(n, k, nil)
	for col := 0; col < k; col++ {
		for i := 0; i < n; i++ {
			w := WaveNumber(i, n)
			c := coeffs.At(i, col)
			if w%2 != 0 {
				c = -c
			}
			seq[mod(w, n)] = c
		}
		fft.Sequence(seq, seq)
		for j := 0; j < n; j++ {
			values.Set(j, col, real(seq[j]))
		}
	}
	return values
}

func (f *Trigtech) IsEmpty() bool { return f == nil || f.coeffs == nil }

func (f *Trigtech) Length() int {
	if f.IsEmpty() {
		return 0
	}
	n, _ := f.coeffs.Dims()
	return n
}

func (f *Trigtech) Columns() int {
	if f.IsEmpty() {
		return 0
	}
	_, k := f.coeffs.Dims()
	return k
}

// Coeffs returns a copy of the coefficient matrix
func (f *Trigtech) Coeffs() *mat.CDense {
	if f.IsEmpty() {
		return nil
	}
	return utils.CloneCDense(f.coeffs)
}

// Values returns the real samples on Points(Length())
func (f *Trigtech) Values() *mat.Dense {
	if f.IsEmpty() {
		return nil
	}
	return CoeffsToVals(f.coeffs)
}

// Eval returns the real part of every component at x
func (f *Trigtech) Eval(x float64) []float64 {
	if f.IsEmpty() {
		return nil
	}
	out := make([]float64, f.Columns())
	for j := range out {
		out[j] = real(f.evalColumn(x, j))
	}
	return out
}

// EvalComplex returns every component at x without discarding the
// imaginary part
func (f *Trigtech) EvalComplex(x float64) []complex128 {
	if f.IsEmpty() {
		return nil
	}
	out := make([]complex128, f.Columns())
	for j := range out {
		out[j] = f.evalColumn(x, j)
	}
	return out
}

func (f *Trigtech) evalColumn(x float64, j int) (sum complex128) {
	n, _ := f.coeffs.Dims()
	for i := 0; i < n; i++ {
		w := WaveNumber(i, n)
		c := f.coeffs.At(i, j)
		if n%2 == 0 && i == 0 {
			sum += c * complex(math.Cos(float64(w)*x), 0)
			continue
		}
		sum += c * cmplx.Exp(complex(0, float64(w)*x))
	}
	return
}

// SelectColumns returns the listed components
func (f *Trigtech) SelectColumns(cols []int) *Trigtech {
	if f.IsEmpty() || len(cols) == 0 {
		return NewEmpty()
	}
	return &Trigtech{coeffs: utils.SelectColumnsCDense(f.coeffs, cols)}
}

// ZeroModes returns a copy with every row whose wave number satisfies
// drop set to zero
func (f *Trigtech) ZeroModes(drop func(waveNumber int) bool) *Trigtech {
	if f.IsEmpty() {
		return NewEmpty()
	}
	c := utils.CloneCDense(f.coeffs)
	n, k := c.Dims()
	for i := 0; i < n; i++ {
		if !drop(WaveNumber(i, n)) {
			continue
		}
		for j := 0; j < k; j++ {
			c.Set(i, j, 0)
		}
	}
	return &Trigtech{coeffs: c}
}

// Prolong returns the expansion with m rows, padding with zero modes or
// truncating the highest wave numbers symmetrically. Moving between even
// and odd lengths splits or folds the cosine mode.
func (f *Trigtech) Prolong(m int) *Trigtech {
	if f.IsEmpty() || m <= 0 {
		return NewEmpty()
	}
	n, k := f.coeffs.Dims()
	if m == n {
		return &Trigtech{coeffs: utils.CloneCDense(f.coeffs)}
	}
	out := mat.NewCDense(m, k, nil)
	for i := 0; i < n; i++ {
		w := WaveNumber(i, n)
		for j := 0; j < k; j++ {
			c := f.coeffs.At(i, j)
			if n%2 == 0 && i == 0 {
				// cos(n x/2) = (e^{-i n x/2} + e^{i n x/2})/2
				addMode(out, -w, j, 0.5*c)
				addMode(out, w, j, 0.5*c)
				continue
			}
			addMode(out, w, j, c)
		}
	}
	return &Trigtech{coeffs: out}
}

// addMode accumulates c into wave number w of out, folding +-m/2 onto the
// cosine row for even m and dropping modes out of range
func addMode(out *mat.CDense, w, j int, c complex128) {
	m, _ := out.Dims()
	if m%2 == 0 && (w == m/2 || w == -m/2) {
		out.Set(0, j, out.At(0, j)+c)
		return
	}
	i := w + m/2
	if i < 0 || i >= m {
		return
	}
	out.Set(i, j, out.At(i, j)+c)
}

// IsReal reports whether every component is real valued to within tol
// relative to the coefficient scale, i.e. c_{-k} = conj(c_k).
func (f *Trigtech) IsReal(tol float64) bool {
	if f.IsEmpty() {
		return true
	}
	n, k := f.coeffs.Dims()
	scale := math.Max(utils.MaxAbsCDense(f.coeffs), 1)
	for j := 0; j < k; j++ {
		for i := 0; i < n; i++ {
			w := WaveNumber(i, n)
			var mirror complex128
			if n%2 == 0 && i == 0 {
				mirror = f.coeffs.At(i, j)
			} else {
				mirror = f.coeffs.At(-w+n/2, j)
			}
			if cmplx.Abs(f.coeffs.At(i, j)-cmplx.Conj(mirror)) > tol*scale {
				return false
			}
		}
	}
	return true
}

func (f *Trigtech) String() string {
	if f.IsEmpty() {
		return "Trigtech: empty"
	}
	var sb strings.Builder
	n, k := f.coeffs.Dims()
	sb.WriteString(fmt.Sprintf("Trigtech: length %d, columns %d\n", n, k))
	for i := 0; i < n; i++ {
		sb.WriteString(fmt.Sprintf("%4d:", WaveNumber(i, n)))
		for j := 0; j < k; j++ {
			sb.WriteString(fmt.Sprintf(" %10.4g", f.coeffs.At(i, j)))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
