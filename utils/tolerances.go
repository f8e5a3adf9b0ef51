package utils

import (
	"fmt"
	"math"
)

// Tolerances collects the numerical thresholds shared by the operators
type Tolerances struct {
	Eps      float64 // Relative machine-level tolerance used for comparisons
	MergeTol float64 // Point masses closer than this are merged
	ZeroTol  float64 // Entries with magnitude below ZeroTol*scale are treated as zero
}

// DefaultTolerances returns the tolerances used when none are supplied
func DefaultTolerances() Tolerances {
	return Tolerances{
		Eps:      math.Pow(2, -52),
		MergeTol: 1.e-13,
		ZeroTol:  1.e-14,
	}
}

// Validate checks that every threshold is finite and non-negative
func (tol Tolerances) Validate() error {
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"Eps", tol.Eps}, {"MergeTol", tol.MergeTol}, {"ZeroTol", tol.ZeroTol},
	} {
		if math.IsNaN(v.val) || math.IsInf(v.val, 0) || v.val < 0 {
			return fmt.Errorf("invalid tolerance %s=%v", v.name, v.val)
		}
	}
	return nil
}
