package projective

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats/scalar"
)

// DefaultPrecision is used whenever a caller leaves the precision unset.
const DefaultPrecision Precision = 1e-12

// Precision is the single tolerance behind every closeness decision in the
// kernel: branch selection, discriminant signs, point equality. Comparisons are
// relative, with the same value as an absolute floor so that comparisons
// against zero still mean something. Plain relative closeness to zero is exact
// equality, which is far too strict for floats.
type Precision float64

// Close reports whether a and b agree within the precision.
func (p Precision) Close(a, b float64) bool {
	return scalar.EqualWithinAbsOrRel(a, b, float64(p), float64(p))
}

// Zero reports whether x is indistinguishable from zero.
func (p Precision) Zero(x float64) bool {
	return p.Close(x, 0)
}

// CloseComplex is Close for complex values, using the modulus of the
// difference.
func (p Precision) CloseComplex(a, b complex128) bool {
	d := cmplx.Abs(a - b)
	if d <= float64(p) {
		return true
	}
	return d <= float64(p)*math.Max(cmplx.Abs(a), cmplx.Abs(b))
}

// ZeroComplex reports whether z is indistinguishable from zero.
func (p Precision) ZeroComplex(z complex128) bool {
	return cmplx.Abs(z) <= float64(p)
}

// Negligible reports whether z is zero relative to a magnitude scale. Scales
// below one fall back to the plain absolute test.
func (p Precision) Negligible(z complex128, scale float64) bool {
	return cmplx.Abs(z) <= float64(p)*math.Max(1, scale)
}

// Signum is the usual sign function: -1, 0 or 1.
func Signum(x float64) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}

// Often we want to treat a vertex list as a circular buffer. This gives the
// modular index given length n, but unlike the raw modulo operator, it only
// gives positive values
func CircularIndex(i, n int) int {
	return (i%n + n) % n
}
