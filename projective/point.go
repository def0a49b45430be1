package projective

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"github.com/paulmach/orb"
)

// Point is a vector of homogeneous coordinates. Scaling every coordinate by the
// same nonzero factor gives the same geometric point. Coordinates are complex
// so that the division formulas can run through negative square roots and
// fractional powers; points coming from user input are always real.
//
// Methods never modify the receiver. Use Clone before mutating a point that
// might be shared.
type Point []complex128

// NewPoint builds a real point from its coordinates.
func NewPoint(coords ...float64) Point {
	p := make(Point, len(coords))
	for i, c := range coords {
		p[i] = complex(c, 0)
	}
	return p
}

// Infinity returns the sentinel point of dimension n whose coordinates are all
// non-finite. It means "no usable point" throughout the kernel.
func Infinity(n int) Point {
	p := make(Point, n)
	for i := range p {
		p[i] = cmplx.Inf()
	}
	return p
}

// Dim is the number of coordinates.
func (p Point) Dim() int {
	return len(p)
}

// Real returns the real part of coordinate i.
func (p Point) Real(i int) float64 {
	return real(p[i])
}

func (p Point) Clone() Point {
	return append(Point(nil), p...)
}

// Lower drops the last coordinate. When the last coordinate is not
// approximately zero, the remaining coordinates are divided by it. Otherwise
// the prefix is returned unscaled: this is the "point at infinity" convention,
// not an error. "Approximately zero" is relative to the largest coordinate
// magnitude, see Precision.Negligible.
func (p Point) Lower(prec Precision) Point {
	last := p[len(p)-1]
	out := p[:len(p)-1].Clone()
	if prec.Negligible(last, p.NormInf()) {
		return out
	}
	for i := range out {
		out[i] /= last
	}
	return out
}

// Lift appends coordinate c.
func (p Point) Lift(c complex128) Point {
	out := make(Point, len(p), len(p)+1)
	copy(out, p)
	return append(out, c)
}

// IsFinite is true iff no coordinate is infinite or NaN.
func (p Point) IsFinite() bool {
	for _, c := range p {
		if cmplx.IsInf(c) || cmplx.IsNaN(c) {
			return false
		}
	}
	return true
}

// IsReal reports whether every imaginary part is negligible relative to tol.
func (p Point) IsReal(tol float64) bool {
	for _, c := range p {
		if math.Abs(imag(c)) > tol*math.Max(1, math.Abs(real(c))) {
			return false
		}
	}
	return true
}

// Realify keeps only the real part of each coordinate. Callers are expected to
// have checked IsReal first, since the imaginary parts are simply thrown away.
func (p Point) Realify() Point {
	out := make(Point, len(p))
	for i, c := range p {
		out[i] = complex(real(c), 0)
	}
	return out
}

// DistanceInf is the Chebyshev distance between two points of the same
// dimension.
func DistanceInf(a, b Point) float64 {
	var d float64
	for i := range a {
		d = math.Max(d, cmplx.Abs(a[i]-b[i]))
	}
	return d
}

// NormInf is the largest coordinate modulus.
func (p Point) NormInf() float64 {
	var n float64
	for _, c := range p {
		n = math.Max(n, cmplx.Abs(c))
	}
	return n
}

// Equal compares coordinate vectors (not projective classes) up to precision,
// relative to the larger of the two infinity norms.
func (p Point) Equal(other Point, prec Precision) bool {
	if len(p) != len(other) {
		return false
	}
	scale := math.Max(p.NormInf(), other.NormInf())
	return prec.Negligible(complex(DistanceInf(p, other), 0), scale)
}

// Planar lowers a 3-coordinate point to the affine plane and drops imaginary
// parts.
func (p Point) Planar(prec Precision) orb.Point {
	q := p.Lower(prec)
	return orb.Point{real(q[0]), real(q[1])}
}

// FromPlanar lifts an affine plane point to homogeneous coordinates with z = 1.
func FromPlanar(q orb.Point) Point {
	return NewPoint(q[0], q[1], 1)
}

// String formats the point in the (x:y:z) notation. Imaginary parts are shown
// only when present.
func (p Point) String() string {
	parts := make([]string, len(p))
	for i, c := range p {
		if imag(c) == 0 {
			parts[i] = fmt.Sprint(real(c))
		} else {
			parts[i] = fmt.Sprint(c)
		}
	}
	return "(" + strings.Join(parts, ":") + ")"
}
