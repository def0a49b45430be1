package projective

import (
	"math/cmplx"
	"strings"

	"github.com/pkg/errors"
)

// Frame selects the absolute conic that bounds the metric space. Each frame is
// a symmetric bilinear form on homogeneous coordinates, and the metric
// invariants are computed from it:
//
//	Elliptic:   x² + y² − z²   (the unit circle)
//	Hyperbolic: xy − z²        (the rectangular hyperbola xy = 1)
//
// Euclidean carries no absolute. It exists so the engine can run the plain
// affine division as a baseline; the form methods are undefined for it and
// return NaN.
type Frame int

const (
	Elliptic Frame = iota + 1
	Hyperbolic
	Euclidean
)

var frameNames = map[Frame]string{
	Elliptic:   "elliptic",
	Hyperbolic: "hyperbolic",
	Euclidean:  "euclidean",
}

func (f Frame) String() string {
	if name, ok := frameNames[f]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether f is one of the known frames.
func (f Frame) Valid() bool {
	_, ok := frameNames[f]
	return ok
}

// ParseFrame is the inverse of String.
func ParseFrame(s string) (Frame, error) {
	for f, name := range frameNames {
		if strings.EqualFold(s, name) {
			return f, nil
		}
	}
	return 0, errors.Errorf("unknown frame %q", s)
}

// Polar applies the form's matrix to p. The result, read as line coordinates,
// is the polar line of p with respect to the absolute.
func (f Frame) Polar(p Point) Point {
	switch f {
	case Elliptic:
		return Point{p[0], p[1], -p[2]}
	case Hyperbolic:
		return Point{p[1] / 2, p[0] / 2, -p[2]}
	}
	return Point{cmplx.NaN(), cmplx.NaN(), cmplx.NaN()}
}

// PhiBar is the bilinear pairing of m and b.
func (f Frame) PhiBar(m, b Point) complex128 {
	switch f {
	case Elliptic:
		return m[0]*b[0] + m[1]*b[1] - m[2]*b[2]
	case Hyperbolic:
		return (m[0]*b[1]+m[1]*b[0])/2 - m[2]*b[2]
	}
	return cmplx.NaN()
}

// Phi is the quadratic form, PhiBar(m, m). It vanishes exactly on the
// absolute.
func (f Frame) Phi(m Point) complex128 {
	return f.PhiBar(m, m)
}

// PhiBig is the discriminant of the line through m and b with respect to the
// absolute: positive when the line cuts it in two real points, zero when it is
// tangent, negative when it misses. It always equals
// PhiBar(m,b)² − Phi(m)·Phi(b); here it is computed from the minors of m and b,
// which for the elliptic frame is u1² + u2² − u3².
func (f Frame) PhiBig(m, b Point) complex128 {
	u1, u2, u3 := U1(m, b), U2(m, b), U3(m, b)
	switch f {
	case Elliptic:
		return u1*u1 + u2*u2 - u3*u3
	case Hyperbolic:
		return u3*u3/4 - u1*u2
	}
	return cmplx.NaN()
}

// K is coordinate i of one of the two points where the line through m and b
// meets the absolute, scaled by Phi(m). The bar flag picks the root with the
// negative square root.
func (f Frame) K(i int, m, b Point, bar bool) complex128 {
	sign := complex(1, 0)
	if bar {
		sign = -1
	}
	return b[i]*f.Phi(m) - m[i]*f.PhiBar(m, b) + sign*m[i]*cmplx.Sqrt(f.PhiBig(m, b))
}

// Conjugate returns the point on the line through m and b that is conjugate to
// p, that is u(m,b) × Polar(p). With p = b this is the b* of the crossing
// branch of the division:
//
//	(−b₂u₃ − b₃u₂, b₁u₃ + b₃u₁, b₂u₁ − b₁u₂)
//
// for the elliptic frame.
func (f Frame) Conjugate(m, b, p Point) Point {
	return Cross(Minors(m, b), f.Polar(p))
}
