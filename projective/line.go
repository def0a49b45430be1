package projective

import (
	"math"

	"github.com/paulmach/orb"
)

// Line is the implicit line A·x + B·y + C = 0 through two affine points. The
// points it was built from are kept, since an intersection at a shared
// endpoint is answered exactly instead of through the linear solve.
type Line struct {
	A, B, C float64
	P, Q    orb.Point
}

func NewLine(p, q orb.Point) Line {
	return Line{
		A: q[1] - p[1],
		B: -(q[0] - p[0]),
		C: q[0]*p[1] - p[0]*q[1],
		P: p,
		Q: q,
	}
}

// Eval evaluates the line equation at x. Its sign tells which side of the line
// x is on.
func (l Line) Eval(x orb.Point) float64 {
	return l.A*x[0] + l.B*x[1] + l.C
}

// PlanarInfinity is the sentinel returned for parallel lines.
func PlanarInfinity() orb.Point {
	return orb.Point{math.Inf(1), math.Inf(1)}
}

// IsFinitePlanar reports whether both coordinates are finite.
func IsFinitePlanar(p orb.Point) bool {
	return !math.IsInf(p[0], 0) && !math.IsNaN(p[0]) && !math.IsInf(p[1], 0) && !math.IsNaN(p[1])
}

// PlanarEqual compares two affine points in the infinity norm.
func PlanarEqual(a, b orb.Point, prec Precision) bool {
	return prec.Zero(math.Max(math.Abs(a[0]-b[0]), math.Abs(a[1]-b[1])))
}

// Intersect two lines. If both lines were built through a common point, that
// point is returned as is. Parallel lines give PlanarInfinity.
func (l Line) Intersect(other Line, prec Precision) orb.Point {
	for _, p := range []orb.Point{l.P, l.Q} {
		if PlanarEqual(p, other.P, prec) || PlanarEqual(p, other.Q, prec) {
			return p
		}
	}

	det := l.A*other.B - l.B*other.A
	if prec.Zero(det) {
		return PlanarInfinity()
	}

	detX := -l.C*other.B + l.B*other.C
	detY := -l.A*other.C + l.C*other.A
	return orb.Point{detX / det, detY / det}
}

// OnSegment reports whether x, assumed to lie on the line, falls between the
// two defining points.
func (l Line) OnSegment(x orb.Point, prec Precision) bool {
	tol := float64(prec) * (1 + math.Max(math.Abs(l.A), math.Abs(l.B)))
	return x[0] >= math.Min(l.P[0], l.Q[0])-tol && x[0] <= math.Max(l.P[0], l.Q[0])+tol &&
		x[1] >= math.Min(l.P[1], l.Q[1])-tol && x[1] <= math.Max(l.P[1], l.Q[1])+tol
}
