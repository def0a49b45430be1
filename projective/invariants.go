package projective

import "math"

// The three 2×2 minors of the matrix with rows m and b. Together they are the
// line coordinates of the line through m and b.

func U1(m, b Point) complex128 {
	return m[1]*b[2] - m[2]*b[1]
}

func U2(m, b Point) complex128 {
	return m[2]*b[0] - m[0]*b[2]
}

func U3(m, b Point) complex128 {
	return m[0]*b[1] - m[1]*b[0]
}

// Minors returns (U1, U2, U3) as a point.
func Minors(m, b Point) Point {
	return Point{U1(m, b), U2(m, b), U3(m, b)}
}

// Cross is the cross product of two 3-coordinate vectors.
func Cross(a, b Point) Point {
	return Point{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Harmonic is the ratio of cross determinants of the first two coordinates of
// four points on a line:
//
//	(a×c)(b×d) / ((a×d)(b×c))
//
// It is the cross-ratio (a, b; c, d), which is −1 when d is the harmonic
// conjugate of c. When the denominator vanishes the four points are in a
// degenerate configuration and +Inf is returned.
func Harmonic(a, b, c, d Point, prec Precision) float64 {
	det := func(p, q Point) complex128 {
		return p[0]*q[1] - q[0]*p[1]
	}
	numer := det(a, c) * det(b, d)
	den := det(a, d) * det(b, c)

	if prec.ZeroComplex(den) {
		return math.Inf(1)
	}
	return real(numer / den)
}
