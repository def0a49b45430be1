package chaos

import (
	"image/color"
	"math"

	"github.com/osuushi/chaosgame/projective"
	"github.com/paulmach/orb"
)

// Vertex is a polygon corner in homogeneous coordinates, tagged with the colour
// given to samples produced while moving toward it. A zero Color (fully
// transparent black) means "unset" and is replaced by a random colour when an
// Engine is built.
type Vertex struct {
	projective.Point
	Color color.RGBA
}

// Polygon is an ordered, convex, non-self-intersecting list of at least three
// vertices. Convexity is a precondition and is never checked.
type Polygon struct {
	Vertices []Vertex
	// Lowered vertex coordinates, in the same order.
	Planar []orb.Point
}

func NewPolygon(vertices []Vertex, prec projective.Precision) *Polygon {
	poly := &Polygon{
		Vertices: vertices,
		Planar:   make([]orb.Point, len(vertices)),
	}
	for i, v := range vertices {
		poly.Planar[i] = v.Planar(prec)
	}
	return poly
}

// Ring returns the lowered polygon as a closed orb ring.
func (poly *Polygon) Ring() orb.Ring {
	ring := make(orb.Ring, 0, len(poly.Planar)+1)
	ring = append(ring, poly.Planar...)
	return append(ring, poly.Planar[0])
}

// Edge returns the line through vertex i and its successor.
func (poly *Polygon) Edge(i int) projective.Line {
	n := len(poly.Planar)
	return projective.NewLine(poly.Planar[i], poly.Planar[projective.CircularIndex(i+1, n)])
}

// IsVertex reports whether p coincides with one of the lowered vertices.
func (poly *Polygon) IsVertex(p orb.Point, prec projective.Precision) bool {
	for _, v := range poly.Planar {
		if projective.PlanarEqual(v, p, prec) {
			return true
		}
	}
	return false
}

// Centroid is the vertex average. For a convex polygon it is strictly inside.
func (poly *Polygon) Centroid() orb.Point {
	var c orb.Point
	for _, v := range poly.Planar {
		c[0] += v[0]
		c[1] += v[1]
	}
	n := float64(len(poly.Planar))
	return orb.Point{c[0] / n, c[1] / n}
}

// Bound is the axis aligned bounding box of the lowered vertices.
func (poly *Polygon) Bound() orb.Bound {
	return orb.MultiPoint(poly.Planar).Bound()
}

// Limits is an axis aligned window in the affine plane. Infinite bounds are
// allowed.
type Limits struct {
	XMin, XMax, YMin, YMax float64
}

// Unbounded is the window that accepts every finite point.
func Unbounded() Limits {
	return Limits{
		XMin: math.Inf(-1),
		XMax: math.Inf(1),
		YMin: math.Inf(-1),
		YMax: math.Inf(1),
	}
}

func (l Limits) Contains(x, y float64) bool {
	return l.XMin <= x && x <= l.XMax && l.YMin <= y && y <= l.YMax
}

func limitsFromBound(b orb.Bound) Limits {
	return Limits{XMin: b.Min[0], XMax: b.Max[0], YMin: b.Min[1], YMax: b.Max[1]}
}

// Samples are the three parallel output sequences of a run.
type Samples struct {
	Xs     []float64
	Ys     []float64
	Colors []color.RGBA
}

func (s Samples) Len() int {
	return len(s.Xs)
}

func (s *Samples) add(x, y float64, c color.RGBA) {
	s.Xs = append(s.Xs, x)
	s.Ys = append(s.Ys, y)
	s.Colors = append(s.Colors, c)
}
