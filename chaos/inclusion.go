package chaos

import (
	"math"
	"strings"

	"github.com/osuushi/chaosgame/projective"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/pkg/errors"
)

// Checker decides whether a homogeneous point lies in the configured polygon.
type Checker func(p projective.Point) bool

// CheckerMode picks which of the two inclusion tests an engine uses.
type CheckerMode int

const (
	// CheckBoth requires both tests to accept. This is the default.
	CheckBoth CheckerMode = iota
	CheckBuffered
	CheckSign
)

var checkerNames = map[CheckerMode]string{
	CheckBoth:     "both",
	CheckBuffered: "buffered",
	CheckSign:     "sign",
}

func (m CheckerMode) String() string {
	return checkerNames[m]
}

func ParseCheckerMode(s string) (CheckerMode, error) {
	for mode, name := range checkerNames {
		if strings.EqualFold(name, s) {
			return mode, nil
		}
	}
	return 0, errors.Wrapf(ErrChecker, "%q", s)
}

// Inclusion holds everything the inclusion tests precompute from the vertex
// set. It must not be shared with a run on a different polygon, and the
// polygon must not change while it is in use.
type Inclusion struct {
	ring      orb.Ring
	buffer    float64
	edges     []projective.Line
	signs     []int
	precision projective.Precision
}

// NewInclusion prepares both tests for poly. The reference signs of the edge
// equations are taken at the vertex centroid, which is inside any convex
// polygon.
func NewInclusion(poly *Polygon, buffer float64, prec projective.Precision) *Inclusion {
	in := &Inclusion{
		ring:      poly.Ring(),
		buffer:    buffer,
		edges:     make([]projective.Line, len(poly.Planar)),
		signs:     make([]int, len(poly.Planar)),
		precision: prec,
	}

	center := poly.Centroid()
	for i := range poly.Planar {
		in.edges[i] = poly.Edge(i)
		in.signs[i] = projective.Signum(in.edges[i].Eval(center))
	}
	return in
}

// Buffered tests strict containment in the polygon inflated by the buffer
// distance, which absorbs rounding right at the boundary.
func (in *Inclusion) Buffered(q orb.Point) bool {
	if !projective.IsFinitePlanar(q) {
		return false
	}
	if planar.RingContains(in.ring, q) {
		return true
	}
	return in.boundaryDistance(q) < in.buffer
}

// Sign accepts q iff, for every edge, the edge equation at q has the reference
// sign or is exactly zero.
func (in *Inclusion) Sign(q orb.Point) bool {
	if !projective.IsFinitePlanar(q) {
		return false
	}
	for i, edge := range in.edges {
		sign := projective.Signum(edge.Eval(q))
		if sign != 0 && sign != in.signs[i] {
			return false
		}
	}
	return true
}

// Both is the conjunction of the two tests.
func (in *Inclusion) Both(q orb.Point) bool {
	return in.Buffered(q) && in.Sign(q)
}

func (in *Inclusion) boundaryDistance(q orb.Point) float64 {
	d := math.Inf(1)
	for i := 0; i+1 < len(in.ring); i++ {
		d = math.Min(d, planar.DistanceFromSegment(in.ring[i], in.ring[i+1], q))
	}
	return d
}

// Checker adapts one of the tests to homogeneous points.
func (in *Inclusion) Checker(mode CheckerMode) Checker {
	test := in.Both
	switch mode {
	case CheckBuffered:
		test = in.Buffered
	case CheckSign:
		test = in.Sign
	}
	return func(p projective.Point) bool {
		if !p.IsFinite() {
			return false
		}
		return test(p.Planar(in.precision))
	}
}
