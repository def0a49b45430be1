package chaos

import (
	"math"
	"math/cmplx"

	"github.com/osuushi/chaosgame/projective"
	"github.com/paulmach/orb"
)

// The crossing branch recurses once, into the conjugate of the current point,
// when the relation sits exactly on the threshold. The closeness test cannot
// trigger twice for the same relation, so a deeper recursion is a bug.
const maxRecursionDepth = 1

// Divider divides the "segment" between two points in a given relation, with
// division defined by the metric of the frame rather than by affine
// interpolation. It is not safe for concurrent use: it carries statistics and
// the recursion depth.
type Divider struct {
	Frame     projective.Frame
	Precision projective.Precision
	// Imaginary parts of a lowered candidate must stay below this, relative to
	// the real part, for the candidate to count as a real point.
	ImagTolerance float64

	polygon *Polygon
	check   Checker
	stats   Stats
	depth   int
}

func NewDivider(frame projective.Frame, poly *Polygon, check Checker, prec projective.Precision, imagTolerance float64) *Divider {
	return &Divider{
		Frame:         frame,
		Precision:     prec,
		ImagTolerance: imagTolerance,
		polygon:       poly,
		check:         check,
	}
}

// Stats returns the counters accumulated so far.
func (d *Divider) Stats() Stats {
	return d.stats
}

func (d *Divider) ResetStats() {
	d.stats = Stats{}
}

func (d *Divider) sentinel() projective.Point {
	return projective.Infinity(3)
}

// Divide returns the point dividing m → b in relation rel, normalised to
// (x, y, 1), or the infinity sentinel when the sample should be discarded.
//
// inside selects the primary division point (true) or the companion point
// outside the polygon (false). If the first candidate is not finite or does
// not have the requested inclusion verdict, the relation is negated and the
// division is tried once more. For rel = 1 the negated relation is -1, which
// is always the sentinel, so at that relation the retry never produces a
// point and a rejected first candidate is always discarded.
func (d *Divider) Divide(m, b projective.Point, rel float64, inside bool) projective.Point {
	if d.Frame == projective.Euclidean {
		return d.euclidean(m, b, rel, inside)
	}

	for attempt, r := range [2]float64{rel, -rel} {
		if attempt > 0 {
			d.stats.Fallbacks++
		}
		if p, ok := d.accept(d.dispatch(m, b, r, inside), inside); ok {
			return p
		}
	}
	d.stats.Discarded++
	return d.sentinel()
}

// accept lowers and realifies a candidate, and checks it against the
// requested inclusion verdict. Candidates with a real imaginary part fail.
func (d *Divider) accept(candidate projective.Point, inside bool) (projective.Point, bool) {
	if !candidate.IsFinite() || d.vanishes(candidate) {
		return nil, false
	}
	lowered := candidate.Lower(d.Precision)
	if !lowered.IsReal(d.ImagTolerance) {
		return nil, false
	}
	p := lowered.Realify().Lift(1)
	if !p.IsFinite() || d.check(p) != inside {
		return nil, false
	}
	return p, true
}

// vanishes reports whether every coordinate is zero. The zero vector is not a
// projective point.
func (d *Divider) vanishes(p projective.Point) bool {
	for _, c := range p {
		if !d.Precision.ZeroComplex(c) {
			return false
		}
	}
	return true
}

// Classify decides which branch the pair (m, b) takes.
func (d *Divider) Classify(m, b projective.Point) Branch {
	val := real(d.Frame.PhiBig(m, b))
	switch {
	case d.Precision.Zero(val):
		return BranchParabolic
	case val > 0:
		return BranchRegular
	case d.Precision.Zero(real(d.Frame.PhiBar(m, b))):
		return BranchHyperbolicSymmetric
	}
	return BranchHyperbolicGeneral
}

func (d *Divider) dispatch(m, b projective.Point, rel float64, inside bool) projective.Point {
	if d.Precision.Zero(1 + rel) {
		// The relation -1 puts the division point on the absolute itself.
		return d.sentinel()
	}

	branch := d.Classify(m, b)
	d.stats.Branches[branch]++

	switch branch {
	case BranchRegular:
		return d.formula(m, b, rel/(1+rel))
	case BranchParabolic:
		return d.parabolic(m, b, rel)
	case BranchHyperbolicSymmetric:
		return d.symmetric(m, b, rel, inside)
	}
	return d.crossing(m, b, rel, inside)
}

// formula is the closed form division through the two points where the line
// m b meets the absolute:
//
//	x_i = k̄_i·(φ̄ − √Φ)^μ − k_i·(φ̄ + √Φ)^μ
//
// μ = 0 gives m and μ = 1 gives b.
func (d *Divider) formula(m, b projective.Point, mu float64) projective.Point {
	f := d.Frame
	bar := f.PhiBar(m, b)
	root := cmplx.Sqrt(f.PhiBig(m, b))
	exp := complex(mu, 0)
	lo := cmplx.Pow(bar-root, exp)
	hi := cmplx.Pow(bar+root, exp)

	out := make(projective.Point, len(m))
	for i := range m {
		out[i] = f.K(i, m, b, true)*lo - f.K(i, m, b, false)*hi
	}
	return out
}

// parabolic is the division on a line tangent to the absolute, where the two
// intersection points of formula coincide.
func (d *Divider) parabolic(m, b projective.Point, rel float64) projective.Point {
	bar := d.Frame.PhiBar(m, b)
	phi := d.Frame.Phi(m)
	out := make(projective.Point, len(m))
	for i := range m {
		out[i] = m[i]*bar + complex(rel, 0)*b[i]*phi
	}
	return out
}

// symmetric handles conjugate points on a line missing the absolute. Both
// signs of μ are candidates and the one with the requested inclusion verdict
// wins.
func (d *Divider) symmetric(m, b projective.Point, rel float64, inside bool) projective.Point {
	mu := rel / (1 + rel)
	for _, candidate := range []projective.Point{d.formula(m, b, mu), d.formula(m, b, -mu)} {
		if _, ok := d.accept(candidate, inside); ok {
			return candidate
		}
	}
	return d.sentinel()
}

// crossing handles a line missing the absolute for non conjugate points. Where
// the line leaves the polygon decides whether the direct formula applies, or
// whether the division has to go through the conjugate points m* and b*.
func (d *Divider) crossing(m, b projective.Point, rel float64, inside bool) projective.Point {
	d.stats.HarmonicSearches++
	h, ok := d.boundaryCrossing(m, b)
	if !ok {
		return d.sentinel()
	}

	f := d.Frame
	bStar := f.Conjugate(m, b, b)
	if projective.Harmonic(m, b, projective.FromPlanar(h), bStar, d.Precision) > 0 {
		return d.formula(m, b, rel/(1+rel))
	}

	angle := math.Acos(math.Abs(real(f.PhiBar(m, b))) / math.Sqrt(real(f.Phi(m))*real(f.Phi(b))))
	// Φ < 0 means φ̄² < φ(m)·φ(b), so the argument is below one and NaN only
	// comes from rounding.
	if math.IsNaN(angle) {
		return d.sentinel()
	}
	mStar := f.Conjugate(m, b, m)

	lower := (math.Pi - 2*angle) / math.Pi
	upper := math.Pi / (math.Pi - 2*angle)
	switch {
	case d.Precision.Close(rel, upper):
		d.depth++
		defer func() { d.depth-- }()
		if d.depth > maxRecursionDepth {
			fatalf(ErrRecursion, "depth %d at m=%s b=%s rel=%v", d.depth, m, b, rel)
		}
		d.stats.Recursions++
		Logger().Debug("division recursion", "m", m.String(), "b", b.String(), "rel", rel)
		return d.dispatch(mStar, b, rel, inside)
	case rel < lower:
		mu := 2 * rel * (math.Pi - angle) / ((1 + rel) * (math.Pi - 2*angle))
		return d.formula(m, b, mu)
	case lower < rel && rel < upper:
		mu := (2*angle + math.Pi*(rel-1)) / (2 * angle * (rel + 1))
		return d.formula(bStar, mStar, mu)
	}
	mu := (math.Pi*(rel-1) - 2*rel*angle) / ((1 + rel) * (math.Pi - 2*angle))
	return d.formula(mStar, b, mu)
}

// boundaryCrossing intersects the line m b with the line of every polygon
// edge. Crossings at polygon vertices, and parallel edges, are dropped. Of the
// rest, the last crossing lying on its edge segment wins; if none lies on a
// segment, the last crossing found is used.
func (d *Divider) boundaryCrossing(m, b projective.Point) (orb.Point, bool) {
	line := projective.NewLine(m.Planar(d.Precision), b.Planar(d.Precision))

	var last, lastOnEdge orb.Point
	var found, foundOnEdge bool
	for i := range d.polygon.Planar {
		edge := d.polygon.Edge(i)
		x := line.Intersect(edge, d.Precision)
		if !projective.IsFinitePlanar(x) || d.polygon.IsVertex(x, d.Precision) {
			continue
		}
		last, found = x, true
		if edge.OnSegment(x, d.Precision) {
			lastOnEdge, foundOnEdge = x, true
		}
	}

	if foundOnEdge {
		return lastOnEdge, true
	}
	return last, found
}

// euclidean is plain affine division, (m + rel·b) / (1 + rel).
func (d *Divider) euclidean(m, b projective.Point, rel float64, inside bool) projective.Point {
	if d.Precision.Zero(1 + rel) {
		d.stats.Discarded++
		return d.sentinel()
	}
	p, q := m.Planar(d.Precision), b.Planar(d.Precision)
	out := projective.NewPoint((p[0]+rel*q[0])/(1+rel), (p[1]+rel*q[1])/(1+rel), 1)
	if !out.IsFinite() || d.check(out) != inside {
		d.stats.Discarded++
		return d.sentinel()
	}
	return out
}
