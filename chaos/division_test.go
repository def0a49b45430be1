package chaos

import (
	"math"
	"testing"

	"github.com/osuushi/chaosgame/projective"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDivider(name string, frame projective.Frame) *Divider {
	poly, in := newTestInclusion(name, DefaultBuffer)
	return NewDivider(frame, poly, in.Checker(CheckBoth), projective.DefaultPrecision, DefaultImagTolerance)
}

// On the x axis inside the unit disk, dividing the origin → (0.5, 0) segment
// at parameter μ lands on (3^μ - 1) / (3^μ + 1).
func kleinAxisPoint(mu float64) float64 {
	p := math.Pow(3, mu)
	return (p - 1) / (p + 1)
}

func TestDivideRegular(t *testing.T) {
	d := newTestDivider("disk_triangle", projective.Elliptic)
	m := projective.NewPoint(0, 0, 1)
	b := projective.NewPoint(0.5, 0, 1)

	t.Run("midpoint", func(t *testing.T) {
		d.ResetStats()
		p := d.Divide(m, b, 1, true)
		require.True(t, p.IsFinite())
		assert.InDelta(t, 2-math.Sqrt(3), p.Real(0), 1e-9)
		assert.InDelta(t, 0, p.Real(1), 1e-9)
		assert.Equal(t, 1.0, p.Real(2))

		stats := d.Stats()
		assert.Equal(t, 1, stats.Branches[BranchRegular])
		assert.Zero(t, stats.HarmonicSearches)
		assert.Zero(t, stats.Fallbacks)
	})

	t.Run("other relations", func(t *testing.T) {
		for _, rel := range []float64{0.25, 0.5, 2, 5} {
			p := d.Divide(m, b, rel, true)
			require.True(t, p.IsFinite(), "rel %v", rel)
			assert.InDelta(t, kleinAxisPoint(rel/(1+rel)), p.Real(0), 1e-9, "rel %v", rel)
		}
	})

	t.Run("zero relation stays put", func(t *testing.T) {
		p := d.Divide(m, b, 0, true)
		require.True(t, p.IsFinite())
		assert.True(t, p.Equal(m, 1e-9))
	})
}

func TestDivideFallback(t *testing.T) {
	d := newTestDivider("disk_triangle", projective.Elliptic)
	// Only accept points right of x = 0.6, which the direct division with
	// rel = 3 does not reach.
	d.check = func(p projective.Point) bool {
		return p.IsFinite() && p.Real(0) > 0.6
	}

	p := d.Divide(projective.NewPoint(0, 0, 1), projective.NewPoint(0.5, 0, 1), 3, true)
	require.True(t, p.IsFinite())
	assert.InDelta(t, kleinAxisPoint(1.5), p.Real(0), 1e-9)
	assert.InDelta(t, 0, p.Real(1), 1e-9)
	assert.Equal(t, 1, d.Stats().Fallbacks)
	assert.Zero(t, d.Stats().Discarded)
}

func TestDivideDiscards(t *testing.T) {
	d := newTestDivider("disk_triangle", projective.Elliptic)
	d.check = func(projective.Point) bool { return false }

	p := d.Divide(projective.NewPoint(0, 0, 1), projective.NewPoint(0.5, 0, 1), 1, true)
	assert.False(t, p.IsFinite())
	assert.Equal(t, 3, p.Dim())
	assert.Equal(t, 1, d.Stats().Fallbacks)
	assert.Equal(t, 1, d.Stats().Discarded)
	// At rel = 1 the retry uses -1, which stops before classifying
	assert.Equal(t, 1, d.Stats().Branches[BranchRegular])

	t.Run("retry at other relations", func(t *testing.T) {
		d.ResetStats()
		d.Divide(projective.NewPoint(0, 0, 1), projective.NewPoint(0.5, 0, 1), 2, true)
		assert.Equal(t, 2, d.Stats().Branches[BranchRegular])
		assert.Equal(t, 1, d.Stats().Discarded)
	})
}

func TestDivideOutside(t *testing.T) {
	d := newTestDivider("disk_triangle", projective.Elliptic)
	p := d.Divide(projective.NewPoint(0, 0, 1), projective.NewPoint(0.5, 0, 1), 1, false)
	if p.IsFinite() {
		assert.False(t, d.check(p))
	}
}

func TestClassify(t *testing.T) {
	d := newTestDivider("triangle", projective.Elliptic)
	cases := []struct {
		name   string
		m, b   projective.Point
		branch Branch
	}{
		{"secant", projective.NewPoint(0, 0, 1), projective.NewPoint(0.5, 0, 1), BranchRegular},
		{"tangent", projective.NewPoint(1, 0, 1), projective.NewPoint(1, 0.5, 1), BranchParabolic},
		{"conjugate", projective.NewPoint(2, 0, 1), projective.NewPoint(0.5, 3, 1), BranchHyperbolicSymmetric},
		{"missing", projective.NewPoint(3, 0, 1), projective.NewPoint(4, 2, 1), BranchHyperbolicGeneral},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.branch, d.Classify(c.m, c.b))
		})
	}
}

func TestDivideParabolic(t *testing.T) {
	d := newTestDivider("triangle", projective.Elliptic)
	d.check = func(p projective.Point) bool { return p.IsFinite() }

	// Both points lie on x = 1, which touches the unit circle.
	m := projective.NewPoint(1, 2, 1)
	b := projective.NewPoint(1, -1, 1)
	require.Equal(t, BranchParabolic, d.Classify(m, b))

	p := d.Divide(m, b, 1, true)
	require.True(t, p.IsFinite())
	assert.True(t, p.Equal(projective.NewPoint(1, -4, 1), 1e-12), "%s", p)
	assert.Equal(t, 1, d.Stats().Branches[BranchParabolic])

	t.Run("zero vector", func(t *testing.T) {
		d.ResetStats()
		// m is on the absolute, so the closed form vanishes entirely.
		p := d.Divide(projective.NewPoint(1, 0, 1), projective.NewPoint(1, 0.5, 1), 1, true)
		assert.False(t, p.IsFinite())
		assert.Equal(t, 1, d.Stats().Discarded)
	})
}

// normalized is what Divide does to an accepted candidate.
func normalized(d *Divider, p projective.Point) projective.Point {
	return p.Lower(d.Precision).Realify().Lift(1)
}

func acceptFinite(p projective.Point) bool {
	return p.IsFinite()
}

func TestDivideCrossing(t *testing.T) {
	// The line through m and b misses the unit circle and leaves the triangle
	// at h = (4, 4/3), which does not separate b from its conjugate. The
	// angle between m and b is π/6, so the thresholds are 2/3 and 3/2.
	m := projective.NewPoint(-1, -2, 1)
	b := projective.NewPoint(2, 0, 1)
	mStar := projective.NewPoint(5, -6, 7)
	bStar := projective.NewPoint(-3, 6, -6)

	d := newTestDivider("triangle", projective.Elliptic)
	require.Equal(t, BranchHyperbolicGeneral, d.Classify(m, b))
	require.True(t, d.Frame.Conjugate(m, b, m).Equal(mStar, 0))
	require.True(t, d.Frame.Conjugate(m, b, b).Equal(bStar, 0))

	h, ok := d.boundaryCrossing(m, b)
	require.True(t, ok)
	assert.InDelta(t, 4, h[0], 1e-12)
	assert.InDelta(t, 4.0/3, h[1], 1e-12)
	require.LessOrEqual(t, projective.Harmonic(m, b, projective.FromPlanar(h), bStar, d.Precision), 0.0)

	cases := []struct {
		name     string
		rel      float64
		expected projective.Point
		at       [2]float64
	}{
		{"below the lower threshold", 0.5, d.formula(m, b, 5.0/6), [2]float64{1.0735398290537097, -0.6176401139641937}},
		{"between the thresholds", 1, d.formula(bStar, mStar, 0.5), [2]float64{21.39230484541324, 12.928203230275493}},
		{"above the upper threshold", 2, d.formula(mStar, b, 1.0/6), [2]float64{0.7924914208564474, -0.8050057194290351}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d.check = acceptFinite
			d.ResetStats()

			p := d.Divide(m, b, c.rel, true)
			require.True(t, p.IsFinite())
			assert.True(t, p.Equal(normalized(d, c.expected), 1e-9), "got %s", p)
			assert.InDelta(t, c.at[0], p.Real(0), 1e-6)
			assert.InDelta(t, c.at[1], p.Real(1), 1e-6)

			stats := d.Stats()
			assert.Equal(t, 1, stats.Branches[BranchHyperbolicGeneral])
			assert.Equal(t, 1, stats.HarmonicSearches)
			assert.Zero(t, stats.Recursions)
			assert.Zero(t, stats.Fallbacks)
		})
	}

	angle := math.Acos(math.Abs(real(d.Frame.PhiBar(m, b))) / math.Sqrt(real(d.Frame.Phi(m))*real(d.Frame.Phi(b))))
	upper := math.Pi / (math.Pi - 2*angle)
	require.InDelta(t, 1.5, upper, 1e-12)

	t.Run("on the upper threshold", func(t *testing.T) {
		d.check = acceptFinite
		d.ResetStats()

		// The division restarts from (m*, b), whose line leaves the triangle
		// on the far side, so the direct formula applies there.
		p := d.Divide(m, b, upper, true)
		require.True(t, p.IsFinite())
		expected := normalized(d, d.formula(mStar, b, upper/(1+upper)))
		assert.True(t, p.Equal(expected, 1e-9), "got %s", p)
		assert.InDelta(t, 1.0900128738248627, p.Real(0), 1e-6)
		assert.InDelta(t, -0.6066580841167583, p.Real(1), 1e-6)

		stats := d.Stats()
		assert.Equal(t, 1, stats.Recursions)
		assert.Equal(t, 2, stats.Branches[BranchHyperbolicGeneral])
		assert.Equal(t, 2, stats.HarmonicSearches)
		assert.Zero(t, d.depth)
	})

	t.Run("recursion depth guard", func(t *testing.T) {
		d.check = acceptFinite
		d.depth = maxRecursionDepth
		defer func() { d.depth = 0 }()

		err := func() (err error) {
			defer func() {
				if recovered := HandlePanicRecover(recover()); recovered != nil {
					err = recovered
				}
			}()
			d.Divide(m, b, upper, true)
			return nil
		}()
		assert.ErrorIs(t, err, ErrRecursion)
	})

	t.Run("with the polygon checker", func(t *testing.T) {
		d := newTestDivider("triangle", projective.Elliptic)
		for _, rel := range []float64{0.5, 1, 2, upper} {
			p := d.Divide(m, b, rel, true)
			if p.IsFinite() {
				assert.True(t, d.check(p), "rel %v gave %s", rel, p)
			}
		}
		assert.Greater(t, d.Stats().HarmonicSearches, 0)
	})
}

func TestDivideSymmetric(t *testing.T) {
	// φ̄(m, b) = 0: m and b are conjugate, and both signs of μ are candidates.
	m := projective.NewPoint(2, 0, 1)
	b := projective.NewPoint(0.5, 3, 1)

	d := newTestDivider("triangle", projective.Elliptic)
	require.Equal(t, BranchHyperbolicSymmetric, d.Classify(m, b))
	plus := normalized(d, d.formula(m, b, 0.5))
	minus := normalized(d, d.formula(m, b, -0.5))
	require.InDelta(t, 1.4357322327048285, plus.Real(0), 1e-6)
	require.InDelta(t, 1.1285355345903425, plus.Real(1), 1e-6)
	require.InDelta(t, 4.278553481580886, minus.Real(0), 1e-6)
	require.InDelta(t, -4.557106963161771, minus.Real(1), 1e-6)

	leftOfTwo := func(p projective.Point) bool {
		return p.IsFinite() && p.Real(0) < 2
	}
	cases := []struct {
		name     string
		check    Checker
		inside   bool
		expected projective.Point
	}{
		{"first candidate", acceptFinite, true, plus},
		{"second candidate", func(p projective.Point) bool { return p.IsFinite() && p.Real(0) > 2 }, true, minus},
		{"outside verdict", leftOfTwo, false, minus},
		{"outside verdict, first candidate", func(p projective.Point) bool { return !leftOfTwo(p) }, false, plus},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d.check = c.check
			d.ResetStats()

			p := d.Divide(m, b, 1, c.inside)
			require.True(t, p.IsFinite())
			assert.True(t, p.Equal(c.expected, 1e-9), "got %s", p)
			assert.Equal(t, 1, d.Stats().Branches[BranchHyperbolicSymmetric])
			assert.Zero(t, d.Stats().Fallbacks)
		})
	}

	t.Run("neither candidate", func(t *testing.T) {
		// Both candidates are outside the triangle
		d := newTestDivider("triangle", projective.Elliptic)
		p := d.Divide(m, b, 1, true)
		assert.False(t, p.IsFinite())
		assert.Equal(t, 1, d.Stats().Branches[BranchHyperbolicSymmetric])
		assert.Equal(t, 1, d.Stats().Fallbacks)
		assert.Equal(t, 1, d.Stats().Discarded)
	})
}

func TestBoundaryCrossing(t *testing.T) {
	t.Run("edge", func(t *testing.T) {
		d := newTestDivider("triangle", projective.Elliptic)
		h, ok := d.boundaryCrossing(projective.NewPoint(3, 0, 1), projective.NewPoint(4, 2, 1))
		require.True(t, ok)
		assert.InDelta(t, 8.0/3, h[0], 1e-12)
		assert.InDelta(t, -2.0/3, h[1], 1e-12)
	})

	t.Run("on-segment crossing wins over a later one", func(t *testing.T) {
		// Edges in order: y = -1/2 and x = 1/2 are crossed at the vertex b,
		// y = 1/2 on the segment at (-1/3, 1/2), and the last edge x = -1/2
		// only on its extension at (-1/2, 0.7).
		d := newTestDivider("square", projective.Elliptic)
		h, ok := d.boundaryCrossing(projective.NewPoint(0, 0.1, 1), projective.NewPoint(0.5, -0.5, 1))
		require.True(t, ok)
		assert.InDelta(t, -1.0/3, h[0], 1e-12)
		assert.InDelta(t, 0.5, h[1], 1e-12)
	})

	t.Run("last crossing when none is on a segment", func(t *testing.T) {
		// y = 5 passes above the triangle and meets the edge lines at
		// (7, 5), (4, 5) and (-3, 5), in edge order.
		d := newTestDivider("triangle", projective.Elliptic)
		h, ok := d.boundaryCrossing(projective.NewPoint(0, 5, 1), projective.NewPoint(1, 5, 1))
		require.True(t, ok)
		assert.InDelta(t, -3, h[0], 1e-12)
		assert.InDelta(t, 5, h[1], 1e-12)
	})

	t.Run("only through vertices", func(t *testing.T) {
		d := newTestDivider("square", projective.Elliptic)
		_, ok := d.boundaryCrossing(projective.NewPoint(0, 0, 1), projective.NewPoint(1, 1, 1))
		assert.False(t, ok)
	})
}

func TestDivideEuclidean(t *testing.T) {
	d := newTestDivider("disk_triangle", projective.Euclidean)
	m := projective.NewPoint(0, 0, 1)
	b := projective.NewPoint(0.5, 0, 1)

	p := d.Divide(m, b, 1, true)
	require.True(t, p.IsFinite())
	assert.True(t, p.Equal(projective.NewPoint(0.25, 0, 1), 1e-12))

	p = d.Divide(m, b, 3, true)
	assert.True(t, p.Equal(projective.NewPoint(0.375, 0, 1), 1e-12))

	assert.False(t, d.Divide(m, b, -1, true).IsFinite())
	assert.Equal(t, 1, d.Stats().Discarded)
	assert.Equal(t, [numBranches]int{}, d.Stats().Branches)
}

func TestDivideHyperbolicFrame(t *testing.T) {
	// The absolute xy = 1 has the origin on its "inside"; a small square
	// around it is fine for both frames.
	d := newTestDivider("square", projective.Hyperbolic)
	m := projective.NewPoint(0, 0, 1)
	for _, b := range LoadFixture("square") {
		p := d.Divide(m, b.Point, 1, true)
		if p.IsFinite() {
			assert.True(t, d.check(p), "toward %s", b.Point)
		}
	}
	total := 0
	for _, n := range d.Stats().Branches {
		total += n
	}
	assert.GreaterOrEqual(t, total, 4)
}
