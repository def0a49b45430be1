package projective

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinors(t *testing.T) {
	m := NewPoint(1, 2, 3)
	b := NewPoint(4, 5, 6)
	assert.Equal(t, complex(-3, 0), U1(m, b))
	assert.Equal(t, complex(6, 0), U2(m, b))
	assert.Equal(t, complex(-3, 0), U3(m, b))

	// Antisymmetric
	assert.Equal(t, -U1(m, b), U1(b, m))
	assert.Equal(t, -U2(m, b), U2(b, m))
	assert.Equal(t, -U3(m, b), U3(b, m))

	assert.Equal(t, Minors(m, b), Cross(m, b))
}

func TestEllipticInvariants(t *testing.T) {
	m := NewPoint(1, 2, 3)
	b := NewPoint(4, 5, 6)
	assert.Equal(t, complex(36, 0), Elliptic.PhiBig(m, b))
	assert.Equal(t, complex(-4, 0), Elliptic.PhiBar(m, b))
	assert.Equal(t, complex(-4, 0), Elliptic.Phi(m))
	assert.Equal(t, complex(5, 0), Elliptic.Phi(b))

	// k(i) with the square root of 36
	for i := 0; i < 3; i++ {
		base := b[i]*Elliptic.Phi(m) - m[i]*Elliptic.PhiBar(m, b)
		assert.Equal(t, base+6*m[i], Elliptic.K(i, m, b, false))
		assert.Equal(t, base-6*m[i], Elliptic.K(i, m, b, true))
	}
}

func TestPhiBigIdentity(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for _, frame := range []Frame{Elliptic, Hyperbolic} {
		t.Run(frame.String(), func(t *testing.T) {
			for i := 0; i < 100; i++ {
				m := NewPoint(r.NormFloat64(), r.NormFloat64(), r.NormFloat64())
				b := NewPoint(r.NormFloat64(), r.NormFloat64(), r.NormFloat64())
				bar := frame.PhiBar(m, b)
				expected := bar*bar - frame.Phi(m)*frame.Phi(b)
				assert.InDelta(t, real(expected), real(frame.PhiBig(m, b)), 1e-9)
			}
		})
	}
}

func TestConjugate(t *testing.T) {
	m := NewPoint(3, 0, 1)
	b := NewPoint(4, 2, 1)
	u1, u2, u3 := U1(m, b), U2(m, b), U3(m, b)

	expected := Point{
		-b[1]*u3 - b[2]*u2,
		b[0]*u3 + b[2]*u1,
		b[1]*u1 - b[0]*u2,
	}
	assert.Equal(t, expected, Elliptic.Conjugate(m, b, b))

	// The conjugate lies on the line through m and b, and is conjugate to b.
	for _, frame := range []Frame{Elliptic, Hyperbolic} {
		for _, p := range []Point{m, b} {
			c := frame.Conjugate(m, b, p)
			det := m[0]*(b[1]*c[2]-b[2]*c[1]) - m[1]*(b[0]*c[2]-b[2]*c[0]) + m[2]*(b[0]*c[1]-b[1]*c[0])
			assert.InDelta(t, 0, cmplx.Abs(det), 1e-9, "%s: %s not on line", frame, c)
			assert.InDelta(t, 0, cmplx.Abs(frame.PhiBar(c, p)), 1e-9, "%s: %s not conjugate", frame, c)
		}
	}
}

func TestHarmonic(t *testing.T) {
	t.Run("collinear through the origin is degenerate", func(t *testing.T) {
		h := Harmonic(
			NewPoint(0, 0, 1),
			NewPoint(1, 0, 1),
			NewPoint(2, 0, 1),
			NewPoint(3, 0, 1),
			DefaultPrecision,
		)
		assert.True(t, math.IsInf(h, 1))
	})

	t.Run("regular", func(t *testing.T) {
		h := Harmonic(
			NewPoint(0, 1, 1),
			NewPoint(1, 1, 1),
			NewPoint(2, 1, 1),
			NewPoint(3, 1, 1),
			DefaultPrecision,
		)
		assert.InDelta(t, 4.0/3, h, 1e-12)
	})

	t.Run("harmonic conjugate gives minus one", func(t *testing.T) {
		// On the line y = 1, the harmonic conjugate of x = 1/3 with respect to
		// x = 0 and x = 1 is x = -1.
		h := Harmonic(
			NewPoint(0, 1, 1),
			NewPoint(1, 1, 1),
			NewPoint(1.0/3, 1, 1),
			NewPoint(-1, 1, 1),
			DefaultPrecision,
		)
		assert.InDelta(t, -1, h, 1e-12)
	})
}

func TestFrameNames(t *testing.T) {
	for _, frame := range []Frame{Elliptic, Hyperbolic, Euclidean} {
		t.Run(fmt.Sprint(frame), func(t *testing.T) {
			parsed, err := ParseFrame(frame.String())
			require.NoError(t, err)
			assert.Equal(t, frame, parsed)
			assert.True(t, frame.Valid())
		})
	}

	_, err := ParseFrame("parabolic")
	assert.Error(t, err)
	assert.False(t, Frame(0).Valid())
	assert.True(t, cmplx.IsNaN(Euclidean.Phi(NewPoint(1, 1, 1))))
}
