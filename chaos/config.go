package chaos

import (
	"fmt"
	"image/color"
	"math/rand"
	"time"

	"github.com/osuushi/chaosgame/projective"
	"github.com/pkg/errors"
)

// Dimension is the number of homogeneous coordinates of every vertex. It is an
// explicit choice instead of being sniffed from the input.
type Dimension int

const (
	Plane Dimension = 3
	// Solid is recognised so that it can be rejected with a clear error. The
	// solid engine is not implemented.
	Solid Dimension = 4
)

const (
	DefaultBuffer        = 1e-6
	DefaultImagTolerance = 1e-9
	DefaultDecimals      = 9
	DefaultMinSamples    = 32
	DefaultMaxRestarts   = 3
)

// Config is everything an Engine needs. Start from DefaultConfig.
type Config struct {
	Vertices  []Vertex
	Frame     projective.Frame
	Dimension Dimension

	// Inside selects primary division points (true) or their companions
	// outside the polygon (false).
	Inside bool

	Checker CheckerMode
	// CustomChecker replaces the built in inclusion tests when set.
	CustomChecker Checker
	Strategy      Strategy
	// History bounds the number of remembered vertex choices. Zero keeps them
	// all.
	History int

	// Window drops samples outside it. Use Unbounded for no limit.
	Window Limits
	// Start is a fixed start point. When nil a random one is drawn inside
	// the polygon.
	Start projective.Point

	Precision     projective.Precision
	Buffer        float64
	ImagTolerance float64
	// Decimals used by Clean.
	Decimals int

	// Run restarts from a fresh random start point while fewer than
	// MinSamples samples were accepted, at most MaxRestarts times.
	MinSamples  int
	MaxRestarts int

	// Rand is the randomness source. When nil, one is seeded from Seed, or
	// from the clock when Seed is zero.
	Rand *rand.Rand
	Seed int64
}

func DefaultConfig() Config {
	return Config{
		Frame:         projective.Elliptic,
		Dimension:     Plane,
		Inside:        true,
		Checker:       CheckBoth,
		Strategy:      Uniform,
		History:       16,
		Window:        Unbounded(),
		Precision:     projective.DefaultPrecision,
		Buffer:        DefaultBuffer,
		ImagTolerance: DefaultImagTolerance,
		Decimals:      DefaultDecimals,
		MinSamples:    DefaultMinSamples,
		MaxRestarts:   DefaultMaxRestarts,
	}
}

// Validate checks the configuration once, before any run. Convexity is not
// checked.
func (c *Config) Validate() error {
	if c.Dimension != Plane {
		return errors.Wrapf(ErrDimension, "%d coordinates", c.Dimension)
	}
	if !c.Frame.Valid() {
		return errors.Wrapf(ErrFrame, "%d", c.Frame)
	}
	if len(c.Vertices) < 3 {
		return errors.Wrapf(ErrTooFewVertices, "got %d", len(c.Vertices))
	}
	for i, v := range c.Vertices {
		if v.Dim() != int(c.Dimension) {
			return errors.Wrapf(ErrArity, "vertex %d has %d coordinates, want %d", i, v.Dim(), c.Dimension)
		}
		if !v.IsFinite() {
			return errors.Errorf("vertex %d is not finite: %s", i, v.Point)
		}
	}
	if c.Start != nil && c.Start.Dim() != int(c.Dimension) {
		return errors.Wrapf(ErrArity, "start point has %d coordinates, want %d", c.Start.Dim(), c.Dimension)
	}
	if _, ok := checkerNames[c.Checker]; !ok {
		return errors.Wrapf(ErrChecker, "%d", c.Checker)
	}
	if c.Precision <= 0 {
		return errors.Errorf("precision must be positive, got %v", c.Precision)
	}
	if c.Buffer < 0 || c.ImagTolerance < 0 || c.Decimals < 0 {
		return errors.New("tolerances and decimals must not be negative")
	}
	return nil
}

func (c *Config) random() *rand.Rand {
	if c.Rand != nil {
		return c.Rand
	}
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// RandomColor returns an opaque colour with random channels.
func RandomColor(r *rand.Rand) color.RGBA {
	return color.RGBA{
		R: uint8(r.Intn(256)),
		G: uint8(r.Intn(256)),
		B: uint8(r.Intn(256)),
		A: 0xff,
	}
}

// HexColor formats c as #RRGGBB.
func HexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
