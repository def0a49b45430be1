// Chaos game fractals in the projective plane.
//
// A running point repeatedly moves toward a randomly chosen vertex of a convex
// polygon, landing at the point that divides the way there in a fixed
// relation. Unlike the classic chaos game, the division is measured in the
// metric of an absolute conic (the unit circle, or the hyperbola xy = 1), so
// the same relation gives different attractors in different frames.
package chaosgame

import (
	"github.com/osuushi/chaosgame/chaos"
	"github.com/osuushi/chaosgame/projective"
)

type Point = projective.Point
type Frame = projective.Frame
type Vertex = chaos.Vertex
type Config = chaos.Config
type Samples = chaos.Samples
type Limits = chaos.Limits

const (
	Elliptic   = projective.Elliptic
	Hyperbolic = projective.Hyperbolic
	Euclidean  = projective.Euclidean
)

// DefaultConfig returns the defaults for the elliptic frame. Only the vertices
// need to be filled in.
func DefaultConfig() Config {
	return chaos.DefaultConfig()
}

// Generate plays count rounds of the chaos game with relation rel and returns
// the deduplicated samples.
//
// The polygon in cfg.Vertices must be convex, with its vertices in order.
// Runs that accept too few samples are restarted from a new start point, see
// chaos.Engine.Run.
func Generate(cfg Config, count int, rel float64) (result Samples, err error) {
	defer func() {
		recoveredErr := chaos.HandlePanicRecover(recover())
		if recoveredErr != nil {
			result = Samples{}
			err = recoveredErr
		}
	}()
	engine, err := chaos.New(cfg)
	if err != nil {
		return Samples{}, err
	}
	samples, err := engine.Run(count, rel)
	if err != nil {
		return Samples{}, err
	}
	return engine.Clean(samples), nil
}
