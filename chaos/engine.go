package chaos

import (
	"context"
	"image/color"
	"log/slog"
	"math"
	"math/rand"

	"github.com/osuushi/chaosgame/dbg"
	"github.com/osuushi/chaosgame/projective"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// Start points are drawn by rejection sampling. A polygon that rejects this
// many draws in a row is treated as degenerate.
const maxStartAttempts = 1 << 16

// Padding added around the vertices by GuessLimits.
const limitsPadding = 0.5

// Engine plays the chaos game on one polygon. It is a synchronous compute loop
// and not safe for concurrent use; run one Engine per goroutine.
type Engine struct {
	cfg       Config
	polygon   *Polygon
	inclusion *Inclusion
	check     Checker
	divider   *Divider
	rng       *rand.Rand
	start     projective.Point
	restarts  int
}

// New validates cfg and precomputes the inclusion tests. Vertices without a
// colour get a random one.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Strategy == nil {
		cfg.Strategy = Uniform
	}

	e := &Engine{cfg: cfg, rng: cfg.random()}

	vertices := make([]Vertex, len(cfg.Vertices))
	copy(vertices, cfg.Vertices)
	for i := range vertices {
		if vertices[i].Color == (color.RGBA{}) {
			vertices[i].Color = RandomColor(e.rng)
		}
	}
	e.cfg.Vertices = vertices

	e.polygon = NewPolygon(vertices, cfg.Precision)
	e.inclusion = NewInclusion(e.polygon, cfg.Buffer, cfg.Precision)
	e.check = e.inclusion.Checker(cfg.Checker)
	if cfg.CustomChecker != nil {
		e.check = cfg.CustomChecker
	}
	e.divider = NewDivider(cfg.Frame, e.polygon, e.check, cfg.Precision, cfg.ImagTolerance)

	if cfg.Start != nil {
		e.start = cfg.Start.Clone()
	}
	return e, nil
}

func (e *Engine) Polygon() *Polygon {
	return e.polygon
}

func (e *Engine) Inclusion() *Inclusion {
	return e.inclusion
}

// Contains runs the configured inclusion test.
func (e *Engine) Contains(p projective.Point) bool {
	return e.check(p)
}

func (e *Engine) Divider() *Divider {
	return e.divider
}

// Stats are the divider's counters plus the restarts done by Run.
func (e *Engine) Stats() Stats {
	s := e.divider.Stats()
	s.Restarts = e.restarts
	return s
}

// StartPoint is the point the next Work call starts from, or nil if it will
// draw a random one.
func (e *Engine) StartPoint() projective.Point {
	return e.start
}

func (e *Engine) SetStartPoint(p projective.Point) {
	e.start = p
}

// GenStartPoint draws points uniformly from a box until the inclusion test
// gives the verdict the engine runs with. For primary points the box is the
// polygon's bounding box; for companion points it is GuessLimits.
func (e *Engine) GenStartPoint() (projective.Point, error) {
	bound := e.polygon.Bound()
	if !e.cfg.Inside {
		l := e.GuessLimits(e.cfg.Frame != projective.Euclidean)
		bound = orb.Bound{Min: orb.Point{l.XMin, l.YMin}, Max: orb.Point{l.XMax, l.YMax}}
	}

	for i := 0; i < maxStartAttempts; i++ {
		x := bound.Min[0] + e.rng.Float64()*(bound.Max[0]-bound.Min[0])
		y := bound.Min[1] + e.rng.Float64()*(bound.Max[1]-bound.Min[1])
		p := projective.NewPoint(x, y, 1)
		if e.check(p) == e.cfg.Inside {
			return p, nil
		}
	}
	Logger().Warn("start point sampling gave up", "attempts", maxStartAttempts)
	return nil, errors.Wrapf(ErrStartPoint, "after %d attempts", maxStartAttempts)
}

// GuessLimits fits the polygon, and optionally the absolute, into a padded
// window.
func (e *Engine) GuessLimits(includeAbsolute bool) Limits {
	bound := e.polygon.Bound()
	if includeAbsolute {
		bound = bound.Extend(orb.Point{-1, -1}).Extend(orb.Point{1, 1})
	}
	return limitsFromBound(bound.Pad(limitsPadding))
}

// Work plays count rounds of the chaos game with relation rel. Every round
// counts, accepted or not: rounds whose division is discarded are not
// retried.
func (e *Engine) Work(count int, rel float64) (samples Samples, err error) {
	defer func() {
		if recovered := HandlePanicRecover(recover()); recovered != nil {
			err = recovered
		}
	}()

	if math.IsNaN(rel) || math.IsInf(rel, 0) || e.cfg.Precision.Zero(1+rel) {
		return Samples{}, errors.Wrapf(ErrRelation, "%v", rel)
	}
	if e.start == nil {
		if e.start, err = e.GenStartPoint(); err != nil {
			return Samples{}, err
		}
	}

	logger := Logger()
	logger.Debug("chaos game started", "start", e.start.String(), "count", count, "rel", rel)

	vertices := e.polygon.Vertices
	visits := make([]int, len(vertices))
	history := make([]int, 0, e.cfg.History)
	cur := projective.FromPlanar(e.start.Planar(e.cfg.Precision))

	for i := 0; i < count; i++ {
		idx := e.cfg.Strategy(e.rng, vertices, history)
		vertex := vertices[idx]

		candidate := e.divider.Divide(cur, vertex.Point, rel, e.cfg.Inside)
		if !candidate.IsFinite() || e.check(candidate) != e.cfg.Inside {
			continue
		}
		x, y := candidate.Real(0), candidate.Real(1)
		if !e.cfg.Window.Contains(x, y) {
			continue
		}

		samples.add(x, y, vertex.Color)
		cur = candidate
		visits[idx]++
		history = append(history, idx)
		if e.cfg.History > 0 && len(history) > e.cfg.History {
			history = append(history[:0], history[len(history)-e.cfg.History:]...)
		}
	}

	if logger.Enabled(context.Background(), slog.LevelDebug) {
		for i := range vertices {
			logger.Debug("vertex visits", "vertex", dbg.Name(&vertices[i]), "at", vertices[i].String(), "visits", visits[i])
		}
		logger.Debug("chaos game finished", "accepted", samples.Len(), "stats", e.Stats().String())
	}
	return samples, nil
}

// Run is Work with a guard against degenerate runs: while fewer than
// MinSamples samples come back, it restarts from a fresh random start point,
// at most MaxRestarts times.
func (e *Engine) Run(count int, rel float64) (Samples, error) {
	samples, err := e.Work(count, rel)
	for tries := 0; err == nil && samples.Len() < e.cfg.MinSamples && tries < e.cfg.MaxRestarts; tries++ {
		var start projective.Point
		if start, err = e.GenStartPoint(); err != nil {
			break
		}
		Logger().Info("restarting chaos game", "accepted", samples.Len(), "min", e.cfg.MinSamples, "start", start.String())
		e.start = start
		e.restarts++
		samples, err = e.Work(count, rel)
	}
	return samples, err
}

// Clean deduplicates samples at the configured number of decimals.
func (e *Engine) Clean(s Samples) Samples {
	return Clean(s, e.cfg.Decimals)
}
