package main

import (
	"math"

	"github.com/fogleman/gg"
	"github.com/osuushi/chaosgame/chaos"
	"github.com/osuushi/chaosgame/projective"
)

// Padding around the window, in pixels
const previewPadding = 20

// Radius of a sample dot, in pixels
const sampleRadius = 1.5

// drawPreview renders the absolute, the polygon and the samples into a square
// context of the given size. The window is the engine's GuessLimits.
func drawPreview(e *chaos.Engine, frame projective.Frame, s chaos.Samples, size int) *gg.Context {
	l := e.GuessLimits(frame != projective.Euclidean)
	scale := float64(size-2*previewPadding) / math.Max(l.XMax-l.XMin, l.YMax-l.YMin)

	width := int(math.Round(scale*(l.XMax-l.XMin))) + previewPadding*2
	height := int(math.Round(scale*(l.YMax-l.YMin))) + previewPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	// Translate for padding
	c.Translate(previewPadding, previewPadding)
	// Scale
	c.Scale(scale, scale)
	// Translate to min
	c.Translate(-l.XMin, -l.YMin)

	c.SetLineWidth(1)
	c.SetRGB(0.35, 0.35, 0.35)
	drawAbsolute(c, frame, l)
	c.Stroke()

	poly := e.Polygon()
	c.MoveTo(poly.Planar[0][0], poly.Planar[0][1])
	for _, p := range poly.Planar[1:] {
		c.LineTo(p[0], p[1])
	}
	c.ClosePath()
	c.SetRGB(0, 0.6, 0.6)
	c.Stroke()

	for i := range s.Xs {
		c.SetColor(s.Colors[i])
		c.DrawPoint(s.Xs[i], s.Ys[i], sampleRadius)
		c.Fill()
	}
	return c
}

// drawAbsolute adds the conic of the frame to the current path, clipped to
// the window.
func drawAbsolute(c *gg.Context, frame projective.Frame, l chaos.Limits) {
	switch frame {
	case projective.Elliptic:
		c.DrawCircle(0, 0, 1)
	case projective.Hyperbolic:
		// Both branches of xy = 1
		const steps = 512
		for _, sign := range []float64{1, -1} {
			c.NewSubPath()
			drawing := false
			for i := 0; i <= steps; i++ {
				x := l.XMin + (l.XMax-l.XMin)*float64(i)/steps
				if x*sign <= 0 {
					continue
				}
				y := 1 / x
				if !l.Contains(x, y) {
					if drawing {
						c.NewSubPath()
						drawing = false
					}
					continue
				}
				if drawing {
					c.LineTo(x, y)
				} else {
					c.MoveTo(x, y)
					drawing = true
				}
			}
		}
	}
}
