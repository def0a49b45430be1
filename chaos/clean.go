package chaos

import (
	"image/color"

	"gonum.org/v1/gonum/floats/scalar"
)

// Clean rounds both coordinates to the given number of decimals and drops
// repeated (x, y) pairs, keeping the first occurrence and its colour. Input
// order is preserved. Clean is idempotent.
func Clean(s Samples, decimals int) Samples {
	type key struct{ x, y float64 }
	seen := make(map[key]struct{}, s.Len())
	out := Samples{
		Xs:     make([]float64, 0, s.Len()),
		Ys:     make([]float64, 0, s.Len()),
		Colors: make([]color.RGBA, 0, s.Len()),
	}

	for i := range s.Xs {
		x := scalar.Round(s.Xs[i], decimals)
		y := scalar.Round(s.Ys[i], decimals)
		// -0 and 0 are the same sample
		if x == 0 {
			x = 0
		}
		if y == 0 {
			y = 0
		}
		k := key{x, y}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out.add(x, y, s.Colors[i])
	}
	return out
}
