// Package colormap maps heatmap values to colors for terminal previews.
package colormap

import (
	"fmt"
	"image/color"
	"math"
)

// Colormap is a piecewise-linear gradient over [0, 1].
type Colormap struct {
	name  string
	stops []color.RGBA
}

// Name returns the colormap name.
func (c Colormap) Name() string { return c.name }

// At returns the color at position t, clamped to [0, 1].
func (c Colormap) At(t float64) color.RGBA {
	if t <= 0 || math.IsNaN(t) {
		return c.stops[0]
	}
	if t >= 1 {
		return c.stops[len(c.stops)-1]
	}

	idx := t * float64(len(c.stops)-1)
	lower := int(idx)
	upper := min(lower+1, len(c.stops)-1)
	return interpolate(c.stops[lower], c.stops[upper], idx-float64(lower))
}

// Hex returns the color at t as "#rrggbb".
func (c Colormap) Hex(t float64) string {
	return Hex(c.At(t))
}

// Hex formats a color as "#rrggbb".
func Hex(rgba color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

// Luminance returns the relative luminance of rgba in [0, 1], used to pick
// a readable foreground over a colored cell.
func Luminance(rgba color.RGBA) float64 {
	return (0.2126*float64(rgba.R) + 0.7152*float64(rgba.G) + 0.0722*float64(rgba.B)) / 255
}

func interpolate(c1, c2 color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c1.R) + t*(float64(c2.R)-float64(c1.R))),
		G: uint8(float64(c1.G) + t*(float64(c2.G)-float64(c1.G))),
		B: uint8(float64(c1.B) + t*(float64(c2.B)-float64(c1.B))),
		A: 255,
	}
}

// Scale normalises values from [Min, Max] to [0, 1].
type Scale struct {
	Min, Max float64
}

// Symmetric returns a scale centred on zero that covers ±limit, so that a
// diverging colormap puts zero at its midpoint.
func Symmetric(limit float64) Scale {
	limit = math.Abs(limit)
	return Scale{Min: -limit, Max: limit}
}

// Normalize maps v into [0, 1]. A degenerate scale maps everything to 0.5.
func (s Scale) Normalize(v float64) float64 {
	if s.Max <= s.Min {
		return 0.5
	}
	return math.Max(0, math.Min(1, (v-s.Min)/(s.Max-s.Min)))
}

// Viridis is the matplotlib viridis colormap.
var Viridis = Colormap{
	name: "viridis",
	stops: []color.RGBA{
		{68, 1, 84, 255},
		{72, 35, 116, 255},
		{64, 67, 135, 255},
		{52, 94, 141, 255},
		{41, 120, 142, 255},
		{32, 144, 140, 255},
		{34, 167, 132, 255},
		{68, 190, 112, 255},
		{121, 209, 81, 255},
		{189, 222, 38, 255},
		{253, 231, 37, 255},
	},
}

// RdBu is a diverging red-white-blue colormap for signed estimates.
var RdBu = Colormap{
	name: "rdbu",
	stops: []color.RGBA{
		{103, 0, 31, 255},
		{178, 24, 43, 255},
		{214, 96, 77, 255},
		{244, 165, 130, 255},
		{253, 219, 199, 255},
		{247, 247, 247, 255},
		{209, 229, 240, 255},
		{146, 197, 222, 255},
		{67, 147, 195, 255},
		{33, 102, 172, 255},
		{5, 48, 97, 255},
	},
}

var byName = map[string]Colormap{
	Viridis.name: Viridis,
	RdBu.name:    RdBu,
}

// Get returns the colormap with the given name.
func Get(name string) (Colormap, bool) {
	c, ok := byName[name]
	return c, ok
}

// Names lists the available colormaps.
func Names() []string {
	return []string{Viridis.name, RdBu.name}
}
