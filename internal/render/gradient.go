package render

import (
	"image/color"
	"sort"
)

// Stop is one colour stop of a linear gradient.
type Stop struct {
	Offset float64
	Color  color.NRGBA
}

// Gradient is a horizontal linear gradient spanning the viewport width.
// Stops must be sorted by offset; see NewGradient.
type Gradient struct {
	stops []Stop
}

// NewGradient sorts the stops by offset and builds a gradient.
func NewGradient(stops ...Stop) Gradient {
	s := append([]Stop(nil), stops...)
	sort.SliceStable(s, func(i, j int) bool { return s[i].Offset < s[j].Offset })
	return Gradient{stops: s}
}

// Stops returns a copy of the colour stops.
func (g Gradient) Stops() []Stop {
	return append([]Stop(nil), g.stops...)
}

// At returns the colour at position t in [0, 1]. Positions before the first
// stop take its colour and positions after the last take the last colour.
// A gradient without stops is transparent.
func (g Gradient) At(t float64) color.NRGBA {
	if len(g.stops) == 0 {
		return color.NRGBA{}
	}
	if t <= g.stops[0].Offset {
		return g.stops[0].Color
	}
	last := g.stops[len(g.stops)-1]
	if t >= last.Offset {
		return last.Color
	}

	i := sort.Search(len(g.stops), func(i int) bool { return g.stops[i].Offset > t })
	a, b := g.stops[i-1], g.stops[i]
	span := b.Offset - a.Offset
	if span <= 0 {
		return b.Color
	}
	return lerp(a.Color, b.Color, (t-a.Offset)/span)
}

func lerp(a, b color.NRGBA, t float64) color.NRGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// BarGradient is the fill of the spectrum bars: magenta at the edges and
// cyan in the middle, slightly translucent.
func BarGradient() Gradient {
	return NewGradient(
		Stop{Offset: 1.0 / 7, Color: color.NRGBA{R: 242, G: 51, B: 255, A: 200}},
		Stop{Offset: 4.0 / 7, Color: color.NRGBA{R: 0, G: 186, B: 255, A: 200}},
		Stop{Offset: 6.0 / 7, Color: color.NRGBA{R: 242, G: 51, B: 255, A: 200}},
	)
}

// RayGradient colours the oscilloscope trace from blue through green and
// yellow to red.
func RayGradient() Gradient {
	return NewGradient(
		Stop{Offset: 1.0 / 7, Color: color.NRGBA{R: 72, G: 176, B: 211, A: 255}},
		Stop{Offset: 2.0 / 7, Color: color.NRGBA{R: 57, G: 255, B: 57, A: 255}},
		Stop{Offset: 4.0 / 7, Color: color.NRGBA{R: 255, G: 247, B: 22, A: 255}},
		Stop{Offset: 5.0 / 7, Color: color.NRGBA{R: 255, G: 64, B: 59, A: 255}},
		Stop{Offset: 1, Color: color.NRGBA{R: 255, G: 64, B: 59, A: 255}},
	)
}

// PointColor is the colour of the mirrored point markers.
var PointColor = color.NRGBA{R: 0, G: 179, B: 255, A: 255}
