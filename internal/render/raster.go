package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// Background is the colour the surface is cleared to before drawing.
var Background = color.NRGBA{A: 255}

// Rasterizer draws scenes onto RGBA images. It keeps a path rasterizer
// between frames; it is not safe for concurrent use.
type Rasterizer struct {
	path *vector.Rasterizer
}

// NewRasterizer creates a rasterizer.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{}
}

// Draw clears dst to Background and draws the scene: bars, then points,
// then anti-aliased ray segments. Everything is clipped to dst's bounds.
func (r *Rasterizer) Draw(scene Scene, dst *image.RGBA) {
	bounds := dst.Bounds()
	draw.Draw(dst, bounds, image.NewUniform(Background), image.Point{}, draw.Src)
	if bounds.Empty() {
		return
	}

	width := float64(scene.Viewport.Width)
	if width <= 0 {
		width = float64(bounds.Dx())
	}

	for _, bar := range scene.Bars {
		r.fillRect(dst, bar, width)
	}

	for _, p := range scene.Points {
		if p.At.In(bounds) {
			dst.Set(p.At.X, p.At.Y, p.Color)
		}
	}

	for _, seg := range scene.Ray {
		r.strokeSegment(dst, seg)
	}
}

// fillRect blends the bar one pixel column at a time so that the gradient
// follows the viewport x coordinate.
func (r *Rasterizer) fillRect(dst *image.RGBA, bar Rect, width float64) {
	area := bar.Bounds.Intersect(dst.Bounds())
	if area.Empty() {
		return
	}
	for x := area.Min.X; x < area.Max.X; x++ {
		col := image.Rect(x, area.Min.Y, x+1, area.Max.Y)
		src := image.NewUniform(bar.Fill.At(float64(x) / width))
		draw.Draw(dst, col, src, image.Point{}, draw.Over)
	}
}

// strokeSegment fills the quad around the segment, widened perpendicular to
// its direction by half the stroke width on each side.
func (r *Rasterizer) strokeSegment(dst *image.RGBA, seg Segment) {
	b := dst.Bounds()
	if r.path == nil {
		r.path = vector.NewRasterizer(b.Dx(), b.Dy())
	} else {
		r.path.Reset(b.Dx(), b.Dy())
	}

	x1, y1 := float64(seg.From.X-b.Min.X), float64(seg.From.Y-b.Min.Y)
	x2, y2 := float64(seg.To.X-b.Min.X), float64(seg.To.Y-b.Min.Y)
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}

	half := float64(max(seg.Width, 1)) / 2
	px, py := -dy/length*half, dx/length*half

	r.path.MoveTo(float32(x1+px), float32(y1+py))
	r.path.LineTo(float32(x2+px), float32(y2+py))
	r.path.LineTo(float32(x2-px), float32(y2-py))
	r.path.LineTo(float32(x1-px), float32(y1-py))
	r.path.ClosePath()
	r.path.Draw(dst, b, image.NewUniform(seg.Color), image.Point{})
}
