// Package render turns processed frames into drawable primitives and
// rasterizes them. Render is pure; Rasterize only writes to its destination.
package render

import (
	"image"
	"image/color"

	"github.com/tejashwikalptaru/spacewave/internal/domain"
	"github.com/tejashwikalptaru/spacewave/internal/spectrum"
)

// Layout constants of the space wave look.
const (
	barGap      = 7   // extra pixels between bar origins beyond the cell width
	pointFactor = 0.8 // vertical scale of point markers relative to cell height
	RayWidth    = 2   // stroke width of the ray trace
)

// Rect is a filled rectangle. Fill is sampled horizontally across the
// viewport width, not across the rectangle.
type Rect struct {
	Bounds image.Rectangle
	Fill   Gradient
}

// Point is a single pixel marker.
type Point struct {
	At    image.Point
	Color color.NRGBA
}

// Segment is a stroked line from From to To, with From.Y <= To.Y.
type Segment struct {
	From, To image.Point
	Width    int
	Color    color.NRGBA
}

// Scene is the ordered set of primitives for one frame: bars, then points,
// then the ray trace on top.
type Scene struct {
	Viewport domain.Viewport
	Bars     []Rect
	Points   []Point
	Ray      []Segment
}

// Len returns the total number of primitives.
func (s Scene) Len() int {
	return len(s.Bars) + len(s.Points) + len(s.Ray)
}

// Render lays out the frame on the viewport. Negative intensities are
// treated as zero. Primitives starting at or beyond the right edge are culled.
func Render(frame spectrum.Frame, vp domain.Viewport, cell domain.CellSize) Scene {
	scene := Scene{Viewport: vp}
	if frame.Empty() || vp.Empty() || cell.Width <= 0 || cell.Height <= 0 {
		return scene
	}

	n := min(frame.Cols, len(frame.Columns))
	mid := vp.Height / 2
	bars := BarGradient()
	rays := RayGradient()

	for i := 0; i < n; i++ {
		x := i*(cell.Width+barGap) + 1
		if x >= vp.Width {
			break
		}
		offset := int(max(frame.Columns[i].Intensity, 0) * frame.Scale * float64(cell.Height) / 2)
		if offset <= 0 {
			continue
		}
		scene.Bars = append(scene.Bars, Rect{
			Bounds: image.Rect(x, mid-offset, x+cell.Width+barGap-1, mid),
			Fill:   bars,
		})
	}

	for i := 0; i < n; i++ {
		x := i*cell.Width*2 + 1
		if x >= vp.Width {
			break
		}
		offset := int(max(frame.Columns[i].Intensity, 0) * frame.Scale * float64(cell.Height) * pointFactor)
		scene.Points = append(scene.Points,
			Point{At: image.Pt(x, mid-offset), Color: PointColor},
			Point{At: image.Pt(x, mid+offset), Color: PointColor},
		)
	}

	for i := 0; i+1 < n; i++ {
		x := i*cell.Width + 1
		if x >= vp.Width {
			break
		}
		front := int(float64(frame.Rows) - float64(frame.Columns[i].Ray)*frame.Scale)
		end := int(float64(frame.Rows) - float64(frame.Columns[i+1].Ray)*frame.Scale)
		if front > end {
			front, end = end, front
		}
		scene.Ray = append(scene.Ray, Segment{
			From:  image.Pt(x, front),
			To:    image.Pt(x+1, end),
			Width: RayWidth,
			Color: rays.At(float64(x) / float64(vp.Width)),
		})
	}

	return scene
}
