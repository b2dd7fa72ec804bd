package render

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/spacewave/internal/domain"
	"github.com/tejashwikalptaru/spacewave/internal/spectrum"
)

func testFrame() spectrum.Frame {
	return spectrum.Frame{
		Columns: []spectrum.Column{
			{Intensity: 10, Ray: 2},
			{Intensity: 0, Ray: -3},
			{Intensity: 5, Ray: 1},
			{Intensity: -1, Ray: 0},
		},
		Cols:  4,
		Rows:  20,
		Scale: 1,
	}
}

var testViewport = domain.Viewport{Width: 400, Height: 42}

func TestRender_Bars(t *testing.T) {
	scene := Render(testFrame(), testViewport, domain.DefaultCellSize())

	// Zero and negative intensities produce no bar.
	require.Len(t, scene.Bars, 2)
	assert.Equal(t, image.Rect(1, 11, 10, 21), scene.Bars[0].Bounds)
	assert.Equal(t, image.Rect(21, 16, 30, 21), scene.Bars[1].Bounds)
	assert.Equal(t, BarGradient(), scene.Bars[0].Fill)
}

func TestRender_PointsMirrored(t *testing.T) {
	scene := Render(testFrame(), testViewport, domain.DefaultCellSize())

	require.Len(t, scene.Points, 8)
	assert.Equal(t, image.Pt(1, 21-16), scene.Points[0].At)
	assert.Equal(t, image.Pt(1, 21+16), scene.Points[1].At)
	assert.Equal(t, image.Pt(7, 21), scene.Points[2].At)
	assert.Equal(t, image.Pt(7, 21), scene.Points[3].At)
	assert.Equal(t, image.Pt(19, 21), scene.Points[6].At, "negative intensity clamps to the centre")
	for _, p := range scene.Points {
		assert.Equal(t, PointColor, p.Color)
	}
}

func TestRender_RaySegments(t *testing.T) {
	scene := Render(testFrame(), testViewport, domain.DefaultCellSize())

	require.Len(t, scene.Ray, 3)
	// rows - ray: 18, 23, 19, 20
	assert.Equal(t, image.Pt(1, 18), scene.Ray[0].From)
	assert.Equal(t, image.Pt(2, 23), scene.Ray[0].To)
	assert.Equal(t, image.Pt(4, 19), scene.Ray[1].From, "swapped so the segment runs low to high")
	assert.Equal(t, image.Pt(5, 23), scene.Ray[1].To)
	assert.Equal(t, image.Pt(7, 19), scene.Ray[2].From)
	assert.Equal(t, image.Pt(8, 20), scene.Ray[2].To)
	for _, seg := range scene.Ray {
		assert.LessOrEqual(t, seg.From.Y, seg.To.Y)
		assert.Equal(t, RayWidth, seg.Width)
		assert.Equal(t, RayGradient().At(float64(seg.From.X)/400), seg.Color)
	}
}

func TestRender_ScaleApplies(t *testing.T) {
	frame := testFrame()
	frame.Scale = 0.5
	scene := Render(frame, testViewport, domain.DefaultCellSize())

	assert.Equal(t, image.Rect(1, 16, 10, 21), scene.Bars[0].Bounds)
	assert.Equal(t, image.Pt(1, 19), scene.Ray[0].From)
}

func TestRender_Empty(t *testing.T) {
	cell := domain.DefaultCellSize()

	assert.Zero(t, Render(spectrum.Frame{}, testViewport, cell).Len())
	assert.Zero(t, Render(testFrame(), domain.Viewport{}, cell).Len())
	assert.Zero(t, Render(testFrame(), testViewport, domain.CellSize{}).Len())
}

func TestRender_CullsBeyondWidth(t *testing.T) {
	frame := testFrame()
	scene := Render(frame, domain.Viewport{Width: 12, Height: 42}, domain.DefaultCellSize())

	for _, bar := range scene.Bars {
		assert.Less(t, bar.Bounds.Min.X, 12)
	}
	assert.Len(t, scene.Bars, 1)
	assert.Len(t, scene.Points, 4)
	assert.Len(t, scene.Ray, 3)
}

func TestRender_Idempotent(t *testing.T) {
	frame := testFrame()
	cell := domain.DefaultCellSize()

	first := Render(frame, testViewport, cell)
	second := Render(frame, testViewport, cell)
	assert.Equal(t, first, second)
}

func TestRender_FromProcessor(t *testing.T) {
	p := spectrum.NewProcessor(spectrum.DefaultConfig())
	vp := domain.Viewport{Width: 602, Height: 106}
	win := domain.NewSampleWindow(512)
	for i := range win.Left {
		win.Left[i] = 0.25
	}

	frame := p.Step(win, vp)
	scene := Render(frame, vp, p.Config().Cell)

	assert.Len(t, scene.Ray, frame.Cols-1)
	for _, pt := range scene.Points {
		assert.True(t, pt.At.In(image.Rect(0, 0, vp.Width, vp.Height)))
	}
}
