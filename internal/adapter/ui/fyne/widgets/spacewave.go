// Package widgets provides custom Fyne widgets for the SpaceWave window.
package widgets

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/tejashwikalptaru/spacewave/internal/domain"
	"github.com/tejashwikalptaru/spacewave/internal/render"
	"github.com/tejashwikalptaru/spacewave/internal/spectrum"
)

// FrameSource is what the widget paints from. The visualizer service
// satisfies it.
type FrameSource interface {
	// Snapshot returns a copy of the latest frame.
	Snapshot() (spectrum.Frame, uint64)

	// Cell returns the cell size the frame was computed with.
	Cell() domain.CellSize

	// SetViewport reports the paint surface size in pixels.
	SetViewport(vp domain.Viewport)
}

// SpaceWave paints spectrum frames into a raster: gradient bars, mirrored
// peak points, and the waveform ray. Double-tapping it invokes the
// double-tap callback, which the window uses to toggle full screen.
type SpaceWave struct {
	widget.BaseWidget

	source FrameSource
	raster *canvas.Raster

	mu             sync.Mutex
	rasterizer     *render.Rasterizer
	img            *image.RGBA
	lastSeq        uint64
	onDoubleTapped func()
}

// NewSpaceWave creates a widget painting frames from source.
func NewSpaceWave(source FrameSource) *SpaceWave {
	v := &SpaceWave{
		source:     source,
		rasterizer: render.NewRasterizer(),
	}
	v.raster = canvas.NewRaster(v.draw)
	v.ExtendBaseWidget(v)
	return v
}

// CreateRenderer implements fyne.Widget.
func (v *SpaceWave) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.raster)
}

// MinSize returns the minimum size of the visualizer.
func (v *SpaceWave) MinSize() fyne.Size {
	return fyne.NewSize(0, 0)
}

// Refresh repaints the raster with the latest frame.
func (v *SpaceWave) Refresh() {
	v.raster.Refresh()
}

// SetOnDoubleTapped sets the double-tap callback.
func (v *SpaceWave) SetOnDoubleTapped(callback func()) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.onDoubleTapped = callback
}

// DoubleTapped implements fyne.DoubleTappable.
func (v *SpaceWave) DoubleTapped(_ *fyne.PointEvent) {
	v.mu.Lock()
	callback := v.onDoubleTapped
	v.mu.Unlock()

	if callback != nil {
		callback()
	}
}

// LastSeq returns the sequence number of the last painted frame.
func (v *SpaceWave) LastSeq() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastSeq
}

// draw is the raster generator. w and h are in pixels.
func (v *SpaceWave) draw(w, h int) image.Image {
	vp := domain.Viewport{Width: w, Height: h}
	v.source.SetViewport(vp)
	frame, seq := v.source.Snapshot()
	scene := render.Render(frame, vp, v.source.Cell())

	v.mu.Lock()
	defer v.mu.Unlock()

	// The image is reused until the size changes.
	if v.img == nil || v.img.Rect.Dx() != w || v.img.Rect.Dy() != h {
		v.img = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	v.rasterizer.Draw(scene, v.img)
	v.lastSeq = seq
	return v.img
}

var _ fyne.Widget = (*SpaceWave)(nil)
var _ fyne.DoubleTappable = (*SpaceWave)(nil)
