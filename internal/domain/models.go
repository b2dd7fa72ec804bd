// Package domain contains the value types shared by the visualizer, its sample
// sources and its host. It has no external dependencies.
package domain

// DefaultNodeSize is the number of samples per channel delivered each tick.
const DefaultNodeSize = 512

// SampleWindow is one tick of stereo audio.
// Samples are normalized to the range [-1, 1].
type SampleWindow struct {
	Left  []float32
	Right []float32
}

// NewSampleWindow allocates a zeroed window holding size samples per channel.
func NewSampleWindow(size int) SampleWindow {
	if size < 0 {
		size = 0
	}
	return SampleWindow{
		Left:  make([]float32, size),
		Right: make([]float32, size),
	}
}

// Len returns the number of samples per channel.
// A window with uneven channels reports the shorter one.
func (w SampleWindow) Len() int {
	return min(len(w.Left), len(w.Right))
}

// Clear zeroes both channels in place.
func (w SampleWindow) Clear() {
	clear(w.Left)
	clear(w.Right)
}

// Viewport is the paint surface size in pixels.
type Viewport struct {
	Width  int
	Height int
}

// Empty reports whether nothing can be drawn on the viewport.
func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}

// CellSize is the pixel size of one display cell.
// Columns are derived from Width and rows from Height.
type CellSize struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// DefaultCellSize returns the 3x2 pixel cell.
func DefaultCellSize() CellSize {
	return CellSize{Width: 3, Height: 2}
}

// Grid returns the column and row count that fit in the viewport.
// A one pixel border is kept on every side.
func (c CellSize) Grid(vp Viewport) (cols, rows int) {
	if c.Width <= 0 || c.Height <= 0 {
		return 0, 0
	}
	cols = max((vp.Width-2)/c.Width, 0)
	rows = max((vp.Height-2)/c.Height, 0)
	return cols, rows
}

// VisualizerStatus represents the lifecycle state of a visualizer host.
type VisualizerStatus int

const (
	// StatusStopped means no ticks are produced and state is clear.
	StatusStopped VisualizerStatus = iota

	// StatusRunning means ticks are produced while visible.
	StatusRunning

	// StatusHidden means the visualizer is running but its surface is hidden,
	// so the ticker is paused.
	StatusHidden
)

// String returns a human-readable representation of the status.
func (s VisualizerStatus) String() string {
	switch s {
	case StatusStopped:
		return "Stopped"
	case StatusRunning:
		return "Running"
	case StatusHidden:
		return "Hidden"
	default:
		return "Unknown"
	}
}
