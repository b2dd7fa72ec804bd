package spectrum

import (
	"github.com/tejashwikalptaru/spacewave/internal/domain"
)

// Frame is the result of one processing step, ready for rendering.
type Frame struct {
	Columns []Column
	Cols    int
	Rows    int
	Scale   float64
}

// Empty reports whether the frame has nothing to draw.
func (f Frame) Empty() bool {
	return f.Cols == 0 || f.Rows == 0
}

// Clone returns a deep copy of the frame.
func (f Frame) Clone() Frame {
	f.Columns = append([]Column(nil), f.Columns...)
	return f
}

// Processor runs one analysis cycle per tick and keeps the state that must
// survive between ticks: the column state and the bucket boundaries, both
// sized from the current viewport.
type Processor struct {
	cfg      Config
	analyzer *Analyzer
	columns  *Columns

	cols, rows int
	boundaries []int
	frame      []Column
}

// NewProcessor creates a processor with its own analyzer.
// The config is assumed valid; see Config.Validate.
func NewProcessor(cfg Config) *Processor {
	return &Processor{
		cfg:        cfg,
		analyzer:   NewAnalyzer(cfg.Bins, cfg.Window),
		columns:    NewColumns(0, cfg.Falloff, cfg.MaxScale),
		boundaries: Boundaries(0, cfg.Bins),
	}
}

// Config returns the processor configuration.
func (p *Processor) Config() Config { return p.cfg }

// Grid returns the column and row count of the last step.
func (p *Processor) Grid() (cols, rows int) { return p.cols, p.rows }

// Boundaries returns the cached bucket boundaries. Callers must not modify it.
func (p *Processor) Boundaries() []int { return p.boundaries }

// Resize adopts the grid derived from vp. State is discarded when the grid
// changes and kept otherwise. It reports whether the grid changed.
func (p *Processor) Resize(vp domain.Viewport) bool {
	cols, rows := p.cfg.Cell.Grid(vp)
	if cols == p.cols && rows == p.rows {
		return false
	}
	if cols != p.cols {
		p.boundaries = Boundaries(cols, p.analyzer.Bins())
	}
	p.cols, p.rows = cols, rows
	p.columns.Resize(cols)
	return true
}

// Step processes one window for the given viewport.
//
// A viewport that yields no columns or no rows produces an empty frame. The
// returned frame shares storage with the processor and is overwritten by the
// next Step; use Frame.Clone to keep it.
func (p *Processor) Step(win domain.SampleWindow, vp domain.Viewport) Frame {
	p.Resize(vp)
	if p.cols == 0 || p.rows == 0 {
		return Frame{Cols: p.cols, Rows: p.rows, Scale: 0}
	}

	p.apply(p.analyzer.Magnitudes(win.Left), win.Left)

	p.frame = p.columns.Snapshot(p.frame)
	return Frame{
		Columns: p.frame,
		Cols:    p.cols,
		Rows:    p.rows,
		Scale:   p.scale(),
	}
}

// apply folds one magnitude spectrum and the raw left channel into the columns.
func (p *Processor) apply(mags []float64, left []float32) {
	for i := 0; i < p.cols; i++ {
		raw := BucketValue(mags, p.boundaries[i], p.boundaries[i+1])
		p.columns.Update(i, raw, p.rows)
	}
	p.columns.UpdateRay(left, p.rows)
}

// scale derives the normalization scale from the current columns only, so a
// loud transient stops influencing it once its bar has fallen.
func (p *Processor) scale() float64 {
	if p.cfg.ScaleMode != ScalePeak {
		if p.cfg.FixedScale > 0 {
			return p.cfg.FixedScale
		}
		return 1
	}
	peak := p.columns.Peak()
	if peak <= 0 {
		return 1
	}
	return min(float64(p.rows)/peak, p.cfg.MaxGain)
}

// Reset forgets the grid and all column state, as when the visualizer is
// stopped. The next Step reallocates for its viewport.
func (p *Processor) Reset() {
	p.cols, p.rows = 0, 0
	p.columns.Resize(0)
	p.boundaries = Boundaries(0, p.analyzer.Bins())
	p.frame = p.frame[:0]
}
