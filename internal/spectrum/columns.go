package spectrum

import "math"

// Decay model defaults.
const (
	DefaultFalloff  = 1.2
	DefaultMaxScale = 256.0
)

// Column is the persisted display state of one column.
type Column struct {
	// Intensity is the falling-bar height in rows, within [0, rows] after Update.
	Intensity float64

	// Ray is the oscilloscope offset in rows, within [-rows/2, rows/2].
	Ray int
}

// Columns holds the per-column state carried from tick to tick.
// Columns do not interact: each one is updated from its own bucket only.
type Columns struct {
	falloff  float64
	maxScale float64
	state    []Column
}

// NewColumns creates n zeroed columns using the given falloff factor and the
// raw magnitude that maps onto 1.25 times the row count.
func NewColumns(n int, falloff, maxScale float64) *Columns {
	return &Columns{
		falloff:  falloff,
		maxScale: maxScale,
		state:    make([]Column, max(n, 0)),
	}
}

// Len returns the number of columns.
func (c *Columns) Len() int { return len(c.state) }

// At returns column i.
func (c *Columns) At(i int) Column { return c.state[i] }

// Resize drops all state and allocates n zeroed columns.
func (c *Columns) Resize(n int) {
	c.state = make([]Column, max(n, 0))
}

// Reset zeroes every column in place.
func (c *Columns) Reset() {
	clear(c.state)
}

// DecayStep returns the per-tick intensity drop for the given row count.
func (c *Columns) DecayStep(rows int) float64 {
	return c.falloff * float64(rows) / 15
}

// Level maps a raw bucket magnitude onto rows with a logarithmic curve:
// clamp(log(raw) * 1.25*rows/log(maxScale), 0, rows). Non-positive input and
// a degenerate maxScale map to zero.
func (c *Columns) Level(raw float64, rows int) float64 {
	if raw <= 0 || rows <= 0 {
		return 0
	}
	denom := math.Log(c.maxScale)
	if denom == 0 || math.IsNaN(denom) {
		return 0
	}
	mag := math.Log(raw) * 1.25 * float64(rows) / denom
	return min(max(mag, 0), float64(rows))
}

// Update applies one tick to column i: the intensity first falls by the decay
// step, then is raised to the level of raw if that is higher. The fallen value
// may be negative before the comparison; the stored result never is, since
// the level is never below zero.
func (c *Columns) Update(i int, raw float64, rows int) {
	col := &c.state[i]
	col.Intensity -= c.DecayStep(rows)
	col.Intensity = max(col.Intensity, c.Level(raw, rows))
}

// UpdateRay samples the raw left channel once per column at an even stride
// and stores the scaled offset. Positions are tracked in 1/256 sample units.
func (c *Columns) UpdateRay(left []float32, rows int) {
	n := len(c.state)
	if n == 0 {
		return
	}
	if len(left) == 0 {
		for i := range c.state {
			c.state[i].Ray = 0
		}
		return
	}

	half := rows / 2
	step := (len(left) << 8) / n
	pos := 0
	for i := range c.state {
		pos += step
		idx := min(pos>>8, len(left)-1)
		v := int(left[idx] * float32(rows) / 2)
		c.state[i].Ray = min(max(v, -half), half)
	}
}

// Snapshot copies the column state into dst, reusing its storage.
func (c *Columns) Snapshot(dst []Column) []Column {
	return append(dst[:0], c.state...)
}

// Peak returns the highest intensity across all columns, or zero when empty.
func (c *Columns) Peak() float64 {
	var peak float64
	for _, col := range c.state {
		peak = max(peak, col.Intensity)
	}
	return peak
}
