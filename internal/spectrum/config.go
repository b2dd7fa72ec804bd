package spectrum

import (
	"math"

	"github.com/tejashwikalptaru/spacewave/internal/domain"
)

// ScaleMode selects how the normalization scale is derived each tick.
type ScaleMode string

const (
	// ScaleFixed always uses Config.FixedScale.
	ScaleFixed ScaleMode = "fixed"

	// ScalePeak stretches the loudest current column towards the full row count,
	// bounded by Config.MaxGain.
	ScalePeak ScaleMode = "peak"
)

// Config tunes the analysis and decay model.
type Config struct {
	Bins       int             `yaml:"bins"`
	Falloff    float64         `yaml:"falloff"`
	MaxScale   float64         `yaml:"max_scale"`
	Cell       domain.CellSize `yaml:"cell"`
	Window     WindowKind      `yaml:"window"`
	ScaleMode  ScaleMode       `yaml:"scale_mode"`
	FixedScale float64         `yaml:"fixed_scale"`
	MaxGain    float64         `yaml:"max_gain"`
}

// DefaultConfig returns the classic look: 256 bins, falloff 1.2, 3x2 cells,
// no window and a fixed unit scale.
func DefaultConfig() Config {
	return Config{
		Bins:       DefaultBins,
		Falloff:    DefaultFalloff,
		MaxScale:   DefaultMaxScale,
		Cell:       domain.DefaultCellSize(),
		Window:     WindowNone,
		ScaleMode:  ScaleFixed,
		FixedScale: 1,
		MaxGain:    4,
	}
}

// Validate checks the configuration and returns a *domain.ValidationError
// describing the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.Bins <= 0:
		return domain.NewValidationError("bins", c.Bins, "must be positive")
	case c.Falloff < 0 || math.IsNaN(c.Falloff):
		return domain.NewValidationError("falloff", c.Falloff, "must not be negative")
	case c.MaxScale <= 1:
		return domain.NewValidationError("max_scale", c.MaxScale, "must be greater than 1")
	case c.Cell.Width <= 0:
		return domain.NewValidationError("cell.width", c.Cell.Width, "must be positive")
	case c.Cell.Height <= 0:
		return domain.NewValidationError("cell.height", c.Cell.Height, "must be positive")
	}

	switch c.Window {
	case WindowNone, WindowHann, "":
	default:
		return domain.NewValidationError("window", c.Window, "must be none or hann")
	}

	switch c.ScaleMode {
	case ScaleFixed, "":
		if c.FixedScale <= 0 {
			return domain.NewValidationError("fixed_scale", c.FixedScale, "must be positive")
		}
	case ScalePeak:
		if c.MaxGain < 1 {
			return domain.NewValidationError("max_gain", c.MaxGain, "must be at least 1")
		}
	default:
		return domain.NewValidationError("scale_mode", c.ScaleMode, "must be fixed or peak")
	}
	return nil
}
