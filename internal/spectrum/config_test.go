package spectrum

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tejashwikalptaru/spacewave/internal/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 256, cfg.Bins)
	assert.Equal(t, 1.2, cfg.Falloff)
	assert.Equal(t, domain.CellSize{Width: 3, Height: 2}, cfg.Cell)
	assert.Equal(t, ScaleFixed, cfg.ScaleMode)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bins", func(c *Config) { c.Bins = 0 }, "bins"},
		{"falloff", func(c *Config) { c.Falloff = -1 }, "falloff"},
		{"max scale", func(c *Config) { c.MaxScale = 1 }, "max_scale"},
		{"cell width", func(c *Config) { c.Cell.Width = 0 }, "cell.width"},
		{"cell height", func(c *Config) { c.Cell.Height = -2 }, "cell.height"},
		{"window", func(c *Config) { c.Window = "blackman" }, "window"},
		{"scale mode", func(c *Config) { c.ScaleMode = "auto" }, "scale_mode"},
		{"fixed scale", func(c *Config) { c.FixedScale = 0 }, "fixed_scale"},
		{"max gain", func(c *Config) { c.ScaleMode = ScalePeak; c.MaxGain = 0.5 }, "max_gain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			var verr *domain.ValidationError
			if assert.True(t, errors.As(err, &verr)) {
				assert.Equal(t, tt.field, verr.Field)
			}
			assert.ErrorIs(t, err, domain.ErrInvalidConfig)
		})
	}
}

func TestConfigValidate_ZeroFalloffAllowed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Falloff = 0
	cfg.Window = WindowHann
	assert.NoError(t, cfg.Validate())
}
