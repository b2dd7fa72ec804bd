package app

import (
	"fmt"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"github.com/tejashwikalptaru/spacewave/internal/adapter/audio/synth"
	"github.com/tejashwikalptaru/spacewave/internal/domain"
	"github.com/tejashwikalptaru/spacewave/internal/logger"
	"github.com/tejashwikalptaru/spacewave/internal/service"
	"github.com/tejashwikalptaru/spacewave/internal/spectrum"
	"gopkg.in/yaml.v3"
)

// SynthConfig configures the built-in signal generator used when no input
// file is given.
type SynthConfig struct {
	Signal    string  `yaml:"signal"`
	Frequency float64 `yaml:"frequency"`
	SweepTo   float64 `yaml:"sweep_to"`
	Amplitude float64 `yaml:"amplitude"`
}

// Config holds application configuration.
type Config struct {
	// AppID is the unique application identifier
	AppID string `yaml:"app_id"`

	// AppName is the display name
	AppName string `yaml:"app_name"`

	// TickInterval is the time between analysis ticks
	TickInterval time.Duration `yaml:"tick_interval"`

	// Input is a WAV file to visualize; empty uses the synthesizer
	Input string `yaml:"input"`

	// Synth configures the synthesizer
	Synth SynthConfig `yaml:"synth"`

	// LogLevel controls logging verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogFormat is "text" or "json"
	LogFormat string `yaml:"log_format"`

	// Visual tunes analysis, decay and geometry
	Visual spectrum.Config `yaml:"visual"`

	// AutoStart starts the visualizer when the window opens
	AutoStart bool `yaml:"auto_start"`

	// TestFyneApp allows injecting a test Fyne app for testing (nil for production)
	TestFyneApp fyne.App `yaml:"-"`
}

// DefaultConfig returns the default application configuration.
func DefaultConfig() Config {
	loggerCfg := logger.DefaultConfig()
	synthCfg := synth.DefaultConfig()
	return Config{
		AppID:        "com.spacewave.app",
		AppName:      "SpaceWave",
		TickInterval: service.DefaultTickInterval,
		Synth: SynthConfig{
			Signal:    string(synth.SignalSweep),
			Frequency: 40,
			SweepTo:   synthCfg.SweepTo,
			Amplitude: synthCfg.Amplitude,
		},
		LogLevel:  loggerCfg.Level.String(),
		LogFormat: loggerCfg.Format,
		Visual:    spectrum.DefaultConfig(),
		AutoStart: true,
	}
}

// LoadConfig reads a YAML file over the defaults and validates the result.
// Keys missing from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// Validate checks the configuration and returns a *domain.ValidationError
// describing the first invalid field.
func (c Config) Validate() error {
	if c.TickInterval <= 0 {
		return domain.NewValidationError("tick_interval", c.TickInterval, "must be positive")
	}
	switch c.LogFormat {
	case "text", "json", "":
	default:
		return domain.NewValidationError("log_format", c.LogFormat, "must be text or json")
	}
	if c.Input == "" {
		if _, err := synth.NewSource(c.synthConfig()); err != nil {
			return err
		}
	}
	return c.Visual.Validate()
}

// synthConfig maps SynthConfig onto the generator's config.
func (c Config) synthConfig() synth.Config {
	cfg := synth.DefaultConfig()
	cfg.Signal = synth.Signal(c.Synth.Signal)
	if c.Synth.Frequency > 0 {
		cfg.Frequency = c.Synth.Frequency
	}
	if c.Synth.SweepTo > 0 {
		cfg.SweepTo = c.Synth.SweepTo
	}
	if c.Synth.Amplitude > 0 {
		cfg.Amplitude = c.Synth.Amplitude
	}
	// One sweep lasts about six seconds regardless of tick rate.
	if c.TickInterval > 0 {
		cfg.SweepTicks = max(int(6*time.Second/c.TickInterval), 1)
	}
	return cfg
}
