// Package synth provides a synthetic sample source.
// It generates deterministic stereo signals and is used for demos and for
// testing the visualizer without audio hardware or files.
package synth

import (
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/tejashwikalptaru/spacewave/internal/domain"
	"github.com/tejashwikalptaru/spacewave/internal/ports"
)

// Signal selects the generated waveform.
type Signal string

// Available signals.
const (
	SignalTone    Signal = "tone"    // fixed sine on the left, fifth above on the right
	SignalSweep   Signal = "sweep"   // logarithmic sine sweep, repeating
	SignalSilence Signal = "silence" // all zeros
)

// Config describes the generated signal.
type Config struct {
	Signal     Signal
	SampleRate int     // Hz
	Frequency  float64 // tone frequency, sweep start frequency
	SweepTo    float64 // sweep end frequency
	SweepTicks int     // ticks per sweep
	Amplitude  float64 // peak amplitude in [0, 1]
}

// DefaultConfig returns a 440 Hz tone at half amplitude.
func DefaultConfig() Config {
	return Config{
		Signal:     SignalTone,
		SampleRate: 44100,
		Frequency:  440,
		SweepTo:    16000,
		SweepTicks: 400,
		Amplitude:  0.5,
	}
}

// Source is a synthetic implementation of ports.SampleSource.
// Each Take advances the signal by one window; the output depends only on the
// config and the number of windows taken so far.
//
// Thread-safety: This implementation is thread-safe.
type Source struct {
	logger *slog.Logger
	cfg    Config

	mu       sync.Mutex
	tick     int
	position int // samples generated so far
	closed   bool
	failWith error
	starve   bool
}

// NewSource creates a synthetic source.
func NewSource(cfg Config) (*Source, error) {
	switch cfg.Signal {
	case SignalTone, SignalSweep, SignalSilence:
	default:
		return nil, domain.NewValidationError("signal", cfg.Signal, "must be tone, sweep or silence")
	}
	if cfg.SampleRate <= 0 {
		return nil, domain.NewValidationError("sample_rate", cfg.SampleRate, "must be positive")
	}
	return &Source{cfg: cfg}, nil
}

// SetLogger sets the logger for this source.
func (s *Source) SetLogger(logger *slog.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger = logger
}

// SetFailTake makes every following Take return err (nil restores normal behaviour).
func (s *Source) SetFailTake(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = err
}

// SetStarved makes Take report that no data is available.
func (s *Source) SetStarved(starved bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.starve = starved
}

// Ticks returns how many windows have been produced.
func (s *Source) Ticks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick
}

// Name implements ports.SampleSource.
func (s *Source) Name() string {
	return fmt.Sprintf("synth:%s", s.cfg.Signal)
}

// Take implements ports.SampleSource.
func (s *Source) Take(dst *domain.SampleWindow) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, domain.ErrSourceClosed
	}
	if s.failWith != nil {
		return false, s.failWith
	}
	if s.starve {
		return false, nil
	}

	n := dst.Len()
	rate := float64(s.cfg.SampleRate)
	freq := s.frequency()
	for i := 0; i < n; i++ {
		t := float64(s.position+i) / rate
		var l, r float64
		if s.cfg.Signal != SignalSilence {
			l = s.cfg.Amplitude * math.Sin(2*math.Pi*freq*t)
			r = s.cfg.Amplitude * math.Sin(2*math.Pi*freq*1.5*t)
		}
		dst.Left[i] = float32(l)
		dst.Right[i] = float32(r)
	}

	s.position += n
	s.tick++
	if s.logger != nil && s.tick%1000 == 0 {
		s.logger.Debug("synth progress", slog.Int("ticks", s.tick), slog.Float64("frequency", freq))
	}
	return true, nil
}

// frequency returns the frequency for the current tick. Sweeps move
// geometrically from Frequency to SweepTo and then start over.
func (s *Source) frequency() float64 {
	if s.cfg.Signal != SignalSweep || s.cfg.SweepTicks <= 0 || s.cfg.Frequency <= 0 || s.cfg.SweepTo <= 0 {
		return s.cfg.Frequency
	}
	phase := float64(s.tick%s.cfg.SweepTicks) / float64(s.cfg.SweepTicks)
	return s.cfg.Frequency * math.Pow(s.cfg.SweepTo/s.cfg.Frequency, phase)
}

// Close implements ports.SampleSource.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

var _ ports.SampleSource = (*Source)(nil)
