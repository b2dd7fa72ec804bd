// Package wavfile provides a sample source that plays back a WAV file at the
// visualizer's tick rate.
package wavfile

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/tejashwikalptaru/spacewave/internal/domain"
	"github.com/tejashwikalptaru/spacewave/internal/ports"
)

// Source reads PCM frames from a WAV file. Every Take advances the file by
// the number of frames that play during one tick interval and hands out the
// most recent window of frames, so the display follows real-time playback.
//
// Thread-safety: This implementation is thread-safe.
type Source struct {
	logger *slog.Logger
	path   string

	mu       sync.Mutex
	file     *os.File
	dec      *wav.Decoder
	buf      *audio.IntBuffer
	channels int
	depth    int
	rate     int
	hop      int // frames consumed per Take

	left, right []float32 // latest frames, oldest first
	ended       bool
	closed      bool
}

// Open opens path and prepares to deliver one hop of frames per interval.
func Open(path string, interval time.Duration) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.NewSourceError("open", path, err)
	}

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		_ = f.Close()
		return nil, domain.NewSourceError("open", path, domain.ErrUnsupportedFormat)
	}
	if err := dec.FwdToPCM(); err != nil {
		_ = f.Close()
		return nil, domain.NewSourceError("open", path, fmt.Errorf("reading WAV PCM data: %w", err))
	}

	channels := int(dec.NumChans)
	depth := int(dec.BitDepth)
	rate := int(dec.SampleRate)
	if channels < 1 || rate <= 0 {
		_ = f.Close()
		return nil, domain.NewSourceError("open", path, domain.ErrUnsupportedFormat)
	}
	switch depth {
	case 8, 16, 24, 32:
	default:
		_ = f.Close()
		return nil, domain.NewSourceError("open", path, fmt.Errorf("%w: %d-bit samples", domain.ErrUnsupportedFormat, depth))
	}

	hop := max(int(float64(rate)*interval.Seconds()), 1)
	return &Source{
		path:     path,
		file:     f,
		dec:      dec,
		channels: channels,
		depth:    depth,
		rate:     rate,
		hop:      hop,
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: channels, SampleRate: rate},
			Data:           make([]int, hop*channels),
			SourceBitDepth: depth,
		},
	}, nil
}

// SetLogger sets the logger for this source.
func (s *Source) SetLogger(logger *slog.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger = logger
}

// SampleRate returns the file's sample rate in Hz.
func (s *Source) SampleRate() int { return s.rate }

// Channels returns the file's channel count.
func (s *Source) Channels() int { return s.channels }

// Hop returns the number of frames consumed per Take.
func (s *Source) Hop() int { return s.hop }

// Name implements ports.SampleSource.
func (s *Source) Name() string { return s.path }

// Take implements ports.SampleSource. When the file runs out mid-window the
// window is zero padded; the following Take returns io.EOF.
func (s *Source) Take(dst *domain.SampleWindow) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, domain.ErrSourceClosed
	}
	if s.ended {
		return false, io.EOF
	}

	n, err := s.dec.PCMBuffer(s.buf)
	if err != nil {
		return false, domain.NewSourceError("take", s.path, err)
	}
	frames := n / s.channels
	if frames == 0 {
		s.ended = true
		if s.logger != nil {
			s.logger.Debug("wav source exhausted", slog.String("path", s.path))
		}
		return false, io.EOF
	}
	if frames < s.hop {
		s.ended = true
	}

	s.push(s.buf.Data[:frames*s.channels], dst.Len())
	s.fill(dst)
	return true, nil
}

// push appends decoded frames to the history, keeping at most keep frames.
func (s *Source) push(data []int, keep int) {
	for i := 0; i+s.channels <= len(data); i += s.channels {
		l := s.normalize(data[i])
		r := l
		if s.channels > 1 {
			r = s.normalize(data[i+1])
		}
		s.left = append(s.left, l)
		s.right = append(s.right, r)
	}
	if extra := len(s.left) - keep; extra > 0 {
		s.left = append(s.left[:0], s.left[extra:]...)
		s.right = append(s.right[:0], s.right[extra:]...)
	}
}

// fill copies the newest frames into dst, zero padding the tail when fewer
// frames than the window length have been read.
func (s *Source) fill(dst *domain.SampleWindow) {
	dst.Clear()
	copy(dst.Left, s.left)
	copy(dst.Right, s.right)
}

// normalize maps a decoded integer sample to [-1, 1]. 8-bit WAV is unsigned.
func (s *Source) normalize(v int) float32 {
	if s.depth == 8 {
		v -= 128
	}
	full := float64(int64(1) << (s.depth - 1))
	return float32(min(max(float64(v)/full, -1), 1))
}

// Close implements ports.SampleSource.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.file.Close(); err != nil {
		return domain.NewSourceError("close", s.path, err)
	}
	return nil
}

var _ ports.SampleSource = (*Source)(nil)
