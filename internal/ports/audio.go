// Package ports define interfaces for dependency inversion.
// These interfaces keep the visualizer core independent of audio backends and UI toolkits.
package ports

import (
	"github.com/tejashwikalptaru/spacewave/internal/domain"
)

// SampleSource supplies one window of stereo samples per tick.
//
// Take fills dst with the samples for the current tick. It returns false when
// no new data is available this tick; the caller skips the tick. Finite sources
// return io.EOF once exhausted. Windows that cannot be filled completely are
// zero padded by the source.
//
// Take is called from a single goroutine. Close may be called from any goroutine.
type SampleSource interface {
	// Name identifies the source in logs and events.
	Name() string

	// Take fills dst for one tick.
	Take(dst *domain.SampleWindow) (bool, error)

	// Close releases the source. Take returns domain.ErrSourceClosed afterwards.
	Close() error
}
