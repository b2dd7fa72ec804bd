// Package spectrum turns raw sample windows into per-column display state.
//
// The package is pure: it performs no I/O, holds no locks and keeps no
// package-level mutable state. A Processor and the Analyzer it owns must be
// driven from one goroutine at a time.
package spectrum

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
)

// DefaultBins is the number of magnitude bins produced per tick.
const DefaultBins = 256

// WindowKind selects the window applied before the transform.
type WindowKind string

const (
	// WindowNone feeds samples to the transform unmodified.
	WindowNone WindowKind = "none"

	// WindowHann applies a Hann window.
	WindowHann WindowKind = "hann"
)

// Analyzer converts a window of samples into a magnitude spectrum.
// The transform plan and all scratch buffers are allocated once in
// NewAnalyzer and reused by every call.
type Analyzer struct {
	bins   int
	fft    *fourier.FFT
	window window.Values

	seq   []float64
	coeff []complex128
	mags  []float64
}

// NewAnalyzer creates an analyzer producing bins magnitudes from a real
// transform of 2*bins samples. bins below one is raised to one.
func NewAnalyzer(bins int, kind WindowKind) *Analyzer {
	bins = max(bins, 1)
	size := 2 * bins

	a := &Analyzer{
		bins:  bins,
		fft:   fourier.NewFFT(size),
		seq:   make([]float64, size),
		coeff: make([]complex128, size/2+1),
		mags:  make([]float64, bins),
	}
	if kind == WindowHann {
		a.window = window.NewValues(window.Hann, size)
	}
	return a
}

// Bins returns the length of the spectrum returned by Magnitudes.
func (a *Analyzer) Bins() int { return a.bins }

// Size returns the number of input samples consumed per call.
func (a *Analyzer) Size() int { return len(a.seq) }

// Magnitudes returns |X[k+1]| for k in [0, Bins()), skipping the DC term.
// Input shorter than Size() is zero padded, longer input is truncated.
// The returned slice is owned by the analyzer and overwritten by the next call.
func (a *Analyzer) Magnitudes(samples []float32) []float64 {
	n := min(len(samples), len(a.seq))
	for i := 0; i < n; i++ {
		a.seq[i] = float64(samples[i])
	}
	clear(a.seq[n:])

	if a.window != nil {
		a.window.Transform(a.seq)
	}

	a.coeff = a.fft.Coefficients(a.coeff, a.seq)
	for k := range a.mags {
		a.mags[k] = cmplx.Abs(a.coeff[k+1])
	}
	return a.mags
}
