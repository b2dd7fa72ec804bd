package spectrum

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sine(n, bin int, amp float64) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(amp * math.Cos(2*math.Pi*float64(bin)*float64(i)/float64(n)))
	}
	return out
}

func argmax(v []float64) int {
	best := 0
	for i := range v {
		if v[i] > v[best] {
			best = i
		}
	}
	return best
}

func TestAnalyzer_Sizes(t *testing.T) {
	a := NewAnalyzer(DefaultBins, WindowNone)
	assert.Equal(t, 256, a.Bins())
	assert.Equal(t, 512, a.Size())
	assert.Len(t, a.Magnitudes(nil), 256)

	assert.Equal(t, 1, NewAnalyzer(0, WindowNone).Bins())
}

func TestAnalyzer_PureTone(t *testing.T) {
	a := NewAnalyzer(DefaultBins, WindowNone)
	mags := a.Magnitudes(sine(512, 201, 100.0/256))

	assert.Equal(t, 200, argmax(mags), "index k holds transform bin k+1")
	assert.InDelta(t, 100, mags[200], 1e-4)
	for k, m := range mags {
		assert.GreaterOrEqual(t, m, 0.0)
		if k != 200 {
			assert.Less(t, m, 1e-4)
		}
	}
}

func TestAnalyzer_FullScaleMagnitude(t *testing.T) {
	a := NewAnalyzer(DefaultBins, WindowNone)
	mags := a.Magnitudes(sine(512, 32, 1))
	assert.InDelta(t, 256, mags[31], 1e-4)
}

func TestAnalyzer_ZeroPadding(t *testing.T) {
	short := sine(100, 3, 0.5)
	padded := make([]float32, 512)
	copy(padded, short)

	a := NewAnalyzer(DefaultBins, WindowNone)
	got := append([]float64(nil), a.Magnitudes(short)...)
	want := NewAnalyzer(DefaultBins, WindowNone).Magnitudes(padded)
	require.Len(t, got, len(want))
	for k := range want {
		assert.InDelta(t, want[k], got[k], 1e-9)
	}

	silent := a.Magnitudes(nil)
	for _, m := range silent {
		assert.Equal(t, 0.0, m)
	}
}

func TestAnalyzer_Deterministic(t *testing.T) {
	in := sine(700, 17, 0.8)
	a := NewAnalyzer(DefaultBins, WindowNone)
	first := append([]float64(nil), a.Magnitudes(in)...)
	a.Magnitudes(sine(512, 90, 1))
	second := a.Magnitudes(in)
	assert.Equal(t, first, second)
}

func TestAnalyzer_HannWindowReducesLeakage(t *testing.T) {
	// Half-bin offset tone leaks strongly without a window.
	in := make([]float32, 512)
	for i := range in {
		in[i] = float32(math.Cos(2 * math.Pi * 40.5 * float64(i) / 512))
	}

	plain := append([]float64(nil), NewAnalyzer(DefaultBins, WindowNone).Magnitudes(in)...)
	hann := NewAnalyzer(DefaultBins, WindowHann).Magnitudes(in)

	far := 150
	assert.Less(t, hann[far], plain[far])
	assert.InDelta(t, 39.5, float64(argmax(hann))+0.5, 1)
}
