package spectrum

import "math"

// Boundaries returns the columns+1 bin indices that split [1, maxBin] into
// power-law buckets: boundary[i] = round(maxBin^(i/columns)).
//
// Low columns get narrow buckets and high columns wide ones. The sequence is
// non-decreasing, starts at 1 and ends exactly at maxBin. Zero columns yield
// the single boundary 0; a non-positive maxBin yields all zeros.
func Boundaries(columns, maxBin int) []int {
	if columns <= 0 {
		return []int{0}
	}
	out := make([]int, columns+1)
	if maxBin <= 0 {
		return out
	}

	base := math.Pow(float64(maxBin), 1/float64(columns))
	for i := range out {
		b := int(math.Round(math.Pow(base, float64(i))))
		if i > 0 && b < out[i-1] {
			b = out[i-1]
		}
		out[i] = min(b, maxBin)
	}
	out[columns] = maxBin
	return out
}

// BucketValue returns the loudest magnitude in spectrum[lo:hi].
// An empty run (lo == hi) reads the single bin at lo. Indices are clamped to
// the spectrum, so out-of-range buckets read as silence rather than panic.
func BucketValue(spectrum []float64, lo, hi int) float64 {
	if len(spectrum) == 0 {
		return 0
	}
	if lo == hi {
		if lo < 0 || lo >= len(spectrum) {
			return 0
		}
		return spectrum[lo]
	}

	lo = max(lo, 0)
	hi = min(hi, len(spectrum))
	var peak float64
	for k := lo; k < hi; k++ {
		peak = max(peak, spectrum[k])
	}
	return peak
}
