package spectrum

import "math"

// PeakInBand returns the index of the largest value in values[lo..hi]
// (inclusive). Ties keep the earliest bin. ok is false for an empty or
// out-of-range band.
func PeakInBand(values []float64, lo, hi int) (peak int, ok bool) {
	if lo < 0 {
		lo = 0
	}
	if hi > len(values)-1 {
		hi = len(values) - 1
	}
	if lo > hi {
		return 0, false
	}

	peak = lo
	for k := lo + 1; k <= hi; k++ {
		if values[k] > values[peak] {
			peak = k
		}
	}

	return peak, true
}

// ParabolicOffset fits a parabola through three equally spaced values
// a (left), b (centre) and c (right) and returns the vertex offset from the
// centre in bins, (a-c) / (2(a-2b+c)). A non-finite result yields 0.
func ParabolicOffset(a, b, c float64) float64 {
	delta := (a - c) / (2 * (a - 2*b + c))
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return 0
	}

	return delta
}

// RefinePeak returns the fractional bin of the peak at index k, refined by
// [ParabolicOffset] over its two neighbours. The offset is clamped to ±0.5
// so the result never leaves the span between k and its neighbours. Edge
// bins are returned unrefined.
func RefinePeak(values []float64, k int) float64 {
	if k <= 0 || k >= len(values)-1 {
		return float64(k)
	}

	delta := ParabolicOffset(values[k-1], values[k], values[k+1])
	delta = math.Max(-0.5, math.Min(0.5, delta))

	return float64(k) + delta
}
