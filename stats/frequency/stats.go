package frequency

// Sum returns the sum of power[lo..hi] (inclusive), clamped to the slice.
func Sum(power []float64, lo, hi int) float64 {
	lo, hi = clampRange(len(power), lo, hi)

	sum := 0.0
	for k := lo; k <= hi; k++ {
		sum += power[k]
	}

	return sum
}

// Total returns the sum of all bins.
func Total(power []float64) float64 {
	return Sum(power, 0, len(power)-1)
}

// PeakToAverage returns max(power[lo..hi]) / mean(power[lo..hi]). It returns
// 0 for an empty band or a band without energy.
func PeakToAverage(power []float64, lo, hi int) float64 {
	lo, hi = clampRange(len(power), lo, hi)
	if lo > hi {
		return 0
	}

	peak := power[lo]
	sum := 0.0
	for k := lo; k <= hi; k++ {
		sum += power[k]
		if power[k] > peak {
			peak = power[k]
		}
	}

	mean := sum / float64(hi-lo+1)
	if mean <= 0 {
		return 0
	}

	return peak / mean
}

// BandRatio returns in-band power over out-of-band power, power[lo..hi]
// against the remaining bins. ok is false when there is no out-of-band
// power to compare against.
func BandRatio(power []float64, lo, hi int) (ratio float64, ok bool) {
	band := Sum(power, lo, hi)
	noise := Total(power) - band
	if noise <= 0 {
		return 0, false
	}

	return band / noise, true
}

func clampRange(n, lo, hi int) (int, int) {
	if lo < 0 {
		lo = 0
	}
	if hi > n-1 {
		hi = n - 1
	}
	return lo, hi
}
