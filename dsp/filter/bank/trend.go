package bank

// MovingAverage returns the centred mean of signal over [i-halfWidth,
// i+halfWidth] for every index, with the window clamped at the edges.
func MovingAverage(signal []float64, halfWidth int) []float64 {
	n := len(signal)
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	if halfWidth < 0 {
		halfWidth = 0
	}

	// Sums run on offsets from the first sample so a constant signal
	// averages to itself exactly.
	ref := signal[0]
	prefix := make([]float64, n+1)
	for i, x := range signal {
		prefix[i+1] = prefix[i] + (x - ref)
	}

	for i := range out {
		lo := max(0, i-halfWidth)
		hi := min(n, i+halfWidth+1)
		out[i] = ref + (prefix[hi]-prefix[lo])/float64(hi-lo)
	}

	return out
}

// Detrend subtracts from each sample the mean of a centred window of
// half-width windowSize/2, clamped at the signal edges.
func Detrend(signal []float64, windowSize int) []float64 {
	trend := MovingAverage(signal, windowSize/2)
	for i, x := range signal {
		trend[i] = x - trend[i]
	}

	return trend
}
