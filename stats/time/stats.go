package time

import "math"

// Mean returns the arithmetic mean of x, or 0 for an empty slice.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range x {
		sum += v
	}

	return sum / float64(len(x))
}

// MeanStd returns the mean and population standard deviation of x in one
// pass using Welford's algorithm. Both are 0 for an empty slice.
func MeanStd(x []float64) (mean, std float64) {
	var m2 float64

	for i, v := range x {
		delta := v - mean
		mean += delta / float64(i+1)
		m2 += delta * (v - mean)
	}

	if len(x) == 0 {
		return 0, 0
	}

	return mean, math.Sqrt(m2 / float64(len(x)))
}

// StdDev returns the population standard deviation of x.
func StdDev(x []float64) float64 {
	_, std := MeanStd(x)
	return std
}
