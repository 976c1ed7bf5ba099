package artifact

import (
	"math"

	"github.com/cwbudde/algo-rppg/dsp/filter/bank"
)

const (
	// MinCompensationSamples is the shortest trace CompensateAmbientLight
	// rescales; shorter traces pass through unchanged.
	MinCompensationSamples = 10

	// luminanceHalfWidth gives a 60-sample centred smoothing window.
	luminanceHalfWidth = 30

	// MotionThreshold is the maximum frame delta, relative to the mean
	// channel level, above which a window counts as moving.
	MotionThreshold = 0.08
)

// Luminance returns the Rec. 601 luma 0.299r + 0.587g + 0.114b per sample.
func Luminance(r, g, b []float64) []float64 {
	n := minLen(r, g, b)
	out := make([]float64, n)
	for i := range out {
		out[i] = 0.299*r[i] + 0.587*g[i] + 0.114*b[i]
	}

	return out
}

// CompensateAmbientLight rescales every channel by lum[0]/smooth[i], where
// smooth is the luminance averaged over a centred 60-sample window. Slow
// lighting changes are removed and brightness stays anchored to the first
// sample. Fewer than [MinCompensationSamples] samples are returned as copies.
func CompensateAmbientLight(r, g, b []float64) (rc, gc, bc []float64) {
	n := minLen(r, g, b)
	rc = append([]float64(nil), r[:n]...)
	gc = append([]float64(nil), g[:n]...)
	bc = append([]float64(nil), b[:n]...)

	if n < MinCompensationSamples {
		return rc, gc, bc
	}

	lum := Luminance(r, g, b)
	smooth := bank.MovingAverage(lum, luminanceHalfWidth)
	anchor := lum[0]

	for i := 0; i < n; i++ {
		factor := 1.0
		if smooth[i] != 0 {
			factor = anchor / smooth[i]
		}

		rc[i] *= factor
		gc[i] *= factor
		bc[i] *= factor
	}

	return rc, gc, bc
}

// DetectMotion reports whether the last windowSize samples contain a
// frame-to-frame jump, summed over the three channels, larger than
// [MotionThreshold] times the mean channel level.
//
// With fewer than windowSize+1 samples it returns false. That is not a
// quality guarantee, only the absence of evidence.
func DetectMotion(r, g, b []float64, windowSize int) bool {
	n := minLen(r, g, b)
	if windowSize <= 0 || n < windowSize+1 {
		return false
	}

	maxDelta := 0.0
	level := 0.0

	for i := n - windowSize; i < n; i++ {
		delta := math.Abs(r[i]-r[i-1]) + math.Abs(g[i]-g[i-1]) + math.Abs(b[i]-b[i-1])
		maxDelta = math.Max(maxDelta, delta)
		level += (r[i] + g[i] + b[i]) / 3
	}

	level /= float64(windowSize)
	if level <= 0 {
		return false
	}

	return maxDelta/level > MotionThreshold
}

func minLen(r, g, b []float64) int {
	return min(len(r), len(g), len(b))
}
