// Package beat locates individual heartbeats in a filtered pulse waveform
// with an adaptive-threshold peak picker.
package beat

import (
	"math"

	timestats "github.com/cwbudde/algo-rppg/stats/time"
)

const (
	// thresholdStd scales the local deviation added to the local mean.
	thresholdStd = 0.3

	// refractorySeconds is the shortest accepted beat spacing.
	refractorySeconds = 0.35

	// localSeconds is the half-width of the adaptive threshold window.
	localSeconds = 2.0
)

// Detect returns the sample indices of heartbeats in signal, strictly
// increasing.
//
// A candidate must be strictly greater than its two neighbours on each side,
// exceed mean + 0.3·std over the surrounding ±2 s, and lie at least
// 0.35·sampleRate samples after the previously accepted beat.
func Detect(signal []float64, sampleRate float64) []int {
	n := len(signal)
	if n < 5 || sampleRate <= 0 {
		return nil
	}

	half := max(1, int(math.Round(localSeconds*sampleRate)))
	refractory := refractorySeconds * sampleRate

	var beats []int
	for i := 2; i < n-2; i++ {
		x := signal[i]
		if x <= signal[i-1] || x <= signal[i-2] || x <= signal[i+1] || x <= signal[i+2] {
			continue
		}

		mean, std := timestats.MeanStd(signal[max(0, i-half):min(n, i+half+1)])
		if x <= mean+thresholdStd*std {
			continue
		}

		if len(beats) > 0 && float64(i-beats[len(beats)-1]) < refractory {
			continue
		}

		beats = append(beats, i)
	}

	return beats
}

// Intervals converts beat indices to R-R intervals in milliseconds.
func Intervals(beats []int, sampleRate float64) []float64 {
	if len(beats) < 2 || sampleRate <= 0 {
		return nil
	}

	out := make([]float64, len(beats)-1)
	for i := 1; i < len(beats); i++ {
		out[i-1] = float64(beats[i]-beats[i-1]) * 1000 / sampleRate
	}

	return out
}
