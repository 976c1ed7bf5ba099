// Package hrv computes time-domain heart-rate variability statistics from
// R-R intervals.
package hrv

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-rppg/dsp/core"
	"github.com/cwbudde/algo-rppg/measure/beat"
	timestats "github.com/cwbudde/algo-rppg/stats/time"
)

// MinIntervals is the fewest R-R intervals FromIntervals accepts.
const MinIntervals = 3

// nn50Millis is the successive-difference threshold counted by pNN50.
const nn50Millis = 50

// Metrics holds HRV statistics over one run of R-R intervals in ms.
type Metrics struct {
	// SDNN is the population standard deviation of the intervals.
	SDNN float64 `json:"sdnn"`

	// RMSSD is the root mean square of successive differences.
	RMSSD float64 `json:"rmssd"`

	// PNN50 is the percentage of successive differences above 50 ms.
	PNN50 float64 `json:"pnn50"`

	// LFHFRatio is SDNN/RMSSD (1 when RMSSD is 0). It is a time-domain
	// proxy only and is not a spectral LF/HF power ratio.
	LFHFRatio float64 `json:"lfHfRatio"`

	MeanRR float64 `json:"meanRR"`
}

// FromIntervals computes Metrics from R-R intervals in milliseconds. Fewer
// than [MinIntervals] intervals yield [core.ErrInsufficientData].
func FromIntervals(rr []float64) (Metrics, error) {
	if len(rr) < MinIntervals {
		return Metrics{}, fmt.Errorf("%w: hrv needs %d intervals, got %d",
			core.ErrInsufficientData, MinIntervals, len(rr))
	}

	mean, sdnn := timestats.MeanStd(rr)

	var sumSq float64
	nn50 := 0
	for i := 1; i < len(rr); i++ {
		d := rr[i] - rr[i-1]
		sumSq += d * d
		if math.Abs(d) > nn50Millis {
			nn50++
		}
	}

	diffs := float64(len(rr) - 1)
	m := Metrics{
		SDNN:      sdnn,
		RMSSD:     math.Sqrt(sumSq / diffs),
		PNN50:     float64(nn50) / diffs * 100,
		LFHFRatio: 1,
		MeanRR:    mean,
	}
	if m.RMSSD > 0 {
		m.LFHFRatio = m.SDNN / m.RMSSD
	}

	return m, nil
}

// FromBeats converts beat indices to intervals and calls FromIntervals.
func FromBeats(beats []int, sampleRate float64) (Metrics, error) {
	return FromIntervals(beat.Intervals(beats, sampleRate))
}

// HeartRate returns the mean heart rate in BPM implied by MeanRR, or 0.
func (m Metrics) HeartRate() float64 {
	if m.MeanRR <= 0 {
		return 0
	}

	return 60000 / m.MeanRR
}
