// Package quality scores how much a filtered pulse waveform looks like a
// clean periodic heartbeat.
package quality

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-rppg/dsp/core"
	"github.com/cwbudde/algo-rppg/dsp/spectrum"
	"github.com/cwbudde/algo-rppg/stats/frequency"
	timestats "github.com/cwbudde/algo-rppg/stats/time"
)

const (
	// MinSamples is the shortest waveform Assess scores.
	MinSamples = 60

	// UsableThreshold is the score a waveform must exceed to be usable.
	UsableThreshold = 25

	bandLowHz  = 0.7
	bandHighHz = 3.33
)

// Score is a signal-quality verdict. Score runs from 0 to 99.
type Score struct {
	Score  int     `json:"score"`
	Usable bool    `json:"usable"`
	SNR    float64 `json:"snr"`
}

// Assess scores waveform as
//
//	min(40, 8·max(0, snr)) + min(35, 7·max(0, par-2)) + 25·stationarity
//
// clamped to [0, 99]. snr is in-band (0.7-3.33 Hz) against out-of-band
// power in dB, par is the in-band peak-to-average power ratio and
// stationarity compares the deviation of both halves of the waveform.
// Degenerate terms count as 0. Waveforms shorter than [MinSamples] yield
// the zero Score and [core.ErrInsufficientData].
func Assess(waveform []float64, sampleRate float64) (Score, error) {
	if len(waveform) < MinSamples {
		return Score{}, fmt.Errorf("%w: quality needs %d samples, got %d",
			core.ErrInsufficientData, MinSamples, len(waveform))
	}

	sp, err := spectrum.Transform(waveform, sampleRate)
	if err != nil {
		return Score{}, err
	}

	lo, hi, ok := sp.BandBins(bandLowHz, bandHighHz)
	if !ok {
		return Score{}, fmt.Errorf("%w: no bins in %.2f-%.2f Hz at %.2f Hz sampling",
			core.ErrInsufficientData, bandLowHz, bandHighHz, sampleRate)
	}

	power := sp.Power()
	snr := SNR(power, lo, hi)
	par := frequency.PeakToAverage(power, lo, hi)
	stationarity := Stationarity(waveform)

	raw := math.Min(40, math.Max(0, snr)*8) +
		math.Min(35, math.Max(0, par-2)*7) +
		stationarity*25
	score := int(math.Round(core.Clamp(raw, 0, 99)))

	return Score{Score: score, Usable: score > UsableThreshold, SNR: snr}, nil
}

// SNR returns 10·log10(band/noise) for power[lo..hi] against the remaining
// bins. It is 0 when either side carries no power.
func SNR(power []float64, lo, hi int) float64 {
	ratio, ok := frequency.BandRatio(power, lo, hi)
	if !ok || ratio <= 0 {
		return 0
	}

	return 10 * math.Log10(ratio)
}

// Stationarity returns min(s1, s2)/max(s1, s2) for the standard deviations
// of the two halves of x, or 0 when both are 0.
func Stationarity(x []float64) float64 {
	half := len(x) / 2
	s1 := timestats.StdDev(x[:half])
	s2 := timestats.StdDev(x[half:])

	hi := math.Max(s1, s2)
	if hi == 0 {
		return 0
	}

	return math.Min(s1, s2) / hi
}
