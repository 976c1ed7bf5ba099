// Package breath estimates breathing rate from the slow baseline swing of a
// raw colour trace.
package breath

import (
	"fmt"

	"github.com/cwbudde/algo-rppg/dsp/core"
	"github.com/cwbudde/algo-rppg/dsp/spectrum"
	timestats "github.com/cwbudde/algo-rppg/stats/time"
)

const (
	// MinSamples is the shortest trace Estimate analyses.
	MinSamples = 90

	bandLowHz  = 0.15
	bandHighHz = 0.5

	// Plausible rates in breaths per minute.
	MinRate = 8.0
	MaxRate = 35.0
)

// Estimate returns the breathing rate in breaths per minute of raw, taken
// from the strongest bin between 0.15 and 0.5 Hz as peakBin·fs/n·60.
//
// The mean is removed before the transform so the window's leakage of the
// steady brightness level does not swamp the band. Only bins whose centre
// lies in 0.15-0.5 Hz are searched; a grid too coarse to place a bin there
// yields [core.ErrInsufficientData]. A rate outside [MinRate, MaxRate] is
// reported as [core.ErrImplausibleResult].
func Estimate(raw []float64, sampleRate float64) (float64, error) {
	if len(raw) < MinSamples {
		return 0, fmt.Errorf("%w: breathing needs %d samples, got %d", core.ErrInsufficientData, MinSamples, len(raw))
	}

	mean := timestats.Mean(raw)
	centred := make([]float64, len(raw))
	for i, x := range raw {
		centred[i] = x - mean
	}

	sp, err := spectrum.Transform(centred, sampleRate)
	if err != nil {
		return 0, err
	}

	lo, hi, ok := sp.BandBins(bandLowHz, bandHighHz)
	if !ok {
		return 0, fmt.Errorf("%w: no bins in %.2f-%.2f Hz at %.2f Hz sampling",
			core.ErrInsufficientData, bandLowHz, bandHighHz, sampleRate)
	}

	mag := sp.Magnitude()
	peak, _ := spectrum.PeakInBand(mag, lo, hi)
	if mag[peak] == 0 {
		return 0, fmt.Errorf("%w: no energy in the breathing band", core.ErrDegenerateSignal)
	}

	rate := sp.BinToBPM(float64(peak))
	if rate < MinRate || rate > MaxRate {
		return 0, fmt.Errorf("%w: breathing rate %.1f/min outside %.0f-%.0f",
			core.ErrImplausibleResult, rate, MinRate, MaxRate)
	}

	return rate, nil
}
