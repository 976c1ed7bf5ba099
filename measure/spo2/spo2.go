// Package spo2 derives a blood-oxygen proxy from the ratio of pulsatile to
// steady absorption in the red and blue channels.
//
// The calibration line 110 - 25·ratio is an empirical placeholder. It has
// not been fitted against a reference oximeter and the result is not a
// diagnostic reading.
package spo2

import (
	"fmt"

	"github.com/cwbudde/algo-rppg/dsp/core"
	timestats "github.com/cwbudde/algo-rppg/stats/time"
)

const (
	// WindowSamples is the number of most recent samples used.
	WindowSamples = 60

	calibrationIntercept = 110.0
	calibrationSlope     = 25.0

	// Reported values are clamped to [MinPercent, MaxPercent].
	MinPercent = 85.0
	MaxPercent = 100.0
)

// Estimate returns the SpO2 proxy in percent over the last [WindowSamples]
// samples of red and blue:
//
//	ratio = (std(red)/mean(red)) / (std(blue)/mean(blue))
//	spo2  = clamp(110 - 25·ratio, 85, 100)
//
// A zero denominator sets ratio to 1.
func Estimate(red, blue []float64) (float64, error) {
	n := min(len(red), len(blue))
	if n < WindowSamples {
		return 0, fmt.Errorf("%w: spo2 needs %d samples, got %d", core.ErrInsufficientData, WindowSamples, n)
	}

	return core.Clamp(calibrationIntercept-calibrationSlope*Ratio(red[n-WindowSamples:n], blue[n-WindowSamples:n]),
		MinPercent, MaxPercent), nil
}

// Ratio returns the ratio of ratios (redAC/redDC)/(blueAC/blueDC), with AC
// the standard deviation and DC the mean, or 1 when any denominator is 0.
func Ratio(red, blue []float64) float64 {
	redDC, redAC := timestats.MeanStd(red)
	blueDC, blueAC := timestats.MeanStd(blue)
	if redDC == 0 || blueDC == 0 || blueAC == 0 {
		return 1
	}

	return (redAC / redDC) / (blueAC / blueDC)
}
