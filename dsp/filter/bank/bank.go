package bank

import (
	"github.com/cwbudde/algo-rppg/dsp/filter/biquad"
	"github.com/cwbudde/algo-rppg/dsp/filter/design"
)

// Band is a bandpass defined by its -3 dB edges in Hz.
type Band struct {
	LowCutoff  float64
	HighCutoff float64
}

// PulseBand is the pass-band used for heart-rate analysis.
var PulseBand = Band{LowCutoff: 0.75, HighCutoff: 3.5}

// Coefficients returns the Butterworth bandpass section for sampleRate.
func (b Band) Coefficients(sampleRate float64) biquad.Coefficients {
	return design.ButterworthBandpass(b.LowCutoff, b.HighCutoff, sampleRate)
}

// Apply filters signal with a zero-state section and returns a new slice of
// the same length. Edges at or above Nyquist yield silence.
func (b Band) Apply(signal []float64, sampleRate float64) []float64 {
	return biquad.Filter(b.Coefficients(sampleRate), signal)
}

// MagnitudeDB returns the band's magnitude response in dB at freqHz.
func (b Band) MagnitudeDB(freqHz, sampleRate float64) float64 {
	c := b.Coefficients(sampleRate)
	return c.MagnitudeDB(freqHz, sampleRate)
}

// Bandpass filters signal through [PulseBand].
func Bandpass(signal []float64, sampleRate float64) []float64 {
	return PulseBand.Apply(signal, sampleRate)
}
