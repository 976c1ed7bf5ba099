package design

import (
	"math"

	"github.com/cwbudde/algo-rppg/dsp/filter/biquad"
)

// ButterworthBandpass designs a second-order Butterworth bandpass biquad with
// -3 dB edges at lowHz and highHz.
//
// The analog prototype H(s) = B*s / (s^2 + B*s + W0^2) uses pre-warped edges
// wl = tan(pi*lowHz/fs), wh = tan(pi*highHz/fs), B = wh-wl and W0^2 = wl*wh.
// Invalid edges (non-positive, inverted or at/above Nyquist) return the zero
// section, which outputs silence.
func ButterworthBandpass(lowHz, highHz, sampleRate float64) biquad.Coefficients {
	wl, okLow := prewarp(lowHz, sampleRate)
	wh, okHigh := prewarp(highHz, sampleRate)
	if !okLow || !okHigh || wh <= wl {
		return biquad.Coefficients{}
	}

	bw := wh - wl
	w0sq := wl * wh

	return normalizeBiquad(
		bw, 0, -bw,
		1+bw+w0sq, 2*(w0sq-1), 1-bw+w0sq,
	)
}

// CenterFrequency returns the digital frequency (Hz) of unity gain for a
// [ButterworthBandpass] designed with the same edges.
func CenterFrequency(lowHz, highHz, sampleRate float64) float64 {
	wl, okLow := prewarp(lowHz, sampleRate)
	wh, okHigh := prewarp(highHz, sampleRate)
	if !okLow || !okHigh {
		return 0
	}

	return sampleRate / math.Pi * math.Atan(math.Sqrt(wl*wh))
}

// prewarp returns tan(pi*freq/sampleRate) for 0 < freq < Nyquist.
func prewarp(freq, sampleRate float64) (float64, bool) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, false
	}

	if freq <= 0 || freq >= sampleRate/2 || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return 0, false
	}

	return math.Tan(math.Pi * freq / sampleRate), true
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return biquad.Coefficients{}
	}

	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
