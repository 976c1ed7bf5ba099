// Package bank conditions extracted pulse waveforms before spectral or
// peak-based analysis.
//
// [Bandpass] applies the fixed 0.75–3.5 Hz second-order Butterworth pulse
// band (45–210 BPM) as a single causal pass with zero initial state.
// [Detrend] removes slow baseline drift by subtracting a centred moving
// average, which leaves the phase of the remaining signal untouched.
package bank
