// Package heartrate estimates heart rate from a band-limited pulse waveform
// by spectral peak picking, and fuses the estimates of the POS and CHROM
// extraction paths into a single quality-weighted value.
//
// [Estimate] works on one Hann-windowed transform. [EstimateWelch] averages
// the power spectra of overlapping segments. [Fuse] runs the full
// conditioning chain for both extractors on a sample window.
package heartrate
