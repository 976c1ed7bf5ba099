// Package spectrum is the spectral engine shared by every frequency-domain
// stage of the pulse pipeline.
//
// [Transform] windows a real signal (Hann by default, applied to the
// original samples only), zero-pads it to the next power of two and runs a
// radix-2 FFT through algo-fft. [Welch] averages the power spectra of
// overlapping segments. [Grid] converts between bins and Hz, and
// [PeakInBand] / [ParabolicOffset] pick and refine spectral peaks.
//
// FFT plans are pooled per transform size, so repeated ticks of the same
// window length do not re-plan and concurrent callers never share a plan.
package spectrum
