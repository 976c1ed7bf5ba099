// Package frequency computes band statistics over power spectra: band sums,
// in-band to out-of-band ratios and peak-to-average ratios. Bin ranges are
// inclusive and clamped to the spectrum.
package frequency
