package spectrum

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-rppg/dsp/core"
)

// PowerSpectrum is an averaged power spectrum over bins 0..n/2.
type PowerSpectrum struct {
	Grid

	Power    []float64
	Segments int
}

// Welch estimates the power spectrum of signal by averaging the windowed
// power spectra of overlapping segments of segmentLength samples. overlap is
// the shared fraction of consecutive segments in [0, 1).
//
// A signal shorter than one segment yields [core.ErrInsufficientData].
func Welch(signal []float64, sampleRate float64, segmentLength int, overlap float64, opts ...Option) (PowerSpectrum, error) {
	if segmentLength < MinTransformLength {
		return PowerSpectrum{}, fmt.Errorf("%w: welch segment length %d < %d",
			core.ErrInsufficientData, segmentLength, MinTransformLength)
	}
	if len(signal) < segmentLength {
		return PowerSpectrum{}, fmt.Errorf("%w: welch needs %d samples, got %d",
			core.ErrInsufficientData, segmentLength, len(signal))
	}
	if overlap < 0 || overlap >= 1 {
		return PowerSpectrum{}, fmt.Errorf("%w: welch overlap must be in [0,1): %f", core.ErrMalformedInput, overlap)
	}

	hop := segmentLength - int(overlap*float64(segmentLength))
	if hop < 1 {
		hop = 1
	}

	var acc []float64
	var grid Grid
	segments := 0

	for start := 0; start+segmentLength <= len(signal); start += hop {
		sp, err := Transform(signal[start:start+segmentLength], sampleRate, opts...)
		if err != nil {
			return PowerSpectrum{}, err
		}

		p := sp.Power()
		if acc == nil {
			acc = p
			grid = sp.Grid
		} else {
			vecmath.AddBlockInPlace(acc, p)
		}
		segments++
	}

	vecmath.ScaleBlock(acc, acc, 1/float64(segments))

	return PowerSpectrum{Grid: grid, Power: acc, Segments: segments}, nil
}
