package spectrum

import (
	"math"

	"github.com/cwbudde/algo-rppg/dsp/core"
)

// Grid describes the frequency axis of a transform: the padded FFT size n
// and the sample rate of the source signal. Bin k sits at k*SampleRate/Size Hz.
type Grid struct {
	Size       int
	SampleRate float64
}

// BinHz returns the bin spacing in Hz.
func (g Grid) BinHz() float64 {
	if g.Size <= 0 {
		return 0
	}
	return g.SampleRate / float64(g.Size)
}

// BinToHz converts a (possibly fractional) bin index to Hz.
func (g Grid) BinToHz(bin float64) float64 {
	return bin * g.BinHz()
}

// BinToBPM converts a (possibly fractional) bin index to cycles per minute.
func (g Grid) BinToBPM(bin float64) float64 {
	return g.BinToHz(bin) * 60
}

// HzToBin converts a frequency to a fractional bin index.
func (g Grid) HzToBin(hz float64) float64 {
	if g.SampleRate <= 0 {
		return 0
	}
	return hz * float64(g.Size) / g.SampleRate
}

// MaxBin returns the Nyquist bin index n/2.
func (g Grid) MaxBin() int {
	return g.Size / 2
}

// BandBins returns the inclusive bin range whose centre frequencies lie in
// [loHz, hiHz], clamped to [0, n/2]. ok is false when no bin falls inside.
func (g Grid) BandBins(loHz, hiHz float64) (lo, hi int, ok bool) {
	if g.Size <= 0 || g.SampleRate <= 0 || hiHz < loHz {
		return 0, 0, false
	}

	lo = int(math.Ceil(g.HzToBin(loHz) - 1e-9))
	hi = int(math.Floor(g.HzToBin(hiHz) + 1e-9))
	lo = core.Clamp(lo, 0, g.MaxBin())
	hi = core.Clamp(hi, 0, g.MaxBin())

	return lo, hi, lo <= hi
}
