package heartrate

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-rppg/dsp/core"
	"github.com/cwbudde/algo-rppg/dsp/spectrum"
)

const (
	// Search bands in Hz. 0.67-3.33 Hz covers 40-200 BPM.
	singleLowHz = 0.67
	welchLowHz  = 0.7
	highHz      = 3.33

	// DefaultOverlap is the Welch segment overlap.
	DefaultOverlap = 0.75
)

// Estimate returns the heart rate in BPM of filtered from a single
// transform. The largest magnitude bin in 0.67-3.33 Hz (earliest bin on
// ties) is refined by parabolic interpolation over its neighbours.
func Estimate(filtered []float64, sampleRate float64) (float64, error) {
	sp, err := spectrum.Transform(filtered, sampleRate)
	if err != nil {
		return 0, err
	}

	mag := sp.Magnitude()
	peak, err := bandPeak(sp.Grid, mag, singleLowHz)
	if err != nil {
		return 0, err
	}

	return sp.BinToBPM(spectrum.RefinePeak(mag, peak)), nil
}

// Option configures [EstimateWelch].
type Option func(*welchConfig)

type welchConfig struct {
	segmentLength int
	overlap       float64
}

// WithSegmentLength sets the Welch segment length in samples. The default is
// min(nextPow2(n), n), a single segment spanning the waveform.
func WithSegmentLength(n int) Option {
	return func(c *welchConfig) {
		c.segmentLength = n
	}
}

// WithOverlap sets the fraction shared by consecutive segments (default
// [DefaultOverlap]).
func WithOverlap(overlap float64) Option {
	return func(c *welchConfig) {
		c.overlap = overlap
	}
}

// EstimateWelch returns the heart rate in BPM of filtered from a Welch
// averaged power spectrum. The peak in 0.7-3.33 Hz is interpolated only when
// it lies strictly inside the band and the parabolic offset is under one
// bin. When no full segment fits it falls back to [Estimate].
func EstimateWelch(filtered []float64, sampleRate float64, opts ...Option) (float64, error) {
	cfg := welchConfig{
		segmentLength: min(core.NextPowerOfTwo(len(filtered)), len(filtered)),
		overlap:       DefaultOverlap,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.segmentLength < spectrum.MinTransformLength || len(filtered) < cfg.segmentLength {
		return Estimate(filtered, sampleRate)
	}

	ps, err := spectrum.Welch(filtered, sampleRate, cfg.segmentLength, cfg.overlap)
	if err != nil {
		return 0, err
	}

	peak, err := bandPeak(ps.Grid, ps.Power, welchLowHz)
	if err != nil {
		return 0, err
	}

	bin := float64(peak)
	lo, hi, _ := ps.BandBins(welchLowHz, highHz)
	if peak > lo && peak < hi {
		delta := spectrum.ParabolicOffset(ps.Power[peak-1], ps.Power[peak], ps.Power[peak+1])
		if math.Abs(delta) < 1 {
			bin += delta
		}
	}

	return ps.BinToBPM(bin), nil
}

// bandPeak finds the strongest bin between lowHz and 3.33 Hz.
func bandPeak(grid spectrum.Grid, values []float64, lowHz float64) (int, error) {
	lo, hi, ok := grid.BandBins(lowHz, highHz)
	if !ok {
		return 0, fmt.Errorf("%w: no bins in %.2f-%.2f Hz (n=%d, fs=%.2f)",
			core.ErrInsufficientData, lowHz, highHz, grid.Size, grid.SampleRate)
	}

	peak, _ := spectrum.PeakInBand(values, lo, hi)
	if values[peak] <= 0 {
		return 0, fmt.Errorf("%w: no energy in the heart-rate band", core.ErrDegenerateSignal)
	}

	return peak, nil
}
