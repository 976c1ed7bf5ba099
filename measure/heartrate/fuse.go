package heartrate

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-rppg/dsp/core"
	"github.com/cwbudde/algo-rppg/dsp/filter/bank"
	"github.com/cwbudde/algo-rppg/measure/artifact"
	"github.com/cwbudde/algo-rppg/measure/pulse"
	"github.com/cwbudde/algo-rppg/measure/quality"
)

// MinFusionSamples is the shortest window Fuse analyses.
const MinFusionSamples = quality.MinSamples

// PathResult is the outcome of one extraction path.
type PathResult struct {
	Method pulse.Method `json:"method"`

	// Extracted is the raw extractor output, Filtered the detrended and
	// bandpassed waveform.
	Extracted []float64 `json:"-"`
	Filtered  []float64 `json:"-"`

	Quality   quality.Score `json:"quality"`
	HeartRate float64       `json:"heartRate"`

	// Err is non-nil when the path produced no heart rate.
	Err error `json:"-"`
}

// OK reports whether the path produced a heart rate.
func (p PathResult) OK() bool {
	return p.Err == nil
}

// Fusion is the combined estimate of the POS and CHROM paths.
type Fusion struct {
	// HeartRate is the quality-weighted mean in BPM.
	HeartRate float64 `json:"heartRate"`

	// Method, Quality, Waveform and Extracted describe the preferred path:
	// the higher quality score, POS on ties.
	Method    pulse.Method  `json:"method"`
	Quality   quality.Score `json:"quality"`
	Waveform  []float64     `json:"-"`
	Extracted []float64     `json:"-"`

	POS   PathResult `json:"pos"`
	CHROM PathResult `json:"chrom"`
}

// Fuse runs ambient compensation, extraction, detrending, bandpass
// filtering, quality scoring and Welch estimation for POS and CHROM
// independently and combines the two heart rates.
//
// With both quality scores at 0 the POS rate is reported. Otherwise the
// rate is (hrPOS·qPOS + hrCHROM·qCHROM) / (qPOS + qCHROM). A path without a
// heart rate is ignored; if neither has one, Fuse returns
// [core.ErrInsufficientData].
func Fuse(window core.SampleWindow, sampleRate float64) (Fusion, error) {
	if err := window.Validate(); err != nil {
		return Fusion{}, err
	}
	if window.Len() < MinFusionSamples {
		return Fusion{}, fmt.Errorf("%w: fusion needs %d samples, got %d",
			core.ErrInsufficientData, MinFusionSamples, window.Len())
	}

	r, g, b := artifact.CompensateAmbientLight(window.R, window.G, window.B)

	pos := runPath(pulse.MethodPOS, r, g, b, sampleRate)
	chrom := runPath(pulse.MethodCHROM, r, g, b, sampleRate)

	return combine(pos, chrom)
}

// DetrendWindow is the moving-average length, about two seconds, used to
// strip slow drift from an extracted waveform.
func DetrendWindow(sampleRate float64) int {
	return max(2, int(math.Round(2*sampleRate)))
}

// Condition detrends and bandpass filters an extracted waveform.
func Condition(extracted []float64, sampleRate float64) []float64 {
	return bank.Bandpass(bank.Detrend(extracted, DetrendWindow(sampleRate)), sampleRate)
}

func runPath(m pulse.Method, r, g, b []float64, sampleRate float64) PathResult {
	res := PathResult{Method: m}
	res.Extracted = pulse.Extract(m, r, g, b, sampleRate)
	res.Filtered = Condition(res.Extracted, sampleRate)

	// A short waveform leaves the zero score in place.
	res.Quality, _ = quality.Assess(res.Filtered, sampleRate)

	res.HeartRate, res.Err = EstimateWelch(res.Filtered, sampleRate)
	if res.Err == nil && (!core.IsFinite(res.HeartRate) || res.HeartRate <= 0) {
		res.Err = fmt.Errorf("%w: %s heart rate %v", core.ErrImplausibleResult, m, res.HeartRate)
	}

	return res
}

func combine(pos, chrom PathResult) (Fusion, error) {
	f := Fusion{POS: pos, CHROM: chrom}

	switch {
	case !pos.OK() && !chrom.OK():
		return f, fmt.Errorf("%w: no path produced a heart rate: %w",
			core.ErrInsufficientData, errors.Join(pos.Err, chrom.Err))
	case !chrom.OK():
		f.prefer(pos)
		f.HeartRate = pos.HeartRate
	case !pos.OK():
		f.prefer(chrom)
		f.HeartRate = chrom.HeartRate
	default:
		if chrom.Quality.Score > pos.Quality.Score {
			f.prefer(chrom)
		} else {
			f.prefer(pos)
		}

		qp, qc := float64(pos.Quality.Score), float64(chrom.Quality.Score)
		if qp+qc == 0 {
			f.HeartRate = pos.HeartRate
		} else {
			f.HeartRate = (pos.HeartRate*qp + chrom.HeartRate*qc) / (qp + qc)
		}
	}

	return f, nil
}

func (f *Fusion) prefer(p PathResult) {
	f.Method = p.Method
	f.Quality = p.Quality
	f.Waveform = p.Filtered
	f.Extracted = p.Extracted
}
