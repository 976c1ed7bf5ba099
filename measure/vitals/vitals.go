package vitals

import (
	"github.com/cwbudde/algo-rppg/dsp/core"
	"github.com/cwbudde/algo-rppg/dsp/filter/bank"
	"github.com/cwbudde/algo-rppg/measure/artifact"
	"github.com/cwbudde/algo-rppg/measure/beat"
	"github.com/cwbudde/algo-rppg/measure/breath"
	"github.com/cwbudde/algo-rppg/measure/harmonic"
	"github.com/cwbudde/algo-rppg/measure/heartrate"
	"github.com/cwbudde/algo-rppg/measure/hrv"
	"github.com/cwbudde/algo-rppg/measure/pulse"
	"github.com/cwbudde/algo-rppg/measure/quality"
	"github.com/cwbudde/algo-rppg/measure/spo2"
	"github.com/cwbudde/algo-rppg/measure/stress"
)

// DefaultMotionWindow is the number of recent samples checked for motion.
const DefaultMotionWindow = 30

// Stage names used as keys of [Report.Skipped].
const (
	StageHeartRate = "heartRate"
	StageHRV       = "hrv"
	StageSpO2      = "spo2"
	StageBreathing = "breathing"
	StageHarmonics = "harmonics"
)

// Config tunes one analysis tick.
type Config struct {
	// SampleRate in frames per second; 0 derives it from the timestamps.
	SampleRate float64

	// Strict selects the narrow harmonic range table.
	Strict bool

	// MotionWindow is the motion detector span; 0 means DefaultMotionWindow.
	MotionWindow int
}

// Report is the result of one tick. Nil metrics were not available.
type Report struct {
	SampleRate float64 `json:"sampleRate"`
	Samples    int     `json:"samples"`
	Motion     bool    `json:"motion"`

	HeartRate *float64      `json:"heartRate,omitempty"`
	Method    *pulse.Method `json:"method,omitempty"`
	Quality   quality.Score `json:"quality"`

	Beats         int               `json:"beats"`
	HRV           *hrv.Metrics      `json:"hrv,omitempty"`
	SpO2          *float64          `json:"spo2,omitempty"`
	BreathingRate *float64          `json:"breathingRate,omitempty"`
	Harmonics     *harmonic.Profile `json:"harmonics,omitempty"`
	Stress        stress.State      `json:"stress"`

	// Skipped maps a stage name to the reason it produced no value.
	Skipped map[string]string `json:"skipped,omitempty"`
}

func (r *Report) skip(stage string, err error) {
	if r.Skipped == nil {
		r.Skipped = make(map[string]string)
	}
	r.Skipped[stage] = err.Error()
}

// Analyze runs every stage on a frozen copy of window. Only a malformed
// window is an error; missing metrics are reported through Skipped.
func Analyze(window core.SampleWindow, cfg Config) (Report, error) {
	w := window.Clone()
	if err := w.Validate(); err != nil {
		return Report{}, err
	}

	fps := cfg.SampleRate
	if fps <= 0 {
		fps = w.SampleRate()
	}

	motionWindow := cfg.MotionWindow
	if motionWindow <= 0 {
		motionWindow = DefaultMotionWindow
	}

	rep := Report{
		SampleRate: fps,
		Samples:    w.Len(),
		Motion:     artifact.DetectMotion(w.R, w.G, w.B, motionWindow),
		Stress:     stress.Unknown,
	}

	fused, err := heartrate.Fuse(w, fps)
	if err != nil {
		rep.skip(StageHeartRate, err)
		rep.skip(StageHRV, err)
		rep.skip(StageHarmonics, err)
	} else {
		hr, method := fused.HeartRate, fused.Method
		rep.HeartRate = &hr
		rep.Method = &method
		rep.Quality = fused.Quality

		beats := beat.Detect(fused.Waveform, fps)
		rep.Beats = len(beats)
		if m, err := hrv.FromBeats(beats, fps); err != nil {
			rep.skip(StageHRV, err)
		} else {
			rep.HRV = &m
		}

		detrended := bank.Detrend(fused.Extracted, heartrate.DetrendWindow(fps))
		if p, err := harmonic.Analyze(detrended, fps, cfg.Strict); err != nil {
			rep.skip(StageHarmonics, err)
		} else {
			rep.Harmonics = &p
		}
	}

	if v, err := spo2.Estimate(w.R, w.B); err != nil {
		rep.skip(StageSpO2, err)
	} else {
		rep.SpO2 = &v
	}

	_, g, _ := artifact.CompensateAmbientLight(w.R, w.G, w.B)
	if v, err := breath.Estimate(g, fps); err != nil {
		rep.skip(StageBreathing, err)
	} else {
		rep.BreathingRate = &v
	}

	if rep.HRV != nil {
		hr := rep.HRV.HeartRate()
		if rep.HeartRate != nil {
			hr = *rep.HeartRate
		}
		rep.Stress = stress.Classify(rep.HRV, hr)
	}

	return rep, nil
}
