package vitals

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-rppg/dsp/core"
	"github.com/cwbudde/algo-rppg/internal/synth"
	"github.com/cwbudde/algo-rppg/internal/testutil"
	"github.com/cwbudde/algo-rppg/measure/stress"
)

func syntheticWindow() core.SampleWindow {
	cfg := synth.DefaultConfig()
	cfg.Samples = 600
	cfg.BreathDepth = 0.01
	cfg.NoiseAmp = 0.1
	return synth.RGB(cfg)
}

func TestAnalyzeSynthetic(t *testing.T) {
	w := syntheticWindow()
	before := w.Clone()

	rep, err := Analyze(w, Config{SampleRate: 30})
	if err != nil {
		t.Fatal(err)
	}

	if rep.HeartRate == nil || math.Abs(*rep.HeartRate-72) > 3 {
		t.Fatalf("HeartRate=%v, want ≈72 (skipped: %v)", rep.HeartRate, rep.Skipped)
	}
	if rep.Method == nil {
		t.Fatal("missing method")
	}
	if rep.HRV == nil {
		t.Fatalf("HRV missing: %v", rep.Skipped)
	}
	if rep.Beats < 4 {
		t.Fatalf("Beats=%d", rep.Beats)
	}
	if rep.SpO2 == nil || *rep.SpO2 < 85 || *rep.SpO2 > 100 {
		t.Fatalf("SpO2=%v", rep.SpO2)
	}
	if rep.BreathingRate == nil || math.Abs(*rep.BreathingRate-15) > 2 {
		t.Fatalf("BreathingRate=%v, want ≈15 (skipped: %v)", rep.BreathingRate, rep.Skipped)
	}
	if rep.Harmonics == nil {
		t.Fatalf("Harmonics missing: %v", rep.Skipped)
	}
	if rep.Stress.Level == stress.LevelUnknown {
		t.Fatalf("Stress=%+v", rep.Stress)
	}
	if rep.Motion {
		t.Fatal("steady synthetic recording flagged as motion")
	}
	if rep.Samples != 600 || rep.SampleRate != 30 {
		t.Fatalf("Samples=%d SampleRate=%v", rep.Samples, rep.SampleRate)
	}

	testutil.RequireSliceNearlyEqual(t, w.G, before.G, 0)
}

func TestAnalyzeShortWindow(t *testing.T) {
	cfg := synth.DefaultConfig()
	cfg.Samples = 30
	w := synth.RGB(cfg)

	rep, err := Analyze(w, Config{})
	if err != nil {
		t.Fatal(err)
	}

	if rep.HeartRate != nil || rep.HRV != nil || rep.SpO2 != nil || rep.BreathingRate != nil || rep.Harmonics != nil {
		t.Fatalf("short window produced metrics: %+v", rep)
	}
	for _, stage := range []string{StageHeartRate, StageHRV, StageSpO2, StageBreathing, StageHarmonics} {
		if rep.Skipped[stage] == "" {
			t.Errorf("no skip reason for %s", stage)
		}
	}
	if rep.Stress != stress.Unknown {
		t.Fatalf("Stress=%+v, want unknown", rep.Stress)
	}

	// 30 samples over 29 frame periods.
	if want := 30 / (29.0 / 30); math.Abs(rep.SampleRate-want) > 1e-9 {
		t.Fatalf("derived SampleRate=%v, want %v", rep.SampleRate, want)
	}
}

func TestAnalyzeMalformed(t *testing.T) {
	w := core.SampleWindow{R: []float64{1, 2}, G: []float64{1, 2}, B: []float64{1, -2}}
	if _, err := Analyze(w, Config{}); !errors.Is(err, core.ErrMalformedInput) {
		t.Fatalf("err=%v", err)
	}
}

func TestReportJSONOmitsAbsentMetrics(t *testing.T) {
	rep, err := Analyze(synth.Flat(10, 1, 1, 1, 30), Config{})
	if err != nil {
		t.Fatal(err)
	}

	raw, err := json.Marshal(rep)
	if err != nil {
		t.Fatal(err)
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"heartRate", "hrv", "spo2", "breathingRate", "harmonics"} {
		if _, ok := fields[k]; ok {
			t.Errorf("absent metric %q serialized", k)
		}
	}
	if _, ok := fields["skipped"]; !ok {
		t.Error("skip reasons missing from JSON")
	}
}
