package breath

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-rppg/dsp/core"
	"github.com/cwbudde/algo-rppg/internal/testutil"
)

func withOffset(sig []float64, dc float64) []float64 {
	for i := range sig {
		sig[i] += dc
	}
	return sig
}

func TestEstimate(t *testing.T) {
	tests := []struct {
		name string
		hz   float64
		want float64
	}{
		// 512-point grid at 30 fps: one bin is 30/512·60 ≈ 3.52 per minute.
		{"15 per minute", 0.25, 15},
		{"12 per minute", 0.2, 12},
		{"24 per minute", 0.4, 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := withOffset(testutil.DeterministicSine(tt.hz, 30, 0.5, 300), 110)

			got, err := Estimate(sig, 30)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(got-tt.want) > 30.0/512*60 {
				t.Fatalf("Estimate()=%.2f, want %.0f within one bin", got, tt.want)
			}
		})
	}
}

func TestEstimateSearchesBandOnly(t *testing.T) {
	tests := []struct {
		name string
		hz   float64
		n    int
	}{
		// 512-point grid: 0.53 Hz lands on bin 9 (0.527 Hz), above the band.
		{"just above band", 0.53, 300},
		// 128-point grid: the band holds bins 1-2; 0.7 Hz sits on bin 3.
		{"short window", 0.7, 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := withOffset(testutil.DeterministicSine(tt.hz, 30, 1, tt.n), 100)

			got, err := Estimate(sig, 30)
			if err != nil {
				t.Fatalf("err=%v, want the strongest in-band bin", err)
			}
			if got < bandLowHz*60 || got > bandHighHz*60 {
				t.Fatalf("Estimate()=%.2f/min outside %.0f-%.0f", got, bandLowHz*60, bandHighHz*60)
			}
		})
	}
}

func TestEstimateCoarseGrid(t *testing.T) {
	// 90 samples at 100 Hz: bins are 0.78 Hz apart, none in 0.15-0.5 Hz.
	sig := withOffset(testutil.DeterministicSine(0.3, 100, 1, 90), 100)

	if _, err := Estimate(sig, 100); !errors.Is(err, core.ErrInsufficientData) {
		t.Fatalf("err=%v, want ErrInsufficientData", err)
	}
}

func TestEstimateAbsent(t *testing.T) {
	if _, err := Estimate(make([]float64, MinSamples-1), 30); !errors.Is(err, core.ErrInsufficientData) {
		t.Fatalf("short: err=%v", err)
	}
	if _, err := Estimate(testutil.DC(80, 300), 30); !errors.Is(err, core.ErrDegenerateSignal) {
		t.Fatalf("flat: err=%v", err)
	}
}
