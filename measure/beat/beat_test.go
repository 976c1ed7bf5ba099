package beat

import (
	"testing"

	"github.com/cwbudde/algo-rppg/internal/testutil"
	timestats "github.com/cwbudde/algo-rppg/stats/time"
)

func TestDetectSinusoid(t *testing.T) {
	// 1.25 Hz at 30 fps peaks every 24 samples, first at index 6.
	sig := testutil.DeterministicSine(1.25, 30, 1, 300)

	beats := Detect(sig, 30)
	if len(beats) < 11 {
		t.Fatalf("found %d beats, want ≥ 11: %v", len(beats), beats)
	}

	for i := 1; i < len(beats); i++ {
		if d := beats[i] - beats[i-1]; d != 24 {
			t.Fatalf("spacing %d between beats %d and %d, want 24", d, i-1, i)
		}
	}
}

func TestDetectRefractory(t *testing.T) {
	sig := make([]float64, 100)
	// Two spikes 5 samples apart; at 30 fps the refractory span is 10.5.
	sig[40], sig[45] = 5, 6

	beats := Detect(sig, 30)
	if len(beats) != 1 || beats[0] != 40 {
		t.Fatalf("beats=%v, want [40]", beats)
	}
}

func TestDetectPlateauIsNotABeat(t *testing.T) {
	sig := make([]float64, 60)
	sig[30], sig[31] = 1, 1

	if beats := Detect(sig, 30); len(beats) != 0 {
		t.Fatalf("plateau detected as beats: %v", beats)
	}
}

func TestDetectLocalMaximumBelowThreshold(t *testing.T) {
	bump := func(sig []float64) []float64 {
		sig[19], sig[20], sig[21] = 0.1, 0.2, 0.1
		return sig
	}

	// At 10 fps the threshold window is ±20 samples, all of 0..40.
	quiet := bump(make([]float64, 41))
	if beats := Detect(quiet, 10); len(beats) != 1 || beats[0] != 20 {
		t.Fatalf("isolated bump: beats=%v, want [20]", beats)
	}

	loud := bump(make([]float64, 41))
	for i := range 10 {
		loud[i] = 10
	}
	mean, std := timestats.MeanStd(loud)
	if loud[20] >= mean+thresholdStd*std {
		t.Fatalf("bump %v not below threshold %v", loud[20], mean+thresholdStd*std)
	}
	if beats := Detect(loud, 10); len(beats) != 0 {
		t.Fatalf("sub-threshold maximum detected: %v", beats)
	}
}

func TestDetectShortOrFlat(t *testing.T) {
	if beats := Detect([]float64{0, 1, 0, 1}, 30); beats != nil {
		t.Fatalf("short input: %v", beats)
	}
	if beats := Detect(testutil.DC(3, 100), 30); len(beats) != 0 {
		t.Fatalf("flat input: %v", beats)
	}
}

func TestIntervals(t *testing.T) {
	got := Intervals([]int{0, 24, 48, 75}, 30)
	testutil.RequireSliceNearlyEqual(t, got, []float64{800, 800, 900}, 1e-9)

	if Intervals([]int{3}, 30) != nil {
		t.Fatal("single beat has no interval")
	}
}

func TestDetectIncreasing(t *testing.T) {
	sig := testutil.DeterministicNoise(11, 1, 600)
	beats := Detect(sig, 30)

	for i := 1; i < len(beats); i++ {
		if beats[i] <= beats[i-1] {
			t.Fatalf("beats not increasing at %d: %v", i, beats)
		}
		if float64(beats[i]-beats[i-1]) < 0.35*30 {
			t.Fatalf("refractory violated at %d", i)
		}
	}
}
