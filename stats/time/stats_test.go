package time

import (
	"math"
	"testing"
)

const tolerance = 1e-10

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestMeanStd(t *testing.T) {
	tests := []struct {
		name      string
		in        []float64
		mean, std float64
	}{
		{name: "empty", in: nil, mean: 0, std: 0},
		{name: "single", in: []float64{4}, mean: 4, std: 0},
		{name: "constant", in: []float64{3, 3, 3, 3}, mean: 3, std: 0},
		{name: "textbook", in: []float64{2, 4, 4, 4, 5, 5, 7, 9}, mean: 5, std: 2},
		{name: "symmetric", in: []float64{-1, 1, -1, 1}, mean: 0, std: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std := MeanStd(tt.in)
			if !almostEqual(mean, tt.mean, tolerance) || !almostEqual(std, tt.std, tolerance) {
				t.Fatalf("MeanStd() = (%v, %v), want (%v, %v)", mean, std, tt.mean, tt.std)
			}
			if got := Mean(tt.in); !almostEqual(got, tt.mean, tolerance) {
				t.Fatalf("Mean() = %v, want %v", got, tt.mean)
			}
			if got := StdDev(tt.in); !almostEqual(got, tt.std, tolerance) {
				t.Fatalf("StdDev() = %v, want %v", got, tt.std)
			}
		})
	}
}

func TestStdDev(t *testing.T) {
	x := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	if got := StdDev(x); !almostEqual(got, 2, tolerance) {
		t.Fatalf("StdDev() = %v, want 2", got)
	}
	if got := StdDev(nil); got != 0 {
		t.Fatalf("StdDev(nil) = %v, want 0", got)
	}
}

func TestMeanStdLargeOffset(t *testing.T) {
	// Welford keeps precision when the mean dwarfs the spread.
	x := []float64{1e9 + 1, 1e9 - 1, 1e9 + 1, 1e9 - 1}
	_, std := MeanStd(x)
	if !almostEqual(std, 1, 1e-6) {
		t.Fatalf("StdDev with large offset = %v, want 1", std)
	}
}
