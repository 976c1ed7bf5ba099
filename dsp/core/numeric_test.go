package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		v, lo, hi float64
		want      float64
	}{
		{"inside", 97.5, 85, 100, 97.5},
		{"below", 72, 85, 100, 85},
		{"above", 110, 85, 100, 100},
		{"swapped bounds", 110, 100, 85, 100},
		{"on edge", 85, 85, 100, 85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
				t.Fatalf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
			}
		})
	}

	if got := Clamp(-3, 0, 256); got != 0 {
		t.Fatalf("int Clamp = %d, want 0", got)
	}
	if got := Clamp(400, 0, 256); got != 256 {
		t.Fatalf("int Clamp = %d, want 256", got)
	}
}

func TestIsFinite(t *testing.T) {
	for _, x := range []float64{0, -1, 1e308} {
		if !IsFinite(x) {
			t.Fatalf("IsFinite(%v) = false", x)
		}
	}
	for _, x := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if IsFinite(x) {
			t.Fatalf("IsFinite(%v) = true", x)
		}
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	tests := map[int]int{-4: 1, 0: 1, 1: 1, 2: 2, 3: 4, 60: 64, 64: 64, 65: 128, 300: 512, 900: 1024}

	for n, want := range tests {
		if got := NextPowerOfTwo(n); got != want {
			t.Errorf("NextPowerOfTwo(%d) = %d, want %d", n, got, want)
		}
	}
}
