package window

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
)

// Cosine-sum terms a_k of w(x) = Σ (-1)^k a_k cos(2πkx).
var cosineTerms = map[Type][]float64{
	TypeHann:     {0.5, 0.5},
	TypeHamming:  {0.54, 0.46},
	TypeBlackman: {0.42, 0.5, 0.08},
}

// String returns the lower-case window name.
func (t Type) String() string {
	switch t {
	case TypeRectangular:
		return "rectangular"
	case TypeHann:
		return "hann"
	case TypeHamming:
		return "hamming"
	case TypeBlackman:
		return "blackman"
	default:
		return "unknown"
	}
}

// Generate returns the symmetric window of the given length: sample i sits at
// x = i/(length-1), so Hann is zero at both ends. A single-sample window is
// {1}; unknown types are rectangular.
func Generate(t Type, length int) []float64 {
	if length <= 0 {
		return nil
	}

	out := make([]float64, length)
	terms, ok := cosineTerms[t]
	if !ok || length == 1 {
		for i := range out {
			out[i] = 1
		}
		return out
	}

	den := float64(length - 1)
	for i := range out {
		phase := 2 * math.Pi * float64(i) / den
		v, sign := 0.0, 1.0
		for k, a := range terms {
			v += sign * a * math.Cos(float64(k)*phase)
			sign = -sign
		}
		out[i] = v
	}

	return out
}

// Apply tapers buf in place.
func Apply(t Type, buf []float64) {
	if len(buf) == 0 || t == TypeRectangular {
		return
	}

	vecmath.MulBlockInPlace(buf, Generate(t, len(buf)))
}
