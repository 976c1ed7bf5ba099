package biquad

import (
	"math"
	"math/cmplx"
)

// Coefficients of H(z) = (B0 + B1·z⁻¹ + B2·z⁻²) / (1 + A1·z⁻¹ + A2·z⁻²).
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// Filter runs signal through the section from zero state and returns a new
// slice of the same length. The recursion is Direct Form II Transposed:
//
//	y  = B0·x + s1
//	s1 = B1·x − A1·y + s2
//	s2 = B2·x − A2·y
func Filter(c Coefficients, signal []float64) []float64 {
	out := make([]float64, len(signal))

	var s1, s2 float64
	for i, x := range signal {
		y := c.B0*x + s1
		s1 = c.B1*x - c.A1*y + s2
		s2 = c.B2*x - c.A2*y
		out[i] = y
	}

	return out
}

// Response evaluates H on the unit circle at freqHz.
func (c Coefficients) Response(freqHz, sampleRate float64) complex128 {
	z1 := cmplx.Exp(complex(0, -2*math.Pi*freqHz/sampleRate))
	z2 := z1 * z1

	num := complex(c.B0, 0) + complex(c.B1, 0)*z1 + complex(c.B2, 0)*z2
	den := 1 + complex(c.A1, 0)*z1 + complex(c.A2, 0)*z2

	return num / den
}

// MagnitudeDB returns 20·log10|H| at freqHz.
func (c Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(freqHz, sampleRate)))
}
