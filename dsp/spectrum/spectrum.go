package spectrum

import "github.com/cwbudde/algo-vecmath"

// Magnitude returns |X[k]| for k in 0..n/2.
func (s Spectrum) Magnitude() []float64 {
	if len(s.Bins) == 0 {
		return nil
	}

	re, im := s.parts()
	out := make([]float64, len(s.Bins))
	vecmath.Magnitude(out, re, im)

	return out
}

// Power returns |X[k]|² for k in 0..n/2.
func (s Spectrum) Power() []float64 {
	if len(s.Bins) == 0 {
		return nil
	}

	re, im := s.parts()
	out := make([]float64, len(s.Bins))
	vecmath.Power(out, re, im)

	return out
}

// parts splits the bins into real and imaginary planes for the vector
// kernels.
func (s Spectrum) parts() (re, im []float64) {
	buf := make([]float64, 2*len(s.Bins))
	re, im = buf[:len(s.Bins)], buf[len(s.Bins):]
	for k, c := range s.Bins {
		re[k], im[k] = real(c), imag(c)
	}

	return re, im
}
