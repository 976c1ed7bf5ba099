package testutil

import (
	"math"
	"math/rand"
	"slices"
)

// DeterministicSine returns length samples of amplitude·sin(2π·freqHz·t)
// sampled at sampleRate, starting at phase zero.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	w := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(w*float64(i))
	}

	return out
}

// DeterministicNoise returns uniform noise in [-amplitude, amplitude) from a
// seeded source.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, length)
	for i := range out {
		out[i] = amplitude * (2*rng.Float64() - 1)
	}

	return out
}

// Impulse returns a unit spike at pos. An out-of-range pos yields silence.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}

	return out
}

// DC returns a constant trace, the brightness of a perfectly still scene.
func DC(value float64, length int) []float64 {
	return slices.Repeat([]float64{value}, length)
}
