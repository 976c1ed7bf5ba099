// Package synth renders synthetic R/G/B skin-reflectance recordings with a
// known pulse and breathing rate, for the CLI's synth command and for tests.
package synth

import (
	"math"
	"math/rand"
	"slices"

	"github.com/cwbudde/algo-rppg/dsp/core"
)

// Relative pulsatile strength of the normalized R, G and B skin reflectance.
var pulseSignature = [3]float64{0.33, 0.77, 0.53}

// Config describes a synthetic skin-reflectance recording.
type Config struct {
	SampleRate  float64 // frames per second
	Samples     int
	HeartHz     float64 // pulse fundamental
	PulseDepth  float64 // relative modulation depth of the pulse
	BreathHz    float64 // 0 disables the respiratory baseline swing
	BreathDepth float64
	NoiseAmp    float64 // uniform noise amplitude in brightness units
	Seed        int64
}

// DefaultConfig returns a clean 10 s, 30 fps recording at 72 BPM with a
// 15 breaths/min baseline swing.
func DefaultConfig() Config {
	return Config{
		SampleRate:  30,
		Samples:     300,
		HeartHz:     1.2,
		PulseDepth:  0.01,
		BreathHz:    0.25,
		BreathDepth: 0.004,
		Seed:        1,
	}
}

// RGB renders cfg into a sample window with millisecond
// timestamps. The pulse carries a second harmonic so harmonic analysis has
// something to find; every channel stays well above zero.
func RGB(cfg Config) core.SampleWindow {
	base := [3]float64{150, 110, 90}
	rng := rand.New(rand.NewSource(cfg.Seed))

	w := core.SampleWindow{
		R:          make([]float64, cfg.Samples),
		G:          make([]float64, cfg.Samples),
		B:          make([]float64, cfg.Samples),
		Timestamps: make([]float64, cfg.Samples),
	}
	channels := [3][]float64{w.R, w.G, w.B}

	for i := 0; i < cfg.Samples; i++ {
		t := float64(i) / cfg.SampleRate
		pulse := math.Sin(2*math.Pi*cfg.HeartHz*t) + 0.35*math.Sin(4*math.Pi*cfg.HeartHz*t+0.6)
		breath := 0.0
		if cfg.BreathHz > 0 {
			breath = cfg.BreathDepth * math.Sin(2*math.Pi*cfg.BreathHz*t)
		}

		for c := range channels {
			v := base[c] * (1 + cfg.PulseDepth*pulseSignature[c]*pulse + breath)
			if cfg.NoiseAmp > 0 {
				v += (rng.Float64()*2 - 1) * cfg.NoiseAmp
			}
			channels[c][i] = math.Max(0, v)
		}

		w.Timestamps[i] = t * 1000
	}

	return w
}

// Flat returns n constant samples at the given channel levels.
func Flat(n int, r, g, b, sampleRate float64) core.SampleWindow {
	w := core.SampleWindow{
		R:          slices.Repeat([]float64{r}, n),
		G:          slices.Repeat([]float64{g}, n),
		B:          slices.Repeat([]float64{b}, n),
		Timestamps: make([]float64, n),
	}
	for i := range w.Timestamps {
		w.Timestamps[i] = float64(i) * 1000 / sampleRate
	}

	return w
}
