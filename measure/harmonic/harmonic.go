package harmonic

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-rppg/dsp/core"
	"github.com/cwbudde/algo-rppg/dsp/spectrum"
)

const (
	// MinSamples is the shortest waveform Analyze accepts.
	MinSamples = 90

	fundamentalLowHz  = 0.8
	fundamentalHighHz = 2.5

	// searchBins is the drift tolerance around each harmonic's target bin.
	searchBins = 2
)

// Harmonic is one entry of a profile.
type Harmonic struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	Meridian string `json:"meridian"`

	Amplitude float64 `json:"amplitude"`

	// Percentage is the share of the summed amplitude of all harmonics.
	Percentage float64 `json:"percentage"`

	// Normalized is Amplitude relative to C0.
	Normalized float64 `json:"normalized"`

	Status        Status `json:"status"`
	ExpectedRange string `json:"expectedRange"`
}

// Profile is the harmonic decomposition of one waveform.
type Profile struct {
	Harmonics     [Count]Harmonic `json:"harmonics"`
	Constitution  Constitution    `json:"constitution"`
	FundamentalHz float64         `json:"fundamentalHz"`
	Strict        bool            `json:"strict"`
}

// Percentages returns the energy share of every harmonic.
func (p Profile) Percentages() [Count]float64 {
	var out [Count]float64
	for i, h := range p.Harmonics {
		out[i] = h.Percentage
	}
	return out
}

// Analyze decomposes waveform into C0..C10.
//
// The fundamental is the strongest bin between 0.8 and 2.5 Hz. Harmonic h
// targets bin round(f0·(h+1)) and takes the largest magnitude within two
// bins of it, clipped at Nyquist; a harmonic whose whole search window lies
// beyond Nyquist contributes 0. Waveforms shorter than
// [MinSamples] yield [core.ErrInsufficientData] and zero total energy
// yields [core.ErrDegenerateSignal].
func Analyze(waveform []float64, sampleRate float64, strict bool) (Profile, error) {
	if len(waveform) < MinSamples {
		return Profile{}, fmt.Errorf("%w: harmonic analysis needs %d samples, got %d",
			core.ErrInsufficientData, MinSamples, len(waveform))
	}

	sp, err := spectrum.Transform(waveform, sampleRate)
	if err != nil {
		return Profile{}, err
	}

	lo, hi, ok := sp.BandBins(fundamentalLowHz, fundamentalHighHz)
	if !ok {
		return Profile{}, fmt.Errorf("%w: no bins in %.1f-%.1f Hz at %.2f Hz sampling",
			core.ErrInsufficientData, fundamentalLowHz, fundamentalHighHz, sampleRate)
	}

	mag := sp.Magnitude()
	f0, _ := spectrum.PeakInBand(mag, lo, hi)

	var amps [Count]float64
	total := 0.0
	for h := range amps {
		target := f0
		if h > 0 {
			target = int(math.Round(float64(f0) * float64(h+1)))
		}
		if target-searchBins <= sp.MaxBin() {
			if k, ok := spectrum.PeakInBand(mag, target-searchBins, target+searchBins); ok {
				amps[h] = mag[k]
			}
		}
		total += amps[h]
	}

	if total == 0 {
		return Profile{}, fmt.Errorf("%w: zero harmonic energy", core.ErrDegenerateSignal)
	}

	m := modeFor(strict)
	p := Profile{FundamentalHz: sp.BinToHz(float64(f0)), Strict: strict}
	s := shares{mode: m, strict: strict}

	for h, a := range amps {
		pct := a / total * 100
		norm := 0.0
		if amps[0] != 0 {
			norm = a / amps[0]
		}

		status := m.grade(pct, m.ranges[h])
		p.Harmonics[h] = Harmonic{
			Index:         h,
			Name:          fmt.Sprintf("C%d", h),
			Meridian:      meridians[h],
			Amplitude:     a,
			Percentage:    pct,
			Normalized:    norm,
			Status:        status,
			ExpectedRange: m.ranges[h].String(),
		}
		s.pct[h] = pct
		s.status[h] = status
	}

	p.Constitution = classify(s)

	return p, nil
}
