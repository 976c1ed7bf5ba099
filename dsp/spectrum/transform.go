package spectrum

import (
	"fmt"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-rppg/dsp/core"
	"github.com/cwbudde/algo-rppg/dsp/window"
)

// MinTransformLength is the shortest signal [Transform] accepts.
const MinTransformLength = 3

// Spectrum holds the non-negative-frequency bins 0..n/2 of a transform
// together with the grid needed to map bins back to Hz.
type Spectrum struct {
	Grid

	// Bins holds X[0..Size/2].
	Bins []complex128

	// Length is the number of signal samples before zero padding.
	Length int
}

// Option configures [Transform] and [Welch].
type Option func(*config)

type config struct {
	window window.Type
}

// WithWindow selects the window applied before the FFT (default Hann).
func WithWindow(t window.Type) Option {
	return func(c *config) {
		c.window = t
	}
}

func applyOptions(opts []Option) config {
	cfg := config{window: window.TypeHann}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Transform windows signal, zero-pads it to the next power of two >= its
// length and returns bins 0..n/2.
//
// The window spans the original samples only; padded zeros are not
// windowed. Signals shorter than [MinTransformLength] yield
// [core.ErrInsufficientData].
func Transform(signal []float64, sampleRate float64, opts ...Option) (Spectrum, error) {
	if len(signal) < MinTransformLength {
		return Spectrum{}, fmt.Errorf("%w: transform needs %d samples, got %d",
			core.ErrInsufficientData, MinTransformLength, len(signal))
	}
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return Spectrum{}, fmt.Errorf("%w: sample rate must be > 0: %f", core.ErrMalformedInput, sampleRate)
	}

	cfg := applyOptions(opts)

	windowed := append([]float64(nil), signal...)
	window.Apply(cfg.window, windowed)

	n := core.NextPowerOfTwo(len(signal))
	in := make([]complex128, n)
	for i, x := range windowed {
		in[i] = complex(x, 0)
	}

	out := make([]complex128, n)
	if err := forward(out, in); err != nil {
		return Spectrum{}, err
	}

	return Spectrum{
		Grid:   Grid{Size: n, SampleRate: sampleRate},
		Bins:   out[:n/2+1:n/2+1],
		Length: len(signal),
	}, nil
}

// planPools maps a transform size to a *sync.Pool of plans of that size.
var planPools sync.Map

func forward(dst, src []complex128) error {
	n := len(src)
	pv, _ := planPools.LoadOrStore(n, &sync.Pool{})
	pool := pv.(*sync.Pool)

	plan, ok := pool.Get().(*algofft.Plan[complex128])
	if !ok || plan == nil {
		var err error
		plan, err = algofft.NewPlan64(n)
		if err != nil {
			return fmt.Errorf("fft plan (n=%d): %w", n, err)
		}
	}
	defer pool.Put(plan)

	if err := plan.Forward(dst, src); err != nil {
		return fmt.Errorf("fft forward (n=%d): %w", n, err)
	}

	return nil
}
