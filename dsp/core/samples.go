package core

import "fmt"

// DefaultSampleRate is the frame rate assumed when timestamps cannot
// provide one.
const DefaultSampleRate = 30.0

// SampleWindow is an ordered run of synchronized R/G/B brightness samples
// with per-sample timestamps in milliseconds. All slices share one length.
type SampleWindow struct {
	R          []float64 `json:"r"`
	G          []float64 `json:"g"`
	B          []float64 `json:"b"`
	Timestamps []float64 `json:"timestamps,omitempty"`
}

// Len returns the number of samples.
func (w SampleWindow) Len() int {
	return len(w.G)
}

// Validate checks the window shape: equal channel lengths, non-negative
// samples and non-decreasing timestamps. Timestamps may be omitted.
func (w SampleWindow) Validate() error {
	n := len(w.G)
	if len(w.R) != n || len(w.B) != n {
		return fmt.Errorf("%w: channel lengths r=%d g=%d b=%d", ErrMalformedInput, len(w.R), n, len(w.B))
	}

	if len(w.Timestamps) != 0 && len(w.Timestamps) != n {
		return fmt.Errorf("%w: %d timestamps for %d samples", ErrMalformedInput, len(w.Timestamps), n)
	}

	for i := 0; i < n; i++ {
		if w.R[i] < 0 || w.G[i] < 0 || w.B[i] < 0 {
			return fmt.Errorf("%w: negative sample at index %d", ErrMalformedInput, i)
		}
	}

	for i := 1; i < len(w.Timestamps); i++ {
		if w.Timestamps[i] < w.Timestamps[i-1] {
			return fmt.Errorf("%w: timestamps out of order at index %d", ErrMalformedInput, i)
		}
	}

	return nil
}

// Clone returns a deep copy. Analysis stages run on clones so the caller can
// keep appending to its own window.
func (w SampleWindow) Clone() SampleWindow {
	return SampleWindow{
		R:          cloneFloats(w.R),
		G:          cloneFloats(w.G),
		B:          cloneFloats(w.B),
		Timestamps: cloneFloats(w.Timestamps),
	}
}

// Tail returns a view of the most recent n samples (all samples if n exceeds
// the length). The view shares memory with w.
func (w SampleWindow) Tail(n int) SampleWindow {
	size := w.Len()
	if n >= size || n < 0 {
		return w
	}

	start := size - n
	out := SampleWindow{R: w.R[start:], G: w.G[start:], B: w.B[start:]}
	if len(w.Timestamps) == size {
		out.Timestamps = w.Timestamps[start:]
	}

	return out
}

// SampleRate returns the effective frame rate of the window.
func (w SampleWindow) SampleRate() float64 {
	return EffectiveSampleRate(w.Timestamps)
}

// EffectiveSampleRate derives frames per second from millisecond timestamps
// as count / ((last-first)/1000). It returns [DefaultSampleRate] for fewer
// than two timestamps or a non-positive span.
func EffectiveSampleRate(timestampsMS []float64) float64 {
	n := len(timestampsMS)
	if n < 2 {
		return DefaultSampleRate
	}

	span := (timestampsMS[n-1] - timestampsMS[0]) / 1000
	if span <= 0 || !IsFinite(span) {
		return DefaultSampleRate
	}

	return float64(n) / span
}

func cloneFloats(s []float64) []float64 {
	if s == nil {
		return nil
	}

	return append([]float64(nil), s...)
}
