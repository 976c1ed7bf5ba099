package buffer

import (
	"fmt"
	"sync"

	"github.com/cwbudde/algo-rppg/dsp/core"
)

// DefaultCapacity holds 30 s of video at 30 fps.
const DefaultCapacity = 900

// Window is a bounded, append-only run of R/G/B samples. Once full, the
// oldest samples are dropped. A Window is safe for concurrent use.
type Window struct {
	mu       sync.Mutex
	capacity int
	r, g, b  []float64
	ts       []float64
}

// NewWindow returns an empty window holding at most capacity samples.
// A non-positive capacity selects [DefaultCapacity].
func NewWindow(capacity int) *Window {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &Window{
		capacity: capacity,
		r:        make([]float64, 0, capacity),
		g:        make([]float64, 0, capacity),
		b:        make([]float64, 0, capacity),
		ts:       make([]float64, 0, capacity),
	}
}

// Capacity returns the maximum number of retained samples.
func (w *Window) Capacity() int {
	return w.capacity
}

// Len returns the number of retained samples.
func (w *Window) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return len(w.g)
}

// Push appends one frame. Timestamps are milliseconds and must not go
// backwards; negative brightness is rejected.
func (w *Window) Push(r, g, b, timestampMS float64) error {
	if r < 0 || g < 0 || b < 0 {
		return fmt.Errorf("%w: negative sample r=%g g=%g b=%g", core.ErrMalformedInput, r, g, b)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if n := len(w.ts); n > 0 && timestampMS < w.ts[n-1] {
		return fmt.Errorf("%w: timestamp %g before %g", core.ErrMalformedInput, timestampMS, w.ts[n-1])
	}

	if len(w.g) == w.capacity {
		w.r = shiftLeft(w.r)
		w.g = shiftLeft(w.g)
		w.b = shiftLeft(w.b)
		w.ts = shiftLeft(w.ts)
	}

	w.r = append(w.r, r)
	w.g = append(w.g, g)
	w.b = append(w.b, b)
	w.ts = append(w.ts, timestampMS)

	return nil
}

// PushWindow appends every sample of s in order. It stops at the first
// rejected sample.
func (w *Window) PushWindow(s core.SampleWindow) error {
	if err := s.Validate(); err != nil {
		return err
	}

	for i := 0; i < s.Len(); i++ {
		ts := 0.0
		if len(s.Timestamps) == s.Len() {
			ts = s.Timestamps[i]
		}

		if err := w.Push(s.R[i], s.G[i], s.B[i], ts); err != nil {
			return err
		}
	}

	return nil
}

// Snapshot returns a deep copy of the retained samples.
func (w *Window) Snapshot() core.SampleWindow {
	w.mu.Lock()
	defer w.mu.Unlock()

	return core.SampleWindow{
		R:          append([]float64(nil), w.r...),
		G:          append([]float64(nil), w.g...),
		B:          append([]float64(nil), w.b...),
		Timestamps: append([]float64(nil), w.ts...),
	}
}

// Reset drops every sample, keeping the allocated storage.
func (w *Window) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.r = w.r[:0]
	w.g = w.g[:0]
	w.b = w.b[:0]
	w.ts = w.ts[:0]
}

// shiftLeft drops the first element in place, keeping capacity.
func shiftLeft(s []float64) []float64 {
	copy(s, s[1:])
	return s[:len(s)-1]
}
