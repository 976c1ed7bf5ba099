package vitals

import (
	"sync"

	"github.com/cwbudde/algo-rppg/stats/robust"
	timestats "github.com/cwbudde/algo-rppg/stats/time"
)

// DefaultHistory is the number of heart-rate estimates a Tracker keeps.
const DefaultHistory = 30

// Trend returns the mean of history after IQR outlier rejection. ok is false
// for an empty history.
func Trend(history []float64) (mean float64, ok bool) {
	kept := robust.RejectOutliersIQR(history)
	if len(kept) == 0 {
		return 0, false
	}

	return timestats.Mean(kept), true
}

// Tracker keeps a bounded history of heart-rate estimates across ticks. It
// is safe for concurrent use.
type Tracker struct {
	mu       sync.Mutex
	capacity int
	history  []float64
}

// NewTracker returns a Tracker keeping the last capacity estimates; a
// non-positive capacity selects [DefaultHistory].
func NewTracker(capacity int) *Tracker {
	if capacity <= 0 {
		capacity = DefaultHistory
	}

	return &Tracker{capacity: capacity}
}

// Add records one estimate, dropping the oldest beyond capacity.
func (t *Tracker) Add(bpm float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.history = append(t.history, bpm)
	if over := len(t.history) - t.capacity; over > 0 {
		t.history = append(t.history[:0], t.history[over:]...)
	}
}

// Observe records the heart rate of r, if any, and returns the current trend.
func (t *Tracker) Observe(r Report) (float64, bool) {
	if r.HeartRate != nil {
		t.Add(*r.HeartRate)
	}

	return t.Trend()
}

// History returns a copy of the recorded estimates, oldest first.
func (t *Tracker) History() []float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	return append([]float64(nil), t.history...)
}

// Trend returns the IQR-filtered mean of the history.
func (t *Tracker) Trend() (float64, bool) {
	return Trend(t.History())
}
