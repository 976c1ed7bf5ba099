package session

import (
	"context"
	"sync"

	"github.com/cwbudde/algo-rppg/dsp/buffer"
	"github.com/cwbudde/algo-rppg/dsp/core"
	"github.com/cwbudde/algo-rppg/internal/transport"
	"github.com/cwbudde/algo-rppg/measure/vitals"
)

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	capacity int
	history  int

	mu       sync.Mutex
	sessions map[string]*memorySession
}

type memorySession struct {
	window  *buffer.Window
	tracker *vitals.Tracker
}

// NewMemoryStore returns a store keeping capacity samples and history heart
// rates per subject.
func NewMemoryStore(capacity, history int) *MemoryStore {
	return &MemoryStore{
		capacity: capacity,
		history:  history,
		sessions: make(map[string]*memorySession),
	}
}

func (s *MemoryStore) session(subject string) *memorySession {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[subject]
	if !ok {
		sess = &memorySession{
			window:  buffer.NewWindow(s.capacity),
			tracker: vitals.NewTracker(s.history),
		}
		s.sessions[subject] = sess
	}

	return sess
}

// Append implements [Store].
func (s *MemoryStore) Append(_ context.Context, subject string, f transport.Frame) (int, error) {
	w := s.session(subject).window
	if err := w.Push(f.R, f.G, f.B, f.Timestamp); err != nil {
		return 0, err
	}

	return w.Len(), nil
}

// Window implements [Store].
func (s *MemoryStore) Window(_ context.Context, subject string) (core.SampleWindow, error) {
	return s.session(subject).window.Snapshot(), nil
}

// RecordHeartRate implements [Store].
func (s *MemoryStore) RecordHeartRate(_ context.Context, subject string, bpm float64) ([]float64, error) {
	tr := s.session(subject).tracker
	tr.Add(bpm)

	return tr.History(), nil
}

// Reset implements [Store].
func (s *MemoryStore) Reset(_ context.Context, subject string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, subject)

	return nil
}

// Subjects returns the number of subjects with state.
func (s *MemoryStore) Subjects() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

// Close implements [Store].
func (s *MemoryStore) Close() error {
	return nil
}
