// Package session keeps the per-subject sliding sample windows and heart
// rate histories of the vitals service, in memory or in Redis.
package session

import (
	"context"
	"fmt"

	"github.com/cwbudde/algo-rppg/dsp/core"
	"github.com/cwbudde/algo-rppg/internal/config"
	"github.com/cwbudde/algo-rppg/internal/transport"
)

// Store holds one bounded sample window and one bounded heart-rate history
// per subject. Implementations are safe for concurrent use, but frames of a
// single subject must be appended in timestamp order.
type Store interface {
	// Append adds a frame to the subject's window and returns the number of
	// samples now held.
	Append(ctx context.Context, subject string, f transport.Frame) (int, error)

	// Window returns a copy of the subject's samples, oldest first.
	Window(ctx context.Context, subject string) (core.SampleWindow, error)

	// RecordHeartRate appends bpm to the subject's history and returns the
	// history, oldest first.
	RecordHeartRate(ctx context.Context, subject string, bpm float64) ([]float64, error)

	// Reset forgets everything about the subject.
	Reset(ctx context.Context, subject string) error

	Close() error
}

// Open builds the store selected by cfg.Kind. A Redis store is pinged
// before it is returned.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Kind {
	case "memory":
		return NewMemoryStore(cfg.Capacity, cfg.History), nil
	case "redis":
		st := NewRedisStore(NewRedisClient(cfg.Redis), cfg)
		if err := st.Ping(ctx); err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("connect redis %s: %w", cfg.Redis.Addr, err)
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Kind)
	}
}
