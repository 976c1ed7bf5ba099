package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-rppg/internal/config"
	"github.com/cwbudde/algo-rppg/internal/session"
	"github.com/cwbudde/algo-rppg/internal/synth"
	"github.com/cwbudde/algo-rppg/internal/transport"
)

type collector struct {
	mu   sync.Mutex
	msgs []Message
}

func (c *collector) handle(t *testing.T) transport.Handler {
	return func(_ string, payload []byte) {
		var msg Message
		require.NoError(t, json.Unmarshal(payload, &msg))

		c.mu.Lock()
		c.msgs = append(c.msgs, msg)
		c.mu.Unlock()
	}
}

func (c *collector) messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.msgs...)
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Analysis.SampleRate = 30
	cfg.Analysis.TickEvery = 30
	cfg.Analysis.MinSamples = 300
	return cfg
}

func setup(t *testing.T) (*Processor, *transport.MemoryBus, *collector) {
	cfg := testConfig()
	bus := transport.NewMemory()
	store := session.NewMemoryStore(cfg.Store.Capacity, cfg.Store.History)

	out := &collector{}
	require.NoError(t, bus.Subscribe(cfg.Transport.OutputSubject, out.handle(t)))

	p := New(cfg, bus, store, zap.NewNop())
	p.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	return p, bus, out
}

func frames(subject string, n int) []transport.Frame {
	cfg := synth.DefaultConfig()
	cfg.Samples = n
	cfg.NoiseAmp = 0.1
	w := synth.RGB(cfg)

	out := make([]transport.Frame, n)
	for i := range out {
		out[i] = transport.Frame{Subject: subject, Timestamp: w.Timestamps[i], R: w.R[i], G: w.G[i], B: w.B[i]}
	}
	return out
}

func TestProcessorTicksAfterMinSamples(t *testing.T) {
	p, _, out := setup(t)
	ctx := context.Background()

	for i, f := range frames("alice", 359) {
		require.NoError(t, p.Ingest(ctx, f), "frame %d", i)
	}

	// Ticks at frames 300 and 330.
	msgs := out.messages()
	require.Len(t, msgs, 2)

	msg := msgs[1]
	_, err := uuid.Parse(msg.ID)
	require.NoError(t, err)
	assert.NotEqual(t, msgs[0].ID, msg.ID)
	assert.Equal(t, "alice", msg.Subject)
	assert.Equal(t, 2026, msg.Timestamp.Year())
	assert.Equal(t, 330, msg.Report.Samples)

	require.NotNil(t, msg.Report.HeartRate)
	assert.InDelta(t, 72, *msg.Report.HeartRate, 3)
	require.NotNil(t, msg.TrendBPM)
	assert.InDelta(t, 72, *msg.TrendBPM, 3)
}

func TestProcessorHandlesPayloadsThroughBus(t *testing.T) {
	p, bus, out := setup(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	// Wait for the subscription.
	require.Eventually(t, func() bool {
		return bus.Subscriptions() == 2
	}, time.Second, 5*time.Millisecond)

	batch, err := json.Marshal(frames("bob", 300))
	require.NoError(t, err)
	require.NoError(t, bus.Publish("rppg.frames", batch))

	// Malformed payloads are logged and dropped.
	require.NoError(t, bus.Publish("rppg.frames", []byte(`{"subject":`)))

	msgs := out.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "bob", msgs[0].Subject)

	cancel()
	require.NoError(t, <-done)
}

func TestProcessorSubjectsAreIndependent(t *testing.T) {
	p, _, out := setup(t)
	ctx := context.Background()

	a := frames("alice", 300)
	b := frames("bob", 150)

	var wg sync.WaitGroup
	for _, batch := range [][]transport.Frame{a, b} {
		wg.Add(1)
		go func(batch []transport.Frame) {
			defer wg.Done()
			for _, f := range batch {
				assert.NoError(t, p.Ingest(ctx, f))
			}
		}(batch)
	}
	wg.Wait()

	msgs := out.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "alice", msgs[0].Subject)
}

func TestProcessorRejectsOutOfOrderFrame(t *testing.T) {
	p, _, _ := setup(t)
	ctx := context.Background()

	fs := frames("alice", 3)
	require.NoError(t, p.Ingest(ctx, fs[2]))
	assert.Error(t, p.Ingest(ctx, fs[0]))
}

func TestTickShortWindow(t *testing.T) {
	p, _, _ := setup(t)
	ctx := context.Background()

	for _, f := range frames("carol", 40) {
		require.NoError(t, p.Ingest(ctx, f))
	}

	msg, err := p.Tick(ctx, "carol")
	require.NoError(t, err)
	assert.Nil(t, msg.Report.HeartRate)
	assert.Nil(t, msg.TrendBPM)
	assert.NotEmpty(t, msg.Report.Skipped)
}

func TestProcessorResetRestartsSubject(t *testing.T) {
	p, _, out := setup(t)
	ctx := context.Background()
	store := p.store.(*session.MemoryStore)

	for _, f := range frames("alice", 310) {
		require.NoError(t, p.Ingest(ctx, f))
	}
	require.Len(t, out.messages(), 1)

	require.NoError(t, p.Reset(ctx, "alice"))
	assert.Equal(t, 0, store.Subjects())

	// The window and frame count start over, so earlier timestamps are
	// accepted and the next tick is due at frame 300 again.
	for _, f := range frames("alice", 300) {
		require.NoError(t, p.Ingest(ctx, f))
	}
	msgs := out.messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, 300, msgs[1].Report.Samples)
}

func TestProcessorEvictsIdleSubjects(t *testing.T) {
	p, _, _ := setup(t)
	ctx := context.Background()
	store := p.store.(*session.MemoryStore)

	now := time.Date(2026, 1, 2, 3, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return now }

	for _, f := range frames("alice", 10) {
		require.NoError(t, p.Ingest(ctx, f))
	}
	now = now.Add(6 * time.Minute)
	for _, f := range frames("bob", 10) {
		require.NoError(t, p.Ingest(ctx, f))
	}
	now = now.Add(5 * time.Minute)

	assert.Equal(t, 1, p.EvictIdle(ctx))
	assert.Equal(t, 1, store.Subjects())

	window, err := store.Window(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, 10, window.Len())

	// alice starts from an empty window.
	for _, f := range frames("alice", 5) {
		require.NoError(t, p.Ingest(ctx, f))
	}
	window, err = store.Window(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 5, window.Len())

	p.idleTimeout = 0
	now = now.Add(time.Hour)
	assert.Equal(t, 0, p.EvictIdle(ctx))
}
