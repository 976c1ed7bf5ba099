// Package service wires transport, session storage and the vitals pipeline
// into a long-running processor: frames in, vitals reports out.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-rppg/internal/config"
	"github.com/cwbudde/algo-rppg/internal/session"
	"github.com/cwbudde/algo-rppg/internal/transport"
	"github.com/cwbudde/algo-rppg/measure/vitals"
)

// storeTimeout bounds every store call made for one frame.
const storeTimeout = 5 * time.Second

// Message is the published result of one analysis tick.
type Message struct {
	ID        string        `json:"id"`
	Subject   string        `json:"subject"`
	Timestamp time.Time     `json:"timestamp"`
	Report    vitals.Report `json:"report"`

	// TrendBPM is the IQR-filtered mean of the subject's recent heart rates.
	TrendBPM *float64 `json:"trendBpm,omitempty"`
}

// Processor consumes frames and publishes a [Message] every TickEvery frames
// per subject once MinSamples samples are buffered.
type Processor struct {
	bus    transport.Bus
	store  session.Store
	logger *zap.Logger

	input, output string
	tickEvery     int
	minSamples    int
	idleTimeout   time.Duration
	analysis      vitals.Config

	mu       sync.Mutex
	subjects map[string]*subjectState

	now func() time.Time
}

type subjectState struct {
	mu       sync.Mutex
	frames   int
	lastSeen time.Time

	// evicted marks a state already removed from the subjects map.
	evicted bool
}

// New returns a processor for cfg. It does not subscribe until [Processor.Run].
func New(cfg config.Config, bus transport.Bus, store session.Store, logger *zap.Logger) *Processor {
	return &Processor{
		bus:         bus,
		store:       store,
		logger:      logger,
		input:       cfg.Transport.InputSubject,
		output:      cfg.Transport.OutputSubject,
		tickEvery:   cfg.Analysis.TickEvery,
		minSamples:  cfg.Analysis.MinSamples,
		idleTimeout: cfg.Analysis.IdleTimeout,
		analysis: vitals.Config{
			SampleRate:   cfg.Analysis.SampleRate,
			Strict:       cfg.Analysis.Strict,
			MotionWindow: cfg.Analysis.MotionWindow,
		},
		subjects: make(map[string]*subjectState),
		now:      time.Now,
	}
}

// Run subscribes to the input subject and blocks until ctx is done. With a
// positive idle timeout it also evicts idle subjects every half timeout.
func (p *Processor) Run(ctx context.Context) error {
	err := p.bus.Subscribe(p.input, func(subject string, payload []byte) {
		if err := p.HandlePayload(ctx, payload); err != nil {
			p.logger.Warn("frame rejected", zap.String("from", subject), zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	p.logger.Info("processor running",
		zap.String("input", p.input),
		zap.String("output", p.output),
		zap.Int("tick_every", p.tickEvery),
		zap.Int("min_samples", p.minSamples),
		zap.Duration("idle_timeout", p.idleTimeout))

	if p.idleTimeout <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(p.idleTimeout / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := p.EvictIdle(ctx); n > 0 {
				p.logger.Info("evicted idle subjects", zap.Int("count", n))
			}
		}
	}
}

// HandlePayload decodes one message of frames and ingests them in order.
func (p *Processor) HandlePayload(ctx context.Context, payload []byte) error {
	frames, err := transport.DecodeFrames(payload)
	if err != nil {
		return err
	}

	for _, f := range frames {
		if err := p.Ingest(ctx, f); err != nil {
			return err
		}
	}

	return nil
}

func (p *Processor) state(subject string) *subjectState {
	p.mu.Lock()
	defer p.mu.Unlock()

	st, ok := p.subjects[subject]
	if !ok {
		st = &subjectState{}
		p.subjects[subject] = st
	}

	return st
}

// lock returns the subject's state with its mutex held, retrying when an
// eviction removed the state while this caller waited for it.
func (p *Processor) lock(subject string) *subjectState {
	for {
		st := p.state(subject)
		st.mu.Lock()
		if !st.evicted {
			return st
		}
		st.mu.Unlock()
	}
}

// Reset forgets the subject: its stored window and history as well as the
// processor's frame count.
func (p *Processor) Reset(ctx context.Context, subject string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if st, ok := p.subjects[subject]; ok {
		st.mu.Lock()
		defer st.mu.Unlock()
		st.evicted = true
		delete(p.subjects, subject)
	}

	sctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if err := p.store.Reset(sctx, subject); err != nil {
		return fmt.Errorf("reset %s: %w", subject, err)
	}

	return nil
}

// EvictIdle resets every subject whose last frame is older than the idle
// timeout and returns how many were evicted. Subjects busy with a frame are
// skipped.
func (p *Processor) EvictIdle(ctx context.Context) int {
	if p.idleTimeout <= 0 {
		return 0
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	cutoff := p.now().Add(-p.idleTimeout)
	evicted := 0

	for subject, st := range p.subjects {
		if !st.mu.TryLock() {
			continue
		}
		if st.lastSeen.After(cutoff) {
			st.mu.Unlock()
			continue
		}

		st.evicted = true
		delete(p.subjects, subject)

		sctx, cancel := context.WithTimeout(ctx, storeTimeout)
		if err := p.store.Reset(sctx, subject); err != nil {
			p.logger.Warn("evict subject", zap.String("subject", subject), zap.Error(err))
		}
		cancel()
		st.mu.Unlock()

		evicted++
	}

	return evicted
}

// Ingest appends f to its subject's window and runs a tick when one is due.
// Frames of one subject are serialized, so a tick always sees a window
// that no other frame is modifying.
func (p *Processor) Ingest(ctx context.Context, f transport.Frame) error {
	st := p.lock(f.Subject)
	defer st.mu.Unlock()

	sctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	n, err := p.store.Append(sctx, f.Subject, f)
	if err != nil {
		return fmt.Errorf("append frame for %s: %w", f.Subject, err)
	}

	st.frames++
	st.lastSeen = p.now()
	if n < p.minSamples || st.frames%p.tickEvery != 0 {
		return nil
	}

	msg, err := p.tick(sctx, f.Subject)
	if err != nil {
		return err
	}

	return p.publish(msg)
}

// Tick analyses the subject's current window and returns the message
// without publishing it.
func (p *Processor) Tick(ctx context.Context, subject string) (Message, error) {
	st := p.lock(subject)
	defer st.mu.Unlock()

	return p.tick(ctx, subject)
}

func (p *Processor) tick(ctx context.Context, subject string) (Message, error) {
	window, err := p.store.Window(ctx, subject)
	if err != nil {
		return Message{}, fmt.Errorf("load window for %s: %w", subject, err)
	}

	rep, err := vitals.Analyze(window, p.analysis)
	if err != nil {
		return Message{}, fmt.Errorf("analyze %s: %w", subject, err)
	}

	msg := Message{
		ID:        uuid.NewString(),
		Subject:   subject,
		Timestamp: p.now().UTC(),
		Report:    rep,
	}

	if rep.HeartRate != nil {
		history, err := p.store.RecordHeartRate(ctx, subject, *rep.HeartRate)
		if err != nil {
			return Message{}, fmt.Errorf("record heart rate for %s: %w", subject, err)
		}
		if trend, ok := vitals.Trend(history); ok {
			msg.TrendBPM = &trend
		}
	}

	fields := []zap.Field{
		zap.String("subject", subject),
		zap.Int("samples", rep.Samples),
		zap.Bool("motion", rep.Motion),
		zap.Int("quality", rep.Quality.Score),
		zap.String("stress", rep.Stress.Label),
	}
	if rep.HeartRate != nil {
		fields = append(fields, zap.Float64("heart_rate", *rep.HeartRate))
	}
	if len(rep.Skipped) > 0 {
		fields = append(fields, zap.Any("skipped", rep.Skipped))
	}
	p.logger.Debug("vitals tick", fields...)

	return msg, nil
}

func (p *Processor) publish(msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode report for %s: %w", msg.Subject, err)
	}

	if err := p.bus.Publish(p.output, payload); err != nil {
		return fmt.Errorf("publish report for %s: %w", msg.Subject, err)
	}

	return nil
}
