package transport

import (
	"errors"
	"strings"
	"sync"
)

var errBusClosed = errors.New("bus closed")

// MemoryBus is an in-process [Bus]. Subjects match exactly, or by prefix
// when the subscription ends in ">" (NATS) or "#" (MQTT). Handlers run
// synchronously in Publish.
type MemoryBus struct {
	mu     sync.RWMutex
	subs   []memorySub
	closed bool
}

type memorySub struct {
	pattern string
	h       Handler
}

// NewMemory returns an empty in-process bus.
func NewMemory() *MemoryBus {
	return &MemoryBus{}
}

// Subscribe registers h for pattern.
func (b *MemoryBus) Subscribe(pattern string, h Handler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return errBusClosed
	}
	b.subs = append(b.subs, memorySub{pattern: pattern, h: h})

	return nil
}

// Publish delivers payload to every matching subscription.
func (b *MemoryBus) Publish(subject string, payload []byte) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return errBusClosed
	}
	subs := append([]memorySub(nil), b.subs...)
	b.mu.RUnlock()

	for _, s := range subs {
		if matchSubject(s.pattern, subject) {
			s.h(subject, append([]byte(nil), payload...))
		}
	}

	return nil
}

// Subscriptions reports the number of registered handlers.
func (b *MemoryBus) Subscriptions() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.subs)
}

// Close drops all subscriptions.
func (b *MemoryBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	b.subs = nil

	return nil
}

func matchSubject(pattern, subject string) bool {
	if p, ok := strings.CutSuffix(pattern, ">"); ok {
		return strings.HasPrefix(subject, p)
	}
	if p, ok := strings.CutSuffix(pattern, "#"); ok {
		return strings.HasPrefix(subject, p)
	}

	return pattern == subject
}
