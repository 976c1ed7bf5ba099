package transport

import (
	"fmt"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-rppg/internal/config"
)

// NATSBus is a [Bus] over a NATS connection.
type NATSBus struct {
	nc     *nats.Conn
	logger *zap.Logger
}

// NewNATS connects to cfg.URL and keeps reconnecting forever once
// connected.
func NewNATS(cfg config.NATSConfig, name string, logger *zap.Logger) (*NATSBus, error) {
	nc, err := nats.Connect(
		cfg.URL,
		nats.Name(name),
		nats.Timeout(cfg.Timeout),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("nats reconnected", zap.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats %s: %w", cfg.URL, err)
	}

	return &NATSBus{nc: nc, logger: logger}, nil
}

// Subscribe registers h for subject. NATS wildcards are allowed.
func (b *NATSBus) Subscribe(subject string, h Handler) error {
	_, err := b.nc.Subscribe(subject, func(msg *nats.Msg) {
		h(msg.Subject, msg.Data)
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", subject, err)
	}

	return nil
}

// Publish sends payload on subject.
func (b *NATSBus) Publish(subject string, payload []byte) error {
	if err := b.nc.Publish(subject, payload); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}

	return nil
}

// Close drains pending messages and closes the connection.
func (b *NATSBus) Close() error {
	return b.nc.Drain()
}
