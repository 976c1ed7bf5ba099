// Package transport moves camera frames into the service and vitals reports
// out of it over NATS or MQTT.
package transport

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-rppg/internal/config"
)

// Handler receives one message. Errors are the handler's to log; a failing
// message never stops a subscription.
type Handler func(subject string, payload []byte)

// Bus is a publish/subscribe connection.
type Bus interface {
	Subscribe(subject string, h Handler) error
	Publish(subject string, payload []byte) error
	Close() error
}

// Open connects the bus selected by cfg.Kind.
func Open(cfg config.TransportConfig, name string, logger *zap.Logger) (Bus, error) {
	switch cfg.Kind {
	case "nats":
		bus, err := NewNATS(cfg.NATS, name, logger)
		if err != nil {
			return nil, err
		}
		return bus, nil
	case "mqtt":
		bus, err := NewMQTT(cfg.MQTT, logger)
		if err != nil {
			return nil, err
		}
		return bus, nil
	default:
		return nil, fmt.Errorf("unknown transport %q", cfg.Kind)
	}
}
