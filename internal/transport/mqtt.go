package transport

import (
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-rppg/internal/config"
)

// disconnectQuiesceMillis is how long Close waits for in-flight work.
const disconnectQuiesceMillis = 250

// MQTTBus is a [Bus] over an MQTT broker connection.
type MQTTBus struct {
	client mqtt.Client
	qos    byte
	logger *zap.Logger
}

// NewMQTT connects to cfg.Broker with auto-reconnect and a clean session.
func NewMQTT(cfg config.MQTTConfig, logger *zap.Logger) (*MQTTBus, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	opts.SetAutoReconnect(true)
	opts.SetCleanSession(true)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		logger.Warn("mqtt connection lost", zap.Error(err))
	})

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect mqtt %s: %w", cfg.Broker, token.Error())
	}

	return &MQTTBus{client: client, qos: cfg.QoS, logger: logger}, nil
}

// Subscribe registers h for topic at the configured QoS. MQTT wildcards are
// allowed.
func (b *MQTTBus) Subscribe(topic string, h Handler) error {
	token := b.client.Subscribe(topic, b.qos, func(_ mqtt.Client, msg mqtt.Message) {
		h(msg.Topic(), msg.Payload())
	})
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("subscribe %s: %w", topic, token.Error())
	}

	return nil
}

// Publish sends payload on topic, not retained.
func (b *MQTTBus) Publish(topic string, payload []byte) error {
	token := b.client.Publish(topic, b.qos, false, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}

	return nil
}

// Close disconnects from the broker.
func (b *MQTTBus) Close() error {
	b.client.Disconnect(disconnectQuiesceMillis)
	return nil
}
