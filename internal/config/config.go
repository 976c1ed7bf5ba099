// Package config loads the vitals service configuration from a YAML file
// and RPPG_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "RPPG"

// Config is the complete service configuration.
type Config struct {
	Service   string          `yaml:"service"`
	Log       LogConfig       `yaml:"log"`
	Transport TransportConfig `yaml:"transport"`
	Store     StoreConfig     `yaml:"store"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
}

// LogConfig selects the zap level and encoding.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or console
}

// TransportConfig selects the message bus and its subjects.
type TransportConfig struct {
	Kind          string     `yaml:"kind"` // nats or mqtt
	InputSubject  string     `yaml:"inputSubject"`
	OutputSubject string     `yaml:"outputSubject"`
	NATS          NATSConfig `yaml:"nats"`
	MQTT          MQTTConfig `yaml:"mqtt"`
}

// NATSConfig holds NATS connection settings.
type NATSConfig struct {
	URL           string        `yaml:"url"`
	Timeout       time.Duration `yaml:"timeout"`
	ReconnectWait time.Duration `yaml:"reconnectWait"`
}

// MQTTConfig holds MQTT connection settings.
type MQTTConfig struct {
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"clientID"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	QoS      byte   `yaml:"qos"`
}

// StoreConfig selects where per-subject windows live.
type StoreConfig struct {
	Kind     string      `yaml:"kind"` // memory or redis
	Capacity int         `yaml:"capacity"`
	History  int         `yaml:"history"`
	Redis    RedisConfig `yaml:"redis"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr      string        `yaml:"addr"`
	Password  string        `yaml:"password"`
	DB        int           `yaml:"db"`
	KeyPrefix string        `yaml:"keyPrefix"`
	TTL       time.Duration `yaml:"ttl"`
}

// AnalysisConfig tunes the per-subject analysis ticks.
type AnalysisConfig struct {
	// SampleRate in fps; 0 derives it from frame timestamps.
	SampleRate   float64 `yaml:"sampleRate"`
	Strict       bool    `yaml:"strict"`
	TickEvery    int     `yaml:"tickEvery"`
	MinSamples   int     `yaml:"minSamples"`
	MotionWindow int     `yaml:"motionWindow"`

	// IdleTimeout evicts a subject that sent no frame for this long; 0 keeps
	// subjects until they are reset.
	IdleTimeout time.Duration `yaml:"idleTimeout"`
}

// Default returns a configuration for a local NATS server and an in-memory
// store.
func Default() Config {
	return Config{
		Service: "rppg-vitals",
		Log:     LogConfig{Level: "info", Format: "json"},
		Transport: TransportConfig{
			Kind:          "nats",
			InputSubject:  "rppg.frames",
			OutputSubject: "rppg.vitals",
			NATS: NATSConfig{
				URL:           "nats://127.0.0.1:4222",
				Timeout:       3 * time.Second,
				ReconnectWait: 500 * time.Millisecond,
			},
			MQTT: MQTTConfig{
				Broker:   "tcp://127.0.0.1:1883",
				ClientID: "rppg-vitals",
				QoS:      1,
			},
		},
		Store: StoreConfig{
			Kind:     "memory",
			Capacity: 900,
			History:  30,
			Redis: RedisConfig{
				Addr:      "localhost:6379",
				KeyPrefix: "rppg:",
				TTL:       10 * time.Minute,
			},
		},
		Analysis: AnalysisConfig{
			TickEvery:    30,
			MinSamples:   300,
			MotionWindow: 30,
			IdleTimeout:  10 * time.Minute,
		},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.LoadFromEnv(EnvPrefix)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadFromEnv overrides fields from variables named prefix_*.
func (c *Config) LoadFromEnv(prefix string) {
	setString(&c.Service, prefix+"_SERVICE")
	setString(&c.Log.Level, prefix+"_LOG_LEVEL")
	setString(&c.Log.Format, prefix+"_LOG_FORMAT")
	c.Transport.LoadFromEnv(prefix)
	c.Store.LoadFromEnv(prefix)
	c.Analysis.LoadFromEnv(prefix + "_ANALYSIS")
}

// LoadFromEnv overrides transport fields.
func (c *TransportConfig) LoadFromEnv(prefix string) {
	setString(&c.Kind, prefix+"_TRANSPORT")
	setString(&c.InputSubject, prefix+"_INPUT_SUBJECT")
	setString(&c.OutputSubject, prefix+"_OUTPUT_SUBJECT")
	setString(&c.NATS.URL, prefix+"_NATS_URL")
	c.MQTT.LoadFromEnv(prefix + "_MQTT")
}

// LoadFromEnv overrides MQTT fields.
func (c *MQTTConfig) LoadFromEnv(prefix string) {
	setString(&c.Broker, prefix+"_BROKER")
	setString(&c.ClientID, prefix+"_CLIENT_ID")
	setString(&c.Username, prefix+"_USERNAME")
	setString(&c.Password, prefix+"_PASSWORD")
	if v, ok := lookupInt(prefix + "_QOS"); ok {
		c.QoS = byte(v)
	}
}

// LoadFromEnv overrides store fields.
func (c *StoreConfig) LoadFromEnv(prefix string) {
	setString(&c.Kind, prefix+"_STORE")
	setInt(&c.Capacity, prefix+"_STORE_CAPACITY")
	setInt(&c.History, prefix+"_STORE_HISTORY")
	setString(&c.Redis.Addr, prefix+"_REDIS_ADDR")
	setString(&c.Redis.Password, prefix+"_REDIS_PASSWORD")
	setInt(&c.Redis.DB, prefix+"_REDIS_DB")
	setString(&c.Redis.KeyPrefix, prefix+"_REDIS_KEY_PREFIX")
}

// LoadFromEnv overrides analysis fields.
func (c *AnalysisConfig) LoadFromEnv(prefix string) {
	if v := os.Getenv(prefix + "_SAMPLE_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.SampleRate = f
		}
	}
	if v := os.Getenv(prefix + "_STRICT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Strict = b
		}
	}
	setInt(&c.TickEvery, prefix+"_TICK_EVERY")
	setInt(&c.MinSamples, prefix+"_MIN_SAMPLES")
	setInt(&c.MotionWindow, prefix+"_MOTION_WINDOW")
	if v := os.Getenv(prefix + "_IDLE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.IdleTimeout = d
		}
	}
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error

	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format must be json or console, got %q", c.Log.Format))
	}

	switch c.Transport.Kind {
	case "nats":
		if c.Transport.NATS.URL == "" {
			errs = append(errs, errors.New("transport.nats.url is required"))
		}
	case "mqtt":
		if c.Transport.MQTT.Broker == "" {
			errs = append(errs, errors.New("transport.mqtt.broker is required"))
		}
		if c.Transport.MQTT.QoS > 2 {
			errs = append(errs, fmt.Errorf("transport.mqtt.qos must be 0-2, got %d", c.Transport.MQTT.QoS))
		}
	default:
		errs = append(errs, fmt.Errorf("transport.kind must be nats or mqtt, got %q", c.Transport.Kind))
	}
	if c.Transport.InputSubject == "" || c.Transport.OutputSubject == "" {
		errs = append(errs, errors.New("transport input and output subjects are required"))
	}

	switch c.Store.Kind {
	case "memory":
	case "redis":
		if c.Store.Redis.Addr == "" {
			errs = append(errs, errors.New("store.redis.addr is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("store.kind must be memory or redis, got %q", c.Store.Kind))
	}
	if c.Store.Capacity <= 0 || c.Store.History <= 0 {
		errs = append(errs, errors.New("store.capacity and store.history must be > 0"))
	}

	if c.Analysis.SampleRate < 0 {
		errs = append(errs, fmt.Errorf("analysis.sampleRate must be >= 0, got %g", c.Analysis.SampleRate))
	}
	if c.Analysis.TickEvery <= 0 {
		errs = append(errs, fmt.Errorf("analysis.tickEvery must be > 0, got %d", c.Analysis.TickEvery))
	}
	if c.Analysis.MinSamples <= 0 || c.Analysis.MinSamples > c.Store.Capacity {
		errs = append(errs, fmt.Errorf("analysis.minSamples must be in 1..store.capacity, got %d", c.Analysis.MinSamples))
	}
	if c.Analysis.IdleTimeout < 0 {
		errs = append(errs, fmt.Errorf("analysis.idleTimeout must be >= 0, got %s", c.Analysis.IdleTimeout))
	}

	return errors.Join(errs...)
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := lookupInt(key); ok {
		*dst = v
	}
}

func lookupInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
