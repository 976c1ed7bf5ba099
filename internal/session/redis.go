package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/cwbudde/algo-rppg/dsp/core"
	"github.com/cwbudde/algo-rppg/internal/config"
	"github.com/cwbudde/algo-rppg/internal/transport"
)

// RedisStore keeps sessions in Redis lists so several service replicas can
// share them. Each sample is stored as a JSON array [ts, r, g, b]; keys
// expire after the configured TTL of inactivity.
type RedisStore struct {
	client   *redis.Client
	prefix   string
	ttl      time.Duration
	capacity int
	history  int
}

// NewRedisClient builds a client for cfg.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// NewRedisStore wraps client. The store owns the client and closes it.
func NewRedisStore(client *redis.Client, cfg config.StoreConfig) *RedisStore {
	return &RedisStore{
		client:   client,
		prefix:   cfg.Redis.KeyPrefix,
		ttl:      cfg.Redis.TTL,
		capacity: cfg.Capacity,
		history:  cfg.History,
	}
}

// Ping checks the connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) windowKey(subject string) string {
	return s.prefix + "window:" + subject
}

func (s *RedisStore) historyKey(subject string) string {
	return s.prefix + "hr:" + subject
}

type sample [4]float64 // ts, r, g, b

// Append implements [Store]. It rejects a frame older than the newest
// stored sample.
func (s *RedisStore) Append(ctx context.Context, subject string, f transport.Frame) (int, error) {
	key := s.windowKey(subject)

	last, err := s.client.LIndex(ctx, key, -1).Result()
	switch {
	case errors.Is(err, redis.Nil):
	case err != nil:
		return 0, fmt.Errorf("read last sample of %s: %w", subject, err)
	default:
		var prev sample
		if err := json.Unmarshal([]byte(last), &prev); err == nil && f.Timestamp < prev[0] {
			return 0, fmt.Errorf("%w: timestamp %g before %g", core.ErrMalformedInput, f.Timestamp, prev[0])
		}
	}

	raw, err := json.Marshal(sample{f.Timestamp, f.R, f.G, f.B})
	if err != nil {
		return 0, err
	}

	var length *redis.IntCmd
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, raw)
		pipe.LTrim(ctx, key, int64(-s.capacity), -1)
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
		length = pipe.LLen(ctx, key)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("append sample for %s: %w", subject, err)
	}

	return int(length.Val()), nil
}

// Window implements [Store].
func (s *RedisStore) Window(ctx context.Context, subject string) (core.SampleWindow, error) {
	items, err := s.client.LRange(ctx, s.windowKey(subject), 0, -1).Result()
	if err != nil {
		return core.SampleWindow{}, fmt.Errorf("read window of %s: %w", subject, err)
	}

	w := core.SampleWindow{
		R:          make([]float64, 0, len(items)),
		G:          make([]float64, 0, len(items)),
		B:          make([]float64, 0, len(items)),
		Timestamps: make([]float64, 0, len(items)),
	}
	for _, item := range items {
		var smp sample
		if err := json.Unmarshal([]byte(item), &smp); err != nil {
			return core.SampleWindow{}, fmt.Errorf("%w: stored sample %q: %w", core.ErrMalformedInput, item, err)
		}
		w.Timestamps = append(w.Timestamps, smp[0])
		w.R = append(w.R, smp[1])
		w.G = append(w.G, smp[2])
		w.B = append(w.B, smp[3])
	}

	return w, nil
}

// RecordHeartRate implements [Store].
func (s *RedisStore) RecordHeartRate(ctx context.Context, subject string, bpm float64) ([]float64, error) {
	key := s.historyKey(subject)

	var values *redis.StringSliceCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, strconv.FormatFloat(bpm, 'g', -1, 64))
		pipe.LTrim(ctx, key, int64(-s.history), -1)
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
		values = pipe.LRange(ctx, key, 0, -1)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("record heart rate for %s: %w", subject, err)
	}

	out := make([]float64, 0, len(values.Val()))
	for _, v := range values.Val() {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: stored heart rate %q", core.ErrMalformedInput, v)
		}
		out = append(out, f)
	}

	return out, nil
}

// Reset implements [Store].
func (s *RedisStore) Reset(ctx context.Context, subject string) error {
	if err := s.client.Del(ctx, s.windowKey(subject), s.historyKey(subject)).Err(); err != nil {
		return fmt.Errorf("reset %s: %w", subject, err)
	}

	return nil
}

// Close implements [Store].
func (s *RedisStore) Close() error {
	return s.client.Close()
}
