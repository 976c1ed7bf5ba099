package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-rppg/dsp/core"
	"github.com/cwbudde/algo-rppg/internal/config"
	"github.com/cwbudde/algo-rppg/internal/transport"
)

func testStoreConfig() config.StoreConfig {
	cfg := config.Default().Store
	cfg.Capacity = 4
	cfg.History = 3
	cfg.Redis.TTL = time.Minute
	return cfg
}

func setupRedisStore(t *testing.T) (*miniredis.Miniredis, *RedisStore) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	st := NewRedisStore(client, testStoreConfig())
	t.Cleanup(func() { _ = st.Close() })

	return mr, st
}

func stores(t *testing.T) map[string]Store {
	_, rs := setupRedisStore(t)
	cfg := testStoreConfig()

	return map[string]Store{
		"memory": NewMemoryStore(cfg.Capacity, cfg.History),
		"redis":  rs,
	}
}

func frame(i int) transport.Frame {
	return transport.Frame{Subject: "alice", Timestamp: float64(i) * 33, R: 150, G: 110 + float64(i), B: 90}
}

func TestStoreWindowIsBounded(t *testing.T) {
	ctx := context.Background()

	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 6; i++ {
				n, err := st.Append(ctx, "alice", frame(i))
				require.NoError(t, err)
				assert.Equal(t, min(i+1, 4), n)
			}

			w, err := st.Window(ctx, "alice")
			require.NoError(t, err)
			require.NoError(t, w.Validate())
			assert.Equal(t, []float64{112, 113, 114, 115}, w.G)
			assert.Equal(t, []float64{66, 99, 132, 165}, w.Timestamps)

			other, err := st.Window(ctx, "bob")
			require.NoError(t, err)
			assert.Equal(t, 0, other.Len())
		})
	}
}

func TestStoreRejectsOutOfOrderFrames(t *testing.T) {
	ctx := context.Background()

	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := st.Append(ctx, "alice", frame(5))
			require.NoError(t, err)

			_, err = st.Append(ctx, "alice", frame(2))
			assert.True(t, errors.Is(err, core.ErrMalformedInput), "err=%v", err)
		})
	}
}

func TestStoreHeartRateHistory(t *testing.T) {
	ctx := context.Background()

	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			var history []float64
			for _, bpm := range []float64{70, 71.5, 72, 200} {
				var err error
				history, err = st.RecordHeartRate(ctx, "alice", bpm)
				require.NoError(t, err)
			}
			assert.Equal(t, []float64{71.5, 72, 200}, history)

			require.NoError(t, st.Reset(ctx, "alice"))
			history, err := st.RecordHeartRate(ctx, "alice", 65)
			require.NoError(t, err)
			assert.Equal(t, []float64{65}, history)
		})
	}
}

func TestRedisStoreKeysExpire(t *testing.T) {
	ctx := context.Background()
	mr, st := setupRedisStore(t)

	_, err := st.Append(ctx, "alice", frame(0))
	require.NoError(t, err)
	assert.Equal(t, time.Minute, mr.TTL("rppg:window:alice"))

	mr.FastForward(2 * time.Minute)

	w, err := st.Window(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 0, w.Len())
}

func TestRedisStoreCorruptSample(t *testing.T) {
	ctx := context.Background()
	mr, st := setupRedisStore(t)

	_, err := mr.Push("rppg:window:alice", "not-json")
	require.NoError(t, err)

	_, err = st.Window(ctx, "alice")
	assert.True(t, errors.Is(err, core.ErrMalformedInput), "err=%v", err)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	cfg := testStoreConfig()
	st, err := Open(ctx, cfg)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, st)

	cfg.Kind = "redis"
	cfg.Redis.Addr = mr.Addr()
	st, err = Open(ctx, cfg)
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, st)
	require.NoError(t, st.Close())

	mr.Close()
	_, err = Open(ctx, cfg)
	assert.Error(t, err)

	cfg.Kind = "tape"
	_, err = Open(ctx, cfg)
	assert.Error(t, err)
}

func TestMemoryStoreReset(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore(10, 10)

	_, err := st.Append(ctx, "alice", frame(0))
	require.NoError(t, err)
	assert.Equal(t, 1, st.Subjects())

	require.NoError(t, st.Reset(ctx, "alice"))
	assert.Equal(t, 0, st.Subjects())
}
