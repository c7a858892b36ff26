package cache_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kiosco-api/internal/infrastructure/cache"
	"github.com/jhoicas/kiosco-api/pkg/logger"
)

// fakeRedis simula los comandos usados, con TTL explícito por clave.
type fakeRedis struct {
	mu   sync.Mutex
	data map[string]string
	ttl  map[string]time.Duration
	err  error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.ttl[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Expire(_ context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewBoolResult(false, f.err)
	}
	_, ok := f.data[key]
	if ok {
		f.ttl[key] = expiration
	}
	return redis.NewBoolResult(ok, nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			delete(f.ttl, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestRedisStore_SetYGetRenuevaTTL(t *testing.T) {
	clk := newClock()
	fake := newFakeRedis()
	s := cache.NewRedisStore(fake, logger.Nop(), cache.WithRedisClock(clk.Now))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte(`{"a":1}`), 30*time.Minute, 4*time.Hour))
	assert.Equal(t, 30*time.Minute, fake.ttl["k"])

	clk.Advance(10 * time.Minute)
	got, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"a":1}`, string(got))
	assert.Equal(t, 30*time.Minute, fake.ttl["k"])
}

func TestRedisStore_TTLNoSuperaLaVidaAbsoluta(t *testing.T) {
	clk := newClock()
	fake := newFakeRedis()
	s := cache.NewRedisStore(fake, logger.Nop(), cache.WithRedisClock(clk.Now))
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "k", []byte("1"), 30*time.Minute, 4*time.Hour))

	clk.Advance(4*time.Hour - 10*time.Minute)
	_, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 10*time.Minute, fake.ttl["k"])

	clk.Advance(10 * time.Minute)
	_, ok, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	_, stored := fake.data["k"]
	assert.False(t, stored)
}

func TestRedisStore_ClaveAusenteEsMissSinError(t *testing.T) {
	s := cache.NewRedisStore(newFakeRedis(), logger.Nop())
	_, ok, err := s.Get(context.Background(), "nada")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, gobreaker.StateClosed, s.State())
}

func TestRedisStore_BreakerAbreTrasFallosConsecutivos(t *testing.T) {
	fake := newFakeRedis()
	fake.err = errors.New("dial tcp: connection refused")
	s := cache.NewRedisStore(fake, logger.Nop())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, _, err := s.Get(ctx, "k")
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, s.State())

	_, _, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}
