package cache_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kiosco-api/internal/infrastructure/cache"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock { return &clock{now: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)} }

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestMemoryStore_ExpiracionDeslizanteSeRenuevaConAciertos(t *testing.T) {
	clk := newClock()
	s := cache.NewMemoryStore(cache.WithClock(clk.Now))
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "k", []byte("v"), 30*time.Minute, 4*time.Hour))

	for i := 0; i < 4; i++ {
		clk.Advance(20 * time.Minute)
		_, ok, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok, "acierto %d", i)
	}

	clk.Advance(31 * time.Minute)
	_, ok, _ := s.Get(ctx, "k")
	assert.False(t, ok)
	assert.Zero(t, s.Len())
}

func TestMemoryStore_ExpiracionAbsolutaNoSeRenueva(t *testing.T) {
	clk := newClock()
	s := cache.NewMemoryStore(cache.WithClock(clk.Now))
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "k", []byte("v"), 30*time.Minute, 4*time.Hour))

	// un acierto cada 20 minutos mantiene viva la deslizante, pero a las 4 h vence igual
	for elapsed := time.Duration(0); elapsed < 4*time.Hour-20*time.Minute; elapsed += 20 * time.Minute {
		clk.Advance(20 * time.Minute)
		_, ok, _ := s.Get(ctx, "k")
		require.True(t, ok)
	}
	clk.Advance(20 * time.Minute)
	_, ok, _ := s.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryStore_DevuelveCopia(t *testing.T) {
	s := cache.NewMemoryStore()
	ctx := context.Background()
	src := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", src, time.Minute, time.Hour))
	src[0] = 'x'

	got, ok, _ := s.Get(ctx, "k")
	require.True(t, ok)
	got[1] = 'y'

	again, _, _ := s.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestMemoryStore_TopeDeEntradas(t *testing.T) {
	clk := newClock()
	s := cache.NewMemoryStore(cache.WithClock(clk.Now), cache.WithMaxEntries(2))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "a", []byte("1"), time.Hour, time.Hour))
	clk.Advance(time.Minute)
	require.NoError(t, s.Set(ctx, "b", []byte("2"), time.Hour, time.Hour))
	clk.Advance(time.Minute)
	require.NoError(t, s.Set(ctx, "c", []byte("3"), time.Hour, time.Hour))

	assert.Equal(t, 2, s.Len())
	_, ok, _ := s.Get(ctx, "a")
	assert.False(t, ok)
}

func TestMemoryStore_Concurrente(t *testing.T) {
	s := cache.NewMemoryStore()
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%5)
			_ = s.Set(ctx, key, []byte("v"), time.Minute, time.Hour)
			_, _, _ = s.Get(ctx, key)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 5, s.Len())
}
