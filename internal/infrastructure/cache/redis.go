package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"

	"github.com/jhoicas/kiosco-api/internal/application/reports"
	"github.com/jhoicas/kiosco-api/pkg/config"
	"github.com/jhoicas/kiosco-api/pkg/logger"
)

var _ reports.Cache = (*RedisStore)(nil)

// RedisClient subconjunto de *redis.Client que usa el store.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// NewRedisClient crea el cliente con la configuración de la app.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// envelope lo que se guarda en Redis: el TTL de la clave implementa la expiración deslizante y
// Deadline la absoluta, que no se renueva.
type envelope struct {
	Deadline int64  `json:"deadline"` // unix nanos; 0 = sin límite absoluto
	Sliding  int64  `json:"sliding"`  // nanos; 0 = sin expiración deslizante
	Payload  []byte `json:"payload"`
}

// RedisStore caché compartido entre réplicas. Las llamadas pasan por un circuit breaker: con Redis
// caído se falla rápido y el llamador calcula el reporte sin esperar timeouts.
type RedisStore struct {
	client RedisClient
	cb     *gobreaker.CircuitBreaker
	log    *logger.Logger
	now    func() time.Time
}

// RedisOption configura el RedisStore.
type RedisOption func(*RedisStore)

// WithRedisClock reemplaza el reloj (tests).
func WithRedisClock(now func() time.Time) RedisOption {
	return func(s *RedisStore) { s.now = now }
}

// NewRedisStore construye el store. Tras 5 fallos consecutivos el breaker abre por 30 segundos.
func NewRedisStore(client RedisClient, log *logger.Logger, opts ...RedisOption) *RedisStore {
	if log == nil {
		log = logger.Nop()
	}
	s := &RedisStore{client: client, log: log.Component("redis_cache"), now: time.Now}
	s.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "report-cache-redis",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			s.log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("cambio de estado del circuit breaker")
		},
	})
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get lee la entrada; si sigue vigente renueva su TTL al menor entre la ventana deslizante y lo
// que le queda de vida absoluta.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	res, err := s.cb.Execute(func() (interface{}, error) {
		raw, err := s.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return raw, err
	})
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	raw, _ := res.([]byte)
	if raw == nil {
		return nil, false, nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		_ = s.del(ctx, key)
		return nil, false, nil
	}
	now := s.now()
	var remaining time.Duration
	if env.Deadline > 0 {
		remaining = time.Unix(0, env.Deadline).Sub(now)
		if remaining <= 0 {
			_ = s.del(ctx, key)
			return nil, false, nil
		}
	}
	if ttl := minPositive(time.Duration(env.Sliding), remaining); ttl > 0 {
		if _, err := s.cb.Execute(func() (interface{}, error) {
			return nil, s.client.Expire(ctx, key, ttl).Err()
		}); err != nil {
			s.log.Warn().Str("key", key).Err(err).Msg("no se pudo renovar el TTL")
		}
	}
	return env.Payload, true, nil
}

// Set guarda value con TTL = min(sliding, absolute).
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, sliding, absolute time.Duration) error {
	env := envelope{Sliding: int64(sliding), Payload: value}
	if absolute > 0 {
		env.Deadline = s.now().Add(absolute).UnixNano()
	}
	raw, err := json.Marshal(env)
	if err != nil {
		return err
	}
	ttl := minPositive(sliding, absolute)
	_, err = s.cb.Execute(func() (interface{}, error) {
		return nil, s.client.Set(ctx, key, raw, ttl).Err()
	})
	if err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) del(ctx context.Context, key string) error {
	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, s.client.Del(ctx, key).Err()
	})
	return err
}

// State estado del breaker (closed, half-open, open).
func (s *RedisStore) State() gobreaker.State {
	return s.cb.State()
}

// minPositive el menor de los valores positivos; 0 si ninguno lo es.
func minPositive(a, b time.Duration) time.Duration {
	switch {
	case a <= 0:
		if b > 0 {
			return b
		}
		return 0
	case b <= 0 || a < b:
		return a
	default:
		return b
	}
}
