// Package cache implementa el almacenamiento del caché de reportes: en memoria del proceso
// o compartido en Redis.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/kiosco-api/internal/application/reports"
)

var _ reports.Cache = (*MemoryStore)(nil)

type memEntry struct {
	value    []byte
	sliding  time.Duration
	idleAt   time.Time // vence si no hay aciertos antes; cero = sin expiración deslizante
	expireAt time.Time // vencimiento absoluto; cero = sin límite
}

func (e *memEntry) expired(now time.Time) bool {
	return (!e.idleAt.IsZero() && !now.Before(e.idleAt)) ||
		(!e.expireAt.IsZero() && !now.Before(e.expireAt))
}

// MemoryStore caché en memoria, seguro para uso concurrente. Las entradas vencidas se eliminan al
// leerlas o en la limpieza que hace Set cuando se alcanza el máximo; no hay goroutines de fondo.
type MemoryStore struct {
	mu         sync.Mutex
	entries    map[string]*memEntry
	maxEntries int
	now        func() time.Time
}

// MemoryOption configura el MemoryStore.
type MemoryOption func(*MemoryStore)

// WithMaxEntries tope de entradas; al superarlo se descarta la de vencimiento absoluto más próximo.
func WithMaxEntries(n int) MemoryOption {
	return func(s *MemoryStore) { s.maxEntries = n }
}

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) { s.now = now }
}

// NewMemoryStore construye un caché vacío.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		entries:    map[string]*memEntry{},
		maxEntries: 10000,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get devuelve una copia del valor y renueva la expiración deslizante (sin pasar la absoluta).
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	now := s.now()
	if e.expired(now) {
		delete(s.entries, key)
		return nil, false, nil
	}
	if e.sliding > 0 {
		e.idleAt = now.Add(e.sliding)
	}
	return append([]byte(nil), e.value...), true, nil
}

// Set guarda value; sliding o absolute en 0 desactivan esa expiración.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, sliding, absolute time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e := &memEntry{value: append([]byte(nil), value...), sliding: sliding}
	if sliding > 0 {
		e.idleAt = now.Add(sliding)
	}
	if absolute > 0 {
		e.expireAt = now.Add(absolute)
	}

	if _, exists := s.entries[key]; !exists && s.maxEntries > 0 && len(s.entries) >= s.maxEntries {
		s.sweep(now)
		if len(s.entries) >= s.maxEntries {
			s.evictOne()
		}
	}
	s.entries[key] = e
	return nil
}

// Len cantidad de entradas (incluye vencidas aún no barridas).
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *MemoryStore) sweep(now time.Time) {
	for k, e := range s.entries {
		if e.expired(now) {
			delete(s.entries, k)
		}
	}
}

func (s *MemoryStore) evictOne() {
	var (
		victim string
		first  = true
		at     time.Time
	)
	for k, e := range s.entries {
		deadline := e.expireAt
		if deadline.IsZero() {
			deadline = e.idleAt
		}
		if first || deadline.Before(at) {
			victim, at, first = k, deadline, false
		}
	}
	if !first {
		delete(s.entries, victim)
	}
}
