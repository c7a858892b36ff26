// Package memory implementa los puertos de persistencia en memoria. Se usa cuando no hay base de datos
// configurada (desarrollo) y en las pruebas de integración del libro de stock y los reportes.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/kiosco-api/internal/domain/entity"
	"github.com/jhoicas/kiosco-api/internal/domain/repository"
)

type productRow struct {
	p   entity.Product
	seq int64 // orden de alta, desempate estable de los reportes
}

type state struct {
	products   map[string]productRow
	categories map[string]entity.Category
	purchases  map[string]entity.Purchase
	sales      map[string]entity.Sale
	seq        int64
}

func newState() *state {
	return &state{
		products:   map[string]productRow{},
		categories: map[string]entity.Category{},
		purchases:  map[string]entity.Purchase{},
		sales:      map[string]entity.Sale{},
	}
}

// clone copia el estado; las líneas se comparten porque compras y ventas son inmutables.
func (s *state) clone() *state {
	c := &state{
		products:   make(map[string]productRow, len(s.products)),
		categories: make(map[string]entity.Category, len(s.categories)),
		purchases:  make(map[string]entity.Purchase, len(s.purchases)),
		sales:      make(map[string]entity.Sale, len(s.sales)),
		seq:        s.seq,
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.categories {
		c.categories[k] = v
	}
	for k, v := range s.purchases {
		c.purchases[k] = v
	}
	for k, v := range s.sales {
		c.sales[k] = v
	}
	return c
}

// Store base de datos en memoria. Las transacciones se serializan con txMu y trabajan sobre una copia
// del estado que solo se publica si fn termina sin error (todo o nada).
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	st   *state
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Run ejecuta fn con repos atados a una copia del estado y la confirma si fn no falla.
// La cancelación del contexto antes de confirmar descarta los cambios igual que un error.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseRepository,
	saleRepo repository.SaleRepository,
) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	tx := s.st.clone()
	s.mu.RUnlock()

	b := binding{store: s, tx: tx}
	if err := fn(&ProductRepo{b: b}, &PurchaseRepo{b: b}, &SaleRepo{b: b}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.st = tx
	s.mu.Unlock()
	return nil
}

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{b: binding{store: s}} }

// Categories repositorio de categorías.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{b: binding{store: s}} }

// Purchases repositorio de compras fuera de transacción.
func (s *Store) Purchases() *PurchaseRepo { return &PurchaseRepo{b: binding{store: s}} }

// Sales repositorio de ventas fuera de transacción.
func (s *Store) Sales() *SaleRepo { return &SaleRepo{b: binding{store: s}} }

// Costs consultas de historial de costos.
func (s *Store) Costs() *CostRepo { return &CostRepo{b: binding{store: s}} }

// Reports consultas de reportes.
func (s *Store) Reports() *ReportRepo { return &ReportRepo{b: binding{store: s}} }

// binding decide si un repo opera sobre la copia de una transacción o directamente sobre el store.
type binding struct {
	store *Store
	tx    *state
}

func (b binding) read(fn func(st *state) error) error {
	if b.tx != nil {
		return fn(b.tx)
	}
	b.store.mu.RLock()
	defer b.store.mu.RUnlock()
	return fn(b.store.st)
}

// write fuera de transacción toma txMu para no pisar (ni ser pisado por) un Run concurrente.
func (b binding) write(fn func(st *state) error) error {
	if b.tx != nil {
		return fn(b.tx)
	}
	b.store.txMu.Lock()
	defer b.store.txMu.Unlock()
	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	return fn(b.store.st)
}

// within rango inclusivo [start, end].
func within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
