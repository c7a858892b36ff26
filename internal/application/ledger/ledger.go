// Package ledger aplica compras y ventas sobre el stock de forma atómica.
package ledger

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/kiosco-api/internal/domain"
	"github.com/jhoicas/kiosco-api/internal/domain/repository"
	"github.com/jhoicas/kiosco-api/pkg/logger"
	"github.com/jhoicas/kiosco-api/pkg/metrics"
)

const (
	kindPurchase = "purchase"
	kindSale     = "sale"
)

// StockLedger registra compras y ventas. Cada operación es una única transacción:
// bloquea los productos, valida, actualiza stock y persiste el documento, o no aplica nada.
type StockLedger struct {
	txRunner     TxRunner
	purchaseRepo repository.PurchaseRepository
	saleRepo     repository.SaleRepository
	log          *logger.Logger
	metrics      *metrics.Metrics
	now          func() time.Time
	newID        func() string
}

// Option configura el ledger.
type Option func(*StockLedger)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(l *StockLedger) { l.now = now }
}

// WithMetrics registra resultados de compras y ventas.
func WithMetrics(m *metrics.Metrics) Option {
	return func(l *StockLedger) { l.metrics = m }
}

// NewStockLedger construye el ledger. purchaseRepo y saleRepo se usan para lecturas fuera de transacción.
func NewStockLedger(
	txRunner TxRunner,
	purchaseRepo repository.PurchaseRepository,
	saleRepo repository.SaleRepository,
	log *logger.Logger,
	opts ...Option,
) *StockLedger {
	if log == nil {
		log = logger.Nop()
	}
	l := &StockLedger{
		txRunner:     txRunner,
		purchaseRepo: purchaseRepo,
		saleRepo:     saleRepo,
		log:          log.Component("ledger"),
		now:          time.Now,
		newID:        func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// finish clasifica el error de una operación: los de negocio y la cancelación pasan tal cual;
// cualquier otro se reporta como PersistenceError (la transacción ya hizo rollback).
func (l *StockLedger) finish(kind, kioscoID string, productIDs []string, err error) error {
	log := l.log.WithKiosco(kioscoID)
	switch {
	case err == nil:
		l.metrics.LedgerOutcome(kind, "committed")
		return nil
	case domain.IsBusiness(err):
		l.metrics.LedgerOutcome(kind, "rejected")
		log.Warn().Str("kind", kind).Strs("product_ids", productIDs).Err(err).Msg("operación rechazada")
		return err
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		l.metrics.LedgerOutcome(kind, "cancelled")
		log.Warn().Str("kind", kind).Err(err).Msg("operación cancelada")
		return err
	default:
		l.metrics.LedgerOutcome(kind, "failed")
		log.Error().Str("kind", kind).Strs("product_ids", productIDs).Err(err).Msg("fallo al confirmar")
		var perr *domain.PersistenceError
		if errors.As(err, &perr) {
			return err
		}
		return &domain.PersistenceError{Op: "record " + kind, Err: err}
	}
}

// uniqueSorted ids distintos en orden estable; bloquear siempre en el mismo orden evita deadlocks entre ventas.
func uniqueSorted(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func missing[T any](ids []string, found map[string]T) []string {
	var out []string
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
