package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/kiosco-api/internal/application/ledger"
	"github.com/jhoicas/kiosco-api/internal/domain/repository"
	"github.com/jhoicas/kiosco-api/pkg/logger"
)

// Ensure TxRunner implements ledger.TxRunner.
var _ ledger.TxRunner = (*TxRunner)(nil)

// maxAttempts intentos ante serialization failure o deadlock.
const maxAttempts = 3

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool, log *logger.Logger) *TxRunner {
	return &TxRunner{pool: pool, log: log}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Los conflictos de concurrencia (40001, 40P01) se reintentan; fn debe poder ejecutarse de nuevo desde cero.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseRepository,
	saleRepo repository.SaleRepository,
) error) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = r.runOnce(ctx, fn)
		if err == nil || !isRetryable(err) || ctx.Err() != nil {
			return err
		}
		r.log.Warn().Err(err).Int("attempt", attempt).Msg("conflicto de concurrencia, reintentando transacción")
	}
	return err
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseRepository,
	saleRepo repository.SaleRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	productRepo := NewProductRepository(tx)
	purchaseRepo := NewPurchaseRepository(tx)
	saleRepo := NewSaleRepository(tx)

	if err := fn(productRepo, purchaseRepo, saleRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
