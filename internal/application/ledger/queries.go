package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/kiosco-api/internal/domain"
	"github.com/jhoicas/kiosco-api/internal/domain/entity"
	"github.com/jhoicas/kiosco-api/pkg/pagination"
)

// GetPurchase devuelve la compra con sus líneas; ErrNotFound si no existe en el kiosco.
func (l *StockLedger) GetPurchase(ctx context.Context, kioscoID, id string) (*entity.Purchase, error) {
	p, err := l.purchaseRepo.GetByID(ctx, kioscoID, id)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "get purchase", Err: err}
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// GetSale devuelve la venta con sus líneas; ErrNotFound si no existe en el kiosco.
func (l *StockLedger) GetSale(ctx context.Context, kioscoID, id string) (*entity.Sale, error) {
	s, err := l.saleRepo.GetByID(ctx, kioscoID, id)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "get sale", Err: err}
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

// ListPurchases compras del rango [from, to], más recientes primero.
func (l *StockLedger) ListPurchases(ctx context.Context, kioscoID string, from, to time.Time, page, size int) (pagination.Page[*entity.Purchase], error) {
	q := pagination.QueryFuncs[*entity.Purchase]{
		CountFn: func(ctx context.Context) (int, error) {
			return l.purchaseRepo.Count(ctx, kioscoID, from, to)
		},
		FetchFn: func(ctx context.Context, offset, limit int) ([]*entity.Purchase, error) {
			return l.purchaseRepo.List(ctx, kioscoID, from, to, limit, offset)
		},
	}
	out, err := pagination.Paginate[*entity.Purchase](ctx, q, page, size)
	return out, wrapList("list purchases", err)
}

// ListSales ventas del rango [from, to], más recientes primero.
func (l *StockLedger) ListSales(ctx context.Context, kioscoID string, from, to time.Time, page, size int) (pagination.Page[*entity.Sale], error) {
	q := pagination.QueryFuncs[*entity.Sale]{
		CountFn: func(ctx context.Context) (int, error) {
			return l.saleRepo.Count(ctx, kioscoID, from, to)
		},
		FetchFn: func(ctx context.Context, offset, limit int) ([]*entity.Sale, error) {
			return l.saleRepo.List(ctx, kioscoID, from, to, limit, offset)
		},
	}
	out, err := pagination.Paginate[*entity.Sale](ctx, q, page, size)
	return out, wrapList("list sales", err)
}

func wrapList(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pagination.ErrInvalidPage):
		return &domain.ValidationError{Field: "page", Reason: err.Error()}
	case domain.IsBusiness(err), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return &domain.PersistenceError{Op: op, Err: err}
	}
}
