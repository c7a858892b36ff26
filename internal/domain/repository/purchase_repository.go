package repository

import (
	"context"
	"time"

	"github.com/jhoicas/kiosco-api/internal/domain/entity"
)

// PurchaseRepository persiste compras con sus líneas.
// List ordena por fecha DESC, id DESC; el rango es inclusivo.
type PurchaseRepository interface {
	Create(ctx context.Context, p *entity.Purchase) error
	GetByID(ctx context.Context, kioscoID, id string) (*entity.Purchase, error)
	List(ctx context.Context, kioscoID string, from, to time.Time, limit, offset int) ([]*entity.Purchase, error)
	Count(ctx context.Context, kioscoID string, from, to time.Time) (int, error)
}
