package repository

import (
	"context"
	"time"

	"github.com/jhoicas/kiosco-api/internal/domain/entity"
)

// SaleRepository persiste ventas con sus líneas.
// List ordena por fecha DESC, id DESC; el rango es inclusivo.
type SaleRepository interface {
	Create(ctx context.Context, s *entity.Sale) error
	GetByID(ctx context.Context, kioscoID, id string) (*entity.Sale, error)
	List(ctx context.Context, kioscoID string, from, to time.Time, limit, offset int) ([]*entity.Sale, error)
	Count(ctx context.Context, kioscoID string, from, to time.Time) (int, error)
}
