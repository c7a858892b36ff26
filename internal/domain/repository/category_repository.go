package repository

import (
	"context"

	"github.com/jhoicas/kiosco-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, kioscoID, id string) (*entity.Category, error)
}
