package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kiosco-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetByKioscoAndSKU devuelven (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, kioscoID, id string) (*entity.Product, error)
	GetByKioscoAndSKU(ctx context.Context, kioscoID, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	ListByKiosco(ctx context.Context, kioscoID string, limit, offset int) ([]*entity.Product, error)
	CountByKiosco(ctx context.Context, kioscoID string) (int, error)

	// GetManyForUpdate bloquea las filas (escritura) hasta el fin de la transacción.
	// Los ids ausentes o de otro kiosco simplemente no aparecen en el mapa.
	GetManyForUpdate(ctx context.Context, kioscoID string, ids []string) (map[string]*entity.Product, error)
	// UpdateStockAndCost escribe stock y costo actual; usado solo por el libro de stock.
	UpdateStockAndCost(ctx context.Context, productID string, stock int, cost decimal.Decimal) error
}
