package ledger

import (
	"context"

	"github.com/jhoicas/kiosco-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Debe garantizar bloqueo de escritura sobre las filas de producto leídas con GetManyForUpdate
// hasta el commit, y rollback ante error o cancelación del contexto.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
		saleRepo repository.SaleRepository,
	) error) error
}
