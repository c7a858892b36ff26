package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kiosco-api/internal/domain"
	"github.com/jhoicas/kiosco-api/internal/domain/entity"
	"github.com/jhoicas/kiosco-api/internal/domain/money"
	"github.com/jhoicas/kiosco-api/internal/domain/repository"
)

// SaleLineInput línea de venta recibida; el precio sale del producto.
type SaleLineInput struct {
	ProductID string
	Quantity  int
}

func validateSale(kioscoID string, lines []SaleLineInput) error {
	if kioscoID == "" {
		return &domain.ValidationError{Field: "kiosco_id", Reason: "requerido"}
	}
	if len(lines) == 0 {
		return &domain.ValidationError{Field: "lines", Reason: "al menos una línea"}
	}
	for i, in := range lines {
		if strings.TrimSpace(in.ProductID) == "" {
			return &domain.ValidationError{Field: fmt.Sprintf("lines[%d].product_id", i), Reason: "requerido"}
		}
		if in.Quantity <= 0 {
			return &domain.ValidationError{Field: fmt.Sprintf("lines[%d].quantity", i), Reason: "debe ser mayor que 0"}
		}
	}
	return nil
}

// RecordSale descuenta stock de cada producto y persiste la venta con el precio actual de cada producto.
// Las cantidades de líneas repetidas se suman antes de comparar contra el stock bloqueado; si alguna
// excede lo disponible la venta completa falla con InsufficientStockError y no se descuenta nada.
func (l *StockLedger) RecordSale(ctx context.Context, kioscoID string, lines []SaleLineInput, userID string) (*entity.Sale, error) {
	ids := make([]string, 0, len(lines))
	for _, in := range lines {
		ids = append(ids, in.ProductID)
	}
	ids = uniqueSorted(ids)
	if err := validateSale(kioscoID, lines); err != nil {
		return nil, l.finish(kindSale, kioscoID, ids, err)
	}

	requested := make(map[string]int, len(ids))
	order := make([]string, 0, len(ids)) // primera aparición en la venta
	for _, in := range lines {
		if _, ok := requested[in.ProductID]; !ok {
			order = append(order, in.ProductID)
		}
		requested[in.ProductID] += in.Quantity
	}

	now := l.now().UTC()
	sale := &entity.Sale{
		ID:        l.newID(),
		KioscoID:  kioscoID,
		UserID:    userID,
		Date:      now,
		CreatedAt: now,
	}

	err := l.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.PurchaseRepository,
		saleRepo repository.SaleRepository,
	) error {
		products, err := productRepo.GetManyForUpdate(ctx, kioscoID, ids)
		if err != nil {
			return err
		}
		if absent := missing(ids, products); len(absent) > 0 {
			return &domain.ProductNotFoundError{ProductIDs: absent}
		}
		for _, id := range order {
			if p := products[id]; p.Stock < requested[id] {
				return &domain.InsufficientStockError{ProductID: id, Requested: requested[id], Available: p.Stock}
			}
		}

		sale.Lines = make([]entity.SaleLine, 0, len(lines))
		amounts := make([]decimal.Decimal, 0, len(lines))
		for _, in := range lines {
			p := products[in.ProductID]
			exact := money.LineAmount(in.Quantity, p.Price)
			amounts = append(amounts, exact)
			sale.Lines = append(sale.Lines, entity.SaleLine{
				ID:        l.newID(),
				SaleID:    sale.ID,
				ProductID: in.ProductID,
				Quantity:  in.Quantity,
				UnitPrice: p.Price,
				Subtotal:  money.Round(exact),
			})
		}
		sale.Total = money.Sum(amounts...)

		for _, id := range ids {
			p := products[id]
			if err := productRepo.UpdateStockAndCost(ctx, id, p.Stock-requested[id], p.Cost); err != nil {
				return err
			}
		}
		return saleRepo.Create(ctx, sale)
	})
	if err := l.finish(kindSale, kioscoID, ids, err); err != nil {
		return nil, err
	}
	l.log.WithKiosco(kioscoID).Info().
		Str("sale_id", sale.ID).
		Int("lines", len(sale.Lines)).
		Str("total", sale.Total.StringFixed(money.Precision)).
		Msg("venta registrada")
	return sale, nil
}
