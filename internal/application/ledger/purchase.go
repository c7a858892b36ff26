package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kiosco-api/internal/domain"
	"github.com/jhoicas/kiosco-api/internal/domain/entity"
	"github.com/jhoicas/kiosco-api/internal/domain/money"
	"github.com/jhoicas/kiosco-api/internal/domain/repository"
)

// PurchaseLineInput línea de compra recibida.
type PurchaseLineInput struct {
	ProductID string
	Quantity  int
	UnitCost  decimal.Decimal
}

// PurchaseMetadata datos de cabecera. Date vacío significa "ahora".
type PurchaseMetadata struct {
	UserID   string
	Supplier string
	Notes    string
	Date     time.Time
}

// normalizeCosts copia las líneas con el costo unitario llevado a money.CostPrecision, la misma
// escala con la que se guarda en la línea y en el costo actual del producto.
func normalizeCosts(lines []PurchaseLineInput) []PurchaseLineInput {
	out := make([]PurchaseLineInput, len(lines))
	for i, in := range lines {
		in.UnitCost = money.RoundCost(in.UnitCost)
		out[i] = in
	}
	return out
}

func validatePurchase(kioscoID string, lines []PurchaseLineInput) error {
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
		if !in.UnitCost.IsPositive() {
			return &domain.ValidationError{Field: fmt.Sprintf("lines[%d].unit_cost", i), Reason: "debe ser mayor que 0"}
		}
	}
	return nil
}

// RecordPurchase suma al stock de cada producto la cantidad comprada y, si el costo de la línea difiere,
// lo deja como costo actual (gana la última línea). Total = suma de cantidad*costo con redondeo bancario.
// Si algún producto no existe o es de otro kiosco no se aplica nada y se devuelve ProductNotFoundError.
func (l *StockLedger) RecordPurchase(ctx context.Context, kioscoID string, lines []PurchaseLineInput, meta PurchaseMetadata) (*entity.Purchase, error) {
	ids := make([]string, 0, len(lines))
	for _, in := range lines {
		ids = append(ids, in.ProductID)
	}
	ids = uniqueSorted(ids)
	lines = normalizeCosts(lines)
	if err := validatePurchase(kioscoID, lines); err != nil {
		return nil, l.finish(kindPurchase, kioscoID, ids, err)
	}

	now := l.now().UTC()
	date := meta.Date.UTC()
	if meta.Date.IsZero() {
		date = now
	}
	purchase := &entity.Purchase{
		ID:        l.newID(),
		KioscoID:  kioscoID,
		UserID:    meta.UserID,
		Supplier:  meta.Supplier,
		Notes:     meta.Notes,
		Date:      date,
		CreatedAt: now,
	}

	err := l.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
		_ repository.SaleRepository,
	) error {
		products, err := productRepo.GetManyForUpdate(ctx, kioscoID, ids)
		if err != nil {
			return err
		}
		if absent := missing(ids, products); len(absent) > 0 {
			return &domain.ProductNotFoundError{ProductIDs: absent}
		}

		// El runner puede reintentar fn: el documento se reconstruye en cada intento.
		purchase.Lines = make([]entity.PurchaseLine, 0, len(lines))
		amounts := make([]decimal.Decimal, 0, len(lines))
		for _, in := range lines {
			p := products[in.ProductID]
			p.Stock += in.Quantity
			if !p.Cost.Equal(in.UnitCost) {
				p.Cost = in.UnitCost
			}
			exact := money.LineAmount(in.Quantity, in.UnitCost)
			amounts = append(amounts, exact)
			purchase.Lines = append(purchase.Lines, entity.PurchaseLine{
				ID:         l.newID(),
				PurchaseID: purchase.ID,
				ProductID:  in.ProductID,
				Quantity:   in.Quantity,
				UnitCost:   in.UnitCost,
				Subtotal:   money.Round(exact),
			})
		}
		purchase.Total = money.Sum(amounts...)

		for _, id := range ids {
			p := products[id]
			if err := productRepo.UpdateStockAndCost(ctx, id, p.Stock, p.Cost); err != nil {
				return err
			}
		}
		return purchaseRepo.Create(ctx, purchase)
	})
	if err := l.finish(kindPurchase, kioscoID, ids, err); err != nil {
		return nil, err
	}
	l.log.WithKiosco(kioscoID).Info().
		Str("purchase_id", purchase.ID).
		Int("lines", len(purchase.Lines)).
		Str("total", purchase.Total.StringFixed(money.Precision)).
		Msg("compra registrada")
	return purchase, nil
}
