package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase compra a proveedor. Inmutable una vez confirmada.
type Purchase struct {
	ID        string
	KioscoID  string
	UserID    string
	Supplier  string
	Notes     string
	Date      time.Time
	Total     decimal.Decimal
	Lines     []PurchaseLine
	CreatedAt time.Time
}

// PurchaseLine línea de compra: cantidad > 0, costo unitario > 0.
type PurchaseLine struct {
	ID         string
	PurchaseID string
	ProductID  string
	Quantity   int
	UnitCost   decimal.Decimal
	Subtotal   decimal.Decimal
}

// CostObservation costo pagado por un producto en una fecha (derivado de las líneas de compra).
type CostObservation struct {
	ProductID string
	Date      time.Time
	UnitCost  decimal.Decimal
}
