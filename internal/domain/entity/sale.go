package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale venta de mostrador. Inmutable una vez confirmada.
type Sale struct {
	ID        string
	KioscoID  string
	UserID    string
	Date      time.Time
	Total     decimal.Decimal
	Lines     []SaleLine
	CreatedAt time.Time
}

// SaleLine línea de venta; UnitPrice es el precio del producto al momento de vender.
type SaleLine struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}
