package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseLineRequest línea de compra.
type PurchaseLineRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid_str"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
	UnitCost  decimal.Decimal `json:"unit_cost" validate:"dec_gt0"`
}

// CreatePurchaseRequest entrada de POST /api/purchases.
type CreatePurchaseRequest struct {
	Supplier string                `json:"supplier" validate:"max=200"`
	Notes    string                `json:"notes" validate:"max=1000"`
	Date     *time.Time            `json:"date"` // opcional; por defecto ahora
	Lines    []PurchaseLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// SaleLineRequest línea de venta; el precio lo pone el producto.
type SaleLineRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid_str"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

// CreateSaleRequest entrada de POST /api/sales.
type CreateSaleRequest struct {
	Lines []SaleLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// PurchaseLineResponse línea de compra confirmada.
type PurchaseLineResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// PurchaseResponse compra confirmada.
type PurchaseResponse struct {
	ID       string                 `json:"id"`
	KioscoID string                 `json:"kiosco_id"`
	UserID   string                 `json:"user_id"`
	Supplier string                 `json:"supplier"`
	Notes    string                 `json:"notes"`
	Date     time.Time              `json:"date"`
	Total    decimal.Decimal        `json:"total"`
	Lines    []PurchaseLineResponse `json:"lines"`
}

// SaleLineResponse línea de venta confirmada.
type SaleLineResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta confirmada.
type SaleResponse struct {
	ID       string             `json:"id"`
	KioscoID string             `json:"kiosco_id"`
	UserID   string             `json:"user_id"`
	Date     time.Time          `json:"date"`
	Total    decimal.Decimal    `json:"total"`
	Lines    []SaleLineResponse `json:"lines"`
}
