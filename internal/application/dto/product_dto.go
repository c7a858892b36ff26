package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Stock inicia en 0; Cost es el costo de referencia
// hasta la primera compra.
type CreateProductRequest struct {
	SKU        string          `json:"sku" validate:"required,min=1,max=100"`
	Name       string          `json:"name" validate:"required,min=1,max=200"`
	CategoryID string          `json:"category_id" validate:"omitempty,uuid_str"`
	Price      decimal.Decimal `json:"price" validate:"dec_gte0"`
	Cost       decimal.Decimal `json:"cost" validate:"dec_gte0"`
}

// UpdateProductRequest entrada para actualizar un producto (sin Cost ni Stock).
// Al menos un campo debe venir presente.
type UpdateProductRequest struct {
	Name       *string          `json:"name" validate:"omitempty,min=1,max=200"`
	SKU        *string          `json:"sku" validate:"omitempty,min=1,max=100"`
	CategoryID *string          `json:"category_id" validate:"omitempty,uuid_str"`
	Price      *decimal.Decimal `json:"price"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID         string          `json:"id"`
	KioscoID   string          `json:"kiosco_id"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	CategoryID string          `json:"category_id"`
	Price      decimal.Decimal `json:"price"`
	Cost       decimal.Decimal `json:"cost"`
	Stock      int             `json:"stock"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
