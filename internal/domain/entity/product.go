package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del kiosco.
// Cost es el último costo de compra (respaldo del costeo histórico); Stock solo cambia vía compras y ventas.
type Product struct {
	ID         string
	KioscoID   string
	SKU        string // código único por kiosco
	Name       string
	CategoryID string // vacío si no tiene categoría
	Cost       decimal.Decimal
	Price      decimal.Decimal // precio de venta
	Stock      int             // siempre >= 0
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ProductPatch campos presentes en una actualización de catálogo. Nil significa "no cambiar".
// Costo y stock quedan fuera: solo el libro de stock los modifica.
type ProductPatch struct {
	Name       *string
	SKU        *string
	CategoryID *string
	Price      *decimal.Decimal
}

// IsEmpty true si el patch no trae ningún campo.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.SKU == nil && p.CategoryID == nil && p.Price == nil
}

// Apply copia en prod los campos presentes.
func (p ProductPatch) Apply(prod *Product) {
	if p.Name != nil {
		prod.Name = *p.Name
	}
	if p.SKU != nil {
		prod.SKU = *p.SKU
	}
	if p.CategoryID != nil {
		prod.CategoryID = *p.CategoryID
	}
	if p.Price != nil {
		prod.Price = *p.Price
	}
}
