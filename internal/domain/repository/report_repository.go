package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SoldLine línea vendida con la fecha de su venta y el costo actual del producto (respaldo de costeo).
type SoldLine struct {
	SaleID      string
	SaleDate    time.Time
	ProductID   string
	Quantity    int
	Subtotal    decimal.Decimal
	CurrentCost decimal.Decimal
}

// ProductSalesRow ventas agregadas por producto.
type ProductSalesRow struct {
	ProductID   string
	SKU         string
	ProductName string
	Quantity    int
	Revenue     decimal.Decimal
}

// DailySalesRow ingresos de un día calendario (UTC).
type DailySalesRow struct {
	Day              time.Time
	Revenue          decimal.Decimal
	TransactionCount int
}

// CategorySalesRow ingresos por categoría; CategoryID vacío agrupa los productos sin categoría.
type CategorySalesRow struct {
	CategoryID   string
	CategoryName string
	Revenue      decimal.Decimal
}

// ReportRepository consultas de lectura para los reportes. Read-only.
// Todos los rangos son inclusivos en ambos extremos.
type ReportRepository interface {
	// SalesTotals cantidad de ventas y suma de sus totales.
	SalesTotals(ctx context.Context, kioscoID string, start, end time.Time) (count int, revenue decimal.Decimal, err error)

	// ListSoldLines todas las líneas vendidas en el rango.
	ListSoldLines(ctx context.Context, kioscoID string, start, end time.Time) ([]SoldLine, error)

	// ProductSales agrupa por producto, ordena por cantidad DESC y desempata por orden de alta del producto.
	ProductSales(ctx context.Context, kioscoID string, start, end time.Time, limit int) ([]ProductSalesRow, error)

	// SalesByDay agrupa por día calendario UTC, ascendente.
	SalesByDay(ctx context.Context, kioscoID string, start, end time.Time) ([]DailySalesRow, error)

	// SalesByCategory agrupa los ingresos por categoría del producto.
	SalesByCategory(ctx context.Context, kioscoID string, start, end time.Time) ([]CategorySalesRow, error)
}
