package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CostRepository consulta el historial de costos derivado de las líneas de compra.
type CostRepository interface {
	// LatestCosts devuelve, en una sola consulta, el costo unitario de la línea de compra más reciente
	// con fecha <= asOf[productID]. Los productos sin compras previas no aparecen en el resultado.
	LatestCosts(ctx context.Context, kioscoID string, asOf map[string]time.Time) (map[string]decimal.Decimal, error)
}
