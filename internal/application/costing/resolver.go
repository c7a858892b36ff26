// Package costing reconstruye el costo histórico de compra de cada producto.
package costing

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kiosco-api/internal/domain"
	"github.com/jhoicas/kiosco-api/internal/domain/repository"
)

// Observation pide el costo de ProductID vigente a la fecha AsOf.
type Observation struct {
	ProductID string
	AsOf      time.Time
}

// CostResolver resuelve costos históricos con una única consulta masiva.
type CostResolver struct {
	repo repository.CostRepository
}

// NewCostResolver construye el resolver.
func NewCostResolver(repo repository.CostRepository) *CostResolver {
	return &CostResolver{repo: repo}
}

// ResolveHistoricalCosts devuelve, por producto, el costo unitario de la compra más reciente con fecha
// menor o igual a la fecha MÁS TARDÍA pedida para ese producto. Varias fechas del mismo producto se
// colapsan a la última: quien necesite precisión por transacción debe llamar una vez por fecha.
// Los productos sin compra previa no aparecen; el llamador usa el costo actual del producto.
func (r *CostResolver) ResolveHistoricalCosts(ctx context.Context, kioscoID string, observations []Observation) (map[string]decimal.Decimal, error) {
	asOf := Collapse(observations)
	if len(asOf) == 0 {
		return map[string]decimal.Decimal{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	costs, err := r.repo.LatestCosts(ctx, kioscoID, asOf)
	if err != nil {
		if domain.IsBusiness(err) {
			return nil, err
		}
		return nil, &domain.PersistenceError{Op: "resolve historical costs", Err: err}
	}
	return costs, nil
}

// Collapse reduce las observaciones a la fecha más tardía por producto.
func Collapse(observations []Observation) map[string]time.Time {
	out := make(map[string]time.Time, len(observations))
	for _, o := range observations {
		if o.ProductID == "" {
			continue
		}
		if cur, ok := out[o.ProductID]; !ok || o.AsOf.After(cur) {
			out[o.ProductID] = o.AsOf
		}
	}
	return out
}

// ProductIDs claves de asOf en orden, para consultas con parámetros de arreglo.
func ProductIDs(asOf map[string]time.Time) []string {
	ids := make([]string, 0, len(asOf))
	for id := range asOf {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
