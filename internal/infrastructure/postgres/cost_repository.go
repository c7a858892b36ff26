package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kiosco-api/internal/application/costing"
	"github.com/jhoicas/kiosco-api/internal/domain/repository"
)

var _ repository.CostRepository = (*CostRepo)(nil)

// CostRepo historial de costos: la fuente son las líneas de compra.
type CostRepo struct {
	q Querier
}

// NewCostRepository construye el adaptador.
func NewCostRepository(q Querier) *CostRepo {
	return &CostRepo{q: q}
}

// LatestCosts resuelve todos los productos en una sola consulta.
// Por cada (producto, fecha límite) toma la línea más reciente por fecha de compra,
// luego por alta del documento y por posición dentro de la compra.
func (r *CostRepo) LatestCosts(ctx context.Context, kioscoID string, asOf map[string]time.Time) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(asOf))
	if len(asOf) == 0 {
		return out, nil
	}
	ids := costing.ProductIDs(asOf)
	limits := make([]time.Time, len(ids))
	for i, id := range ids {
		limits[i] = asOf[id]
	}

	const query = `
	WITH wanted AS (
	    SELECT w.product_id, w.as_of
	    FROM unnest($2::uuid[], $3::timestamptz[]) AS w(product_id, as_of)
	)
	SELECT DISTINCT ON (l.product_id)
	    l.product_id::TEXT,
	    l.unit_cost
	FROM wanted w
	JOIN purchase_lines l ON l.product_id = w.product_id
	JOIN purchases      p ON p.id         = l.purchase_id
	WHERE p.kiosco_id = $1
	  AND p.date     <= w.as_of
	ORDER BY l.product_id, p.date DESC, p.created_at DESC, l.line_no DESC`

	rows, err := r.q.Query(ctx, query, kioscoID, ids, limits)
	if err != nil {
		return nil, fmt.Errorf("costs.LatestCosts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			productID string
			cost      decimal.Decimal
		)
		if err := rows.Scan(&productID, &cost); err != nil {
			return nil, fmt.Errorf("costs.LatestCosts scan: %w", err)
		}
		out[productID] = cost
	}
	return out, rows.Err()
}
