// Package reports calcula los reportes de ventas (KPIs, top de productos, ventas por día y
// rentabilidad por categoría) y los sirve detrás de un caché con expiración.
package reports

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kiosco-api/internal/application/costing"
	"github.com/jhoicas/kiosco-api/internal/application/dto"
	"github.com/jhoicas/kiosco-api/internal/domain"
	"github.com/jhoicas/kiosco-api/internal/domain/money"
	"github.com/jhoicas/kiosco-api/internal/domain/repository"
	"github.com/jhoicas/kiosco-api/pkg/pagination"
)

// Limits límites configurables del top de productos y del rango de fechas.
type Limits struct {
	TopDefault   int
	TopMin       int
	TopMax       int
	MaxRangeDays int
}

// DefaultLimits valores documentados: top-N en [1,50] con 10 por defecto, rango de hasta 366 días.
func DefaultLimits() Limits {
	return Limits{TopDefault: 10, TopMin: 1, TopMax: 50, MaxRangeDays: 366}
}

// TopQuery parámetros del top de productos. Ceros toman los valores por defecto.
type TopQuery struct {
	Limit    int
	Page     int
	PageSize int
}

// Normalize acota Limit a [TopMin, TopMax]; PageSize por defecto es el límite.
func (q TopQuery) Normalize(l Limits) TopQuery {
	q.Limit = pagination.Clamp(q.Limit, l.TopDefault, l.TopMin, l.TopMax)
	if q.Page <= 0 {
		q.Page = 1
	}
	q.PageSize = pagination.Clamp(q.PageSize, q.Limit, 1, l.TopMax)
	return q
}

var _ Reporter = (*Engine)(nil)

// Engine calcula los reportes a partir del repositorio de lectura y del resolver de costos.
// Es read-only y sin estado; el contexto se revisa antes de cada consulta al almacenamiento.
type Engine struct {
	repo   repository.ReportRepository
	costs  *costing.CostResolver
	limits Limits
}

// NewEngine construye el motor de reportes.
func NewEngine(repo repository.ReportRepository, costs *costing.CostResolver, limits Limits) *Engine {
	return &Engine{repo: repo, costs: costs, limits: limits}
}

// Limits límites con los que se construyó el motor.
func (e *Engine) Limits() Limits { return e.limits }

// KPISummary cantidad de ventas, ingresos, COGS con costo histórico y margen bruto.
// El costo de cada línea sale del resolver (fecha de la venta) o, si no hay compra previa,
// del costo actual del producto.
func (e *Engine) KPISummary(ctx context.Context, kioscoID string, r Range) (*dto.KPISummaryDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	count, revenue, err := e.repo.SalesTotals(ctx, kioscoID, r.Start, r.End)
	if err != nil {
		return nil, storeErr("sales totals", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	lines, err := e.repo.ListSoldLines(ctx, kioscoID, r.Start, r.End)
	if err != nil {
		return nil, storeErr("sold lines", err)
	}

	observations := make([]costing.Observation, 0, len(lines))
	for _, l := range lines {
		observations = append(observations, costing.Observation{ProductID: l.ProductID, AsOf: l.SaleDate})
	}
	historical, err := e.costs.ResolveHistoricalCosts(ctx, kioscoID, observations)
	if err != nil {
		return nil, err
	}

	// ── COGS ──────────────────────────────────────────────────────────────────
	cogs := decimal.Zero
	for _, l := range lines {
		unit, ok := historical[l.ProductID]
		if !ok {
			unit = l.CurrentCost
		}
		cogs = cogs.Add(unit.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}

	revenue = money.Round(revenue)
	cogs = money.Round(cogs)
	margin := revenue.Sub(cogs)
	return &dto.KPISummaryDTO{
		StartDate:        r.StartDay(),
		EndDate:          r.EndDay(),
		TransactionCount: count,
		TotalRevenue:     revenue,
		COGS:             cogs,
		GrossMargin:      margin,
		MarginPercentage: money.Share(margin, revenue),
	}, nil
}

// TopProducts ranking por unidades vendidas (desempate por orden de alta del producto),
// recortado a q.Limit y paginado.
func (e *Engine) TopProducts(ctx context.Context, kioscoID string, r Range, q TopQuery) (pagination.Page[dto.TopProductDTO], error) {
	q = q.Normalize(e.limits)
	if err := ctx.Err(); err != nil {
		return pagination.Page[dto.TopProductDTO]{}, err
	}
	rows, err := e.repo.ProductSales(ctx, kioscoID, r.Start, r.End, q.Limit)
	if err != nil {
		return pagination.Page[dto.TopProductDTO]{}, storeErr("product sales", err)
	}

	ranked := make(pagination.Slice[dto.TopProductDTO], 0, len(rows))
	for i, row := range rows {
		ranked = append(ranked, dto.TopProductDTO{
			Rank:         i + 1,
			ProductID:    row.ProductID,
			SKU:          row.SKU,
			ProductName:  row.ProductName,
			QuantitySold: row.Quantity,
			TotalRevenue: money.Round(row.Revenue),
		})
	}
	return pagination.Paginate[dto.TopProductDTO](ctx, ranked, q.Page, q.PageSize)
}

// SalesByDay ingresos por día calendario UTC, ascendente. Solo aparecen los días con ventas.
func (e *Engine) SalesByDay(ctx context.Context, kioscoID string, r Range) ([]dto.DailySalesDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := e.repo.SalesByDay(ctx, kioscoID, r.Start, r.End)
	if err != nil {
		return nil, storeErr("sales by day", err)
	}
	out := make([]dto.DailySalesDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.DailySalesDTO{
			Date:             row.Day.UTC().Format(dayLayout),
			Revenue:          money.Round(row.Revenue),
			TransactionCount: row.TransactionCount,
		})
	}
	return out, nil
}

// CategoryProfitability ingresos por categoría y su participación porcentual (2 decimales).
// Con ingresos totales en 0 todas las participaciones son 0.
func (e *Engine) CategoryProfitability(ctx context.Context, kioscoID string, r Range) ([]dto.CategoryProfitabilityDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := e.repo.SalesByCategory(ctx, kioscoID, r.Start, r.End)
	if err != nil {
		return nil, storeErr("sales by category", err)
	}
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Revenue)
	}
	out := make([]dto.CategoryProfitabilityDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.CategoryProfitabilityDTO{
			CategoryID:      row.CategoryID,
			CategoryName:    row.CategoryName,
			Revenue:         money.Round(row.Revenue),
			SharePercentage: money.Share(row.Revenue, total),
		})
	}
	return out, nil
}

func storeErr(op string, err error) error {
	if domain.IsBusiness(err) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &domain.PersistenceError{Op: op, Err: err}
}
