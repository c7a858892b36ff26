package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kiosco-api/internal/domain/entity"
	"github.com/jhoicas/kiosco-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para los reportes de ventas.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// SalesTotals cantidad de ventas y suma de sus totales.
// Usa COALESCE para devolver cero si no hay filas (período sin ventas).
func (r *ReportRepo) SalesTotals(ctx context.Context, kioscoID string, start, end time.Time) (int, decimal.Decimal, error) {
	const query = `
	SELECT
	    COUNT(*)                  AS transaction_count,
	    COALESCE(SUM(s.total), 0) AS revenue
	FROM sales s
	WHERE s.kiosco_id = $1
	  AND s.date BETWEEN $2 AND $3`

	var (
		count   int
		revenue decimal.Decimal
	)
	if err := r.q.QueryRow(ctx, query, kioscoID, start, end).Scan(&count, &revenue); err != nil {
		return 0, decimal.Zero, fmt.Errorf("reports.SalesTotals: %w", err)
	}
	return count, revenue, nil
}

// ListSoldLines líneas vendidas con la fecha de la venta y el costo actual del producto.
func (r *ReportRepo) ListSoldLines(ctx context.Context, kioscoID string, start, end time.Time) ([]repository.SoldLine, error) {
	const query = `
	SELECT
	    s.id::TEXT,
	    s.date,
	    d.product_id::TEXT,
	    d.quantity,
	    d.subtotal,
	    p.cost
	FROM sales s
	JOIN sale_lines d ON d.sale_id = s.id
	JOIN products   p ON p.id      = d.product_id
	WHERE s.kiosco_id = $1
	  AND s.date BETWEEN $2 AND $3
	ORDER BY s.date, s.id, d.line_no`

	rows, err := r.q.Query(ctx, query, kioscoID, start, end)
	if err != nil {
		return nil, fmt.Errorf("reports.ListSoldLines: %w", err)
	}
	defer rows.Close()

	var results []repository.SoldLine
	for rows.Next() {
		var l repository.SoldLine
		if err := rows.Scan(&l.SaleID, &l.SaleDate, &l.ProductID, &l.Quantity, &l.Subtotal, &l.CurrentCost); err != nil {
			return nil, fmt.Errorf("reports.ListSoldLines scan: %w", err)
		}
		results = append(results, l)
	}
	return results, rows.Err()
}

// ProductSales unidades e ingresos por producto. Desempata por orden de alta (seq).
// limit <= 0 no recorta.
func (r *ReportRepo) ProductSales(ctx context.Context, kioscoID string, start, end time.Time, limit int) ([]repository.ProductSalesRow, error) {
	const query = `
	SELECT
	    p.id::TEXT      AS product_id,
	    p.sku,
	    p.name          AS product_name,
	    SUM(d.quantity) AS quantity_sold,
	    SUM(d.subtotal) AS total_revenue
	FROM sale_lines d
	JOIN sales    s ON s.id = d.sale_id
	JOIN products p ON p.id = d.product_id
	WHERE s.kiosco_id = $1
	  AND s.date BETWEEN $2 AND $3
	GROUP BY p.id, p.sku, p.name, p.seq
	ORDER BY quantity_sold DESC, p.seq ASC
	LIMIT NULLIF($4, 0)`

	if limit < 0 {
		limit = 0
	}
	rows, err := r.q.Query(ctx, query, kioscoID, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("reports.ProductSales: %w", err)
	}
	defer rows.Close()

	var results []repository.ProductSalesRow
	for rows.Next() {
		var row repository.ProductSalesRow
		if err := rows.Scan(&row.ProductID, &row.SKU, &row.ProductName, &row.Quantity, &row.Revenue); err != nil {
			return nil, fmt.Errorf("reports.ProductSales scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// SalesByDay ingresos y cantidad de ventas por día calendario UTC, ascendente.
func (r *ReportRepo) SalesByDay(ctx context.Context, kioscoID string, start, end time.Time) ([]repository.DailySalesRow, error) {
	const query = `
	SELECT
	    date_trunc('day', s.date AT TIME ZONE 'UTC') AS day,
	    SUM(d.subtotal)                              AS revenue,
	    COUNT(DISTINCT s.id)                         AS transaction_count
	FROM sales s
	JOIN sale_lines d ON d.sale_id = s.id
	WHERE s.kiosco_id = $1
	  AND s.date BETWEEN $2 AND $3
	GROUP BY day
	ORDER BY day`

	rows, err := r.q.Query(ctx, query, kioscoID, start, end)
	if err != nil {
		return nil, fmt.Errorf("reports.SalesByDay: %w", err)
	}
	defer rows.Close()

	var results []repository.DailySalesRow
	for rows.Next() {
		var row repository.DailySalesRow
		if err := rows.Scan(&row.Day, &row.Revenue, &row.TransactionCount); err != nil {
			return nil, fmt.Errorf("reports.SalesByDay scan: %w", err)
		}
		d := row.Day
		row.Day = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		results = append(results, row)
	}
	return results, rows.Err()
}

// SalesByCategory ingresos por categoría; los productos sin categoría se agrupan aparte.
func (r *ReportRepo) SalesByCategory(ctx context.Context, kioscoID string, start, end time.Time) ([]repository.CategorySalesRow, error) {
	const query = `
	SELECT
	    COALESCE(c.id::TEXT, '') AS category_id,
	    COALESCE(c.name, $4)     AS category_name,
	    SUM(d.subtotal)          AS revenue
	FROM sale_lines d
	JOIN sales      s ON s.id = d.sale_id
	JOIN products   p ON p.id = d.product_id
	LEFT JOIN categories c ON c.id = p.category_id AND c.kiosco_id = s.kiosco_id
	WHERE s.kiosco_id = $1
	  AND s.date BETWEEN $2 AND $3
	GROUP BY c.id, c.name
	ORDER BY revenue DESC, category_name`

	rows, err := r.q.Query(ctx, query, kioscoID, start, end, entity.UncategorizedName)
	if err != nil {
		return nil, fmt.Errorf("reports.SalesByCategory: %w", err)
	}
	defer rows.Close()

	var results []repository.CategorySalesRow
	for rows.Next() {
		var row repository.CategorySalesRow
		if err := rows.Scan(&row.CategoryID, &row.CategoryName, &row.Revenue); err != nil {
			return nil, fmt.Errorf("reports.SalesByCategory scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
