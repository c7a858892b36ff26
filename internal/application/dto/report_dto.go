package dto

import "github.com/shopspring/decimal"

// ── Query parameters ──────────────────────────────────────────────────────────

// ReportRangeQuery parámetros comunes de los reportes.
type ReportRangeQuery struct {
	StartDate string `query:"start_date"` // YYYY-MM-DD; por defecto primer día del mes actual
	EndDate   string `query:"end_date"`   // YYYY-MM-DD; por defecto hoy
}

// TopProductsQuery parámetros de GET /api/reports/top-products.
type TopProductsQuery struct {
	ReportRangeQuery
	Limit    int `query:"limit"`     // top-N, acotado a [1,50]; default 10
	Page     int `query:"page"`      // default 1
	PageSize int `query:"page_size"` // default = limit
}

// ── KPIs ──────────────────────────────────────────────────────────────────────

// KPISummaryDTO indicadores del período.
type KPISummaryDTO struct {
	StartDate        string          `json:"start_date"`
	EndDate          string          `json:"end_date"`
	TransactionCount int             `json:"transaction_count"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`     // suma de totales de venta
	COGS             decimal.Decimal `json:"cogs"`              // Σ cantidad * costo histórico
	GrossMargin      decimal.Decimal `json:"gross_margin"`      // TotalRevenue - COGS
	MarginPercentage decimal.Decimal `json:"margin_percentage"` // GrossMargin / TotalRevenue * 100
}

// ── Por producto ──────────────────────────────────────────────────────────────

// TopProductDTO producto del ranking por unidades vendidas.
type TopProductDTO struct {
	Rank         int             `json:"rank"` // 1 = más vendido
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku"`
	ProductName  string          `json:"product_name"`
	QuantitySold int             `json:"quantity_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// ── Por día ───────────────────────────────────────────────────────────────────

// DailySalesDTO ingresos de un día (UTC).
type DailySalesDTO struct {
	Date             string          `json:"date"` // YYYY-MM-DD
	Revenue          decimal.Decimal `json:"revenue"`
	TransactionCount int             `json:"transaction_count"`
}

// ── Por categoría ─────────────────────────────────────────────────────────────

// CategoryProfitabilityDTO participación de una categoría en los ingresos del período.
type CategoryProfitabilityDTO struct {
	CategoryID      string          `json:"category_id"` // vacío = sin categoría
	CategoryName    string          `json:"category_name"`
	Revenue         decimal.Decimal `json:"revenue"`
	SharePercentage decimal.Decimal `json:"share_percentage"` // 0 si el total del período es 0
}
