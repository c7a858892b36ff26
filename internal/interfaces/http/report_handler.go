package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kiosco-api/internal/application/dto"
	"github.com/jhoicas/kiosco-api/internal/application/reports"
	"github.com/jhoicas/kiosco-api/internal/domain"
	"github.com/jhoicas/kiosco-api/pkg/logger"
)

// Reportes exportables.
const (
	ExportTopProducts           = "top-products"
	ExportSalesByDay            = "sales-by-day"
	ExportCategoryProfitability = "category-profitability"
)

// ReportHandler reportes de ventas y sus exportaciones (protegido).
type ReportHandler struct {
	reports   reports.Reporter
	limits    reports.Limits
	exporters map[string]reports.Exporter // por extensión: "pdf", "xlsx"
	now       func() time.Time
	log       *logger.Logger
}

// NewReportHandler construye el handler. Cada exporter se publica bajo su Extension().
func NewReportHandler(r reports.Reporter, limits reports.Limits, log *logger.Logger, exporters ...reports.Exporter) *ReportHandler {
	byExt := make(map[string]reports.Exporter, len(exporters))
	for _, e := range exporters {
		byExt[e.Extension()] = e
	}
	return &ReportHandler{reports: r, limits: limits, exporters: byExt, now: time.Now, log: log}
}

func (h *ReportHandler) parseRange(c *fiber.Ctx) (reports.Range, error) {
	var q dto.ReportRangeQuery
	if err := c.QueryParser(&q); err != nil {
		return reports.Range{}, &domain.ValidationError{Field: "query", Reason: "parámetros de consulta inválidos"}
	}
	return reports.ParseRange(q.StartDate, q.EndDate, h.now(), h.limits.MaxRangeDays)
}

func (h *ReportHandler) topQuery(c *fiber.Ctx) reports.TopQuery {
	return reports.TopQuery{
		Limit:    c.QueryInt("limit", 0),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 0),
	}
}

// KPIs godoc
// @Summary      Indicadores del período
// @Description  Cantidad de ventas, ingresos, costo de lo vendido con costo histórico y margen bruto.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Inicio del período (YYYY-MM-DD). Default: primer día del mes."
// @Param        end_date    query  string  false  "Fin del período (YYYY-MM-DD). Default: hoy."
// @Success      200  {object}  dto.KPISummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/kpis [get]
func (h *ReportHandler) KPIs(c *fiber.Ctx) error {
	kioscoID := GetKioscoID(c)
	if kioscoID == "" {
		return unauthorized(c)
	}
	r, err := h.parseRange(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.reports.KPISummary(c.Context(), kioscoID, r)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// TopProducts godoc
// @Summary      Productos más vendidos
// @Description  Ranking por unidades; limit se acota a [1,50]. Metadatos en el header X-Pagination.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Param        limit       query  int     false  "Top-N" default(10)
// @Param        page        query  int     false  "Página" default(1)
// @Param        page_size   query  int     false  "Tamaño de página (default = limit)"
// @Success      200  {array}   dto.TopProductDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/top-products [get]
func (h *ReportHandler) TopProducts(c *fiber.Ctx) error {
	kioscoID := GetKioscoID(c)
	if kioscoID == "" {
		return unauthorized(c)
	}
	r, err := h.parseRange(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	page, err := h.reports.TopProducts(c.Context(), kioscoID, r, h.topQuery(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	setPagination(c, page.Metadata())
	return c.JSON(page.Items)
}

// SalesByDay godoc
// @Summary      Ventas por día
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {array}   dto.DailySalesDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales-by-day [get]
func (h *ReportHandler) SalesByDay(c *fiber.Ctx) error {
	kioscoID := GetKioscoID(c)
	if kioscoID == "" {
		return unauthorized(c)
	}
	r, err := h.parseRange(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.reports.SalesByDay(c.Context(), kioscoID, r)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// CategoryProfitability godoc
// @Summary      Rentabilidad por categoría
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {array}   dto.CategoryProfitabilityDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/category-profitability [get]
func (h *ReportHandler) CategoryProfitability(c *fiber.Ctx) error {
	kioscoID := GetKioscoID(c)
	if kioscoID == "" {
		return unauthorized(c)
	}
	r, err := h.parseRange(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.reports.CategoryProfitability(c.Context(), kioscoID, r)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar reporte
// @Description  Descarga el reporte en PDF o XLSX con los mismos parámetros que su versión JSON.
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        report      path   string  true   "top-products | sales-by-day | category-profitability"
// @Param        format      query  string  false  "pdf | xlsx" default(pdf)
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/{report}/export [get]
func (h *ReportHandler) Export(report string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kioscoID := GetKioscoID(c)
		if kioscoID == "" {
			return unauthorized(c)
		}
		format := strings.ToLower(c.Query("format", "pdf"))
		exporter, ok := h.exporters[format]
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "UNSUPPORTED_FORMAT", Message: "formato no soportado: " + format,
			})
		}
		r, err := h.parseRange(c)
		if err != nil {
			return writeError(c, h.log, err)
		}
		table, err := h.table(c, report, kioscoID, r)
		if err != nil {
			return writeError(c, h.log, err)
		}
		raw, err := exporter.Export(table)
		if err != nil {
			return writeError(c, h.log, err)
		}
		filename := fmt.Sprintf("%s_%s_%s.%s", report, r.StartDay(), r.EndDay(), exporter.Extension())
		c.Set(fiber.HeaderContentType, exporter.ContentType())
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
		return c.Send(raw)
	}
}

func (h *ReportHandler) table(c *fiber.Ctx, report, kioscoID string, r reports.Range) (reports.Table, error) {
	ctx := c.Context()
	switch report {
	case ExportTopProducts:
		q := h.topQuery(c).Normalize(h.limits)
		q.Page, q.PageSize = 1, q.Limit
		page, err := h.reports.TopProducts(ctx, kioscoID, r, q)
		if err != nil {
			return reports.Table{}, err
		}
		return reports.TopProductsTable(r, page.Items), nil
	case ExportSalesByDay:
		days, err := h.reports.SalesByDay(ctx, kioscoID, r)
		if err != nil {
			return reports.Table{}, err
		}
		return reports.SalesByDayTable(r, days), nil
	case ExportCategoryProfitability:
		rows, err := h.reports.CategoryProfitability(ctx, kioscoID, r)
		if err != nil {
			return reports.Table{}, err
		}
		return reports.CategoryProfitabilityTable(r, rows), nil
	}
	return reports.Table{}, fmt.Errorf("reporte desconocido: %s", report)
}
