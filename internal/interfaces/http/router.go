package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/kiosco-api/internal/application/ledger"
	"github.com/jhoicas/kiosco-api/internal/application/reports"
	"github.com/jhoicas/kiosco-api/internal/application/usecase"
	"github.com/jhoicas/kiosco-api/pkg/logger"
	"github.com/jhoicas/kiosco-api/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName  string
	ProductUC    *usecase.ProductUseCase
	Ledger       *ledger.StockLedger
	Reports      reports.Reporter
	ReportLimits reports.Limits
	Exporters    []reports.Exporter
	Metrics      *metrics.Metrics
	Log          *logger.Logger
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Público
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	managers := RequireRole(RoleAdmin, RoleEncargado)
	anyRole := RequireRole(RoleAdmin, RoleEncargado, RoleVendedor)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Log.Component("products"))
	products.Post("/", managers, productHandler.Create)
	products.Get("/", anyRole, productHandler.List)
	products.Get("/:id", anyRole, productHandler.GetByID)
	products.Put("/:id", managers, productHandler.Update)

	// Purchases y sales (libro de stock)
	ledgerHandler := NewLedgerHandler(deps.Ledger, deps.ReportLimits.MaxRangeDays, deps.Log.Component("ledger"))
	purchases := api.Group("/purchases", managers)
	purchases.Post("/", ledgerHandler.CreatePurchase)
	purchases.Get("/", ledgerHandler.ListPurchases)
	purchases.Get("/:id", ledgerHandler.GetPurchase)

	sales := api.Group("/sales", anyRole)
	sales.Post("/", ledgerHandler.CreateSale)
	sales.Get("/", ledgerHandler.ListSales)
	sales.Get("/:id", ledgerHandler.GetSale)

	// Reports
	reportHandler := NewReportHandler(deps.Reports, deps.ReportLimits, deps.Log.Component("reports"), deps.Exporters...)
	rep := api.Group("/reports", managers)
	rep.Get("/kpis", reportHandler.KPIs)
	rep.Get("/top-products", reportHandler.TopProducts)
	rep.Get("/sales-by-day", reportHandler.SalesByDay)
	rep.Get("/category-profitability", reportHandler.CategoryProfitability)
	for _, name := range []string{ExportTopProducts, ExportSalesByDay, ExportCategoryProfitability} {
		rep.Get("/"+name+"/export", reportHandler.Export(name))
	}
}
