package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/kiosco-api/internal/application/costing"
	"github.com/jhoicas/kiosco-api/internal/application/ledger"
	"github.com/jhoicas/kiosco-api/internal/application/reports"
	"github.com/jhoicas/kiosco-api/internal/application/usecase"
	"github.com/jhoicas/kiosco-api/internal/domain/repository"
	"github.com/jhoicas/kiosco-api/internal/infrastructure/cache"
	"github.com/jhoicas/kiosco-api/internal/infrastructure/export"
	"github.com/jhoicas/kiosco-api/internal/infrastructure/memory"
	"github.com/jhoicas/kiosco-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/kiosco-api/internal/interfaces/http"
	"github.com/jhoicas/kiosco-api/pkg/config"
	"github.com/jhoicas/kiosco-api/pkg/logger"
	"github.com/jhoicas/kiosco-api/pkg/metrics"
)

// storage puertos de persistencia de la app, sobre PostgreSQL o en memoria.
type storage struct {
	txRunner   ledger.TxRunner
	products   repository.ProductRepository
	categories repository.CategoryRepository
	purchases  repository.PurchaseRepository
	sales      repository.SaleRepository
	costs      repository.CostRepository
	reports    repository.ReportRepository
	close      func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET requerido")
	}

	ctx := context.Background()
	store := openStorage(ctx, cfg, log)
	defer store.close()

	m := metrics.New("kiosco")

	// Caché de reportes: en memoria por réplica o Redis compartido.
	var reportCache reports.Cache
	switch cfg.Cache.Backend {
	case "redis":
		reportCache = cache.NewRedisStore(cache.NewRedisClient(cfg.Redis), log.Component("cache"))
		log.Info().Str("addr", cfg.Redis.Addr).Msg("caché de reportes en Redis")
	default:
		reportCache = cache.NewMemoryStore(cache.WithMaxEntries(cfg.Cache.MaxMemoryEntries))
		log.Info().Int("max_entries", cfg.Cache.MaxMemoryEntries).Msg("caché de reportes en memoria")
	}

	limits := reports.Limits{
		TopDefault:   cfg.Reports.TopDefault,
		TopMin:       cfg.Reports.TopMin,
		TopMax:       cfg.Reports.TopMax,
		MaxRangeDays: cfg.Reports.MaxRangeDays,
	}
	stockLedger := ledger.NewStockLedger(store.txRunner, store.purchases, store.sales, log, ledger.WithMetrics(m))
	engine := reports.NewEngine(store.reports, costing.NewCostResolver(store.costs), limits)
	cachedReports := reports.NewCachedReports(engine, reportCache,
		reports.Expiration{Sliding: cfg.Cache.Sliding(), Absolute: cfg.Cache.Absolute()},
		limits, log, m)
	productUC := usecase.NewProductUseCase(store.products, store.categories, usecase.PageLimits{
		Default: cfg.Reports.CatalogPageDefault,
		Max:     cfg.Reports.CatalogPageMax,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Kiosco API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ServiceName:  cfg.App.Name,
		ProductUC:    productUC,
		Ledger:       stockLedger,
		Reports:      cachedReports,
		ReportLimits: limits,
		Exporters:    []reports.Exporter{export.NewPDFExporter(), export.NewXLSXExporter()},
		Metrics:      m,
		Log:          log,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStorage PostgreSQL si hay datos de conexión; si no, el store en memoria (solo desarrollo).
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) storage {
	if !cfg.DB.Configured() {
		if cfg.App.Env == "production" {
			log.Fatal().Msg("DATABASE_URL o DB_HOST requerido en production")
		}
		log.Warn().Msg("sin base de datos configurada: usando store en memoria")
		s := memory.NewStore()
		return storage{
			txRunner:   s,
			products:   s.Products(),
			categories: s.Categories(),
			purchases:  s.Purchases(),
			sales:      s.Sales(),
			costs:      s.Costs(),
			reports:    s.Reports(),
			close:      func() {},
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	return storage{
		txRunner:   postgres.NewTxRunner(pool, log.Component("postgres")),
		products:   postgres.NewProductRepository(pool),
		categories: postgres.NewCategoryRepository(pool),
		purchases:  postgres.NewPurchaseRepository(pool),
		sales:      postgres.NewSaleRepository(pool),
		costs:      postgres.NewCostRepository(pool),
		reports:    postgres.NewReportRepository(pool),
		close:      pool.Close,
	}
}
