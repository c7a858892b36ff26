package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/kiosco-api/internal/application/dto"
	"github.com/jhoicas/kiosco-api/pkg/logger"
	"github.com/jhoicas/kiosco-api/pkg/metrics"
	"github.com/jhoicas/kiosco-api/pkg/pagination"
)

const (
	KindKPIs                  = "kpis"
	KindTopProducts           = "top-products"
	KindSalesByDay            = "sales-by-day"
	KindCategoryProfitability = "category-profitability"
)

// Expiration ventanas del caché: la deslizante se renueva en cada acierto, la absoluta nunca.
type Expiration struct {
	Sliding  time.Duration
	Absolute time.Duration
}

// DefaultExpiration 30 minutos deslizante, 4 horas absoluta.
func DefaultExpiration() Expiration {
	return Expiration{Sliding: 30 * time.Minute, Absolute: 4 * time.Hour}
}

var _ Reporter = (*CachedReports)(nil)

// CachedReports sirve los reportes desde el caché y calcula con next en cada fallo.
// No hay invalidación por escritura: un reporte puede quedar desactualizado como máximo
// lo que dure su entrada. Los errores de cálculo nunca se guardan; los del caché se registran
// y el reporte se calcula igual. Con cache nil siempre calcula.
type CachedReports struct {
	next    Reporter
	cache   Cache
	exp     Expiration
	log     *logger.Logger
	metrics *metrics.Metrics
	limits  Limits
}

// NewCachedReports construye el decorador. limits debe coincidir con los del motor para que
// la clave use los parámetros ya acotados.
func NewCachedReports(next Reporter, cache Cache, exp Expiration, limits Limits, log *logger.Logger, m *metrics.Metrics) *CachedReports {
	if log == nil {
		log = logger.Nop()
	}
	return &CachedReports{
		next:    next,
		cache:   cache,
		exp:     exp,
		log:     log.Component("report_cache"),
		metrics: m,
		limits:  limits,
	}
}

// Key clave de una entrada: reports:<tipo>:<kiosco>:<día inicio>:<día fin>[:<extra>...].
func Key(kind, kioscoID string, r Range, extra ...string) string {
	key := fmt.Sprintf("reports:%s:%s:%s:%s", kind, kioscoID, r.StartDay(), r.EndDay())
	for _, e := range extra {
		key += ":" + e
	}
	return key
}

func (c *CachedReports) KPISummary(ctx context.Context, kioscoID string, r Range) (*dto.KPISummaryDTO, error) {
	return cached(ctx, c, KindKPIs, Key(KindKPIs, kioscoID, r), func(ctx context.Context) (*dto.KPISummaryDTO, error) {
		return c.next.KPISummary(ctx, kioscoID, r)
	})
}

func (c *CachedReports) TopProducts(ctx context.Context, kioscoID string, r Range, q TopQuery) (pagination.Page[dto.TopProductDTO], error) {
	q = q.Normalize(c.limits)
	key := Key(KindTopProducts, kioscoID, r,
		fmt.Sprintf("limit=%d", q.Limit), fmt.Sprintf("page=%d", q.Page), fmt.Sprintf("size=%d", q.PageSize))
	return cached(ctx, c, KindTopProducts, key, func(ctx context.Context) (pagination.Page[dto.TopProductDTO], error) {
		return c.next.TopProducts(ctx, kioscoID, r, q)
	})
}

func (c *CachedReports) SalesByDay(ctx context.Context, kioscoID string, r Range) ([]dto.DailySalesDTO, error) {
	return cached(ctx, c, KindSalesByDay, Key(KindSalesByDay, kioscoID, r), func(ctx context.Context) ([]dto.DailySalesDTO, error) {
		return c.next.SalesByDay(ctx, kioscoID, r)
	})
}

func (c *CachedReports) CategoryProfitability(ctx context.Context, kioscoID string, r Range) ([]dto.CategoryProfitabilityDTO, error) {
	return cached(ctx, c, KindCategoryProfitability, Key(KindCategoryProfitability, kioscoID, r), func(ctx context.Context) ([]dto.CategoryProfitabilityDTO, error) {
		return c.next.CategoryProfitability(ctx, kioscoID, r)
	})
}

// cached busca key; en un fallo calcula, serializa y guarda. El valor devuelto en un fallo se
// decodifica de los mismos bytes que se guardan, así hit y miss responden idéntico.
func cached[T any](ctx context.Context, c *CachedReports, kind, key string, compute func(context.Context) (T, error)) (T, error) {
	var zero T
	if c.cache != nil {
		raw, ok, err := c.cache.Get(ctx, key)
		switch {
		case err != nil:
			c.metrics.CacheError("get")
			c.log.Warn().Str("key", key).Err(err).Msg("caché no disponible; se calcula el reporte")
		case ok:
			var v T
			if err := json.Unmarshal(raw, &v); err == nil {
				c.metrics.CacheHit(kind)
				return v, nil
			}
			c.log.Warn().Str("key", key).Msg("entrada de caché ilegible; se recalcula")
		}
	}

	c.metrics.CacheMiss(kind)
	started := time.Now()
	v, err := compute(ctx)
	if err != nil {
		return zero, err
	}
	c.metrics.ObserveReport(kind, time.Since(started))
	if c.cache == nil {
		return v, nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return zero, fmt.Errorf("serializar reporte %s: %w", kind, err)
	}
	if err := c.cache.Set(ctx, key, raw, c.exp.Sliding, c.exp.Absolute); err != nil {
		c.metrics.CacheError("set")
		c.log.Warn().Str("key", key).Err(err).Msg("no se pudo guardar el reporte en caché")
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return v, nil
	}
	return out, nil
}
