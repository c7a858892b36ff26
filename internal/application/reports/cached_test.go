package reports_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kiosco-api/internal/application/dto"
	"github.com/jhoicas/kiosco-api/internal/application/reports"
	"github.com/jhoicas/kiosco-api/pkg/logger"
	"github.com/jhoicas/kiosco-api/pkg/pagination"
)

// countingReporter cuenta cálculos por tipo de reporte.
type countingReporter struct {
	mu    sync.Mutex
	calls map[string]int
	err   error
}

func newCounting() *countingReporter { return &countingReporter{calls: map[string]int{}} }

func (c *countingReporter) inc(kind string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[kind]++
}

func (c *countingReporter) count(kind string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[kind]
}

func (c *countingReporter) KPISummary(_ context.Context, _ string, r reports.Range) (*dto.KPISummaryDTO, error) {
	c.inc(reports.KindKPIs)
	if c.err != nil {
		return nil, c.err
	}
	return &dto.KPISummaryDTO{
		StartDate: r.StartDay(), EndDate: r.EndDay(), TransactionCount: 3,
		TotalRevenue: decimal.RequireFromString("12.50"), COGS: decimal.RequireFromString("4.20"),
		GrossMargin: decimal.RequireFromString("8.30"), MarginPercentage: decimal.RequireFromString("66.40"),
	}, nil
}

func (c *countingReporter) TopProducts(_ context.Context, _ string, _ reports.Range, q reports.TopQuery) (pagination.Page[dto.TopProductDTO], error) {
	c.inc(reports.KindTopProducts)
	items := pagination.Slice[dto.TopProductDTO]{{Rank: 1, ProductID: "a", QuantitySold: 4, TotalRevenue: decimal.NewFromInt(4)}}
	return pagination.Paginate[dto.TopProductDTO](context.Background(), items, q.Page, q.PageSize)
}

func (c *countingReporter) SalesByDay(context.Context, string, reports.Range) ([]dto.DailySalesDTO, error) {
	c.inc(reports.KindSalesByDay)
	return []dto.DailySalesDTO{}, nil
}

func (c *countingReporter) CategoryProfitability(context.Context, string, reports.Range) ([]dto.CategoryProfitabilityDTO, error) {
	c.inc(reports.KindCategoryProfitability)
	return []dto.CategoryProfitabilityDTO{{CategoryName: "Bebidas", Revenue: decimal.Zero, SharePercentage: decimal.Zero}}, nil
}

// mapCache caché mínimo en memoria sin expiración.
type mapCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	sliding time.Duration
	getErr  error
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (m *mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mapCache) Set(_ context.Context, key string, value []byte, sliding, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.sliding = sliding
	return nil
}

func newCached(next reports.Reporter, c reports.Cache) *reports.CachedReports {
	return reports.NewCachedReports(next, c, reports.DefaultExpiration(), reports.DefaultLimits(), logger.Nop(), nil)
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestCachedReports_SegundaLlamadaNoRecalculaYEsIdentica(t *testing.T) {
	next := newCounting()
	cache := newMapCache()
	c := newCached(next, cache)
	r := rng(t, 1, 5)

	first, err := c.KPISummary(context.Background(), kiosco, r)
	require.NoError(t, err)
	second, err := c.KPISummary(context.Background(), kiosco, r)
	require.NoError(t, err)

	assert.Equal(t, 1, next.count(reports.KindKPIs))
	assert.Equal(t, mustJSON(t, first), mustJSON(t, second))
	assert.Equal(t, 30*time.Minute, cache.sliding)
}

func TestCachedReports_ClaveIncluyeParametros(t *testing.T) {
	next := newCounting()
	c := newCached(next, newMapCache())
	ctx := context.Background()

	_, err := c.TopProducts(ctx, kiosco, rng(t, 1, 5), reports.TopQuery{Limit: 5})
	require.NoError(t, err)
	_, err = c.TopProducts(ctx, kiosco, rng(t, 1, 5), reports.TopQuery{Limit: 5})
	require.NoError(t, err)
	_, err = c.TopProducts(ctx, kiosco, rng(t, 1, 5), reports.TopQuery{Limit: 6})
	require.NoError(t, err)
	_, err = c.TopProducts(ctx, "otro-kiosco", rng(t, 1, 5), reports.TopQuery{Limit: 5})
	require.NoError(t, err)
	_, err = c.TopProducts(ctx, kiosco, rng(t, 2, 5), reports.TopQuery{Limit: 5})
	require.NoError(t, err)

	assert.Equal(t, 4, next.count(reports.KindTopProducts))
}

func TestCachedReports_ErrorNoSeGuarda(t *testing.T) {
	next := newCounting()
	next.err = errors.New("db caída")
	cache := newMapCache()
	c := newCached(next, cache)

	_, err := c.KPISummary(context.Background(), kiosco, rng(t, 1, 5))
	assert.Error(t, err)
	_, err = c.KPISummary(context.Background(), kiosco, rng(t, 1, 5))
	assert.Error(t, err)

	assert.Equal(t, 2, next.count(reports.KindKPIs))
	assert.Empty(t, cache.data)
}

func TestCachedReports_CacheCaidoCalculaIgual(t *testing.T) {
	next := newCounting()
	cache := newMapCache()
	cache.getErr = errors.New("redis: connection refused")
	c := newCached(next, cache)

	got, err := c.CategoryProfitability(context.Background(), kiosco, rng(t, 1, 5))
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 1, next.count(reports.KindCategoryProfitability))
}

func TestCachedReports_SinCacheSiempreCalcula(t *testing.T) {
	next := newCounting()
	c := newCached(next, nil)

	for i := 0; i < 3; i++ {
		_, err := c.SalesByDay(context.Background(), kiosco, rng(t, 1, 5))
		require.NoError(t, err)
	}
	assert.Equal(t, 3, next.count(reports.KindSalesByDay))
}

func TestKey_Formato(t *testing.T) {
	r := rng(t, 1, 5)
	assert.Equal(t, "reports:kpis:k-1:2024-03-01:2024-03-05", reports.Key(reports.KindKPIs, kiosco, r))
	assert.Equal(t, "reports:top-products:k-1:2024-03-01:2024-03-05:limit=5", reports.Key(reports.KindTopProducts, kiosco, r, "limit=5"))
}
