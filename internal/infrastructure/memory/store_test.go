package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kiosco-api/internal/domain"
	"github.com/jhoicas/kiosco-api/internal/domain/entity"
	"github.com/jhoicas/kiosco-api/internal/domain/repository"
	"github.com/jhoicas/kiosco-api/internal/infrastructure/memory"
)

func seedProduct(t *testing.T, s *memory.Store, id, kiosco string, stock int) {
	t.Helper()
	require.NoError(t, s.Products().Create(context.Background(), &entity.Product{
		ID: id, KioscoID: kiosco, SKU: "SKU-" + id, Name: id,
		Cost: decimal.RequireFromString("0.40"), Price: decimal.NewFromInt(1), Stock: stock,
	}))
}

func TestRun_ErrorDescartaCambios(t *testing.T) {
	s := memory.NewStore()
	seedProduct(t, s, "a", "k1", 10)
	boom := errors.New("boom")

	err := s.Run(context.Background(), func(pr repository.ProductRepository, _ repository.PurchaseRepository, _ repository.SaleRepository) error {
		require.NoError(t, pr.UpdateStockAndCost(context.Background(), "a", 3, decimal.NewFromInt(1)))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	p, err := s.Products().GetByID(context.Background(), "k1", "a")
	require.NoError(t, err)
	assert.Equal(t, 10, p.Stock)
}

func TestRun_ContextoCanceladoNoConfirma(t *testing.T) {
	s := memory.NewStore()
	seedProduct(t, s, "a", "k1", 10)
	ctx, cancel := context.WithCancel(context.Background())

	err := s.Run(ctx, func(pr repository.ProductRepository, _ repository.PurchaseRepository, _ repository.SaleRepository) error {
		cancel()
		return pr.UpdateStockAndCost(ctx, "a", 0, decimal.NewFromInt(1))
	})
	assert.ErrorIs(t, err, context.Canceled)

	p, _ := s.Products().GetByID(context.Background(), "k1", "a")
	assert.Equal(t, 10, p.Stock)
}

func TestProductRepo_AislamientoPorKiosco(t *testing.T) {
	s := memory.NewStore()
	seedProduct(t, s, "a", "k1", 1)

	p, err := s.Products().GetByID(context.Background(), "k2", "a")
	require.NoError(t, err)
	assert.Nil(t, p)

	got, err := s.Products().GetManyForUpdate(context.Background(), "k2", []string{"a"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestProductRepo_SKUDuplicado(t *testing.T) {
	s := memory.NewStore()
	seedProduct(t, s, "a", "k1", 1)
	err := s.Products().Create(context.Background(), &entity.Product{ID: "b", KioscoID: "k1", SKU: "SKU-a"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCostRepo_UltimaCompraHastaLaFecha(t *testing.T) {
	s := memory.NewStore()
	seedProduct(t, s, "a", "k1", 0)
	day := func(d int) time.Time { return time.Date(2024, 3, d, 12, 0, 0, 0, time.UTC) }
	for i, c := range []struct {
		day  int
		cost string
	}{{1, "0.35"}, {5, "0.45"}} {
		require.NoError(t, s.Purchases().Create(context.Background(), &entity.Purchase{
			ID: []string{"p1", "p2"}[i], KioscoID: "k1", Date: day(c.day), CreatedAt: day(c.day),
			Lines: []entity.PurchaseLine{{ProductID: "a", Quantity: 10, UnitCost: decimal.RequireFromString(c.cost)}},
		}))
	}

	got, err := s.Costs().LatestCosts(context.Background(), "k1", map[string]time.Time{"a": day(3)})
	require.NoError(t, err)
	assert.Equal(t, "0.35", got["a"].String())

	got, err = s.Costs().LatestCosts(context.Background(), "k1", map[string]time.Time{"a": day(6)})
	require.NoError(t, err)
	assert.Equal(t, "0.45", got["a"].String())

	got, err = s.Costs().LatestCosts(context.Background(), "k1", map[string]time.Time{"a": time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	_, ok := got["a"]
	assert.False(t, ok)
}

func TestReportRepo_CategoriaDeOtroKioscoCuentaComoSinCategoria(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, s.Categories().Create(ctx, &entity.Category{ID: "cat-ajena", KioscoID: "k2", Name: "Bebidas"}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{
		ID: "a", KioscoID: "k1", SKU: "A", Name: "a", CategoryID: "cat-ajena", Price: decimal.NewFromInt(2),
	}))
	day := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.Sales().Create(ctx, &entity.Sale{
		ID: "s1", KioscoID: "k1", Date: day, CreatedAt: day, Total: decimal.NewFromInt(4),
		Lines: []entity.SaleLine{{ID: "l1", SaleID: "s1", ProductID: "a", Quantity: 2, UnitPrice: decimal.NewFromInt(2), Subtotal: decimal.NewFromInt(4)}},
	}))

	rows, err := s.Reports().SalesByCategory(ctx, "k1", day.Add(-time.Hour), day.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].CategoryID)
	assert.Equal(t, entity.UncategorizedName, rows[0].CategoryName)
	assert.True(t, rows[0].Revenue.Equal(decimal.NewFromInt(4)))
}
