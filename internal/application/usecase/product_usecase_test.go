package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kiosco-api/internal/application/dto"
	"github.com/jhoicas/kiosco-api/internal/application/usecase"
	"github.com/jhoicas/kiosco-api/internal/domain"
	"github.com/jhoicas/kiosco-api/internal/domain/entity"
	"github.com/jhoicas/kiosco-api/internal/infrastructure/memory"
)

const kiosco = "k-1"

func newUseCase(t *testing.T) (*usecase.ProductUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return usecase.NewProductUseCase(store.Products(), store.Categories(), usecase.PageLimits{Default: 10, Max: 10}), store
}

func createReq(sku string) dto.CreateProductRequest {
	return dto.CreateProductRequest{SKU: sku, Name: "Producto " + sku, Price: decimal.RequireFromString("1.50")}
}

func TestProductUseCase_CreaConStockCero(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	out, err := uc.Create(ctx, kiosco, createReq("A-1"))
	require.NoError(t, err)
	assert.Equal(t, 0, out.Stock)
	assert.Equal(t, kiosco, out.KioscoID)

	got, err := uc.GetByID(ctx, kiosco, out.ID)
	require.NoError(t, err)
	assert.Equal(t, "A-1", got.SKU)
}

func TestProductUseCase_SKUDuplicado(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()
	_, err := uc.Create(ctx, kiosco, createReq("A-1"))
	require.NoError(t, err)

	_, err = uc.Create(ctx, kiosco, createReq("A-1"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Otro kiosco puede reutilizar el SKU.
	_, err = uc.Create(ctx, "k-2", createReq("A-1"))
	assert.NoError(t, err)
}

func TestProductUseCase_CategoriaInexistente(t *testing.T) {
	uc, _ := newUseCase(t)
	req := createReq("A-1")
	req.CategoryID = uuid.NewString()

	_, err := uc.Create(context.Background(), kiosco, req)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "category_id", verr.Field)
}

func TestProductUseCase_OtroKioscoNoEncuentra(t *testing.T) {
	uc, _ := newUseCase(t)
	out, err := uc.Create(context.Background(), kiosco, createReq("A-1"))
	require.NoError(t, err)

	_, err = uc.GetByID(context.Background(), "k-2", out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_UpdateVacioEsValidacion(t *testing.T) {
	uc, _ := newUseCase(t)
	out, err := uc.Create(context.Background(), kiosco, createReq("A-1"))
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), kiosco, out.ID, dto.UpdateProductRequest{})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "body", verr.Field)
}

func TestProductUseCase_UpdateAplicaSoloCamposPresentes(t *testing.T) {
	uc, store := newUseCase(t)
	ctx := context.Background()
	require.NoError(t, store.Categories().Create(ctx, &entity.Category{ID: "cat-1", KioscoID: kiosco, Name: "Bebidas"}))

	out, err := uc.Create(ctx, kiosco, createReq("A-1"))
	require.NoError(t, err)

	price := decimal.RequireFromString("2.00")
	cat := "cat-1"
	upd, err := uc.Update(ctx, kiosco, out.ID, dto.UpdateProductRequest{Price: &price, CategoryID: &cat})
	require.NoError(t, err)
	assert.True(t, upd.Price.Equal(price))
	assert.Equal(t, "cat-1", upd.CategoryID)
	assert.Equal(t, out.Name, upd.Name)
	assert.Equal(t, out.SKU, upd.SKU)
}

func TestProductUseCase_UpdateSKUOcupado(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()
	_, err := uc.Create(ctx, kiosco, createReq("A-1"))
	require.NoError(t, err)
	b, err := uc.Create(ctx, kiosco, createReq("B-1"))
	require.NoError(t, err)

	sku := "A-1"
	_, err = uc.Update(ctx, kiosco, b.ID, dto.UpdateProductRequest{SKU: &sku})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductUseCase_ListAcotaTamañoDePagina(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()
	for i := 0; i < 12; i++ {
		_, err := uc.Create(ctx, kiosco, createReq(uuid.NewString()[:8]))
		require.NoError(t, err)
	}

	page, err := uc.List(ctx, kiosco, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, 10, page.PageSize)
	assert.Len(t, page.Items, 10)
	assert.Equal(t, 12, page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)

	second, err := uc.List(ctx, kiosco, 2, 0)
	require.NoError(t, err)
	assert.Len(t, second.Items, 2)

	beyond, err := uc.List(ctx, kiosco, 5, 10)
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)
	assert.NotNil(t, beyond.Items)
}
