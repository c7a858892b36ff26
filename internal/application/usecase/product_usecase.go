package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/kiosco-api/internal/application/dto"
	"github.com/jhoicas/kiosco-api/internal/domain"
	"github.com/jhoicas/kiosco-api/internal/domain/entity"
	"github.com/jhoicas/kiosco-api/internal/domain/money"
	"github.com/jhoicas/kiosco-api/internal/domain/repository"
	"github.com/jhoicas/kiosco-api/pkg/pagination"
)

// PageLimits tamaño de página del catálogo.
type PageLimits struct {
	Default int
	Max     int
}

// ProductUseCase casos de uso del catálogo. Cost y Stock se manejan vía compras y ventas.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	limits     PageLimits
	now        func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categories repository.CategoryRepository, limits PageLimits) *ProductUseCase {
	if limits.Max < 1 {
		limits.Max = 10
	}
	if limits.Default < 1 || limits.Default > limits.Max {
		limits.Default = limits.Max
	}
	return &ProductUseCase{repo: repo, categories: categories, limits: limits, now: time.Now}
}

// Create crea un nuevo producto con stock 0. Cost es el costo de referencia hasta la primera compra.
func (uc *ProductUseCase) Create(ctx context.Context, kioscoID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	sku := strings.TrimSpace(in.SKU)
	existing, err := uc.repo.GetByKioscoAndSKU(ctx, kioscoID, sku)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "get product by sku", Err: err}
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.checkCategory(ctx, kioscoID, in.CategoryID); err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	product := &entity.Product{
		ID:         uuid.New().String(),
		KioscoID:   kioscoID,
		SKU:        sku,
		Name:       strings.TrimSpace(in.Name),
		CategoryID: in.CategoryID,
		Cost:       money.Round(in.Cost),
		Price:      money.Round(in.Price),
		Stock:      0,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, storeErr("create product", err)
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto del kiosco; ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, kioscoID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, kioscoID, id)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "get product", Err: err}
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update aplica los campos presentes. Un cuerpo sin campos es un error de validación.
func (uc *ProductUseCase) Update(ctx context.Context, kioscoID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	patch := entity.ProductPatch{Name: in.Name, SKU: in.SKU, CategoryID: in.CategoryID, Price: in.Price}
	if patch.IsEmpty() {
		return nil, &domain.ValidationError{Field: "body", Reason: "al menos un campo"}
	}
	if patch.Price != nil {
		if patch.Price.IsNegative() {
			return nil, &domain.ValidationError{Field: "price", Reason: "no puede ser negativo"}
		}
		rounded := money.Round(*patch.Price)
		patch.Price = &rounded
	}

	product, err := uc.repo.GetByID(ctx, kioscoID, id)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "get product", Err: err}
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if patch.SKU != nil && *patch.SKU != product.SKU {
		other, err := uc.repo.GetByKioscoAndSKU(ctx, kioscoID, *patch.SKU)
		if err != nil {
			return nil, &domain.PersistenceError{Op: "get product by sku", Err: err}
		}
		if other != nil {
			return nil, domain.ErrDuplicate
		}
	}
	if patch.CategoryID != nil {
		if err := uc.checkCategory(ctx, kioscoID, *patch.CategoryID); err != nil {
			return nil, err
		}
	}

	patch.Apply(product)
	product.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, storeErr("update product", err)
	}
	return toProductResponse(product), nil
}

// List lista productos del kiosco, más recientes primero. size se acota a [1, Max].
func (uc *ProductUseCase) List(ctx context.Context, kioscoID string, page, size int) (pagination.Page[dto.ProductResponse], error) {
	if page < 1 {
		page = 1
	}
	size = pagination.Clamp(size, uc.limits.Default, 1, uc.limits.Max)
	q := pagination.QueryFuncs[dto.ProductResponse]{
		CountFn: func(ctx context.Context) (int, error) {
			return uc.repo.CountByKiosco(ctx, kioscoID)
		},
		FetchFn: func(ctx context.Context, offset, limit int) ([]dto.ProductResponse, error) {
			list, err := uc.repo.ListByKiosco(ctx, kioscoID, limit, offset)
			if err != nil {
				return nil, err
			}
			items := make([]dto.ProductResponse, 0, len(list))
			for _, p := range list {
				items = append(items, *toProductResponse(p))
			}
			return items, nil
		},
	}
	out, err := pagination.Paginate[dto.ProductResponse](ctx, q, page, size)
	if err != nil {
		return out, storeErr("list products", err)
	}
	return out, nil
}

// checkCategory "" significa sin categoría; cualquier otro valor debe existir en el kiosco.
func (uc *ProductUseCase) checkCategory(ctx context.Context, kioscoID, categoryID string) error {
	if categoryID == "" {
		return nil
	}
	c, err := uc.categories.GetByID(ctx, kioscoID, categoryID)
	if err != nil {
		return &domain.PersistenceError{Op: "get category", Err: err}
	}
	if c == nil {
		return &domain.ValidationError{Field: "category_id", Reason: "categoría inexistente"}
	}
	return nil
}

func storeErr(op string, err error) error {
	if domain.IsBusiness(err) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &domain.PersistenceError{Op: op, Err: err}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:         p.ID,
		KioscoID:   p.KioscoID,
		SKU:        p.SKU,
		Name:       p.Name,
		CategoryID: p.CategoryID,
		Price:      p.Price,
		Cost:       p.Cost,
		Stock:      p.Stock,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
