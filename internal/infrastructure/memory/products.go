package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kiosco-api/internal/domain"
	"github.com/jhoicas/kiosco-api/internal/domain/entity"
	"github.com/jhoicas/kiosco-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct {
	b binding
}

func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	return r.b.write(func(st *state) error {
		if _, ok := st.products[product.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, row := range st.products {
			if row.p.KioscoID == product.KioscoID && row.p.SKU == product.SKU {
				return domain.ErrDuplicate
			}
		}
		st.seq++
		st.products[product.ID] = productRow{p: *product, seq: st.seq}
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, kioscoID, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.b.read(func(st *state) error {
		if row, ok := st.products[id]; ok && row.p.KioscoID == kioscoID {
			p := row.p
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) GetByKioscoAndSKU(_ context.Context, kioscoID, sku string) (*entity.Product, error) {
	var out *entity.Product
	err := r.b.read(func(st *state) error {
		for _, row := range st.products {
			if row.p.KioscoID == kioscoID && row.p.SKU == sku {
				p := row.p
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

// Update no toca costo ni stock.
func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	return r.b.write(func(st *state) error {
		row, ok := st.products[product.ID]
		if !ok || row.p.KioscoID != product.KioscoID {
			return domain.ErrNotFound
		}
		for id, other := range st.products {
			if id != product.ID && other.p.KioscoID == product.KioscoID && other.p.SKU == product.SKU {
				return domain.ErrDuplicate
			}
		}
		row.p.Name = product.Name
		row.p.SKU = product.SKU
		row.p.CategoryID = product.CategoryID
		row.p.Price = product.Price
		row.p.UpdatedAt = product.UpdatedAt
		st.products[product.ID] = row
		return nil
	})
}

// ListByKiosco ordena por fecha de alta DESC como la implementación SQL.
func (r *ProductRepo) ListByKiosco(_ context.Context, kioscoID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.b.read(func(st *state) error {
		rows := kioscoProducts(st, kioscoID)
		sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })
		for i := offset; i < len(rows) && i < offset+limit; i++ {
			p := rows[i].p
			out = append(out, &p)
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) CountByKiosco(_ context.Context, kioscoID string) (int, error) {
	var n int
	err := r.b.read(func(st *state) error {
		n = len(kioscoProducts(st, kioscoID))
		return nil
	})
	return n, err
}

// GetManyForUpdate dentro de Run el bloqueo lo da la serialización de transacciones del store.
func (r *ProductRepo) GetManyForUpdate(_ context.Context, kioscoID string, ids []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product, len(ids))
	err := r.b.read(func(st *state) error {
		for _, id := range ids {
			if row, ok := st.products[id]; ok && row.p.KioscoID == kioscoID {
				p := row.p
				out[id] = &p
			}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) UpdateStockAndCost(_ context.Context, productID string, stock int, cost decimal.Decimal) error {
	return r.b.write(func(st *state) error {
		row, ok := st.products[productID]
		if !ok {
			return domain.ErrNotFound
		}
		if stock < 0 {
			return domain.ErrInsufficientStock
		}
		row.p.Stock = stock
		row.p.Cost = cost
		row.p.UpdatedAt = time.Now().UTC()
		st.products[productID] = row
		return nil
	})
}

func kioscoProducts(st *state, kioscoID string) []productRow {
	var rows []productRow
	for _, row := range st.products {
		if row.p.KioscoID == kioscoID {
			rows = append(rows, row)
		}
	}
	return rows
}

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo categorías en memoria.
type CategoryRepo struct {
	b binding
}

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	return r.b.write(func(st *state) error {
		if _, ok := st.categories[c.ID]; ok {
			return domain.ErrDuplicate
		}
		st.categories[c.ID] = *c
		return nil
	})
}

func (r *CategoryRepo) GetByID(_ context.Context, kioscoID, id string) (*entity.Category, error) {
	var out *entity.Category
	err := r.b.read(func(st *state) error {
		if c, ok := st.categories[id]; ok && c.KioscoID == kioscoID {
			out = &c
		}
		return nil
	})
	return out, err
}
