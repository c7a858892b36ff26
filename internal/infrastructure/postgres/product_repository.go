package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kiosco-api/internal/domain"
	"github.com/jhoicas/kiosco-api/internal/domain/entity"
	"github.com/jhoicas/kiosco-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, kiosco_id, sku, name, COALESCE(category_id::TEXT, ''), cost, price, stock, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(&p.ID, &p.KioscoID, &p.SKU, &p.Name, &p.CategoryID, &p.Cost, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// nullable convierte "" en NULL para columnas opcionales.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Create persiste un nuevo producto. Stock inicia en 0.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, kiosco_id, sku, name, category_id, cost, price, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.KioscoID, product.SKU, product.Name, nullable(product.CategoryID),
		product.Cost, product.Price, product.Stock, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto del kiosco por ID.
func (r *ProductRepo) GetByID(ctx context.Context, kioscoID, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE kiosco_id = $1 AND id = $2`
	p, err := scanProduct(r.q.QueryRow(ctx, query, kioscoID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByKioscoAndSKU obtiene un producto por kiosco y SKU.
func (r *ProductRepo) GetByKioscoAndSKU(ctx context.Context, kioscoID, sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE kiosco_id = $1 AND sku = $2`
	p, err := scanProduct(r.q.QueryRow(ctx, query, kioscoID, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return p, nil
}

// Update actualiza los datos de catálogo. No toca Cost ni Stock (se manejan vía compras y ventas).
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET sku = $3, name = $4, category_id = $5, price = $6, updated_at = $7
		WHERE kiosco_id = $1 AND id = $2`
	cmd, err := r.q.Exec(ctx, query,
		product.KioscoID, product.ID, product.SKU, product.Name, nullable(product.CategoryID),
		product.Price, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByKiosco lista productos del kiosco, más recientes primero.
func (r *ProductRepo) ListByKiosco(ctx context.Context, kioscoID string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products WHERE kiosco_id = $1 ORDER BY seq DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, kioscoID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// CountByKiosco total de productos del kiosco.
func (r *ProductRepo) CountByKiosco(ctx context.Context, kioscoID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE kiosco_id = $1`, kioscoID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// GetManyForUpdate bloquea las filas con FOR UPDATE en orden de id para que dos transacciones
// concurrentes sobre los mismos productos no se bloqueen mutuamente.
// Un id que no es un UUID canónico no puede existir: queda fuera del resultado sin llegar a la consulta.
func (r *ProductRepo) GetManyForUpdate(ctx context.Context, kioscoID string, ids []string) (map[string]*entity.Product, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if isCanonicalUUID(id) {
			valid = append(valid, id)
		}
	}
	out := make(map[string]*entity.Product, len(valid))
	if len(valid) == 0 || !isCanonicalUUID(kioscoID) {
		return out, nil
	}

	query := `SELECT ` + productColumns + `
		FROM products WHERE kiosco_id = $1 AND id = ANY($2::uuid[])
		ORDER BY id
		FOR UPDATE`
	rows, err := r.q.Query(ctx, query, kioscoID, valid)
	if err != nil {
		return nil, fmt.Errorf("lock products: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out[p.ID] = p
	}
	return out, rows.Err()
}

// UpdateStockAndCost escribe stock y costo actual. El CHECK (stock >= 0) es la última barrera.
func (r *ProductRepo) UpdateStockAndCost(ctx context.Context, productID string, stock int, cost decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET stock = $2, cost = $3, updated_at = now() WHERE id = $1`,
		productID, stock, cost,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}
