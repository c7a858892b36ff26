package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/kiosco-api/internal/domain/entity"
	"github.com/jhoicas/kiosco-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas y sus líneas sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la cabecera y sus líneas en orden.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (id, kiosco_id, user_id, date, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.KioscoID, s.UserID, s.Date, s.Total, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	for i, l := range s.Lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO sale_lines (id, sale_id, line_no, product_id, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			l.ID, s.ID, i, l.ProductID, l.Quantity, l.UnitPrice, l.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert sale line %d: %w", i, err)
		}
	}
	return nil
}

const saleColumns = `id, kiosco_id, user_id, date, total, created_at`

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	if err := row.Scan(&s.ID, &s.KioscoID, &s.UserID, &s.Date, &s.Total, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByID devuelve la venta con sus líneas o (nil, nil) si no existe en el kiosco.
func (r *SaleRepo) GetByID(ctx context.Context, kioscoID, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx,
		`SELECT `+saleColumns+` FROM sales WHERE kiosco_id = $1 AND id = $2`, kioscoID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if err := r.attachLines(ctx, []*entity.Sale{s}); err != nil {
		return nil, err
	}
	return s, nil
}

// List ventas del rango [from, to], fecha DESC e id DESC.
func (r *SaleRepo) List(ctx context.Context, kioscoID string, from, to time.Time, limit, offset int) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+saleColumns+`
		FROM sales
		WHERE kiosco_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date DESC, id DESC
		LIMIT $4 OFFSET $5`,
		kioscoID, from, to, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	if err := r.attachLines(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// Count total de ventas del rango.
func (r *SaleRepo) Count(ctx context.Context, kioscoID string, from, to time.Time) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM sales WHERE kiosco_id = $1 AND date BETWEEN $2 AND $3`,
		kioscoID, from, to,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count sales: %w", err)
	}
	return n, nil
}

func (r *SaleRepo) attachLines(ctx context.Context, sales []*entity.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Sale, len(sales))
	ids := make([]string, 0, len(sales))
	for _, s := range sales {
		byID[s.ID] = s
		ids = append(ids, s.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, sale_id, product_id, quantity, unit_price, subtotal
		FROM sale_lines
		WHERE sale_id = ANY($1::uuid[])
		ORDER BY sale_id, line_no`, ids)
	if err != nil {
		return fmt.Errorf("list sale lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return fmt.Errorf("scan sale line: %w", err)
		}
		s := byID[l.SaleID]
		s.Lines = append(s.Lines, l)
	}
	return rows.Err()
}
