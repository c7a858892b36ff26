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

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo compras y sus líneas sobre PostgreSQL. Las líneas conservan el orden de carga (line_no).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create inserta la cabecera y sus líneas. Debe ejecutarse dentro de la tx del libro de stock.
func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO purchases (id, kiosco_id, user_id, supplier, notes, date, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.KioscoID, p.UserID, p.Supplier, p.Notes, p.Date, p.Total, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	for i, l := range p.Lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO purchase_lines (id, purchase_id, line_no, product_id, quantity, unit_cost, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			l.ID, p.ID, i, l.ProductID, l.Quantity, l.UnitCost, l.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert purchase line %d: %w", i, err)
		}
	}
	return nil
}

const purchaseColumns = `id, kiosco_id, user_id, supplier, notes, date, total, created_at`

func scanPurchase(row pgx.Row) (*entity.Purchase, error) {
	var p entity.Purchase
	if err := row.Scan(&p.ID, &p.KioscoID, &p.UserID, &p.Supplier, &p.Notes, &p.Date, &p.Total, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID devuelve la compra con sus líneas o (nil, nil) si no existe en el kiosco.
func (r *PurchaseRepo) GetByID(ctx context.Context, kioscoID, id string) (*entity.Purchase, error) {
	p, err := scanPurchase(r.q.QueryRow(ctx,
		`SELECT `+purchaseColumns+` FROM purchases WHERE kiosco_id = $1 AND id = $2`, kioscoID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	if err := r.attachLines(ctx, []*entity.Purchase{p}); err != nil {
		return nil, err
	}
	return p, nil
}

// List compras del rango [from, to], fecha DESC e id DESC.
func (r *PurchaseRepo) List(ctx context.Context, kioscoID string, from, to time.Time, limit, offset int) ([]*entity.Purchase, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+purchaseColumns+`
		FROM purchases
		WHERE kiosco_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date DESC, id DESC
		LIMIT $4 OFFSET $5`,
		kioscoID, from, to, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	var list []*entity.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	if err := r.attachLines(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// Count total de compras del rango.
func (r *PurchaseRepo) Count(ctx context.Context, kioscoID string, from, to time.Time) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM purchases WHERE kiosco_id = $1 AND date BETWEEN $2 AND $3`,
		kioscoID, from, to,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count purchases: %w", err)
	}
	return n, nil
}

// attachLines carga las líneas de todas las compras en una sola consulta.
func (r *PurchaseRepo) attachLines(ctx context.Context, purchases []*entity.Purchase) error {
	if len(purchases) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Purchase, len(purchases))
	ids := make([]string, 0, len(purchases))
	for _, p := range purchases {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, purchase_id, product_id, quantity, unit_cost, subtotal
		FROM purchase_lines
		WHERE purchase_id = ANY($1::uuid[])
		ORDER BY purchase_id, line_no`, ids)
	if err != nil {
		return fmt.Errorf("list purchase lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.PurchaseLine
		if err := rows.Scan(&l.ID, &l.PurchaseID, &l.ProductID, &l.Quantity, &l.UnitCost, &l.Subtotal); err != nil {
			return fmt.Errorf("scan purchase line: %w", err)
		}
		p := byID[l.PurchaseID]
		p.Lines = append(p.Lines, l)
	}
	return rows.Err()
}
