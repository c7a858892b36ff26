package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kiosco-api/internal/domain/entity"
	"github.com/jhoicas/kiosco-api/internal/domain/repository"
)

var (
	_ repository.CostRepository   = (*CostRepo)(nil)
	_ repository.ReportRepository = (*ReportRepo)(nil)
)

// CostRepo historial de costos en memoria.
type CostRepo struct {
	b binding
}

type costHit struct {
	date      time.Time
	createdAt time.Time
	line      int
	cost      decimal.Decimal
}

func (h costHit) newerThan(o costHit) bool {
	if !h.date.Equal(o.date) {
		return h.date.After(o.date)
	}
	if !h.createdAt.Equal(o.createdAt) {
		return h.createdAt.After(o.createdAt)
	}
	return h.line > o.line
}

func (r *CostRepo) LatestCosts(_ context.Context, kioscoID string, asOf map[string]time.Time) (map[string]decimal.Decimal, error) {
	best := make(map[string]costHit, len(asOf))
	err := r.b.read(func(st *state) error {
		for _, p := range st.purchases {
			if p.KioscoID != kioscoID {
				continue
			}
			for i, l := range p.Lines {
				limit, ok := asOf[l.ProductID]
				if !ok || p.Date.After(limit) {
					continue
				}
				hit := costHit{date: p.Date, createdAt: p.CreatedAt, line: i, cost: l.UnitCost}
				if cur, seen := best[l.ProductID]; !seen || hit.newerThan(cur) {
					best[l.ProductID] = hit
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make(map[string]decimal.Decimal, len(best))
	for id, h := range best {
		out[id] = h.cost
	}
	return out, nil
}

// ReportRepo consultas de reportes en memoria.
type ReportRepo struct {
	b binding
}

func (r *ReportRepo) SalesTotals(_ context.Context, kioscoID string, start, end time.Time) (int, decimal.Decimal, error) {
	count, revenue := 0, decimal.Zero
	err := r.b.read(func(st *state) error {
		for _, s := range salesIn(st, kioscoID, start, end) {
			count++
			revenue = revenue.Add(s.Total)
		}
		return nil
	})
	return count, revenue, err
}

func (r *ReportRepo) ListSoldLines(_ context.Context, kioscoID string, start, end time.Time) ([]repository.SoldLine, error) {
	var out []repository.SoldLine
	err := r.b.read(func(st *state) error {
		sales := salesIn(st, kioscoID, start, end)
		sort.Slice(sales, func(i, j int) bool {
			if !sales[i].Date.Equal(sales[j].Date) {
				return sales[i].Date.Before(sales[j].Date)
			}
			return sales[i].ID < sales[j].ID
		})
		for _, s := range sales {
			for _, l := range s.Lines {
				out = append(out, repository.SoldLine{
					SaleID:      s.ID,
					SaleDate:    s.Date,
					ProductID:   l.ProductID,
					Quantity:    l.Quantity,
					Subtotal:    l.Subtotal,
					CurrentCost: st.products[l.ProductID].p.Cost,
				})
			}
		}
		return nil
	})
	return out, err
}

func (r *ReportRepo) ProductSales(_ context.Context, kioscoID string, start, end time.Time, limit int) ([]repository.ProductSalesRow, error) {
	var out []repository.ProductSalesRow
	err := r.b.read(func(st *state) error {
		agg := map[string]*repository.ProductSalesRow{}
		for _, s := range salesIn(st, kioscoID, start, end) {
			for _, l := range s.Lines {
				row, ok := agg[l.ProductID]
				if !ok {
					p := st.products[l.ProductID].p
					row = &repository.ProductSalesRow{ProductID: l.ProductID, SKU: p.SKU, ProductName: p.Name, Revenue: decimal.Zero}
					agg[l.ProductID] = row
				}
				row.Quantity += l.Quantity
				row.Revenue = row.Revenue.Add(l.Subtotal)
			}
		}
		for _, row := range agg {
			out = append(out, *row)
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].Quantity != out[j].Quantity {
				return out[i].Quantity > out[j].Quantity
			}
			si, sj := st.products[out[i].ProductID].seq, st.products[out[j].ProductID].seq
			if si != sj {
				return si < sj
			}
			return out[i].ProductID < out[j].ProductID
		})
		if limit > 0 && len(out) > limit {
			out = out[:limit]
		}
		return nil
	})
	return out, err
}

func (r *ReportRepo) SalesByDay(_ context.Context, kioscoID string, start, end time.Time) ([]repository.DailySalesRow, error) {
	var out []repository.DailySalesRow
	err := r.b.read(func(st *state) error {
		agg := map[time.Time]*repository.DailySalesRow{}
		for _, s := range salesIn(st, kioscoID, start, end) {
			u := s.Date.UTC()
			day := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
			row, ok := agg[day]
			if !ok {
				row = &repository.DailySalesRow{Day: day, Revenue: decimal.Zero}
				agg[day] = row
			}
			row.TransactionCount++
			for _, l := range s.Lines {
				row.Revenue = row.Revenue.Add(l.Subtotal)
			}
		}
		for _, row := range agg {
			out = append(out, *row)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
		return nil
	})
	return out, err
}

func (r *ReportRepo) SalesByCategory(_ context.Context, kioscoID string, start, end time.Time) ([]repository.CategorySalesRow, error) {
	var out []repository.CategorySalesRow
	err := r.b.read(func(st *state) error {
		agg := map[string]*repository.CategorySalesRow{}
		for _, s := range salesIn(st, kioscoID, start, end) {
			for _, l := range s.Lines {
				catID := st.products[l.ProductID].p.CategoryID
				name := entity.UncategorizedName
				if c, ok := st.categories[catID]; ok && catID != "" && c.KioscoID == kioscoID {
					name = c.Name
				} else {
					catID = ""
				}
				row, ok := agg[catID]
				if !ok {
					row = &repository.CategorySalesRow{CategoryID: catID, CategoryName: name, Revenue: decimal.Zero}
					agg[catID] = row
				}
				row.Revenue = row.Revenue.Add(l.Subtotal)
			}
		}
		for _, row := range agg {
			out = append(out, *row)
		}
		sort.Slice(out, func(i, j int) bool {
			if !out[i].Revenue.Equal(out[j].Revenue) {
				return out[i].Revenue.GreaterThan(out[j].Revenue)
			}
			return out[i].CategoryName < out[j].CategoryName
		})
		return nil
	})
	return out, err
}
