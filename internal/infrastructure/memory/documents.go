package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/kiosco-api/internal/domain"
	"github.com/jhoicas/kiosco-api/internal/domain/entity"
	"github.com/jhoicas/kiosco-api/internal/domain/repository"
)

var (
	_ repository.PurchaseRepository = (*PurchaseRepo)(nil)
	_ repository.SaleRepository     = (*SaleRepo)(nil)
)

// PurchaseRepo compras en memoria.
type PurchaseRepo struct {
	b binding
}

func (r *PurchaseRepo) Create(_ context.Context, p *entity.Purchase) error {
	return r.b.write(func(st *state) error {
		if _, ok := st.purchases[p.ID]; ok {
			return domain.ErrDuplicate
		}
		cp := *p
		cp.Lines = append([]entity.PurchaseLine(nil), p.Lines...)
		st.purchases[p.ID] = cp
		return nil
	})
}

func (r *PurchaseRepo) GetByID(_ context.Context, kioscoID, id string) (*entity.Purchase, error) {
	var out *entity.Purchase
	err := r.b.read(func(st *state) error {
		if p, ok := st.purchases[id]; ok && p.KioscoID == kioscoID {
			p.Lines = append([]entity.PurchaseLine(nil), p.Lines...)
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *PurchaseRepo) List(_ context.Context, kioscoID string, from, to time.Time, limit, offset int) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	err := r.b.read(func(st *state) error {
		list := r.filter(st, kioscoID, from, to)
		sort.Slice(list, func(i, j int) bool {
			if !list[i].Date.Equal(list[j].Date) {
				return list[i].Date.After(list[j].Date)
			}
			return list[i].ID > list[j].ID
		})
		for i := offset; i < len(list) && i < offset+limit; i++ {
			p := list[i]
			p.Lines = append([]entity.PurchaseLine(nil), p.Lines...)
			out = append(out, &p)
		}
		return nil
	})
	return out, err
}

func (r *PurchaseRepo) Count(_ context.Context, kioscoID string, from, to time.Time) (int, error) {
	var n int
	err := r.b.read(func(st *state) error {
		n = len(r.filter(st, kioscoID, from, to))
		return nil
	})
	return n, err
}

func (r *PurchaseRepo) filter(st *state, kioscoID string, from, to time.Time) []entity.Purchase {
	var list []entity.Purchase
	for _, p := range st.purchases {
		if p.KioscoID == kioscoID && within(p.Date, from, to) {
			list = append(list, p)
		}
	}
	return list
}

// SaleRepo ventas en memoria.
type SaleRepo struct {
	b binding
}

func (r *SaleRepo) Create(_ context.Context, s *entity.Sale) error {
	return r.b.write(func(st *state) error {
		if _, ok := st.sales[s.ID]; ok {
			return domain.ErrDuplicate
		}
		cp := *s
		cp.Lines = append([]entity.SaleLine(nil), s.Lines...)
		st.sales[s.ID] = cp
		return nil
	})
}

func (r *SaleRepo) GetByID(_ context.Context, kioscoID, id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.b.read(func(st *state) error {
		if s, ok := st.sales[id]; ok && s.KioscoID == kioscoID {
			s.Lines = append([]entity.SaleLine(nil), s.Lines...)
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *SaleRepo) List(_ context.Context, kioscoID string, from, to time.Time, limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	err := r.b.read(func(st *state) error {
		list := salesIn(st, kioscoID, from, to)
		sort.Slice(list, func(i, j int) bool {
			if !list[i].Date.Equal(list[j].Date) {
				return list[i].Date.After(list[j].Date)
			}
			return list[i].ID > list[j].ID
		})
		for i := offset; i < len(list) && i < offset+limit; i++ {
			s := list[i]
			s.Lines = append([]entity.SaleLine(nil), s.Lines...)
			out = append(out, &s)
		}
		return nil
	})
	return out, err
}

func (r *SaleRepo) Count(_ context.Context, kioscoID string, from, to time.Time) (int, error) {
	var n int
	err := r.b.read(func(st *state) error {
		n = len(salesIn(st, kioscoID, from, to))
		return nil
	})
	return n, err
}

func salesIn(st *state, kioscoID string, from, to time.Time) []entity.Sale {
	var list []entity.Sale
	for _, s := range st.sales {
		if s.KioscoID == kioscoID && within(s.Date, from, to) {
			list = append(list, s)
		}
	}
	return list
}
