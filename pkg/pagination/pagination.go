// Package pagination corta cualquier consulta ordenada en páginas y reporta totales.
package pagination

import (
	"context"
	"errors"
)

// ErrInvalidPage número o tamaño de página menor que 1.
var ErrInvalidPage = errors.New("pageNumber y pageSize deben ser >= 1")

// Query fuente ordenada. El orden debe ser determinista entre Count y Fetch.
type Query[T any] interface {
	Count(ctx context.Context) (int, error)
	Fetch(ctx context.Context, offset, limit int) ([]T, error)
}

// QueryFuncs adapta dos funciones a Query.
type QueryFuncs[T any] struct {
	CountFn func(ctx context.Context) (int, error)
	FetchFn func(ctx context.Context, offset, limit int) ([]T, error)
}

func (q QueryFuncs[T]) Count(ctx context.Context) (int, error) { return q.CountFn(ctx) }

func (q QueryFuncs[T]) Fetch(ctx context.Context, offset, limit int) ([]T, error) {
	return q.FetchFn(ctx, offset, limit)
}

// Slice fuente en memoria ya ordenada (p. ej. el top-N calculado por el motor de reportes).
type Slice[T any] []T

func (s Slice[T]) Count(context.Context) (int, error) { return len(s), nil }

func (s Slice[T]) Fetch(_ context.Context, offset, limit int) ([]T, error) {
	if offset >= len(s) {
		return nil, nil
	}
	end := offset + limit
	if end > len(s) {
		end = len(s)
	}
	return s[offset:end], nil
}

// Page resultado paginado.
type Page[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
}

// Metadata datos que viajan en el header X-Pagination.
type Metadata struct {
	TotalCount int `json:"totalCount"`
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// Metadata devuelve los metadatos de la página.
func (p Page[T]) Metadata() Metadata {
	return Metadata{
		TotalCount: p.TotalCount,
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages,
	}
}

// Paginate cuenta una vez sobre la consulta completa y luego trae la ventana
// offset=(page-1)*size, limit=size. Items nunca es nil.
func Paginate[T any](ctx context.Context, q Query[T], page, size int) (Page[T], error) {
	if page < 1 || size < 1 {
		return Page[T]{}, ErrInvalidPage
	}
	total, err := q.Count(ctx)
	if err != nil {
		return Page[T]{}, err
	}
	out := Page[T]{
		Items:      []T{},
		TotalCount: total,
		TotalPages: TotalPages(total, size),
		PageNumber: page,
		PageSize:   size,
	}
	offset := (page - 1) * size
	if offset >= total {
		return out, nil
	}
	if err := ctx.Err(); err != nil {
		return Page[T]{}, err
	}
	items, err := q.Fetch(ctx, offset, size)
	if err != nil {
		return Page[T]{}, err
	}
	if items != nil {
		out.Items = items
	}
	return out, nil
}

// TotalPages ceil(total/size); 0 si size < 1.
func TotalPages(total, size int) int {
	if size < 1 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Clamp acota v a [min, max]; si v es 0 usa def.
func Clamp(v, def, min, max int) int {
	if v == 0 {
		v = def
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
