package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrProductNotFound   = errors.New("producto no encontrado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrPersistence       = errors.New("fallo de persistencia")
	ErrInvalidRange      = errors.New("rango de fechas inválido")
)

// ValidationError entrada mal formada (cantidad no positiva, costo <= 0, etc.).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// ProductNotFoundError una o más líneas referencian productos inexistentes o de otro kiosco.
type ProductNotFoundError struct {
	ProductIDs []string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("productos no encontrados: %s", strings.Join(e.ProductIDs, ", "))
}

func (e *ProductNotFoundError) Is(target error) bool {
	return target == ErrProductNotFound || target == ErrNotFound
}

// InsufficientStockError la venta dejaría el stock de ProductID en negativo.
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: solicitado %d, disponible %d", e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// PersistenceError el commit atómico falló por una causa del almacenamiento. Siempre acompañado de rollback.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// RangeBound límite del rango que resultó inválido.
type RangeBound string

const (
	BoundStartAfterEnd RangeBound = "start_after_end"
	BoundSpanTooLarge  RangeBound = "span_too_large"
	BoundStart         RangeBound = "start"
	BoundEnd           RangeBound = "end"
)

// InvalidRangeError rango invertido, demasiado amplio o con fecha ilegible.
type InvalidRangeError struct {
	Bound  RangeBound
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("rango inválido (%s): %s", e.Bound, e.Reason)
}

func (e *InvalidRangeError) Is(target error) bool { return target == ErrInvalidRange }

// IsBusiness indica si err es una condición de negocio esperada (no un fallo de infraestructura).
func IsBusiness(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrDuplicate)
}
