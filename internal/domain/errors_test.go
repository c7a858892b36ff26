package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/kiosco-api/internal/domain"
)

func TestErrores_IsContraSentinelas(t *testing.T) {
	var err error = fmt.Errorf("registrar venta: %w", &domain.InsufficientStockError{ProductID: "b", Requested: 3, Available: 2})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.NotErrorIs(t, err, domain.ErrProductNotFound)

	var stockErr *domain.InsufficientStockError
	if assert.ErrorAs(t, err, &stockErr) {
		assert.Equal(t, "b", stockErr.ProductID)
	}

	assert.ErrorIs(t, &domain.ProductNotFoundError{ProductIDs: []string{"x"}}, domain.ErrProductNotFound)
	assert.ErrorIs(t, &domain.ValidationError{Field: "lines[0].quantity"}, domain.ErrInvalidInput)
	assert.ErrorIs(t, &domain.InvalidRangeError{Bound: domain.BoundSpanTooLarge}, domain.ErrInvalidRange)
}

func TestPersistenceError_ConservaCausa(t *testing.T) {
	cause := errors.New("connection reset")
	err := &domain.PersistenceError{Op: "record sale", Err: cause}
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.ErrorIs(t, err, cause)
	assert.False(t, domain.IsBusiness(err))
}

func TestProductNotFoundError_NombraIDs(t *testing.T) {
	err := &domain.ProductNotFoundError{ProductIDs: []string{"a", "c"}}
	assert.Contains(t, err.Error(), "a, c")
	assert.True(t, domain.IsBusiness(err))
}
