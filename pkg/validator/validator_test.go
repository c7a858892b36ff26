package validator_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/kiosco-api/pkg/validator"
)

type line struct {
	ProductID string          `json:"product_id" validate:"uuid_str"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
	UnitCost  decimal.Decimal `json:"unit_cost" validate:"dec_gt0"`
}

type body struct {
	Lines []line `json:"lines" validate:"required,min=1,dive"`
}

func TestValidateStruct_Valido(t *testing.T) {
	in := body{Lines: []line{{
		ProductID: "7f1b9a0e-2b1c-4b8e-9a51-3a0c8f1d2e44",
		Quantity:  2,
		UnitCost:  decimal.RequireFromString("0.35"),
	}}}
	assert.Empty(t, validator.ValidateStruct(in))
}

func TestValidateStruct_NombraCamposConTagJSON(t *testing.T) {
	in := body{Lines: []line{{ProductID: "x", Quantity: 0, UnitCost: decimal.Zero}}}
	errs := validator.ValidateStruct(in)

	fields := map[string]string{}
	for _, e := range errs {
		fields[e.Field] = e.Tag
	}
	assert.Equal(t, "uuid_str", fields["lines[0].product_id"])
	assert.Equal(t, "gt", fields["lines[0].quantity"])
	assert.Equal(t, "dec_gt0", fields["lines[0].unit_cost"])
}

func TestValidateStruct_SinLineas(t *testing.T) {
	errs := validator.ValidateStruct(body{})
	if assert.Len(t, errs, 1) {
		assert.Equal(t, "lines", errs[0].Field)
		assert.Equal(t, "required", errs[0].Tag)
	}
}
