package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/kiosco-api/internal/domain/money"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSum_CompraDeReferencia(t *testing.T) {
	total := money.Sum(money.LineAmount(10, d("0.35")), money.LineAmount(10, d("0.45")))
	assert.Equal(t, "8.00", total.StringFixed(2))
	assert.True(t, total.Equal(d("8")))
}

// 1.005 + 0.005 redondeados por línea darían 1.00; el total exacto 1.010 da 1.01.
func TestSum_RedondeaUnaSolaVez(t *testing.T) {
	a := money.LineAmount(3, d("0.335"))
	b := money.LineAmount(1, d("0.005"))
	assert.Equal(t, "1.00", money.Round(a).Add(money.Round(b)).StringFixed(2))
	assert.Equal(t, "1.01", money.Sum(a, b).StringFixed(2))
}

func TestRound_MitadAlPar(t *testing.T) {
	assert.Equal(t, "0.12", money.Round(d("0.125")).StringFixed(2))
	assert.Equal(t, "0.14", money.Round(d("0.135")).StringFixed(2))
	assert.Equal(t, "2.68", money.Round(d("2.675")).StringFixed(2))
}

func TestRoundCost_CuatroDecimalesMitadAlPar(t *testing.T) {
	assert.Equal(t, "0.355", money.RoundCost(d("0.355")).String())
	assert.Equal(t, "0.1234", money.RoundCost(d("0.12345")).String())
	assert.Equal(t, "0.1236", money.RoundCost(d("0.12355")).String())
	assert.True(t, money.RoundCost(d("0.00004")).IsZero())
}

func TestShare(t *testing.T) {
	assert.True(t, money.Share(d("25"), d("100")).Equal(d("25")))
	assert.True(t, money.Share(d("1"), d("3")).Equal(d("33.33")))
	assert.True(t, money.Share(d("0"), d("0")).IsZero())
	assert.True(t, money.Share(d("5"), decimal.Zero).IsZero())
}

func TestShare_MitadAlPar(t *testing.T) {
	assert.Equal(t, "12.34", money.Share(d("12.345"), d("100")).StringFixed(2))
	assert.Equal(t, "12.36", money.Share(d("12.355"), d("100")).StringFixed(2))
}
