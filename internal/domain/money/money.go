// Package money aritmética de importes en la moneda del kiosco (2 decimales).
package money

import "github.com/shopspring/decimal"

// Precision dígitos de la unidad menor de la moneda.
const Precision = 2

// CostPrecision dígitos de un costo unitario de compra.
const CostPrecision = 4

var hundred = decimal.NewFromInt(100)

// Round redondea a la unidad menor usando mitad-al-par (redondeo bancario).
func Round(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(Precision)
}

// RoundCost lleva un costo unitario a CostPrecision con mitad-al-par.
func RoundCost(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(CostPrecision)
}

// LineAmount cantidad * unitario, sin redondear.
func LineAmount(qty int, unit decimal.Decimal) decimal.Decimal {
	return unit.Mul(decimal.NewFromInt(int64(qty)))
}

// Sum suma los importes exactos y redondea una sola vez.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return Round(total)
}

// Share porcentaje part/total*100 con 2 decimales, mitad-al-par. Si total no es positivo devuelve 0.
func Share(part, total decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	return Round(part.Div(total).Mul(hundred))
}
