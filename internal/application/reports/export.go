package reports

import (
	"strconv"

	"github.com/jhoicas/kiosco-api/internal/application/dto"
	"github.com/jhoicas/kiosco-api/internal/domain/money"
)

// Table reporte tabular listo para exportar.
type Table struct {
	Title    string
	Subtitle string
	Headers  []string
	Rows     [][]string
}

// TopProductsTable tabla del top de productos.
func TopProductsTable(r Range, items []dto.TopProductDTO) Table {
	t := Table{
		Title:    "Productos más vendidos",
		Subtitle: r.StartDay() + " a " + r.EndDay(),
		Headers:  []string{"#", "SKU", "Producto", "Unidades", "Ingresos"},
		Rows:     make([][]string, 0, len(items)),
	}
	for _, it := range items {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(it.Rank),
			it.SKU,
			it.ProductName,
			strconv.Itoa(it.QuantitySold),
			it.TotalRevenue.StringFixed(money.Precision),
		})
	}
	return t
}

// SalesByDayTable tabla de ventas por día.
func SalesByDayTable(r Range, days []dto.DailySalesDTO) Table {
	t := Table{
		Title:    "Ventas por día",
		Subtitle: r.StartDay() + " a " + r.EndDay(),
		Headers:  []string{"Fecha", "Ventas", "Ingresos"},
		Rows:     make([][]string, 0, len(days)),
	}
	for _, d := range days {
		t.Rows = append(t.Rows, []string{
			d.Date,
			strconv.Itoa(d.TransactionCount),
			d.Revenue.StringFixed(money.Precision),
		})
	}
	return t
}

// CategoryProfitabilityTable tabla de rentabilidad por categoría.
func CategoryProfitabilityTable(r Range, rows []dto.CategoryProfitabilityDTO) Table {
	t := Table{
		Title:    "Rentabilidad por categoría",
		Subtitle: r.StartDay() + " a " + r.EndDay(),
		Headers:  []string{"Categoría", "Ingresos", "Participación %"},
		Rows:     make([][]string, 0, len(rows)),
	}
	for _, c := range rows {
		t.Rows = append(t.Rows, []string{
			c.CategoryName,
			c.Revenue.StringFixed(money.Precision),
			c.SharePercentage.StringFixed(2),
		})
	}
	return t
}
