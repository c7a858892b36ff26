package entity

import "time"

// Category agrupa productos para el reporte de rentabilidad.
type Category struct {
	ID        string
	KioscoID  string
	Name      string
	CreatedAt time.Time
}

// UncategorizedName nombre con el que se reportan los productos sin categoría.
const UncategorizedName = "Sin categoría"
