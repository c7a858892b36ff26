// Package export genera los documentos descargables de los reportes.
//
// Layout del PDF (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  TÍTULO del reporte           │  Período + fecha de emisión  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: cabecera + una fila por registro                     │
//	└─────────────────────────────────────────────────────────────┘
package export

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/kiosco-api/internal/application/reports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// gridColumns ancho total de la grilla de maroto.
const gridColumns = 12

var _ reports.Exporter = (*PDFExporter)(nil)

// PDFExporter implementa reports.Exporter usando Maroto v2.
type PDFExporter struct {
	now func() time.Time
}

// NewPDFExporter construye el exportador.
func NewPDFExporter() *PDFExporter { return &PDFExporter{now: time.Now} }

func (e *PDFExporter) ContentType() string { return "application/pdf" }

func (e *PDFExporter) Extension() string { return "pdf" }

// Export genera el PDF y devuelve sus bytes.
func (e *PDFExporter) Export(t reports.Table) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(t.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow(t, e.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	widths := columnWidths(len(t.Headers))
	m.AddRows(tableRow(t.Headers, widths, true))
	for _, r := range t.Rows {
		m.AddRows(tableRow(r, widths, false))
	}
	if len(t.Rows) == 0 {
		m.AddRows(row.New(8).Add(col.New(gridColumns).Add(
			text.New("Sin datos en el período", props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// titleRow: título (izq) y período + fecha de emisión (der).
func titleRow(t reports.Table, now time.Time) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(t.Title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
		),
		col.New(5).Add(
			text.New(t.Subtitle, props.Text{Size: 9, Align: align.Right, Top: 1}),
			text.New("Emitido: "+now.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func tableRow(cells []string, widths []int, header bool) core.Row {
	cols := make([]core.Col, 0, len(widths))
	for i, w := range widths {
		value := ""
		if i < len(cells) {
			value = cells[i]
		}
		p := props.Text{Size: 8, Top: 1, Left: 1, Right: 1}
		if header {
			p.Style = fontstyle.Bold
			p.Color = colorPrimary
		}
		cols = append(cols, col.New(w).Add(text.New(value, p)))
	}
	return row.New(7).Add(cols...)
}

// columnWidths reparte las 12 columnas de la grilla; el resto va a la primera columna de texto.
func columnWidths(n int) []int {
	if n <= 0 {
		return nil
	}
	if n > gridColumns {
		n = gridColumns
	}
	widths := make([]int, n)
	base := gridColumns / n
	for i := range widths {
		widths[i] = base
	}
	extra := gridColumns - base*n
	widths[n/2] += extra
	return widths
}
