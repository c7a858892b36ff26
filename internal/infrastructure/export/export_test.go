package export_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/kiosco-api/internal/application/reports"
	"github.com/jhoicas/kiosco-api/internal/infrastructure/export"
)

func sampleTable() reports.Table {
	return reports.Table{
		Title:    "Ventas por día",
		Subtitle: "2024-03-01 a 2024-03-05",
		Headers:  []string{"Fecha", "Ventas", "Ingresos"},
		Rows: [][]string{
			{"2024-03-01", "3", "12.50"},
			{"2024-03-02", "1", "4.00"},
		},
	}
}

func TestXLSXExporter_EscribeCabeceraYFilas(t *testing.T) {
	e := export.NewXLSXExporter()
	raw, err := e.Export(sampleTable())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	title, _ := f.GetCellValue("Sheet1", "A1")
	assert.Equal(t, "Ventas por día", title)
	header, _ := f.GetCellValue("Sheet1", "C4")
	assert.Equal(t, "Ingresos", header)
	last, _ := f.GetCellValue("Sheet1", "C6")
	assert.Equal(t, "4.00", last)
	assert.Equal(t, "xlsx", e.Extension())
}

func TestPDFExporter_GeneraDocumento(t *testing.T) {
	e := export.NewPDFExporter()
	raw, err := e.Export(sampleTable())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
	assert.Equal(t, "application/pdf", e.ContentType())

	empty := sampleTable()
	empty.Rows = nil
	raw, err = e.Export(empty)
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
}
