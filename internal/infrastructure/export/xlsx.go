package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/kiosco-api/internal/application/reports"
)

const sheetName = "Sheet1"

var _ reports.Exporter = (*XLSXExporter)(nil)

// XLSXExporter implementa reports.Exporter como planilla Excel.
type XLSXExporter struct{}

// NewXLSXExporter construye el exportador.
func NewXLSXExporter() *XLSXExporter { return &XLSXExporter{} }

func (e *XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (e *XLSXExporter) Extension() string { return "xlsx" }

// Export escribe título, período, cabecera y filas a partir de A1.
func (e *XLSXExporter) Export(t reports.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetCellValue(sheetName, "A1", t.Title); err != nil {
		return nil, fmt.Errorf("xlsx: título: %w", err)
	}
	if err := f.SetCellValue(sheetName, "A2", t.Subtitle); err != nil {
		return nil, fmt.Errorf("xlsx: período: %w", err)
	}

	rowNo := 4
	if err := setRow(f, rowNo, t.Headers); err != nil {
		return nil, err
	}
	for _, r := range t.Rows {
		rowNo++
		if err := setRow(f, rowNo, r); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, rowNo int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNo)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
		return fmt.Errorf("xlsx: fila %d: %w", rowNo, err)
	}
	return nil
}
