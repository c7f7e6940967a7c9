package export

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"docflow/internal"
)

// HistoryToXLSX writes the persisted records to a single-sheet workbook,
// one row per record. An absent monto stays an empty cell rather than a
// zero.
func HistoryToXLSX(records []internal.HistoryRecord, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{"id", "cliente", "tipo_solicitud", "fecha", "monto", "created_at"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, record := range records {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, record.ID)
		set(2, record.Cliente)
		set(3, record.TipoSolicitud)
		set(4, record.Fecha)
		set(5, derefMonto(record.Monto))
		set(6, record.CreatedAt)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func derefMonto(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}
