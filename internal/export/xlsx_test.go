package export

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"docflow/internal"
)

func TestHistoryToXLSX(t *testing.T) {
	monto := 1500.0
	records := []internal.HistoryRecord{
		{ID: 1, Cliente: "Acme", TipoSolicitud: "Factura", Fecha: "2024-01-01", Monto: &monto, CreatedAt: "2024-01-02T10:00:00Z"},
		{ID: 2, Cliente: "Zenith", TipoSolicitud: "Queja", Fecha: "2024-01-03"},
	}

	out := filepath.Join(t.TempDir(), "historial.xlsx")
	if err := HistoryToXLSX(records, out); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[0][1] != "cliente" {
		t.Fatalf("header %v", rows[0])
	}
	if rows[1][1] != "Acme" || rows[1][4] != "1500" {
		t.Fatalf("row %v", rows[1])
	}
	// Absent monto is an empty cell, not a zero.
	if len(rows[2]) > 4 && rows[2][4] != "" {
		t.Fatalf("row %v", rows[2])
	}
}
