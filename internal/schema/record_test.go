package schema

import (
	"strings"
	"testing"

	"docflow/internal"
)

func TestValidateRecordsClean(t *testing.T) {
	records := internal.RecordList{
		map[string]any{"cliente": "Acme", "monto": 100.0, "fecha": "2024-01-01", "tipo_solicitud": "Factura"},
		map[string]any{"cliente": "Zenith", "detalle_extra": "libre"},
	}
	issues, err := ValidateRecords(records)
	if err != nil {
		t.Fatal(err)
	}
	if len(issues) != 0 {
		t.Fatalf("issues %v", issues)
	}
}

func TestValidateRecordsFlagsBadTypes(t *testing.T) {
	records := internal.RecordList{
		map[string]any{"cliente": "Acme", "monto": "cien"},
		map[string]any{"cliente": 42.0},
		"texto suelto",
	}
	issues, err := ValidateRecords(records)
	if err != nil {
		t.Fatal(err)
	}
	if len(issues) != 3 {
		t.Fatalf("issues %v", issues)
	}
	if issues[2].Index != 2 || !strings.Contains(issues[2].Detail, "not a structured record") {
		t.Fatalf("issue %v", issues[2])
	}
}

func TestValidateRecordsFlagsInternalID(t *testing.T) {
	records := internal.RecordList{
		map[string]any{"cliente": "Acme", "db_id": 7.0},
	}
	issues, err := ValidateRecords(records)
	if err != nil {
		t.Fatal(err)
	}
	if len(issues) != 1 {
		t.Fatalf("issues %v", issues)
	}
}
