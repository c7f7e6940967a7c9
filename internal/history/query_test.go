package history

import (
	"context"
	"errors"
	"testing"

	"docflow/internal"
)

func fp(v float64) *float64 { return &v }

func sampleRecords() []internal.HistoryRecord {
	return []internal.HistoryRecord{
		{ID: 1, Cliente: "Acme", TipoSolicitud: "Factura", Monto: fp(100)},
		{ID: 2, Cliente: "Acme Corp", TipoSolicitud: "Venta", Monto: fp(200)},
		{ID: 3, Cliente: "Zenith", TipoSolicitud: "Factura", Monto: fp(50)},
	}
}

func TestFilter(t *testing.T) {
	records := sampleRecords()

	cases := []struct {
		name    string
		search  string
		tipo    string
		wantIDs []int
	}{
		{name: "substring case-insensitive", search: "acme", tipo: TypeAll, wantIDs: []int{1, 2}},
		{name: "type exact", search: "", tipo: "Factura", wantIDs: []int{1, 3}},
		{name: "both predicates AND", search: "acme", tipo: "Venta", wantIDs: []int{2}},
		{name: "type is case-sensitive", search: "", tipo: "factura", wantIDs: []int{}},
		{name: "no filters", search: "", tipo: TypeAll, wantIDs: []int{1, 2, 3}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Filter(records, tc.search, tc.tipo)
			if len(got) != len(tc.wantIDs) {
				t.Fatalf("got %d records, want %d", len(got), len(tc.wantIDs))
			}
			for i, r := range got {
				if r.ID != tc.wantIDs[i] {
					t.Fatalf("got ids %v want %v", got, tc.wantIDs)
				}
			}
		})
	}
}

func TestAggregateUsesUnfilteredTotal(t *testing.T) {
	records := sampleRecords()
	filtered := Filter(records, "acme", TypeAll)

	stats := Aggregate(records, filtered)
	if stats.Total != 3 || stats.Filtered != 2 {
		t.Fatalf("stats %+v", stats)
	}
	if stats.MontoTotal != 350 {
		t.Fatalf("monto total %v, must cover the whole set regardless of filter", stats.MontoTotal)
	}
}

func TestAggregateMissingMontoCountsZero(t *testing.T) {
	records := []internal.HistoryRecord{
		{ID: 1, Cliente: "Acme", Monto: fp(100)},
		{ID: 2, Cliente: "Beta"},
	}
	stats := Aggregate(records, records)
	if stats.MontoTotal != 100 {
		t.Fatalf("monto total %v", stats.MontoTotal)
	}
}

type fakeFetcher struct {
	records []internal.HistoryRecord
	err     error
}

func (f *fakeFetcher) FetchHistory(ctx context.Context) ([]internal.HistoryRecord, error) {
	return f.records, f.err
}

func TestFetchAllSwallowsFailures(t *testing.T) {
	svc := NewService(&fakeFetcher{err: errors.New("boom")})
	if got := svc.FetchAll(context.Background()); len(got) != 0 {
		t.Fatalf("got %#v", got)
	}

	svc = NewService(&fakeFetcher{records: sampleRecords()})
	if got := svc.FetchAll(context.Background()); len(got) != 3 {
		t.Fatalf("got %#v", got)
	}
}
