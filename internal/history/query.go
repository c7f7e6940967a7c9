package history

import (
	"context"
	"strings"

	"docflow/internal"
)

// TypeAll matches every request type in a filter.
const TypeAll = "all"

type Fetcher interface {
	FetchHistory(ctx context.Context) ([]internal.HistoryRecord, error)
}

type Service struct {
	client Fetcher
}

func NewService(client Fetcher) *Service {
	return &Service{client: client}
}

// FetchAll lists the persisted records, once per view activation. A failed
// or absent response is an empty history, not an error.
func (s *Service) FetchAll(ctx context.Context) []internal.HistoryRecord {
	records, err := s.client.FetchHistory(ctx)
	if err != nil {
		return nil
	}
	return records
}

// Filter keeps records whose cliente contains the search term
// (case-insensitive) and whose tipo_solicitud equals the type filter
// exactly, unless the filter is TypeAll. Both predicates must hold.
func Filter(records []internal.HistoryRecord, searchTerm, typeFilter string) []internal.HistoryRecord {
	needle := strings.ToLower(searchTerm)
	out := make([]internal.HistoryRecord, 0, len(records))
	for _, r := range records {
		if !strings.Contains(strings.ToLower(r.Cliente), needle) {
			continue
		}
		if typeFilter != TypeAll && r.TipoSolicitud != typeFilter {
			continue
		}
		out = append(out, r)
	}
	return out
}

type Stats struct {
	Total      int
	Filtered   int
	MontoTotal float64
}

// Aggregate computes the dashboard stats. The monto total always covers the
// whole fetched set, not the filtered subset, so an active filter cannot
// make a partial total look like the dataset total. Records without a monto
// contribute zero.
func Aggregate(all, filtered []internal.HistoryRecord) Stats {
	stats := Stats{Total: len(all), Filtered: len(filtered)}
	for _, r := range all {
		if r.Monto != nil {
			stats.MontoTotal += *r.Monto
		}
	}
	return stats
}
