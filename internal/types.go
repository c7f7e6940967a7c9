package internal

// InternalIDField is assigned by the persistence service and must never be
// shown to the user. It is stripped before display and re-attached only at
// the save boundary.
const InternalIDField = "db_id"

// RecordList is the canonical ordered form all structured payloads are
// reduced to. Elements are usually objects (map[string]any) but a raw value
// wrapped by normalization is allowed. A nil list means "no data"; a non-nil
// list is never empty.
type RecordList []any

// UploadResult is what a successful document submission yields.
type UploadResult struct {
	RawText string
	Records RecordList
}

// HistoryRecord is the projection of a persisted record as returned by the
// history endpoint. Owned by the persistence service, immutable here.
type HistoryRecord struct {
	ID            int      `json:"id"`
	Cliente       string   `json:"cliente"`
	Monto         *float64 `json:"monto,omitempty"`
	Fecha         string   `json:"fecha"`
	TipoSolicitud string   `json:"tipo_solicitud"`
	CreatedAt     string   `json:"created_at"`
}

// Summary condenses a record list for one-line display: the first record's
// domain fields plus the total count.
type Summary struct {
	Cliente       string
	Monto         *float64
	TipoSolicitud string
	Fecha         string
	Count         int
}

func Summarize(list RecordList) *Summary {
	if len(list) == 0 {
		return nil
	}
	s := &Summary{Count: len(list)}
	first, ok := list[0].(map[string]any)
	if !ok {
		return s
	}
	s.Cliente, _ = first["cliente"].(string)
	s.TipoSolicitud, _ = first["tipo_solicitud"].(string)
	s.Fecha, _ = first["fecha"].(string)
	if f, ok := toFloat(first["monto"]); ok {
		s.Monto = &f
	}
	return s
}

// StripInternal returns a copy of the list with the internal id removed from
// every object element, plus the per-index ids that were removed (nil where
// absent) so they can be restored later.
func StripInternal(list RecordList) (RecordList, []any) {
	if list == nil {
		return nil, nil
	}
	out := make(RecordList, 0, len(list))
	ids := make([]any, len(list))
	for i, el := range list {
		m, ok := el.(map[string]any)
		if !ok {
			out = append(out, el)
			continue
		}
		copied := make(map[string]any, len(m))
		for k, v := range m {
			if k == InternalIDField {
				ids[i] = v
				continue
			}
			copied[k] = v
		}
		out = append(out, copied)
	}
	return out, ids
}

// RestoreInternal re-attaches previously captured internal ids by element
// index. Non-object elements, elements beyond the captured range and
// positions with no known id pass through unchanged.
func RestoreInternal(list RecordList, ids []any) RecordList {
	if list == nil {
		return nil
	}
	out := make(RecordList, 0, len(list))
	for i, el := range list {
		m, ok := el.(map[string]any)
		if !ok || i >= len(ids) || ids[i] == nil {
			out = append(out, el)
			continue
		}
		copied := make(map[string]any, len(m)+1)
		for k, v := range m {
			copied[k] = v
		}
		copied[InternalIDField] = ids[i]
		out = append(out, copied)
	}
	return out
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	}
	return 0, false
}
