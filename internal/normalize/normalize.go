package normalize

import (
	"strconv"

	"docflow/internal"
)

// Shape classifies a structured payload as received from the extraction
// service. The service is observed to serialize the same logical list three
// different ways (proper array, index-keyed object, bare object), so every
// consumer must go through this classification exactly once.
type Shape int

const (
	// ShapeAbsent is a missing payload; there is no data.
	ShapeAbsent Shape = iota
	// ShapeList is a proper ordered sequence.
	ShapeList
	// ShapeIndexedMap is an object whose key set is exactly {"0".."n-1"}.
	ShapeIndexedMap
	// ShapeSingleMap is any other object, treated as a single record.
	ShapeSingleMap
	// ShapeScalar is any non-object, non-list value.
	ShapeScalar
)

func Classify(payload any) Shape {
	switch t := payload.(type) {
	case nil:
		return ShapeAbsent
	case internal.RecordList:
		return ShapeList
	case []any:
		return ShapeList
	case map[string]any:
		if isIndexKeyed(t) {
			return ShapeIndexedMap
		}
		return ShapeSingleMap
	default:
		return ShapeScalar
	}
}

// Normalize reduces an arbitrary extraction payload to the canonical ordered
// record list. nil stays nil ("no data"), a list passes through unchanged,
// an index-keyed object is reordered by the numeric value of its keys, and
// anything else is wrapped as a one-element list. Idempotent over anything
// representable as a record list.
func Normalize(payload any) internal.RecordList {
	switch t := payload.(type) {
	case nil:
		return nil
	case internal.RecordList:
		return t
	case []any:
		return internal.RecordList(t)
	case map[string]any:
		if list, ok := fromIndexKeyed(t); ok {
			return list
		}
		return internal.RecordList{t}
	default:
		return internal.RecordList{t}
	}
}

func isIndexKeyed(m map[string]any) bool {
	_, ok := fromIndexKeyed(m)
	return ok
}

// fromIndexKeyed reorders {"0": A, "1": B, ...} into [A, B, ...]. The key
// set must be exactly the consecutive indices 0..n-1; map insertion order is
// irrelevant, ordering is by the numeric value of the key.
func fromIndexKeyed(m map[string]any) (internal.RecordList, bool) {
	n := len(m)
	if n == 0 {
		return nil, false
	}
	out := make(internal.RecordList, n)
	for k, v := range m {
		i, err := strconv.Atoi(k)
		if err != nil || i < 0 || i >= n || strconv.Itoa(i) != k {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}
