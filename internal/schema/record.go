package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"docflow/internal"
)

// recordSchema is the advisory shape of one extracted record. Extra fields
// are allowed (extraction output varies per document); the internal id must
// never appear in user-edited data.
func recordSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"cliente":        map[string]any{"type": "string", "minLength": 1},
			"fecha":          map[string]any{"type": "string"},
			"tipo_solicitud": map[string]any{"type": "string"},
			"monto":          map[string]any{"type": "number"},
			internal.InternalIDField: false,
		},
	}
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		blob, err := json.Marshal(recordSchema())
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("record.json", bytes.NewReader(blob)); err != nil {
			compileErr = fmt.Errorf("add schema: %w", err)
			return
		}
		compiled, compileErr = compiler.Compile("record.json")
	})
	return compiled, compileErr
}

// Issue is one advisory finding on a record. Issues are warnings for the
// user to review; they never block applying or saving.
type Issue struct {
	Index  int
	Detail string
}

func (i Issue) String() string {
	return fmt.Sprintf("record %d: %s", i.Index+1, i.Detail)
}

// ValidateRecords checks every element of the list against the record
// schema.
func ValidateRecords(records internal.RecordList) ([]Issue, error) {
	sch, err := schema()
	if err != nil {
		return nil, err
	}

	var issues []Issue
	for i, el := range records {
		if _, ok := el.(map[string]any); !ok {
			issues = append(issues, Issue{Index: i, Detail: "not a structured record"})
			continue
		}
		// Round-trip through JSON so programmatically built values
		// validate the same as decoded wire data.
		blob, err := json.Marshal(el)
		if err != nil {
			return nil, fmt.Errorf("encode record %d: %w", i, err)
		}
		var v any
		if err := json.Unmarshal(blob, &v); err != nil {
			return nil, fmt.Errorf("decode record %d: %w", i, err)
		}
		if err := sch.Validate(v); err != nil {
			issues = append(issues, Issue{Index: i, Detail: validationDetail(err)})
		}
	}
	return issues, nil
}

func validationDetail(err error) string {
	var ve *jsonschema.ValidationError
	if errors.As(err, &ve) && len(ve.Causes) > 0 {
		cause := ve.Causes[0]
		return strings.TrimSpace(fmt.Sprintf("%s %s", cause.InstanceLocation, cause.Message))
	}
	return err.Error()
}
