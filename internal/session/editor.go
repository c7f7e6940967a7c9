package session

import (
	"encoding/json"
	"sync"

	"docflow/internal"
	"docflow/internal/normalize"
	"docflow/internal/remote"
)

type EditMode string

const (
	ModeViewing EditMode = "viewing"
	ModeEditing EditMode = "editing"
)

// EditState is an immutable snapshot of the edit session.
type EditState struct {
	Mode  EditMode
	Draft string
	Valid bool
	Err   string
}

// RecordEditor holds the working copy of a record list as editable JSON
// text. Internal ids are stripped from everything user-facing and restored,
// by element index, only when records leave through SaveRecords. The value
// used for apply and save is always the last successfully parsed draft,
// never the raw text.
type RecordEditor struct {
	mu      sync.Mutex
	state   EditState
	current internal.RecordList // committed value, internal ids stripped
	working any                 // last successfully parsed draft
	dbIDs   []any               // per-index internal ids captured at Seed
	onApply func(internal.RecordList)
}

func NewRecordEditor(onApply func(internal.RecordList)) *RecordEditor {
	return &RecordEditor{
		state:   EditState{Mode: ModeViewing, Valid: true},
		onApply: onApply,
	}
}

// Seed installs a new upstream record list. Any in-progress edit is
// discarded; the upstream source wins.
func (e *RecordEditor) Seed(records internal.RecordList) {
	e.mu.Lock()
	defer e.mu.Unlock()
	stripped, ids := internal.StripInternal(records)
	e.current = stripped
	e.working = any(stripped)
	e.dbIDs = ids
	e.state = EditState{Mode: ModeViewing, Draft: prettyJSON(stripped), Valid: true}
}

func (e *RecordEditor) Snapshot() EditState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Current returns the committed record list (no internal ids).
func (e *RecordEditor) Current() internal.RecordList {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// Preview returns what the display layer should render: the last
// successfully parsed draft as a canonical list. While the draft text is
// syntactically broken this keeps showing the previous good value.
func (e *RecordEditor) Preview() internal.RecordList {
	e.mu.Lock()
	defer e.mu.Unlock()
	return normalize.Normalize(e.working)
}

// EnterEdit switches to editing and seeds the draft with the committed
// value, pretty-printed.
func (e *RecordEditor) EnterEdit() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.Mode == ModeEditing {
		return
	}
	e.state = EditState{Mode: ModeEditing, Draft: prettyJSON(e.current), Valid: true}
}

// SetDraft records a keystroke's worth of draft text and reparses it. A
// syntax error keeps the previous working value and marks the session
// invalid until the text parses again.
func (e *RecordEditor) SetDraft(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Draft = text

	var parsed any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		e.state.Valid = false
		e.state.Err = "invalid JSON, check the syntax"
		return
	}
	e.working = parsed
	e.state.Valid = true
	e.state.Err = ""
}

// Cancel discards the draft and returns to viewing the committed value.
func (e *RecordEditor) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.working = any(e.current)
	e.state = EditState{Mode: ModeViewing, Draft: prettyJSON(e.current), Valid: true}
}

// Apply commits the last successfully parsed draft as the new record list
// and notifies the session. Rejected while the draft is invalid.
func (e *RecordEditor) Apply() error {
	e.mu.Lock()
	if !e.state.Valid {
		e.mu.Unlock()
		return &remote.Error{Kind: remote.KindValidation, Message: "fix the JSON before applying"}
	}
	committed := normalize.Normalize(e.working)
	e.current = committed
	e.working = any(committed)
	e.state = EditState{Mode: ModeViewing, Draft: prettyJSON(committed), Valid: true}
	notify := e.onApply
	e.mu.Unlock()

	if notify != nil {
		notify(committed)
	}
	return nil
}

// SaveRecords is the save boundary: the last valid working value as a
// canonical list with internal ids restored by index. Rejected while the
// draft is invalid.
func (e *RecordEditor) SaveRecords() (internal.RecordList, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.state.Valid {
		return nil, &remote.Error{Kind: remote.KindValidation, Message: "fix the JSON before saving"}
	}
	list := normalize.Normalize(e.working)
	if len(list) == 0 {
		return nil, &remote.Error{Kind: remote.KindPrecondition, Message: "no records to save"}
	}
	return internal.RestoreInternal(list, e.dbIDs), nil
}

func prettyJSON(v any) string {
	if v == nil {
		return ""
	}
	blob, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return string(blob)
}
