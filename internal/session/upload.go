package session

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"docflow/internal"
	"docflow/internal/normalize"
	"docflow/internal/remote"
)

type UploadPhase string

const (
	PhaseIdle      UploadPhase = "idle"
	PhaseUploading UploadPhase = "uploading"
	PhaseSucceeded UploadPhase = "succeeded"
	PhaseFailed    UploadPhase = "failed"
)

// UploadState is an immutable snapshot of the upload session.
type UploadState struct {
	ID    string
	Phase UploadPhase
	Err   string
}

// Extractor is the slice of the remote client the controller needs.
type Extractor interface {
	ProcessDocument(ctx context.Context, path string) (remote.ExtractResult, error)
}

// UploadController drives the document submission state machine. A result,
// once obtained, stays displayed until an explicit Clear; a second submit
// while data is displayed is rejected locally so an unreviewed result cannot
// be silently overwritten.
type UploadController struct {
	mu     sync.Mutex
	client Extractor
	state  UploadState
	result *internal.UploadResult
}

func NewUploadController(client Extractor) *UploadController {
	return &UploadController{
		client: client,
		state:  UploadState{ID: uuid.NewString(), Phase: PhaseIdle},
	}
}

func (c *UploadController) Snapshot() UploadState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Result returns the currently displayed result, or false when the view is
// empty.
func (c *UploadController) Result() (internal.UploadResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.result == nil {
		return internal.UploadResult{}, false
	}
	return *c.result, true
}

// Submit uploads one document, normalizes the structured payload and stores
// the result for display. It fails without a network call while a previous
// result is still displayed or another upload is in flight.
func (c *UploadController) Submit(ctx context.Context, path string) (internal.UploadResult, error) {
	c.mu.Lock()
	if c.result != nil {
		c.mu.Unlock()
		return internal.UploadResult{}, &remote.Error{
			Kind:    remote.KindPrecondition,
			Message: "clear the current data before uploading another document",
		}
	}
	if c.state.Phase == PhaseUploading {
		c.mu.Unlock()
		return internal.UploadResult{}, &remote.Error{
			Kind:    remote.KindPrecondition,
			Message: "an upload is already in progress",
		}
	}
	c.state.Phase = PhaseUploading
	c.state.Err = ""
	c.mu.Unlock()

	res, err := c.client.ProcessDocument(ctx, path)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state.Phase = PhaseFailed
		c.state.Err = err.Error()
		return internal.UploadResult{}, err
	}

	out := internal.UploadResult{
		RawText: res.RawText,
		Records: normalize.Normalize(res.Structured),
	}
	c.result = &out
	c.state.Phase = PhaseSucceeded
	return out, nil
}

// Clear resets the view to idle and starts a fresh session.
func (c *UploadController) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.result = nil
	c.state = UploadState{ID: uuid.NewString(), Phase: PhaseIdle}
}
