package session

import (
	"context"
	"sync/atomic"
	"testing"

	"docflow/internal/remote"
)

type fakeExtractor struct {
	calls  int32
	result remote.ExtractResult
	err    error
}

func (f *fakeExtractor) ProcessDocument(ctx context.Context, path string) (remote.ExtractResult, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.result, f.err
}

func TestSubmitNormalizesIndexedPayload(t *testing.T) {
	ext := &fakeExtractor{result: remote.ExtractResult{
		RawText: "texto",
		Structured: map[string]any{
			"1": map[string]any{"cliente": "B"},
			"0": map[string]any{"cliente": "A"},
		},
	}}
	c := NewUploadController(ext)

	res, err := c.Submit(context.Background(), "doc.txt")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Records) != 2 {
		t.Fatalf("records %#v", res.Records)
	}
	first, _ := res.Records[0].(map[string]any)
	if first["cliente"] != "A" {
		t.Fatalf("order not preserved: %#v", res.Records)
	}
	if c.Snapshot().Phase != PhaseSucceeded {
		t.Fatalf("phase %s", c.Snapshot().Phase)
	}
}

func TestSubmitRejectedWhileDataDisplayed(t *testing.T) {
	ext := &fakeExtractor{result: remote.ExtractResult{RawText: "x", Structured: map[string]any{"cliente": "A"}}}
	c := NewUploadController(ext)

	if _, err := c.Submit(context.Background(), "doc.txt"); err != nil {
		t.Fatal(err)
	}
	_, err := c.Submit(context.Background(), "other.txt")
	if !remote.IsKind(err, remote.KindPrecondition) {
		t.Fatalf("want precondition, got %v", err)
	}
	if got := atomic.LoadInt32(&ext.calls); got != 1 {
		t.Fatalf("network calls = %d", got)
	}
}

func TestSubmitFailureLeavesViewEmpty(t *testing.T) {
	ext := &fakeExtractor{err: &remote.Error{Kind: remote.KindConnectivity, Message: "down"}}
	c := NewUploadController(ext)

	if _, err := c.Submit(context.Background(), "doc.txt"); err == nil {
		t.Fatal("expected error")
	}
	state := c.Snapshot()
	if state.Phase != PhaseFailed || state.Err != "down" {
		t.Fatalf("state %+v", state)
	}
	if _, ok := c.Result(); ok {
		t.Fatal("result should be empty after failure")
	}

	// No data was set, so a new submit is allowed without clearing.
	ext.err = nil
	ext.result = remote.ExtractResult{Structured: map[string]any{"cliente": "A"}}
	if _, err := c.Submit(context.Background(), "doc.txt"); err != nil {
		t.Fatal(err)
	}
}

func TestClearResetsSession(t *testing.T) {
	ext := &fakeExtractor{result: remote.ExtractResult{Structured: []any{map[string]any{"cliente": "A"}}}}
	c := NewUploadController(ext)

	before := c.Snapshot().ID
	if _, err := c.Submit(context.Background(), "doc.txt"); err != nil {
		t.Fatal(err)
	}
	c.Clear()

	state := c.Snapshot()
	if state.Phase != PhaseIdle || state.Err != "" {
		t.Fatalf("state %+v", state)
	}
	if state.ID == before {
		t.Fatal("clear should start a fresh session")
	}
	if _, ok := c.Result(); ok {
		t.Fatal("result survived clear")
	}
	if _, err := c.Submit(context.Background(), "doc.txt"); err != nil {
		t.Fatalf("submit after clear: %v", err)
	}
}
