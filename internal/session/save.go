package session

import (
	"context"
	"sync"
	"time"

	"docflow/internal"
	"docflow/internal/remote"
)

// Persister is the slice of the remote client the guard needs.
type Persister interface {
	SaveRecords(ctx context.Context, records internal.RecordList) (string, error)
}

// SaveGuard allows at most one persistence request in flight for the
// current working copy, enforced by a single boolean latch. After a
// successful save it holds a transient justSaved state and, once the delay
// elapses, invokes the owner's clear-view callback — the only automatic
// view clear in the system.
type SaveGuard struct {
	mu         sync.Mutex
	client     Persister
	delay      time.Duration
	onClear    func()
	inFlight   bool
	justSaved  bool
	clearTimer *time.Timer
}

func NewSaveGuard(client Persister, delay time.Duration, onClear func()) *SaveGuard {
	return &SaveGuard{client: client, delay: delay, onClear: onClear}
}

// Save persists the editor's current records. Rejected locally, with no
// network call, while another save is in flight or the edit session is
// invalid. The latch is released on every outcome so a retry is possible.
func (g *SaveGuard) Save(ctx context.Context, editor *RecordEditor) (string, error) {
	g.mu.Lock()
	if g.inFlight {
		g.mu.Unlock()
		return "", &remote.Error{Kind: remote.KindPrecondition, Message: "a save is already in progress"}
	}
	records, err := editor.SaveRecords()
	if err != nil {
		g.mu.Unlock()
		return "", err
	}
	g.inFlight = true
	g.justSaved = false
	g.mu.Unlock()

	message, err := g.client.SaveRecords(ctx, records)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.inFlight = false
	if err != nil {
		return "", err
	}

	g.justSaved = true
	if g.clearTimer != nil {
		g.clearTimer.Stop()
	}
	g.clearTimer = time.AfterFunc(g.delay, g.clearExpired)
	return message, nil
}

func (g *SaveGuard) clearExpired() {
	g.mu.Lock()
	g.justSaved = false
	notify := g.onClear
	g.mu.Unlock()
	if notify != nil {
		notify()
	}
}

// JustSaved reports whether the transient post-save state is active.
func (g *SaveGuard) JustSaved() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.justSaved
}

// Teardown cancels the pending automatic clear, if any. Call when the view
// owning the guard goes away so the callback cannot fire against a session
// the user has navigated away from.
func (g *SaveGuard) Teardown() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.clearTimer != nil {
		g.clearTimer.Stop()
		g.clearTimer = nil
	}
	g.justSaved = false
}
