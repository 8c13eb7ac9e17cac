package services

import (
	"context"
	"sync"

	"custos/internal/core"
)

// Tracker is the facade the HTTP layer talks to. It serializes the
// mutating operations (write, reconcile) behind one coarse mutex so a
// reconciliation in progress never overlaps a write; loads run freely
// against the cache.
type Tracker struct {
	mu         sync.Mutex
	loader     *Loader
	writer     *Writer
	reconciler *Reconciler
}

func NewTracker(loader *Loader, writer *Writer, reconciler *Reconciler) *Tracker {
	return &Tracker{loader: loader, writer: writer, reconciler: reconciler}
}

func (t *Tracker) Load(ctx context.Context) (core.Table, error) {
	return t.loader.Load(ctx)
}

func (t *Tracker) Save(ctx context.Context, rec core.Record) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.writer.Save(ctx, rec)
}

// Reconcile runs a reconciliation pass and invalidates the load cache,
// since the store may have been rewritten.
func (t *Tracker) Reconcile(ctx context.Context) ReconcileResult {
	t.mu.Lock()
	defer t.mu.Unlock()
	res := t.reconciler.Reconcile(ctx)
	t.loader.Invalidate()
	return res
}
