package app

import (
	"context"
	"sync"

	"damq_travel/internal/domain"
)

type pendingDelete struct {
	col domain.Collection
	id  string
}

// DeleteFlow stages a single (collection, id) pair awaiting explicit
// confirmation. The remote delete is issued only from Confirm; Cancel
// discards the stage without any remote call. Requesting a second delete
// while one is pending is rejected.
type DeleteFlow struct {
	del    func(ctx context.Context, col domain.Collection, id string) error
	reload func(ctx context.Context, col domain.Collection) error

	mu      sync.Mutex
	pending *pendingDelete
}

func NewDeleteFlow(
	del func(ctx context.Context, col domain.Collection, id string) error,
	reload func(ctx context.Context, col domain.Collection) error,
) *DeleteFlow {
	return &DeleteFlow{del: del, reload: reload}
}

func (f *DeleteFlow) Request(col domain.Collection, id string) error {
	if !col.Valid() {
		return domain.ErrBadCollection
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pending != nil {
		return domain.ErrDeletePending
	}
	f.pending = &pendingDelete{col: col, id: id}
	return nil
}

// Pending reports the staged pair, if any.
func (f *DeleteFlow) Pending() (domain.Collection, string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pending == nil {
		return "", "", false
	}
	return f.pending.col, f.pending.id, true
}

func (f *DeleteFlow) Cancel() {
	f.mu.Lock()
	f.pending = nil
	f.mu.Unlock()
}

// Confirm issues the staged delete exactly once. The flow returns to idle
// whether the delete succeeds or fails; the owning view reloads only on
// success.
func (f *DeleteFlow) Confirm(ctx context.Context) error {
	f.mu.Lock()
	p := f.pending
	f.pending = nil
	f.mu.Unlock()
	if p == nil {
		return domain.ErrNothingPending
	}
	if err := f.del(ctx, p.col, p.id); err != nil {
		return err
	}
	return f.reload(ctx, p.col)
}
