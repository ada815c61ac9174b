package domain

import (
	"context"
	"io"
)

// TourRepository is the four-verb surface over the two tour collections.
// Fetches surface failures as errors; an empty slice always means "truly
// empty", never "fetch failed".
type TourRepository interface {
	// GetAll returns every listing in the collection, newest first.
	GetAll(ctx context.Context, col Collection) ([]Tour, error)
	Get(ctx context.Context, col Collection, id string) (Tour, error)
	// Add assigns an id, stamps created_at and active=true, and persists.
	Add(ctx context.Context, col Collection, t Tour) (string, error)
	// Update fails with ErrNotFound when the id does not exist.
	Update(ctx context.Context, col Collection, id string, t Tour) error
	// Delete is idempotent: a missing id is a no-op.
	Delete(ctx context.Context, col Collection, id string) error
	// ListPublic returns active listings ordered by sort priority.
	ListPublic(ctx context.Context, col Collection) ([]Tour, error)
}

type ReviewRepository interface {
	GetAll(ctx context.Context) ([]Review, error)
	Add(ctx context.Context, r Review) (string, error)
	SetApproved(ctx context.Context, id string, approved bool) error
	Delete(ctx context.Context, id string) error
	ListApproved(ctx context.Context) ([]Review, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// ImageStore holds uploaded tour images. Delete swallows not-found.
type ImageStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (url string, err error)
	Delete(ctx context.Context, url string) error
}
