package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"damq_travel/internal/domain"
)

// AdminService owns the back-office view of both tour collections and the
// review queue. Every mutation goes store-first, then invalidates the
// public caches and rebuilds the affected snapshot from a fresh fetch;
// nothing is patched optimistically.
type AdminService struct {
	tours   domain.TourRepository
	reviews domain.ReviewRepository
	images  domain.ImageStore
	cache   domain.Cache

	FullTours *Collection[domain.Tour]
	DayTours  *Collection[domain.Tour]
	Reviews   *Collection[domain.Review]
	Deletes   *DeleteFlow
}

func NewAdminService(tours domain.TourRepository, reviews domain.ReviewRepository, images domain.ImageStore, cache domain.Cache) *AdminService {
	s := &AdminService{tours: tours, reviews: reviews, images: images, cache: cache}
	s.FullTours = NewCollection(
		func(ctx context.Context) ([]domain.Tour, error) {
			return tours.GetAll(ctx, domain.CollectionFullTours)
		},
		func(t domain.Tour) string { return t.ID },
	)
	s.DayTours = NewCollection(
		func(ctx context.Context) ([]domain.Tour, error) {
			return tours.GetAll(ctx, domain.CollectionDayTours)
		},
		func(t domain.Tour) string { return t.ID },
	)
	s.Reviews = NewCollection(
		func(ctx context.Context) ([]domain.Review, error) { return reviews.GetAll(ctx) },
		func(r domain.Review) string { return r.ID },
	)
	s.Deletes = NewDeleteFlow(s.deleteTour, s.reloadTours)
	return s
}

// TourList resolves a collection id to its view-model.
func (s *AdminService) TourList(col domain.Collection) (*Collection[domain.Tour], error) {
	switch col {
	case domain.CollectionFullTours:
		return s.FullTours, nil
	case domain.CollectionDayTours:
		return s.DayTours, nil
	}
	return nil, domain.ErrBadCollection
}

// ReloadAll refreshes every snapshot; used when an admin session opens.
func (s *AdminService) ReloadAll(ctx context.Context) error {
	if err := s.FullTours.Reload(ctx); err != nil {
		return fmt.Errorf("load full tours: %w", err)
	}
	if err := s.DayTours.Reload(ctx); err != nil {
		return fmt.Errorf("load day tours: %w", err)
	}
	if err := s.Reviews.Reload(ctx); err != nil {
		return fmt.Errorf("load reviews: %w", err)
	}
	return nil
}

// SaveTour dispatches create vs update on the presence of a bound id.
// On failure nothing is reloaded, so the caller's form state survives for
// a retry. On success the collection snapshot is rebuilt from the store.
func (s *AdminService) SaveTour(ctx context.Context, col domain.Collection, id string, form TourForm) (string, error) {
	t, err := form.Tour(col)
	if err != nil {
		return "", err
	}
	if id == "" {
		t.Active = true
		id, err = s.tours.Add(ctx, col, t)
	} else {
		err = s.tours.Update(ctx, col, id, t)
	}
	if err != nil {
		return "", err
	}
	s.invalidateTours(ctx, col)
	return id, s.reloadTours(ctx, col)
}

// EditTour pre-fills the form from the snapshot; a stale id is a
// reportable miss.
func (s *AdminService) EditTour(col domain.Collection, id string) (domain.Tour, error) {
	list, err := s.TourList(col)
	if err != nil {
		return domain.Tour{}, err
	}
	return list.Lookup(id)
}

// RequestDeleteTour stages a deletion for confirmation.
func (s *AdminService) RequestDeleteTour(col domain.Collection, id string) error {
	return s.Deletes.Request(col, id)
}

func (s *AdminService) CancelDelete() { s.Deletes.Cancel() }

func (s *AdminService) ConfirmDelete(ctx context.Context) error {
	return s.Deletes.Confirm(ctx)
}

// deleteTour removes the stored image first, best-effort, then the row.
func (s *AdminService) deleteTour(ctx context.Context, col domain.Collection, id string) error {
	if t, err := s.tours.Get(ctx, col, id); err == nil && t.ImageURL != "" {
		if derr := s.images.Delete(ctx, t.ImageURL); derr != nil {
			log.Warn().Err(derr).Str("url", t.ImageURL).Msg("tour image delete failed")
		}
	}
	if err := s.tours.Delete(ctx, col, id); err != nil {
		return err
	}
	s.invalidateTours(ctx, col)
	return nil
}

func (s *AdminService) reloadTours(ctx context.Context, col domain.Collection) error {
	list, err := s.TourList(col)
	if err != nil {
		return err
	}
	return list.Reload(ctx)
}

// SetReviewApproved toggles the moderation flag.
func (s *AdminService) SetReviewApproved(ctx context.Context, id string, approved bool) error {
	if err := s.reviews.SetApproved(ctx, id, approved); err != nil {
		return err
	}
	s.invalidateReviews(ctx)
	return s.Reviews.Reload(ctx)
}

func (s *AdminService) DeleteReview(ctx context.Context, id string) error {
	if err := s.reviews.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateReviews(ctx)
	return s.Reviews.Reload(ctx)
}

// UploadImage stores a new tour image and returns its public URL.
func (s *AdminService) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	url, err := s.images.Save(ctx, filename, r)
	if err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	return url, nil
}

func (s *AdminService) invalidateTours(ctx context.Context, col domain.Collection) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, toursCacheKey(col)); err != nil && !errors.Is(err, context.Canceled) {
		log.Warn().Err(err).Str("collection", string(col)).Msg("tours cache invalidation failed")
	}
}

func (s *AdminService) invalidateReviews(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, reviewsCacheKey); err != nil && !errors.Is(err, context.Canceled) {
		log.Warn().Err(err).Msg("reviews cache invalidation failed")
	}
}
