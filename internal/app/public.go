package app

import (
	"context"
	"fmt"
	"time"

	"damq_travel/internal/domain"
)

const reviewsCacheKey = "reviews:approved"

func toursCacheKey(col domain.Collection) string {
	return fmt.Sprintf("tours:%s:public", col)
}

// PublicService serves the marketing site's read paths through a
// cache-aside layer and accepts public review submissions.
type PublicService struct {
	tours    domain.TourRepository
	reviews  domain.ReviewRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewPublicService(t domain.TourRepository, r domain.ReviewRepository, c domain.Cache, ttl time.Duration) *PublicService {
	return &PublicService{tours: t, reviews: r, cache: c, cacheTTL: ttl}
}

// ListTours returns active listings for one category, sort priority first.
func (s *PublicService) ListTours(ctx context.Context, col domain.Collection) ([]domain.Tour, error) {
	if !col.Valid() {
		return nil, domain.ErrBadCollection
	}
	key := toursCacheKey(col)
	var cached []domain.Tour
	if ok, _ := s.cache.Get(ctx, key, &cached); ok {
		return cached, nil
	}
	out, err := s.tours.ListPublic(ctx, col)
	if err != nil {
		return nil, err
	}
	// copy before caching so callers cannot mutate the cached value
	_ = s.cache.Set(ctx, key, copyTours(out), int(s.cacheTTL.Seconds()))
	return out, nil
}

// ListReviews returns approved reviews, newest first.
func (s *PublicService) ListReviews(ctx context.Context) ([]domain.Review, error) {
	var cached []domain.Review
	if ok, _ := s.cache.Get(ctx, reviewsCacheKey, &cached); ok {
		return cached, nil
	}
	out, err := s.reviews.ListApproved(ctx)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, reviewsCacheKey, copyReviews(out), int(s.cacheTTL.Seconds()))
	return out, nil
}

// SubmitReview validates and persists a public review. New reviews go
// live immediately, so the approved-reviews cache is dropped.
func (s *PublicService) SubmitReview(ctx context.Context, in ReviewInput) (domain.Review, error) {
	r, err := in.review()
	if err != nil {
		return domain.Review{}, err
	}
	id, err := s.reviews.Add(ctx, r)
	if err != nil {
		return domain.Review{}, err
	}
	r.ID = id
	_ = s.cache.Del(ctx, reviewsCacheKey)
	return r, nil
}

// Regions returns the fixed map marker set.
func (s *PublicService) Regions() []domain.Region {
	out := make([]domain.Region, len(domain.Regions))
	copy(out, domain.Regions)
	return out
}

func copyTours(in []domain.Tour) []domain.Tour {
	out := make([]domain.Tour, len(in))
	copy(out, in)
	return out
}

func copyReviews(in []domain.Review) []domain.Review {
	out := make([]domain.Review, len(in))
	copy(out, in)
	return out
}
