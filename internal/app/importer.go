package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"damq_travel/internal/domain"
)

// LegacyExport is the JSON shape of a document-store dump. Either the
// per-category arrays or the discriminator-schema Tours array may be
// present; both are accepted in one file.
type LegacyExport struct {
	FullTours []map[string]any `json:"fullTours"`
	DayTours  []map[string]any `json:"dayTours"`
	Tours     []map[string]any `json:"tours"`
	Reviews   []map[string]any `json:"reviews"`
}

func ParseLegacyExport(r io.Reader) (LegacyExport, error) {
	var ex LegacyExport
	if err := json.NewDecoder(r).Decode(&ex); err != nil {
		return LegacyExport{}, fmt.Errorf("decode export: %w", err)
	}
	return ex, nil
}

// ImportJob is one mappable document plus where it came from.
type ImportJob struct {
	Doc  map[string]any
	Hint domain.Collection // zero for reviews and discriminator docs
	Kind ImportKind
}

type ImportKind int

const (
	ImportTour ImportKind = iota
	ImportReview
)

// Jobs flattens an export into individually importable documents.
func (ex LegacyExport) Jobs() []ImportJob {
	jobs := make([]ImportJob, 0, len(ex.FullTours)+len(ex.DayTours)+len(ex.Tours)+len(ex.Reviews))
	for _, d := range ex.FullTours {
		jobs = append(jobs, ImportJob{Doc: d, Hint: domain.CollectionFullTours, Kind: ImportTour})
	}
	for _, d := range ex.DayTours {
		jobs = append(jobs, ImportJob{Doc: d, Hint: domain.CollectionDayTours, Kind: ImportTour})
	}
	for _, d := range ex.Tours {
		jobs = append(jobs, ImportJob{Doc: d, Kind: ImportTour})
	}
	for _, d := range ex.Reviews {
		jobs = append(jobs, ImportJob{Doc: d, Kind: ImportReview})
	}
	return jobs
}

// ImportService writes mapped legacy documents into the canonical store.
type ImportService struct {
	tours   domain.TourRepository
	reviews domain.ReviewRepository
}

func NewImportService(t domain.TourRepository, r domain.ReviewRepository) *ImportService {
	return &ImportService{tours: t, reviews: r}
}

// Import persists one job. Tour documents without a resolvable category
// or title are rejected rather than silently guessed.
func (s *ImportService) Import(ctx context.Context, job ImportJob) error {
	switch job.Kind {
	case ImportTour:
		col, t := MapLegacyTour(job.Doc, job.Hint)
		if !col.Valid() {
			return domain.ErrBadCollection
		}
		if t.Title == "" {
			return fmt.Errorf("tour document has no title")
		}
		_, err := s.tours.Add(ctx, col, t)
		return err
	case ImportReview:
		r := MapLegacyReview(job.Doc)
		if r.FirstName == "" && r.LastName == "" {
			return fmt.Errorf("review document has no author")
		}
		_, err := s.reviews.Add(ctx, r)
		return err
	}
	return fmt.Errorf("unknown import kind %d", job.Kind)
}
