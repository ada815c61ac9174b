package app_test

import (
	"errors"
	"testing"

	"damq_travel/internal/app"
	"damq_travel/internal/domain"
)

func TestTourForm_OrderParseFailureDefaultsToZero(t *testing.T) {
	for _, raw := range []string{"", "  ", "abc", "1.5"} {
		form := app.TourForm{Title: "T", Order: raw}
		tour, err := form.Tour(domain.CollectionFullTours)
		if err != nil {
			t.Fatalf("order %q: %v", raw, err)
		}
		if tour.Order != 0 {
			t.Fatalf("order %q should default to 0, got %d", raw, tour.Order)
		}
	}

	tour, err := app.TourForm{Title: "T", Order: " 7 "}.Tour(domain.CollectionFullTours)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if tour.Order != 7 {
		t.Fatalf("order: %d", tour.Order)
	}
}

func TestTourForm_TrimsAndValidates(t *testing.T) {
	form := app.TourForm{Title: "  Svaneti Trek  ", Price: " 850 "}
	tour, err := form.Tour(domain.CollectionFullTours)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if tour.Title != "Svaneti Trek" || tour.Price != "850" {
		t.Fatalf("trim: %q %q", tour.Title, tour.Price)
	}

	if _, err := (app.TourForm{Title: "   "}).Tour(domain.CollectionFullTours); err == nil {
		t.Fatal("whitespace title must fail validation")
	}
	if _, err := (app.TourForm{Title: "T", ImageURL: "not a url"}).Tour(domain.CollectionFullTours); err == nil {
		t.Fatal("malformed image url must fail validation")
	}
}

func TestTourForm_DropsForeignCategoryFields(t *testing.T) {
	form := app.TourForm{Title: "T", Rating: "4.9", Featured: true, Location: "Kakheti"}

	full, err := form.Tour(domain.CollectionFullTours)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if full.Rating != "4.9" || !full.Featured || full.Location != "" {
		t.Fatalf("full tour fields: %+v", full)
	}

	day, err := form.Tour(domain.CollectionDayTours)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if day.Location != "Kakheti" || day.Rating != "" || day.Featured {
		t.Fatalf("day tour fields: %+v", day)
	}
}

func TestTourForm_BadCollection(t *testing.T) {
	_, err := app.TourForm{Title: "T"}.Tour("wishlist")
	if !errors.Is(err, domain.ErrBadCollection) {
		t.Fatalf("expected ErrBadCollection, got %v", err)
	}
}
