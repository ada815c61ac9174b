package app_test

import (
	"context"
	"strings"
	"testing"

	"damq_travel/internal/app"
	"damq_travel/internal/domain"
)

func TestMapLegacyTour_DiscriminatorOverridesHint(t *testing.T) {
	doc := map[string]any{
		"type":  "OneDay",
		"name":  "Mtskheta Day Trip",
		"cost":  45.0,
		"place": "Mtskheta",
	}
	col, tour := app.MapLegacyTour(doc, domain.CollectionFullTours)
	if col != domain.CollectionDayTours {
		t.Fatalf("collection: %s", col)
	}
	if tour.Title != "Mtskheta Day Trip" {
		t.Fatalf("title alias: %q", tour.Title)
	}
	if tour.Price != "45" {
		t.Fatalf("numeric price: %q", tour.Price)
	}
	if tour.Location != "Mtskheta" {
		t.Fatalf("location alias: %q", tour.Location)
	}
	if !tour.Active {
		t.Fatal("active should default true")
	}
}

func TestMapLegacyTour_FullTourFields(t *testing.T) {
	doc := map[string]any{
		"title":      "Svaneti Trek",
		"image_url":  "https://cdn.example/svaneti.jpg",
		"price":      "850",
		"rating":     4.9,
		"sort_order": "3",
		"featured":   "true",
		"active":     false,
	}
	col, tour := app.MapLegacyTour(doc, domain.CollectionFullTours)
	if col != domain.CollectionFullTours {
		t.Fatalf("collection: %s", col)
	}
	if tour.ImageURL != "https://cdn.example/svaneti.jpg" {
		t.Fatalf("image alias: %q", tour.ImageURL)
	}
	if tour.Rating != "4.9" {
		t.Fatalf("rating: %q", tour.Rating)
	}
	if tour.Order != 3 {
		t.Fatalf("order from string: %d", tour.Order)
	}
	if !tour.Featured {
		t.Fatal(`featured "true" should map true`)
	}
	if tour.Active {
		t.Fatal("explicit active=false must survive")
	}
	if tour.Location != "" {
		t.Fatal("full tours carry no location")
	}
}

func TestMapLegacyReview_RatingClampAndAliases(t *testing.T) {
	doc := map[string]any{
		"first_name": "Nino",
		"lastname":   "Beridze",
		"location":   "Georgia",
		"stars":      11.0,
		"comment":    "Amazing trip",
	}
	r := app.MapLegacyReview(doc)
	if r.FirstName != "Nino" || r.LastName != "Beridze" {
		t.Fatalf("name aliases: %q %q", r.FirstName, r.LastName)
	}
	if r.Country != "Georgia" {
		t.Fatalf("country alias: %q", r.Country)
	}
	if r.Rating != 5 {
		t.Fatalf("out-of-range rating should clamp to 5, got %d", r.Rating)
	}
	if r.Text != "Amazing trip" {
		t.Fatalf("text alias: %q", r.Text)
	}
	if !r.Approved {
		t.Fatal("approved should default true")
	}
}

func TestLegacyExport_JobsFlattenBothSchemas(t *testing.T) {
	in := strings.NewReader(`{
		"fullTours": [{"title": "A"}],
		"dayTours":  [{"title": "B"}],
		"tours":     [{"title": "C", "type": "multiday"}],
		"reviews":   [{"firstName": "Nino"}]
	}`)
	ex, err := app.ParseLegacyExport(in)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	jobs := ex.Jobs()
	if len(jobs) != 4 {
		t.Fatalf("jobs: %d", len(jobs))
	}
	if jobs[0].Hint != domain.CollectionFullTours || jobs[1].Hint != domain.CollectionDayTours {
		t.Fatalf("hints: %s %s", jobs[0].Hint, jobs[1].Hint)
	}
	if jobs[2].Hint != "" || jobs[2].Kind != app.ImportTour {
		t.Fatalf("discriminator job: %+v", jobs[2])
	}
	if jobs[3].Kind != app.ImportReview {
		t.Fatalf("review job: %+v", jobs[3])
	}
}

func TestImport_RejectsUnmappableDocuments(t *testing.T) {
	repo := newFakeTourRepo()
	reviews := &fakeReviewRepo{}
	imp := app.NewImportService(repo, reviews)
	ctx := context.Background()

	// tour with no resolvable collection
	err := imp.Import(ctx, app.ImportJob{Doc: map[string]any{"title": "X"}, Kind: app.ImportTour})
	if err == nil {
		t.Fatal("expected rejection for missing category")
	}
	// tour with no title
	err = imp.Import(ctx, app.ImportJob{Doc: map[string]any{}, Hint: domain.CollectionDayTours, Kind: app.ImportTour})
	if err == nil {
		t.Fatal("expected rejection for missing title")
	}
	// authorless review
	err = imp.Import(ctx, app.ImportJob{Doc: map[string]any{"text": "hi"}, Kind: app.ImportReview})
	if err == nil {
		t.Fatal("expected rejection for authorless review")
	}

	if len(repo.items[domain.CollectionDayTours]) != 0 || len(reviews.items) != 0 {
		t.Fatal("rejected documents must not be stored")
	}
}
