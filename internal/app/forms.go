package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"damq_travel/internal/domain"
)

var validate = validator.New()

// TourForm carries raw posted field values. Order stays a string until
// Tour() parses it so a bad value degrades to 0 instead of rejecting the
// submission.
type TourForm struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,url"`
	Duration    string `json:"duration"`
	GroupSize   string `json:"groupSize"`
	Price       string `json:"price"`
	Rating      string `json:"rating"`
	Badge       string `json:"badge"`
	Location    string `json:"location"`
	Order       string `json:"order"`
	Featured    bool   `json:"featured"`
	Active      bool   `json:"active"`
}

// Tour trims every string field, parses the sort priority and validates
// the result for the given collection. Category-specific fields that do
// not belong to the collection are dropped rather than rejected.
func (f TourForm) Tour(col domain.Collection) (domain.Tour, error) {
	t := domain.Tour{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		ImageURL:    strings.TrimSpace(f.ImageURL),
		Duration:    strings.TrimSpace(f.Duration),
		GroupSize:   strings.TrimSpace(f.GroupSize),
		Price:       strings.TrimSpace(f.Price),
		Badge:       f.Badge,
		Order:       parseOrder(f.Order),
		Active:      f.Active,
	}
	switch col {
	case domain.CollectionFullTours:
		t.Rating = strings.TrimSpace(f.Rating)
		t.Featured = f.Featured
	case domain.CollectionDayTours:
		t.Location = strings.TrimSpace(f.Location)
	default:
		return domain.Tour{}, domain.ErrBadCollection
	}

	checked := f
	checked.Title = t.Title
	checked.ImageURL = t.ImageURL
	if err := validate.Struct(checked); err != nil {
		return domain.Tour{}, fmt.Errorf("invalid tour form: %w", err)
	}
	return t, nil
}

// parseOrder defaults to 0 on any parse failure, matching the admin
// form's behaviour for an unset or garbled field.
func parseOrder(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// ReviewInput is a public review submission. All fields are required;
// rating must be a real star value.
type ReviewInput struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Country   string `json:"country" validate:"required"`
	Rating    int    `json:"rating" validate:"min=1,max=5"`
	Text      string `json:"text" validate:"required"`
}

func (in ReviewInput) review() (domain.Review, error) {
	r := domain.Review{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Country:   strings.TrimSpace(in.Country),
		Rating:    in.Rating,
		Text:      strings.TrimSpace(in.Text),
		Approved:  true, // public submissions go live; admins can pull them
	}
	checked := in
	checked.FirstName = r.FirstName
	checked.LastName = r.LastName
	checked.Country = r.Country
	checked.Text = r.Text
	if err := validate.Struct(checked); err != nil {
		return domain.Review{}, fmt.Errorf("invalid review: %w", err)
	}
	return r, nil
}
