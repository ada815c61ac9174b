package domain

import "time"

// Collection identifies one of the two disjoint tour stores. A listing
// belongs to exactly one collection; there is no type field on the entity.
type Collection string

const (
	CollectionFullTours Collection = "full_tours"
	CollectionDayTours  Collection = "day_tours"
)

func (c Collection) Valid() bool {
	return c == CollectionFullTours || c == CollectionDayTours
}

// PlaceholderImageURL is rendered whenever a listing has no image of its own.
const PlaceholderImageURL = "https://placehold.co/80x60/1a1a2e/ffffff?text=IMG"

type Tour struct {
	ID          string    `json:"id"` // assigned by the store; empty until first persisted
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	Duration    string    `json:"duration"`
	GroupSize   string    `json:"groupSize"`
	Price       string    `json:"price"` // numeric-as-string, not validated at input time
	Rating      string    `json:"rating,omitempty"` // full tours only
	Badge       string    `json:"badge"`
	Location    string    `json:"location,omitempty"` // day tours only
	Order       int       `json:"order"`
	Featured    bool      `json:"featured"` // full tours only
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DisplayImageURL never returns an empty src.
func (t Tour) DisplayImageURL() string {
	if t.ImageURL == "" {
		return PlaceholderImageURL
	}
	return t.ImageURL
}
