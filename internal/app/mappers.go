package app

import (
	"strconv"
	"strings"

	"damq_travel/internal/domain"
)

// Legacy export documents are loosely typed: two historical schemas
// coexist (per-category arrays and a single "tours" array carrying a
// type discriminator), field names vary between camelCase and
// snake_case, and numbers arrive as numbers or strings. The alias
// registries below are the single source of truth for that mess.

var tourAliases = map[string][]string{
	"title":       {"title", "name", "tour_title"},
	"description": {"description", "desc", "text"},
	"imageUrl":    {"imageUrl", "image_url", "image", "img"},
	"duration":    {"duration", "length"},
	"groupSize":   {"groupSize", "group_size", "group"},
	"price":       {"price", "cost"},
	"rating":      {"rating", "score"},
	"badge":       {"badge", "tag", "label"},
	"location":    {"location", "place", "region"},
}

var reviewAliases = map[string][]string{
	"firstName": {"firstName", "first_name", "firstname"},
	"lastName":  {"lastName", "last_name", "lastname"},
	"country":   {"country", "location"},
	"text":      {"text", "review", "comment", "body"},
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// firstAlias: first non-empty string for a named alias set.
func firstAlias(m map[string]any, aliases map[string][]string, key string) string {
	for _, p := range aliases[key] {
		if s := strings.TrimSpace(lookupStr(m, p)); s != "" {
			return s
		}
	}
	return ""
}

// numericString renders a number-or-string field as the trimmed string
// the domain stores (price and rating are numeric-as-string).
func numericString(m map[string]any, paths ...string) string {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			if v == float64(int64(v)) {
				return strconv.FormatInt(int64(v), 10)
			}
			return strconv.FormatFloat(v, 'f', -1, 64)
		case int:
			return strconv.Itoa(v)
		}
	}
	return ""
}

// intFlexible: int from number or string, defaulting to 0.
func intFlexible(m map[string]any, paths ...string) int {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			return int(v)
		case int:
			return v
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return n
			}
		}
	}
	return 0
}

func boolFlexible(m map[string]any, def bool, paths ...string) bool {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case bool:
			return v
		case string:
			if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
				return b
			}
		}
	}
	return def
}

/********** tour mapper **********/

// MapLegacyTour converts one export document into a Tour and the
// collection it belongs to. Documents from the discriminator schema are
// routed by their type field; hint names the source array otherwise.
func MapLegacyTour(doc map[string]any, hint domain.Collection) (domain.Collection, domain.Tour) {
	col := hint
	switch strings.ToLower(lookupStr(doc, "type")) {
	case "multiday":
		col = domain.CollectionFullTours
	case "oneday":
		col = domain.CollectionDayTours
	}

	t := domain.Tour{
		Title:       firstAlias(doc, tourAliases, "title"),
		Description: firstAlias(doc, tourAliases, "description"),
		ImageURL:    firstAlias(doc, tourAliases, "imageUrl"),
		Duration:    firstAlias(doc, tourAliases, "duration"),
		GroupSize:   firstAlias(doc, tourAliases, "groupSize"),
		Price:       numericString(doc, tourAliases["price"]...),
		Badge:       firstAlias(doc, tourAliases, "badge"),
		Order:       intFlexible(doc, "order", "sort_order", "sortOrder"),
		Active:      boolFlexible(doc, true, "active"),
	}
	switch col {
	case domain.CollectionFullTours:
		t.Rating = numericString(doc, tourAliases["rating"]...)
		t.Featured = boolFlexible(doc, false, "featured")
	case domain.CollectionDayTours:
		t.Location = firstAlias(doc, tourAliases, "location")
	}
	return col, t
}

/********** review mapper **********/

func MapLegacyReview(doc map[string]any) domain.Review {
	rating := intFlexible(doc, "rating", "stars", "score")
	if rating < 1 || rating > 5 {
		rating = 5
	}
	return domain.Review{
		FirstName: firstAlias(doc, reviewAliases, "firstName"),
		LastName:  firstAlias(doc, reviewAliases, "lastName"),
		Country:   firstAlias(doc, reviewAliases, "country"),
		Rating:    rating,
		Text:      firstAlias(doc, reviewAliases, "text"),
		Approved:  boolFlexible(doc, true, "approved"),
	}
}
