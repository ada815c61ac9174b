package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"damq_travel/internal/app"
	"damq_travel/internal/domain"
)

type Handlers struct{ Pub *app.PublicService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/tours/{category}", h.listTours)
	s.mux.Get("/v1/reviews", h.listReviews)
	s.mux.Post("/v1/reviews", h.submitReview)
	s.mux.Get("/v1/regions", h.listRegions)
}

// parseCategory maps URL category segments to catalog collections. The
// site's own names (multiday/oneday) and the storage names are both
// accepted.
func parseCategory(s string) (domain.Collection, bool) {
	switch s {
	case "multiday", string(domain.CollectionFullTours):
		return domain.CollectionFullTours, true
	case "oneday", string(domain.CollectionDayTours):
		return domain.CollectionDayTours, true
	}
	return "", false
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeCachedJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func (h *Handlers) listTours(w http.ResponseWriter, r *http.Request) {
	col, ok := parseCategory(chi.URLParam(r, "category"))
	if !ok {
		writeProblem(w, http.StatusNotFound, "Not Found", "unknown tour category")
		return
	}
	tours, err := h.Pub.ListTours(r.Context(), col)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "could not load tours")
		return
	}
	writeCachedJSON(w, r, map[string]any{"items": tours, "count": len(tours)})
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Pub.ListReviews(r.Context())
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "could not load reviews")
		return
	}
	writeCachedJSON(w, r, map[string]any{"items": reviews, "count": len(reviews)})
}

func (h *Handlers) submitReview(w http.ResponseWriter, r *http.Request) {
	var in app.ReviewInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "request body must be JSON")
		return
	}
	review, err := h.Pub.SubmitReview(r.Context(), in)
	if err != nil {
		writeProblem(w, http.StatusUnprocessableEntity, "Invalid Review", err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(review); err != nil {
		log.Error().Err(err).Msg("failed to write submitReview body")
	}
}

func (h *Handlers) listRegions(w http.ResponseWriter, r *http.Request) {
	writeCachedJSON(w, r, h.Pub.Regions())
}
