package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"damq_travel/internal/adapters/auth"
	"damq_travel/internal/app"
	"damq_travel/internal/domain"
)

// AdminHandlers serves the back-office API. Everything under /admin/v1
// except login requires a valid session cookie.
type AdminHandlers struct {
	Admin *app.AdminService
	Auth  *auth.Manager
}

func (s *Server) MountAdmin(h *AdminHandlers) {
	s.mux.Route("/admin/v1", func(r chi.Router) {
		r.Post("/login", h.login)

		r.Group(func(r chi.Router) {
			r.Use(h.Auth.Middleware)
			r.Post("/logout", h.logout)
			r.Get("/session", h.session)

			r.Post("/reload", h.reloadAll)
			r.Post("/images", h.uploadImage)

			r.Get("/tours/{category}", h.listTours)
			r.Get("/tours/{category}/fragment", h.tourFragment)
			r.Post("/tours/{category}", h.createTour)
			r.Get("/tours/{category}/{id}", h.editTour)
			r.Put("/tours/{category}/{id}", h.updateTour)
			r.Post("/tours/{category}/{id}/delete", h.requestDelete)

			r.Get("/deletes", h.pendingDelete)
			r.Post("/deletes/confirm", h.confirmDelete)
			r.Post("/deletes/cancel", h.cancelDelete)

			r.Get("/reviews", h.listReviews)
			r.Get("/reviews/fragment", h.reviewFragment)
			r.Put("/reviews/{id}/approved", h.setReviewApproved)
			r.Delete("/reviews/{id}", h.deleteReview)
		})
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func (h *AdminHandlers) login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "request body must be JSON")
		return
	}
	token, err := h.Auth.Login(r.Context(), in.Email, in.Password, ClientIP(r))
	if err != nil {
		status := http.StatusUnauthorized
		if errors.Is(err, auth.ErrThrottled) {
			status = http.StatusTooManyRequests
		}
		writeProblem(w, status, "Login Failed", auth.Message(err))
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"email": in.Email})
}

func (h *AdminHandlers) logout(w http.ResponseWriter, r *http.Request) {
	h.Auth.Logout()
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Unix(0, 0),
	})
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandlers) session(w http.ResponseWriter, r *http.Request) {
	email, _ := auth.EmailFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"email": email})
}

func (h *AdminHandlers) reloadAll(w http.ResponseWriter, r *http.Request) {
	if err := h.Admin.ReloadAll(r.Context()); err != nil {
		writeProblem(w, http.StatusBadGateway, "Reload Failed", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandlers) uploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(16 << 20); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Upload", "multipart form expected")
		return
	}
	f, hdr, err := r.FormFile("image")
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Upload", `"image" file field required`)
		return
	}
	defer f.Close()
	url, err := h.Admin.UploadImage(r.Context(), hdr.Filename, f)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Upload Failed", "could not store image")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}

func (h *AdminHandlers) collection(w http.ResponseWriter, r *http.Request) (domain.Collection, bool) {
	col, ok := parseCategory(chi.URLParam(r, "category"))
	if !ok {
		writeProblem(w, http.StatusNotFound, "Not Found", "unknown tour category")
	}
	return col, ok
}

func (h *AdminHandlers) listTours(w http.ResponseWriter, r *http.Request) {
	col, ok := h.collection(w, r)
	if !ok {
		return
	}
	list, err := h.Admin.TourList(col)
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "unknown tour category")
		return
	}
	if err := list.Reload(r.Context()); err != nil {
		writeProblem(w, http.StatusBadGateway, "Reload Failed", "could not load tours")
		return
	}
	items := list.Items()
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

func (h *AdminHandlers) tourFragment(w http.ResponseWriter, r *http.Request) {
	col, ok := h.collection(w, r)
	if !ok {
		return
	}
	list, err := h.Admin.TourList(col)
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "unknown tour category")
		return
	}
	if err := list.Reload(r.Context()); err != nil {
		writeProblem(w, http.StatusBadGateway, "Reload Failed", "could not load tours")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderTourList(w, list.Items()); err != nil {
		log.Error().Err(err).Msg("render tour fragment failed")
	}
}

func (h *AdminHandlers) createTour(w http.ResponseWriter, r *http.Request) {
	h.saveTour(w, r, "")
}

func (h *AdminHandlers) updateTour(w http.ResponseWriter, r *http.Request) {
	h.saveTour(w, r, chi.URLParam(r, "id"))
}

func (h *AdminHandlers) saveTour(w http.ResponseWriter, r *http.Request, id string) {
	col, ok := h.collection(w, r)
	if !ok {
		return
	}
	var form app.TourForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "request body must be JSON")
		return
	}
	savedID, err := h.Admin.SaveTour(r.Context(), col, id, form)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "tour not found")
		return
	case err != nil:
		writeProblem(w, http.StatusUnprocessableEntity, "Invalid Tour", err.Error())
		return
	}
	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	writeJSON(w, status, map[string]string{"id": savedID})
}

func (h *AdminHandlers) editTour(w http.ResponseWriter, r *http.Request) {
	col, ok := h.collection(w, r)
	if !ok {
		return
	}
	tour, err := h.Admin.EditTour(col, chi.URLParam(r, "id"))
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "tour not found")
		return
	}
	writeJSON(w, http.StatusOK, tour)
}

func (h *AdminHandlers) requestDelete(w http.ResponseWriter, r *http.Request) {
	col, ok := h.collection(w, r)
	if !ok {
		return
	}
	err := h.Admin.RequestDeleteTour(col, chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, domain.ErrDeletePending):
		writeProblem(w, http.StatusConflict, "Delete Pending", "another delete is awaiting confirmation")
		return
	case err != nil:
		writeProblem(w, http.StatusBadRequest, "Invalid Request", err.Error())
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *AdminHandlers) pendingDelete(w http.ResponseWriter, r *http.Request) {
	col, id, ok := h.Admin.Deletes.Pending()
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"pending": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"pending": true, "collection": col, "id": id})
}

func (h *AdminHandlers) confirmDelete(w http.ResponseWriter, r *http.Request) {
	err := h.Admin.ConfirmDelete(r.Context())
	switch {
	case errors.Is(err, domain.ErrNothingPending):
		writeProblem(w, http.StatusConflict, "Nothing Pending", "no delete is awaiting confirmation")
		return
	case err != nil:
		writeProblem(w, http.StatusBadGateway, "Delete Failed", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandlers) cancelDelete(w http.ResponseWriter, r *http.Request) {
	h.Admin.CancelDelete()
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandlers) listReviews(w http.ResponseWriter, r *http.Request) {
	if err := h.Admin.Reviews.Reload(r.Context()); err != nil {
		writeProblem(w, http.StatusBadGateway, "Reload Failed", "could not load reviews")
		return
	}
	items := h.Admin.Reviews.Items()
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

func (h *AdminHandlers) reviewFragment(w http.ResponseWriter, r *http.Request) {
	if err := h.Admin.Reviews.Reload(r.Context()); err != nil {
		writeProblem(w, http.StatusBadGateway, "Reload Failed", "could not load reviews")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderReviewList(w, h.Admin.Reviews.Items()); err != nil {
		log.Error().Err(err).Msg("render review fragment failed")
	}
}

func (h *AdminHandlers) setReviewApproved(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Approved bool `json:"approved"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "request body must be JSON")
		return
	}
	err := h.Admin.SetReviewApproved(r.Context(), chi.URLParam(r, "id"), in.Approved)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "review not found")
		return
	case err != nil:
		writeProblem(w, http.StatusBadGateway, "Update Failed", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandlers) deleteReview(w http.ResponseWriter, r *http.Request) {
	if err := h.Admin.DeleteReview(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeProblem(w, http.StatusBadGateway, "Delete Failed", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
