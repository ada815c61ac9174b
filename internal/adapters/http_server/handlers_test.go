package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"damq_travel/internal/adapters/auth"
	httpserver "damq_travel/internal/adapters/http_server"
	"damq_travel/internal/app"
	"damq_travel/internal/domain"
)

// ---- fakes ----

type memTours struct {
	items  map[domain.Collection][]domain.Tour
	nextID int
}

func newMemTours() *memTours { return &memTours{items: map[domain.Collection][]domain.Tour{}} }

func (m *memTours) GetAll(ctx context.Context, col domain.Collection) ([]domain.Tour, error) {
	out := make([]domain.Tour, len(m.items[col]))
	copy(out, m.items[col])
	return out, nil
}

func (m *memTours) Get(ctx context.Context, col domain.Collection, id string) (domain.Tour, error) {
	for _, t := range m.items[col] {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.Tour{}, domain.ErrNotFound
}

func (m *memTours) Add(ctx context.Context, col domain.Collection, t domain.Tour) (string, error) {
	m.nextID++
	t.ID = fmt.Sprintf("t%d", m.nextID)
	m.items[col] = append(m.items[col], t)
	return t.ID, nil
}

func (m *memTours) Update(ctx context.Context, col domain.Collection, id string, t domain.Tour) error {
	for i, old := range m.items[col] {
		if old.ID == id {
			t.ID = id
			m.items[col][i] = t
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memTours) Delete(ctx context.Context, col domain.Collection, id string) error {
	for i, t := range m.items[col] {
		if t.ID == id {
			m.items[col] = append(m.items[col][:i], m.items[col][i+1:]...)
			break
		}
	}
	return nil
}

func (m *memTours) ListPublic(ctx context.Context, col domain.Collection) ([]domain.Tour, error) {
	var out []domain.Tour
	for _, t := range m.items[col] {
		if t.Active {
			out = append(out, t)
		}
	}
	return out, nil
}

type memReviews struct {
	items  []domain.Review
	nextID int
}

func (m *memReviews) GetAll(ctx context.Context) ([]domain.Review, error) {
	out := make([]domain.Review, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *memReviews) Add(ctx context.Context, r domain.Review) (string, error) {
	m.nextID++
	r.ID = fmt.Sprintf("r%d", m.nextID)
	m.items = append(m.items, r)
	return r.ID, nil
}

func (m *memReviews) SetApproved(ctx context.Context, id string, approved bool) error {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].Approved = approved
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memReviews) Delete(ctx context.Context, id string) error {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memReviews) ListApproved(ctx context.Context) ([]domain.Review, error) {
	var out []domain.Review
	for _, r := range m.items {
		if r.Approved {
			out = append(out, r)
		}
	}
	return out, nil
}

type memCache struct{ store map[string]any }

func (c *memCache) Get(ctx context.Context, key string, dst any) (bool, error) { return false, nil }
func (c *memCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	return nil
}
func (c *memCache) Del(ctx context.Context, key string) error { return nil }

type memImages struct{}

func (memImages) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	return "/uploads/tours/1_" + filename, nil
}
func (memImages) Delete(ctx context.Context, url string) error { return nil }

// ---- harness ----

type env struct {
	ts       *httptest.Server
	tours    *memTours
	reviews  *memReviews
	sessions *auth.Manager
}

func newEnv(t *testing.T) *env {
	t.Helper()
	tours := newMemTours()
	reviews := &memReviews{}
	cache := &memCache{}

	pub := app.NewPublicService(tours, reviews, cache, time.Minute)
	admin := app.NewAdminService(tours, reviews, memImages{}, cache)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	sessions := auth.New("admin@damq.example", string(hash), []byte("test-secret"), time.Hour)

	srv := httpserver.New()
	srv.MountHandlers(&httpserver.Handlers{Pub: pub})
	srv.MountAdmin(&httpserver.AdminHandlers{Admin: admin, Auth: sessions})

	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return &env{ts: ts, tours: tours, reviews: reviews, sessions: sessions}
}

func (e *env) loginCookie(t *testing.T) *http.Cookie {
	t.Helper()
	res, err := http.Post(e.ts.URL+"/admin/v1/login", "application/json",
		strings.NewReader(`{"email":"admin@damq.example","password":"correct-horse"}`))
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("login status: %d", res.StatusCode)
	}
	for _, c := range res.Cookies() {
		if c.Name == auth.SessionCookie {
			return c
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}

func (e *env) do(t *testing.T, method, path string, body string, cookie *http.Cookie) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, e.ts.URL+path, rd)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return res
}

// ---- tests ----

func TestPublicTours_CategoryMappingAndETag(t *testing.T) {
	e := newEnv(t)
	_, _ = e.tours.Add(context.Background(), domain.CollectionFullTours,
		domain.Tour{Title: "Svaneti Trek", Active: true})

	res := e.do(t, "GET", "/v1/tours/multiday", "", nil)
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status: %d", res.StatusCode)
	}
	etag := res.Header.Get("ETag")
	if etag == "" {
		t.Fatal("expected ETag")
	}
	var body struct {
		Items []domain.Tour `json:"items"`
		Count int           `json:"count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Count != 1 || body.Items[0].Title != "Svaneti Trek" {
		t.Fatalf("body: %+v", body)
	}

	// revalidation short-circuits
	req, _ := http.NewRequest("GET", e.ts.URL+"/v1/tours/multiday", nil)
	req.Header.Set("If-None-Match", etag)
	res2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res2.Body.Close()
	if res2.StatusCode != http.StatusNotModified {
		t.Fatalf("revalidation status: %d", res2.StatusCode)
	}

	res3 := e.do(t, "GET", "/v1/tours/weekend", "", nil)
	defer res3.Body.Close()
	if res3.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown category status: %d", res3.StatusCode)
	}
}

func TestPublicReviews_SubmitAndList(t *testing.T) {
	e := newEnv(t)

	res := e.do(t, "POST", "/v1/reviews",
		`{"firstName":"Nino","lastName":"Beridze","country":"Georgia","rating":5,"text":"Great"}`, nil)
	defer res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("submit status: %d", res.StatusCode)
	}

	bad := e.do(t, "POST", "/v1/reviews", `{"firstName":"Nino","rating":9}`, nil)
	defer bad.Body.Close()
	if bad.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("invalid submit status: %d", bad.StatusCode)
	}
	if ct := bad.Header.Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("problem content type: %q", ct)
	}

	list := e.do(t, "GET", "/v1/reviews", "", nil)
	defer list.Body.Close()
	var body struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(list.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Count != 1 {
		t.Fatalf("count: %d", body.Count)
	}
}

func TestPublicRegions(t *testing.T) {
	e := newEnv(t)
	res := e.do(t, "GET", "/v1/regions", "", nil)
	defer res.Body.Close()
	var regions []domain.Region
	if err := json.NewDecoder(res.Body).Decode(&regions); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(regions) != 12 {
		t.Fatalf("regions: %d", len(regions))
	}
}

func TestAdminLogin_FailureMessage(t *testing.T) {
	e := newEnv(t)
	res := e.do(t, "POST", "/admin/v1/login",
		`{"email":"admin@damq.example","password":"wrong"}`, nil)
	defer res.Body.Close()
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status: %d", res.StatusCode)
	}
	var p struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(res.Body).Decode(&p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Detail != "Неверный пароль." {
		t.Fatalf("detail: %q", p.Detail)
	}
}

func TestAdminRoutes_RequireSession(t *testing.T) {
	e := newEnv(t)
	for _, path := range []string{"/admin/v1/tours/multiday", "/admin/v1/reviews", "/admin/v1/deletes"} {
		res := e.do(t, "GET", path, "", nil)
		res.Body.Close()
		if res.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s without cookie: %d", path, res.StatusCode)
		}
	}
}

func TestAdminTourLifecycle(t *testing.T) {
	e := newEnv(t)
	cookie := e.loginCookie(t)

	// create
	res := e.do(t, "POST", "/admin/v1/tours/multiday",
		`{"title":"Svaneti Trek","price":"850","order":"oops"}`, cookie)
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("create status: %d", res.StatusCode)
	}
	var created struct {
		ID string `json:"id"`
	}
	_ = json.NewDecoder(res.Body).Decode(&created)
	res.Body.Close()
	if created.ID == "" {
		t.Fatal("no id returned")
	}

	// edit prefill
	res = e.do(t, "GET", "/admin/v1/tours/multiday/"+created.ID, "", cookie)
	var tour domain.Tour
	_ = json.NewDecoder(res.Body).Decode(&tour)
	res.Body.Close()
	if tour.Order != 0 || tour.Price != "850" || !tour.Active {
		t.Fatalf("prefill: %+v", tour)
	}

	// update
	res = e.do(t, "PUT", "/admin/v1/tours/multiday/"+created.ID,
		`{"title":"Svaneti Trek","price":"900","active":true}`, cookie)
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("update status: %d", res.StatusCode)
	}

	// stage delete, then a second request conflicts
	res = e.do(t, "POST", "/admin/v1/tours/multiday/"+created.ID+"/delete", "", cookie)
	res.Body.Close()
	if res.StatusCode != http.StatusAccepted {
		t.Fatalf("stage status: %d", res.StatusCode)
	}
	res = e.do(t, "POST", "/admin/v1/tours/multiday/"+created.ID+"/delete", "", cookie)
	res.Body.Close()
	if res.StatusCode != http.StatusConflict {
		t.Fatalf("second stage status: %d", res.StatusCode)
	}

	// confirm removes the row
	res = e.do(t, "POST", "/admin/v1/deletes/confirm", "", cookie)
	res.Body.Close()
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("confirm status: %d", res.StatusCode)
	}
	if len(e.tours.items[domain.CollectionFullTours]) != 0 {
		t.Fatal("tour not deleted")
	}

	// nothing left to confirm
	res = e.do(t, "POST", "/admin/v1/deletes/confirm", "", cookie)
	res.Body.Close()
	if res.StatusCode != http.StatusConflict {
		t.Fatalf("empty confirm status: %d", res.StatusCode)
	}
}

func TestAdminFragments_PlaceholderAndEmptyState(t *testing.T) {
	e := newEnv(t)
	cookie := e.loginCookie(t)

	res := e.do(t, "GET", "/admin/v1/tours/oneday/fragment", "", cookie)
	body, _ := io.ReadAll(res.Body)
	res.Body.Close()
	if !bytes.Contains(body, []byte("empty-state")) {
		t.Fatalf("empty fragment: %s", body)
	}

	_, _ = e.tours.Add(context.Background(), domain.CollectionDayTours,
		domain.Tour{Title: "Mtskheta", Active: true})
	res = e.do(t, "GET", "/admin/v1/tours/oneday/fragment", "", cookie)
	body, _ = io.ReadAll(res.Body)
	res.Body.Close()
	if !bytes.Contains(body, []byte("Mtskheta")) {
		t.Fatalf("fragment missing row: %s", body)
	}
	if !bytes.Contains(body, []byte(domain.PlaceholderImageURL)) {
		t.Fatal("imageless row should fall back to the placeholder")
	}
}

func TestAdminReviews_Moderation(t *testing.T) {
	e := newEnv(t)
	cookie := e.loginCookie(t)
	id, _ := e.reviews.Add(context.Background(), domain.Review{FirstName: "Nino", Approved: true})

	res := e.do(t, "PUT", "/admin/v1/reviews/"+id+"/approved", `{"approved":false}`, cookie)
	res.Body.Close()
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("moderate status: %d", res.StatusCode)
	}
	if e.reviews.items[0].Approved {
		t.Fatal("review still approved")
	}

	res = e.do(t, "PUT", "/admin/v1/reviews/missing/approved", `{"approved":true}`, cookie)
	res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("missing review status: %d", res.StatusCode)
	}

	res = e.do(t, "DELETE", "/admin/v1/reviews/"+id, "", cookie)
	res.Body.Close()
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status: %d", res.StatusCode)
	}
	if len(e.reviews.items) != 0 {
		t.Fatal("review not deleted")
	}
}
