package web

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/auth"
	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/geo"
	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/model"
	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/search"
	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/store"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	dir := filepath.Join(os.TempDir(), "temple-finder-web-test-"+t.Name())
	os.RemoveAll(dir)
	t.Cleanup(func() { os.RemoveAll(dir) })

	s, err := store.New(dir)
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return &Server{
		Store:    s,
		Searcher: &search.Searcher{Catalog: s},
		Auth: &auth.Service{
			Users: s,
			Tokens: &auth.TokenFactory{
				Secret:   []byte("test-secret"),
				Issuer:   "temple-finder",
				Validity: time.Hour,
			},
		},
		Addr: "localhost:0",
	}
}

func seedPune(t *testing.T, srv *Server) []*model.Temple {
	t.Helper()
	temples := []*model.Temple{
		{Name: "Dagadusheth Halwai Ganapati", Category: model.CategoryHindu, City: "Pune",
			Location: &geo.Coordinate{Lat: 18.5164, Lng: 73.8560}},
		{Name: "Parvati Jain Temple", Category: model.CategoryJain, City: "Pune",
			Location: &geo.Coordinate{Lat: 18.4950, Lng: 73.8440}},
		{Name: "Shree Siddhivinayak", Category: model.CategoryHindu, City: "Mumbai",
			Location: &geo.Coordinate{Lat: 19.0170, Lng: 72.8300}},
	}
	for _, tm := range temples {
		if err := srv.Store.InsertTemple(tm); err != nil {
			t.Fatalf("seeding: %v", err)
		}
	}
	return temples
}

func do(srv *Server, method, target string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, req)
	return w
}

func TestSearchRanked(t *testing.T) {
	srv := testServer(t)
	seedPune(t, srv)

	w := do(srv, "GET", "/api/temples?lat=18.5204&lng=73.8567&radius_km=10", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var results []search.Result
	if err := json.NewDecoder(w.Body).Decode(&results); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 temples within 10 km, got %d", len(results))
	}
	if results[0].Name != "Dagadusheth Halwai Ganapati" {
		t.Errorf("nearest temple first, got %q", results[0].Name)
	}
	if results[0].DistanceKm == nil || math.Abs(*results[0].DistanceKm-0.45) > 0.02 {
		t.Errorf("unexpected distance annotation: %v", results[0].DistanceKm)
	}
}

func TestSearchUnrankedHasNoDistance(t *testing.T) {
	srv := testServer(t)
	seedPune(t, srv)

	w := do(srv, "GET", "/api/temples?city=pune&category=jain", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	if strings.Contains(w.Body.String(), "distance_km") {
		t.Error("unranked search must not annotate distance")
	}

	var results []search.Result
	if err := json.NewDecoder(w.Body).Decode(&results); err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Name != "Parvati Jain Temple" {
		t.Errorf("unexpected results: %+v", results)
	}
}

func TestSearchEmptyResultIsJSONArray(t *testing.T) {
	srv := testServer(t)
	seedPune(t, srv)

	w := do(srv, "GET", "/api/temples?lat=18.5204&lng=73.8567&radius_km=0.001", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Errorf("expected [], got %q", got)
	}
}

func TestSearchBadParams(t *testing.T) {
	srv := testServer(t)
	seedPune(t, srv)

	cases := []string{
		"/api/temples?lat=abc&lng=73.85",
		"/api/temples?lat=18.52&lng=xyz",
		"/api/temples?lat=18.52",
		"/api/temples?lng=73.85",
		"/api/temples?category=cathedral",
		"/api/temples?lat=18.52&lng=73.85&radius_km=nope",
		"/api/temples?lat=123&lng=73.85",
		"/api/temples?lat=18.52&lng=73.85&radius_km=-5",
		// strconv.ParseFloat happily accepts these literals.
		"/api/temples?lat=18.52&lng=73.85&radius_km=NaN",
		"/api/temples?lat=18.52&lng=73.85&radius_km=%2BInf",
	}
	for _, target := range cases {
		if w := do(srv, "GET", target, ""); w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, w.Code)
		}
	}
}

func TestTempleByID(t *testing.T) {
	srv := testServer(t)
	temples := seedPune(t, srv)

	w := do(srv, "GET", fmt.Sprintf("/api/temples/%d", temples[0].ID), "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var detail model.TempleDetail
	if err := json.NewDecoder(w.Body).Decode(&detail); err != nil {
		t.Fatal(err)
	}
	if detail.Name != "Dagadusheth Halwai Ganapati" || detail.ReviewCount != 0 {
		t.Errorf("unexpected detail: %+v", detail)
	}

	if w := do(srv, "GET", "/api/temples/9999", ""); w.Code != http.StatusNotFound {
		t.Errorf("unknown id: expected 404, got %d", w.Code)
	}
	if w := do(srv, "GET", "/api/temples/abc", ""); w.Code != http.StatusBadRequest {
		t.Errorf("bad id: expected 400, got %d", w.Code)
	}
}

func TestRegisterLoginAndReview(t *testing.T) {
	srv := testServer(t)
	temples := seedPune(t, srv)

	w := do(srv, "POST", "/api/auth/register",
		`{"email":"devotee@example.com","name":"Devotee","password":"omnamahshivaya"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = do(srv, "POST", "/api/auth/register",
		`{"email":"devotee@example.com","name":"Again","password":"omnamahshivaya"}`)
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate register: expected 409, got %d", w.Code)
	}

	w = do(srv, "POST", "/api/auth/login",
		`{"email":"devotee@example.com","password":"wrong-password"}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad login: expected 401, got %d", w.Code)
	}

	w = do(srv, "POST", "/api/auth/login",
		`{"email":"devotee@example.com","password":"omnamahshivaya"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", w.Code)
	}
	var loginResp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&loginResp); err != nil {
		t.Fatal(err)
	}
	token := loginResp["token"]
	if token == "" {
		t.Fatal("login returned no token")
	}

	reviewURL := fmt.Sprintf("/api/temples/%d/reviews", temples[0].ID)

	// No token: rejected.
	if w := do(srv, "POST", reviewURL, `{"rating":5}`); w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated review: expected 401, got %d", w.Code)
	}

	req := httptest.NewRequest("POST", reviewURL, strings.NewReader(`{"rating":5,"comment":"Serene"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("review: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// Rating outside 1..5 is rejected.
	req = httptest.NewRequest("POST", reviewURL, strings.NewReader(`{"rating":6}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("rating 6: expected 400, got %d", rec.Code)
	}

	w = do(srv, "GET", reviewURL, "")
	if w.Code != http.StatusOK {
		t.Fatalf("listing reviews: expected 200, got %d", w.Code)
	}
	var reviews []model.Review
	if err := json.NewDecoder(w.Body).Decode(&reviews); err != nil {
		t.Fatal(err)
	}
	if len(reviews) != 1 || reviews[0].Rating != 5 {
		t.Errorf("unexpected reviews: %+v", reviews)
	}

	// Review summary shows up on the detail endpoint.
	w = do(srv, "GET", fmt.Sprintf("/api/temples/%d", temples[0].ID), "")
	var detail model.TempleDetail
	if err := json.NewDecoder(w.Body).Decode(&detail); err != nil {
		t.Fatal(err)
	}
	if detail.ReviewCount != 1 || detail.AverageRating != 5 {
		t.Errorf("summary not updated: %+v", detail)
	}
}

func TestEventsEmpty(t *testing.T) {
	srv := testServer(t)
	temples := seedPune(t, srv)

	w := do(srv, "GET", fmt.Sprintf("/api/temples/%d/events", temples[0].ID), "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Errorf("expected [], got %q", got)
	}
}

func TestChatUnconfigured(t *testing.T) {
	srv := testServer(t)

	w := do(srv, "POST", "/api/chat", `{"question":"any temples nearby?"}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 without assistant, got %d", w.Code)
	}
}

func TestWriteJSONNil(t *testing.T) {
	w := httptest.NewRecorder()
	writeJSON(w, nil)

	if w.Body.String() != "[]" {
		t.Errorf("expected '[]' for nil, got %q", w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}
}
