package web

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/auth"
	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/geo"
	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/model"
	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/search"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	criteria := search.Criteria{City: q.Get("city")}

	for _, label := range q["category"] {
		cat, ok := model.ParseCategory(strings.ToLower(label))
		if !ok {
			http.Error(w, "unknown category "+strconv.Quote(label), http.StatusBadRequest)
			return
		}
		criteria.Categories = append(criteria.Categories, cat)
	}

	latStr, lngStr := q.Get("lat"), q.Get("lng")
	if (latStr == "") != (lngStr == "") {
		http.Error(w, "lat and lng must be supplied together", http.StatusBadRequest)
		return
	}
	if latStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			http.Error(w, "invalid latitude value", http.StatusBadRequest)
			return
		}
		lng, err := strconv.ParseFloat(lngStr, 64)
		if err != nil {
			http.Error(w, "invalid longitude value", http.StatusBadRequest)
			return
		}
		criteria.Origin = &geo.Coordinate{Lat: lat, Lng: lng}
	}

	if radiusStr := q.Get("radius_km"); radiusStr != "" {
		radius, err := strconv.ParseFloat(radiusStr, 64)
		if err != nil {
			http.Error(w, "invalid radius_km value", http.StatusBadRequest)
			return
		}
		criteria.RadiusKm = &radius
	}

	results, err := s.Searcher.Search(r.Context(), criteria)
	if errors.Is(err, search.ErrInvalidCriteria) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if results == nil {
		results = []search.Result{}
	}

	writeJSON(w, results)
}

func (s *Server) handleTemple(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid temple id", http.StatusBadRequest)
		return
	}

	detail, err := s.Store.TempleByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, "temple not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, detail)
}

func (s *Server) handleReviews(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid temple id", http.StatusBadRequest)
		return
	}

	reviews, err := s.Store.ReviewsForTemple(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if reviews == nil {
		reviews = []model.Review{}
	}
	writeJSON(w, reviews)
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.bearerSubject(r)
	if !ok {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return
	}

	templeID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid temple id", http.StatusBadRequest)
		return
	}

	var body struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if body.Rating < 1 || body.Rating > 5 {
		http.Error(w, "rating must be between 1 and 5", http.StatusBadRequest)
		return
	}

	if _, err := s.Store.TempleByID(templeID); errors.Is(err, sql.ErrNoRows) {
		http.Error(w, "temple not found", http.StatusNotFound)
		return
	} else if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	review := &model.Review{
		ID:        uuid.NewString(),
		TempleID:  templeID,
		UserID:    userID,
		Rating:    body.Rating,
		Comment:   body.Comment,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.Store.AddReview(review); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(review)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid temple id", http.StatusBadRequest)
		return
	}

	from := time.Now().UTC().Format(time.RFC3339)
	events, err := s.Store.EventsForTemple(id, from)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if events == nil {
		events = []model.Event{}
	}
	writeJSON(w, events)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if s.Assistant == nil {
		http.Error(w, "assistant not configured", http.StatusServiceUnavailable)
		return
	}

	var body struct {
		Question string   `json:"question"`
		Lat      *float64 `json:"lat"`
		Lng      *float64 `json:"lng"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(body.Question) == "" {
		http.Error(w, "question is required", http.StatusBadRequest)
		return
	}
	if (body.Lat == nil) != (body.Lng == nil) {
		http.Error(w, "lat and lng must be supplied together", http.StatusBadRequest)
		return
	}

	var origin *geo.Coordinate
	if body.Lat != nil {
		origin = &geo.Coordinate{Lat: *body.Lat, Lng: *body.Lng}
		if err := origin.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	reply, _, err := s.Assistant.Ask(r.Context(), body.Question, origin)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	writeJSON(w, reply)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := s.Auth.Register(body.Email, body.Name, body.Password)
	if errors.Is(err, auth.ErrEmailTaken) {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	if errors.Is(err, auth.ErrInvalidCredentials) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	token, err := s.Auth.Login(body.Email, body.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"token": token})
}

// bearerSubject extracts and verifies the Authorization bearer token,
// returning the authenticated user id.
func (s *Server) bearerSubject(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", false
	}
	subject, err := s.Auth.Tokens.Verify(token)
	if err != nil {
		return "", false
	}
	return subject, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	// Wildcard CORS — the API is read-mostly and fronted elsewhere.
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if v == nil {
		_, _ = w.Write([]byte("[]"))
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}
