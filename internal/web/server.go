package web

import (
	"fmt"
	"net/http"

	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/assistant"
	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/auth"
	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/search"
	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/store"
)

// Server serves the temple directory API.
type Server struct {
	Store    *store.Store
	Searcher *search.Searcher
	Auth     *auth.Service
	// Assistant is nil when no API key is configured; the chat endpoint
	// then reports the feature unavailable.
	Assistant *assistant.Assistant
	Addr      string
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/temples", s.handleSearch)
	mux.HandleFunc("GET /api/temples/{id}", s.handleTemple)
	mux.HandleFunc("GET /api/temples/{id}/reviews", s.handleReviews)
	mux.HandleFunc("POST /api/temples/{id}/reviews", s.handleCreateReview)
	mux.HandleFunc("GET /api/temples/{id}/events", s.handleEvents)
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	return mux
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	fmt.Printf("Serving at http://%s\n", s.Addr)
	return http.ListenAndServe(s.Addr, s.routes())
}
