package api

import (
	"net/http"
	"time"

	"github.com/iamdew/yellostory-lunch/services"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// System endpoints (no rate limiting)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ready", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /{$}", s.handleDefault)

	s.handle(mux, "GET /lunch", s.handleList)
	s.handle(mux, "POST /lunch", s.handleCreate)
	s.handle(mux, "DELETE /lunch", s.handleRemove)
	s.handle(mux, "GET /lunch/today", s.handleResolve(services.Today))
	s.handle(mux, "GET /lunch/tomorrow", s.handleResolve(services.Tomorrow))
	s.handle(mux, "GET /lunch/day-after-tomorrow", s.handleResolve(services.DayAfterTomorrow))
	s.handle(mux, "GET /lunch/keyboard", s.handleKeyboard)
	s.handle(mux, "POST /lunch/message", s.handleMessage)

	return mux
}

// handle registers an API route behind the common middleware chain.
func (s *Server) handle(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	mux.HandleFunc(pattern, s.withMiddleware(pattern, h))
}

func (s *Server) handleDefault(w http.ResponseWriter, _ *http.Request) {
	resp := struct {
		Name      string   `json:"name"`
		Version   string   `json:"version"`
		Ready     bool     `json:"ready"`
		Timestamp string   `json:"timestamp"`
		Routes    []string `json:"routes"`
	}{
		Name:      name,
		Version:   version,
		Ready:     s.isReady(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Routes: []string{
			"GET /lunch",
			"POST /lunch",
			"DELETE /lunch",
			"GET /lunch/today",
			"GET /lunch/tomorrow",
			"GET /lunch/day-after-tomorrow",
			"GET /lunch/keyboard",
			"POST /lunch/message",
		},
	}
	respondJSON(w, http.StatusOK, resp)
}
