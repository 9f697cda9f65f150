// Package server exposes calculator sessions over a JSON HTTP API.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/XJIeI5/calcengine/internal/config"
	"github.com/XJIeI5/calcengine/internal/session"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type server struct {
	router   *mux.Router
	sessions *session.Manager
	auth     *config.Auth
	log      logrus.FieldLogger
}

// NewHandler builds the API router on top of m.
func NewHandler(m *session.Manager, auth *config.Auth, log logrus.FieldLogger) http.Handler {
	s := &server{
		sessions: m,
		auth:     auth,
		log:      log,
	}

	r := mux.NewRouter()
	// session handle
	r.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	r.HandleFunc("/sessions", s.handleDeleteSession).Methods("DELETE")
	// expr handle
	r.HandleFunc("/input", s.handleInput).Methods("POST")
	r.HandleFunc("/postfix", s.handlePostfix).Methods("POST")
	r.HandleFunc("/current", s.handleCurrent).Methods("GET")
	r.HandleFunc("/clear", s.handleClear).Methods("POST")
	// operations handle
	r.HandleFunc("/operations", s.handleOperations).Methods("GET")
	r.Use(s.logRequests)

	s.router = r
	return s
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func GetServer(cfg *config.Config, m *session.Manager, log logrus.FieldLogger) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           NewHandler(m, cfg.Auth, log),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
		}).Debug("request served")
	})
}

type errorResponse struct {
	Error   string `json:"error"`
	Kind    string `json:"kind,omitempty"`
	Current string `json:"current,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func requireJSON(w http.ResponseWriter, r *http.Request) bool {
	if t := r.Header.Get("Content-Type"); t != "application/json" {
		writeJSON(w, http.StatusUnsupportedMediaType, errorResponse{Error: "content type must be application/json"})
		return false
	}
	return true
}
