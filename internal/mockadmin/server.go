// Package mockadmin is an in-process fake of the admin API. It backs
// the `wardenctl demo` command and the client tests: canned config
// schema, in-memory users, and per-endpoint failure injection.
package mockadmin

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/hugo-lorenzo-mato/wardenctl/internal/adminapi"
	"github.com/hugo-lorenzo-mato/wardenctl/internal/schema"
)

// Server simulates the backend admin API.
type Server struct {
	router chi.Router
	logger *slog.Logger

	mu       sync.Mutex
	users    []adminapi.User
	groups   []schema.Group
	saved    map[string]any
	hits     map[string]int
	failWith map[string]string // endpoint -> injected failure message
}

// Option configures the server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithUsers seeds the user list.
func WithUsers(users []adminapi.User) Option {
	return func(s *Server) {
		s.users = users
	}
}

// WithGroups seeds the config schema payload.
func WithGroups(groups []schema.Group) Option {
	return func(s *Server) {
		s.groups = groups
	}
}

// New creates a mock admin server.
func New(opts ...Option) *Server {
	s := &Server{
		logger:   slog.Default(),
		users:    DefaultUsers(),
		groups:   DefaultGroups(),
		hits:     make(map[string]int),
		failWith: make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.setupRouter()
	return s
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization"},
		MaxAge:         300,
	})
	r.Use(corsHandler.Handler)

	r.Route("/admin", func(r chi.Router) {
		r.Get("/users", s.handleListUsers)
		r.Post("/users/update_revision", s.command("/admin/users/update_revision"))
		r.Post("/users/{id}/delete", s.handleDeleteUser)
		r.Post("/users/{id}/remove-2fa", s.handleRemoveTwoFactor)
		r.Post("/users/{id}/deauth", s.command("/admin/users/{id}/deauth"))
		r.Post("/invite/", s.handleInvite)
		r.Get("/config", s.handleGetConfig)
		r.Post("/config/", s.handleSaveConfig)
		r.Post("/config/delete", s.handleResetConfig)
		r.Post("/config/backup_db", s.command("/admin/config/backup_db"))
	})

	return r
}

// FailWith injects a failure for an endpoint pattern; subsequent
// commands to it return the backend error envelope with the message.
func (s *Server) FailWith(endpoint, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith[endpoint] = message
}

// Hits reports how many times an endpoint pattern was dispatched.
func (s *Server) Hits(endpoint string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[endpoint]
}

// SavedConfig returns the last payload accepted by the config save
// endpoint, nil after a reset.
func (s *Server) SavedConfig() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved
}

// record counts the hit and reports whether an injected failure should
// be returned instead of the normal response.
func (s *Server) record(w http.ResponseWriter, endpoint string) bool {
	s.mu.Lock()
	s.hits[endpoint]++
	message, failing := s.failWith[endpoint]
	s.mu.Unlock()

	if failing {
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"ErrorModel": map[string]string{"Message": message},
		})
		return false
	}
	return true
}

// command builds a generic fire-and-forget handler.
func (s *Server) command(endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if !s.record(w, endpoint) {
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func (s *Server) handleListUsers(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	users := make([]adminapi.User, len(s.users))
	copy(users, s.users)
	s.mu.Unlock()
	respondJSON(w, http.StatusOK, users)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if !s.record(w, "/admin/users/{id}/delete") {
		return
	}
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	kept := s.users[:0]
	for _, u := range s.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	s.users = kept
	s.mu.Unlock()

	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRemoveTwoFactor(w http.ResponseWriter, r *http.Request) {
	if !s.record(w, "/admin/users/{id}/remove-2fa") {
		return
	}
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].TwoFactorEnabled = false
		}
	}
	s.mu.Unlock()

	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleInvite(w http.ResponseWriter, r *http.Request) {
	if !s.record(w, "/admin/invite/") {
		return
	}
	var payload struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Email == "" {
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"ErrorModel": map[string]string{"Message": "email cannot be blank"},
		})
		return
	}

	s.mu.Lock()
	s.users = append(s.users, adminapi.User{
		ID:    payload.Email,
		Email: payload.Email,
	})
	s.mu.Unlock()

	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetConfig(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	groups := s.groups
	s.mu.Unlock()
	respondJSON(w, http.StatusOK, groups)
}

func (s *Server) handleSaveConfig(w http.ResponseWriter, r *http.Request) {
	if !s.record(w, "/admin/config/") {
		return
	}
	var values map[string]any
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"ErrorModel": map[string]string{"Message": "malformed config payload"},
		})
		return
	}

	s.mu.Lock()
	s.saved = values
	s.mu.Unlock()

	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleResetConfig(w http.ResponseWriter, _ *http.Request) {
	if !s.record(w, "/admin/config/delete") {
		return
	}
	s.mu.Lock()
	s.saved = nil
	s.mu.Unlock()
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
