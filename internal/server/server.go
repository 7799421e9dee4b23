package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/repsync/internal/schedule"
	"github.com/meltforce/repsync/internal/storage"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db       *storage.DB
	resolver *schedule.Resolver
	log      *slog.Logger
	apiKey   string
	router   chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, resolver *schedule.Resolver, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:       db,
		resolver: resolver,
		log:      log,
		apiKey:   apiKey,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Client-facing resolution endpoints (no auth — tsnet handles access)
	s.router.Get("/api/v1/clients/{clientID}/current-workout", s.handleCurrentWorkout)
	s.router.Get("/api/v1/clients/{clientID}/assignments", s.handleListClientAssignments)
	s.router.Get("/api/v1/clients", s.handleListClients)
	s.router.Get("/api/v1/programs", s.handleListPrograms)
	s.router.Get("/api/v1/programs/{programID}/schedule", s.handleGetProgramSchedule)
	s.router.Get("/api/v1/templates", s.handleListTemplates)

	// Coach endpoints (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/clients", s.handleCreateClient)
		r.Post("/api/v1/templates", s.handleCreateTemplate)
		r.Post("/api/v1/programs", s.handleCreateProgram)
		r.Post("/api/v1/programs/{programID}/schedule", s.handleAddScheduleRow)
		r.Post("/api/v1/assignments", s.handleCreateAssignment)
		r.Put("/api/v1/assignments/{assignmentID}/status", s.handleSetAssignmentStatus)
		r.Post("/api/v1/clients/{clientID}/complete-day", s.handleCompleteDay)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
