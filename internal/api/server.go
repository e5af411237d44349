package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"gopower/app"
	"gopower/internal"
	"gopower/ports"
)

// Server exposes the power-sweep operations over HTTP
type Server struct {
	router  *chi.Mux
	service *app.SweepService
	repo    ports.SweepRepository
	logger  *internal.Logger
}

// NewServer creates the HTTP surface around a sweep service and repository
func NewServer(service *app.SweepService, repo ports.SweepRepository, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	s := &Server{
		router:  chi.NewRouter(),
		service: service,
		repo:    repo,
		logger:  logger,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(5 * time.Minute))
}

func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		r.Post("/sweeps", s.handleRunSweep)
		r.Get("/sweeps", s.handleListSweeps)
		r.Get("/sweeps/{sweepID}", s.handleGetSweep)
		r.Get("/sweeps/{sweepID}/report", s.handleSweepReport)
	})
	s.router.Get("/healthz", s.handleHealth)
}

// Handler returns the root http.Handler
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
