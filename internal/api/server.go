package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/pdfgen/internal/config"
	"github.com/dgallion1/pdfgen/internal/layout"
	"github.com/dgallion1/pdfgen/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Version is reported by /info. Overridden at build time with -ldflags.
var Version = "dev"

// Server is the HTTP API server for pdfgen.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	opts         layout.Options
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		opts:         orch.Options(),
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	if len(s.cfg.CORSOrigins) > 0 {
		r.Use(CORS(s.cfg.CORSOrigins))
	}

	// Public endpoints.
	r.Get("/health", s.handleHealth)
	r.Get("/info", s.handleInfo)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/api/render", s.handleRender)
		r.Post("/api/render/upload", s.handleRenderUpload)

		r.Post("/api/jobs", s.handleSubmitJob)
		r.Get("/api/jobs/{jobID}", s.handleJobStatus)
		r.Get("/api/jobs/{jobID}/pdf", s.handleJobPDF)

		r.Post("/api/inspect", s.handleInspect)
		r.Get("/api/stats", s.handleStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
