package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/myamashita/regsheet/internal/config"
	"github.com/myamashita/regsheet/internal/genai"
	"github.com/myamashita/regsheet/internal/pipeline"
)

// Server is the HTTP API server for regsheet.
type Server struct {
	router    chi.Router
	processor *pipeline.Processor
	gemini    *genai.Client
	log       *slog.Logger
	cfg       config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(proc *pipeline.Processor, gemini *genai.Client, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		processor: proc,
		gemini:    gemini,
		log:       log,
		cfg:       cfg,
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

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		// Auth only when a key is configured.
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/api/extract", s.handleExtract)
		r.Post("/api/parse", s.handleParse)
		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
