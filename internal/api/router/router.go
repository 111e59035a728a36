package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	httpmiddleware "github.com/vitalia-ro/wellness-ai-platform/internal/http/middleware"
	"github.com/vitalia-ro/wellness-ai-platform/internal/personalization"
	"github.com/vitalia-ro/wellness-ai-platform/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger             *logging.Logger
	Personalization    *personalization.Handler
	MetricsHandler     http.Handler
	AdminAuthSecret    string
	CORSAllowedOrigins []string
}

// New creates a Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints.
	r.Group(func(public chi.Router) {
		public.Get("/health", cfg.Personalization.HealthCheck)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
	})

	// Personalization API.
	r.Route("/v1", func(v1 chi.Router) {
		v1.Post("/conversations/message", cfg.Personalization.PostMessage)
		v1.Route("/profiles/{userID}", func(p chi.Router) {
			p.Get("/", cfg.Personalization.GetProfile)
			p.Patch("/", cfg.Personalization.CorrectProfile)
			p.Post("/analyze", cfg.Personalization.AnalyzeHistory)
			// Purge is destructive; admin token required.
			p.With(httpmiddleware.AdminJWT(cfg.AdminAuthSecret)).
				Delete("/", cfg.Personalization.DeleteProfile)
		})
	})

	return r
}
