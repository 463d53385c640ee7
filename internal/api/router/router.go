package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/wolfman30/supplychain-leads/internal/http/handlers"
	httpmiddleware "github.com/wolfman30/supplychain-leads/internal/http/middleware"
	"github.com/wolfman30/supplychain-leads/internal/leads"
	"github.com/wolfman30/supplychain-leads/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	WizardHandler      *handlers.WizardHandler
	LeadsHandler       *leads.Handler
	AdminAuthSecret    string
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
	// RateLimiter throttles POST routes per client IP; nil disables it.
	RateLimiter *httpmiddleware.RateLimiter
}

// New creates a new Chi router with all routes configured
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

	throttle := func(next http.Handler) http.Handler { return next }
	if cfg.RateLimiter != nil {
		throttle = httpmiddleware.RateLimit(cfg.RateLimiter)
	}

	r.Group(func(public chi.Router) {
		public.Get("/health", handlers.Health)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}

		if wh := cfg.WizardHandler; wh != nil {
			public.Get("/", wh.Page)
			public.With(throttle).Post("/wizard/next", wh.Next)
			public.With(throttle).Post("/wizard/back", wh.Back)

			public.Route("/api/wizard", func(api chi.Router) {
				api.Get("/", wh.APIState)
				api.With(throttle).Post("/next", wh.APINext)
				api.With(throttle).Post("/back", wh.APIBack)
			})
		}

		if cfg.LeadsHandler != nil {
			public.With(throttle).Post("/api/leads", cfg.LeadsHandler.CreateWebLead)
		}
	})

	if cfg.AdminAuthSecret != "" && cfg.LeadsHandler != nil {
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))
			admin.Get("/leads", cfg.LeadsHandler.ListLeads)
		})
	}

	return r
}
