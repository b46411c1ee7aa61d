package handler

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/Shivanand-hulikatti/campus-events/internal/metrics"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// RouterConfig collects what NewRouter wires together.
type RouterConfig struct {
	Events  *EventHandler
	Metrics *metrics.Metrics
	Limiter *RateLimiter
	Logger  *slog.Logger
	// WebDir is served at the root when it exists.
	WebDir string
}

// NewRouter builds the chi router with the global middleware stack.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(Logger(cfg.Logger))
	r.Use(CORS)
	r.Use(cfg.Metrics.Middleware)

	r.NotFound(NotFound)

	r.Get("/health", cfg.Events.HealthCheck)
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler())
	}

	r.Route("/api/events", func(r chi.Router) {
		r.Post("/", cfg.Events.CreateEvent)
		r.Get("/", cfg.Events.ListEvents)
		r.Get("/{id}", cfg.Events.GetEvent)

		r.Group(func(r chi.Router) {
			r.Use(cfg.Limiter.Middleware)
			r.Post("/{id}/rsvp", cfg.Events.RSVP)
			r.Post("/{id}/cancel-rsvp", cfg.Events.CancelRSVP)
		})
	})

	if cfg.WebDir != "" {
		if info, err := os.Stat(cfg.WebDir); err == nil && info.IsDir() {
			r.Handle("/*", http.FileServer(http.Dir(cfg.WebDir)))
		}
	}

	return r
}
