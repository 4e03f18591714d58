package main

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/feedboard/feedboard/internal/config"
	"github.com/feedboard/feedboard/internal/handler"
	"github.com/feedboard/feedboard/internal/middleware"
)

type routerDeps struct {
	index    *handler.Handler
	health   *handler.HealthHandler
	feedback *handler.FeedbackHandler
	metrics  *handler.MetricsHandler // nil when metrics are disabled
	cfg      *config.Config
	logger   *slog.Logger
}

// newRouter configures the chi router with all routes and middleware.
func newRouter(d routerDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.logger))
	r.Use(middleware.Recoverer(d.logger, d.cfg.IsDevelopment()))
	r.Use(middleware.Security(d.cfg.IsDevelopment()))
	r.Use(middleware.CORS(d.cfg.GetCORSAllowedOrigins()))
	r.Use(middleware.MaxBodySize(d.cfg.MaxRequestBodySize))

	r.Get("/", d.index.Index)
	r.Get("/healthz", d.health.Healthz)
	r.Get("/readyz", d.health.Readyz)
	if d.metrics != nil {
		r.Get("/metrics", d.metrics.Metrics)
	}

	r.Route("/feedback", func(r chi.Router) {
		r.Get("/", d.feedback.List)
		r.Post("/", d.feedback.Create)
		r.Get("/{id}", d.feedback.Get)
		r.Delete("/{id}", d.feedback.Delete)
		r.Put("/{id}/vote", d.feedback.Vote)
	})

	r.NotFound(d.index.NotFound)
	r.MethodNotAllowed(d.index.MethodNotAllowed)

	return r
}
