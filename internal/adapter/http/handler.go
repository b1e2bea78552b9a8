package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"

	"popup-ads/internal/config/configs"
	"popup-ads/internal/core/port"
)

// Handler contains dependencies and routes. It is an inbound adapter for
// HTTP: the mobile client reports triggers and screen context per app
// session and renders whatever popup comes back.
type Handler struct {
	svc    port.DeliveryService
	logger *slog.Logger
	router chi.Router
}

// NewHandler creates a handler with all routes configured. metrics, when
// non-nil, is mounted at /metrics.
func NewHandler(svc port.DeliveryService, logger *slog.Logger, cfg configs.HTTP, metrics http.Handler) *Handler {
	h := &Handler{svc: svc, logger: logger}
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	c := corslib.New(corslib.Options{
		AllowedOrigins: cfg.CORSAllowOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{outcomeHeader},
	})
	r.Use(c.Handler)

	if metrics != nil {
		r.Handle("/metrics", metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimitEnabled {
			r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
		}

		r.Post("/sessions", h.handleCreateSession)
		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Delete("/", h.handleCloseSession)
			r.Post("/events", h.handleEvent)
			r.Post("/context", h.handleContext)
			r.Put("/pending", h.handleSetPending)
		})

		r.Get("/settings/cooldown", h.handleGetCooldown)
		r.Put("/settings/cooldown", h.handleSetCooldown)
		r.Get("/stats/overview", h.handleStatsOverview)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
