package app

import (
	"time"

	"shortlinks/internal/config"
	"shortlinks/internal/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the service router. A nil limiter disables rate limiting.
func NewRouter(conf *config.Config, ctrl *handlers.Controller, limiter *handlers.RateLimiter) *chi.Mux {
	r := chi.NewRouter()
	InitMiddleware(r, conf, ctrl, limiter)
	Routing(r, ctrl)
	return r
}

// InitMiddleware - initializes middleware handlers for the router.
func InitMiddleware(r *chi.Mux, conf *config.Config, ctrl *handlers.Controller, limiter *handlers.RateLimiter) {
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(ctrl.LoggingMiddleware)
	r.Use(ctrl.PanicRecoveryMiddleware)
	r.Use(ctrl.AuditMiddleware)
	if limiter != nil {
		r.Use(limiter.Middleware)
	}
	r.Use(middleware.Timeout(time.Duration(conf.Timeout) * time.Second))
	r.Use(middleware.Compress(5, "application/json"))
}

// Routing - registers routes for the short link controller.
// Registered routes:
//   - POST "/shorturls": creates a short link using ctrl.ShortenURL().
//   - GET "/shorturls": lists every link through ctrl.ListLinks().
//   - GET "/shorturls/{shortcode}": returns link statistics through ctrl.GetLinkStats().
//   - GET "/shorturls/{shortcode}/qr": renders the short link as a PNG QR code through ctrl.GetQRCode().
//   - GET "/{shortcode}": redirects to the destination and records the click using ctrl.Redirect().
//
// The catch-all redirect is registered last so it never shadows the /shorturls routes.
func Routing(r *chi.Mux, ctrl *handlers.Controller) {
	r.NotFound(ctrl.NotFound())
	r.MethodNotAllowed(ctrl.MethodNotAllowed())

	r.Route("/shorturls", func(r chi.Router) {
		r.Post("/", ctrl.ShortenURL())
		r.Get("/", ctrl.ListLinks())
		r.Get("/{shortcode}", ctrl.GetLinkStats())
		r.Get("/{shortcode}/qr", ctrl.GetQRCode())
	})
	r.Get("/{shortcode}", ctrl.Redirect())
}
