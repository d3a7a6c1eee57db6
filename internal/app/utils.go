// Package app wires the configuration, storage, services and HTTP layer together.
package app

import (
	"context"
	"net/http"
	"time"

	"shortlinks/internal/audit"
	"shortlinks/internal/config"
	"shortlinks/internal/handlers"
	"shortlinks/internal/services"
	"shortlinks/internal/storage"

	"go.uber.org/zap"
)

// SelectStorage - builds the link registry.
func SelectStorage(c *config.Config) storage.LinkStorage {
	return storage.NewStorageMemory(storage.WithMaxAttempts(c.GenerationAttempts))
}

// SelectNotifier - returns an audit bus forwarding to the configured endpoint,
// or a no-op notifier when auditing is disabled. The returned close function
// is never nil.
func SelectNotifier(ctx context.Context, c *config.Config, logger *zap.SugaredLogger) (audit.Notifier, func() error) {
	if c.AuditEndpoint == "" {
		logger.Infof("audit log disabled")
		return audit.Nop{}, func() error { return nil }
	}

	bus := audit.NewBus(audit.NewZapLoggerAdapter(logger))
	sink := audit.NewHTTPSink(c.AuditEndpoint, c.AuditToken, time.Duration(c.AuditTimeout)*time.Second)
	if err := bus.Forward(ctx, sink); err != nil {
		logger.Errorw("audit forwarder not started", "error", err)
		_ = bus.Close()
		return audit.Nop{}, func() error { return nil }
	}
	logger.Infof("audit log at %s", c.AuditEndpoint)
	return bus, bus.Close
}

// NewController assembles services and the HTTP controller on top of st.
func NewController(c *config.Config, st storage.LinkStorage, notifier audit.Notifier, logger *zap.SugaredLogger) *handlers.Controller {
	urlService := services.NewURLService(st, notifier, logger)
	statsService := services.NewStatsService(st, notifier)
	composite := services.NewCompositeService(urlService, statsService, st)
	return handlers.NewController(composite, notifier, logger, c)
}

// SelectRateLimiter - returns nil when rate limiting is disabled.
func SelectRateLimiter(ctx context.Context, c *config.Config) *handlers.RateLimiter {
	if c.RateLimit <= 0 {
		return nil
	}
	rl := handlers.NewRateLimiter(c.RateLimit)
	rl.StartCleanup(ctx, 10*time.Minute)
	return rl
}

// CreateServer creates and configures an HTTP server.
func CreateServer(c *config.Config, handler http.Handler, logger *zap.SugaredLogger) *http.Server {
	logger.Infof("Shortener at %s, links under %s", c.Addr, c.BaseURL)

	return &http.Server{
		Addr:              c.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 20 * time.Second,
	}
}
