package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"shortlinks/internal/app"
	"shortlinks/internal/audit"
	"shortlinks/internal/config"
	"shortlinks/internal/logger"

	_ "go.uber.org/automaxprocs"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("shortener: %v", err)
	}
}

func run() error {
	c := config.NewConfig()
	if err := config.Init(c); err != nil {
		return err
	}

	sugar, err := logger.NewLogger(c.LogLevel)
	if err != nil {
		return err
	}
	defer func() {
		_ = sugar.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	notifier, closeNotifier := app.SelectNotifier(ctx, c, sugar)
	defer func() {
		if err := closeNotifier(); err != nil {
			sugar.Debugw("audit bus close", "error", err)
		}
	}()

	st := app.SelectStorage(c)
	controller := app.NewController(c, st, notifier, sugar)
	router := app.NewRouter(c, controller, app.SelectRateLimiter(ctx, c))
	server := app.CreateServer(c, router, sugar)

	errCh := make(chan error, 1)
	go func() {
		notifier.Notify(audit.Stack, audit.LevelInfo, "server", "Server started on "+c.BaseURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	sugar.Infow("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	sugar.Infow("server stopped")
	return nil
}
