package handlers

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"shortlinks/internal/audit"

	"github.com/go-chi/chi/v5/middleware"
)

// LoggingMiddleware logs every request with its status, size and duration.
func (con *Controller) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		start := time.Now()
		data := &responseData{}
		lw := &loggingResponseWriter{
			ResponseWriter: res,
			responseData:   data,
		}

		next.ServeHTTP(lw, req)

		con.sugar.Infow("request",
			"method", req.Method,
			"uri", req.RequestURI,
			"status", data.status,
			"size", data.size,
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(req.Context()),
		)
	})
}

// AuditMiddleware reports every incoming request to the audit service.
func (con *Controller) AuditMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		con.notifier.Notify(audit.Stack, audit.LevelInfo, "request", req.Method+" "+req.URL.RequestURI())
		next.ServeHTTP(res, req)
	})
}

// PanicRecoveryMiddleware turns a handler panic into a JSON 500.
func (con *Controller) PanicRecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler { //nolint:errorlint
				panic(rvr)
			}
			con.sugar.Errorw("panic recovered",
				"panic", rvr,
				"uri", req.RequestURI,
				"stack", string(debug.Stack()),
			)
			con.notifier.Notify(audit.Stack, audit.LevelError, "handler", fmt.Sprint(rvr))
			writeError(res, http.StatusInternalServerError, msgInternal)
		}()

		next.ServeHTTP(res, req)
	})
}
