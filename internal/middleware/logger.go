// Package middleware holds the HTTP middleware shared by the preview server.
package middleware

import (
	"fmt"
	"net/http"
	"time"

	chiMid "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/milburnr/fcs-site-sub002/internal/observability"
)

// Logger stores a request-scoped logger on the context and emits one
// structured entry per request once the response is written.
func Logger(base *zap.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx, span := observability.StartRequestSpan(r.Context(), r.Method, r.URL.Path)
			fields := []zap.Field{
				zap.String("request_id", chiMid.GetReqID(ctx)),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
			}
			if id := observability.TraceID(ctx); id != "" {
				fields = append(fields, zap.String("trace_id", id))
			}
			logger := base.With(fields...)
			ww := chiMid.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(observability.WithLogger(ctx, logger)))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			var spanErr error
			if status >= http.StatusInternalServerError {
				spanErr = fmt.Errorf("status %d", status)
			}
			observability.EndSpan(span, spanErr)
			fields = []zap.Field{
				zap.Int("status", status),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote_ip", r.RemoteAddr),
			}
			switch {
			case status >= http.StatusInternalServerError:
				logger.Error("request", fields...)
			case status >= http.StatusBadRequest:
				logger.Warn("request", fields...)
			default:
				logger.Info("request", fields...)
			}
		})
	}
}
