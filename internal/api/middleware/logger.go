package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Logger is a middleware that logs HTTP requests and puts a request-scoped logger into the context
func Logger(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := middleware.GetReqID(r.Context())
			reqLogger := logger.With(zap.String("request_id", requestID))

			reqLogger.Debug("Start handle HTTP request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
			)

			ctx := ctxzap.ToContext(r.Context(), reqLogger)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			}
			if ww.Status() >= http.StatusInternalServerError {
				reqLogger.Warn("Finish handle HTTP request", fields...)
			} else {
				reqLogger.Info("Finish handle HTTP request", fields...)
			}
		})
	}
}
