package http

import (
	"net/http"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// payloadContextKey carries the marshalled request body to the logging transport
type payloadContextKey struct{}

var redactedHeaders = []string{"Authorization", "X-Goog-Api-Key", "Api-Key"}

type logTransport struct {
	transport http.RoundTripper
}

func (t *logTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	start := time.Now()

	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("url", req.URL.Redacted()),
		zap.Any("headers", redact(req.Header)),
	}

	if payload, ok := ctx.Value(payloadContextKey{}).([]byte); ok && len(payload) > 0 {
		fields = append(fields, zap.ByteString("payload", payload))
	}

	ctxzap.Debug(ctx, "HTTP outbound request", fields...)

	resp, err := t.transport.RoundTrip(req)
	if err != nil {
		ctxzap.Debug(ctx, "HTTP outbound request failed",
			zap.String("url", req.URL.Redacted()),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return nil, err
	}

	ctxzap.Debug(ctx, "HTTP outbound response",
		zap.String("url", req.URL.Redacted()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)
	return resp, nil
}

func redact(h http.Header) http.Header {
	out := h.Clone()
	for _, key := range redactedHeaders {
		if out.Get(key) != "" {
			out.Set(key, "[REDACTED]")
		}
	}
	return out
}

// WithRequestLogging wraps the HTTP transport with debug logging of requests and responses.
// Credential headers are redacted.
func WithRequestLogging() Option {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &logTransport{
			transport: rt,
		}
	})
}
