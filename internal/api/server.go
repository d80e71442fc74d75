package api

import (
	"net/http"
	"time"

	"github.com/futig/puppy-picker/internal/api/docs"
	"github.com/futig/puppy-picker/internal/api/middleware"
	recommendationapi "github.com/futig/puppy-picker/internal/api/recommendation"
	sessionapi "github.com/futig/puppy-picker/internal/api/session"
	"github.com/futig/puppy-picker/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// RouterConfig holds router-level settings
type RouterConfig struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// SetupRouter creates and configures the HTTP router
func SetupRouter(
	cfg RouterConfig,
	recommendationHandler *recommendationapi.Handler,
	sessionHandler *sessionapi.Handler,
	logger *zap.Logger,
) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}

	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)                   // Recover from panics
	r.Use(chimiddleware.RequestID)                   // Add request ID
	r.Use(middleware.Logger(logger))                 // Log requests
	r.Use(middleware.CORS(cfg.AllowedOrigins))       // Handle CORS
	r.Use(chimiddleware.Timeout(cfg.RequestTimeout)) // Default timeout

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, map[string]string{"status": "healthy"})
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	recommendationapi.RegisterRoutes(r, recommendationHandler)
	sessionapi.RegisterRoutes(r, sessionHandler)

	return r
}
