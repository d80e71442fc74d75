package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows the browser front-end on allowedOrigins to call the API
func CORS(allowedOrigins []string) func(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}
