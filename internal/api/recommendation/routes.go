package recommendation

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the analyse and question catalogue routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/analyze", h.Analyze)
		r.Get("/questions", h.ListQuestions)
	})
}
