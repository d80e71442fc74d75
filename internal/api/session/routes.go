package session

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers session routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", h.StartSession)
		r.Get("/{id}", h.GetSession)
		r.Delete("/{id}", h.DeleteSession)
		r.Post("/{id}/select", h.SelectOption)
		r.Post("/{id}/back", h.GoBack)
		r.Post("/{id}/submit", h.Submit)
		r.Post("/{id}/reset", h.Reset)
		r.Get("/{id}/result", h.GetResult)
	})
}
