// internal/app/features/studio/routes.go
package studio

import (
	"github.com/go-chi/chi/v5"

	"github.com/parivartan/platform/internal/app/system/auth"
)

// MountRoutes registers the image studio API.
func MountRoutes(r chi.Router, h *Handler) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuthorized)
		r.Post("/api/studio/generate", h.ServeGenerate)
		r.Post("/api/studio/edit", h.ServeEdit)
	})
}
