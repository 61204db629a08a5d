// internal/app/features/assistant/routes.go
package assistant

import (
	"github.com/go-chi/chi/v5"

	"github.com/parivartan/platform/internal/app/system/auth"
)

// MountRoutes registers the assistant API.
func MountRoutes(r chi.Router, h *Handler) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSignedIn)
		r.Post("/api/assistant/chat", h.ServeChat)
	})
}
