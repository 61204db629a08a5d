// internal/app/features/feedback/routes.go
package feedback

import (
	"github.com/go-chi/chi/v5"

	"github.com/parivartan/platform/internal/app/system/auth"
	"github.com/parivartan/platform/internal/app/system/roles"
)

// MountRoutes registers the feedback and suggestion APIs.
func MountRoutes(r chi.Router, h *Handler) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSignedIn)
		r.Post("/api/feedback", h.ServeCreateFeedback)
		r.Post("/api/suggestions", h.ServeCreateSuggestion)
	})
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(roles.SuperAdmin, roles.Admin))
		r.Get("/api/feedback", h.ServeListFeedback)
		r.Get("/api/suggestions", h.ServeListSuggestions)
	})
}
