// internal/app/features/slides/routes.go
package slides

import (
	"github.com/go-chi/chi/v5"

	"github.com/parivartan/platform/internal/app/system/auth"
	"github.com/parivartan/platform/internal/app/system/roles"
)

// MountRoutes registers the carousel endpoints. Listing is public so the
// home page renders before sign-in; managing slides needs ADMIN or above.
func MountRoutes(r chi.Router, h *Handler) {
	r.Get("/api/slides", h.ServeList)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(roles.SuperAdmin, roles.Admin))
		r.Post("/api/slides", h.ServeSave)
		r.Put("/api/slides/{id}", h.ServeSave)
		r.Delete("/api/slides/{id}", h.ServeDelete)
	})
}
