// internal/app/features/campaigns/routes.go
package campaigns

import (
	"github.com/go-chi/chi/v5"

	"github.com/parivartan/platform/internal/app/system/auth"
)

// MountRoutes registers the campaign endpoints. Any session can browse
// and donate; starting a campaign needs an authorized role, and amending
// someone else's needs ADMIN or above (checked in the handler).
func MountRoutes(r chi.Router, h *Handler) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSignedIn)
		r.Get("/api/campaigns", h.ServeList)
		r.Post("/api/campaigns/{id}/donations", h.ServeDonate)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuthorized)
		r.Post("/api/campaigns", h.ServeSave)
		r.Put("/api/campaigns/{id}", h.ServeSave)
		r.Delete("/api/campaigns/{id}", h.ServeDelete)
	})
}
