// internal/app/features/events/routes.go
package events

import (
	"github.com/go-chi/chi/v5"

	"github.com/parivartan/platform/internal/app/system/auth"
)

// MountRoutes registers the events endpoints. Reading needs a session;
// creating needs an authorized role, and amending someone else's event
// additionally needs ADMIN or above (checked in the handler).
func MountRoutes(r chi.Router, h *Handler) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSignedIn)
		r.Get("/api/events", h.ServeList)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuthorized)
		r.Post("/api/events", h.ServeSave)
		r.Put("/api/events/{id}", h.ServeSave)
		r.Delete("/api/events/{id}", h.ServeDelete)
	})
}
