// internal/app/features/attendance/routes.go
package attendance

import (
	"github.com/go-chi/chi/v5"

	"github.com/parivartan/platform/internal/app/system/auth"
	"github.com/parivartan/platform/internal/app/system/roles"
)

// MountRoutes registers the attendance endpoints. Viewing is for the
// authorized tiers; marking and submitting are checked in the handler
// against the submit lock, and badge awards are a SUPER_ADMIN action.
func MountRoutes(r chi.Router, h *Handler) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuthorized)
		r.Get("/api/attendance", h.ServeList)
		r.Get("/api/attendance/roster", h.ServeRoster)
		r.Get("/api/attendance/{date}", h.ServeGet)
		r.Put("/api/attendance/{date}", h.ServeMark)
		r.Post("/api/attendance/{date}/submit", h.ServeSubmit)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(roles.SuperAdmin))
		r.Post("/api/attendance/badges/{month}", h.ServeAwardBadges)
	})
}
