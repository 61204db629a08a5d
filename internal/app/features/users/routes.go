// internal/app/features/users/routes.go
package users

import (
	"github.com/go-chi/chi/v5"

	"github.com/parivartan/platform/internal/app/system/auth"
)

// MountRoutes registers the directory, profile, and two-factor endpoints.
// Everything requires a session; the directory additionally requires an
// authorized tier, and role changes are checked in the handler against
// the role policy.
func MountRoutes(r chi.Router, h *Handler) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSignedIn)

		r.Put("/api/profile", h.ServeUpdateProfile)
		r.Put("/api/profile/notifications", h.ServeUpdateNotificationPrefs)
		r.Post("/api/profile/2fa/setup", h.ServeTwoFactorSetup)
		r.Post("/api/profile/2fa/confirm", h.ServeTwoFactorConfirm)
		r.Post("/api/profile/2fa/disable", h.ServeTwoFactorDisable)

		r.Put("/api/users/{id}/role", h.ServeUpdateRole)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuthorized)

		r.Get("/api/users", h.ServeList)
		r.Get("/api/users/{id}", h.ServeGet)
	})
}
