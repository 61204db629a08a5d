// internal/app/features/sysconfig/routes.go
package sysconfig

import (
	"github.com/go-chi/chi/v5"

	"github.com/parivartan/platform/internal/app/system/auth"
	"github.com/parivartan/platform/internal/app/system/roles"
)

// MountRoutes registers the platform settings API.
func MountRoutes(r chi.Router, h *Handler) {
	r.Get("/api/config/startup", h.ServeGetStartup)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(roles.SuperAdmin))
		r.Put("/api/config/startup", h.ServeSetStartup)
	})
}
