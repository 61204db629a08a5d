// internal/app/features/notifications/routes.go
package notifications

import (
	"github.com/go-chi/chi/v5"

	"github.com/parivartan/platform/internal/app/system/auth"
)

// MountRoutes registers the notification tray API.
func MountRoutes(r chi.Router, h *Handler) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSignedIn)
		r.Get("/api/notifications", h.ServeList)
		r.Post("/api/notifications/read-all", h.ServeMarkAllRead)
		r.Put("/api/notifications/{id}/read", h.ServeMarkRead)
		r.Delete("/api/notifications/{id}", h.ServeDelete)
	})
}
