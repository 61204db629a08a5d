// internal/app/features/tasks/routes.go
package tasks

import (
	"github.com/go-chi/chi/v5"

	"github.com/parivartan/platform/internal/app/system/auth"
	"github.com/parivartan/platform/internal/app/system/roles"
)

// MountRoutes registers the tasks endpoints. The board is for the
// authorized tiers; creation and deletion are admin operations, and
// status moves are checked against the assignee in the handler.
func MountRoutes(r chi.Router, h *Handler) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuthorized)
		r.Get("/api/tasks", h.ServeList)
		r.Put("/api/tasks/{id}/status", h.ServeUpdateStatus)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(roles.SuperAdmin, roles.Admin))
		r.Post("/api/tasks", h.ServeSave)
		r.Put("/api/tasks/{id}", h.ServeSave)
		r.Delete("/api/tasks/{id}", h.ServeDelete)
	})
}
