// internal/app/features/feed/routes.go
package feed

import (
	"github.com/go-chi/chi/v5"

	"github.com/parivartan/platform/internal/app/system/auth"
)

// MountRoutes registers the feed endpoints. Reading is open to any
// session; writing is gated per-handler by the content policy.
func MountRoutes(r chi.Router, h *Handler) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSignedIn)

		r.Get("/api/posts", h.ServeList)
		r.Post("/api/posts", h.ServeCreate)
		r.Put("/api/posts/{id}", h.ServeUpdate)
		r.Delete("/api/posts/{id}", h.ServeDelete)
		r.Post("/api/posts/{id}/like", h.ServeLike)
		r.Post("/api/posts/{id}/comments", h.ServeComment)
		r.Delete("/api/comments/{id}", h.ServeDeleteComment)
	})
}
