// internal/app/features/chat/routes.go
package chat

import (
	"github.com/go-chi/chi/v5"

	"github.com/parivartan/platform/internal/app/system/auth"
)

// MountRoutes registers the chat API. The USER tier has no chat access.
func MountRoutes(r chi.Router, h *Handler) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuthorized)
		r.Get("/api/chat/{chatID}/messages", h.ServeList)
		r.Post("/api/chat/{chatID}/messages", h.ServeSend)
		r.Post("/api/chat/direct", h.ServeOpenDirect)
	})
}
