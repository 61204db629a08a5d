// internal/app/features/notifications/handler.go
package notifications

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/parivartan/platform/internal/app/features/apierrors"
	notificationstore "github.com/parivartan/platform/internal/app/store/notifications"
	"github.com/parivartan/platform/internal/app/system/authz"
	"github.com/parivartan/platform/internal/app/system/timeouts"
)

const listLimit = 50

// Handler serves the signed-in user's notification tray. Every store call
// is scoped to the caller's id so one user can never touch another's tray.
type Handler struct {
	Log           *zap.Logger
	Notifications *notificationstore.Store
}

func NewHandler(notifications *notificationstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, Notifications: notifications}
}

// ServeList handles GET /api/notifications.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	caller, ok := authz.UserCtx(r)
	if !ok {
		apierrors.WriteUnauthorized(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	items, err := h.Notifications.ListForUser(ctx, caller.UserID, listLimit)
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "notifications.list", err)
		return
	}
	unread, err := h.Notifications.UnreadCount(ctx, caller.UserID)
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "notifications.unread", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, map[string]any{
		"notifications": items,
		"unread":        unread,
	})
}

// ServeMarkRead handles PUT /api/notifications/{id}/read.
func (h *Handler) ServeMarkRead(w http.ResponseWriter, r *http.Request) {
	caller, ok := authz.UserCtx(r)
	if !ok {
		apierrors.WriteUnauthorized(w)
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteBadRequest(w, "invalid notification id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Notifications.MarkRead(ctx, id, caller.UserID); err != nil {
		if err == mongo.ErrNoDocuments {
			apierrors.WriteNotFound(w, "notification not found")
			return
		}
		apierrors.WriteServerError(w, h.Log, "notifications.mark_read", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ServeMarkAllRead handles POST /api/notifications/read-all.
func (h *Handler) ServeMarkAllRead(w http.ResponseWriter, r *http.Request) {
	caller, ok := authz.UserCtx(r)
	if !ok {
		apierrors.WriteUnauthorized(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Notifications.MarkAllRead(ctx, caller.UserID); err != nil {
		apierrors.WriteServerError(w, h.Log, "notifications.mark_all_read", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ServeDelete handles DELETE /api/notifications/{id}.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	caller, ok := authz.UserCtx(r)
	if !ok {
		apierrors.WriteUnauthorized(w)
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteBadRequest(w, "invalid notification id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Notifications.Delete(ctx, id, caller.UserID); err != nil {
		if err == mongo.ErrNoDocuments {
			apierrors.WriteNotFound(w, "notification not found")
			return
		}
		apierrors.WriteServerError(w, h.Log, "notifications.delete", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
