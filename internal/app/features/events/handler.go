// internal/app/features/events/handler.go
package events

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/parivartan/platform/internal/app/features/apierrors"
	"github.com/parivartan/platform/internal/app/policy/contentpolicy"
	eventstore "github.com/parivartan/platform/internal/app/store/events"
	"github.com/parivartan/platform/internal/app/system/authz"
	"github.com/parivartan/platform/internal/app/system/htmlsanitize"
	"github.com/parivartan/platform/internal/app/system/timeouts"
	"github.com/parivartan/platform/internal/domain/models"
)

// Handler serves the events board.
type Handler struct {
	Log    *zap.Logger
	Events *eventstore.Store
}

func NewHandler(events *eventstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, Events: events}
}

// ServeList handles GET /api/events.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	events, err := h.Events.List(ctx)
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "events.list", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, events)
}

// ServeSave handles POST /api/events and PUT /api/events/{id}. Saves are
// idempotent: a replayed id updates the same event.
func (h *Handler) ServeSave(w http.ResponseWriter, r *http.Request) {
	caller, ok := authz.UserCtx(r)
	if !ok {
		apierrors.WriteUnauthorized(w)
		return
	}

	var req struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		Date        string `json:"date"`
		Description string `json:"description"`
		Location    string `json:"location"`
		Image       string `json:"image"`
	}
	if !apierrors.Decode(w, r, &req) {
		return
	}
	if id := chi.URLParam(r, "id"); id != "" {
		req.ID = id
	}
	if req.Title == "" || req.Date == "" {
		apierrors.WriteBadRequest(w, "title and date are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	// Any authorized member may create; amending an existing event is
	// owner-or-admin.
	if req.ID != "" {
		existing, err := h.Events.GetByID(ctx, req.ID)
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			apierrors.WriteServerError(w, h.Log, "events.save", err)
			return
		}
		if err == nil && !contentpolicy.CanManagePost(caller.Role, existing.CreatedBy, caller.UserID) {
			apierrors.WriteForbidden(w, "editing this event needs the owner or an admin")
			return
		}
	}

	saved, err := h.Events.Upsert(ctx, models.Event{
		ID:          req.ID,
		Title:       htmlsanitize.Clean(req.Title),
		Date:        req.Date,
		Description: htmlsanitize.Clean(req.Description),
		Location:    htmlsanitize.Clean(req.Location),
		Image:       req.Image,
	}, caller.UserID)
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "events.save", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, saved)
}

// ServeDelete handles DELETE /api/events/{id}.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	caller, ok := authz.UserCtx(r)
	if !ok {
		apierrors.WriteUnauthorized(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	existing, err := h.Events.GetByID(ctx, chi.URLParam(r, "id"))
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierrors.WriteNotFound(w, "event not found")
		return
	}
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "events.delete", err)
		return
	}
	if !contentpolicy.CanManagePost(caller.Role, existing.CreatedBy, caller.UserID) {
		apierrors.WriteForbidden(w, "deleting this event needs the owner or an admin")
		return
	}

	err = h.Events.Delete(ctx, existing.ID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierrors.WriteNotFound(w, "event not found")
		return
	}
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "events.delete", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
