// internal/app/features/feedback/handler.go
package feedback

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/parivartan/platform/internal/app/features/apierrors"
	feedbackstore "github.com/parivartan/platform/internal/app/store/feedback"
	"github.com/parivartan/platform/internal/app/system/authz"
	"github.com/parivartan/platform/internal/app/system/htmlsanitize"
	"github.com/parivartan/platform/internal/app/system/timeouts"
	"github.com/parivartan/platform/internal/domain/models"
)

// Handler collects ratings and suggestions. Anyone signed in can submit;
// only admins read the collected lists.
type Handler struct {
	Log      *zap.Logger
	Feedback *feedbackstore.Store
}

func NewHandler(store *feedbackstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, Feedback: store}
}

// ServeCreateFeedback handles POST /api/feedback.
// Body: {"rating": 1..5, "comment": "..."}.
func (h *Handler) ServeCreateFeedback(w http.ResponseWriter, r *http.Request) {
	caller, ok := authz.UserCtx(r)
	if !ok {
		apierrors.WriteUnauthorized(w)
		return
	}

	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if !apierrors.Decode(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Feedback.CreateFeedback(ctx, models.Feedback{
		UserID:  caller.UserID,
		Rating:  req.Rating,
		Comment: htmlsanitize.Clean(req.Comment),
	})
	if err != nil {
		if errors.Is(err, feedbackstore.ErrBadRating) {
			apierrors.WriteBadRequest(w, err.Error())
			return
		}
		apierrors.WriteServerError(w, h.Log, "feedback.create", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusCreated, created)
}

// ServeListFeedback handles GET /api/feedback.
func (h *Handler) ServeListFeedback(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	items, err := h.Feedback.ListFeedback(ctx)
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "feedback.list", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, items)
}

// ServeCreateSuggestion handles POST /api/suggestions.
// Body: {"title": "...", "description": "...", "category": "feature"}.
func (h *Handler) ServeCreateSuggestion(w http.ResponseWriter, r *http.Request) {
	caller, ok := authz.UserCtx(r)
	if !ok {
		apierrors.WriteUnauthorized(w)
		return
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Category    string `json:"category"`
	}
	if !apierrors.Decode(w, r, &req) {
		return
	}
	req.Title = htmlsanitize.Clean(req.Title)
	if req.Title == "" {
		apierrors.WriteBadRequest(w, "title is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Feedback.CreateSuggestion(ctx, models.Suggestion{
		UserID:      caller.UserID,
		Title:       req.Title,
		Description: htmlsanitize.Clean(req.Description),
		Category:    req.Category,
	})
	if err != nil {
		if errors.Is(err, feedbackstore.ErrBadCategory) {
			apierrors.WriteBadRequest(w, err.Error())
			return
		}
		apierrors.WriteServerError(w, h.Log, "suggestions.create", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusCreated, created)
}

// ServeListSuggestions handles GET /api/suggestions.
func (h *Handler) ServeListSuggestions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	items, err := h.Feedback.ListSuggestions(ctx)
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "suggestions.list", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, items)
}
