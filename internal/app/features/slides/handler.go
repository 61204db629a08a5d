// internal/app/features/slides/handler.go
package slides

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/parivartan/platform/internal/app/features/apierrors"
	slidestore "github.com/parivartan/platform/internal/app/store/slides"
	"github.com/parivartan/platform/internal/app/system/htmlsanitize"
	"github.com/parivartan/platform/internal/app/system/timeouts"
	"github.com/parivartan/platform/internal/domain/models"
)

// Handler serves the home page carousel.
type Handler struct {
	Log    *zap.Logger
	Slides *slidestore.Store
}

func NewHandler(slides *slidestore.Store, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, Slides: slides}
}

// ServeList handles GET /api/slides. The carousel is public content.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	slides, err := h.Slides.List(ctx)
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "slides.list", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, slides)
}

// ServeSave handles POST /api/slides and PUT /api/slides/{id}.
func (h *Handler) ServeSave(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Image       string `json:"image"`
	}
	if !apierrors.Decode(w, r, &req) {
		return
	}
	if id := chi.URLParam(r, "id"); id != "" {
		req.ID = id
	}
	if req.Image == "" {
		apierrors.WriteBadRequest(w, "image is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	saved, err := h.Slides.Upsert(ctx, models.Slide{
		ID:          req.ID,
		Title:       htmlsanitize.Clean(req.Title),
		Description: htmlsanitize.Clean(req.Description),
		Image:       req.Image,
	})
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "slides.save", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, saved)
}

// ServeDelete handles DELETE /api/slides/{id}.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err := h.Slides.Delete(ctx, chi.URLParam(r, "id"))
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierrors.WriteNotFound(w, "slide not found")
		return
	}
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "slides.delete", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
