// internal/app/features/campaigns/handler.go
package campaigns

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/parivartan/platform/internal/app/features/apierrors"
	"github.com/parivartan/platform/internal/app/policy/contentpolicy"
	campaignstore "github.com/parivartan/platform/internal/app/store/campaigns"
	"github.com/parivartan/platform/internal/app/system/authz"
	"github.com/parivartan/platform/internal/app/system/htmlsanitize"
	"github.com/parivartan/platform/internal/app/system/timeouts"
	"github.com/parivartan/platform/internal/domain/models"
)

// Handler serves donation campaigns.
type Handler struct {
	Log       *zap.Logger
	Campaigns *campaignstore.Store
}

func NewHandler(campaigns *campaignstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, Campaigns: campaigns}
}

// ServeList handles GET /api/campaigns.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	campaigns, err := h.Campaigns.List(ctx)
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "campaigns.list", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, campaigns)
}

// ServeSave handles POST /api/campaigns and PUT /api/campaigns/{id}.
func (h *Handler) ServeSave(w http.ResponseWriter, r *http.Request) {
	caller, ok := authz.UserCtx(r)
	if !ok {
		apierrors.WriteUnauthorized(w)
		return
	}

	var req struct {
		ID           string  `json:"id"`
		Title        string  `json:"title"`
		Description  string  `json:"description"`
		TargetAmount float64 `json:"target_amount"`
		UPIID        string  `json:"upi_id"`
		Image        string  `json:"image"`
	}
	if !apierrors.Decode(w, r, &req) {
		return
	}
	if id := chi.URLParam(r, "id"); id != "" {
		req.ID = id
	}
	if req.Title == "" {
		apierrors.WriteBadRequest(w, "title is required")
		return
	}
	if req.TargetAmount <= 0 {
		apierrors.WriteBadRequest(w, "target amount must be positive")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	// Any authorized member may start a campaign; amending an existing one
	// is owner-or-admin.
	if req.ID != "" {
		existing, err := h.Campaigns.GetByID(ctx, req.ID)
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			apierrors.WriteServerError(w, h.Log, "campaigns.save", err)
			return
		}
		if err == nil && !contentpolicy.CanManagePost(caller.Role, existing.CreatedBy, caller.UserID) {
			apierrors.WriteForbidden(w, "editing this campaign needs the owner or an admin")
			return
		}
	}

	saved, err := h.Campaigns.Upsert(ctx, models.DonationCampaign{
		ID:           req.ID,
		Title:        htmlsanitize.Clean(req.Title),
		Description:  htmlsanitize.Clean(req.Description),
		TargetAmount: req.TargetAmount,
		UPIID:        req.UPIID,
		Image:        req.Image,
	}, caller.UserID)
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "campaigns.save", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, saved)
}

// ServeDonate handles POST /api/campaigns/{id}/donations.
// Body: {"amount": 500}. Records a confirmed donation against the total.
func (h *Handler) ServeDonate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount float64 `json:"amount"`
	}
	if !apierrors.Decode(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	updated, err := h.Campaigns.RecordDonation(ctx, chi.URLParam(r, "id"), req.Amount)
	if errors.Is(err, campaignstore.ErrBadAmount) {
		apierrors.WriteBadRequest(w, err.Error())
		return
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierrors.WriteNotFound(w, "campaign not found")
		return
	}
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "campaigns.donate", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, updated)
}

// ServeDelete handles DELETE /api/campaigns/{id}.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	caller, ok := authz.UserCtx(r)
	if !ok {
		apierrors.WriteUnauthorized(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	existing, err := h.Campaigns.GetByID(ctx, chi.URLParam(r, "id"))
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierrors.WriteNotFound(w, "campaign not found")
		return
	}
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "campaigns.delete", err)
		return
	}
	if !contentpolicy.CanManagePost(caller.Role, existing.CreatedBy, caller.UserID) {
		apierrors.WriteForbidden(w, "deleting this campaign needs the owner or an admin")
		return
	}

	err = h.Campaigns.Delete(ctx, existing.ID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierrors.WriteNotFound(w, "campaign not found")
		return
	}
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "campaigns.delete", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
