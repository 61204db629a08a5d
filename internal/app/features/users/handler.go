// internal/app/features/users/handler.go
package users

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/parivartan/platform/internal/app/features/apierrors"
	"github.com/parivartan/platform/internal/app/policy/rolepolicy"
	profilestore "github.com/parivartan/platform/internal/app/store/profiles"
	"github.com/parivartan/platform/internal/app/system/authz"
	"github.com/parivartan/platform/internal/app/system/htmlsanitize"
	"github.com/parivartan/platform/internal/app/system/timeouts"
	"github.com/parivartan/platform/internal/app/system/totp"
	"github.com/parivartan/platform/internal/domain/models"
)

const totpIssuer = "Parivartan"

// Handler serves the member directory, profile edits, role changes, and
// the two-factor lifecycle.
type Handler struct {
	Log      *zap.Logger
	Profiles *profilestore.Store

	// ProtectedEmails can never have their role changed.
	ProtectedEmails []string
}

func NewHandler(profiles *profilestore.Store, protectedEmails []string, logger *zap.Logger) *Handler {
	return &Handler{
		Log:             logger,
		Profiles:        profiles,
		ProtectedEmails: protectedEmails,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Directory                                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeList handles GET /api/users.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.Profiles.List(ctx)
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "users.list", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, users)
}

// ServeGet handles GET /api/users/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteBadRequest(w, "invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Profiles.GetByID(ctx, oid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierrors.WriteNotFound(w, "user not found")
		return
	}
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "users.get", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, u)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Role changes                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeUpdateRole handles PUT /api/users/{id}/role.
// Body: {"role": "ADMIN"}.
func (h *Handler) ServeUpdateRole(w http.ResponseWriter, r *http.Request) {
	caller, ok := authz.UserCtx(r)
	if !ok {
		apierrors.WriteUnauthorized(w)
		return
	}

	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteBadRequest(w, "invalid user id")
		return
	}

	var req struct {
		Role string `json:"role"`
	}
	if !apierrors.Decode(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	target, err := h.Profiles.GetByID(ctx, oid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierrors.WriteNotFound(w, "user not found")
		return
	}
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "users.role.get", err)
		return
	}

	if d := rolepolicy.CanChangeRole(caller.Role, target.Email, req.Role, h.ProtectedEmails); !d.Allowed {
		apierrors.WriteForbidden(w, d.Reason)
		return
	}

	if err := h.Profiles.UpdateRole(ctx, oid, req.Role); err != nil {
		apierrors.WriteServerError(w, h.Log, "users.role.update", err)
		return
	}

	h.Log.Info("role changed",
		zap.String("actor", caller.UserID.Hex()),
		zap.String("target", oid.Hex()),
		zap.String("role", req.Role))

	updated, err := h.Profiles.GetByID(ctx, oid)
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "users.role.reload", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, updated)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Self-service profile                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeUpdateProfile handles PUT /api/profile for the signed-in user.
func (h *Handler) ServeUpdateProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := authz.UserCtx(r)
	if !ok {
		apierrors.WriteUnauthorized(w)
		return
	}

	var req struct {
		Name     string              `json:"name"`
		Bio      string              `json:"bio"`
		Location string              `json:"location"`
		Avatar   string              `json:"avatar"`
		Social   *models.SocialLinks `json:"social"`
	}
	if !apierrors.Decode(w, r, &req) {
		return
	}
	if req.Name == "" {
		apierrors.WriteBadRequest(w, "name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err := h.Profiles.UpdateProfile(ctx, caller.UserID, profilestore.ProfileUpdate{
		Name:     htmlsanitize.Clean(req.Name),
		Bio:      htmlsanitize.Clean(req.Bio),
		Location: htmlsanitize.Clean(req.Location),
		Avatar:   req.Avatar,
		Social:   req.Social,
	})
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "profile.update", err)
		return
	}

	u, err := h.Profiles.GetByID(ctx, caller.UserID)
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "profile.reload", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, u)
}

// ServeUpdateNotificationPrefs handles PUT /api/profile/notifications.
func (h *Handler) ServeUpdateNotificationPrefs(w http.ResponseWriter, r *http.Request) {
	caller, ok := authz.UserCtx(r)
	if !ok {
		apierrors.WriteUnauthorized(w)
		return
	}

	var prefs models.NotificationPreferences
	if !apierrors.Decode(w, r, &prefs) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Profiles.UpdateNotificationPreferences(ctx, caller.UserID, prefs); err != nil {
		apierrors.WriteServerError(w, h.Log, "profile.notifications", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, prefs)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Two-factor lifecycle                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeTwoFactorSetup handles POST /api/profile/2fa/setup. It issues a
// fresh secret and moves the account to the pending state; sign-in is not
// gated until the code is confirmed.
func (h *Handler) ServeTwoFactorSetup(w http.ResponseWriter, r *http.Request) {
	caller, ok := authz.UserCtx(r)
	if !ok {
		apierrors.WriteUnauthorized(w)
		return
	}

	secret, err := totp.GenerateSecret()
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "twofactor.secret", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Profiles.SetTwoFactor(ctx, caller.UserID, totp.Pending, secret); err != nil {
		apierrors.WriteServerError(w, h.Log, "twofactor.setup", err)
		return
	}

	apierrors.WriteJSON(w, http.StatusOK, map[string]string{
		"secret": secret,
		"uri":    totp.EnrollmentURI(secret, caller.Email, totpIssuer),
		"state":  string(totp.Pending),
	})
}

// ServeTwoFactorConfirm handles POST /api/profile/2fa/confirm.
// Body: {"code": "123456"}. A correct code flips pending to enabled.
func (h *Handler) ServeTwoFactorConfirm(w http.ResponseWriter, r *http.Request) {
	caller, ok := authz.UserCtx(r)
	if !ok {
		apierrors.WriteUnauthorized(w)
		return
	}

	var req struct {
		Code string `json:"code"`
	}
	if !apierrors.Decode(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Profiles.GetByID(ctx, caller.UserID)
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "twofactor.profile", err)
		return
	}
	if u.TwoFactor != totp.Pending || u.TwoFactorSecret == "" {
		apierrors.WriteBadRequest(w, "no pending two-factor setup")
		return
	}
	if !totp.Verify(u.TwoFactorSecret, req.Code, time.Now()) {
		apierrors.WriteError(w, http.StatusUnauthorized, "invalid code")
		return
	}

	if err := h.Profiles.SetTwoFactor(ctx, caller.UserID, totp.Enabled, u.TwoFactorSecret); err != nil {
		apierrors.WriteServerError(w, h.Log, "twofactor.enable", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, map[string]string{"state": string(totp.Enabled)})
}

// ServeTwoFactorDisable handles POST /api/profile/2fa/disable.
// Body: {"code": "123456"}. The current code is required to turn the
// factor off; the secret is discarded.
func (h *Handler) ServeTwoFactorDisable(w http.ResponseWriter, r *http.Request) {
	caller, ok := authz.UserCtx(r)
	if !ok {
		apierrors.WriteUnauthorized(w)
		return
	}

	var req struct {
		Code string `json:"code"`
	}
	if !apierrors.Decode(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Profiles.GetByID(ctx, caller.UserID)
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "twofactor.profile", err)
		return
	}
	if u.TwoFactor == totp.Disabled {
		apierrors.WriteJSON(w, http.StatusOK, map[string]string{"state": string(totp.Disabled)})
		return
	}
	if !totp.Verify(u.TwoFactorSecret, req.Code, time.Now()) {
		apierrors.WriteError(w, http.StatusUnauthorized, "invalid code")
		return
	}

	if err := h.Profiles.SetTwoFactor(ctx, caller.UserID, totp.Disabled, ""); err != nil {
		apierrors.WriteServerError(w, h.Log, "twofactor.disable", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, map[string]string{"state": string(totp.Disabled)})
}
