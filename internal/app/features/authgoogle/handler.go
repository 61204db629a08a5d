// internal/app/features/authgoogle/handler.go
package authgoogle

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/parivartan/platform/internal/app/features/apierrors"
	loginstore "github.com/parivartan/platform/internal/app/store/logins"
	"github.com/parivartan/platform/internal/app/store/oauthstate"
	profilestore "github.com/parivartan/platform/internal/app/store/profiles"
	"github.com/parivartan/platform/internal/app/system/auth"
	"github.com/parivartan/platform/internal/app/system/timeouts"
	"github.com/parivartan/platform/internal/app/system/totp"
	"github.com/parivartan/platform/internal/domain/models"
)

// Handler runs the Google OAuth sign-in flow. First-time visitors get a
// profile provisioned at the USER tier; returning visitors pick up their
// stored role. Accounts with the second factor enabled go through a code
// challenge before the session is created.
type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Profiles   *profilestore.Store
	StateStore *oauthstate.Store
	Logins     *loginstore.Store

	ClientID     string
	ClientSecret string
	RedirectURL  string

	// SuperAdminEmails bootstrap the top tier on first login.
	SuperAdminEmails []string
}

func NewHandler(
	profiles *profilestore.Store,
	stateStore *oauthstate.Store,
	logins *loginstore.Store,
	sessionMgr *auth.SessionManager,
	clientID, clientSecret, baseURL string,
	superAdminEmails []string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Log:              logger,
		SessionMgr:       sessionMgr,
		Profiles:         profiles,
		StateStore:       stateStore,
		Logins:           logins,
		ClientID:         clientID,
		ClientSecret:     clientSecret,
		RedirectURL:      baseURL + "/auth/google/callback",
		SuperAdminEmails: superAdminEmails,
	}
}

func (h *Handler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.ClientID,
		ClientSecret: h.ClientSecret,
		RedirectURL:  h.RedirectURL,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// IsConfigured returns true if Google OAuth is configured.
func (h *Handler) IsConfigured() bool {
	return h.ClientID != "" && h.ClientSecret != ""
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /auth/google                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if !h.IsConfigured() {
		h.Log.Warn("Google OAuth not configured")
		http.Redirect(w, r, "/login?error=google_not_configured", http.StatusSeeOther)
		return
	}

	state, err := generateState()
	if err != nil {
		h.Log.Error("failed to generate OAuth state", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	returnURL := query.Get(r, "return")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	expiresAt := time.Now().UTC().Add(10 * time.Minute)
	if err := h.StateStore.Save(ctx, state, returnURL, expiresAt); err != nil {
		h.Log.Error("failed to save OAuth state", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, h.oauth2Config().AuthCodeURL(state, oauth2.AccessTypeOffline),
		http.StatusTemporaryRedirect)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /auth/google/callback                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.Log.Warn("Google OAuth error",
			zap.String("error", errParam),
			zap.String("description", r.URL.Query().Get("error_description")))
		http.Redirect(w, r, "/login?error=google_denied", http.StatusSeeOther)
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		h.Log.Warn("missing OAuth state parameter")
		http.Redirect(w, r, "/login?error=invalid_state", http.StatusSeeOther)
		return
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	returnURL, valid, err := h.StateStore.Validate(ctxTimeout, state)
	if err != nil {
		h.Log.Error("failed to validate OAuth state", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}
	if !valid {
		h.Log.Warn("invalid or expired OAuth state")
		http.Redirect(w, r, "/login?error=invalid_state", http.StatusSeeOther)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Redirect(w, r, "/login?error=invalid_code", http.StatusSeeOther)
		return
	}

	token, err := h.oauth2Config().Exchange(ctx, code)
	if err != nil {
		h.Log.Error("failed to exchange OAuth code", zap.Error(err))
		http.Redirect(w, r, "/login?error=token_exchange", http.StatusSeeOther)
		return
	}

	googleUser, err := fetchGoogleUserInfo(ctx, token)
	if err != nil {
		h.Log.Error("failed to fetch Google user info", zap.Error(err))
		http.Redirect(w, r, "/login?error=user_info", http.StatusSeeOther)
		return
	}

	user, err := h.Profiles.EnsureProfile(ctx, profilestore.Provision{
		Email:        googleUser.Email,
		Name:         googleUser.Name,
		Avatar:       googleUser.Picture,
		AuthReturnID: googleUser.ID,
		Verified:     googleUser.EmailVerified,
	}, h.SuperAdminEmails)
	if err != nil {
		h.Log.Error("failed to provision profile", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	if user.TwoFactor == totp.Enabled {
		h.redirectToTwoFactor(w, r, user, returnURL)
		return
	}

	h.signInAndRedirect(w, r, user, returnURL)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /auth/2fa/verify                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeTwoFactorVerify completes a sign-in held behind the second factor.
// Body: {"token": "...", "code": "123456"}.
func (h *Handler) ServeTwoFactorVerify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
		Code  string `json:"code"`
	}
	if !apierrors.Decode(w, r, &req) {
		return
	}
	if req.Token == "" {
		apierrors.WriteBadRequest(w, "missing challenge token")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ch, ok, err := h.Logins.Peek(ctx, req.Token)
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "twofactor.peek", err)
		return
	}
	if !ok {
		apierrors.WriteError(w, http.StatusUnauthorized, "challenge expired; sign in again")
		return
	}

	user, err := h.Profiles.GetByID(ctx, ch.UserID)
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "twofactor.profile", err)
		return
	}

	if !totp.Verify(user.TwoFactorSecret, req.Code, time.Now()) {
		h.Log.Info("two-factor code rejected", zap.String("user_id", user.ID.Hex()))
		apierrors.WriteError(w, http.StatusUnauthorized, "invalid code")
		return
	}

	if err := h.Logins.Consume(ctx, req.Token); err != nil {
		h.Log.Warn("failed to consume login challenge", zap.Error(err))
	}

	if err := h.SessionMgr.SignIn(w, r, sessionUser(user)); err != nil {
		apierrors.WriteServerError(w, h.Log, "twofactor.signin", err)
		return
	}

	apierrors.WriteJSON(w, http.StatusOK, map[string]any{
		"ok":     true,
		"return": urlutil.SafeReturn(ch.ReturnURL, "", "/"),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| Helpers                                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) redirectToTwoFactor(w http.ResponseWriter, r *http.Request, user *models.User, returnURL string) {
	token, err := generateState()
	if err != nil {
		h.Log.Error("failed to generate challenge token", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err = h.Logins.Save(ctx, loginstore.Challenge{
		Token:     token,
		UserID:    user.ID,
		ReturnURL: returnURL,
		ExpiresAt: time.Now().UTC().Add(5 * time.Minute),
	})
	if err != nil {
		h.Log.Error("failed to save login challenge", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/verify-2fa?token="+token, http.StatusSeeOther)
}

func (h *Handler) signInAndRedirect(w http.ResponseWriter, r *http.Request, user *models.User, returnURL string) {
	if err := h.SessionMgr.SignIn(w, r, sessionUser(user)); err != nil {
		h.Log.Error("failed to create session", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	h.Log.Info("user signed in",
		zap.String("user_id", user.ID.Hex()),
		zap.String("role", user.Role))

	http.Redirect(w, r, urlutil.SafeReturn(returnURL, "", "/"), http.StatusSeeOther)
}

func sessionUser(u *models.User) *auth.SessionUser {
	return &auth.SessionUser{
		ID:     u.ID.Hex(),
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
		Avatar: u.Avatar,
	}
}

// googleUserInfo represents user info returned from Google.
type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	return &info, nil
}

// generateState returns a cryptographically secure random state string.
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
