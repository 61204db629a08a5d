// internal/app/features/sysconfig/handler.go
package sysconfig

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/parivartan/platform/internal/app/features/apierrors"
	sysconfigstore "github.com/parivartan/platform/internal/app/store/sysconfig"
	"github.com/parivartan/platform/internal/app/system/htmlsanitize"
	"github.com/parivartan/platform/internal/app/system/timeouts"
	"github.com/parivartan/platform/internal/domain/models"
)

// Handler serves platform-wide settings such as the startup popup.
type Handler struct {
	Log    *zap.Logger
	Config *sysconfigstore.Store
}

func NewHandler(store *sysconfigstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, Config: store}
}

// ServeGetStartup handles GET /api/config/startup. The home page reads
// this before sign-in, so the route is public.
func (h *Handler) ServeGetStartup(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cfg, err := h.Config.GetStartup(ctx)
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "sysconfig.get_startup", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, cfg)
}

// ServeSetStartup handles PUT /api/config/startup.
func (h *Handler) ServeSetStartup(w http.ResponseWriter, r *http.Request) {
	var req models.StartupConfig
	if !apierrors.Decode(w, r, &req) {
		return
	}
	req.Title = htmlsanitize.Clean(req.Title)
	req.Message = htmlsanitize.Clean(req.Message)
	if req.Enabled && req.Message == "" {
		apierrors.WriteBadRequest(w, "an enabled popup needs a message")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Config.SetStartup(ctx, req); err != nil {
		apierrors.WriteServerError(w, h.Log, "sysconfig.set_startup", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, req)
}
