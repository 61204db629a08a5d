// internal/app/features/assistant/handler.go
package assistant

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/parivartan/platform/internal/app/features/apierrors"
	"github.com/parivartan/platform/internal/app/system/ai"
	"github.com/parivartan/platform/internal/app/system/timeouts"
)

// history longer than this is trimmed from the front; the model only
// needs recent context and long transcripts inflate request size.
const maxHistory = 20

// Handler answers help-desk style questions about the platform.
type Handler struct {
	Log *zap.Logger
	AI  *ai.Client
}

func NewHandler(client *ai.Client, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, AI: client}
}

// ServeChat handles POST /api/assistant/chat.
// Body: {"history": ["...", "..."], "prompt": "..."}. History alternates
// user and assistant turns, oldest first.
func (h *Handler) ServeChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		History []string `json:"history"`
		Prompt  string   `json:"prompt"`
	}
	if !apierrors.Decode(w, r, &req) {
		return
	}
	req.Prompt = strings.TrimSpace(req.Prompt)
	if req.Prompt == "" {
		apierrors.WriteBadRequest(w, "prompt is required")
		return
	}
	if len(req.History) > maxHistory {
		req.History = req.History[len(req.History)-maxHistory:]
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	apierrors.WriteJSON(w, http.StatusOK, map[string]string{
		"reply": h.AI.Chat(ctx, req.History, req.Prompt),
	})
}
