// internal/app/features/studio/handler.go
package studio

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/parivartan/platform/internal/app/features/apierrors"
	"github.com/parivartan/platform/internal/app/system/ai"
	"github.com/parivartan/platform/internal/app/system/timeouts"
)

// Handler exposes image generation for post and slide artwork. The AI
// client never fails a request; when the model is unreachable it hands
// back a placeholder URL, so these handlers have no error path of their
// own beyond input validation.
type Handler struct {
	Log *zap.Logger
	AI  *ai.Client
}

func NewHandler(client *ai.Client, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, AI: client}
}

// ServeGenerate handles POST /api/studio/generate.
// Body: {"prompt": "..."}.
func (h *Handler) ServeGenerate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if !apierrors.Decode(w, r, &req) {
		return
	}
	req.Prompt = strings.TrimSpace(req.Prompt)
	if req.Prompt == "" {
		apierrors.WriteBadRequest(w, "prompt is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	apierrors.WriteJSON(w, http.StatusOK, map[string]string{
		"image": h.AI.GenerateImage(ctx, req.Prompt),
	})
}

// ServeEdit handles POST /api/studio/edit.
// Body: {"image": "<base64>", "mime_type": "image/png", "instruction": "..."}.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Image       string `json:"image"`
		MimeType    string `json:"mime_type"`
		Instruction string `json:"instruction"`
	}
	if !apierrors.Decode(w, r, &req) {
		return
	}
	if req.Image == "" || strings.TrimSpace(req.Instruction) == "" {
		apierrors.WriteBadRequest(w, "image and instruction are required")
		return
	}
	if req.MimeType == "" {
		req.MimeType = "image/png"
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	apierrors.WriteJSON(w, http.StatusOK, map[string]string{
		"image": h.AI.EditImage(ctx, req.Image, req.MimeType, req.Instruction),
	})
}
