// internal/app/features/chat/handler.go
package chat

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/parivartan/platform/internal/app/features/apierrors"
	chatstore "github.com/parivartan/platform/internal/app/store/chat"
	"github.com/parivartan/platform/internal/app/system/authz"
	"github.com/parivartan/platform/internal/app/system/htmlsanitize"
	"github.com/parivartan/platform/internal/app/system/normalize"
	"github.com/parivartan/platform/internal/app/system/timeouts"
	"github.com/parivartan/platform/internal/domain/models"
)

const historyLimit = 200

// Handler serves member chat. Direct conversation ids are the two
// participant ids joined in sorted order (see normalize.ChatID); anything
// else is a named group room.
type Handler struct {
	Log      *zap.Logger
	Messages *chatstore.Store
}

func NewHandler(messages *chatstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, Messages: messages}
}

// canAccess reports whether the caller belongs in the conversation.
// Direct chats admit only their two participants; rooms admit any
// authorized member.
func canAccess(chatID string, caller authz.Identity) bool {
	parts := strings.Split(chatID, "__")
	if len(parts) != 2 {
		return true
	}
	me := caller.UserID.Hex()
	return parts[0] == me || parts[1] == me
}

// ServeList handles GET /api/chat/{chatID}/messages.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	caller, ok := authz.UserCtx(r)
	if !ok {
		apierrors.WriteUnauthorized(w)
		return
	}
	chatID := chi.URLParam(r, "chatID")
	if !canAccess(chatID, caller) {
		apierrors.WriteForbidden(w, "not a participant in this conversation")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	msgs, err := h.Messages.List(ctx, chatID, historyLimit)
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "chat.list", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, msgs)
}

// ServeSend handles POST /api/chat/{chatID}/messages.
// Body: {"text": "...", "image": "..."}.
func (h *Handler) ServeSend(w http.ResponseWriter, r *http.Request) {
	caller, ok := authz.UserCtx(r)
	if !ok {
		apierrors.WriteUnauthorized(w)
		return
	}
	chatID := chi.URLParam(r, "chatID")
	if !canAccess(chatID, caller) {
		apierrors.WriteForbidden(w, "not a participant in this conversation")
		return
	}

	var req struct {
		Text  string `json:"text"`
		Image string `json:"image"`
	}
	if !apierrors.Decode(w, r, &req) {
		return
	}
	req.Text = htmlsanitize.Clean(req.Text)
	if req.Text == "" && req.Image == "" {
		apierrors.WriteBadRequest(w, "message is empty")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	msg, err := h.Messages.Append(ctx, models.ChatMessage{
		ChatID:   chatID,
		SenderID: caller.UserID,
		Text:     req.Text,
		Image:    req.Image,
	})
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "chat.send", err)
		return
	}
	msg.SenderName = caller.Name
	apierrors.WriteJSON(w, http.StatusCreated, msg)
}

// ServeOpenDirect handles POST /api/chat/direct.
// Body: {"user_id": "..."}. Returns the canonical conversation id for the
// caller and the given user, creating nothing; conversations exist once
// they hold a message.
func (h *Handler) ServeOpenDirect(w http.ResponseWriter, r *http.Request) {
	caller, ok := authz.UserCtx(r)
	if !ok {
		apierrors.WriteUnauthorized(w)
		return
	}

	var req struct {
		UserID string `json:"user_id"`
	}
	if !apierrors.Decode(w, r, &req) {
		return
	}
	if req.UserID == "" {
		apierrors.WriteBadRequest(w, "user_id is required")
		return
	}

	apierrors.WriteJSON(w, http.StatusOK, map[string]string{
		"chat_id": normalize.ChatID(caller.UserID.Hex(), req.UserID),
	})
}
