// internal/app/features/feed/handler.go
package feed

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/parivartan/platform/internal/app/features/apierrors"
	"github.com/parivartan/platform/internal/app/policy/contentpolicy"
	commentstore "github.com/parivartan/platform/internal/app/store/comments"
	notificationstore "github.com/parivartan/platform/internal/app/store/notifications"
	poststore "github.com/parivartan/platform/internal/app/store/posts"
	"github.com/parivartan/platform/internal/app/system/ai"
	"github.com/parivartan/platform/internal/app/system/authz"
	"github.com/parivartan/platform/internal/app/system/htmlsanitize"
	"github.com/parivartan/platform/internal/app/system/timeouts"
	"github.com/parivartan/platform/internal/domain/models"
)

const listLimit = 100

// Handler serves the community feed.
type Handler struct {
	Log           *zap.Logger
	Posts         *poststore.Store
	Comments      *commentstore.Store
	Notifications *notificationstore.Store
	AI            *ai.Client
}

func NewHandler(posts *poststore.Store, comments *commentstore.Store, notifications *notificationstore.Store, aiClient *ai.Client, logger *zap.Logger) *Handler {
	return &Handler{
		Log:           logger,
		Posts:         posts,
		Comments:      comments,
		Notifications: notifications,
		AI:            aiClient,
	}
}

// ServeList handles GET /api/posts.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	posts, err := h.Posts.List(ctx, listLimit)
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "feed.list", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, posts)
}

// ServeCreate handles POST /api/posts.
// Body: {"type": "general", "content": "...", "images": ["..."]}.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	caller, ok := authz.UserCtx(r)
	if !ok {
		apierrors.WriteUnauthorized(w)
		return
	}
	if !contentpolicy.CanPost(caller.Role) {
		apierrors.WriteForbidden(w, "posting is restricted to authorized members")
		return
	}

	var req struct {
		Type    string   `json:"type"`
		Content string   `json:"content"`
		Images  []string `json:"images"`
	}
	if !apierrors.Decode(w, r, &req) {
		return
	}
	req.Content = htmlsanitize.Clean(req.Content)
	if req.Content == "" && len(req.Images) == 0 {
		apierrors.WriteBadRequest(w, "post needs content or images")
		return
	}
	if req.Type == "" {
		req.Type = models.PostTypeGeneral
	}

	// Moderation fails open; only an explicit block rejects the post.
	if !h.AI.ValidateContent(r.Context(), req.Content) {
		apierrors.WriteError(w, http.StatusUnprocessableEntity, "post was flagged by moderation")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Posts.Create(ctx, models.Post{
		UserID:  caller.UserID,
		Type:    req.Type,
		Content: req.Content,
		Images:  req.Images,
	})
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "feed.create", err)
		return
	}
	created.UserName = caller.Name
	apierrors.WriteJSON(w, http.StatusCreated, created)
}

// ServeUpdate handles PUT /api/posts/{id}.
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	caller, ok := authz.UserCtx(r)
	if !ok {
		apierrors.WriteUnauthorized(w)
		return
	}
	postID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteBadRequest(w, "invalid post id")
		return
	}

	var req struct {
		Type    string   `json:"type"`
		Content string   `json:"content"`
		Images  []string `json:"images"`
	}
	if !apierrors.Decode(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	post, err := h.Posts.GetByID(ctx, postID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierrors.WriteNotFound(w, "post not found")
		return
	}
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "feed.update.get", err)
		return
	}
	if !contentpolicy.CanManagePost(caller.Role, post.UserID, caller.UserID) {
		apierrors.WriteForbidden(w, "you cannot edit this post")
		return
	}

	if req.Type == "" {
		req.Type = post.Type
	}
	err = h.Posts.Update(ctx, postID, poststore.PostUpdate{
		Type:    req.Type,
		Content: htmlsanitize.Clean(req.Content),
		Images:  req.Images,
	})
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "feed.update", err)
		return
	}

	updated, err := h.Posts.GetByID(ctx, postID)
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "feed.update.reload", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, updated)
}

// ServeDelete handles DELETE /api/posts/{id}.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	caller, ok := authz.UserCtx(r)
	if !ok {
		apierrors.WriteUnauthorized(w)
		return
	}
	postID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteBadRequest(w, "invalid post id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	post, err := h.Posts.GetByID(ctx, postID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierrors.WriteNotFound(w, "post not found")
		return
	}
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "feed.delete.get", err)
		return
	}
	if !contentpolicy.CanManagePost(caller.Role, post.UserID, caller.UserID) {
		apierrors.WriteForbidden(w, "you cannot delete this post")
		return
	}

	if err := h.Posts.Delete(ctx, postID); err != nil {
		apierrors.WriteServerError(w, h.Log, "feed.delete", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ServeLike handles POST /api/posts/{id}/like, toggling the caller's like.
func (h *Handler) ServeLike(w http.ResponseWriter, r *http.Request) {
	caller, ok := authz.UserCtx(r)
	if !ok {
		apierrors.WriteUnauthorized(w)
		return
	}
	postID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteBadRequest(w, "invalid post id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	liked, count, err := h.Posts.ToggleLike(ctx, postID, caller.UserID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierrors.WriteNotFound(w, "post not found")
		return
	}
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "feed.like", err)
		return
	}

	if liked {
		h.notifyPostOwner(ctx, postID, caller, models.NotificationLike,
			fmt.Sprintf("%s liked your post", caller.Name))
	}

	apierrors.WriteJSON(w, http.StatusOK, map[string]any{"liked": liked, "likes": count})
}

// ServeComment handles POST /api/posts/{id}/comments.
// Body: {"content": "..."}.
func (h *Handler) ServeComment(w http.ResponseWriter, r *http.Request) {
	caller, ok := authz.UserCtx(r)
	if !ok {
		apierrors.WriteUnauthorized(w)
		return
	}
	postID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteBadRequest(w, "invalid post id")
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if !apierrors.Decode(w, r, &req) {
		return
	}
	req.Content = htmlsanitize.Clean(req.Content)
	if req.Content == "" {
		apierrors.WriteBadRequest(w, "comment is empty")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := h.Posts.GetByID(ctx, postID); errors.Is(err, mongo.ErrNoDocuments) {
		apierrors.WriteNotFound(w, "post not found")
		return
	} else if err != nil {
		apierrors.WriteServerError(w, h.Log, "feed.comment.get", err)
		return
	}

	created, err := h.Comments.Create(ctx, models.Comment{
		PostID:  postID,
		UserID:  caller.UserID,
		Content: req.Content,
	})
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "feed.comment", err)
		return
	}
	created.UserName = caller.Name

	h.notifyPostOwner(ctx, postID, caller, models.NotificationComment,
		fmt.Sprintf("%s commented on your post", caller.Name))

	apierrors.WriteJSON(w, http.StatusCreated, created)
}

// ServeDeleteComment handles DELETE /api/comments/{id}.
func (h *Handler) ServeDeleteComment(w http.ResponseWriter, r *http.Request) {
	caller, ok := authz.UserCtx(r)
	if !ok {
		apierrors.WriteUnauthorized(w)
		return
	}
	commentID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteBadRequest(w, "invalid comment id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	comment, err := h.Comments.GetByID(ctx, commentID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierrors.WriteNotFound(w, "comment not found")
		return
	}
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "feed.comment.delete.get", err)
		return
	}

	post, err := h.Posts.GetByID(ctx, comment.PostID)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		apierrors.WriteServerError(w, h.Log, "feed.comment.delete.post", err)
		return
	}
	postOwner := primitive.NilObjectID
	if post != nil {
		postOwner = post.UserID
	}

	if !contentpolicy.CanDeleteComment(caller.Role, postOwner, comment.UserID, caller.UserID) {
		apierrors.WriteForbidden(w, "you cannot delete this comment")
		return
	}

	if err := h.Comments.Delete(ctx, commentID); err != nil {
		apierrors.WriteServerError(w, h.Log, "feed.comment.delete", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// notifyPostOwner creates a notification for the post's owner unless they
// caused the activity themselves. Failures are logged, never surfaced.
func (h *Handler) notifyPostOwner(ctx context.Context, postID primitive.ObjectID, actor authz.Identity, kind, content string) {
	post, err := h.Posts.GetByID(ctx, postID)
	if err != nil || post.UserID == actor.UserID {
		return
	}
	_, err = h.Notifications.Create(ctx, models.Notification{
		UserID:  post.UserID,
		Type:    kind,
		Content: content,
	})
	if err != nil {
		h.Log.Warn("failed to create notification", zap.Error(err))
	}
}
