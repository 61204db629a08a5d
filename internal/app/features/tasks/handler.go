// internal/app/features/tasks/handler.go
package tasks

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/parivartan/platform/internal/app/features/apierrors"
	notificationstore "github.com/parivartan/platform/internal/app/store/notifications"
	taskstore "github.com/parivartan/platform/internal/app/store/tasks"
	"github.com/parivartan/platform/internal/app/system/authz"
	"github.com/parivartan/platform/internal/app/system/htmlsanitize"
	"github.com/parivartan/platform/internal/app/system/timeouts"
	"github.com/parivartan/platform/internal/domain/models"
)

// Handler serves community task assignment.
type Handler struct {
	Log           *zap.Logger
	Tasks         *taskstore.Store
	Notifications *notificationstore.Store
}

func NewHandler(tasks *taskstore.Store, notifications *notificationstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, Tasks: tasks, Notifications: notifications}
}

// ServeList handles GET /api/tasks. Admins see all tasks; members see
// their own assignments.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	caller, ok := authz.UserCtx(r)
	if !ok {
		apierrors.WriteUnauthorized(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var (
		tasks []models.Task
		err   error
	)
	if caller.IsAdmin() {
		tasks, err = h.Tasks.List(ctx)
	} else {
		tasks, err = h.Tasks.ListForUser(ctx, caller.UserID)
	}
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "tasks.list", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, tasks)
}

// ServeSave handles POST /api/tasks and PUT /api/tasks/{id} with
// idempotent UUID upsert semantics.
func (h *Handler) ServeSave(w http.ResponseWriter, r *http.Request) {
	caller, ok := authz.UserCtx(r)
	if !ok {
		apierrors.WriteUnauthorized(w)
		return
	}

	var req struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		AssignedTo  string `json:"assigned_to"`
		Status      string `json:"status"`
		DueDate     string `json:"due_date"`
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
	assignee, err := primitive.ObjectIDFromHex(req.AssignedTo)
	if err != nil {
		apierrors.WriteBadRequest(w, "invalid assignee")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	saved, err := h.Tasks.Upsert(ctx, models.Task{
		ID:          req.ID,
		Title:       htmlsanitize.Clean(req.Title),
		Description: htmlsanitize.Clean(req.Description),
		AssignedTo:  assignee,
		Status:      req.Status,
		DueDate:     req.DueDate,
	}, caller.UserID)
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "tasks.save", err)
		return
	}

	if assignee != caller.UserID {
		_, err := h.Notifications.Create(ctx, models.Notification{
			UserID:  assignee,
			Type:    models.NotificationSystem,
			Content: "You were assigned a task: " + saved.Title,
		})
		if err != nil {
			h.Log.Warn("failed to notify assignee", zap.Error(err))
		}
	}

	apierrors.WriteJSON(w, http.StatusOK, saved)
}

// ServeUpdateStatus handles PUT /api/tasks/{id}/status. Assignees move
// their own tasks; admins move any.
func (h *Handler) ServeUpdateStatus(w http.ResponseWriter, r *http.Request) {
	caller, ok := authz.UserCtx(r)
	if !ok {
		apierrors.WriteUnauthorized(w)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if !apierrors.Decode(w, r, &req) {
		return
	}
	switch req.Status {
	case models.TaskStatusPending, models.TaskStatusInProgress, models.TaskStatusCompleted:
	default:
		apierrors.WriteBadRequest(w, `status must be "pending"|"in-progress"|"completed"`)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id := chi.URLParam(r, "id")
	task, err := h.Tasks.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierrors.WriteNotFound(w, "task not found")
		return
	}
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "tasks.status.get", err)
		return
	}
	if !caller.IsAdmin() && task.AssignedTo != caller.UserID {
		apierrors.WriteForbidden(w, "you can only update your own tasks")
		return
	}

	if err := h.Tasks.UpdateStatus(ctx, id, req.Status); err != nil {
		apierrors.WriteServerError(w, h.Log, "tasks.status", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, map[string]string{"id": id, "status": req.Status})
}

// ServeDelete handles DELETE /api/tasks/{id}.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err := h.Tasks.Delete(ctx, chi.URLParam(r, "id"))
	if errors.Is(err, mongo.ErrNoDocuments) {
		apierrors.WriteNotFound(w, "task not found")
		return
	}
	if err != nil {
		apierrors.WriteServerError(w, h.Log, "tasks.delete", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
