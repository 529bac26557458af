package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/mwalczyk/taskboard/internal/apperr"
	"github.com/mwalczyk/taskboard/internal/auth"
	"github.com/mwalczyk/taskboard/internal/models"
	"github.com/mwalczyk/taskboard/internal/store"
)

// dueDateLayouts are the accepted wire formats for dueDate.
var dueDateLayouts = []string{time.RFC3339, "2006-01-02"}

// TaskStore defines the interface for task persistence. Every operation is
// scoped by the owner passed in; a task owned by someone else is
// indistinguishable from a missing one.
type TaskStore interface {
	ListByOwner(ctx context.Context, owner string) ([]models.Task, error)
	Insert(ctx context.Context, t *models.Task) (*models.Task, error)
	Update(ctx context.Context, id, owner string, patch models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, id, owner string) error
}

// Handler holds task HTTP handlers.
type Handler struct {
	store    TaskStore
	validate *validator.Validate
	dev      bool
}

func NewHandler(store TaskStore, dev bool) *Handler {
	return &Handler{store: store, validate: validator.New(), dev: dev}
}

// Routes mounts the task endpoints on r. RequireAuth must already wrap r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// List handles GET /api/tasks: all tasks of the calling identity, sorted by
// (order ascending, createdAt descending).
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		apperr.Write(w, apperr.Unauthenticated("Not authenticated"), h.dev)
		return
	}

	tasks, err := h.store.ListByOwner(r.Context(), ident.UserID)
	if err != nil {
		apperr.Write(w, apperr.Internal("Error fetching tasks", err), h.dev)
		return
	}
	apperr.WriteJSON(w, http.StatusOK, tasks)
}

// Create handles POST /api/tasks.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		apperr.Write(w, apperr.Unauthenticated("Not authenticated"), h.dev)
		return
	}

	var req models.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.Write(w, apperr.Validation("Invalid request body"), h.dev)
		return
	}
	if req.Title == "" || req.DueDate == "" {
		apperr.Write(w, apperr.Validation("Title and Due Date are required"), h.dev)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		apperr.Write(w, apperr.Validation("Invalid task fields"), h.dev)
		return
	}

	due, err := parseDueDate(req.DueDate)
	if err != nil {
		apperr.Write(w, apperr.Validation("Invalid due date"), h.dev)
		return
	}
	// Date-only comparison: time of day is ignored, and the rule applies at
	// creation only.
	if dateOnly(due).Before(dateOnly(time.Now())) {
		apperr.Write(w, apperr.Validation("Due date must be today or in the future"), h.dev)
		return
	}

	status := req.Status
	if status == "" {
		status = models.StatusTodo
	}

	// The owner comes from the verified identity, never from the payload.
	task := &models.Task{
		Owner:       ident.UserID,
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		DueDate:     due,
		Order:       0,
	}

	created, err := h.store.Insert(r.Context(), task)
	if err != nil {
		apperr.Write(w, apperr.Internal("Error creating task", err), h.dev)
		return
	}
	apperr.WriteJSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/tasks/{id}: a partial update of any subset of
// title/description/status/dueDate/order.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		apperr.Write(w, apperr.Unauthenticated("Not authenticated"), h.dev)
		return
	}

	var req models.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.Write(w, apperr.Validation("Invalid request body"), h.dev)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		apperr.Write(w, apperr.Validation("Invalid task fields"), h.dev)
		return
	}

	patch := models.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Order:       req.Order,
	}
	if req.DueDate != nil {
		due, err := parseDueDate(*req.DueDate)
		if err != nil {
			apperr.Write(w, apperr.Validation("Invalid due date"), h.dev)
			return
		}
		patch.DueDate = &due
	}

	updated, err := h.store.Update(r.Context(), chi.URLParam(r, "id"), ident.UserID, patch)
	if errors.Is(err, store.ErrNotFound) {
		apperr.Write(w, apperr.NotFound("Task not found"), h.dev)
		return
	}
	if err != nil {
		apperr.Write(w, apperr.Internal("Error updating task", err), h.dev)
		return
	}
	apperr.WriteJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/tasks/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		apperr.Write(w, apperr.Unauthenticated("Not authenticated"), h.dev)
		return
	}

	err := h.store.Delete(r.Context(), chi.URLParam(r, "id"), ident.UserID)
	if errors.Is(err, store.ErrNotFound) {
		apperr.Write(w, apperr.NotFound("Task not found"), h.dev)
		return
	}
	if err != nil {
		apperr.Write(w, apperr.Internal("Error deleting task", err), h.dev)
		return
	}
	apperr.WriteJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

func parseDueDate(s string) (time.Time, error) {
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// dateOnly truncates t to its calendar date, so comparisons ignore both time
// of day and zone offsets.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
