package rest

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tabdeck/backend/internal/application/services"
	"github.com/tabdeck/backend/pkg/constants"
	"github.com/tabdeck/backend/pkg/errors"
)

// TaskHandler is the presentation surface of the task feature
type TaskHandler struct {
	svc *services.ServiceManager
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(svc *services.ServiceManager) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// TaskRequest carries task input from the client
type TaskRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Create handles POST /api/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req TaskRequest
	if !BindJSON(c, &req) {
		return
	}

	id, err := h.svc.Tasks.Add(c.Request.Context(), req.Title, req.Content)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		constants.FieldMessage: "task created",
		constants.FieldID:      id,
	})
}

// List handles GET /api/tasks?status=pending&limit=50
// The response carries the open-task count alongside the page.
func (h *TaskHandler) List(c *gin.Context) {
	status := c.Query("status")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	tasks, err := h.svc.Tasks.List(c.Request.Context(), status, limit)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	pending, err := h.svc.Tasks.PendingCount(c.Request.Context())
	if err != nil {
		RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks, "pending_count": pending})
}

// Get handles GET /api/tasks/:id
func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}

	task, err := h.svc.Tasks.Get(c.Request.Context(), id)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	if task == nil {
		RespondAppError(c, errors.NewNotFoundError("task", c.Param("id")))
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}

// Complete handles POST /api/tasks/:id/complete
func (h *TaskHandler) Complete(c *gin.Context) {
	h.transition(c, h.svc.Tasks.Complete, "task completed")
}

// Reopen handles POST /api/tasks/:id/reopen
func (h *TaskHandler) Reopen(c *gin.Context) {
	h.transition(c, h.svc.Tasks.Reopen, "task reopened")
}

func (h *TaskHandler) transition(c *gin.Context, op func(ctx context.Context, id int64) (bool, error), successMsg string) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}

	changed, err := op(c.Request.Context(), id)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	if !changed {
		RespondAppError(c, errors.NewNotFoundError("task", c.Param("id")))
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.FieldMessage: successMsg})
}

// Delete handles DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}

	deleted, err := h.svc.Tasks.Remove(c.Request.Context(), id)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	if !deleted {
		RespondAppError(c, errors.NewNotFoundError("task", c.Param("id")))
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.FieldMessage: "task deleted"})
}
