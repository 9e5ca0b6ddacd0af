package services

import (
	"context"
	"strings"

	"github.com/tabdeck/backend/internal/domain/models"
	"github.com/tabdeck/backend/internal/domain/ports"
	"github.com/tabdeck/backend/pkg/constants"
	"github.com/tabdeck/backend/pkg/errors"
)

// TaskEntityName is the registry entity backing the task feature
const TaskEntityName = "TaskEntity"

// Task statuses
const (
	TaskStatusPending   = "pending"
	TaskStatusCompleted = "completed"
)

// TaskService exposes the task feature's named operations. It validates
// business input before delegating to the data facade; it never reaches
// storage directly.
type TaskService struct {
	data ports.DataAPI
}

// NewTaskService creates a new TaskService
func NewTaskService(data ports.DataAPI) *TaskService {
	return &TaskService{data: data}
}

// Add creates a pending task. The title must be non-empty after trimming.
func (ts *TaskService) Add(ctx context.Context, title, content string) (int64, error) {
	if strings.TrimSpace(title) == "" {
		return 0, errors.NewValidationError("title", "title cannot be empty")
	}

	return ts.data.Create(ctx, TaskEntityName, models.Record{
		"title":   title,
		"content": content,
		"status":  TaskStatusPending,
	})
}

// Complete marks a task completed. Returns false when the id is unknown.
func (ts *TaskService) Complete(ctx context.Context, id int64) (bool, error) {
	return ts.data.Update(ctx, TaskEntityName, id, models.Record{
		"status": TaskStatusCompleted,
	})
}

// Reopen moves a completed task back to pending
func (ts *TaskService) Reopen(ctx context.Context, id int64) (bool, error) {
	return ts.data.Update(ctx, TaskEntityName, id, models.Record{
		"status": TaskStatusPending,
	})
}

// Remove deletes a task. Returns false when the id is unknown.
func (ts *TaskService) Remove(ctx context.Context, id int64) (bool, error) {
	return ts.data.Delete(ctx, TaskEntityName, id)
}

// Get returns one task, or nil when absent
func (ts *TaskService) Get(ctx context.Context, id int64) (models.Record, error) {
	return ts.data.Get(ctx, TaskEntityName, id)
}

// List returns tasks, newest first, optionally restricted to one status
func (ts *TaskService) List(ctx context.Context, status string, limit int) ([]models.Record, error) {
	opts := ports.QueryOptions{
		OrderBy:        constants.FieldCreatedAt,
		OrderDirection: constants.SortDESC,
		Limit:          limit,
	}
	if status != "" {
		opts.Filters = map[string]interface{}{"status": status}
	}
	return ts.data.Query(ctx, TaskEntityName, opts)
}

// PendingCount returns the number of open tasks
func (ts *TaskService) PendingCount(ctx context.Context) (int64, error) {
	return ts.data.Count(ctx, TaskEntityName, map[string]interface{}{
		"status": TaskStatusPending,
	})
}
