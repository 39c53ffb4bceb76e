package handlers

import (
	"context"
	"time"

	"taskAdmin/internal/models/identity"
	"taskAdmin/internal/models/task"
	"taskAdmin/internal/service"

	"github.com/google/uuid"
)

type TaskService interface {
	HealthCheck(context.Context) error
	ResolveIdentity(context.Context, uuid.UUID) (identity.Identity, error)
	CreateTask(ctx context.Context, callerID, companyID uuid.UUID, title, description string, deadline time.Time, priority task.Priority, assignedTo *uuid.UUID, reminderDays int) (*task.Task, error)
	EditContent(ctx context.Context, callerID, taskID uuid.UUID, options ...task.TaskOption) (*task.Task, error)
	ApplyStatusChange(ctx context.Context, callerID, taskID uuid.UUID, newStatus task.Status) (*task.Task, error)
	AddComment(ctx context.Context, callerID, taskID uuid.UUID, message string) (*task.Comment, error)
	GetTaskByID(context.Context, uuid.UUID) (*task.Task, error)
	ListTasks(ctx context.Context, companyID uuid.UUID, page, limit int) ([]*task.Task, error)
	ListTasksByStatus(ctx context.Context, companyID uuid.UUID, page, limit int, status task.Status) ([]*task.Task, error)
	ListComments(context.Context, uuid.UUID) ([]*task.Comment, error)
	CheckPermissions(ctx context.Context, callerID, taskID uuid.UUID) (service.TaskPermissions, error)
}
