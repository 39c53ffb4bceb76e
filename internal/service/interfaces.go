package service

import (
	"context"
	"time"

	"taskAdmin/internal/models/identity"
	"taskAdmin/internal/models/task"

	"github.com/google/uuid"
)

type TaskRepository interface {
	Create(context.Context, *task.Task) error
	Update(context.Context, *task.Task) error
	GetByID(context.Context, uuid.UUID) (*task.Task, error)
	GetByCompanyWithLimit(ctx context.Context, companyID uuid.UUID, page, limit int) ([]*task.Task, error)
	GetStatusedWithLimit(ctx context.Context, companyID uuid.UUID, page, limit int, status task.Status) ([]*task.Task, error)
	GetTasksDueBefore(ctx context.Context, deadline time.Time, limit int) ([]*task.Task, error)
	GetTasksInReminderWindow(ctx context.Context, now time.Time, limit int) ([]*task.Task, error)
	CreateComment(context.Context, *task.Comment) error
	GetCommentsByTask(context.Context, uuid.UUID) ([]*task.Comment, error)
	HealthCheck(context.Context) error
}

type IdentityRepository interface {
	GetPlatformAdmin(context.Context, uuid.UUID) (identity.Identity, error)
	GetCompanyMember(context.Context, uuid.UUID) (identity.Identity, error)
	HealthCheck(context.Context) error
}
