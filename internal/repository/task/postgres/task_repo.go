package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskAdmin/internal/logger"
	"taskAdmin/internal/models/task"
	repo "taskAdmin/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type Storage struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Storage {
	return &Storage{pool: pool}
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	err := s.pool.Ping(ctx)
	if err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	return nil
}

const taskColumns = `
				id,
				company_id,
				title,
				description,
				deadline,
				priority,
				status,
				created_by,
				assigned_to,
				modified_by,
				created_at,
				updated_at,
				reminder_days_before`

func scanTask(row pgx.Row) (*task.Task, error) {
	t := &task.Task{}
	err := row.Scan(
		&t.ID,
		&t.CompanyID,
		&t.Title,
		&t.Description,
		&t.Deadline,
		&t.Priority,
		&t.Status,
		&t.CreatedBy,
		&t.AssignedTo,
		&t.ModifiedBy,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.ReminderDaysBefore,
	)
	return t, err
}

func (s *Storage) Create(ctx context.Context, taskToCreate *task.Task) error {
	start := time.Now()

	query := `INSERT INTO tasks
				(id, company_id, title, description, deadline, priority, status, created_by, assigned_to, created_at, reminder_days_before)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), $10)
				RETURNING created_at`

	err := s.pool.QueryRow(ctx, query,
		taskToCreate.ID,
		taskToCreate.CompanyID,
		taskToCreate.Title,
		taskToCreate.Description,
		taskToCreate.Deadline,
		taskToCreate.Priority,
		taskToCreate.Status,
		taskToCreate.CreatedBy,
		taskToCreate.AssignedTo,
		taskToCreate.ReminderDaysBefore,
	).Scan(&taskToCreate.CreatedAt)

	if err != nil {
		logger.Error("Repository: Не удалось добавить задачу", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("добавление задачи: %w", err)
	}

	if time.Since(start) > time.Millisecond*50 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

// Update перезаписывает изменяемые поля целиком, последняя запись побеждает
func (s *Storage) Update(ctx context.Context, taskToUpdate *task.Task) error {
	start := time.Now()

	query := `UPDATE tasks
			SET title = $1,
				description = $2,
				deadline = $3,
				priority = $4,
				status = $5,
				assigned_to = $6,
				modified_by = $7,
				reminder_days_before = $8,
				updated_at = NOW()
			WHERE id = $9
			RETURNING updated_at`

	err := s.pool.QueryRow(ctx, query,
		taskToUpdate.Title,
		taskToUpdate.Description,
		taskToUpdate.Deadline,
		taskToUpdate.Priority,
		taskToUpdate.Status,
		taskToUpdate.AssignedTo,
		taskToUpdate.ModifiedBy,
		taskToUpdate.ReminderDaysBefore,
		taskToUpdate.ID,
	).Scan(&taskToUpdate.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось обновить задачу", err)
		return fmt.Errorf("обновление задачи: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленная операция", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) GetByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	start := time.Now()

	query := `SELECT` + taskColumns + `
				FROM tasks
				WHERE id = $1`

	t, err := scanTask(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить задачу", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение задачи: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}

	return t, nil
}

func (s *Storage) queryTasks(ctx context.Context, start time.Time, limit int, query string, args ...any) ([]*task.Task, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("Repository: Не удалось получить задачи", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение задач: %w", err)
	}

	defer rows.Close()

	tasks := []*task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			logger.Warn("Repository: Ошибка сканирования задачи", zap.Error(err))
			continue
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}

	if time.Since(start) > time.Millisecond*50+time.Millisecond*10*time.Duration(limit) {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}

	return tasks, nil
}

// GetByCompanyWithLimit - постраничная выборка задач компании
func (s *Storage) GetByCompanyWithLimit(ctx context.Context, companyID uuid.UUID, page, limit int) ([]*task.Task, error) {
	offset := (page - 1) * limit
	query := `SELECT` + taskColumns + `
				FROM tasks
				WHERE company_id = $1
				ORDER BY created_at DESC
				LIMIT $2 OFFSET $3`

	return s.queryTasks(ctx, time.Now(), limit, query, companyID, limit, offset)
}

// GetStatusedWithLimit - задачи компании с определённым статусом
func (s *Storage) GetStatusedWithLimit(ctx context.Context, companyID uuid.UUID, page, limit int, status task.Status) ([]*task.Task, error) {
	offset := (page - 1) * limit
	query := `SELECT` + taskColumns + `
				FROM tasks
				WHERE company_id = $1 AND status = $2
				ORDER BY created_at DESC
				LIMIT $3 OFFSET $4`

	return s.queryTasks(ctx, time.Now(), limit, query, companyID, status, limit, offset)
}

// GetTasksDueBefore - незавершённые задачи с истёкшим дедлайном
func (s *Storage) GetTasksDueBefore(ctx context.Context, deadline time.Time, limit int) ([]*task.Task, error) {
	query := `SELECT` + taskColumns + `
				FROM tasks
				WHERE status NOT IN ($1, $2)
					AND deadline < $3
				LIMIT $4`

	return s.queryTasks(ctx, time.Now(), limit, query, task.StatusCompleted, task.StatusOverdue, deadline, limit)
}

// GetTasksInReminderWindow - задачи, вошедшие в окно напоминания, но ещё не просроченные
func (s *Storage) GetTasksInReminderWindow(ctx context.Context, now time.Time, limit int) ([]*task.Task, error) {
	query := `SELECT` + taskColumns + `
				FROM tasks
				WHERE status NOT IN ($1, $2)
					AND reminder_days_before > 0
					AND deadline > $3
					AND deadline - make_interval(days => reminder_days_before) <= $3
				LIMIT $4`

	return s.queryTasks(ctx, time.Now(), limit, query, task.StatusCompleted, task.StatusOverdue, now, limit)
}

func (s *Storage) CreateComment(ctx context.Context, comment *task.Comment) error {
	start := time.Now()

	query := `INSERT INTO task_comments
				(id, task_id, sender_id, message, created_at)
				VALUES ($1, $2, $3, $4, NOW())
				RETURNING created_at`

	err := s.pool.QueryRow(ctx, query,
		comment.ID,
		comment.TaskID,
		comment.SenderID,
		comment.Message,
	).Scan(&comment.CreatedAt)

	if err != nil {
		logger.Error("Repository: Не удалось добавить комментарий", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("добавление комментария: %w", err)
	}

	if time.Since(start) > time.Millisecond*50 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

// GetCommentsByTask - комментарии задачи в порядке добавления
func (s *Storage) GetCommentsByTask(ctx context.Context, taskID uuid.UUID) ([]*task.Comment, error) {
	start := time.Now()

	query := `SELECT
				id,
				task_id,
				sender_id,
				message,
				created_at
				FROM task_comments
				WHERE task_id = $1
				ORDER BY created_at ASC`

	rows, err := s.pool.Query(ctx, query, taskID)
	if err != nil {
		logger.Error("Repository: Не удалось получить комментарии", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение комментариев: %w", err)
	}

	defer rows.Close()

	comments := []*task.Comment{}
	for rows.Next() {
		c := &task.Comment{}
		err := rows.Scan(
			&c.ID,
			&c.TaskID,
			&c.SenderID,
			&c.Message,
			&c.CreatedAt,
		)
		if err != nil {
			logger.Warn("Repository: Ошибка сканирования комментария", zap.Error(err))
			continue
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}

	return comments, nil
}
