package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"taskAdmin/internal/logger"
	"taskAdmin/internal/models/identity"
	"taskAdmin/internal/models/task"
	repo "taskAdmin/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// здесь происходит проверка бизнес-правил: разрешение учёток,
// права на правку и смену статуса, валидация входных значений

type TaskService struct {
	tasks      TaskRepository
	identities IdentityRepository
}

func NewTaskService(tasks TaskRepository, identities IdentityRepository) TaskService {
	return TaskService{
		tasks:      tasks,
		identities: identities,
	}
}

func (s *TaskService) HealthCheck(ctx context.Context) error {
	if err := s.tasks.HealthCheck(ctx); err != nil {
		return fmt.Errorf("проверка здоровья сервиса: %w", err)
	}
	if err := s.identities.HealthCheck(ctx); err != nil {
		return fmt.Errorf("проверка здоровья сервиса: %w", err)
	}
	return nil
}

// ResolveIdentity разрешает учётку один раз на границе: сперва реестр
// администраторов платформы, затем активные сотрудники компаний
func (s *TaskService) ResolveIdentity(ctx context.Context, accountID uuid.UUID) (identity.Identity, error) {
	admin, err := s.identities.GetPlatformAdmin(ctx, accountID)
	if err == nil {
		return admin, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return identity.Identity{}, fmt.Errorf("поиск администратора платформы: %w", err)
	}

	member, err := s.identities.GetCompanyMember(ctx, accountID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			logger.Info("Service: Учётная запись не найдена", zap.String("account_id", accountID.String()))
			return identity.Identity{}, NewNotFound("учётная запись", accountID.String())
		}
		return identity.Identity{}, fmt.Errorf("поиск сотрудника компании: %w", err)
	}

	return member, nil
}

// resolveCreator - автор задачи для проверки прав. Автор, которого больше
// нет в реестрах, считается обычным (не супер-админом): его задачи не
// должны замораживаться навсегда.
func (s *TaskService) resolveCreator(ctx context.Context, t *task.Task) (identity.Identity, error) {
	creator, err := s.ResolveIdentity(ctx, t.CreatedBy)
	if err != nil {
		var busErr *BusinessError
		if errors.As(err, &busErr) && busErr.Code == "NOT_FOUND" {
			return identity.Identity{}, nil
		}
		return identity.Identity{}, err
	}
	return creator, nil
}

func (s *TaskService) getTask(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.String("task_id", id.String()))
			return nil, NewNotFound("задача", id.String())
		}
		return nil, fmt.Errorf("получение задачи: %w", err)
	}
	return t, nil
}

// CreateTask создаёт задачу. Создавать могут админы компаний (внутри своей
// компании) и администраторы платформы (указав компанию явно).
func (s *TaskService) CreateTask(ctx context.Context, callerID, companyID uuid.UUID, title, description string, deadline time.Time, priority task.Priority, assignedTo *uuid.UUID, reminderDays int) (*task.Task, error) {
	caller, err := s.ResolveIdentity(ctx, callerID)
	if err != nil {
		return nil, err
	}

	switch caller.Kind {
	case identity.KindCompanyMember:
		if caller.Role != identity.RoleAdmin {
			return nil, NewPermissionDenied(ReasonRoleForbidden,
				ToDetail("role", caller.Role))
		}
		companyID = caller.CompanyID
	case identity.KindPlatformAdmin:
		if companyID == uuid.Nil {
			return nil, NewValidationError("company_id", "администратор платформы должен указать компанию")
		}
	}

	if strings.TrimSpace(title) == "" {
		return nil, NewValidationError("title", "название не может быть пустым")
	}
	if deadline.IsZero() {
		return nil, NewValidationError("deadline", "дедлайн должен быть задан")
	}
	if !task.ValidPriority(priority) {
		return nil, NewValidationError("priority", "неизвестный приоритет")
	}
	if reminderDays < 0 || reminderDays > task.ReminderDaysMax {
		return nil, NewValidationError("reminder_days_before", "значение вне диапазона 0..365")
	}

	newTask := &task.Task{
		ID:                 uuid.New(),
		CompanyID:          companyID,
		Title:              strings.TrimSpace(title),
		Description:        description,
		Deadline:           deadline,
		Priority:           priority,
		Status:             task.StatusOpen,
		CreatedBy:          caller.ID,
		AssignedTo:         assignedTo,
		CreatedAt:          time.Now(),
		ReminderDaysBefore: reminderDays,
	}

	if err := s.tasks.Create(ctx, newTask); err != nil {
		return nil, fmt.Errorf("создание задачи: %w", err)
	}

	logger.Info("Service: Задача создана",
		zap.String("task_id", newTask.ID.String()),
		zap.String("created_by", caller.ID.String()))

	return newTask, nil
}

// EditContent правит содержимое задачи по правилу авторства
func (s *TaskService) EditContent(ctx context.Context, callerID, taskID uuid.UUID, options ...task.TaskOption) (*task.Task, error) {
	caller, err := s.ResolveIdentity(ctx, callerID)
	if err != nil {
		return nil, err
	}

	t, err := s.getTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	creator, err := s.resolveCreator(ctx, t)
	if err != nil {
		return nil, err
	}

	if !CanEditContent(caller, creator, t) {
		logger.Warn("Service: Отказ в правке задачи",
			zap.String("task_id", t.ID.String()),
			zap.String("caller_id", caller.ID.String()),
			zap.String("reason", EditDenyReason(creator)))
		return nil, NewPermissionDenied(EditDenyReason(creator),
			ToDetail("task_id", t.ID.String()))
	}

	// опции применяются к копии: при ошибке валидации ни хранилище,
	// ни прочитанная задача не должны остаться частично изменёнными
	updated := *t
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&updated)
	}

	if updated.ReminderDaysBefore < 0 || updated.ReminderDaysBefore > task.ReminderDaysMax {
		return nil, NewValidationError("reminder_days_before", "значение вне диапазона 0..365")
	}

	updated.ModifiedBy = &caller.ID

	if err := s.tasks.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("обновление задачи: %w", err)
	}

	return &updated, nil
}

// ApplyStatusChange меняет статус задачи. Граф переходов не ограничен:
// любой статус может смениться любым, повторная запись того же статуса
// всё равно штампует modified_by/updated_at.
func (s *TaskService) ApplyStatusChange(ctx context.Context, callerID, taskID uuid.UUID, newStatus task.Status) (*task.Task, error) {
	if !task.ValidStatus(newStatus) {
		return nil, NewValidationError("status", "неизвестный статус")
	}

	caller, err := s.ResolveIdentity(ctx, callerID)
	if err != nil {
		return nil, err
	}

	t, err := s.getTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	creator, err := s.resolveCreator(ctx, t)
	if err != nil {
		return nil, err
	}

	if !CanChangeStatus(caller, creator, t) {
		logger.Warn("Service: Отказ в смене статуса",
			zap.String("task_id", t.ID.String()),
			zap.String("caller_id", caller.ID.String()),
			zap.String("reason", StatusDenyReason(creator)))
		return nil, NewPermissionDenied(StatusDenyReason(creator),
			ToDetail("task_id", t.ID.String()))
	}

	t.Status = newStatus
	t.ModifiedBy = &caller.ID

	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("смена статуса: %w", err)
	}

	logger.Info("Service: Статус задачи изменён",
		zap.String("task_id", t.ID.String()),
		zap.String("status", string(newStatus)),
		zap.String("modified_by", caller.ID.String()))

	return t, nil
}

// AddComment добавляет неизменяемый комментарий. Права на правку и статус
// на комментарии не распространяются: комментировать может любой
// администратор платформы и любой сотрудник компании задачи.
func (s *TaskService) AddComment(ctx context.Context, callerID, taskID uuid.UUID, message string) (*task.Comment, error) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return nil, NewValidationError("message", "комментарий не может быть пустым")
	}

	caller, err := s.ResolveIdentity(ctx, callerID)
	if err != nil {
		return nil, err
	}

	t, err := s.getTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if caller.Kind == identity.KindCompanyMember && caller.CompanyID != t.CompanyID {
		return nil, NewPermissionDenied(ReasonWrongCompany,
			ToDetail("task_id", t.ID.String()))
	}

	comment := &task.Comment{
		ID:        uuid.New(),
		TaskID:    t.ID,
		SenderID:  caller.ID,
		Message:   trimmed,
		CreatedAt: time.Now(),
	}

	if err := s.tasks.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("добавление комментария: %w", err)
	}

	return comment, nil
}

func (s *TaskService) GetTaskByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	return s.getTask(ctx, id)
}

func (s *TaskService) ListTasks(ctx context.Context, companyID uuid.UUID, page, limit int) ([]*task.Task, error) {
	tasks, err := s.tasks.GetByCompanyWithLimit(ctx, companyID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) ListTasksByStatus(ctx context.Context, companyID uuid.UUID, page, limit int, status task.Status) ([]*task.Task, error) {
	if !task.ValidStatus(status) {
		return nil, NewValidationError("status", "неизвестный статус")
	}

	tasks, err := s.tasks.GetStatusedWithLimit(ctx, companyID, page, limit, status)
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) ListComments(ctx context.Context, taskID uuid.UUID) ([]*task.Comment, error) {
	if _, err := s.getTask(ctx, taskID); err != nil {
		return nil, err
	}

	comments, err := s.tasks.GetCommentsByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("получение комментариев: %w", err)
	}
	return comments, nil
}

// TaskPermissions - ответ на проверку прав без выполнения операции
type TaskPermissions struct {
	CanEditContent  bool `json:"can_edit_content"`
	CanChangeStatus bool `json:"can_change_status"`
}

// CheckPermissions считает права вызывающего на задачу, чтобы клиенты
// не выводили свои правила у себя
func (s *TaskService) CheckPermissions(ctx context.Context, callerID, taskID uuid.UUID) (TaskPermissions, error) {
	caller, err := s.ResolveIdentity(ctx, callerID)
	if err != nil {
		return TaskPermissions{}, err
	}

	t, err := s.getTask(ctx, taskID)
	if err != nil {
		return TaskPermissions{}, err
	}

	creator, err := s.resolveCreator(ctx, t)
	if err != nil {
		return TaskPermissions{}, err
	}

	return TaskPermissions{
		CanEditContent:  CanEditContent(caller, creator, t),
		CanChangeStatus: CanChangeStatus(caller, creator, t),
	}, nil
}
