package worker

import (
	"context"
	"fmt"
	"time"

	"taskAdmin/internal/logger"
	"taskAdmin/internal/models/task"
	"taskAdmin/internal/service"

	"go.uber.org/zap"
)

// DeadlineWorker периодически переводит просроченные задачи в overdue
// и пишет в лог задачи, вошедшие в окно напоминания
type DeadlineWorker struct {
	repo      service.TaskRepository
	interval  time.Duration
	batchSize int
}

func NewDeadlineWorker(repo service.TaskRepository, interval time.Duration, batchSize int) *DeadlineWorker {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return &DeadlineWorker{
		repo:      repo,
		interval:  interval,
		batchSize: batchSize,
	}
}

func (w *DeadlineWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			logger.Info("Worker: Фоновая проверка дедлайнов", zap.Time("started_at", time.Now()))
			w.Check(ctx)
		case <-ctx.Done():
			logger.Info("Worker: Фоновая проверка останавливается")
			return
		}
	}
}

func (w *DeadlineWorker) Check(ctx context.Context) {
	start := time.Now()

	overdueCount := w.markOverdue(ctx)
	reminderCount := w.logReminders(ctx)

	logger.Info(
		"Worker: Завершение проверки дедлайнов",
		zap.Duration("ms", time.Since(start)),
		zap.Int("overdue", overdueCount),
		zap.Int("reminders", reminderCount),
	)
}

func (w *DeadlineWorker) markOverdue(ctx context.Context) int {
	tasks, err := w.repo.GetTasksDueBefore(ctx, time.Now(), w.batchSize)
	if err != nil {
		logger.Warn("Worker: ошибка получения просроченных задач", zap.Error(err))
		return 0
	}

	count := 0
	for _, t := range tasks {
		if err := w.MarkAsOverdue(ctx, t); err != nil {
			logger.Warn("Worker: Ошибка обновления задачи", zap.Error(err))
			continue
		}
		count++

		if count >= w.batchSize {
			break
		}
	}
	return count
}

// MarkAsOverdue - системная смена статуса, modified_by не трогаем
func (w *DeadlineWorker) MarkAsOverdue(ctx context.Context, t *task.Task) error {
	t.Status = task.StatusOverdue

	if err := w.repo.Update(ctx, t); err != nil {
		return fmt.Errorf("обновление статуса: %w", err)
	}
	return nil
}

func (w *DeadlineWorker) logReminders(ctx context.Context) int {
	tasks, err := w.repo.GetTasksInReminderWindow(ctx, time.Now(), w.batchSize)
	if err != nil {
		logger.Warn("Worker: ошибка получения окна напоминаний", zap.Error(err))
		return 0
	}

	for _, t := range tasks {
		logger.Info("Worker: Приближается дедлайн задачи",
			zap.String("task_id", t.ID.String()),
			zap.String("company_id", t.CompanyID.String()),
			zap.Time("deadline", t.Deadline),
			zap.Int("reminder_days_before", t.ReminderDaysBefore),
		)
	}
	return len(tasks)
}
