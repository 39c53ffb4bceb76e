package task

import (
	"time"
)

type TaskOption func(*Task)

func WithTitle(title string) TaskOption {
	if title == "" {
		return nil
	}
	return func(task *Task) {
		task.Title = title
	}
}

func WithDescription(description string) TaskOption {
	return func(task *Task) {
		task.Description = description
	}
}

func WithDeadline(deadline time.Time) TaskOption {
	if deadline.IsZero() {
		return nil
	}
	return func(task *Task) {
		task.Deadline = deadline
	}
}

func WithPriority(priority Priority) TaskOption {
	if !ValidPriority(priority) {
		return nil
	}
	return func(task *Task) {
		task.Priority = priority
	}
}

// диапазон проверяется в сервисе, опция только записывает значение
func WithReminderDays(days int) TaskOption {
	return func(task *Task) {
		task.ReminderDaysBefore = days
	}
}
