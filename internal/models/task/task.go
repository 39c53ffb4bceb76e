package task

import (
	"time"

	"github.com/google/uuid"
)

type Status string
type Priority string

const StatusOpen Status = "open"
const StatusInProgress Status = "in_progress"
const StatusAwaitingResponse Status = "awaiting_response"
const StatusCompleted Status = "completed"
const StatusOverdue Status = "overdue"

const PriorityLow Priority = "low"
const PriorityMedium Priority = "medium"
const PriorityHigh Priority = "high"

// ReminderDaysMax - верхняя граница reminder_days_before
const ReminderDaysMax = 365

type Task struct {
	ID                 uuid.UUID  `json:"id" db:"id"`
	CompanyID          uuid.UUID  `json:"company_id" db:"company_id"`
	Title              string     `json:"title" db:"title"`
	Description        string     `json:"description" db:"description"`
	Deadline           time.Time  `json:"deadline" db:"deadline"`
	Priority           Priority   `json:"priority" db:"priority"`
	Status             Status     `json:"status" db:"status"`
	CreatedBy          uuid.UUID  `json:"created_by" db:"created_by"`
	AssignedTo         *uuid.UUID `json:"assigned_to,omitempty" db:"assigned_to"`
	ModifiedBy         *uuid.UUID `json:"modified_by,omitempty" db:"modified_by"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty" db:"updated_at"`
	ReminderDaysBefore int        `json:"reminder_days_before" db:"reminder_days_before"`
}

func ValidStatus(s Status) bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusAwaitingResponse, StatusCompleted, StatusOverdue:
		return true
	}
	return false
}

func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ReminderStart - начало окна напоминания перед дедлайном
func (t *Task) ReminderStart() time.Time {
	return t.Deadline.AddDate(0, 0, -t.ReminderDaysBefore)
}
