package dto

import (
	"time"

	"taskAdmin/internal/models/identity"
	"taskAdmin/internal/models/task"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	CompanyID          *uuid.UUID    `json:"company_id,omitempty"`
	Title              string        `json:"title"`
	Description        string        `json:"description"`
	Deadline           time.Time     `json:"deadline"`
	Priority           task.Priority `json:"priority"`
	AssignedTo         *uuid.UUID    `json:"assigned_to,omitempty"`
	ReminderDaysBefore int           `json:"reminder_days_before"`
}

type UpdateTaskRequest struct {
	Title              *string        `json:"title,omitempty"`
	Description        *string        `json:"description,omitempty"`
	Deadline           *time.Time     `json:"deadline,omitempty"`
	Priority           *task.Priority `json:"priority,omitempty"`
	ReminderDaysBefore *int           `json:"reminder_days_before,omitempty"`
}

type ChangeStatusRequest struct {
	Status task.Status `json:"status"`
}

type AddCommentRequest struct {
	Message string `json:"message"`
}

type TaskResponse struct {
	ID                 uuid.UUID  `json:"id"`
	CompanyID          uuid.UUID  `json:"company_id"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	Deadline           time.Time  `json:"deadline"`
	Priority           string     `json:"priority"`
	Status             string     `json:"status"`
	CreatedBy          uuid.UUID  `json:"created_by"`
	AssignedTo         *uuid.UUID `json:"assigned_to,omitempty"`
	ModifiedBy         *uuid.UUID `json:"modified_by,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`
	ReminderDaysBefore int        `json:"reminder_days_before"`
	IsOverdue          bool       `json:"is_overdue"`
}

func FromTask(t *task.Task) TaskResponse {
	return TaskResponse{
		ID:                 t.ID,
		CompanyID:          t.CompanyID,
		Title:              t.Title,
		Description:        t.Description,
		Deadline:           t.Deadline,
		Priority:           string(t.Priority),
		Status:             string(t.Status),
		CreatedBy:          t.CreatedBy,
		AssignedTo:         t.AssignedTo,
		ModifiedBy:         t.ModifiedBy,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
		ReminderDaysBefore: t.ReminderDaysBefore,
		IsOverdue: t.Status == task.StatusOverdue ||
			(t.Status != task.StatusCompleted && t.Deadline.Before(time.Now())),
	}
}

func FromTaskList(tasks []*task.Task) []TaskResponse {
	result := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		result[i] = FromTask(t)
	}
	return result
}

type CommentResponse struct {
	ID        uuid.UUID `json:"id"`
	TaskID    uuid.UUID `json:"task_id"`
	SenderID  uuid.UUID `json:"sender_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func FromComment(c *task.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		TaskID:    c.TaskID,
		SenderID:  c.SenderID,
		Message:   c.Message,
		CreatedAt: c.CreatedAt,
	}
}

func FromCommentList(comments []*task.Comment) []CommentResponse {
	result := make([]CommentResponse, len(comments))
	for i, c := range comments {
		result[i] = FromComment(c)
	}
	return result
}

type IdentityResponse struct {
	ID        uuid.UUID  `json:"id"`
	Kind      string     `json:"kind"`
	Elevated  bool       `json:"elevated,omitempty"`
	CompanyID *uuid.UUID `json:"company_id,omitempty"`
	Role      string     `json:"role,omitempty"`
	Name      string     `json:"name,omitempty"`
}

func FromIdentity(i identity.Identity) IdentityResponse {
	resp := IdentityResponse{
		ID:       i.ID,
		Kind:     string(i.Kind),
		Elevated: i.Elevated,
		Role:     string(i.Role),
		Name:     i.Name,
	}
	if i.CompanyID != uuid.Nil {
		companyID := i.CompanyID
		resp.CompanyID = &companyID
	}
	return resp
}
