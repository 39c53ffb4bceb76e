package task

import (
	"time"

	"github.com/google/uuid"
)

// Comment - запись комментария к задаче. Только добавление, без изменений.
type Comment struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TaskID    uuid.UUID `json:"task_id" db:"task_id"`
	SenderID  uuid.UUID `json:"sender_id" db:"sender_id"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
