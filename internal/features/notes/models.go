// Package notes — личные заметки пользователя.
package notes

import (
	"time"

	"github.com/google/uuid"
)

// MaxContentLength — предел длины заметки в символах.
const MaxContentLength = 2000

type Note struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateRequest — тело POST /v1/notes.
type CreateRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}
