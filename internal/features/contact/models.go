// Package contact — обращения пользователей в поддержку: отзывы, предложения, жалобы.
package contact

import (
	"time"

	"github.com/google/uuid"
)

// Типы обращений.
const (
	TypeFeedback   = "feedback"
	TypeSuggestion = "suggestion"
	TypeComplaint  = "complaint"
)

// Пределы длины в символах.
const (
	MaxSubjectLength = 200
	MaxMessageLength = 2000
)

type Message struct {
	ID        int64     `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Subject   string    `json:"subject" db:"subject"`
	Message   string    `json:"message" db:"message"`
	Type      string    `json:"type" db:"type"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// SubmitRequest — тело POST /v1/contact. Без type обращение считается отзывом.
type SubmitRequest struct {
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=2000"`
	Type    string `json:"type" validate:"omitempty,oneof=feedback suggestion complaint"`
}
