// Package education — обучающие материалы (статьи, видео), общие для всех пользователей.
package education

import "time"

type Content struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	ContentURL  string    `json:"content_url" db:"content_url"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	Duration    string    `json:"duration" db:"duration"` // как показывать в приложении: "5 dk", "12:30"
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// NewContent — тело POST /admin/education.
type NewContent struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	ContentURL  string `json:"content_url" validate:"required,url"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
	Duration    string `json:"duration" validate:"max=50"`
}
