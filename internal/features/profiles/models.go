// Package profiles управляет профилями пользователей: серия, счётчики, баллы.
// models.go описывает структуру профиля (таблица profiles).
package profiles

import (
	"time"

	"github.com/google/uuid"
)

// Profile — профиль пользователя. ID совпадает с id пользователя Supabase Auth.
type Profile struct {
	ID                uuid.UUID `json:"id" db:"id"`
	Username          string    `json:"username" db:"username"`
	UserStreak        int       `json:"user_streak" db:"user_streak"`               // Текущая серия (дней подряд)
	LongestStreak     int       `json:"longest_streak" db:"longest_streak"`         // Личный рекорд
	CompletedTasks    int       `json:"completed_tasks" db:"completed_tasks"`       // Всего выполнено заданий
	AchievementPoints int64     `json:"achievement_points" db:"achievement_points"` // Баланс баллов
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}
