// Package admin — админ-панель: вход по паролю (Argon2id), сессии и управление каталогами.
// models.go описывает сессии, попытки входа и тела запросов.
package admin

import (
	"time"

	"github.com/google/uuid"
)

// Session — активная сессия администратора.
type Session struct {
	ID              int64     `db:"id"`
	Token           string    `db:"session_token"`
	ClientAddr      string    `db:"client_addr"`
	AuthenticatedAt time.Time `db:"authenticated_at"`
	ExpiresAt       time.Time `db:"expires_at"`
	LastActivity    time.Time `db:"last_activity"`
	IsActive        bool      `db:"is_active"`
}

// Ограничение попыток входа: 3 неудачные попытки за час с одного адреса.
const (
	maxFailedAttempts = 3
	attemptWindow     = time.Hour
)

// LoginRequest — тело POST /admin/login.
type LoginRequest struct {
	Password string `json:"password" validate:"required,max=256"`
}

// LoginResponse — токен для заголовка X-Admin-Token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CatalogTaskRequest — тело POST /admin/tasks.
type CatalogTaskRequest struct {
	Title string `json:"title" validate:"required,max=200"`
	Icon  string `json:"icon" validate:"max=100"`
}

// GrantRequest — тело POST /admin/points/grant.
type GrantRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	Amount int64     `json:"amount" validate:"required,min=1"`
	Reason string    `json:"reason" validate:"max=200"`
}
