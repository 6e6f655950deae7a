// Package admin — repository.go работает с таблицами admin_sessions и admin_login_attempts.
package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BlqckRiad/CepteMotivasyon/internal/common"
	"github.com/BlqckRiad/CepteMotivasyon/internal/db/postgres"
)

// Repository работает с админ-таблицами.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateSession создаёт новую сессию администратора.
func (r *Repository) CreateSession(ctx context.Context, session *Session) error {
	query := `
		INSERT INTO admin_sessions (session_token, client_addr, expires_at, is_active)
		VALUES ($1, $2, $3, TRUE)
	`
	_, err := r.db.Exec(ctx, query, session.Token, session.ClientAddr, session.ExpiresAt)
	if err != nil {
		return fmt.Errorf("ошибка создания сессии: %w", err)
	}
	return nil
}

// GetActiveSession возвращает активную сессию по токену.
// Нет такой сессии — common.ErrNotFound. Срок действия проверяет сервис.
func (r *Repository) GetActiveSession(ctx context.Context, token string) (*Session, error) {
	query := `
		SELECT id, session_token, client_addr, authenticated_at, expires_at, last_activity, is_active
		FROM admin_sessions
		WHERE session_token = $1 AND is_active = TRUE
	`
	var s Session
	err := r.db.QueryRow(ctx, query, token).Scan(
		&s.ID, &s.Token, &s.ClientAddr, &s.AuthenticatedAt,
		&s.ExpiresAt, &s.LastActivity, &s.IsActive,
	)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, fmt.Errorf("сессия: %w", common.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка чтения сессии: %w", err)
	}
	return &s, nil
}

// DeactivateSession деактивирует сессию.
func (r *Repository) DeactivateSession(ctx context.Context, token string) error {
	query := `UPDATE admin_sessions SET is_active = FALSE WHERE session_token = $1`
	_, err := r.db.Exec(ctx, query, token)
	return err
}

// UpdateActivity обновляет время последней активности.
func (r *Repository) UpdateActivity(ctx context.Context, token string) error {
	query := `UPDATE admin_sessions SET last_activity = NOW() WHERE session_token = $1 AND is_active = TRUE`
	_, err := r.db.Exec(ctx, query, token)
	return err
}

// LogAttempt записывает попытку входа.
func (r *Repository) LogAttempt(ctx context.Context, clientAddr string, success bool) error {
	query := `INSERT INTO admin_login_attempts (client_addr, success) VALUES ($1, $2)`
	_, err := r.db.Exec(ctx, query, clientAddr, success)
	return err
}

// GetRecentFailures возвращает количество неудачных попыток с адреса начиная с since.
func (r *Repository) GetRecentFailures(ctx context.Context, clientAddr string, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM admin_login_attempts
		WHERE client_addr = $1 AND success = FALSE AND attempt_time >= $2
	`
	var count int
	err := r.db.QueryRow(ctx, query, clientAddr, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта попыток входа: %w", err)
	}
	return count, nil
}
