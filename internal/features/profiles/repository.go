// Package profiles — repository.go отвечает за операции с таблицей profiles.
package profiles

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BlqckRiad/CepteMotivasyon/internal/common"
	"github.com/BlqckRiad/CepteMotivasyon/internal/db/postgres"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Ensure создаёт профиль, если его ещё нет. Существующий профиль не трогает.
func (r *Repository) Ensure(ctx context.Context, userID uuid.UUID, username string) error {
	query := `
		INSERT INTO profiles (id, username)
		VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, query, userID, username); err != nil {
		return fmt.Errorf("ошибка создания профиля: %w", err)
	}
	return nil
}

// GetByID возвращает профиль. Если не найден — common.ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	query := `
		SELECT id, username, user_streak, longest_streak, completed_tasks,
		       achievement_points, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`
	var p Profile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.Username, &p.UserStreak, &p.LongestStreak, &p.CompletedTasks,
		&p.AchievementPoints, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, fmt.Errorf("профиль %s: %w", userID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка чтения профиля %s: %w", userID, err)
	}
	return &p, nil
}

// UpdateStreak записывает рассчитанную серию. Рекорд только растёт.
// Повторная запись того же значения ничего не меняет по сути.
func (r *Repository) UpdateStreak(ctx context.Context, userID uuid.UUID, streak int) error {
	query := `
		UPDATE profiles
		SET user_streak = $2,
		    longest_streak = GREATEST(longest_streak, $2),
		    updated_at = NOW()
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query, userID, streak)
	if err != nil {
		return fmt.Errorf("ошибка обновления серии: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("профиль %s: %w", userID, common.ErrNotFound)
	}
	return nil
}

// ListActiveUserIDs возвращает пользователей, у которых есть набор заданий начиная с since.
// Используется ночным пересчётом серий.
func (r *Repository) ListActiveUserIDs(ctx context.Context, since time.Time) ([]uuid.UUID, error) {
	query := `
		SELECT DISTINCT user_id
		FROM completed_tasks
		WHERE created_date >= $1
	`
	rows, err := r.db.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения активных пользователей: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("ошибка сканирования: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
