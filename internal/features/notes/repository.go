// Package notes — repository.go работает с таблицей notes.
package notes

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BlqckRiad/CepteMotivasyon/internal/common"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// List возвращает заметки пользователя, новые первыми.
func (r *Repository) List(ctx context.Context, userID uuid.UUID) ([]Note, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, content, created_at
		FROM notes
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения заметок: %w", err)
	}
	defer rows.Close()

	var out []Note
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.UserID, &n.Content, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования заметки: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *Repository) Create(ctx context.Context, n Note) (*Note, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO notes (id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`, n.ID, n.UserID, n.Content).Scan(&n.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания заметки: %w", err)
	}
	return &n, nil
}

// Delete удаляет заметку, только если она принадлежит пользователю.
func (r *Repository) Delete(ctx context.Context, userID, noteID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM notes WHERE id = $1 AND user_id = $2`, noteID, userID)
	if err != nil {
		return fmt.Errorf("ошибка удаления заметки: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("заметка %s: %w", noteID, common.ErrNotFound)
	}
	return nil
}
