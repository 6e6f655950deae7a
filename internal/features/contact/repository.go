// Package contact — repository.go работает с таблицей contact.
package contact

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, m Message) (*Message, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO contact (user_id, subject, message, type)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, m.UserID, m.Subject, m.Message, m.Type).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("ошибка сохранения обращения: %w", err)
	}
	return &m, nil
}

// List возвращает последние обращения, новые первыми.
func (r *Repository) List(ctx context.Context, limit int) ([]Message, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, subject, message, type, created_at
		FROM contact
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения обращений: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.UserID, &m.Subject, &m.Message, &m.Type, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования обращения: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
