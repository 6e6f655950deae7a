// Package education — repository.go работает с таблицей education_content.
package education

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

// List возвращает материалы, новые первыми.
func (r *Repository) List(ctx context.Context) ([]Content, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, description, content_url, image_url, duration, created_at
		FROM education_content
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения материалов: %w", err)
	}
	defer rows.Close()

	var out []Content
	for rows.Next() {
		var c Content
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.ContentURL, &c.ImageURL, &c.Duration, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования материала: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repository) Create(ctx context.Context, in NewContent) (*Content, error) {
	c := Content{
		Title:       in.Title,
		Description: in.Description,
		ContentURL:  in.ContentURL,
		ImageURL:    in.ImageURL,
		Duration:    in.Duration,
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO education_content (title, description, content_url, image_url, duration)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, c.Title, c.Description, c.ContentURL, c.ImageURL, c.Duration).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания материала: %w", err)
	}
	return &c, nil
}
