// Package market — repository.go работает с таблицами shop_items и user_purchases.
package market

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BlqckRiad/CepteMotivasyon/internal/common"
	"github.com/BlqckRiad/CepteMotivasyon/internal/db/postgres"
	"github.com/BlqckRiad/CepteMotivasyon/internal/features/points"
)

const itemColumns = `id, name, description, price, image_url, draw_date, is_active, created_at`

func scanItem(row pgx.Row) (*Item, error) {
	var it Item
	err := row.Scan(&it.ID, &it.Name, &it.Description, &it.Price, &it.ImageURL, &it.DrawDate, &it.IsActive, &it.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// ListActive возвращает активные товары, новые первыми.
func (r *Repository) ListActive(ctx context.Context) ([]Item, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+itemColumns+` FROM shop_items WHERE is_active ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения товаров: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования товара: %w", err)
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

// ListPurchases возвращает покупки пользователя, новые первыми.
func (r *Repository) ListPurchases(ctx context.Context, userID uuid.UUID) ([]Purchase, error) {
	query := `
		SELECT up.id, up.user_id, up.item_id, si.name, si.price, up.purchase_date
		FROM user_purchases up
		JOIN shop_items si ON si.id = up.item_id
		WHERE up.user_id = $1
		ORDER BY up.purchase_date DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения покупок: %w", err)
	}
	defer rows.Close()

	var out []Purchase
	for rows.Next() {
		var p Purchase
		if err := rows.Scan(&p.ID, &p.UserID, &p.ItemID, &p.ItemName, &p.Price, &p.PurchaseDate); err != nil {
			return nil, fmt.Errorf("ошибка сканирования покупки: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Purchase списывает цену товара и записывает покупку. Одна транзакция:
// при любой ошибке очки не списываются.
func (r *Repository) Purchase(ctx context.Context, userID uuid.UUID, itemID int64) (*Purchase, error) {
	var result *Purchase
	err := postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		item, err := scanItem(tx.QueryRow(ctx,
			`SELECT `+itemColumns+` FROM shop_items WHERE id = $1`, itemID))
		if err != nil {
			if postgres.IsNoRows(err) {
				return fmt.Errorf("товар %d: %w", itemID, common.ErrNotFound)
			}
			return fmt.Errorf("ошибка чтения товара: %w", err)
		}
		if !item.IsActive {
			return fmt.Errorf("товар %d: %w", itemID, common.ErrItemUnavailable)
		}

		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM user_purchases WHERE user_id = $1 AND item_id = $2)`,
			userID, itemID,
		).Scan(&exists); err != nil {
			return fmt.Errorf("ошибка проверки покупки: %w", err)
		}
		if exists {
			return common.ErrAlreadyPurchased
		}

		if err := points.Debit(ctx, tx, userID, item.Price, points.TxTypePurchase, "Розыгрыш: "+item.Name); err != nil {
			return err
		}

		p := Purchase{UserID: userID, ItemID: itemID, ItemName: item.Name, Price: item.Price}
		err = tx.QueryRow(ctx, `
			INSERT INTO user_purchases (user_id, item_id)
			VALUES ($1, $2)
			RETURNING id, purchase_date
		`, userID, itemID).Scan(&p.ID, &p.PurchaseDate)
		if err != nil {
			if postgres.IsUniqueViolation(err) {
				return common.ErrAlreadyPurchased
			}
			return fmt.Errorf("ошибка записи покупки: %w", err)
		}
		result = &p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CreateItem добавляет товар на витрину.
func (r *Repository) CreateItem(ctx context.Context, in NewItem) (*Item, error) {
	item, err := scanItem(r.db.QueryRow(ctx, `
		INSERT INTO shop_items (name, description, price, image_url, draw_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+itemColumns,
		in.Name, in.Description, in.Price, in.ImageURL, in.DrawDate,
	))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания товара: %w", err)
	}
	return item, nil
}
