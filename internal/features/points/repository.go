// Package points — repository.go выполняет операции с profiles.achievement_points и point_transactions.
// Начисление и списание работают внутри транзакции вызывающего (postgres.Querier),
// чтобы покупка или награда за значок и движение очков были атомарны.
package points

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BlqckRiad/CepteMotivasyon/internal/common"
	"github.com/BlqckRiad/CepteMotivasyon/internal/db/postgres"
)

// Credit начисляет amount очков и пишет операцию в журнал.
func Credit(ctx context.Context, q postgres.Querier, userID uuid.UUID, amount int64, txType, description string) error {
	if amount <= 0 {
		return common.ErrInvalidAmount
	}

	tag, err := q.Exec(ctx, `
		UPDATE profiles
		SET achievement_points = achievement_points + $2, updated_at = NOW()
		WHERE id = $1
	`, userID, amount)
	if err != nil {
		return fmt.Errorf("ошибка начисления очков: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("профиль %s: %w", userID, common.ErrNotFound)
	}

	return record(ctx, q, userID, amount, txType, description)
}

// Debit списывает amount очков. Строка профиля блокируется (FOR UPDATE),
// баланс не может уйти в минус.
func Debit(ctx context.Context, q postgres.Querier, userID uuid.UUID, amount int64, txType, description string) error {
	if amount <= 0 {
		return common.ErrInvalidAmount
	}

	var current int64
	err := q.QueryRow(ctx, `
		SELECT achievement_points FROM profiles WHERE id = $1 FOR UPDATE
	`, userID).Scan(&current)
	if err != nil {
		if postgres.IsNoRows(err) {
			return fmt.Errorf("профиль %s: %w", userID, common.ErrNotFound)
		}
		return fmt.Errorf("ошибка получения баланса: %w", err)
	}

	if current < amount {
		return fmt.Errorf("нужно %d, есть %d: %w", amount, current, common.ErrInsufficientPoints)
	}

	if _, err := q.Exec(ctx, `
		UPDATE profiles
		SET achievement_points = achievement_points - $2, updated_at = NOW()
		WHERE id = $1
	`, userID, amount); err != nil {
		return fmt.Errorf("ошибка списания очков: %w", err)
	}

	return record(ctx, q, userID, -amount, txType, description)
}

func record(ctx context.Context, q postgres.Querier, userID uuid.UUID, amount int64, txType, description string) error {
	_, err := q.Exec(ctx, `
		INSERT INTO point_transactions (user_id, amount, transaction_type, description)
		VALUES ($1, $2, $3, $4)
	`, userID, amount, txType, description)
	if err != nil {
		return fmt.Errorf("ошибка записи операции: %w", err)
	}
	return nil
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// GetBalance возвращает баланс и итоги по журналу.
func (r *Repository) GetBalance(ctx context.Context, userID uuid.UUID) (*Balance, error) {
	query := `
		SELECT p.achievement_points,
		       COALESCE(SUM(t.amount) FILTER (WHERE t.amount > 0), 0),
		       COALESCE(-SUM(t.amount) FILTER (WHERE t.amount < 0), 0)
		FROM profiles p
		LEFT JOIN point_transactions t ON t.user_id = p.id
		WHERE p.id = $1
		GROUP BY p.id
	`
	b := Balance{UserID: userID}
	err := r.db.QueryRow(ctx, query, userID).Scan(&b.Points, &b.TotalEarned, &b.TotalSpent)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, fmt.Errorf("профиль %s: %w", userID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка получения баланса: %w", err)
	}
	return &b, nil
}

// ListTransactions возвращает последние limit операций, новые первыми.
func (r *Repository) ListTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]Transaction, error) {
	query := `
		SELECT id, user_id, amount, transaction_type, description, created_at
		FROM point_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения операций: %w", err)
	}
	defer rows.Close()

	var txs []Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.Type, &t.Description, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования операции: %w", err)
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// Grant начисляет очки в отдельной транзакции (выдача админом).
func (r *Repository) Grant(ctx context.Context, userID uuid.UUID, amount int64, description string) error {
	return postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		return Credit(ctx, tx, userID, amount, TxTypeAdminGrant, description)
	})
}
