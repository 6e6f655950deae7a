// Package points ведёт баланс очков достижений (profiles.achievement_points).
// models.go описывает баланс и записи журнала операций.
package points

import (
	"time"

	"github.com/google/uuid"
)

// Balance — сводка по очкам пользователя.
type Balance struct {
	UserID      uuid.UUID `json:"user_id"`
	Points      int64     `json:"points"`       // Текущий баланс
	TotalEarned int64     `json:"total_earned"` // Сколько всего начислено
	TotalSpent  int64     `json:"total_spent"`  // Сколько всего потрачено
}

// Transaction — одна операция с очками. Amount положительный для начисления
// и отрицательный для списания.
type Transaction struct {
	ID          int64     `json:"id" db:"id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	Amount      int64     `json:"amount" db:"amount"`
	Type        string    `json:"type" db:"transaction_type"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Типы операций.
const (
	TxTypeBadgeClaim = "badge_claim"     // Награда за значок
	TxTypePurchase   = "market_purchase" // Покупка в магазине
	TxTypeAdminGrant = "admin_grant"     // Начисление админом
)
