// Package market — магазин розыгрышей: пользователь тратит очки, чтобы участвовать в розыгрыше товара.
// models.go описывает товары и покупки.
package market

import (
	"time"

	"github.com/google/uuid"
)

// Item — товар витрины (таблица shop_items).
type Item struct {
	ID          int64      `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	Price       int64      `json:"price" db:"price"`
	ImageURL    string     `json:"image_url" db:"image_url"`
	DrawDate    *time.Time `json:"draw_date,omitempty" db:"draw_date"` // Дата розыгрыша
	IsActive    bool       `json:"is_active" db:"is_active"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// Purchase — участие пользователя в розыгрыше (таблица user_purchases).
// Одна покупка на пару (user_id, item_id).
type Purchase struct {
	ID           int64     `json:"id" db:"id"`
	UserID       uuid.UUID `json:"user_id" db:"user_id"`
	ItemID       int64     `json:"item_id" db:"item_id"`
	ItemName     string    `json:"item_name" db:"item_name"`
	Price        int64     `json:"price" db:"price"`
	PurchaseDate time.Time `json:"purchase_date" db:"purchase_date"`
}

// NewItem — данные для создания товара админом.
type NewItem struct {
	Name        string     `json:"name" validate:"required,max=200"`
	Description string     `json:"description" validate:"max=2000"`
	Price       int64      `json:"price" validate:"required,min=1"`
	ImageURL    string     `json:"image_url" validate:"omitempty,url"`
	DrawDate    *time.Time `json:"draw_date"`
}
