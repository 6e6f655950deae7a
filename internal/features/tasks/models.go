// Package tasks управляет ежедневными наборами заданий.
// models.go описывает каталог заданий и дневной набор из пяти заданий.
package tasks

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/BlqckRiad/CepteMotivasyon/internal/common"
)

// SlotsPerDay — сколько заданий в дневном наборе.
const SlotsPerDay = 5

// CatalogEntry — задание из каталога (таблица tasks). Каталог заполняет админ.
type CatalogEntry struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"taskname"`
	Icon      string    `json:"icon" db:"taskicon"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Slot — одно из пяти заданий набора.
type Slot struct {
	Number    int           `json:"number"` // 1..5
	TaskID    int64         `json:"task_id"`
	Completed bool          `json:"completed"`
	Task      *CatalogEntry `json:"task,omitempty"` // Детали из каталога (title, icon)
}

// DailyTaskSet — набор заданий пользователя на одну календарную дату (таблица completed_tasks).
// На пару (user_id, created_date) существует не больше одной записи.
type DailyTaskSet struct {
	ID          int64             `json:"id"`
	UserID      uuid.UUID         `json:"user_id"`
	CreatedDate time.Time         `json:"-"` // Календарная дата, без времени
	Slots       [SlotsPerDay]Slot `json:"slots"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// CompletedCount возвращает, сколько заданий набора выполнено.
func (s *DailyTaskSet) CompletedCount() int {
	n := 0
	for _, slot := range s.Slots {
		if slot.Completed {
			n++
		}
	}
	return n
}

// AllCompleted — выполнены все пять заданий.
func (s *DailyTaskSet) AllCompleted() bool {
	return s.CompletedCount() == SlotsPerDay
}

// MarshalJSON добавляет created_date в формате YYYY-MM-DD.
func (s DailyTaskSet) MarshalJSON() ([]byte, error) {
	type alias DailyTaskSet
	return json.Marshal(struct {
		alias
		CreatedDate string `json:"created_date"`
	}{
		alias:       alias(s),
		CreatedDate: common.FormatDate(s.CreatedDate),
	})
}

// ToggleResult — результат переключения одного задания.
type ToggleResult struct {
	Set             *DailyTaskSet `json:"set"`
	Slot            int           `json:"slot"`
	Completed       bool          `json:"completed"`       // Новое состояние задания
	AllCompleted    bool          `json:"all_completed"`   // Весь набор выполнен после переключения
	WasAllCompleted bool          `json:"-"`               // Весь набор был выполнен до переключения
	TotalCompleted  int           `json:"total_completed"` // profiles.completed_tasks после переключения
}

// DayCompletionChanged — переключение изменило статус "день выполнен полностью".
func (r ToggleResult) DayCompletionChanged() bool {
	return r.AllCompleted != r.WasAllCompleted
}
