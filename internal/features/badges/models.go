// Package badges — значки за серию, выполненные задания и дни входа.
// models.go описывает каталог значков и прогресс пользователя.
package badges

import "time"

// Type — тип значка (badge_types.id).
type Type int

const (
	TypeStreak    Type = 1 // Серия дней
	TypeTasks     Type = 2 // Всего выполненных заданий
	TypeLoginDays Type = 3 // Дней с выданным набором
)

// Badge — значок из каталога. Уровни одного типа идут по возрастанию requirement.
type Badge struct {
	ID          int64  `json:"id" db:"id"`
	TypeID      Type   `json:"badge_type_id" db:"badge_type_id"`
	TypeName    string `json:"badge_type_name" db:"badge_type_name"`
	Name        string `json:"name" db:"name"`
	Level       int    `json:"level" db:"level"`
	Requirement int    `json:"requirement" db:"requirement"`
	Points      int64  `json:"points" db:"points"`
}

// Status — значок вместе с прогрессом пользователя.
type Status struct {
	Badge
	Progress   int        `json:"progress"`
	IsAchieved bool       `json:"is_achieved"`
	AchievedAt *time.Time `json:"achieved_at,omitempty"`
	ClaimedAt  *time.Time `json:"claimed_at,omitempty"`
}

// CanClaim — значок заработан, а награда ещё не получена.
func (s Status) CanClaim() bool {
	return s.IsAchieved && s.ClaimedAt == nil
}

// List — значки пользователя: заработанные и доступные.
type List struct {
	Earned    []Status `json:"earned"`
	Available []Status `json:"available"`
}

// NewBadge — данные для создания значка админом.
type NewBadge struct {
	TypeID      Type   `json:"badge_type_id" validate:"required,oneof=1 2 3"`
	Name        string `json:"name" validate:"required,max=100"`
	Level       int    `json:"level" validate:"required,min=1"`
	Requirement int    `json:"requirement" validate:"required,min=1"`
	Points      int64  `json:"points" validate:"min=0"`
}

// ClaimResult — результат получения награды.
type ClaimResult struct {
	BadgeID int64 `json:"badge_id"`
	Points  int64 `json:"points"` // Сколько очков начислено
}
