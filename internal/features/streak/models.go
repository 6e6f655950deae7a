// Package streak считает серию дней, в которые пользователь выполнил все пять заданий.
// models.go описывает результат расчёта.
package streak

import (
	"encoding/json"
	"time"

	"github.com/BlqckRiad/CepteMotivasyon/internal/common"
)

const (
	// WindowDays — окно просмотра назад, включая сегодня. Серия длиннее окна не видна.
	WindowDays = 30
	// StatusDays — сколько последних дней показывается в сводке.
	StatusDays = 7
)

// DayStatus — статус одного дня в сводке.
type DayStatus int

const (
	StatusNone    DayStatus = 0 // Нет набора или ничего не выполнено
	StatusPartial DayStatus = 1 // Выполнено 1–4 задания
	StatusFull    DayStatus = 2 // Выполнены все 5
)

// StatusEntry — статус одной календарной даты.
type StatusEntry struct {
	Date   time.Time `json:"-"`
	Status DayStatus `json:"status"`
}

// MarshalJSON отдаёт дату в формате YYYY-MM-DD.
func (e StatusEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date   string    `json:"date"`
		Status DayStatus `json:"status"`
	}{common.FormatDate(e.Date), e.Status})
}

// Result — результат расчёта серии.
type Result struct {
	Streak     int                     `json:"streak"`
	StatusData [StatusDays]StatusEntry `json:"status_data"` // От старых дней к сегодняшнему
}
