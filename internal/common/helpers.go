// Package common содержит общие утилиты, используемые во всём проекте.
// Сюда входят: работа с календарными датами, часы с часовым поясом, JSON-ответы.
package common

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// DateLayout — формат даты на проводе и в БД (created_date): 2006-01-02.
const DateLayout = "2006-01-02"

// Clock отдаёт текущее время в часовом поясе приложения.
// Все "сегодня" в сервисе берутся отсюда, а не из time.Now() напрямую.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// NewClock создаёт часы для заданного пояса (например, "Europe/Istanbul").
func NewClock(timezone string) *Clock {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		// Если не удалось загрузить — используем UTC+3 вручную
		log.WithError(err).WithField("timezone", timezone).Warn("Не удалось загрузить часовой пояс, используем UTC+3")
		loc = time.FixedZone("UTC+3", 3*60*60)
	}
	return &Clock{loc: loc, now: time.Now}
}

// NewFixedClock возвращает часы, которые всегда показывают t. Для тестов.
func NewFixedClock(t time.Time) *Clock {
	return &Clock{loc: t.Location(), now: func() time.Time { return t }}
}

// Location возвращает часовой пояс часов.
func (c *Clock) Location() *time.Location {
	return c.loc
}

// Now возвращает текущее время в поясе приложения.
func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Today возвращает сегодняшнюю календарную дату в поясе приложения.
// Дата нормализована к полуночи UTC, чтобы арифметика по дням не зависела от перехода на летнее время.
func (c *Clock) Today() time.Time {
	return DateOf(c.Now())
}

// DateOf отбрасывает время и пояс, оставляя календарную дату (полночь UTC).
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays сдвигает календарную дату на n дней.
func AddDays(date time.Time, n int) time.Time {
	return DateOf(date).AddDate(0, 0, n)
}

// FormatDate форматирует календарную дату в YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate разбирает YYYY-MM-DD в календарную дату.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: дата %q не в формате YYYY-MM-DD", ErrInvalidInput, s)
	}
	return t, nil
}
