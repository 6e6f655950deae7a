// Package streak — engine.go содержит сам расчёт серии, без обращений к БД.
package streak

import (
	"time"

	"github.com/BlqckRiad/CepteMotivasyon/internal/common"
	"github.com/BlqckRiad/CepteMotivasyon/internal/features/tasks"
)

// Flags — флаги выполнения пяти заданий одного дня.
type Flags = [tasks.SlotsPerDay]bool

// Compute считает серию и сводку за 7 дней.
// days — флаги по календарным датам окна; отсутствующая дата считается невыполненной.
//
// Серия считается назад от today. Невыполненный сегодняшний день пропускается один раз:
// день ещё идёт и не обнуляет серию. Первый же другой невыполненный день обрывает серию.
// Просмотр не уходит дальше WindowDays дней, поэтому серия не больше WindowDays.
func Compute(days map[time.Time]Flags, today time.Time) Result {
	today = common.DateOf(today)

	byDate := make(map[time.Time]Flags, len(days))
	for date, flags := range days {
		byDate[common.DateOf(date)] = flags
	}

	var res Result
	windowStart := common.AddDays(today, -(WindowDays - 1))
	for day := today; !day.Before(windowStart); day = common.AddDays(day, -1) {
		if classify(byDate, day) == StatusFull {
			res.Streak++
			continue
		}
		if day.Equal(today) {
			continue
		}
		break
	}

	for i := range res.StatusData {
		day := common.AddDays(today, i-(StatusDays-1))
		res.StatusData[i] = StatusEntry{Date: day, Status: classify(byDate, day)}
	}
	return res
}

func classify(days map[time.Time]Flags, day time.Time) DayStatus {
	flags, ok := days[day]
	if !ok {
		return StatusNone
	}
	switch n := countDone(flags); {
	case n == tasks.SlotsPerDay:
		return StatusFull
	case n > 0:
		return StatusPartial
	default:
		return StatusNone
	}
}

func countDone(flags Flags) int {
	n := 0
	for _, done := range flags {
		if done {
			n++
		}
	}
	return n
}
