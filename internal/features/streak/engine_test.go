package streak

import (
	"testing"
	"time"

	"github.com/BlqckRiad/CepteMotivasyon/internal/common"
)

var today = time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)

var (
	allDone  = Flags{true, true, true, true, true}
	someDone = Flags{true, false, true, false, false}
	noneDone = Flags{}
)

// history строит карту дней: offsets — сдвиг от today (0 = сегодня, 1 = вчера, ...).
func history(flags Flags, offsets ...int) map[time.Time]Flags {
	days := make(map[time.Time]Flags)
	for _, off := range offsets {
		days[common.AddDays(today, -off)] = flags
	}
	return days
}

func span(from, to int) []int {
	var out []int
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

func TestCompute_Classification(t *testing.T) {
	tests := []struct {
		name  string
		flags Flags
		want  DayStatus
	}{
		{"all five", allDone, StatusFull},
		{"one", Flags{true}, StatusPartial},
		{"four", Flags{true, true, true, true, false}, StatusPartial},
		{"none", noneDone, StatusNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Compute(history(tt.flags, 0), today)
			if got := res.StatusData[StatusDays-1].Status; got != tt.want {
				t.Fatalf("status=%d, want %d", got, tt.want)
			}
		})
	}

	res := Compute(nil, today)
	for _, e := range res.StatusData {
		if e.Status != StatusNone {
			t.Fatalf("absent row status=%d, want %d", e.Status, StatusNone)
		}
	}
}

func TestCompute_StatusOrderOldestFirst(t *testing.T) {
	res := Compute(history(allDone, 6), today)

	for i, e := range res.StatusData {
		want := common.AddDays(today, i-(StatusDays-1))
		if !e.Date.Equal(want) {
			t.Fatalf("entry %d date=%s, want %s", i, common.FormatDate(e.Date), common.FormatDate(want))
		}
	}
	if res.StatusData[0].Status != StatusFull {
		t.Fatalf("oldest entry status=%d, want %d", res.StatusData[0].Status, StatusFull)
	}
}

func TestCompute_Continuity(t *testing.T) {
	for _, n := range []int{1, 2, 7, 15, 30} {
		res := Compute(history(allDone, span(0, n-1)...), today)
		if res.Streak != n {
			t.Fatalf("n=%d: streak=%d", n, res.Streak)
		}
	}
}

func TestCompute_UnfinishedTodayTolerated(t *testing.T) {
	const n = 4
	tests := []struct {
		name string
		days map[time.Time]Flags
	}{
		{"today absent", history(allDone, span(1, n)...)},
		{"today partial", merge(history(allDone, span(1, n)...), history(someDone, 0))},
		{"today untouched", merge(history(allDone, span(1, n)...), history(noneDone, 0))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compute(tt.days, today).Streak; got != n {
				t.Fatalf("streak=%d, want %d", got, n)
			}
		})
	}
}

func TestCompute_GapBreaks(t *testing.T) {
	for _, yesterday := range []map[time.Time]Flags{nil, history(someDone, 1)} {
		days := merge(history(allDone, 0), history(allDone, span(2, 6)...), yesterday)
		if got := Compute(days, today).Streak; got != 1 {
			t.Fatalf("streak=%d, want 1", got)
		}
	}
}

func TestCompute_TodayAndYesterdayMissing(t *testing.T) {
	days := history(allDone, span(2, 10)...)
	if got := Compute(days, today).Streak; got != 0 {
		t.Fatalf("streak=%d, want 0", got)
	}
}

func TestCompute_WindowCap(t *testing.T) {
	res := Compute(history(allDone, span(0, 39)...), today)
	if res.Streak != WindowDays {
		t.Fatalf("streak=%d, want %d", res.Streak, WindowDays)
	}

	// Сегодня не закончен: окно всё равно не выходит за today-29.
	res = Compute(history(allDone, span(1, 39)...), today)
	if res.Streak != WindowDays-1 {
		t.Fatalf("streak=%d, want %d", res.Streak, WindowDays-1)
	}
}

func TestCompute_NormalizesTimes(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	days := map[time.Time]Flags{
		time.Date(2024, 5, 20, 23, 30, 0, 0, loc): allDone,
		time.Date(2024, 5, 19, 1, 0, 0, 0, loc):   allDone,
	}
	if got := Compute(days, time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)).Streak; got != 2 {
		t.Fatalf("streak=%d, want 2", got)
	}
}

func merge(maps ...map[time.Time]Flags) map[time.Time]Flags {
	out := make(map[time.Time]Flags)
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}
