package jobs

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type fakeStreaks struct{ calls int }

func (f *fakeStreaks) RecalculateAll(context.Context) (int, error) {
	f.calls++
	return 0, errors.New("db down")
}

type fakeQuotes struct{ calls int }

func (f *fakeQuotes) Refresh(context.Context) error {
	f.calls++
	return nil
}

func TestSpecsParse(t *testing.T) {
	loc, _ := time.LoadLocation("UTC")
	for _, spec := range []string{StreakSpec, QuotesSpec} {
		sched, err := cron.ParseStandard(spec)
		if err != nil {
			t.Fatalf("ParseStandard(%q) err=%v", spec, err)
		}
		from := time.Date(2024, 5, 20, 23, 30, 0, 0, loc)
		if next := sched.Next(from); !next.After(from) {
			t.Fatalf("spec %q next=%v", spec, next)
		}
	}

	midnight, _ := cron.ParseStandard(StreakSpec)
	next := midnight.Next(time.Date(2024, 5, 20, 23, 30, 0, 0, time.UTC))
	if want := time.Date(2024, 5, 21, 0, 0, 0, 0, time.UTC); !next.Equal(want) {
		t.Fatalf("streak job next=%v, want %v", next, want)
	}
}

func TestStart_RegistersJobs(t *testing.T) {
	s := NewScheduler(time.UTC, &fakeStreaks{}, &fakeQuotes{})
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() err=%v", err)
	}
	defer s.Stop()

	if got := len(s.cron.Entries()); got != 2 {
		t.Fatalf("entries=%d, want 2", got)
	}
}

func TestStart_QuotesOptional(t *testing.T) {
	s := NewScheduler(time.UTC, &fakeStreaks{}, nil)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() err=%v", err)
	}
	defer s.Stop()

	if got := len(s.cron.Entries()); got != 1 {
		t.Fatalf("entries=%d, want 1", got)
	}
}

func TestJobs_ErrorsDoNotPanic(t *testing.T) {
	streaks, quotes := &fakeStreaks{}, &fakeQuotes{}
	s := NewScheduler(time.UTC, streaks, quotes)

	s.recalculateStreaks(context.Background())
	s.refreshQuotes(context.Background())

	if streaks.calls != 1 || quotes.calls != 1 {
		t.Fatalf("calls streaks=%d quotes=%d", streaks.calls, quotes.calls)
	}
}

func TestJobChain_PanicLoggedToLogrus(t *testing.T) {
	var buf bytes.Buffer
	prev := log.StandardLogger().Out
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })

	job := jobChain()(cron.FuncJob(func() { panic("boom") }))
	job.Run()

	if !bytes.Contains(buf.Bytes(), []byte("boom")) {
		t.Fatalf("panic not logged via logrus: %q", buf.String())
	}
}
