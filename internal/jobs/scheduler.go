// Package jobs управляет фоновыми задачами (cron).
// scheduler.go настраивает расписание: ночной пересчёт серий
// и ежечасное обновление цитат.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Расписания задач (минута, час, день, месяц, день недели).
const (
	StreakSpec = "0 0 * * *" // Полночь в часовом поясе приложения
	QuotesSpec = "0 * * * *" // Каждый час
)

// jobTimeout — предел длительности одного запуска задачи.
const jobTimeout = 10 * time.Minute

// StreakRecalculator пересчитывает серии всех активных пользователей.
type StreakRecalculator interface {
	RecalculateAll(ctx context.Context) (int, error)
}

// QuoteRefresher перечитывает цитаты из источника.
type QuoteRefresher interface {
	Refresh(ctx context.Context) error
}

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron    *cron.Cron
	streaks StreakRecalculator
	quotes  QuoteRefresher // nil, если цитаты выключены
}

// jobChain оборачивает задачи: паника не роняет процесс, повторный запуск
// пропускается, пока идёт предыдущий. Сообщения cron идут в logrus.
func jobChain() cron.JobWrapper {
	logger := cron.PrintfLogger(log.StandardLogger())
	return cron.NewChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)).Then
}

// NewScheduler создаёт планировщик задач в часовом поясе приложения.
func NewScheduler(loc *time.Location, streaks StreakRecalculator, quotes QuoteRefresher) *Scheduler {
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(jobChain()),
	)

	return &Scheduler{
		cron:    c,
		streaks: streaks,
		quotes:  quotes,
	}
}

// Start регистрирует и запускает все фоновые задачи.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(StreakSpec, func() { s.recalculateStreaks(ctx) }); err != nil {
		return err
	}

	if s.quotes != nil {
		if _, err := s.cron.AddFunc(QuotesSpec, func() { s.refreshQuotes(ctx) }); err != nil {
			return err
		}
	}

	s.cron.Start()
	log.WithField("jobs", len(s.cron.Entries())).Info("Планировщик задач запущен")
	return nil
}

// Stop останавливает планировщик и ждёт завершения текущих задач.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}

func (s *Scheduler) recalculateStreaks(parent context.Context) {
	ctx, cancel := context.WithTimeout(parent, jobTimeout)
	defer cancel()

	log.Info("[CRON] Ночной пересчёт серий")
	if _, err := s.streaks.RecalculateAll(ctx); err != nil {
		log.WithError(err).Error("[CRON] Ошибка пересчёта серий")
	}
}

func (s *Scheduler) refreshQuotes(parent context.Context) {
	ctx, cancel := context.WithTimeout(parent, jobTimeout)
	defer cancel()

	log.Debug("[CRON] Обновление цитат")
	if err := s.quotes.Refresh(ctx); err != nil {
		log.WithError(err).Warn("[CRON] Ошибка обновления цитат")
	}
}
