// Package streak — service.go читает наборы из БД, считает серию и записывает её в профиль.
package streak

import (
	"context"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/BlqckRiad/CepteMotivasyon/internal/common"
	"github.com/BlqckRiad/CepteMotivasyon/internal/features/tasks"
)

// SetReader читает флаги выполнения наборов за период.
type SetReader interface {
	ListCompletionFlags(ctx context.Context, userID uuid.UUID, from, to time.Time) (map[time.Time][tasks.SlotsPerDay]bool, error)
}

// ProfileWriter сохраняет серию в профиль.
type ProfileWriter interface {
	UpdateStreak(ctx context.Context, userID uuid.UUID, streak int) error
	ListActiveUserIDs(ctx context.Context, since time.Time) ([]uuid.UUID, error)
}

// ChangeHook вызывается после сохранения пересчитанной серии.
type ChangeHook func(ctx context.Context, userID uuid.UUID, streak int)

type Service struct {
	sets     SetReader
	profiles ProfileWriter
	clock    *common.Clock
	onChange []ChangeHook
}

func NewService(sets SetReader, profiles ProfileWriter, clock *common.Clock) *Service {
	return &Service{sets: sets, profiles: profiles, clock: clock}
}

// OnChange подписывает обработчик на пересчёт серии (прогресс значков).
func (s *Service) OnChange(hook ChangeHook) {
	s.onChange = append(s.onChange, hook)
}

// CalculateStreak считает серию пользователя на сегодня и сохраняет её в профиль.
// Профиль обновляется только после успешного чтения и расчёта.
func (s *Service) CalculateStreak(ctx context.Context, userID uuid.UUID) (*Result, error) {
	today := s.clock.Today()
	from := common.AddDays(today, -(WindowDays - 1))

	days, err := s.sets.ListCompletionFlags(ctx, userID, from, today)
	if err != nil {
		return nil, err
	}

	res := Compute(days, today)

	if err := s.profiles.UpdateStreak(ctx, userID, res.Streak); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"streak":  res.Streak,
	}).Debug("Серия пересчитана")

	for _, hook := range s.onChange {
		hook(ctx, userID, res.Streak)
	}
	return &res, nil
}

// TaskToggled пересчитывает серию, если переключение изменило статус "день выполнен".
// Подписывается на tasks.Service.OnToggle.
func (s *Service) TaskToggled(ctx context.Context, userID uuid.UUID, result tasks.ToggleResult) {
	if !result.DayCompletionChanged() {
		return
	}
	if _, err := s.CalculateStreak(ctx, userID); err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка пересчёта серии после переключения")
	}
}

// RecalculateAll пересчитывает серии всех пользователей, у которых был набор в окне.
// Вызывается ночным заданием: пропущенный вчерашний день обнуляет серию,
// даже если пользователь не открывал приложение.
// Ошибка по одному пользователю не останавливает остальных.
func (s *Service) RecalculateAll(ctx context.Context) (updated int, err error) {
	since := common.AddDays(s.clock.Today(), -(WindowDays - 1))
	ids, err := s.profiles.ListActiveUserIDs(ctx, since)
	if err != nil {
		return 0, err
	}

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return updated, err
		}
		if _, err := s.CalculateStreak(ctx, id); err != nil {
			log.WithError(err).WithField("user_id", id).Warn("Не удалось пересчитать серию")
			continue
		}
		updated++
	}

	log.WithFields(log.Fields{
		"users":   len(ids),
		"updated": updated,
	}).Info("Ночной пересчёт серий завершён")
	return updated, nil
}
