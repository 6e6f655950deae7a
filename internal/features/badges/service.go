// Package badges — service.go обновляет прогресс значков и выдаёт награды.
package badges

import (
	"context"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/BlqckRiad/CepteMotivasyon/internal/common"
	"github.com/BlqckRiad/CepteMotivasyon/internal/features/tasks"
)

type Store interface {
	UpdateProgress(ctx context.Context, userID uuid.UUID, badgeType Type, progress int) ([]int64, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]Status, error)
	Claim(ctx context.Context, userID uuid.UUID, badgeID int64) (*ClaimResult, error)
	Create(ctx context.Context, b NewBadge) (*Badge, error)
}

type Service struct {
	repo Store
}

func NewService(repo Store) *Service {
	return &Service{repo: repo}
}

// UpdateProgress записывает прогресс по значкам типа badgeType.
func (s *Service) UpdateProgress(ctx context.Context, userID uuid.UUID, badgeType Type, progress int) error {
	if progress < 0 {
		progress = 0
	}
	achieved, err := s.repo.UpdateProgress(ctx, userID, badgeType, progress)
	if err != nil {
		return err
	}
	for _, id := range achieved {
		log.WithFields(log.Fields{
			"user_id":  userID,
			"badge_id": id,
			"type":     badgeType,
		}).Info("Значок заработан")
	}
	return nil
}

// List возвращает значки пользователя, разделённые на заработанные и доступные.
func (s *Service) List(ctx context.Context, userID uuid.UUID) (*List, error) {
	all, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := &List{Earned: []Status{}, Available: []Status{}}
	for _, st := range all {
		if st.IsAchieved {
			out.Earned = append(out.Earned, st)
		} else {
			out.Available = append(out.Available, st)
		}
	}
	return out, nil
}

// Claim выдаёт награду за заработанный значок.
func (s *Service) Claim(ctx context.Context, userID uuid.UUID, badgeID int64) (*ClaimResult, error) {
	res, err := s.repo.Claim(ctx, userID, badgeID)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"user_id":  userID,
		"badge_id": badgeID,
		"points":   res.Points,
	}).Info("Награда за значок получена")
	return res, nil
}

// Create добавляет значок в каталог (админка).
func (s *Service) Create(ctx context.Context, b NewBadge) (*Badge, error) {
	if err := common.Validate(b); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, b)
}

// Обработчики событий других модулей. Ошибки прогресса логируются и не прерывают
// основную операцию.

// StreakChanged — подписка на пересчёт серии.
func (s *Service) StreakChanged(ctx context.Context, userID uuid.UUID, streak int) {
	s.track(ctx, userID, TypeStreak, streak)
}

// TaskToggled — подписка на переключение задания.
func (s *Service) TaskToggled(ctx context.Context, userID uuid.UUID, result tasks.ToggleResult) {
	if !result.Completed {
		return
	}
	s.track(ctx, userID, TypeTasks, result.TotalCompleted)
}

// SetAssigned — подписка на выдачу набора: дни с набором считаются днями входа.
func (s *Service) SetAssigned(ctx context.Context, userID uuid.UUID, activeDays int) {
	s.track(ctx, userID, TypeLoginDays, activeDays)
}

func (s *Service) track(ctx context.Context, userID uuid.UUID, badgeType Type, progress int) {
	if err := s.UpdateProgress(ctx, userID, badgeType, progress); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"user_id": userID,
			"type":    badgeType,
		}).Warn("Не удалось обновить прогресс значков")
	}
}
