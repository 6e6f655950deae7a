// Package profiles — service.go содержит бизнес-логику профилей.
package profiles

import (
	"context"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Store — операции с профилями, нужные сервису.
type Store interface {
	Ensure(ctx context.Context, userID uuid.UUID, username string) error
	GetByID(ctx context.Context, userID uuid.UUID) (*Profile, error)
}

// Service управляет профилями пользователей.
type Service struct {
	repo Store
}

// NewService создаёт новый сервис профилей.
func NewService(repo Store) *Service {
	return &Service{repo: repo}
}

// EnsureProfile гарантирует, что у пользователя есть профиль.
// Имя по умолчанию — часть email до "@".
func (s *Service) EnsureProfile(ctx context.Context, userID uuid.UUID, email string) error {
	username, _, _ := strings.Cut(email, "@")
	if err := s.repo.Ensure(ctx, userID, strings.ToLower(username)); err != nil {
		return err
	}
	log.WithField("user_id", userID).Trace("Профиль на месте")
	return nil
}

// GetProfile возвращает профиль пользователя.
func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	return s.repo.GetByID(ctx, userID)
}
