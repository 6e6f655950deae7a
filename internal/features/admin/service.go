// Package admin — service.go: вход по паролю с защитой от перебора и проверка сессий.
package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/BlqckRiad/CepteMotivasyon/internal/common"
)

// Store — операции с сессиями и попытками входа.
type Store interface {
	CreateSession(ctx context.Context, session *Session) error
	GetActiveSession(ctx context.Context, token string) (*Session, error)
	DeactivateSession(ctx context.Context, token string) error
	UpdateActivity(ctx context.Context, token string) error
	LogAttempt(ctx context.Context, clientAddr string, success bool) error
	GetRecentFailures(ctx context.Context, clientAddr string, since time.Time) (int, error)
}

// Service управляет входом в админ-панель.
type Service struct {
	repo         Store
	passwordHash string
	sessionTTL   time.Duration
	now          func() time.Time
}

// NewService создаёт сервис админ-панели.
func NewService(repo Store, passwordHash string, sessionTTL time.Duration) *Service {
	return &Service{
		repo:         repo,
		passwordHash: passwordHash,
		sessionTTL:   sessionTTL,
		now:          time.Now,
	}
}

// Login проверяет пароль администратора с использованием Argon2id и открывает сессию.
// Защита от перебора: 3 неудачные попытки с адреса = блокировка на 1 час.
func (s *Service) Login(ctx context.Context, clientAddr, password string) (*LoginResponse, error) {
	failures, err := s.repo.GetRecentFailures(ctx, clientAddr, s.now().Add(-attemptWindow))
	if err != nil {
		return nil, err
	}
	if failures >= maxFailedAttempts {
		log.WithField("client_addr", clientAddr).Warn("Вход в админку заблокирован: слишком много попыток")
		return nil, common.ErrTooManyAttempts
	}

	match := verifyArgon2id(password, s.passwordHash)

	if err := s.repo.LogAttempt(ctx, clientAddr, match); err != nil {
		log.WithError(err).Warn("Не удалось записать попытку входа")
	}

	if !match {
		log.WithField("client_addr", clientAddr).Warn("Неверный пароль админки")
		return nil, common.ErrWrongPassword
	}

	token, err := generateSecureToken()
	if err != nil {
		return nil, err
	}
	session := &Session{
		Token:      token,
		ClientAddr: clientAddr,
		ExpiresAt:  s.now().Add(s.sessionTTL),
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	log.WithField("client_addr", clientAddr).Info("Вход в админку")
	return &LoginResponse{Token: token, ExpiresAt: session.ExpiresAt}, nil
}

// Authorize проверяет токен сессии и отмечает активность.
func (s *Service) Authorize(ctx context.Context, token string) error {
	if token == "" {
		return common.ErrUnauthorized
	}

	session, err := s.repo.GetActiveSession(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrUnauthorized
		}
		return err
	}

	if !s.now().Before(session.ExpiresAt) {
		if err := s.repo.DeactivateSession(ctx, token); err != nil {
			log.WithError(err).Warn("Не удалось закрыть истёкшую сессию")
		}
		return common.ErrSessionExpired
	}

	if err := s.repo.UpdateActivity(ctx, token); err != nil {
		log.WithError(err).Debug("Не удалось обновить активность сессии")
	}
	return nil
}

// Logout закрывает сессию.
func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.repo.DeactivateSession(ctx, token); err != nil {
		return fmt.Errorf("ошибка закрытия сессии: %w", err)
	}
	return nil
}
