// Package contact — service.go проверяет и сохраняет обращения.
package contact

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/BlqckRiad/CepteMotivasyon/internal/common"
)

// DefaultListLimit — сколько обращений отдавать админу без явного limit.
const DefaultListLimit = 100

type Store interface {
	Create(ctx context.Context, m Message) (*Message, error)
	List(ctx context.Context, limit int) ([]Message, error)
}

type Service struct {
	repo Store
}

func NewService(repo Store) *Service {
	return &Service{repo: repo}
}

// Submit сохраняет обращение пользователя. Тема и текст после обрезки пробелов не пустые.
func (s *Service) Submit(ctx context.Context, userID uuid.UUID, req SubmitRequest) (*Message, error) {
	subject := strings.TrimSpace(req.Subject)
	message := strings.TrimSpace(req.Message)
	if subject == "" || message == "" {
		return nil, fmt.Errorf("тема и текст обязательны: %w", common.ErrInvalidInput)
	}
	if utf8.RuneCountInString(subject) > MaxSubjectLength || utf8.RuneCountInString(message) > MaxMessageLength {
		return nil, fmt.Errorf("обращение слишком длинное: %w", common.ErrInvalidInput)
	}

	kind := req.Type
	switch kind {
	case "":
		kind = TypeFeedback
	case TypeFeedback, TypeSuggestion, TypeComplaint:
	default:
		return nil, fmt.Errorf("тип обращения %q: %w", kind, common.ErrInvalidInput)
	}

	m, err := s.repo.Create(ctx, Message{UserID: userID, Subject: subject, Message: message, Type: kind})
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"user_id": userID, "contact_id": m.ID, "type": kind}).Info("Новое обращение")
	return m, nil
}

// List отдаёт последние обращения для админки. limit вне 1..DefaultListLimit заменяется на DefaultListLimit.
func (s *Service) List(ctx context.Context, limit int) ([]Message, error) {
	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}
	out, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Message{}
	}
	return out, nil
}
