// Package notes — service.go проверяет и сохраняет заметки.
package notes

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/BlqckRiad/CepteMotivasyon/internal/common"
)

type Store interface {
	List(ctx context.Context, userID uuid.UUID) ([]Note, error)
	Create(ctx context.Context, n Note) (*Note, error)
	Delete(ctx context.Context, userID, noteID uuid.UUID) error
}

type Service struct {
	repo Store
}

func NewService(repo Store) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]Note, error) {
	out, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Note{}
	}
	return out, nil
}

// Create сохраняет заметку. Пустая или длиннее MaxContentLength символов — ErrInvalidInput.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, content string) (*Note, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("пустая заметка: %w", common.ErrInvalidInput)
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return nil, fmt.Errorf("заметка длиннее %d символов: %w", MaxContentLength, common.ErrInvalidInput)
	}

	note, err := s.repo.Create(ctx, Note{ID: uuid.New(), UserID: userID, Content: content})
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"user_id": userID, "note_id": note.ID}).Debug("Заметка создана")
	return note, nil
}

func (s *Service) Delete(ctx context.Context, userID, noteID uuid.UUID) error {
	return s.repo.Delete(ctx, userID, noteID)
}
