// Package education — service.go отдаёт ленту материалов и принимает новые от админа.
package education

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/BlqckRiad/CepteMotivasyon/internal/common"
)

type Store interface {
	List(ctx context.Context) ([]Content, error)
	Create(ctx context.Context, in NewContent) (*Content, error)
}

type Service struct {
	repo Store
}

func NewService(repo Store) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Content, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Content{}
	}
	return out, nil
}

// Create обрезает пробелы и проверяет поля до записи.
func (s *Service) Create(ctx context.Context, in NewContent) (*Content, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.ContentURL = strings.TrimSpace(in.ContentURL)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	in.Duration = strings.TrimSpace(in.Duration)
	if err := common.Validate(in); err != nil {
		return nil, err
	}

	c, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"content_id": c.ID, "title": c.Title}).Info("Обучающий материал добавлен")
	return c, nil
}
