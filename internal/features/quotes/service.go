// Package quotes — service.go хранит загруженные цитаты в памяти и отдаёт случайную.
package quotes

import (
	"context"
	"math/rand/v2"
	"sync"

	log "github.com/sirupsen/logrus"
)

type Service struct {
	source Source
	pick   func(n int) int

	mu     sync.RWMutex
	quotes []Quote
}

func NewService(source Source) *Service {
	return &Service{source: source, pick: rand.IntN}
}

// Refresh перечитывает цитаты из источника. При ошибке старый список остаётся.
func (s *Service) Refresh(ctx context.Context) error {
	quotes, err := s.source.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.quotes = quotes
	s.mu.Unlock()

	log.WithField("count", len(quotes)).Debug("Цитаты обновлены")
	return nil
}

// Random возвращает случайную цитату. Пустой список загружается при первом обращении;
// если цитат нет — Fallback.
func (s *Service) Random(ctx context.Context) Quote {
	if s.size() == 0 {
		if err := s.Refresh(ctx); err != nil {
			log.WithError(err).Warn("Не удалось загрузить цитаты")
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.quotes) == 0 {
		return Fallback
	}
	return s.quotes[s.pick(len(s.quotes))]
}

func (s *Service) size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.quotes)
}
