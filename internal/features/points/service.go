// Package points — service.go: баланс, история операций и выдача очков админом.
package points

import (
	"context"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/BlqckRiad/CepteMotivasyon/internal/common"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type Store interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (*Balance, error)
	ListTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]Transaction, error)
	Grant(ctx context.Context, userID uuid.UUID, amount int64, description string) error
}

type Service struct {
	repo Store
}

func NewService(repo Store) *Service {
	return &Service{repo: repo}
}

// Balance возвращает баланс пользователя.
func (s *Service) Balance(ctx context.Context, userID uuid.UUID) (*Balance, error) {
	return s.repo.GetBalance(ctx, userID)
}

// History возвращает последние операции. limit вне 1..100 заменяется на 20.
func (s *Service) History(ctx context.Context, userID uuid.UUID, limit int) ([]Transaction, error) {
	if limit <= 0 || limit > maxHistoryLimit {
		limit = defaultHistoryLimit
	}
	txs, err := s.repo.ListTransactions(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if txs == nil {
		txs = []Transaction{}
	}
	return txs, nil
}

// Grant начисляет очки пользователю от имени админа.
func (s *Service) Grant(ctx context.Context, userID uuid.UUID, amount int64, reason string) error {
	if amount <= 0 {
		return common.ErrInvalidAmount
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "Начисление администратором"
	}

	if err := s.repo.Grant(ctx, userID, amount, reason); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"amount":  amount,
		"reason":  reason,
	}).Info("Очки начислены администратором")
	return nil
}
