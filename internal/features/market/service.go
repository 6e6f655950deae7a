// Package market — service.go: витрина, покупки и добавление товаров.
package market

import (
	"context"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/BlqckRiad/CepteMotivasyon/internal/common"
)

type Store interface {
	ListActive(ctx context.Context) ([]Item, error)
	ListPurchases(ctx context.Context, userID uuid.UUID) ([]Purchase, error)
	Purchase(ctx context.Context, userID uuid.UUID, itemID int64) (*Purchase, error)
	CreateItem(ctx context.Context, in NewItem) (*Item, error)
}

type Service struct {
	repo Store
}

func NewService(repo Store) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListItems(ctx context.Context) ([]Item, error) {
	items, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

func (s *Service) ListPurchases(ctx context.Context, userID uuid.UUID) ([]Purchase, error) {
	out, err := s.repo.ListPurchases(ctx, userID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Purchase{}
	}
	return out, nil
}

// Purchase покупает участие в розыгрыше товара.
func (s *Service) Purchase(ctx context.Context, userID uuid.UUID, itemID int64) (*Purchase, error) {
	if itemID <= 0 {
		return nil, common.ErrNotFound
	}
	p, err := s.repo.Purchase(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"user_id": userID,
		"item_id": itemID,
		"price":   p.Price,
	}).Info("Покупка в магазине")
	return p, nil
}

// CreateItem добавляет товар (админка).
func (s *Service) CreateItem(ctx context.Context, in NewItem) (*Item, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := common.Validate(in); err != nil {
		return nil, err
	}
	item, err := s.repo.CreateItem(ctx, in)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"item_id": item.ID, "name": item.Name}).Info("Товар добавлен")
	return item, nil
}
