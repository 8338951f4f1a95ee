package application

import (
	"context"
	"errors"

	"github.com/shopfront/order-api/internal/domains/catalog/domain"
	"github.com/shopfront/order-api/internal/domains/catalog/ports"
)

// Service orchestrates catalog use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) AddItem(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if item == nil {
		return nil, errors.New("item is nil")
	}
	return s.repo.Save(ctx, item)
}

// ChangePrice updates the current unit price. Existing order lines keep
// their snapshot.
func (s *Service) ChangePrice(ctx context.Context, id int64, price int64) (*domain.Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := item.ChangePrice(price); err != nil {
		return nil, err
	}
	return s.repo.Save(ctx, item)
}

func (s *Service) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListItems(ctx context.Context) ([]*domain.Item, error) {
	return s.repo.List(ctx)
}

var _ ports.Service = (*Service)(nil)
