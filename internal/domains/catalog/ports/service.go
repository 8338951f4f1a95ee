package ports

import (
	"context"

	"github.com/shopfront/order-api/internal/domains/catalog/domain"
)

// Service exposes catalog use cases to adapters.
type Service interface {
	AddItem(ctx context.Context, item *domain.Item) (*domain.Item, error)
	ChangePrice(ctx context.Context, id int64, price int64) (*domain.Item, error)
	GetItem(ctx context.Context, id int64) (*domain.Item, error)
	ListItems(ctx context.Context) ([]*domain.Item, error)
}
