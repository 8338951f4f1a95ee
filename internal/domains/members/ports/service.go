package ports

import (
	"context"

	"github.com/shopfront/order-api/internal/domains/members/domain"
)

// Service exposes member use cases to adapters.
type Service interface {
	Register(ctx context.Context, name string, address domain.Address) (*domain.Member, error)
	GetMember(ctx context.Context, id int64) (*domain.Member, error)
	ListMembers(ctx context.Context) ([]*domain.Member, error)
}
