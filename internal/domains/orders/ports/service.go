package ports

import (
	"context"

	"github.com/shopfront/order-api/internal/domains/orders/application/types"
	"github.com/shopfront/order-api/internal/domains/orders/domain"
)

// Service exposes order use cases to adapters.
type Service interface {
	PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (int64, error)
	CancelOrder(ctx context.Context, orderID int64) error
	GetOrder(ctx context.Context, orderID int64) (*domain.Order, error)
}

// Transactor scopes a service operation to one atomic unit of work: every
// mutation inside fn commits or rolls back together.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// WorkflowOrchestrator starts order placement through a durable workflow
// engine, or inline when none is configured.
type WorkflowOrchestrator interface {
	PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (int64, error)
}
