package memory

import (
	"context"
	"sync"

	"github.com/shopfront/order-api/internal/domains/orders/ports"
)

var _ ports.Transactor = (*Transactor)(nil)

// Transactor serializes units of work with a process-wide lock. The memory
// repositories only persist after all domain checks pass, so a failed unit
// of work has nothing to roll back.
type Transactor struct {
	mu sync.Mutex
}

func NewTransactor() *Transactor {
	return &Transactor{}
}

func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}
