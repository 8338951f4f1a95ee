package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/shopfront/order-api/internal/domains/catalog/domain"
	"github.com/shopfront/order-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory item persistence adapter.
type Repository struct {
	mu     sync.RWMutex
	items  map[int64]*domain.Item
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{items: map[int64]*domain.Item{}}
}

func (r *Repository) Save(_ context.Context, item *domain.Item) (*domain.Item, error) {
	if item == nil {
		return nil, errors.New("item is nil")
	}
	clone := cloneItem(item)
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	r.items[clone.ID] = clone
	item.ID = clone.ID
	return cloneItem(clone), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneItem(item), nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Item, 0, len(r.items))
	for _, item := range r.items {
		list = append(list, cloneItem(item))
	}
	return list, nil
}

func cloneItem(item *domain.Item) *domain.Item {
	clone := *item
	clone.Categories = append([]string(nil), item.Categories...)
	return &clone
}
