package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/shopfront/order-api/internal/domains/members/domain"
	"github.com/shopfront/order-api/internal/domains/members/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory member persistence adapter.
type Repository struct {
	mu      sync.RWMutex
	members map[int64]*domain.Member
	nextID  int64
}

func NewRepository() *Repository {
	return &Repository{members: map[int64]*domain.Member{}}
}

func (r *Repository) Save(_ context.Context, member *domain.Member) (*domain.Member, error) {
	if member == nil {
		return nil, errors.New("member is nil")
	}
	clone := *member
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	r.members[clone.ID] = &clone
	member.ID = clone.ID
	result := clone
	return &result, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	member, ok := r.members[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *member
	return &clone, nil
}

func (r *Repository) FindByName(_ context.Context, name string) (*domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, member := range r.members {
		if member.Name == name {
			clone := *member
			return &clone, nil
		}
	}
	return nil, ports.ErrNotFound
}

func (r *Repository) List(_ context.Context) ([]*domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Member, 0, len(r.members))
	for _, member := range r.members {
		clone := *member
		list = append(list, &clone)
	}
	return list, nil
}
