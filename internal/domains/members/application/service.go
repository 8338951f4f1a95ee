package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopfront/order-api/internal/domains/members/domain"
	"github.com/shopfront/order-api/internal/domains/members/ports"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid member input")
)

// Service orchestrates member use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a new member, rejecting duplicate names.
func (s *Service) Register(ctx context.Context, name string, address domain.Address) (*domain.Member, error) {
	member, err := domain.NewMember(name, address)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if _, err := s.repo.FindByName(ctx, member.Name); err == nil {
		return nil, ports.ErrDuplicateName
	} else if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	return s.repo.Save(ctx, member)
}

func (s *Service) GetMember(ctx context.Context, id int64) (*domain.Member, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListMembers(ctx context.Context) ([]*domain.Member, error) {
	return s.repo.List(ctx)
}

var _ ports.Service = (*Service)(nil)
