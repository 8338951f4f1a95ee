package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	membermemory "github.com/shopfront/order-api/internal/domains/members/adapters/memory"
	"github.com/shopfront/order-api/internal/domains/members/domain"
	"github.com/shopfront/order-api/internal/domains/members/ports"
)

func TestRegister_Success(t *testing.T) {
	repo := membermemory.NewRepository()
	svc := NewService(repo)

	member, err := svc.Register(context.Background(), "userA", domain.NewAddress("Seoul", "Teheran-ro", "06100"))

	require.NoError(t, err)
	require.NotZero(t, member.ID)
	require.Equal(t, "userA", member.Name)
	require.Equal(t, "Seoul", member.Address.City)
}

func TestRegister_DuplicateName(t *testing.T) {
	repo := membermemory.NewRepository()
	svc := NewService(repo)

	_, err := svc.Register(context.Background(), "userA", domain.NewAddress("Seoul", "Teheran-ro", "06100"))
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "userA", domain.NewAddress("Busan", "Haeundae-ro", "48060"))
	require.ErrorIs(t, err, ports.ErrDuplicateName)
}

func TestRegister_EmptyName(t *testing.T) {
	svc := NewService(membermemory.NewRepository())

	_, err := svc.Register(context.Background(), "   ", domain.Address{})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetMember_NotFound(t *testing.T) {
	svc := NewService(membermemory.NewRepository())

	_, err := svc.GetMember(context.Background(), 42)
	require.ErrorIs(t, err, ports.ErrNotFound)
}
