package application

import (
	"context"
	"fmt"

	catalogports "github.com/shopfront/order-api/internal/domains/catalog/ports"
	memberports "github.com/shopfront/order-api/internal/domains/members/ports"
	"github.com/shopfront/order-api/internal/domains/orders/application/types"
	"github.com/shopfront/order-api/internal/domains/orders/domain"
	"github.com/shopfront/order-api/internal/domains/orders/ports"
)

// Service orchestrates order placement and cancellation. Each operation
// runs inside one unit of work supplied by the Transactor: stock mutation,
// status transition, and relationship wiring commit together or not at all.
type Service struct {
	orders  ports.Repository
	members memberports.Repository
	items   catalogports.Repository
	tx      ports.Transactor
}

func NewService(orders ports.Repository, members memberports.Repository, items catalogports.Repository, tx ports.Transactor) *Service {
	return &Service{orders: orders, members: members, items: items, tx: tx}
}

// PlaceOrder loads the member and item, builds the delivery headed to the
// member's address, creates one line (removing stock), assembles the
// aggregate, and persists order then item inside one transaction.
func (s *Service) PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (int64, error) {
	if input.Count <= 0 {
		return 0, fmt.Errorf("%w: %w", ErrInvalidInput, domain.ErrInvalidCount)
	}
	var orderID int64
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		member, err := s.members.GetByID(ctx, input.MemberID)
		if err != nil {
			return err
		}
		item, err := s.items.GetByID(ctx, input.ItemID)
		if err != nil {
			return err
		}

		delivery := domain.NewDelivery(member.Address)
		line, err := domain.NewOrderItem(item, item.Price, input.Count)
		if err != nil {
			return err
		}
		order, err := domain.NewOrder(member, delivery, line)
		if err != nil {
			return err
		}

		saved, err := s.orders.Save(ctx, order)
		if err != nil {
			return err
		}
		if _, err := s.items.Save(ctx, item); err != nil {
			return err
		}
		orderID = saved.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return orderID, nil
}

// CancelOrder loads the aggregate, runs the guarded transition, and saves
// the order plus every restored item in the same transaction.
func (s *Service) CancelOrder(ctx context.Context, orderID int64) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		order, err := s.orders.FindOne(ctx, orderID)
		if err != nil {
			return err
		}
		if err := order.Cancel(); err != nil {
			return mapCancelError(err)
		}
		if _, err := s.orders.Save(ctx, order); err != nil {
			return err
		}
		for _, line := range order.Lines {
			if _, err := s.items.Save(ctx, line.Item); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetOrder loads one aggregate.
func (s *Service) GetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	return s.orders.FindOne(ctx, orderID)
}

var _ ports.Service = (*Service)(nil)
