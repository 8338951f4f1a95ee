package application

import (
	"context"

	"github.com/shopfront/order-api/internal/domains/orders/application/types"
	"github.com/shopfront/order-api/internal/domains/orders/domain"
	"github.com/shopfront/order-api/internal/domains/orders/ports"
)

var _ ports.OrderViews = (*EntityViews)(nil)

// EntityViews is the entity round-trip projection strategy: load full
// aggregates through the repository's fetch variants, then map to the view
// shape in application code. Unpaginated listings use the single-pass eager
// fetch; paginated listings fetch headers and load lines per order, which
// costs 1 + N queries on a database-backed repository.
type EntityViews struct {
	repo ports.Repository
}

func NewEntityViews(repo ports.Repository) *EntityViews {
	return &EntityViews{repo: repo}
}

func (v *EntityViews) ListOrders(ctx context.Context, query ports.ViewQuery) ([]types.OrderView, error) {
	if query.Page == nil {
		orders, err := v.repo.FindAllWithLines(ctx, query.Search)
		if err != nil {
			return nil, err
		}
		return mapOrders(orders), nil
	}
	orders, err := v.repo.FindAllWithMemberDelivery(ctx, query.Search, *query.Page)
	if err != nil {
		return nil, err
	}
	for _, order := range orders {
		if err := v.repo.LoadLines(ctx, order); err != nil {
			return nil, err
		}
	}
	return mapOrders(orders), nil
}

var _ ports.OrderViews = (*UnpaginatedViews)(nil)

// UnpaginatedViews serves another strategy on routes whose contract rejects
// offset/limit windows.
type UnpaginatedViews struct {
	inner ports.OrderViews
}

func WithoutPagination(inner ports.OrderViews) *UnpaginatedViews {
	return &UnpaginatedViews{inner: inner}
}

func (v *UnpaginatedViews) ListOrders(ctx context.Context, query ports.ViewQuery) ([]types.OrderView, error) {
	if query.Page != nil {
		return nil, ports.ErrPaginationUnsupported
	}
	return v.inner.ListOrders(ctx, query)
}

func mapOrders(orders []*domain.Order) []types.OrderView {
	views := make([]types.OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, mapOrder(order))
	}
	return views
}

func mapOrder(order *domain.Order) types.OrderView {
	view := types.OrderView{
		OrderID:    order.ID,
		MemberName: order.Member.Name,
		OrderedAt:  order.OrderedAt,
		Status:     string(order.Status),
		Address:    types.AddressViewOf(order.Delivery.Address),
		Lines:      make([]types.OrderLineView, 0, len(order.Lines)),
	}
	for _, line := range order.Lines {
		view.Lines = append(view.Lines, types.OrderLineView{
			ItemName: line.Item.Name,
			Price:    line.Price,
			Count:    line.Count,
		})
	}
	return view
}
