package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shopfront/order-api/internal/domains/orders/application/types"
	"github.com/shopfront/order-api/internal/domains/orders/domain"
	"github.com/shopfront/order-api/internal/domains/orders/ports"
)

func TestEntityViews_ListOrders(t *testing.T) {
	f := newFixture(t)
	member := f.seedMember(t, "M1")
	book := f.seedBook(t, "Book-A", 10000, 10)

	orderID, err := f.svc.PlaceOrder(context.Background(), types.PlaceOrderInput{
		MemberID: member.ID, ItemID: book.ID, Count: 2,
	})
	require.NoError(t, err)

	views, err := NewEntityViews(f.orders).ListOrders(context.Background(), ports.ViewQuery{})
	require.NoError(t, err)
	require.Len(t, views, 1)

	view := views[0]
	require.Equal(t, orderID, view.OrderID)
	require.Equal(t, "M1", view.MemberName)
	require.Equal(t, string(domain.StatusOrdered), view.Status)
	require.Equal(t, types.AddressViewOf(member.Address), view.Address)
	require.Len(t, view.Lines, 1)
	require.Equal(t, types.OrderLineView{ItemName: "Book-A", Price: 10000, Count: 2}, view.Lines[0])
}

func TestEntityViews_PaginatedMatchesUnpaginated(t *testing.T) {
	f := newFixture(t)
	member := f.seedMember(t, "M1")
	book := f.seedBook(t, "Book-A", 10000, 100)

	for i := 0; i < 5; i++ {
		_, err := f.svc.PlaceOrder(context.Background(), types.PlaceOrderInput{
			MemberID: member.ID, ItemID: book.ID, Count: 1,
		})
		require.NoError(t, err)
	}

	views := NewEntityViews(f.orders)
	full, err := views.ListOrders(context.Background(), ports.ViewQuery{})
	require.NoError(t, err)
	require.Len(t, full, 5)

	var paged []types.OrderView
	for offset := 0; offset < 5; offset += 2 {
		chunk, err := views.ListOrders(context.Background(), ports.ViewQuery{
			Page: &ports.Page{Offset: offset, Limit: 2},
		})
		require.NoError(t, err)
		paged = append(paged, chunk...)
	}
	require.Equal(t, full, paged)
}

func TestWithoutPagination(t *testing.T) {
	f := newFixture(t)
	member := f.seedMember(t, "M1")
	book := f.seedBook(t, "Book-A", 10000, 10)
	_, err := f.svc.PlaceOrder(context.Background(), types.PlaceOrderInput{
		MemberID: member.ID, ItemID: book.ID, Count: 1,
	})
	require.NoError(t, err)

	views := WithoutPagination(NewEntityViews(f.orders))

	_, err = views.ListOrders(context.Background(), ports.ViewQuery{
		Page: &ports.Page{Offset: 0, Limit: 10},
	})
	require.ErrorIs(t, err, ports.ErrPaginationUnsupported)

	listed, err := views.ListOrders(context.Background(), ports.ViewQuery{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
}

func TestEntityViews_FilterByStatus(t *testing.T) {
	f := newFixture(t)
	member := f.seedMember(t, "M1")
	book := f.seedBook(t, "Book-A", 10000, 10)

	first, err := f.svc.PlaceOrder(context.Background(), types.PlaceOrderInput{MemberID: member.ID, ItemID: book.ID, Count: 1})
	require.NoError(t, err)
	second, err := f.svc.PlaceOrder(context.Background(), types.PlaceOrderInput{MemberID: member.ID, ItemID: book.ID, Count: 1})
	require.NoError(t, err)
	require.NoError(t, f.svc.CancelOrder(context.Background(), second))

	views := NewEntityViews(f.orders)
	ordered, err := views.ListOrders(context.Background(), ports.ViewQuery{
		Search: ports.Search{Status: domain.StatusOrdered},
	})
	require.NoError(t, err)
	require.Len(t, ordered, 1)
	require.Equal(t, first, ordered[0].OrderID)

	cancelled, err := views.ListOrders(context.Background(), ports.ViewQuery{
		Search: ports.Search{Status: domain.StatusCancelled},
	})
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	require.Equal(t, second, cancelled[0].OrderID)
}
