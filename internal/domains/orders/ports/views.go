package ports

import (
	"context"
	"errors"

	"github.com/shopfront/order-api/internal/domains/orders/application/types"
)

// ErrPaginationUnsupported is returned by strategies whose row shape cannot
// be windowed without truncating lines instead of orders.
var ErrPaginationUnsupported = errors.New("pagination is not supported by this view strategy")

// ViewQuery filters and optionally paginates a projection listing.
type ViewQuery struct {
	Search Search
	Page   *Page
}

// OrderViews is the single read contract behind which the competing
// projection strategies sit. All implementations must return the same
// header and line values for the same underlying data.
type OrderViews interface {
	ListOrders(ctx context.Context, query ViewQuery) ([]types.OrderView, error)
}
