package ports

import (
	"context"
	"errors"
	"time"

	"github.com/shopfront/order-api/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Search filters order scans. Zero values match everything.
type Search struct {
	Status     domain.Status // exact match when set
	MemberName string        // substring match when set
}

// Page is an offset/limit window over header rows. A non-positive limit
// falls back to the 1000-row scan cap.
type Page struct {
	Offset int
	Limit  int
}

// Repository persists the order aggregate and exposes its fetch strategies.
type Repository interface {
	// Save upserts the aggregate by identity: the order row plus its
	// delivery and lines. First save assigns identifiers.
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	// FindOne loads one aggregate with enough state to cancel it: member,
	// delivery, and lines rehydrated with their items.
	FindOne(ctx context.Context, id int64) (*domain.Order, error)
	// FindAll scans by filter. At most 1000 rows, unspecified order.
	FindAll(ctx context.Context, search Search) ([]*domain.Order, error)
	// FindAllWithLines eagerly loads member, delivery, lines, and items in
	// one pass. Joining the line collection multiplies result rows, so this
	// variant must not be paginated.
	FindAllWithLines(ctx context.Context, search Search) ([]*domain.Order, error)
	// FindAllWithMemberDelivery returns paginated headers with member and
	// delivery attached but no lines; use LoadLines per order.
	FindAllWithMemberDelivery(ctx context.Context, search Search, page Page) ([]*domain.Order, error)
	// LoadLines fetches the lines of one order, items included.
	LoadLines(ctx context.Context, order *domain.Order) error
	// CompleteDeliveriesBefore marks READY deliveries of orders placed
	// before the cutoff as COMP. Returns the number of rows changed.
	CompleteDeliveriesBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
