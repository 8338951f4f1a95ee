package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	catalogdomain "github.com/shopfront/order-api/internal/domains/catalog/domain"
	catalogports "github.com/shopfront/order-api/internal/domains/catalog/ports"
	memberports "github.com/shopfront/order-api/internal/domains/members/ports"
	"github.com/shopfront/order-api/internal/domains/orders/application"
	"github.com/shopfront/order-api/internal/domains/orders/application/types"
	orderports "github.com/shopfront/order-api/internal/domains/orders/ports"
)

const (
	// PlaceOrderActivityName places an order aggregate through the application service.
	PlaceOrderActivityName = "orders.activities.PlaceOrder"
	// PlacementRejectedErrorType marks domain rejections that must not be retried.
	PlacementRejectedErrorType = "OrderPlacementRejected"
)

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service orderports.Service
}

// NewActivities wires the order service into the Temporal activities bundle.
func NewActivities(service orderports.Service) *Activities {
	return &Activities{service: service}
}

// PlaceOrder places an order and returns its identifier. Domain rejections
// (missing member or item, bad count, insufficient stock) are surfaced as
// non-retryable application errors.
func (a *Activities) PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (int64, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order placement activity not initialized", "memberId", input.MemberID)
		return 0, errors.New("order placement activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "memberId", input.MemberID, "itemId", input.ItemID, "count", input.Count)
	orderID, err := a.service.PlaceOrder(ctx, input)
	if err != nil {
		logger.Error("PlaceOrder activity failed", "memberId", input.MemberID, "error", err)
		if isPlacementRejection(err) {
			return 0, temporal.NewNonRetryableApplicationError(err.Error(), PlacementRejectedErrorType, err)
		}
		return 0, err
	}
	logger.Info("PlaceOrder activity completed", "orderId", orderID)
	return orderID, nil
}

func isPlacementRejection(err error) bool {
	return errors.Is(err, application.ErrInvalidInput) ||
		errors.Is(err, catalogdomain.ErrNotEnoughStock) ||
		errors.Is(err, catalogports.ErrNotFound) ||
		errors.Is(err, memberports.ErrNotFound)
}
