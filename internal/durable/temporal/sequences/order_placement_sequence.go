package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/shopfront/order-api/internal/domains/orders/application/types"
	orderactivities "github.com/shopfront/order-api/internal/durable/temporal/activities/orders"
)

// RunOrderPlacementSequence executes the ordered set of activities needed to place an order aggregate.
func RunOrderPlacementSequence(ctx workflow.Context, input types.PlaceOrderInput) (int64, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order placement sequence started", "memberId", input.MemberID, "itemId", input.ItemID)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
			// Domain rejections never succeed on retry.
			NonRetryableErrorTypes: []string{orderactivities.PlacementRejectedErrorType},
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var orderID int64
	err := workflow.ExecuteActivity(ctx, orderactivities.PlaceOrderActivityName, input).Get(ctx, &orderID)
	if err != nil {
		logger.Error("order placement sequence failed", "memberId", input.MemberID, "error", err)
		return 0, err
	}
	logger.Info("order placement sequence completed", "orderId", orderID)
	return orderID, nil
}
