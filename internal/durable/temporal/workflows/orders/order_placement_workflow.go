package orders

import (
	"go.temporal.io/sdk/workflow"

	"github.com/shopfront/order-api/internal/domains/orders/application/types"
	"github.com/shopfront/order-api/internal/durable/temporal/sequences"
)

const (
	// OrderPlacementWorkflowName is the public identifier for registering the workflow.
	OrderPlacementWorkflowName = "orders.workflows.Placement"
	// OrderPlacementTaskQueue is the queue consumed by the worker processing order workflows.
	OrderPlacementTaskQueue = "ORDER_PLACEMENT"
)

// OrderPlacementWorkflowInput captures the payload required to place an order.
type OrderPlacementWorkflowInput struct {
	Command types.PlaceOrderInput
	TraceID string
}

// OrderPlacementWorkflow orchestrates the activities needed to place an order aggregate.
func OrderPlacementWorkflow(ctx workflow.Context, input OrderPlacementWorkflowInput) (int64, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("OrderPlacementWorkflow started",
		withTraceID(input.TraceID, "memberId", input.Command.MemberID, "itemId", input.Command.ItemID)...)
	orderID, err := sequences.RunOrderPlacementSequence(ctx, input.Command)
	if err != nil {
		logger.Error("OrderPlacementWorkflow failed",
			withTraceID(input.TraceID, "memberId", input.Command.MemberID, "error", err)...)
		return 0, err
	}
	logger.Info("OrderPlacementWorkflow completed", withTraceID(input.TraceID, "orderId", orderID)...)
	return orderID, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
