package application

import (
	"errors"
	"fmt"

	"github.com/shopfront/order-api/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the command violated a basic constraint.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrCancellationRejected signals a cancel attempt on an order that can
	// no longer be cancelled. Not retryable.
	ErrCancellationRejected = errors.New("order cancellation rejected")
)

func mapCancelError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrDeliveryCompleted) || errors.Is(err, domain.ErrAlreadyCancelled) {
		return fmt.Errorf("%w: %w", ErrCancellationRejected, err)
	}
	return err
}
