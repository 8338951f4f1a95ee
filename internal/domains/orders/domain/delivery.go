package domain

import (
	memberdomain "github.com/shopfront/order-api/internal/domains/members/domain"
)

// DeliveryStatus enumerates shipping progression.
type DeliveryStatus string

const (
	DeliveryReady     DeliveryStatus = "READY"
	DeliveryCompleted DeliveryStatus = "COMP"
)

// Delivery is the shipping record exclusively owned by one order. The
// back-reference to the owning order is set only by the Order factory.
type Delivery struct {
	ID      int64
	Address memberdomain.Address
	Status  DeliveryStatus

	order *Order
}

// NewDelivery builds a delivery headed for the given address, starting READY.
func NewDelivery(address memberdomain.Address) *Delivery {
	return &Delivery{Address: address, Status: DeliveryReady}
}

// Complete marks the shipment as delivered. Completed deliveries block
// order cancellation.
func (d *Delivery) Complete() {
	d.Status = DeliveryCompleted
}

// Order returns the owning order, nil until the delivery is bound by the
// Order factory.
func (d *Delivery) Order() *Order {
	return d.order
}
