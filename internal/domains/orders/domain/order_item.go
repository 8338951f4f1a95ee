package domain

import (
	"errors"

	catalogdomain "github.com/shopfront/order-api/internal/domains/catalog/domain"
)

var ErrInvalidCount = errors.New("order count must be greater than zero")

// OrderItem binds an item snapshot to an order. Its lifecycle is tied to the
// owning order: created at placement, cancelled with it, never deleted on
// its own.
type OrderItem struct {
	ID    int64
	Item  *catalogdomain.Item
	Price int64 // unit price at order time, immune to later item price changes
	Count int

	order *Order
}

// NewOrderItem snapshots the price and removes the ordered count from stock.
// Stock mutation happens here, at line creation, not at a later commit step.
func NewOrderItem(item *catalogdomain.Item, price int64, count int) (*OrderItem, error) {
	if item == nil {
		return nil, errors.New("item is nil")
	}
	if count <= 0 {
		return nil, ErrInvalidCount
	}
	if err := item.RemoveStock(count); err != nil {
		return nil, err
	}
	return &OrderItem{Item: item, Price: price, Count: count}, nil
}

// cancel restores the stock this line consumed. The delivery-state guard
// lives on the aggregate, not here.
func (oi *OrderItem) cancel() {
	oi.Item.AddStock(oi.Count)
}

// TotalPrice is the price snapshot times the ordered count.
func (oi *OrderItem) TotalPrice() int64 {
	return oi.Price * int64(oi.Count)
}

// Order returns the owning order, nil until the line is bound by the Order
// factory.
func (oi *OrderItem) Order() *Order {
	return oi.order
}
