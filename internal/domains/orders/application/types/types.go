// Package types carries the transport-neutral inputs and read projections
// of the orders context.
package types

import (
	"time"

	memberdomain "github.com/shopfront/order-api/internal/domains/members/domain"
)

// PlaceOrderInput is the command payload for order placement.
type PlaceOrderInput struct {
	MemberID int64
	ItemID   int64
	Count    int
}

// OrderView is the denormalized order header plus nested lines shared by
// every projection strategy.
type OrderView struct {
	OrderID    int64           `json:"orderId"`
	MemberName string          `json:"memberName"`
	OrderedAt  time.Time       `json:"orderedAt"`
	Status     string          `json:"status"`
	Address    AddressView     `json:"address"`
	Lines      []OrderLineView `json:"lines"`
}

// AddressView is the projected delivery address.
type AddressView struct {
	City    string `json:"city"`
	Street  string `json:"street"`
	Zipcode string `json:"zipcode"`
}

// AddressViewOf projects a domain address.
func AddressViewOf(a memberdomain.Address) AddressView {
	return AddressView{City: a.City, Street: a.Street, Zipcode: a.Zipcode}
}

// OrderLineView is one projected order line.
type OrderLineView struct {
	ItemName string `json:"itemName"`
	Price    int64  `json:"price"`
	Count    int    `json:"count"`
}
