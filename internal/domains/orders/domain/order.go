package domain

import (
	"errors"
	"time"

	memberdomain "github.com/shopfront/order-api/internal/domains/members/domain"
)

// Status enumerates order progression. CANCEL is terminal.
type Status string

const (
	StatusOrdered   Status = "ORDER"
	StatusCancelled Status = "CANCEL"
)

var (
	ErrNoLines              = errors.New("order requires at least one line")
	ErrNoMember             = errors.New("order requires a member")
	ErrNoDelivery           = errors.New("order requires a delivery")
	ErrAlreadyCancelled     = errors.New("order is already cancelled")
	ErrDeliveryCompleted    = errors.New("cannot cancel an order whose delivery is completed")
)

// Order is the aggregate root and consistency boundary: it owns its lines
// and its delivery, references the buying member, and is the only place
// that wires both sides of those relationships.
type Order struct {
	ID        int64
	Member    *memberdomain.Member
	Delivery  *Delivery
	Lines     []*OrderItem
	OrderedAt time.Time
	Status    Status
}

// NewOrder is the sole construction path for a well-formed order. It binds
// the member, takes ownership of the delivery and lines (setting their
// back-references), and starts the aggregate in ORDER state.
func NewOrder(member *memberdomain.Member, delivery *Delivery, lines ...*OrderItem) (*Order, error) {
	if member == nil {
		return nil, ErrNoMember
	}
	if delivery == nil {
		return nil, ErrNoDelivery
	}
	if len(lines) == 0 {
		return nil, ErrNoLines
	}
	order := &Order{
		Member:    member,
		OrderedAt: time.Now(),
		Status:    StatusOrdered,
	}
	order.bindDelivery(delivery)
	for _, line := range lines {
		order.bindLine(line)
	}
	return order, nil
}

func (o *Order) bindDelivery(delivery *Delivery) {
	o.Delivery = delivery
	delivery.order = o
}

func (o *Order) bindLine(line *OrderItem) {
	o.Lines = append(o.Lines, line)
	line.order = o
}

// Cancel transitions the order to CANCEL and restores the stock of every
// line. The transition is guarded: a completed delivery or an already
// cancelled order rejects the call with no mutation at all.
func (o *Order) Cancel() error {
	if o.Delivery != nil && o.Delivery.Status == DeliveryCompleted {
		return ErrDeliveryCompleted
	}
	if o.Status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	o.Status = StatusCancelled
	for _, line := range o.Lines {
		line.cancel()
	}
	return nil
}

// TotalPrice recomputes the order total from its lines on every call.
func (o *Order) TotalPrice() int64 {
	var total int64
	for _, line := range o.Lines {
		total += line.TotalPrice()
	}
	return total
}
