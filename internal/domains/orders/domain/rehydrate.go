package domain

import (
	"time"

	catalogdomain "github.com/shopfront/order-api/internal/domains/catalog/domain"
	memberdomain "github.com/shopfront/order-api/internal/domains/members/domain"
)

// RehydrateOrderItem reassembles a persisted line without touching stock.
// For repository adapters only; new lines go through NewOrderItem.
func RehydrateOrderItem(id int64, item *catalogdomain.Item, price int64, count int) *OrderItem {
	return &OrderItem{ID: id, Item: item, Price: price, Count: count}
}

// RehydrateDelivery reassembles a persisted delivery.
func RehydrateDelivery(id int64, address memberdomain.Address, status DeliveryStatus) *Delivery {
	return &Delivery{ID: id, Address: address, Status: status}
}

// AttachLines binds lazily loaded lines to an already rehydrated order,
// replacing whatever lines it carried.
func AttachLines(order *Order, lines []*OrderItem) {
	order.Lines = nil
	for _, line := range lines {
		order.bindLine(line)
	}
}

// RehydrateOrder reassembles a persisted aggregate, rewiring the
// back-references the same way the factory does.
func RehydrateOrder(id int64, member *memberdomain.Member, delivery *Delivery, lines []*OrderItem, orderedAt time.Time, status Status) *Order {
	order := &Order{
		ID:        id,
		Member:    member,
		OrderedAt: orderedAt,
		Status:    status,
	}
	if delivery != nil {
		order.bindDelivery(delivery)
	}
	for _, line := range lines {
		order.bindLine(line)
	}
	return order
}
