package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	catalogports "github.com/shopfront/order-api/internal/domains/catalog/ports"
	memberdomain "github.com/shopfront/order-api/internal/domains/members/domain"
	"github.com/shopfront/order-api/internal/domains/orders/domain"
	"github.com/shopfront/order-api/internal/domains/orders/ports"
)

// maxScanRows caps unpaginated scans, matching the persistence adapter.
const maxScanRows = 1000

var _ ports.Repository = (*Repository)(nil)

// orderSnapshot is the flat stored shape of one aggregate. Items are held
// by reference only; FindOne rehydrates them from the catalog so stock
// reads stay current.
type orderSnapshot struct {
	id           int64
	memberID     int64
	memberName   string
	memberAddr   memberdomain.Address
	deliveryID   int64
	deliveryAddr memberdomain.Address
	delivery     domain.DeliveryStatus
	orderedAt    time.Time
	status       domain.Status
	lines        []lineSnapshot
}

type lineSnapshot struct {
	id     int64
	itemID int64
	price  int64
	count  int
}

// Repository is an in-memory order persistence adapter. It leans on the
// catalog repository to rehydrate line items.
type Repository struct {
	mu     sync.RWMutex
	orders map[int64]*orderSnapshot
	nextID int64
	items  catalogports.Repository
}

func NewRepository(items catalogports.Repository) *Repository {
	return &Repository{orders: map[int64]*orderSnapshot{}, items: items}
}

func (r *Repository) Save(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if order.ID == 0 {
		r.nextID++
		order.ID = r.nextID
	} else if order.ID > r.nextID {
		r.nextID = order.ID
	}
	if order.Delivery.ID == 0 {
		order.Delivery.ID = order.ID
	}
	snap := &orderSnapshot{
		id:           order.ID,
		memberID:     order.Member.ID,
		memberName:   order.Member.Name,
		memberAddr:   order.Member.Address,
		deliveryID:   order.Delivery.ID,
		deliveryAddr: order.Delivery.Address,
		delivery:     order.Delivery.Status,
		orderedAt:    order.OrderedAt,
		status:       order.Status,
	}
	for i, line := range order.Lines {
		if line.ID == 0 {
			line.ID = order.ID*1000 + int64(i) + 1
		}
		snap.lines = append(snap.lines, lineSnapshot{
			id:     line.ID,
			itemID: line.Item.ID,
			price:  line.Price,
			count:  line.Count,
		})
	}
	r.orders[snap.id] = snap
	return order, nil
}

func (r *Repository) FindOne(ctx context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	snap, ok := r.orders[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ports.ErrNotFound
	}
	return r.rehydrate(ctx, snap, true)
}

func (r *Repository) FindAll(ctx context.Context, search ports.Search) ([]*domain.Order, error) {
	return r.scan(ctx, search, nil, false)
}

func (r *Repository) FindAllWithLines(ctx context.Context, search ports.Search) ([]*domain.Order, error) {
	return r.scan(ctx, search, nil, true)
}

func (r *Repository) FindAllWithMemberDelivery(ctx context.Context, search ports.Search, page ports.Page) ([]*domain.Order, error) {
	return r.scan(ctx, search, &page, false)
}

func (r *Repository) LoadLines(ctx context.Context, order *domain.Order) error {
	r.mu.RLock()
	snap, ok := r.orders[order.ID]
	r.mu.RUnlock()
	if !ok {
		return ports.ErrNotFound
	}
	lines, err := r.rehydrateLines(ctx, snap)
	if err != nil {
		return err
	}
	domain.AttachLines(order, lines)
	return nil
}

func (r *Repository) CompleteDeliveriesBefore(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var changed int64
	for _, snap := range r.orders {
		if snap.delivery == domain.DeliveryReady && snap.orderedAt.Before(cutoff) {
			snap.delivery = domain.DeliveryCompleted
			changed++
		}
	}
	return changed, nil
}

func (r *Repository) scan(ctx context.Context, search ports.Search, page *ports.Page, withLines bool) ([]*domain.Order, error) {
	r.mu.RLock()
	snaps := make([]*orderSnapshot, 0, len(r.orders))
	for _, snap := range r.orders {
		if search.Status != "" && snap.status != search.Status {
			continue
		}
		if search.MemberName != "" && !strings.Contains(snap.memberName, search.MemberName) {
			continue
		}
		snaps = append(snaps, snap)
	}
	r.mu.RUnlock()

	sort.Slice(snaps, func(i, j int) bool { return snaps[i].id < snaps[j].id })
	if page != nil {
		if page.Offset >= len(snaps) {
			snaps = nil
		} else {
			snaps = snaps[page.Offset:]
		}
		limit := page.Limit
		if limit <= 0 {
			limit = maxScanRows
		}
		if limit < len(snaps) {
			snaps = snaps[:limit]
		}
	} else if len(snaps) > maxScanRows {
		snaps = snaps[:maxScanRows]
	}

	orders := make([]*domain.Order, 0, len(snaps))
	for _, snap := range snaps {
		order, err := r.rehydrate(ctx, snap, withLines)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (r *Repository) rehydrate(ctx context.Context, snap *orderSnapshot, withLines bool) (*domain.Order, error) {
	member := &memberdomain.Member{ID: snap.memberID, Name: snap.memberName, Address: snap.memberAddr}
	delivery := domain.RehydrateDelivery(snap.deliveryID, snap.deliveryAddr, snap.delivery)
	var lines []*domain.OrderItem
	if withLines {
		var err error
		lines, err = r.rehydrateLines(ctx, snap)
		if err != nil {
			return nil, err
		}
	}
	return domain.RehydrateOrder(snap.id, member, delivery, lines, snap.orderedAt, snap.status), nil
}

func (r *Repository) rehydrateLines(ctx context.Context, snap *orderSnapshot) ([]*domain.OrderItem, error) {
	lines := make([]*domain.OrderItem, 0, len(snap.lines))
	for _, ls := range snap.lines {
		item, err := r.items.GetByID(ctx, ls.itemID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, domain.RehydrateOrderItem(ls.id, item, ls.price, ls.count))
	}
	return lines, nil
}
