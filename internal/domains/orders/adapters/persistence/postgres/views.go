package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/shopfront/order-api/internal/domains/orders/application/types"
	"github.com/shopfront/order-api/internal/domains/orders/ports"
)

// The projection strategies below bypass the aggregate entirely and scan
// straight into read DTOs. They differ only in how line rows reach the
// headers; all of them must produce identical views for the same data.

type orderHeaderRow struct {
	OrderID    int64
	MemberName string
	OrderedAt  time.Time
	Status     string
	City       string
	Street     string
	Zipcode    string
}

type orderLineRow struct {
	OrderID  int64
	ItemName string
	Price    int64
	Count    int
}

func (h orderHeaderRow) toView() types.OrderView {
	return types.OrderView{
		OrderID:    h.OrderID,
		MemberName: h.MemberName,
		OrderedAt:  h.OrderedAt,
		Status:     h.Status,
		Address:    types.AddressView{City: h.City, Street: h.Street, Zipcode: h.Zipcode},
		Lines:      []types.OrderLineView{},
	}
}

func (l orderLineRow) toView() types.OrderLineView {
	return types.OrderLineView{ItemName: l.ItemName, Price: l.Price, Count: l.Count}
}

func headerQuery(db *gorm.DB, query ports.ViewQuery) *gorm.DB {
	q := db.Table("orders").
		Select(`orders.id AS order_id, members.name AS member_name, orders.ordered_at,
			orders.status, deliveries.city, deliveries.street, deliveries.zipcode`).
		Joins("JOIN members ON members.id = orders.member_id").
		Joins("JOIN deliveries ON deliveries.order_id = orders.id")
	if query.Search.Status != "" {
		q = q.Where("orders.status = ?", string(query.Search.Status))
	}
	if query.Search.MemberName != "" {
		q = q.Where("members.name LIKE ?", "%"+query.Search.MemberName+"%")
	}
	if query.Page != nil {
		limit := query.Page.Limit
		if limit <= 0 {
			limit = maxScanRows
		}
		q = q.Order("orders.id").Offset(query.Page.Offset).Limit(limit)
	} else {
		q = q.Limit(maxScanRows)
	}
	return q
}

var _ ports.OrderViews = (*PerOrderViews)(nil)

// PerOrderViews fetches headers in one query, then the lines of each order
// in its own query. Simple and windowable, at the price of one round trip
// per returned order.
type PerOrderViews struct {
	db *gorm.DB
}

func NewPerOrderViews(db *gorm.DB) *PerOrderViews {
	return &PerOrderViews{db: db}
}

func (v *PerOrderViews) ListOrders(ctx context.Context, query ports.ViewQuery) ([]types.OrderView, error) {
	db := v.db.WithContext(ctx)
	var headers []orderHeaderRow
	if err := headerQuery(db, query).Scan(&headers).Error; err != nil {
		return nil, err
	}
	views := make([]types.OrderView, 0, len(headers))
	for _, header := range headers {
		view := header.toView()
		var lines []orderLineRow
		err := db.Table("order_items").
			Select("order_items.order_id, items.name AS item_name, order_items.price, order_items.count").
			Joins("JOIN items ON items.id = order_items.item_id").
			Where("order_items.order_id = ?", header.OrderID).
			Order("order_items.id").
			Scan(&lines).Error
		if err != nil {
			return nil, err
		}
		for _, line := range lines {
			view.Lines = append(view.Lines, line.toView())
		}
		views = append(views, view)
	}
	return views, nil
}

var _ ports.OrderViews = (*BatchedViews)(nil)

// BatchedViews fetches headers in one query and all their lines in a single
// IN query, then attaches lines in memory. Two round trips regardless of
// result size, and the header window stays intact. This is the default
// strategy.
type BatchedViews struct {
	db *gorm.DB
}

func NewBatchedViews(db *gorm.DB) *BatchedViews {
	return &BatchedViews{db: db}
}

func (v *BatchedViews) ListOrders(ctx context.Context, query ports.ViewQuery) ([]types.OrderView, error) {
	db := v.db.WithContext(ctx)
	var headers []orderHeaderRow
	if err := headerQuery(db, query).Scan(&headers).Error; err != nil {
		return nil, err
	}
	if len(headers) == 0 {
		return []types.OrderView{}, nil
	}

	ids := make([]int64, 0, len(headers))
	for _, header := range headers {
		ids = append(ids, header.OrderID)
	}
	var lines []orderLineRow
	err := db.Table("order_items").
		Select("order_items.order_id, items.name AS item_name, order_items.price, order_items.count").
		Joins("JOIN items ON items.id = order_items.item_id").
		Where("order_items.order_id IN ?", ids).
		Order("order_items.id").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}

	linesByOrder := make(map[int64][]types.OrderLineView, len(headers))
	for _, line := range lines {
		linesByOrder[line.OrderID] = append(linesByOrder[line.OrderID], line.toView())
	}
	views := make([]types.OrderView, 0, len(headers))
	for _, header := range headers {
		view := header.toView()
		if attached, ok := linesByOrder[header.OrderID]; ok {
			view.Lines = attached
		}
		views = append(views, view)
	}
	return views, nil
}

var _ ports.OrderViews = (*FlatJoinViews)(nil)

// FlatJoinViews runs one flat join across all five tables and regroups rows
// into orders in memory, preserving first-seen header order. Header values
// repeat once per line on the wire from the database, and a row window
// would truncate lines rather than orders, so pagination is rejected.
type FlatJoinViews struct {
	db *gorm.DB
}

func NewFlatJoinViews(db *gorm.DB) *FlatJoinViews {
	return &FlatJoinViews{db: db}
}

type flatViewRow struct {
	OrderID    int64
	MemberName string
	OrderedAt  time.Time
	Status     string
	City       string
	Street     string
	Zipcode    string
	ItemName   string
	Price      int64
	Count      int
}

func (r flatViewRow) header() orderHeaderRow {
	return orderHeaderRow{
		OrderID:    r.OrderID,
		MemberName: r.MemberName,
		OrderedAt:  r.OrderedAt,
		Status:     r.Status,
		City:       r.City,
		Street:     r.Street,
		Zipcode:    r.Zipcode,
	}
}

func (v *FlatJoinViews) ListOrders(ctx context.Context, query ports.ViewQuery) ([]types.OrderView, error) {
	if query.Page != nil {
		return nil, ports.ErrPaginationUnsupported
	}
	db := v.db.WithContext(ctx)
	q := db.Table("orders").
		Select(`orders.id AS order_id, members.name AS member_name, orders.ordered_at,
			orders.status, deliveries.city, deliveries.street, deliveries.zipcode,
			items.name AS item_name, order_items.price, order_items.count`).
		Joins("JOIN members ON members.id = orders.member_id").
		Joins("JOIN deliveries ON deliveries.order_id = orders.id").
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Joins("JOIN items ON items.id = order_items.item_id").
		Order("orders.id, order_items.id")
	if query.Search.Status != "" {
		q = q.Where("orders.status = ?", string(query.Search.Status))
	}
	if query.Search.MemberName != "" {
		q = q.Where("members.name LIKE ?", "%"+query.Search.MemberName+"%")
	}

	var rows []flatViewRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}

	index := make(map[int64]int, len(rows))
	views := make([]types.OrderView, 0, len(rows))
	for _, row := range rows {
		at, seen := index[row.OrderID]
		if !seen {
			at = len(views)
			index[row.OrderID] = at
			views = append(views, row.header().toView())
		}
		views[at].Lines = append(views[at].Lines, types.OrderLineView{
			ItemName: row.ItemName,
			Price:    row.Price,
			Count:    row.Count,
		})
	}
	return views, nil
}
