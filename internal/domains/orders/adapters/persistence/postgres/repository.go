package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	platformpostgres "github.com/shopfront/order-api/internal/platform/postgres"

	catalogdomain "github.com/shopfront/order-api/internal/domains/catalog/domain"
	memberdomain "github.com/shopfront/order-api/internal/domains/members/domain"
	"github.com/shopfront/order-api/internal/domains/orders/domain"
	"github.com/shopfront/order-api/internal/domains/orders/ports"
)

// maxScanRows caps unpaginated scans. Row order within the cap is
// unspecified and callers must not rely on it.
const maxScanRows = 1000

var _ ports.Repository = (*Repository)(nil)

// Repository persists the order aggregate in PostgreSQL using GORM.
// The order row owns its delivery and line rows; members and items live in
// their own contexts and are only read here.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&orderRecord{}, &deliveryRecord{}, &orderLineRecord{})
	}
	return repo
}

type orderRecord struct {
	ID        int64     `gorm:"primaryKey;column:id;autoIncrement"`
	MemberID  int64     `gorm:"column:member_id;index"`
	OrderedAt time.Time `gorm:"column:ordered_at;index"`
	Status    string    `gorm:"column:status;type:varchar(16);index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`

	Member   *memberRecord    `gorm:"foreignKey:MemberID"`
	Delivery *deliveryRecord  `gorm:"foreignKey:OrderID"`
	Lines    []orderLineRecord `gorm:"foreignKey:OrderID"`
}

func (orderRecord) TableName() string { return "orders" }

type deliveryRecord struct {
	ID      int64  `gorm:"primaryKey;column:id;autoIncrement"`
	OrderID int64  `gorm:"column:order_id;uniqueIndex"`
	City    string `gorm:"column:city"`
	Street  string `gorm:"column:street"`
	Zipcode string `gorm:"column:zipcode"`
	Status  string `gorm:"column:status;type:varchar(16);index"`
}

func (deliveryRecord) TableName() string { return "deliveries" }

type orderLineRecord struct {
	ID      int64 `gorm:"primaryKey;column:id;autoIncrement"`
	OrderID int64 `gorm:"column:order_id;index"`
	ItemID  int64 `gorm:"column:item_id;index"`
	Price   int64 `gorm:"column:price"`
	Count   int   `gorm:"column:count"`

	Item *itemRecord `gorm:"foreignKey:ItemID"`
}

func (orderLineRecord) TableName() string { return "order_items" }

// memberRecord and itemRecord mirror the tables owned by the members and
// catalog adapters; declared here for joins and preloads only, never
// migrated or written by this repository.
type memberRecord struct {
	ID      int64  `gorm:"primaryKey;column:id"`
	Name    string `gorm:"column:name"`
	City    string `gorm:"column:city"`
	Street  string `gorm:"column:street"`
	Zipcode string `gorm:"column:zipcode"`
}

func (memberRecord) TableName() string { return "members" }

type itemRecord struct {
	ID     int64  `gorm:"primaryKey;column:id"`
	Name   string `gorm:"column:name"`
	Price  int64  `gorm:"column:price"`
	Stock  int    `gorm:"column:stock_quantity"`
	Kind   string `gorm:"column:kind"`
	Author string `gorm:"column:author"`
	ISBN   string `gorm:"column:isbn"`
}

func (itemRecord) TableName() string { return "items" }

// Save upserts the aggregate: order row first, then its delivery and line
// rows. Identifiers are written back into the domain objects on insert.
func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	db := platformpostgres.FromContext(ctx, r.db).WithContext(ctx)

	record := orderRecord{
		ID:        order.ID,
		MemberID:  order.Member.ID,
		OrderedAt: order.OrderedAt,
		Status:    string(order.Status),
	}
	if err := db.Save(&record).Error; err != nil {
		return nil, err
	}
	order.ID = record.ID

	delivery := deliveryRecord{
		ID:      order.Delivery.ID,
		OrderID: record.ID,
		City:    order.Delivery.Address.City,
		Street:  order.Delivery.Address.Street,
		Zipcode: order.Delivery.Address.Zipcode,
		Status:  string(order.Delivery.Status),
	}
	if err := db.Save(&delivery).Error; err != nil {
		return nil, err
	}
	order.Delivery.ID = delivery.ID

	for _, line := range order.Lines {
		lineRecord := orderLineRecord{
			ID:      line.ID,
			OrderID: record.ID,
			ItemID:  line.Item.ID,
			Price:   line.Price,
			Count:   line.Count,
		}
		if err := db.Save(&lineRecord).Error; err != nil {
			return nil, err
		}
		line.ID = lineRecord.ID
	}
	return order, nil
}

// FindOne loads one aggregate with member, delivery, and lines rehydrated
// (items included) so the caller can cancel it.
func (r *Repository) FindOne(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	db := platformpostgres.FromContext(ctx, r.db).WithContext(ctx)
	var record orderRecord
	if err := db.
		Preload("Member").
		Preload("Delivery").
		Preload("Lines.Item").
		First(&record, "orders.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// FindAll scans order headers by filter. At most 1000 rows in unspecified
// order; lines are not loaded.
func (r *Repository) FindAll(ctx context.Context, search ports.Search) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	db := platformpostgres.FromContext(ctx, r.db).WithContext(ctx)
	var records []orderRecord
	if err := applySearch(db.Joins("Member").Joins("Delivery"), search).
		Limit(maxScanRows).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainOrders(records), nil
}

// FindAllWithLines eagerly loads the whole aggregate set: member and
// delivery join-fetched with the headers, lines and items batch-fetched in
// one additional pass. Joining the line collection directly would multiply
// header rows, so this variant takes no page and must not be windowed.
func (r *Repository) FindAllWithLines(ctx context.Context, search ports.Search) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	db := platformpostgres.FromContext(ctx, r.db).WithContext(ctx)
	var records []orderRecord
	if err := applySearch(db.Joins("Member").Joins("Delivery"), search).
		Preload("Lines.Item").
		Limit(maxScanRows).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainOrders(records), nil
}

// FindAllWithMemberDelivery returns a deterministic offset/limit window of
// headers with member and delivery join-fetched. Lines stay unloaded; use
// LoadLines per order.
func (r *Repository) FindAllWithMemberDelivery(ctx context.Context, search ports.Search, page ports.Page) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	db := platformpostgres.FromContext(ctx, r.db).WithContext(ctx)
	var records []orderRecord
	limit := page.Limit
	if limit <= 0 {
		limit = maxScanRows
	}
	query := applySearch(db.Joins("Member").Joins("Delivery"), search).
		Order("orders.id").
		Offset(page.Offset).
		Limit(limit)
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainOrders(records), nil
}

// LoadLines fetches the lines of one order, items included.
func (r *Repository) LoadLines(ctx context.Context, order *domain.Order) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	db := platformpostgres.FromContext(ctx, r.db).WithContext(ctx)
	var records []orderLineRecord
	if err := db.Preload("Item").Find(&records, "order_id = ?", order.ID).Error; err != nil {
		return err
	}
	lines := make([]*domain.OrderItem, 0, len(records))
	for i := range records {
		lines = append(lines, records[i].toDomain())
	}
	domain.AttachLines(order, lines)
	return nil
}

// CompleteDeliveriesBefore marks READY deliveries of orders placed before
// the cutoff as COMP.
func (r *Repository) CompleteDeliveriesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	db := platformpostgres.FromContext(ctx, r.db).WithContext(ctx)
	result := db.Model(&deliveryRecord{}).
		Where("status = ?", string(domain.DeliveryReady)).
		Where("order_id IN (?)", db.Session(&gorm.Session{NewDB: true}).
			Model(&orderRecord{}).Select("id").Where("ordered_at < ?", cutoff)).
		Update("status", string(domain.DeliveryCompleted))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func applySearch(db *gorm.DB, search ports.Search) *gorm.DB {
	if search.Status != "" {
		db = db.Where("orders.status = ?", string(search.Status))
	}
	if search.MemberName != "" {
		db = db.Where(`"Member".name LIKE ?`, "%"+search.MemberName+"%")
	}
	return db
}

func toDomainOrders(records []orderRecord) []*domain.Order {
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders
}

func (r orderRecord) toDomain() *domain.Order {
	var member *memberdomain.Member
	if r.Member != nil {
		member = &memberdomain.Member{
			ID:      r.Member.ID,
			Name:    r.Member.Name,
			Address: memberdomain.Address{City: r.Member.City, Street: r.Member.Street, Zipcode: r.Member.Zipcode},
		}
	}
	var delivery *domain.Delivery
	if r.Delivery != nil {
		delivery = domain.RehydrateDelivery(
			r.Delivery.ID,
			memberdomain.Address{City: r.Delivery.City, Street: r.Delivery.Street, Zipcode: r.Delivery.Zipcode},
			domain.DeliveryStatus(r.Delivery.Status),
		)
	}
	lines := make([]*domain.OrderItem, 0, len(r.Lines))
	for i := range r.Lines {
		lines = append(lines, r.Lines[i].toDomain())
	}
	return domain.RehydrateOrder(r.ID, member, delivery, lines, r.OrderedAt, domain.Status(r.Status))
}

func (r orderLineRecord) toDomain() *domain.OrderItem {
	var item *catalogdomain.Item
	if r.Item != nil {
		item = &catalogdomain.Item{
			ID:     r.Item.ID,
			Name:   r.Item.Name,
			Price:  r.Item.Price,
			Stock:  r.Item.Stock,
			Kind:   catalogdomain.Kind(r.Item.Kind),
			Author: r.Item.Author,
			ISBN:   r.Item.ISBN,
		}
	}
	return domain.RehydrateOrderItem(r.ID, item, r.Price, r.Count)
}
