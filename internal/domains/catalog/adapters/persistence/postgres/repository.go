package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	platformpostgres "github.com/shopfront/order-api/internal/platform/postgres"

	"github.com/shopfront/order-api/internal/domains/catalog/domain"
	"github.com/shopfront/order-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists catalog items in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&itemRecord{})
	}
	return repo
}

// itemRecord stores every variant in one table with a kind discriminator.
type itemRecord struct {
	ID         int64          `gorm:"primaryKey;column:id;autoIncrement"`
	Name       string         `gorm:"column:name;index"`
	Price      int64          `gorm:"column:price"`
	Stock      int            `gorm:"column:stock_quantity"`
	Categories pq.StringArray `gorm:"column:categories;type:text[]"`
	Kind       string         `gorm:"column:kind;type:varchar(16);index"`
	Author     string         `gorm:"column:author"`
	ISBN       string         `gorm:"column:isbn"`
	CreatedAt  time.Time      `gorm:"column:created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at"`
}

func (itemRecord) TableName() string { return "items" }

// Save inserts or updates an item by identifier.
func (r *Repository) Save(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errors.New("item is nil")
	}
	record := toRecord(item)
	db := platformpostgres.FromContext(ctx, r.db)
	if err := db.WithContext(ctx).Save(&record).Error; err != nil {
		return nil, err
	}
	item.ID = record.ID
	return record.toDomain(), nil
}

// GetByID fetches an item by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record itemRecord
	db := platformpostgres.FromContext(ctx, r.db)
	if err := db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns all items.
func (r *Repository) List(ctx context.Context) ([]*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []itemRecord
	db := platformpostgres.FromContext(ctx, r.db)
	if err := db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	items := make([]*domain.Item, 0, len(records))
	for i := range records {
		items = append(items, records[i].toDomain())
	}
	return items, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres item repository not configured")
	}
	return nil
}

func toRecord(item *domain.Item) itemRecord {
	return itemRecord{
		ID:         item.ID,
		Name:       item.Name,
		Price:      item.Price,
		Stock:      item.Stock,
		Categories: pq.StringArray(item.Categories),
		Kind:       string(item.Kind),
		Author:     item.Author,
		ISBN:       item.ISBN,
	}
}

func (r itemRecord) toDomain() *domain.Item {
	return &domain.Item{
		ID:         r.ID,
		Name:       r.Name,
		Price:      r.Price,
		Stock:      r.Stock,
		Categories: []string(r.Categories),
		Kind:       domain.Kind(r.Kind),
		Author:     r.Author,
		ISBN:       r.ISBN,
	}
}
