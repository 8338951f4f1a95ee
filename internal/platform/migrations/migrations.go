package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&memberRecord{},
		&itemRecord{},
		&orderRecord{},
		&deliveryRecord{},
		&orderLineRecord{},
	)
}

// Member schema mirrors the members Postgres adapter.
type memberRecord struct {
	ID        int64     `gorm:"primaryKey;column:id;autoIncrement"`
	Name      string    `gorm:"column:name;uniqueIndex"`
	City      string    `gorm:"column:city"`
	Street    string    `gorm:"column:street"`
	Zipcode   string    `gorm:"column:zipcode"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (memberRecord) TableName() string { return "members" }

// Item schema mirrors the catalog Postgres adapter.
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

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID        int64     `gorm:"primaryKey;column:id;autoIncrement"`
	MemberID  int64     `gorm:"column:member_id;index"`
	OrderedAt time.Time `gorm:"column:ordered_at;index"`
	Status    string    `gorm:"column:status;type:varchar(16);index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
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
}

func (orderLineRecord) TableName() string { return "order_items" }
