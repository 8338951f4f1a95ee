package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	platformpostgres "github.com/shopfront/order-api/internal/platform/postgres"

	"github.com/shopfront/order-api/internal/domains/members/domain"
	"github.com/shopfront/order-api/internal/domains/members/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists members in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&memberRecord{})
	}
	return repo
}

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

// Save inserts or updates a member keyed by identifier.
func (r *Repository) Save(ctx context.Context, member *domain.Member) (*domain.Member, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if member == nil {
		return nil, errors.New("member is nil")
	}
	record := toRecord(member)
	db := platformpostgres.FromContext(ctx, r.db)
	if err := db.WithContext(ctx).Save(&record).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ports.ErrDuplicateName
		}
		return nil, err
	}
	member.ID = record.ID
	return record.toDomain(), nil
}

// GetByID fetches a member by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Member, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record memberRecord
	db := platformpostgres.FromContext(ctx, r.db)
	if err := db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// FindByName fetches a member by exact name.
func (r *Repository) FindByName(ctx context.Context, name string) (*domain.Member, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record memberRecord
	db := platformpostgres.FromContext(ctx, r.db)
	if err := db.WithContext(ctx).First(&record, "name = ?", strings.TrimSpace(name)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns all members.
func (r *Repository) List(ctx context.Context) ([]*domain.Member, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []memberRecord
	db := platformpostgres.FromContext(ctx, r.db)
	if err := db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	members := make([]*domain.Member, 0, len(records))
	for i := range records {
		members = append(members, records[i].toDomain())
	}
	return members, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres member repository not configured")
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate key value")
}

func toRecord(member *domain.Member) memberRecord {
	return memberRecord{
		ID:      member.ID,
		Name:    member.Name,
		City:    member.Address.City,
		Street:  member.Address.Street,
		Zipcode: member.Address.Zipcode,
	}
}

func (r memberRecord) toDomain() *domain.Member {
	return &domain.Member{
		ID:      r.ID,
		Name:    r.Name,
		Address: domain.Address{City: r.City, Street: r.Street, Zipcode: r.Zipcode},
	}
}
