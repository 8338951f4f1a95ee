//go:build integration

package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	catalogpg "github.com/shopfront/order-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogdomain "github.com/shopfront/order-api/internal/domains/catalog/domain"
	memberspg "github.com/shopfront/order-api/internal/domains/members/adapters/persistence/postgres"
	memberdomain "github.com/shopfront/order-api/internal/domains/members/domain"
	"github.com/shopfront/order-api/internal/domains/orders/application"
	"github.com/shopfront/order-api/internal/domains/orders/domain"
	"github.com/shopfront/order-api/internal/domains/orders/ports"
	"github.com/shopfront/order-api/internal/platform/migrations"
)

func setupOrdersPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("shopfront_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

type fixture struct {
	repo    *Repository
	members []*memberdomain.Member
	items   []*catalogdomain.Item
	orders  []*domain.Order
}

// seedOrders inserts n members each placing one two-line order.
func seedOrders(t *testing.T, db *gorm.DB, n int) fixture {
	t.Helper()
	ctx := context.Background()
	memberRepo := memberspg.NewRepository(db)
	itemRepo := catalogpg.NewRepository(db)
	repo := NewRepository(db)

	f := fixture{repo: repo}
	for i := 0; i < n; i++ {
		member, err := memberdomain.NewMember(
			fmt.Sprintf("member%d", i+1),
			memberdomain.NewAddress("Seoul", fmt.Sprintf("street %d", i+1), "04524"),
		)
		require.NoError(t, err)
		member, err = memberRepo.Save(ctx, member)
		require.NoError(t, err)

		book, err := catalogdomain.NewBook(fmt.Sprintf("JPA vol.%d", i+1), 10000, 100, "Kim", "11111")
		require.NoError(t, err)
		book, err = itemRepo.Save(ctx, book)
		require.NoError(t, err)
		album, err := catalogdomain.NewItem(fmt.Sprintf("Album %d", i+1), 20000, 100)
		require.NoError(t, err)
		album, err = itemRepo.Save(ctx, album)
		require.NoError(t, err)

		lineBook, err := domain.NewOrderItem(book, book.Price, 1)
		require.NoError(t, err)
		lineAlbum, err := domain.NewOrderItem(album, album.Price, 2)
		require.NoError(t, err)
		order, err := domain.NewOrder(member, domain.NewDelivery(member.Address), lineBook, lineAlbum)
		require.NoError(t, err)
		order, err = repo.Save(ctx, order)
		require.NoError(t, err)

		f.members = append(f.members, member)
		f.items = append(f.items, book, album)
		f.orders = append(f.orders, order)
	}
	return f
}

func TestRepository_SaveAndFindOne(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	f := seedOrders(t, db, 1)
	ctx := context.Background()
	placed := f.orders[0]

	fetched, err := f.repo.FindOne(ctx, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, placed.ID, fetched.ID)
	assert.Equal(t, domain.StatusOrdered, fetched.Status)
	assert.Equal(t, f.members[0].Name, fetched.Member.Name)
	assert.Equal(t, f.members[0].Address, fetched.Delivery.Address)
	require.Len(t, fetched.Lines, 2)
	assert.Equal(t, int64(50000), fetched.TotalPrice())

	_, err = f.repo.FindOne(ctx, placed.ID+999)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_CancelRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	f := seedOrders(t, db, 1)
	ctx := context.Background()

	fetched, err := f.repo.FindOne(ctx, f.orders[0].ID)
	require.NoError(t, err)
	require.NoError(t, fetched.Cancel())
	_, err = f.repo.Save(ctx, fetched)
	require.NoError(t, err)

	again, err := f.repo.FindOne(ctx, f.orders[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, again.Status)
}

func TestRepository_SearchFilters(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	f := seedOrders(t, db, 3)
	ctx := context.Background()

	cancelled, err := f.repo.FindOne(ctx, f.orders[0].ID)
	require.NoError(t, err)
	require.NoError(t, cancelled.Cancel())
	_, err = f.repo.Save(ctx, cancelled)
	require.NoError(t, err)

	active, err := f.repo.FindAll(ctx, ports.Search{Status: domain.StatusOrdered})
	require.NoError(t, err)
	assert.Len(t, active, 2)

	// member1 matches member1 only, not member2 or member3
	byName, err := f.repo.FindAll(ctx, ports.Search{MemberName: "member1"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "member1", byName[0].Member.Name)
}

func TestRepository_PaginationAndLoadLines(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	f := seedOrders(t, db, 5)
	ctx := context.Background()

	window, err := f.repo.FindAllWithMemberDelivery(ctx, ports.Search{}, ports.Page{Offset: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, window, 2)
	assert.Equal(t, f.orders[1].ID, window[0].ID)
	assert.Equal(t, f.orders[2].ID, window[1].ID)
	assert.Empty(t, window[0].Lines)

	require.NoError(t, f.repo.LoadLines(ctx, window[0]))
	require.Len(t, window[0].Lines, 2)
	assert.Equal(t, window[0], window[0].Lines[0].Order())
}

func TestRepository_FindAllWithLines(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	f := seedOrders(t, db, 3)
	ctx := context.Background()

	orders, err := f.repo.FindAllWithLines(ctx, ports.Search{})
	require.NoError(t, err)
	require.Len(t, orders, 3)
	for _, order := range orders {
		assert.Len(t, order.Lines, 2)
		assert.Equal(t, int64(50000), order.TotalPrice())
	}
}

func TestRepository_CompleteDeliveriesBefore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	f := seedOrders(t, db, 3)
	ctx := context.Background()

	changed, err := f.repo.CompleteDeliveriesBefore(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(3), changed)

	// second pass finds nothing READY
	changed, err = f.repo.CompleteDeliveriesBefore(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(0), changed)

	fetched, err := f.repo.FindOne(ctx, f.orders[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DeliveryCompleted, fetched.Delivery.Status)
}

func TestViews_StrategiesAgree(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	f := seedOrders(t, db, 4)
	ctx := context.Background()

	cancelled, err := f.repo.FindOne(ctx, f.orders[3].ID)
	require.NoError(t, err)
	require.NoError(t, cancelled.Cancel())
	_, err = f.repo.Save(ctx, cancelled)
	require.NoError(t, err)

	strategies := map[string]ports.OrderViews{
		"entity":   application.NewEntityViews(f.repo),
		"perOrder": NewPerOrderViews(db),
		"batched":  NewBatchedViews(db),
		"flatJoin": NewFlatJoinViews(db),
	}

	queries := map[string]ports.ViewQuery{
		"all":      {},
		"ordered":  {Search: ports.Search{Status: domain.StatusOrdered}},
		"byMember": {Search: ports.Search{MemberName: "member2"}},
	}

	for queryName, query := range queries {
		baseline, err := strategies["entity"].ListOrders(ctx, query)
		require.NoError(t, err)
		for name, strategy := range strategies {
			got, err := strategy.ListOrders(ctx, query)
			require.NoError(t, err, "%s/%s", name, queryName)
			assert.ElementsMatch(t, baseline, got, "%s/%s", name, queryName)
		}
	}
}

func TestViews_Pagination(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	f := seedOrders(t, db, 5)
	ctx := context.Background()

	page := &ports.Page{Offset: 2, Limit: 2}
	query := ports.ViewQuery{Page: page}

	for name, strategy := range map[string]ports.OrderViews{
		"entity":   application.NewEntityViews(f.repo),
		"perOrder": NewPerOrderViews(db),
		"batched":  NewBatchedViews(db),
	} {
		got, err := strategy.ListOrders(ctx, query)
		require.NoError(t, err, name)
		require.Len(t, got, 2, name)
		assert.Equal(t, f.orders[2].ID, got[0].OrderID, name)
		assert.Equal(t, f.orders[3].ID, got[1].OrderID, name)
		require.Len(t, got[0].Lines, 2, name)
	}

	_, err := NewFlatJoinViews(db).ListOrders(ctx, query)
	assert.ErrorIs(t, err, ports.ErrPaginationUnsupported)
}
