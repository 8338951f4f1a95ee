// Package api assembles the order API process: observability, repositories,
// services, projections, workflows, and the HTTP router.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	catalogmemory "github.com/shopfront/order-api/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/shopfront/order-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/shopfront/order-api/internal/domains/catalog/application"
	catalogports "github.com/shopfront/order-api/internal/domains/catalog/ports"
	membermemory "github.com/shopfront/order-api/internal/domains/members/adapters/memory"
	memberpostgres "github.com/shopfront/order-api/internal/domains/members/adapters/persistence/postgres"
	memberapp "github.com/shopfront/order-api/internal/domains/members/application"
	memberports "github.com/shopfront/order-api/internal/domains/members/ports"
	orderhttp "github.com/shopfront/order-api/internal/domains/orders/adapters/http"
	ordermemory "github.com/shopfront/order-api/internal/domains/orders/adapters/memory"
	orderobs "github.com/shopfront/order-api/internal/domains/orders/adapters/observability"
	orderpostgres "github.com/shopfront/order-api/internal/domains/orders/adapters/persistence/postgres"
	orderworkflows "github.com/shopfront/order-api/internal/domains/orders/adapters/workflows"
	orderapp "github.com/shopfront/order-api/internal/domains/orders/application"
	orderports "github.com/shopfront/order-api/internal/domains/orders/ports"
	platformobservability "github.com/shopfront/order-api/internal/platform/observability"
	platformpostgres "github.com/shopfront/order-api/internal/platform/postgres"
)

// Run boots the order HTTP API with observability, repositories, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "order-api"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	storage, cleanupStorage := buildStores(ctx, cfg, logger)
	defer cleanupStorage()

	coreOrderService := orderapp.NewService(storage.orders, storage.members, storage.items, storage.tx)
	orderService := orderobs.New(
		coreOrderService,
		orderobs.WithLogger(logger),
		orderobs.WithTracer(instruments.Tracer("internal.orders.application")),
		orderobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	var orderWorkflowOrchestrator orderports.WorkflowOrchestrator = orderworkflows.NewInlineOrderWorkflows(orderService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running inline PlaceOrder", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderWorkflowOrchestrator = orderworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}
	memberService := memberapp.NewService(storage.members)
	itemService := catalogapp.NewService(storage.items)
	if err := seedSampleData(ctx, memberService, itemService, orderWorkflowOrchestrator); err != nil {
		logger.Warn("failed to seed sample data", slog.String("error", err.Error()))
	}

	handler := orderhttp.NewHandler(orderService, buildViews(storage))
	router := gin.Default()
	router.Use(otelgin.Middleware(serviceName))
	handler.Register(router)

	addr := ":" + cfg.Port
	logger.Info("order API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("order API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// stores groups the per-context repositories behind one storage choice.
type stores struct {
	db      *gorm.DB
	members memberports.Repository
	items   catalogports.Repository
	orders  orderports.Repository
	tx      orderports.Transactor
}

// buildStores connects to postgres when POSTGRES_DSN is set, falling back to
// the in-memory adapters otherwise. All contexts share the one choice so an
// order never references a member or item from another store.
func buildStores(ctx context.Context, cfg Config, logger *slog.Logger) (stores, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return memoryStores(), func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return memoryStores(), func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to memory", slog.String("error", err.Error()))
		return memoryStores(), func() {}
	}
	logger.Info("repositories configured with postgres")
	return stores{
		db:      db,
		members: memberpostgres.NewRepository(db),
		items:   catalogpostgres.NewRepository(db),
		orders:  orderpostgres.NewRepository(db),
		tx:      platformpostgres.NewTransactor(db),
	}, func() { _ = sqlDB.Close() }
}

func memoryStores() stores {
	items := catalogmemory.NewRepository()
	return stores{
		members: membermemory.NewRepository(),
		items:   items,
		orders:  ordermemory.NewRepository(items),
		tx:      ordermemory.NewTransactor(),
	}
}

// buildViews maps each listing route to its projection strategy. Without
// postgres every route is served by the entity strategy over the memory
// repository; the flat join route still refuses offset/limit windows.
func buildViews(s stores) map[orderhttp.Strategy]orderports.OrderViews {
	entity := orderapp.NewEntityViews(s.orders)
	if s.db == nil {
		return map[orderhttp.Strategy]orderports.OrderViews{
			orderhttp.StrategyEntity:   entity,
			orderhttp.StrategyPerOrder: entity,
			orderhttp.StrategyBatched:  entity,
			orderhttp.StrategyFlatJoin: orderapp.WithoutPagination(entity),
		}
	}
	return map[orderhttp.Strategy]orderports.OrderViews{
		orderhttp.StrategyEntity:   entity,
		orderhttp.StrategyPerOrder: orderpostgres.NewPerOrderViews(s.db),
		orderhttp.StrategyBatched:  orderpostgres.NewBatchedViews(s.db),
		orderhttp.StrategyFlatJoin: orderpostgres.NewFlatJoinViews(s.db),
	}
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(instruments.Logger),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}
