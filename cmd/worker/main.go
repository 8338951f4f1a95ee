package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	catalogmemory "github.com/shopfront/order-api/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/shopfront/order-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogports "github.com/shopfront/order-api/internal/domains/catalog/ports"
	membermemory "github.com/shopfront/order-api/internal/domains/members/adapters/memory"
	memberpostgres "github.com/shopfront/order-api/internal/domains/members/adapters/persistence/postgres"
	memberports "github.com/shopfront/order-api/internal/domains/members/ports"
	ordermemory "github.com/shopfront/order-api/internal/domains/orders/adapters/memory"
	orderobs "github.com/shopfront/order-api/internal/domains/orders/adapters/observability"
	orderpostgres "github.com/shopfront/order-api/internal/domains/orders/adapters/persistence/postgres"
	orderapp "github.com/shopfront/order-api/internal/domains/orders/application"
	orderports "github.com/shopfront/order-api/internal/domains/orders/ports"
	orderactivities "github.com/shopfront/order-api/internal/durable/temporal/activities/orders"
	orderworkflows "github.com/shopfront/order-api/internal/durable/temporal/workflows/orders"
	platformobservability "github.com/shopfront/order-api/internal/platform/observability"
	platformpostgres "github.com/shopfront/order-api/internal/platform/postgres"
)

func main() {
	ctx := context.Background()
	const serviceName = "order-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	orderRepo, memberRepo, itemRepo, transactor, cleanupRepo := buildRepositories(ctx, logger)
	defer cleanupRepo()
	orderService := orderobs.New(
		orderapp.NewService(orderRepo, memberRepo, itemRepo, transactor),
		orderobs.WithLogger(logger),
		orderobs.WithTracer(instruments.Tracer("internal.orders.application")),
		orderobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	activities := orderactivities.NewActivities(orderService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderPlacementTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderPlacementWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderPlacementWorkflowName})
	w.RegisterActivityWithOptions(activities.PlaceOrder, activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderPlacementTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildRepositories(ctx context.Context, logger *slog.Logger) (orderports.Repository, memberports.Repository, catalogports.Repository, orderports.Transactor, func()) {
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	if db == nil {
		items := catalogmemory.NewRepository()
		return ordermemory.NewRepository(items), membermemory.NewRepository(), items, ordermemory.NewTransactor(), cleanup
	}
	logger.Info("worker repositories configured with postgres")
	return orderpostgres.NewRepository(db), memberpostgres.NewRepository(db), catalogpostgres.NewRepository(db), platformpostgres.NewTransactor(db), cleanup
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
