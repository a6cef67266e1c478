package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rafaelleal24/aceitera/internal/adapters/config"
	"github.com/rafaelleal24/aceitera/internal/adapters/http"
	"github.com/rafaelleal24/aceitera/internal/adapters/http/controllers"
	"github.com/rafaelleal24/aceitera/internal/adapters/http/middleware"
	"github.com/rafaelleal24/aceitera/internal/adapters/kafka"
	"github.com/rafaelleal24/aceitera/internal/adapters/memory"
	"github.com/rafaelleal24/aceitera/internal/adapters/mongo"
	"github.com/rafaelleal24/aceitera/internal/adapters/mongo/repository"
	"github.com/rafaelleal24/aceitera/internal/adapters/outbox"
	"github.com/rafaelleal24/aceitera/internal/adapters/postgres"
	"github.com/rafaelleal24/aceitera/internal/adapters/rabbitmq"
	"github.com/rafaelleal24/aceitera/internal/adapters/redis"
	"github.com/rafaelleal24/aceitera/internal/core/domain"
	"github.com/rafaelleal24/aceitera/internal/core/logger"
	"github.com/rafaelleal24/aceitera/internal/core/port"
	"github.com/rafaelleal24/aceitera/internal/core/service"

	_ "github.com/rafaelleal24/aceitera/docs"
)

// @title       Aceitera API
// @version     1.0
// @description Inventory and sales API for a small cooking-oil retailer

// @host     localhost:8080
// @BasePath /

//go:generate swag init -d ../.. -g cmd/http/main.go -o ../../docs --parseInternal

// stores bundles the persistence adapters of one driver.
type stores struct {
	products  port.ProductPort
	sales     port.SalePort
	outbox    outbox.Repository
	txManager port.TransactionManager
	health    controllers.HealthChecker
	close     func()
}

type caches struct {
	sales       port.CachePort[domain.Sale]
	idempotency port.CachePort[service.IdempotencyEntry[domain.Sale]]
	rateLimiter middleware.RateLimiter
	health      *controllers.HealthChecker
	close       func()
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.Store.Driver {
	case config.StoreMongo:
		client, err := mongo.NewConnection(cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("connect to mongodb: %w", err)
		}
		logger.Info(ctx, "Connected to MongoDB", map[string]any{"database": cfg.Mongo.Database})

		database := client.Database(cfg.Mongo.Database)
		return &stores{
			products:  repository.NewProductRepository(database),
			sales:     repository.NewSaleRepository(database),
			outbox:    repository.NewOutboxRepository(database),
			txManager: mongo.NewTransactionManager(client),
			health: controllers.HealthChecker{Name: "store", Check: func(ctx context.Context) error {
				return client.Ping(ctx, nil)
			}},
			close: func() { _ = mongo.Disconnect(client) },
		}, nil

	case config.StorePostgres:
		if cfg.Postgres.RunMigrations {
			if err := postgres.RunMigrations(cfg.Postgres.DSN); err != nil {
				return nil, fmt.Errorf("migrate postgres: %w", err)
			}
		}
		pool, err := postgres.NewConnection(cfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		logger.Info(ctx, "Connected to Postgres", nil)

		return &stores{
			products:  postgres.NewProductRepository(pool),
			sales:     postgres.NewSaleRepository(pool),
			outbox:    postgres.NewOutboxRepository(pool),
			txManager: postgres.NewTransactionManager(pool),
			health:    controllers.HealthChecker{Name: "store", Check: pool.Ping},
			close:     pool.Close,
		}, nil

	case config.StoreMemory:
		store := memory.NewStore()
		logger.Warn(ctx, "Using in-memory store, data is lost on restart", nil)
		return &stores{
			products:  memory.NewProductRepository(store),
			sales:     memory.NewSaleRepository(store),
			outbox:    memory.NewOutboxRepository(store),
			txManager: memory.NewTransactionManager(store),
			health:    controllers.HealthChecker{Name: "store", Check: func(context.Context) error { return nil }},
			close:     func() {},
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

func openCaches(ctx context.Context, cfg *config.Config) (*caches, error) {
	switch cfg.Redis.Driver {
	case config.CacheRedis:
		client, err := redis.NewConnection(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		logger.Info(ctx, "Connected to Redis", nil)

		return &caches{
			sales:       redis.NewCache[domain.Sale](client, "sale-cache"),
			idempotency: redis.NewCache[service.IdempotencyEntry[domain.Sale]](client, "idempotency-cache"),
			rateLimiter: redis.NewRateLimiter(client),
			health:      &controllers.HealthChecker{Name: "cache", Check: client.Ping},
			close:       func() { _ = client.Close() },
		}, nil

	case config.CacheMemory:
		limiter := memory.NewRateLimiter()
		sales := memory.NewCache[domain.Sale]("sale-cache")
		idempotency := memory.NewCache[service.IdempotencyEntry[domain.Sale]]("idempotency-cache")
		go limiter.StartCleanup(ctx, time.Minute)
		go sales.StartCleanup(ctx, time.Minute)
		go idempotency.StartCleanup(ctx, time.Minute)
		return &caches{
			sales:       sales,
			idempotency: idempotency,
			rateLimiter: limiter,
			close:       func() {},
		}, nil
	}
	return nil, fmt.Errorf("unknown cache driver %q", cfg.Redis.Driver)
}

func openBroker(ctx context.Context, cfg *config.Config) (port.BrokerPort, error) {
	switch cfg.Broker.Driver {
	case config.BrokerRabbitMQ:
		broker, err := rabbitmq.NewPublisher(cfg.RabbitMQ)
		if err != nil {
			return nil, fmt.Errorf("connect to rabbitmq: %w", err)
		}
		logger.Info(ctx, "Connected to RabbitMQ", nil)
		return broker, nil
	case config.BrokerKafka:
		broker, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			return nil, fmt.Errorf("create kafka producer: %w", err)
		}
		logger.Info(ctx, "Kafka producer ready", map[string]any{"brokers": cfg.Kafka.Brokers})
		return broker, nil
	case config.BrokerLog:
		logger.Warn(ctx, "Using log broker, events are not delivered", nil)
		return memory.NewLogBroker(), nil
	}
	return nil, fmt.Errorf("unknown broker driver %q", cfg.Broker.Driver)
}

func main() {
	// initialize config and logger
	cfg := config.NewConfig()
	if err := logger.Initialize(logger.Options{
		CollectorEndpoint: cfg.Logger.Endpoint,
		ServiceName:       cfg.Logger.ServiceName,
		IsProduction:      cfg.Logger.IsProduction,
		Verbose:           cfg.Logger.Verbose,
		Level:             cfg.Logger.Level,
		Format:            cfg.Logger.Format,
	}); err != nil {
		// logger not available yet, fall back to stderr
		fmt.Fprintln(os.Stderr, "failed to initialize logger: "+err.Error())
		os.Exit(1)
	}

	deletePolicy := service.DeletePolicy(cfg.Sales.DeletePolicy)
	if !deletePolicy.IsValid() {
		fmt.Fprintf(os.Stderr, "invalid PRODUCT_DELETE_POLICY %q\n", cfg.Sales.DeletePolicy)
		os.Exit(1)
	}

	// cancellable context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := openStores(ctx, cfg)
	if err != nil {
		logger.Fatal(ctx, "Failed to open store", err, map[string]any{"driver": cfg.Store.Driver})
	}
	defer st.close()

	ca, err := openCaches(ctx, cfg)
	if err != nil {
		logger.Fatal(ctx, "Failed to open cache", err, map[string]any{"driver": cfg.Redis.Driver})
	}
	defer ca.close()

	broker, err := openBroker(ctx, cfg)
	if err != nil {
		logger.Fatal(ctx, "Failed to open broker", err, map[string]any{"driver": cfg.Broker.Driver})
	}
	defer broker.Close()

	// outbox handler (uses cancellable context)
	outboxHandler := outbox.NewHandler(st.outbox, broker, cfg.Outbox)
	go outboxHandler.Start(ctx)
	logger.Info(ctx, "Outbox handler started", map[string]any{"interval": cfg.Outbox.Interval.String(), "batch_size": cfg.Outbox.BatchSize})

	// services
	outboxWriter := outbox.NewWriter(st.outbox)
	productService := service.NewProductService(st.products, st.sales, outboxWriter, ca.sales, st.txManager, deletePolicy)
	idempotencyService := service.NewIdempotencyService(ca.idempotency, cfg.Sales.IdempotencyTTL, cfg.Sales.IdempotencyPoll, cfg.Sales.IdempotencyPollTimeout)
	saleService := service.NewSaleService(st.sales, productService, outboxWriter, broker, ca.sales, idempotencyService, st.txManager,
		service.SaleOptions{RecordTotals: cfg.Sales.RecordTotals, MaxQuantity: cfg.Sales.MaxQuantity})

	// controllers
	checkers := []controllers.HealthChecker{st.health}
	if ca.health != nil {
		checkers = append(checkers, *ca.health)
	}
	checkers = append(checkers, controllers.HealthChecker{Name: "broker", Check: broker.Ping})
	healthController := controllers.NewHealthController(checkers)
	productController := controllers.NewProductController(productService)
	saleController := controllers.NewSaleController(saleService)

	router := http.NewRouter(healthController, productController, saleController, ca.rateLimiter, cfg.HTTP)

	// graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info(ctx, "Received shutdown signal", map[string]any{"signal": sig.String()})
		cancel()
	}()

	logger.Info(ctx, "Starting HTTP server", map[string]any{
		"addr":          cfg.HTTP.BindInterface + ":" + cfg.HTTP.Port,
		"store":         cfg.Store.Driver,
		"cache":         cfg.Redis.Driver,
		"broker":        cfg.Broker.Driver,
		"delete_policy": string(deletePolicy),
		"record_totals": cfg.Sales.RecordTotals,
	})
	if err := router.ListenAndServe(ctx); err != nil {
		logger.Fatal(ctx, "Failed to start HTTP server", err, nil)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := logger.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintln(os.Stderr, "logger shutdown error: "+err.Error())
	}
}
