package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"toonpass/internal/audit"
	audithandler "toonpass/internal/audit/handler"
	cataloghandler "toonpass/internal/catalog/handler"
	catalogservice "toonpass/internal/catalog/service"
	catalogstore "toonpass/internal/catalog/store"
	"toonpass/internal/entitlement/adapters"
	entitlementhandler "toonpass/internal/entitlement/handler"
	entitlementmetrics "toonpass/internal/entitlement/metrics"
	entitlementservice "toonpass/internal/entitlement/service"
	entitlementstore "toonpass/internal/entitlement/store"
	"toonpass/internal/platform/config"
	"toonpass/internal/platform/database"
	"toonpass/internal/platform/health"
	redisclient "toonpass/internal/platform/redis"
	pointshandler "toonpass/internal/points/handler"
	pointsmetrics "toonpass/internal/points/metrics"
	pointsservice "toonpass/internal/points/service"
	pointsstore "toonpass/internal/points/store"
	readerhandler "toonpass/internal/reader/handler"
	readerservice "toonpass/internal/reader/service"
	readerstore "toonpass/internal/reader/store"
	"toonpass/internal/seeder"
	httptransport "toonpass/internal/transport/http"
	"toonpass/pkg/platform/clock"
	"toonpass/pkg/platform/middleware/request"
	platformsync "toonpass/pkg/platform/sync"
	"toonpass/pkg/platform/tracer"
)

const auditBufferSize = 256

// app holds the wired services and the HTTP handler of one process.
type app struct {
	cfg    config.Server
	logger *slog.Logger

	pool    *database.Pool
	redis   *redisclient.Client
	auditor *audit.Publisher

	readers      *readerservice.Service
	catalog      *catalogservice.Service
	entitlements *entitlementservice.Service
	points       *pointsservice.Service

	handler http.Handler
}

// appDeps carries what differs between the binary and tests.
type appDeps struct {
	clock      clock.Clock
	registerer prometheus.Registerer
	gatherer   prometheus.Gatherer
}

func defaultDeps() appDeps {
	return appDeps{
		clock:      clock.System{},
		registerer: prometheus.DefaultRegisterer,
		gatherer:   prometheus.DefaultGatherer,
	}
}

// readerStore is the union of what the reader, entitlement and points
// services need from the reader table.
type readerStore interface {
	readerservice.Store
	entitlementservice.ReaderStore
	pointsservice.ReaderStore
}

// stores groups the store implementations chosen by configuration.
type stores struct {
	readers   readerStore
	catalog   catalogservice.Store
	rentals   entitlementservice.RentalStore
	purchases entitlementservice.PurchaseStore
	payments  pointsservice.PaymentStore
	audit     audit.Store
}

func buildStores(pool *database.Pool) stores {
	if pool == nil {
		return stores{
			readers:   readerstore.NewInMemory(),
			catalog:   catalogstore.NewInMemory(),
			rentals:   entitlementstore.NewInMemoryRentals(),
			purchases: entitlementstore.NewInMemoryPurchases(),
			payments:  pointsstore.NewInMemory(),
			audit:     audit.NewInMemoryStore(),
		}
	}
	db := database.Bind(pool.DB(), pool.Dialect())
	return stores{
		readers:   readerstore.NewPostgres(db, pool.Dialect()),
		catalog:   catalogstore.NewPostgres(db),
		rentals:   entitlementstore.NewPostgresRentals(db),
		purchases: entitlementstore.NewPostgresPurchases(db),
		payments:  pointsstore.NewPostgres(db),
		audit:     audit.NewPostgresStore(db),
	}
}

// openPool connects and migrates the configured database. It returns nil
// when neither Postgres nor SQLite is configured.
func openPool(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*database.Pool, error) {
	pool, err := database.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if pool == nil {
		logger.Info("no database configured, using in-memory stores")
		return nil, nil
	}
	applied, err := database.Migrate(ctx, pool.DB(), pool.Dialect())
	if err != nil {
		pool.Close() //nolint:errcheck // best-effort cleanup on init failure
		return nil, fmt.Errorf("migrate: %w", err)
	}
	logger.Info("database ready", "dialect", string(pool.Dialect()), "migrations", len(applied))
	return pool, nil
}

func buildApp(ctx context.Context, cfg config.Server, logger *slog.Logger, deps appDeps) (*app, error) {
	pool, err := openPool(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	if pool != nil {
		if err := deps.registerer.Register(pool.Collector()); err != nil {
			pool.Close() //nolint:errcheck // best-effort cleanup on init failure
			return nil, fmt.Errorf("register database metrics: %w", err)
		}
	}
	rdb, err := redisclient.New(ctx, cfg.Redis, redisclient.WithMetrics(deps.registerer))
	if err != nil {
		pool.Close() //nolint:errcheck // best-effort cleanup on init failure
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, pool: pool, redis: rdb}
	st := buildStores(pool)

	auditOpts := []audit.PublisherOption{
		audit.WithPublisherClock(deps.clock),
		audit.WithPublisherMetrics(deps.registerer),
	}
	if pool != nil {
		auditOpts = append(auditOpts, audit.WithAsyncBuffer(auditBufferSize), audit.WithPublisherLogger(logger))
	}
	a.auditor = audit.NewPublisher(st.audit, auditOpts...)

	// Grants and top-ups share one lock so a reader's wallet has a single writer.
	var locker entitlementservice.Locker = platformsync.NewShardedMutex()
	if rdb != nil {
		locker = redisclient.NewLocker(rdb.Client, cfg.Redis.LockTTL)
		logger.Info("grant lock backed by redis", "ttl", cfg.Redis.LockTTL)
	}

	readers := st.readers
	a.readers = readerservice.New(readers,
		readerservice.WithLogger(logger),
		readerservice.WithAuditPublisher(a.auditor),
		readerservice.WithClock(deps.clock),
	)

	episodes := adapters.NewCatalogAdapter(st.catalog, cfg.Catalog.CacheSize, cfg.Catalog.CacheTTL)
	a.catalog = catalogservice.New(st.catalog,
		catalogservice.WithLogger(logger),
		catalogservice.WithAuditPublisher(a.auditor),
		catalogservice.WithClock(deps.clock),
		catalogservice.WithPriceChangeHook(episodes.Invalidate),
	)

	entitlementOpts := []entitlementservice.Option{
		entitlementservice.WithLocker(locker),
		entitlementservice.WithClock(deps.clock),
		entitlementservice.WithTracer(tracer.NewOTel("toonpass/entitlement")),
		entitlementservice.WithLogger(logger),
		entitlementservice.WithAuditPublisher(a.auditor),
		entitlementservice.WithMetrics(entitlementmetrics.NewWithRegisterer(deps.registerer)),
	}
	pointsOpts := []pointsservice.Option{
		pointsservice.WithLocker(locker),
		pointsservice.WithClock(deps.clock),
		pointsservice.WithTracer(tracer.NewOTel("toonpass/points")),
		pointsservice.WithLogger(logger),
		pointsservice.WithAuditPublisher(a.auditor),
		pointsservice.WithMetrics(pointsmetrics.NewWithRegisterer(deps.registerer)),
	}
	if pool != nil {
		entitlementOpts = append(entitlementOpts, entitlementservice.WithStoreTx(newEntitlementSQLTx(pool)))
		pointsOpts = append(pointsOpts, pointsservice.WithStoreTx(newPointsSQLTx(pool)))
	}

	a.entitlements = entitlementservice.New(episodes, entitlementservice.Stores{
		Readers:   readers,
		Rentals:   st.rentals,
		Purchases: st.purchases,
	}, entitlementOpts...)
	a.points = pointsservice.New(pointsservice.Stores{
		Readers:  readers,
		Payments: st.payments,
	}, pointsOpts...)

	probes := health.NewWithClock(cfg.Environment, deps.clock)
	if pool != nil {
		probes.RegisterCheck("database", pool.Health)
	}
	if rdb != nil {
		probes.RegisterCheck("redis", rdb.Health)
	}

	a.handler = httptransport.NewRouter(httptransport.Config{
		Logger:         logger,
		Clock:          deps.clock,
		Metrics:        request.NewMetricsWithRegisterer(deps.registerer),
		MetricsHandler: promhttp.HandlerFor(deps.gatherer, promhttp.HandlerOpts{}),
		Health:         probes,
	},
		readerhandler.New(a.readers, logger),
		cataloghandler.New(a.catalog, logger),
		entitlementhandler.New(a.entitlements, logger, deps.clock),
		pointshandler.New(a.points, logger),
		audithandler.New(a.auditor, logger),
	)
	return a, nil
}

// seed populates demo readers and episodes unless readers already exist.
func (a *app) seed(ctx context.Context) (*seeder.Result, error) {
	return seeder.New(a.readers, a.catalog, a.logger).SeedAll(ctx)
}

// Close flushes the audit publisher and releases connections.
func (a *app) Close() {
	a.auditor.Close()
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis client", "error", err)
		}
	}
	if err := a.pool.Close(); err != nil {
		a.logger.Warn("failed to close database pool", "error", err)
	}
}
