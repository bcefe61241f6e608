package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/Sule971/luxe-vogue-boutique/internal/apiclient"
	"github.com/Sule971/luxe-vogue-boutique/internal/catalog"
	"github.com/Sule971/luxe-vogue-boutique/internal/config"
	"github.com/Sule971/luxe-vogue-boutique/internal/event"
	handler "github.com/Sule971/luxe-vogue-boutique/internal/handler/http"
	"github.com/Sule971/luxe-vogue-boutique/internal/navigation"
	"github.com/Sule971/luxe-vogue-boutique/internal/notify"
	"github.com/Sule971/luxe-vogue-boutique/internal/repository"
	"github.com/Sule971/luxe-vogue-boutique/internal/repository/memory"
	pgrepo "github.com/Sule971/luxe-vogue-boutique/internal/repository/postgres"
	redisrepo "github.com/Sule971/luxe-vogue-boutique/internal/repository/redis"
	"github.com/Sule971/luxe-vogue-boutique/internal/service"
	"github.com/Sule971/luxe-vogue-boutique/internal/storage"
	"github.com/Sule971/luxe-vogue-boutique/pkg/database"
	"github.com/Sule971/luxe-vogue-boutique/pkg/health"
	"github.com/Sule971/luxe-vogue-boutique/pkg/httpclient"
	pkgkafka "github.com/Sule971/luxe-vogue-boutique/pkg/kafka"
	"github.com/Sule971/luxe-vogue-boutique/pkg/tracing"
)

// ServiceName identifies this process in logs, metrics and traces.
const ServiceName = "storefront"

// App wires together all dependencies and runs the storefront session service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	rdb            *redis.Client
	pool           *pgxpool.Pool
	producer       *pkgkafka.Producer
	tracerShutdown func(context.Context) error
	httpServer     *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a := &App{cfg: cfg, logger: logger}

	// Initialize tracing.
	tcfg := tracing.DefaultConfig(ServiceName)
	tcfg.Environment = cfg.Environment
	tcfg.OTLPEndpoint = cfg.OTELEndpoint
	tcfg.SampleRate = cfg.OTELSampleRate
	tcfg.Enabled = cfg.OTELEnabled
	shutdown, err := tracing.InitTracer(ctx, tcfg)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}
	a.tracerShutdown = shutdown

	database.SetSlowQueryLogging(time.Duration(cfg.SlowQueryThresholdMs)*time.Millisecond, logger)

	// Persistent store backend.
	repo, err := a.newRepository(ctx)
	if err != nil {
		a.closeBackends()
		return nil, err
	}
	store := storage.New(repo, logger)

	healthHandler := health.NewHandler()
	healthHandler.Register("store", repo.Ping)

	// One process serves one storefront session.
	sessionID := uuid.NewString()

	// Activity events.
	var publisher event.Publisher = event.Nop{}
	if cfg.KafkaEnabled {
		a.producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		publisher = event.NewProducer(a.producer, sessionID, logger)
		healthHandler.Register("kafka", a.producer.Ping)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}

	// Remote API client behind a circuit breaker.
	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = cfg.APITimeout()
	cbCfg := httpclient.DefaultCircuitBreakerConfig(apiclient.ServiceName)
	cbCfg.MaxRequests = cfg.CBMaxRequests
	cbCfg.Interval = time.Duration(cfg.CBInterval) * time.Second
	cbCfg.Timeout = time.Duration(cfg.CBTimeout) * time.Second
	cbCfg.FailureRatio = cfg.CBFailureRatio
	cbCfg.MinRequests = cfg.CBMinRequests
	breaker := httpclient.NewCircuitBreakerClient(httpclient.New(httpCfg), cbCfg, logger).
		WithFallback(apiclient.CircuitOpenFallback)
	api := apiclient.New(breaker, cfg.APIBaseURL, logger)

	// Session components.
	feed := notify.NewFeed(cfg.NotificationFeedSize)
	notifier := notify.Multi{notify.NewLogNotifier(logger), feed}
	location := navigation.NewLocation(logger)

	cart := service.NewCartService(ctx, store, publisher, logger)
	orders := service.NewOrderHistory(ctx, store)
	services := handler.Services{
		Catalog:  catalog.New(),
		Cart:     cart,
		Wishlist: service.NewWishlistService(ctx, store, notifier, api, logger),
		Auth:     service.NewAuthService(ctx, store, notifier, cfg.AuthLatency(), logger),
		Orders:   orders,
		Feed:     feed,
		Location: location,
		Checkout: service.NewCheckoutService(service.CheckoutDeps{
			Cart:      cart,
			Orders:    orders,
			Payments:  api,
			Confirmer: service.DelayConfirmer{Delay: cfg.PaymentConfirmDelay()},
			Notifier:  notifier,
			Navigator: location,
			Producer:  publisher,
			Logger:    logger,
		}),
	}

	// HTTP router.
	router := handler.NewRouter(services, healthHandler, handler.RouterConfig{
		ServiceName:    ServiceName,
		SessionID:      sessionID,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}, logger)

	// WriteTimeout covers a checkout submission, which waits for the
	// payment confirmation delay.
	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.APITimeout() + cfg.PaymentConfirmDelay() + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("storefront session ready",
		slog.String("session_id", sessionID),
		slog.String("store_backend", cfg.StoreBackend),
		slog.String("api_base_url", cfg.APIBaseURL),
	)
	return a, nil
}

// newRepository connects the configured store backend.
func (a *App) newRepository(ctx context.Context) (repository.KVRepository, error) {
	switch a.cfg.StoreBackend {
	case config.StoreRedis:
		rc, err := a.cfg.Redis()
		if err != nil {
			return nil, err
		}
		rdb, err := database.NewRedisClient(ctx, rc)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		a.rdb = rdb
		a.logger.Info("connected to Redis",
			slog.String("addr", rc.Addr()),
			slog.Int("db", rc.DB),
		)
		return redisrepo.NewKVRepository(rdb, a.cfg.StoreKeyPrefix, a.cfg.StoreTTL()), nil

	case config.StorePostgres:
		pg := a.cfg.Postgres()
		pool, err := database.NewPostgresPool(ctx, &pg, a.logger)
		if err != nil {
			return nil, err
		}
		a.pool = pool
		a.logger.Info("connected to PostgreSQL",
			slog.String("host", pg.Host),
			slog.String("database", pg.DBName),
		)

		if err := database.RunMigrations(ctx, pool, pgrepo.Migrations(), a.logger); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		if err := database.RegisterPoolMetrics(prometheus.DefaultRegisterer, pool, ServiceName); err != nil {
			return nil, fmt.Errorf("register pool metrics: %w", err)
		}
		return pgrepo.NewKVRepository(pool), nil

	default:
		return memory.NewKVRepository(), nil
	}
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}

	a.closeBackends()

	if err := a.tracerShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}

func (a *App) closeBackends() {
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}
}
