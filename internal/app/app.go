package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/config"
	handler "github.com/utafrali/storefront/internal/handler/http"
	"github.com/utafrali/storefront/internal/repository/kv"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/internal/storage"
	"github.com/utafrali/storefront/internal/storage/breaker"
	"github.com/utafrali/storefront/internal/storage/file"
	"github.com/utafrali/storefront/internal/storage/memory"
	"github.com/utafrali/storefront/internal/storage/postgres"
	redisstore "github.com/utafrali/storefront/internal/storage/redis"
	"github.com/utafrali/storefront/pkg/debounce"
	"github.com/utafrali/storefront/pkg/health"
	"github.com/utafrali/storefront/pkg/tracing"
)

// ServiceName identifies the process in logs, traces and breaker metrics.
const ServiceName = "storefront"

// App wires together all dependencies and runs the storefront.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	store      storage.Storage
	search     *debounce.Debouncer
	tracer     tracing.ShutdownFunc
	handler    http.Handler
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
// Stores that fail to load are logged and start empty; their errors are
// reported on every response until a later write succeeds.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	shutdownTracer, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:  ServiceName,
		Environment:  cfg.Environment,
		OTLPEndpoint: cfg.OTELEndpoint,
		SampleRate:   cfg.OTELSampleRate,
		Enabled:      cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		_ = shutdownTracer(context.Background())
		return nil, err
	}

	// Build the dependency graph.
	cat := catalog.Default(catalog.WithMaxPrice(decimal.NewFromFloat(cfg.FilterMaxPrice)))

	cartService := service.NewCartService(kv.NewCartRepository(store), logger)
	wishlistService := service.NewWishlistService(kv.NewWishlistRepository(store), logger)
	languageService, err := service.NewLanguageService(kv.NewPreferenceRepository(store), logger, cfg.DefaultLanguage)
	if err != nil {
		_ = store.Close()
		_ = shutdownTracer(context.Background())
		return nil, fmt.Errorf("create language service: %w", err)
	}

	if err := cartService.Load(ctx); err != nil {
		logger.Error("cart load failed", slog.String("error", err.Error()))
	}
	if err := wishlistService.Load(ctx); err != nil {
		logger.Error("wishlist load failed", slog.String("error", err.Error()))
	}
	if err := languageService.Load(ctx); err != nil {
		logger.Error("language load failed", slog.String("error", err.Error()))
	}
	logger.Info("profile loaded",
		slog.Int("cart_items", cartService.GetCartCount()),
		slog.Int("wishlist_items", wishlistService.Count()),
		slog.String("language", languageService.Language()),
	)

	search := debounce.New(cfg.SearchDebounce)

	// Health checks.
	healthHandler := health.NewHandler(5 * time.Second)
	healthHandler.Register("storage", store.Ping)

	// HTTP router.
	router := handler.NewRouter(cat, cartService, wishlistService, languageService, search, healthHandler, logger,
		handler.RouterConfig{
			RequestTimeout: cfg.HTTPRequestTimeout,
			AllowedOrigins: cfg.CORSAllowedOrigins,
			CORSMaxAge:     cfg.CORSMaxAge,
		})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		store:      store,
		search:     search,
		tracer:     shutdownTracer,
		handler:    router,
		httpServer: httpServer,
	}, nil
}

// openStorage connects the configured backend and, unless it lives in
// process memory, guards it with a circuit breaker.
func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Storage, error) {
	var store storage.Storage

	switch cfg.StorageBackend {
	case storage.BackendMemory:
		logger.Warn("using in-memory storage; profile data is lost on restart")
		return memory.New(), nil

	case storage.BackendFile:
		fs, err := file.New(cfg.StorageDir)
		if err != nil {
			return nil, fmt.Errorf("open file storage: %w", err)
		}
		logger.Info("using file storage", slog.String("dir", cfg.StorageDir))
		store = fs

	case storage.BackendRedis:
		client, err := redisstore.NewClient(ctx, redisstore.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		prefix := cfg.RedisKeyPrefix + cfg.StorageProfile + ":"
		logger.Info("connected to Redis",
			slog.String("addr", cfg.RedisAddr),
			slog.Int("db", cfg.RedisDB),
			slog.String("key_prefix", prefix),
		)
		store = redisstore.New(client, prefix, cfg.RedisTTL)

	case storage.BackendPostgres:
		pool, err := postgres.Connect(ctx, postgres.Config{
			Host:            cfg.PostgresHost,
			Port:            cfg.PostgresPort,
			User:            cfg.PostgresUser,
			Password:        cfg.PostgresPass,
			DBName:          cfg.PostgresDB,
			SSLMode:         cfg.PostgresSSL,
			MaxConns:        cfg.DBMaxConns,
			ConnectAttempts: cfg.DBConnectRetries,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		pg := postgres.New(pool, cfg.StorageProfile)
		if err := pg.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ensure postgres schema: %w", err)
		}
		logger.Info("connected to PostgreSQL",
			slog.String("host", cfg.PostgresHost),
			slog.String("database", cfg.PostgresDB),
			slog.String("profile", cfg.StorageProfile),
		)
		store = pg

	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.StorageBackend)
	}

	if cfg.StorageBreakerEnabled {
		store = breaker.New(store, breaker.DefaultConfig(cfg.StorageBackend), logger)
	}
	return store, nil
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.handler
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
		_ = a.Shutdown()
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

	a.search.Stop()

	if err := a.tracer(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	if err := a.store.Close(); err != nil {
		a.logger.Error("storage close error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
