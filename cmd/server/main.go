package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	httpAdapter "github.com/hermanas/caja/internal/adapter/http"
	"github.com/hermanas/caja/internal/adapter/http/handler"
	postgresRepo "github.com/hermanas/caja/internal/adapter/repository/postgres"
	redisRepo "github.com/hermanas/caja/internal/adapter/repository/redis"
	"github.com/hermanas/caja/internal/infrastructure/auth"
	"github.com/hermanas/caja/internal/infrastructure/config"
	"github.com/hermanas/caja/internal/infrastructure/logger"
	"github.com/hermanas/caja/internal/infrastructure/metrics"
	"github.com/hermanas/caja/internal/infrastructure/notifier"
	"github.com/hermanas/caja/internal/infrastructure/postgres"
	"github.com/hermanas/caja/internal/infrastructure/redis"
	"github.com/hermanas/caja/internal/usecase"
)

const migrationsPath = "migrations"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, migrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	eventRepo := postgresRepo.NewEventRepository(pool)
	registerRepo := postgresRepo.NewRegisterRepository(pool)
	cashCountRepo := postgresRepo.NewCashCountRepository(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	inventoryRepo := postgresRepo.NewInventoryRepository(pool)
	providerRepo := postgresRepo.NewProviderRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	cache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(log)

	m := metrics.New()
	go samplePoolStats(ctx, pool, m)

	// Notification worker
	logSink := notifier.NewLogNotifier(log)
	asyncNotifier := notifier.NewAsyncNotifier(logSink, 256, log).WithMetrics(m)
	notifierCtx, stopNotifier := context.WithCancel(ctx)
	defer stopNotifier()
	go func() {
		_ = asyncNotifier.Start(notifierCtx)
	}()

	triggerCfg := cfg.TriggerConfig()

	// Use cases
	eventUC := usecase.NewEventUseCase(txManager, eventRepo, providerRepo, asyncNotifier, idGen, log, cfg.WaterfallPolicy()).
		WithSummaryCache(cache, cfg.SummaryCacheTTL).
		WithMetrics(m)
	registerUC := usecase.NewRegisterUseCase(registerRepo, inventoryRepo, providerRepo, asyncNotifier, idGen, retrier, log, triggerCfg).
		WithMetrics(m)
	cashCountUC := usecase.NewCashCountUseCase(cashCountRepo, registerRepo, asyncNotifier, idGen, log, triggerCfg).
		WithMetrics(m)
	userUC := usecase.NewUserUseCase(userRepo, idGen).WithMetrics(m)

	if cfg.SeedPassword != "" {
		if err := userUC.EnsureSeedUser(ctx, cfg.SeedUsername, cfg.SeedName, cfg.SeedPassword); err != nil {
			log.Fatal().Err(err).Msg("failed to seed admin user")
		}
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	// Handlers
	eventHandler := handler.NewEventHandler(eventUC)
	registerHandler := handler.NewRegisterHandler(registerUC)
	cashCountHandler := handler.NewCashCountHandler(cashCountUC)
	authHandler := handler.NewAuthHandler(userUC, jwtManager)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		EventHandler:     eventHandler,
		RegisterHandler:  registerHandler,
		CashCountHandler: cashCountHandler,
		AuthHandler:      authHandler,
		HealthHandler:    healthHandler,
		JWTManager:       jwtManager,
		IdempotencyStore: idempotencyStore,
		Logger:           log,
		AllowedOrigins:   cfg.AllowedOrigins,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	stopNotifier()
	log.Info().Msg("server stopped")
}

// samplePoolStats mirrors the pgx pool size into the connections gauge.
func samplePoolStats(ctx context.Context, pool *pgxpool.Pool, m *metrics.Metrics) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.DBConnections.Set(float64(pool.Stat().TotalConns()))
		}
	}
}
