package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bankx/transactions-service/internal/adapter/cache"
	"github.com/bankx/transactions-service/internal/adapter/httpapi"
	"github.com/bankx/transactions-service/internal/adapter/repository/postgres"
	"github.com/bankx/transactions-service/internal/config"
	"github.com/bankx/transactions-service/internal/notifier"
	"github.com/bankx/transactions-service/internal/usecase/processor"
	"github.com/bankx/transactions-service/internal/usecase/risk"
	"github.com/bankx/transactions-service/internal/usecase/seeder"
	"github.com/bankx/transactions-service/internal/worker"
)

func main() {
	// 1. Config and logging
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 2. Database
	db, err := postgres.NewDB(cfg.DBConnStr)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	if err := postgres.Migrate(ctx, db); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// 3. Repositories
	accountRepo := postgres.NewAccountRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	riskLimitRepo := postgres.NewRiskLimitRepository(db)

	// 4. Seed baseline data, then load the risk limits into memory
	dataSeeder := seeder.NewDataSeeder(accountRepo, riskLimitRepo)
	if err := dataSeeder.Seed(ctx); err != nil {
		logger.Error("failed to seed baseline data", "error", err)
		os.Exit(1)
	}
	logger.Info("baseline risk limits and accounts seeded")

	evaluator, err := risk.Load(ctx, riskLimitRepo)
	if err != nil {
		logger.Error("failed to load risk limits", "error", err)
		os.Exit(1)
	}

	// 5. Notification hub and persistence pool
	hub := notifier.NewHub(cfg.HubBuffer, logger)
	defer hub.Close()

	pool := worker.NewPool(cfg.PersistWorkers)
	defer pool.Close()

	// 6. Core processor
	svc := processor.NewService(accountRepo, transactionRepo, evaluator, hub, pool, logger)

	// 7. Optional Redis account view cache
	var accountCache *cache.AccountCache
	if cfg.RedisAddr != "" {
		redisClient, err := cache.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		accountCache = cache.NewAccountCache(redisClient, 5*time.Minute, logger)
		logger.Info("account view cache enabled", "addr", cfg.RedisAddr)
	}

	// 8. HTTP server
	handler := httpapi.NewTransactionHandler(svc, accountRepo, accountCache, logger)
	router := httpapi.NewRouter(handler, logger)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("http server listening", "port", cfg.Port, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	waitForShutdown(server, logger)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully drains the
// server; deferred cleanup in main then closes the hub, pool, and stores.
func waitForShutdown(server *http.Server, logger *slog.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logger.Info("shutting down", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", "error", err)
	}
	logger.Info("http server stopped")
}
