package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"herdbook/internal/config"
	"herdbook/internal/database"
	"herdbook/internal/handlers"
	"herdbook/internal/locking"
	"herdbook/internal/logger"
	"herdbook/internal/middleware"
	"herdbook/internal/notifier"
	"herdbook/internal/router"
	"herdbook/internal/scheduler"
	"herdbook/internal/services"
	"herdbook/internal/validator"

	_ "herdbook/internal/docs" // Import swagger docs
)

// @title           Herdbook API
// @version         1.0
// @description     Herdbook keeps dairy herd records and a farm ledger that stays in step with them.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

const shutdownTimeout = 15 * time.Second

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	locker, closeLocker := newLocker(appConfig)
	defer closeLocker()

	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	animalService := services.NewAnimalService(db)
	ledgerService := services.NewLedgerService(db)
	syncer := services.NewLedgerSyncer(ledgerService, locker)
	productionService := services.NewProductionService(db, animalService, syncer)
	feedingService := services.NewFeedingService(db, animalService, syncer)
	breedingService := services.NewBreedingService(db, animalService, syncer)
	reconcileService := services.NewReconcileService(db, userService, ledgerService, syncer)
	auditService := services.NewAuditService(db)

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying DB: %w", err)
	}

	tokens := middleware.NewTokenIssuerFromConfig(appConfig)

	engine := router.New(router.Handlers{
		Auth:       handlers.NewAuthHandler(userService, auditService, tokens),
		Animal:     handlers.NewAnimalHandler(animalService, auditService),
		Production: handlers.NewProductionHandler(productionService, auditService),
		Feeding:    handlers.NewFeedingHandler(feedingService, auditService),
		Breeding:   handlers.NewBreedingHandler(breedingService, auditService),
		Ledger:     handlers.NewLedgerHandler(ledgerService, reconcileService, auditService),
		Internal:   handlers.NewInternalHandler(reconcileService, auditService),
		Health:     handlers.NewHealthHandler(sqlDB),
	}, router.Options{Tokens: tokens, InternalAPIKey: appConfig.InternalAPIKey})

	var summaryNotifier notifier.Notifier
	if appConfig.Notifier.WebhookURL != "" {
		summaryNotifier = notifier.NewWebhookClient(appConfig.Notifier)
	}

	jobs, err := scheduler.New(appConfig.Scheduler, reconcileService, userService, ledgerService, summaryNotifier, auditService)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	if err := jobs.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Infof("Starting Herdbook backend server on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-stop:
		log.Infof("Received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	jobs.Stop(ctx)
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info("Server stopped")
	return nil
}

// newLocker uses redis when configured and falls back to in-process locks.
func newLocker(cfg *config.Config) (locking.Locker, func()) {
	log := logger.Get()
	if cfg.RedisAddress == "" {
		log.Info("REDIS_ADDRESS not set, using in-process ledger sync locks")
		return locking.NewLocalLocker(), func() {}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rdb, err := locking.ConnectRedis(ctx, cfg.RedisAddress, cfg.RedisPassword)
	if err != nil {
		log.Warnf("redis unavailable at %s, using in-process ledger sync locks: %v", cfg.RedisAddress, err)
		return locking.NewLocalLocker(), func() {}
	}

	log.Infof("Using redis ledger sync locks at %s", cfg.RedisAddress)
	return locking.NewRedisLocker(rdb), func() {
		if err := rdb.Close(); err != nil {
			log.Warnf("redis close error: %v", err)
		}
	}
}
