package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ledgerapp "github.com/advoga/backend/internal/application/ledger"
	matterapp "github.com/advoga/backend/internal/application/matter"
	"github.com/advoga/backend/internal/domain/shared"
	"github.com/advoga/backend/internal/infrastructure/auth"
	"github.com/advoga/backend/internal/infrastructure/cache"
	"github.com/advoga/backend/internal/infrastructure/config"
	"github.com/advoga/backend/internal/infrastructure/courtsync"
	"github.com/advoga/backend/internal/infrastructure/logger"
	"github.com/advoga/backend/internal/infrastructure/persistence"
	"github.com/advoga/backend/internal/interfaces/http/handler"
	"github.com/advoga/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting ledger backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	txRepo := persistence.NewGormTransactionRepository(db.DB)
	snapshotRepo := persistence.NewGormReportSnapshotRepository(db.DB)
	caseRepo := persistence.NewGormCaseRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)

	// Application services
	transactionService := ledgerapp.NewTransactionService(txRepo, caseRepo, clientRepo)
	settlementService := ledgerapp.NewSettlementService(txRepo, caseRepo)
	periodService := ledgerapp.NewPeriodService(txRepo, snapshotRepo)
	matterService := matterapp.NewMatterService(caseRepo, clientRepo)

	// Court registry synchronization
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var syncWorker *courtsync.Worker
	if cfg.CourtSync.Enabled {
		guard := newSyncGuard(cfg, log)
		defer func() {
			if err := guard.Close(); err != nil {
				log.Error("Error closing sync guard", zap.Error(err))
			}
		}()

		syncWorker = courtsync.NewWorker(&cfg.CourtSync, courtsync.NewClient(&cfg.CourtSync), caseRepo, guard, log)
		syncWorker.Start(ctx)
		log.Info("Court sync worker started",
			zap.Int("workers", cfg.CourtSync.Workers),
			zap.Int("queue_size", cfg.CourtSync.QueueSize),
		)
	}

	// HTTP layer
	validator := auth.NewJWTValidator(cfg.JWT)
	engine := router.New(router.Options{
		Config:    cfg,
		Logger:    log,
		Validator: validator,
	},
		handler.NewHealthHandler(db, version),
		handler.NewLedgerHandler(transactionService, settlementService),
		handler.NewReportHandler(periodService),
		handler.NewMatterHandler(matterService, syncWorker),
	)

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}

	// Stop the sync workers after the HTTP server so no request can enqueue
	// into a drained worker.
	cancel()
	if syncWorker != nil {
		syncWorker.Wait()
	}
	log.Info("Stopped")
}

// newSyncGuard picks the idempotency store backing the sync worker. Redis
// makes the guard shared across instances; without it a single-instance
// in-memory guard is used.
func newSyncGuard(cfg *config.Config, log *zap.Logger) shared.IdempotencyStore {
	if cfg.Redis.Enabled {
		store, err := cache.NewRedisIdempotencyStore(&cfg.Redis, "")
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		log.Info("Using redis sync guard", zap.String("addr", cfg.Redis.Addr()))
		return store
	}
	return cache.NewInMemoryIdempotencyStore()
}
