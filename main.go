package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"churchbook_backend/internals/configs"
	database "churchbook_backend/internals/databases"
	scheduler "churchbook_backend/internals/features/users/auth/scheduler"
	helper "churchbook_backend/internals/helpers"
	helperAuth "churchbook_backend/internals/helpers/auth"
	middlewares "churchbook_backend/internals/middlewares"
	"churchbook_backend/internals/repository"
	routes "churchbook_backend/internals/route"
	"churchbook_backend/internals/seeds"
)

func main() {
	cfg, err := configs.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := configs.NewLogger(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)
	cfg.CheckSecrets(logger)

	// 🔌 DB connect + pool + warm-up
	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Fatal("❌ DB connect failed", zap.Error(err))
	}
	database.TunePool(db, logger)
	database.WarmUpQueries(db, logger)
	defer database.Close(db)

	if cfg.DBAutoMigrate {
		if err := database.AutoMigrate(db, logger); err != nil {
			logger.Fatal("❌ AutoMigrate failed", zap.Error(err))
		}
	}

	// `churchbook seed` fills demo data and exits
	if len(os.Args) > 1 && os.Args[1] == "seed" {
		if err := seeds.RunAllSeeds(db, logger); err != nil {
			logger.Fatal("❌ seed failed", zap.Error(err))
		}
		return
	}

	store := repository.NewGormStore(db)

	signer, err := helperAuth.NewSigner(cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	if err != nil {
		logger.Error("❌ token signer disabled", zap.Error(err))
		signer = nil
	}

	// ⏱ scheduler once the store is ready
	cleanup, err := scheduler.StartRefreshCleanup(store, cfg.RefreshCleanupCron, logger)
	if err != nil {
		logger.Fatal("❌ invalid REFRESH_CLEANUP_CRON", zap.String("spec", cfg.RefreshCleanupCron), zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		// 🚀 sonic for JSON
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ErrorHandler:          helper.ErrorHandler(logger),
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           90 * time.Second,
	})

	middlewares.SetupMiddlewares(app, cfg, logger)
	routes.SetupRoutes(app, store, signer, cfg, logger, db)

	// Start server non-blocking
	go func() {
		logger.Info(fmt.Sprintf("✅ Listening on :%s", cfg.Port))
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown, then close the DB pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	<-cleanup.Stop().Done()
	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
	logger.Info("👋 bye")
}
