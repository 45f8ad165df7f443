package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/tnglf1337/studyhuppy/config"
	"github.com/tnglf1337/studyhuppy/internal/consumer"
	"github.com/tnglf1337/studyhuppy/internal/repository"
	"github.com/tnglf1337/studyhuppy/internal/service"
	"github.com/tnglf1337/studyhuppy/pkg/database"
	applogger "github.com/tnglf1337/studyhuppy/pkg/logger"
	"github.com/tnglf1337/studyhuppy/pkg/redis"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config failed: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize logging
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "initializing logger failed: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("studyhuppy track service starting",
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. Connect database
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	logger.Info("database connected")

	// 3.1 Run migrations
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("getting underlying sql.DB failed", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	// 4. Connect Redis (optional: run degraded when unavailable)
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis connection failed, user deletion events will not be consumed", zap.Error(err))
		rdb = nil
	}

	// 5. Dependency injection: Repository → Service
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, logger)

	// 6. Start the user-deletion consumer
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	if rdb != nil {
		udc := consumer.NewUserDeletionConsumer(rdb, &cfg.Redis, svc.UserDeletion, logger)
		go func() {
			defer close(done)
			if err := udc.Run(ctx); err != nil {
				logger.Error("user deletion consumer stopped", zap.Error(err))
			}
		}()
	} else {
		close(done)
	}

	// 7. Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down...")

	cancel()
	<-done

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Error("closing redis failed", zap.Error(err))
		}
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("closing database failed", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
