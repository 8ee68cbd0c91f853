package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pantryloop/backend/config"
	"github.com/pantryloop/backend/internal/cache"
	"github.com/pantryloop/backend/internal/database"
	"github.com/pantryloop/backend/internal/logger"
	"github.com/pantryloop/backend/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(string(cfg.Env))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	db, err := database.New(cfg)
	if err != nil {
		zlog.Fatalw("failed to connect to database", "error", err)
	}

	if err := database.Migrate(db); err != nil {
		zlog.Fatalw("failed to run migrations", "error", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		zlog.Fatalw("failed to connect to redis", "error", err)
	}
	store := cache.NewRedisStore(redisClient)

	srv := server.New(cfg, db, store, zlog)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			zlog.Fatalw("server error", "error", err)
		}
	case sig := <-quit:
		zlog.Infow("received signal", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Fatalw("server shutdown error", "error", err)
	}
	zlog.Infow("server stopped")
}
