package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tastebook/backend/config"
	"github.com/tastebook/backend/internal/database"
	"github.com/tastebook/backend/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := config.ValidateConfig(cfg); err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := database.WaitForDatabase(cfg, 30, 2*time.Second); err != nil {
		log.Fatalf("database not reachable: %v", err)
	}
	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisConfigured() {
		redisClient, err = database.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
	} else {
		log.Println("Redis not configured, using in-memory stores")
	}

	var s3cfg *config.S3Config
	if cfg.S3Bucket != "" {
		s3cfg, err = config.NewS3Config(context.Background(), cfg)
		if err != nil {
			log.Fatalf("s3: %v", err)
		}
		if err := s3cfg.SetupBucketPolicy(context.Background()); err != nil {
			log.Printf("could not apply bucket policy: %v", err)
		}
	}

	srv := server.New(cfg, db, redisClient, s3cfg)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s:%s", cfg.ServerHost, cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
