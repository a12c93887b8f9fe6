package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/flowcrm/customer-system/internal/api"
	"github.com/flowcrm/customer-system/internal/core/ports"
	"github.com/flowcrm/customer-system/internal/infrastructure/config"
	mongodb "github.com/flowcrm/customer-system/internal/infrastructure/db/mongo"
	redisdb "github.com/flowcrm/customer-system/internal/infrastructure/db/redis"
	"github.com/flowcrm/customer-system/internal/infrastructure/session"
	"github.com/flowcrm/customer-system/pkg/logger"
)

func main() {
	// .env is a local development convenience; absence is fine
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "customer-system",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() { _ = client.Disconnect(ctx) }()

	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}

	var (
		rdb      *redis.Client
		sessions ports.SessionStore
	)
	switch cfg.Session.Backend {
	case "redis":
		rdb, err = redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer func() { _ = rdb.Close() }()
		sessions = redisdb.NewSessionStore(rdb)
	default:
		sessions = session.NewMemoryStore()
	}

	e := api.NewRouter(api.RouterConfig{
		DB:              db,
		Redis:           rdb,
		Sessions:        sessions,
		JWTSecret:       cfg.JWTSecret,
		SessionTTL:      cfg.Session.TTL,
		SecureCookie:    cfg.Env != "development",
		StrictPasswords: cfg.Session.StrictPasswords,
		Logger:          log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("session_backend", cfg.Session.Backend).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
	}
}
