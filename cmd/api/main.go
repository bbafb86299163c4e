// @title          Realty API
// @version        1.0
// @description    Accounts, sessions and owner-scoped operations for the real-estate marketplace.
// @BasePath       /
//
// @securityDefinitions.apikey  CookieAuth
// @in                          cookie
// @name                        access_token
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/estateview/realty-api/internal/api"
	"github.com/estateview/realty-api/internal/api/handler"
	"github.com/estateview/realty-api/internal/core/service"
	"github.com/estateview/realty-api/internal/core/session"
	"github.com/estateview/realty-api/internal/infrastructure/config"
	mongostore "github.com/estateview/realty-api/internal/infrastructure/db/mongo"
	redisstore "github.com/estateview/realty-api/internal/infrastructure/db/redis"
	"github.com/estateview/realty-api/internal/infrastructure/queue"
	"github.com/estateview/realty-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Mode() == config.ModeDevelopment,
		Service: "realty-api",
	})

	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		lg.Fatal().Err(err).Msg("failed to connect mongo")
	}
	defer func() {
		dctx, dcancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer dcancel()
		_ = mongoClient.Disconnect(dctx)
	}()

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		lg.Fatal().Err(err).Msg("failed to connect redis")
	}
	defer rdb.Close()

	users := mongostore.NewUserRepository(db)
	listings := mongostore.NewListingRepository(db)
	buyings := mongostore.NewBuyingRepository(db)
	if err := mongostore.EnsureIndexes(ctx, users, listings, buyings); err != nil {
		lg.Fatal().Err(err).Msg("failed to ensure indexes")
	}

	cleanupLog := logger.Component("cleanup")
	dispatcher := queue.NewDispatcher(cfg.Cleanup.Workers, service.NewCleanupService(listings, buyings, cleanupLog), cleanupLog)
	workerCtx, stopWorkers := context.WithCancel(ctx)
	dispatcher.Start(workerCtx)

	e, err := api.NewRouter(api.Deps{
		Config:   cfg,
		Log:      logger.Component("http"),
		Codec:    session.NewCodec(cfg.JWTSecret),
		Auth:     service.NewAuthService(users, logger.Component("auth")),
		Users:    service.NewUserService(users, redisstore.NewProfileCache(rdb, cfg.Redis.ProfileCacheTTL), dispatcher, logger.Component("user")),
		Listings: service.NewListingService(listings, buyings, logger.Component("listing")),
		Readiness: map[string]handler.Pinger{
			"mongodb": handler.MongoPinger(mongoClient),
			"redis":   handler.RedisPinger(rdb),
		},
	})
	if err != nil {
		lg.Fatal().Err(err).Msg("failed to build router")
	}

	go func() {
		lg.Info().
			Str("port", cfg.Port).
			Str("env", string(cfg.Mode())).
			Strs("allowed_origins", cfg.CORS.AllowedOrigins).
			Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal().Err(err).Msg("http listen")
		}
	}()

	waitForShutdown(lg)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		lg.Error().Err(err).Msg("http shutdown")
	}

	stopWorkers()
	dispatcher.Wait()
	lg.Info().Msg("shutdown complete")
}

func waitForShutdown(lg zerolog.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	lg.Info().Str("signal", sig.String()).Msg("shutting down")
}
