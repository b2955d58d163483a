// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Dish Diary HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool) and run migrations.
//  4. Connect to Redis when the session denylist is enabled.
//  5. Build the image host client when a bucket is configured.
//  6. Wire services and HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/dishdiary/internal/api"
	"github.com/taibuivan/dishdiary/internal/archive"
	"github.com/taibuivan/dishdiary/internal/platform/config"
	"github.com/taibuivan/dishdiary/internal/platform/constants"
	"github.com/taibuivan/dishdiary/internal/platform/media"
	"github.com/taibuivan/dishdiary/internal/platform/middleware"
	"github.com/taibuivan/dishdiary/internal/platform/migration"
	pgstore "github.com/taibuivan/dishdiary/internal/platform/postgres"
	redisstore "github.com/taibuivan/dishdiary/internal/platform/redis"
	"github.com/taibuivan/dishdiary/internal/platform/sec"
	"github.com/taibuivan/dishdiary/internal/recipe"
	"github.com/taibuivan/dishdiary/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("session_denylist", cfg.SessionDenylist),
		slog.Bool("media_enabled", cfg.MediaEnabled()),
	)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), constants.StartupTimeout)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 4. Redis (optional) ───────────────────────────────────────────────
	var (
		rdb      *goredis.Client
		denylist auth.SessionDenylist
	)
	if cfg.SessionDenylist {
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_error", slog.Any("error", cerr))
			}
		}()
		denylist = auth.NewSessionDenylist(rdb)
	}

	// ── 5. Media host ─────────────────────────────────────────────────────
	var storage media.Storage = media.Disabled{}
	if cfg.MediaEnabled() {
		s3cfg := media.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			PublicBaseURL:   cfg.S3PublicBaseURL,
			KeyPrefix:       cfg.S3KeyPrefix,
		}
		client, err := media.NewS3Client(startupCtx, s3cfg)
		must(log, err, "initialize s3 client")
		storage = media.NewS3Storage(client, s3cfg)
	}

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	tokens, err := sec.NewSessionTokenService([]byte(cfg.SessionSecret), constants.AuthIssuer, cfg.SessionTTL)
	must(log, err, "initialize session tokens")

	authService := auth.NewService(auth.NewUserRepository(pool), tokens, denylist)
	guard := middleware.NewGuard(authService, cfg.SessionCookieName)
	cookie := auth.NewCookiePolicy(cfg.SessionCookieName, cfg.SessionTTL, cfg.IsProduction())

	recipeService := recipe.NewService(recipe.NewRepository(pool), storage, cfg.DefaultRecipeImage)
	archiveService := archive.NewService(archive.NewRepository(pool), recipeService)

	healthDeps := api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
	}
	if rdb != nil {
		healthDeps.CheckCache = func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }
	}
	liveness, readiness := api.NewHealthHandlers(healthDeps, log)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService, guard, cookie),
		Recipe:    recipe.NewHandler(recipeService, guard, cfg.UploadMaxBytes),
		Archive:   archive.NewHandler(archiveService, guard),
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// newLogger builds the JSON logger and installs it as the default.
func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)
	return log
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// Startup wiring only. After startup, errors are returned and handled.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
