package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devmanager/dev-manager/internal/api"
	"github.com/devmanager/dev-manager/internal/core/service"
	mongodb "github.com/devmanager/dev-manager/internal/infrastructure/db/mongo"
	redisdb "github.com/devmanager/dev-manager/internal/infrastructure/db/redis"
	"github.com/devmanager/dev-manager/internal/infrastructure/queue"
	"github.com/devmanager/dev-manager/internal/pkg/config"
	"github.com/devmanager/dev-manager/pkg/logger"
)

const (
	connectTimeout  = 10 * time.Second
	shutdownTimeout = 10 * time.Second

	loginWindow      = 15 * time.Minute
	maxLoginAttempts = 10
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	// --- Datastores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	clientRepo := mongodb.NewClientRepository(db)
	projectRepo := mongodb.NewProjectRepository(db)
	activityRepo := mongodb.NewActivityRepository(db)

	for name, idx := range map[string]interface {
		EnsureIndexes(context.Context) error
	}{
		"users":      userRepo,
		"clients":    clientRepo,
		"projects":   projectRepo,
		"activities": activityRepo,
	} {
		if err := idx.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	// --- Services ---
	activityService := service.NewActivityService(activityRepo, logger.With("activity"))

	dispatcherCtx, stopDispatcher := context.WithCancel(context.Background())
	defer stopDispatcher()

	dispatcher := queue.NewDispatcher(cfg.ActivityWorkers, activityService, logger.With("queue"))
	dispatcher.Start(dispatcherCtx)

	limiter := redisdb.NewLoginLimiter(rdb, loginWindow, maxLoginAttempts)
	authService := service.NewAuthService(userRepo, limiter, dispatcher, cfg.JWTSecret, 0, logger.With("auth"))
	clientService := service.NewClientService(clientRepo, projectRepo, logger.With("clients"))
	projectService := service.NewProjectService(projectRepo, clientRepo, logger.With("projects"))

	if err := authService.EnsureAdmin(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Fatal().Err(err).Msg("admin seed failed")
	}

	// --- Router ---
	e := api.NewRouter(api.Deps{
		Mongo:     db,
		Redis:     rdb,
		Auth:      authService,
		Clients:   clientService,
		Projects:  projectService,
		Activity:  activityService,
		Recorder:  dispatcher,
		JWTSecret: cfg.JWTSecret,
		Logger:    log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	// Stop the audit workers only after in-flight requests have drained.
	stopDispatcher()
	log.Info().Msg("server exited")
}
