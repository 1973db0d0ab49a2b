package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/mindthevirt/binge-master-api/internal/config"
	"github.com/mindthevirt/binge-master-api/internal/handler"
	"github.com/mindthevirt/binge-master-api/internal/service"
	"github.com/mindthevirt/binge-master-api/internal/storage/postgres"
	redisstore "github.com/mindthevirt/binge-master-api/internal/storage/redis"
	"github.com/mindthevirt/binge-master-api/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "./configs/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.NewZapLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	sugarLogger := appLogger.Sugar()

	sugarLogger.Info("Starting application...")
	sugarLogger.Infof("Log level set to: %s", cfg.Log.Level)

	appCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := postgres.NewPgxPool(appCtx, &cfg.Database, appLogger)
	if err != nil {
		sugarLogger.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbPool.Close()

	if err := postgres.EnsureSchema(appCtx, dbPool, appLogger); err != nil {
		sugarLogger.Fatalf("Failed to ensure database schema: %v", err)
	}

	redisClient, err := redisstore.NewRedisClient(appCtx, &cfg.Redis, appLogger)
	if err != nil {
		sugarLogger.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	apiKeyRepo := postgres.NewAPIKeyRepository(dbPool, appLogger)
	userRepo := postgres.NewUserRepository(dbPool, appLogger)
	watchtimeRepo := postgres.NewWatchtimeRepository(dbPool, appLogger)

	keyCache := redisstore.NewAPIKeyCache(redisClient, cfg.Redis.KeyTTL, appLogger)

	apiKeyService := service.NewAPIKeyService(apiKeyRepo, appLogger)
	userService := service.NewUserService(userRepo, appLogger)
	watchtimeService := service.NewWatchtimeService(watchtimeRepo, appLogger)

	healthHandler := handler.NewHealthHandler(dbPool, redisClient, appLogger)

	router := handler.NewRouter(handler.RouterDeps{
		APIKeyHandler:    handler.NewAPIKeyHandler(apiKeyService, appLogger),
		UserHandler:      handler.NewUserHandler(userService, appLogger),
		WatchtimeHandler: handler.NewWatchtimeHandler(watchtimeService, appLogger),
		APIKeyRepo:       apiKeyRepo,
		KeyCache:         keyCache,
		AllowOrigins:     cfg.CORS.AllowOrigins,
		Logger:           appLogger,
	})

	router.GET("/healthz", healthHandler.Check)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	g, groupCtx := errgroup.WithContext(appCtx)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g.Go(func() error {
		sugarLogger.Infof("HTTP server listening on port %s", cfg.Server.Port)

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugarLogger.Errorf("HTTP server ListenAndServe error: %v", err)
			return fmt.Errorf("http server failed: %w", err)
		}
		sugarLogger.Info("HTTP server stopped listening.")
		return nil
	})

	g.Go(func() error {
		<-groupCtx.Done()
		sugarLogger.Info("Shutting down HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownPeriod)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			sugarLogger.Errorf("HTTP server graceful shutdown failed: %v", err)
			return fmt.Errorf("http server shutdown error: %w", err)
		}
		sugarLogger.Info("HTTP server shutdown complete.")
		return nil
	})

	sugarLogger.Info("Application started. Waiting for interrupt signal (Ctrl+C) or component error...")

	waitErr := g.Wait()

	sugarLogger.Info("Shutdown sequence finished.")

	if waitErr != nil {
		if errors.Is(waitErr, context.Canceled) {
			sugarLogger.Info("Shutdown reason: Context canceled (likely due to OS signal).")
		} else if errors.Is(waitErr, http.ErrServerClosed) {
			sugarLogger.Info("Shutdown reason: HTTP server closed normally.")
		} else {
			sugarLogger.Errorf("Application shutdown finished with unexpected error: %v", waitErr)
		}
	} else {
		sugarLogger.Info("Application shutdown successfully (all components finished without errors).")
	}

	sugarLogger.Info("Application exiting now.")
}
