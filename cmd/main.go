package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/nirjapatel2005/Tribal-Craft/config"
	"github.com/nirjapatel2005/Tribal-Craft/internal/auth"
	"github.com/nirjapatel2005/Tribal-Craft/internal/delivery"
	"github.com/nirjapatel2005/Tribal-Craft/internal/events"
	"github.com/nirjapatel2005/Tribal-Craft/internal/lock"
	"github.com/nirjapatel2005/Tribal-Craft/internal/middleware"
	"github.com/nirjapatel2005/Tribal-Craft/internal/repository"
	"github.com/nirjapatel2005/Tribal-Craft/internal/storage"
	"github.com/nirjapatel2005/Tribal-Craft/internal/usecase"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.LoadConfig(logger)
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
		logger.Warnf("Invalid LOG_LEVEL '%s', using default: %s", cfg.LogLevel, logLevel.String())
	}
	logger.SetLevel(logLevel)
	logger.Info("Starting Tribal Craft API...")

	gin.SetMode(cfg.GinMode)
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := repository.NewStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("FATAL: Failed to open %s store: %v", cfg.StoreDriver, err)
	}
	logger.Infof("Store initialized with driver %s.", store.Driver)

	var (
		locker      lock.Locker = lock.NewLocalLocker(cfg.CartLockTTL)
		redisClient *redis.Client
	)
	if cfg.RedisAddr != "" {
		redisClient, err = lock.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Fatalf("FATAL: Failed to connect to Redis at %s: %v", cfg.RedisAddr, err)
		}
		locker = lock.NewRedisLocker(redisClient, cfg.CartLockTTL, logger)
		logger.Info("Cart lock backed by Redis.")
	}

	var publisher events.Publisher = events.NewLogPublisher(logger)
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		logger.Infof("Domain events published to Kafka topic %s.", cfg.KafkaTopic)
	}

	images, err := storage.NewDiskImageStore(cfg.UploadDir, cfg.UploadMaxBytes, logger)
	if err != nil {
		logger.Fatalf("FATAL: %v", err)
	}
	tokens := auth.NewJWTService(cfg.JWTSecret, cfg.JWTTTL)

	// --- Dependency Injection ---
	userUseCase := usecase.NewUserUseCase(store.Users, tokens, logger)
	cartUseCase := usecase.NewCartUseCase(store.Carts, locker, logger)
	orderUseCase := usecase.NewOrderUseCase(store.Orders, store.Carts, locker, publisher, logger)
	craftUseCase := usecase.NewCraftUseCase(store.Crafts, images, publisher, logger)
	contactUseCase := usecase.NewContactUseCase(store.Contacts, publisher, logger)
	logger.Info("Use cases initialized.")

	if cfg.AdminEmail != "" {
		admin, err := userUseCase.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			logger.Fatalf("FATAL: Failed to ensure admin account %s: %v", cfg.AdminEmail, err)
		}
		logger.Infof("Admin account ready: %s", admin.Email)
	}

	router := delivery.NewRouter(delivery.RouterDeps{
		Users:          userUseCase,
		Carts:          cartUseCase,
		Orders:         orderUseCase,
		Crafts:         craftUseCase,
		Contacts:       contactUseCase,
		Guard:          middleware.NewGuard(tokens, store.Users, logger),
		Store:          store,
		UploadDir:      images.Dir(),
		UploadMaxBytes: cfg.UploadMaxBytes,
		Logger:         logger,
	})
	logger.Info("Routes registered.")

	// --- Start Server ---
	srv := &http.Server{Addr: cfg.Port, Handler: router}
	serveErr := make(chan error, 1)
	go func() {
		logger.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received.")
	case err := <-serveErr:
		logger.Errorf("Failed to start server on port %s: %v", cfg.Port, err)
		exitCode = 1
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server shutdown did not complete: %v", err)
	}
	if err := publisher.Close(); err != nil {
		logger.Errorf("Failed to close event publisher: %v", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Errorf("Failed to close Redis client: %v", err)
		}
	}
	if err := store.Close(shutdownCtx); err != nil {
		logger.Errorf("Failed to close store: %v", err)
	}
	logger.Info("Server stopped.")
	os.Exit(exitCode)
}
