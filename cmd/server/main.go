package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"rentnest/server/config"
	"rentnest/server/internal/api"
	"rentnest/server/internal/auth"
	"rentnest/server/internal/database"
	"rentnest/server/internal/geocoding"
	"rentnest/server/internal/notify"
	"rentnest/server/internal/queue"
	"rentnest/server/internal/scheduler"
	"rentnest/server/internal/storage"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.WithError(err).Warn("Failed to load .env file")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	if cfg.DatabasePath == "" {
		logger.Fatal("DATABASE_PATH is required")
	}
	if cfg.SessionSecret == "" {
		logger.Fatal("SESSION_SECRET is required")
	}

	logger.Infof("Using database at: %s", cfg.DatabasePath)
	db, err := database.NewDatabase(cfg.DatabasePath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	store, err := storage.NewStore(cfg.StorageRoot, cfg.PublicBaseURL, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize object storage")
	}

	var revocation auth.RevocationStore
	if cfg.RedisAddr != "" {
		redisStore := auth.NewRedisRevocationStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisStore.Ping(ctx); err != nil {
			cancel()
			logger.WithError(err).Fatal("Failed to connect to Redis")
		}
		cancel()
		defer redisStore.Close()
		revocation = redisStore
	} else {
		logger.Warn("REDIS_ADDR not set, sign-out will rely on token expiry alone")
	}

	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	authService := auth.NewService(db, cfg.SessionSecret, sessionTTL, revocation, logger)

	cacheDir := filepath.Join(os.TempDir(), "rentnest", "geocode_cache")
	geocoder := geocoding.NewGeocoder(logger, cacheDir)

	events := queue.NewEventQueue(256, logger)
	notifier := notify.NewService(cfg.TelegramBotToken, cfg.TelegramChatID, logger)
	if notifier.Enabled() {
		events.Subscribe(notifier.HandleEvent)
	} else {
		logger.Info("Telegram notifications disabled")
	}
	events.Start()
	defer events.Close()

	leaseScanner := scheduler.NewScheduler(db, time.Duration(cfg.LeaseScanInterval)*time.Minute, logger)
	leaseScanner.Start()
	defer leaseScanner.Stop()

	handler := api.NewHandler(db, logger, authService, store, geocoder, events, config.GetCityNames(), sessionTTL)

	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, handler)

	logger.Infof("Starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
