package main

import (
	"context"

	api "connect-backend/cmd/api"
	"connect-backend/internal/user/domain"
	"connect-backend/internal/user/repository"
	"connect-backend/internal/user/usecase"
	"connect-backend/pkg/cache"
	"connect-backend/pkg/config"
	"connect-backend/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		logger.Fatalf("connect to database: %v", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&domain.User{}, &domain.Token{}); err != nil {
		logger.Fatalf("migrate database: %v", err)
	}

	// Initialize repositories (dependency injection)
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	tx := repository.NewTransactor(db)

	// Lookup cache: Redis when configured, in-process fallback otherwise
	userCache := buildCache(cfg, logger)

	// Initialize use cases
	authUc := usecase.NewAuthUsecase(userRepo, tokenRepo, cfg)
	userUc := usecase.NewUserUsecase(userRepo, tx, authUc, userCache, logger)
	followUc := usecase.NewFollowUsecase(userRepo, tx, userCache, logger)

	r := gin.Default()
	api.SetupRoutes(r, userUc, authUc, followUc)

	logger.Infof("server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatalf("start server: %v", err)
	}
}

func buildCache(cfg *config.Config, logger *logrus.Logger) cache.UserCache {
	if cfg.RedisAddr == "" {
		logger.Info("no redis address configured, using in-process user cache")
		return cache.NewMemoryCache(cfg.CacheTTL)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.WithError(err).Warn("redis unreachable, falling back to in-process user cache")
		return cache.NewMemoryCache(cfg.CacheTTL)
	}

	logger.Infof("connected to redis at %s", cfg.RedisAddr)
	return cache.NewRedisCache(client, cfg.CacheTTL)
}
