package usecase

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"connect-backend/internal/user/domain"
	"connect-backend/internal/user/dto"
	"connect-backend/internal/user/repository"
	"connect-backend/pkg/cache"
	"connect-backend/pkg/config"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixture struct {
	db     *gorm.DB
	users  repository.UserRepository
	tokens repository.TokenRepository
	cache  cache.UserCache
	auth   AuthUsecase
	user   UserUsecase
	follow FollowUsecase
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.Token{}); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

func newFixture(t *testing.T, accessTTL, refreshTTL time.Duration) *fixture {
	t.Helper()

	db := newTestDB(t)
	cfg := &config.Config{
		JWTSecret:        "test-signing-key",
		JWTAccessExpiry:  accessTTL,
		JWTRefreshExpiry: refreshTTL,
		CacheTTL:         time.Minute,
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	users := repository.NewUserRepository(db)
	tokens := repository.NewTokenRepository(db)
	tx := repository.NewTransactor(db)
	userCache := cache.NewMemoryCache(cfg.CacheTTL)

	auth := NewAuthUsecase(users, tokens, cfg)
	return &fixture{
		db:     db,
		users:  users,
		tokens: tokens,
		cache:  userCache,
		auth:   auth,
		user:   NewUserUsecase(users, tx, auth, userCache, log),
		follow: NewFollowUsecase(users, tx, userCache, log),
	}
}

func (f *fixture) register(t *testing.T, username string) (string, *dto.AuthResponse) {
	t.Helper()
	id, pair, err := f.user.Register(context.Background(), &dto.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret-password",
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return id, pair
}

func (f *fixture) mustGet(t *testing.T, id string) *domain.User {
	t.Helper()
	user, err := f.users.FindByID(id)
	if err != nil {
		t.Fatalf("find user %s: %v", id, err)
	}
	if user == nil {
		t.Fatalf("user %s not found", id)
	}
	return user
}
