package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Port        string
	DatabaseURL string

	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration
}

// Load reads configuration from environment variables and an optional
// config file. The JWT signing key has no default: it must be supplied
// explicitly or Load fails.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("CONNECT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("database.url", "host=localhost user=postgres password=postgres dbname=connect port=5432 sslmode=disable")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.access.expiry", 15*time.Minute)
	v.SetDefault("jwt.refresh.expiry", 168*time.Hour) // 7 days
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("cache.ttl", 5*time.Minute)

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	cfg := &Config{
		Port:             v.GetString("port"),
		DatabaseURL:      v.GetString("database.url"),
		JWTSecret:        v.GetString("jwt.secret"),
		JWTAccessExpiry:  v.GetDuration("jwt.access.expiry"),
		JWTRefreshExpiry: v.GetDuration("jwt.refresh.expiry"),
		RedisAddr:        v.GetString("redis.addr"),
		RedisPassword:    v.GetString("redis.password"),
		RedisDB:          v.GetInt("redis.db"),
		CacheTTL:         v.GetDuration("cache.ttl"),
	}

	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, errors.New("jwt secret is required (CONNECT_JWT_SECRET)")
	}
	if cfg.JWTAccessExpiry < 0 || cfg.JWTRefreshExpiry < 0 {
		return nil, fmt.Errorf("token expiries must be non-negative")
	}

	return cfg, nil
}
