package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port          string
	StoreBackend  string
	MongoURL      string
	MongoDB       string
	PostgresDSN   string
	RedisAddr     string
	RedisPassword string
	TokenCacheTTL time.Duration
	BcryptCost    int
	CORSOrigins   []string
	LogLevel      slog.Level
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	ttl, err := time.ParseDuration(getenv("TOKEN_CACHE_TTL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("TOKEN_CACHE_TTL: %w", err)
	}
	cost, err := strconv.Atoi(getenv("BCRYPT_COST", strconv.Itoa(bcrypt.DefaultCost)))
	if err != nil {
		return nil, fmt.Errorf("BCRYPT_COST: %w", err)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(getenv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	cfg := &Config{
		Port:          getenv("PORT", "8080"),
		StoreBackend:  strings.ToLower(getenv("STORE_BACKEND", BackendMongo)),
		MongoURL:      getenv("MONGO_URL", "mongodb://localhost:27017"),
		MongoDB:       getenv("MONGO_DB", "backend"),
		PostgresDSN:   getenv("POSTGRES_DSN", ""),
		RedisAddr:     getenv("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		TokenCacheTTL: ttl,
		BcryptCost:    cost,
		CORSOrigins:   splitList(getenv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:      level,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendMongo:
		if c.MongoURL == "" {
			return errors.New("MONGO_URL is required for the mongo backend")
		}
	case BackendPostgres:
		if c.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.TokenCacheTTL <= 0 {
		return errors.New("TOKEN_CACHE_TTL must be positive")
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
