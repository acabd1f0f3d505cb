package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const (
	ProviderWorldCoinIndex = "worldcoinindex"
	ProviderFake           = "fake"

	StorageFile  = "file"
	StorageRedis = "redis"
	StoragePG    = "pg"

	BroadcastPerConnection = "per-connection"
	BroadcastShared        = "shared"
)

type Config struct {
	// Common
	Env      string `env:"ENV" envDefault:"local"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// HTTP
	Port            string        `env:"PORT" envDefault:"3000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	// Provider
	Provider       string        `env:"PROVIDER" envDefault:"worldcoinindex"`
	APIBaseURL     string        `env:"API_BASE_URL" envDefault:"https://www.worldcoinindex.com"`
	APIKey         string        `env:"API_KEY" json:"-"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"5s"`
	// Live updates
	PushInterval  time.Duration `env:"PUSH_INTERVAL" envDefault:"60s"`
	BroadcastMode string        `env:"BROADCAST_MODE" envDefault:"per-connection"`
	// Goal storage
	Storage     string `env:"STORAGE" envDefault:"file"`
	GoalsFile   string `env:"GOALS_FILE" envDefault:"localdata/goals.json"`
	DatabaseURL string `env:"DATABASE_URL" json:"-"`
	// Redis
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" json:"-"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisGoalsKey string `env:"REDIS_GOALS_KEY" envDefault:"goals"`
}

// Load reads .env (if present) and the environment, applying defaults.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}
	return cfg, nil
}

// Validate fails fast on settings that would otherwise surface as broken
// fetches or a silently empty goal store.
func (c Config) Validate() error {
	var errs []error
	switch c.Provider {
	case ProviderWorldCoinIndex:
		if c.APIKey == "" {
			errs = append(errs, errors.New("API_KEY is required for PROVIDER=worldcoinindex"))
		}
		if c.APIBaseURL == "" {
			errs = append(errs, errors.New("API_BASE_URL is required for PROVIDER=worldcoinindex"))
		}
	case ProviderFake:
	default:
		errs = append(errs, fmt.Errorf("unsupported PROVIDER=%q", c.Provider))
	}
	switch c.Storage {
	case StorageFile:
		if c.GoalsFile == "" {
			errs = append(errs, errors.New("GOALS_FILE is required for STORAGE=file"))
		}
	case StorageRedis:
	case StoragePG:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for STORAGE=pg"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported STORAGE=%q", c.Storage))
	}
	switch c.BroadcastMode {
	case BroadcastPerConnection, BroadcastShared:
	default:
		errs = append(errs, fmt.Errorf("unsupported BROADCAST_MODE=%q", c.BroadcastMode))
	}
	if c.PushInterval <= 0 {
		errs = append(errs, errors.New("PUSH_INTERVAL must be positive"))
	}
	return errors.Join(errs...)
}
