package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config aggregates application-wide configuration values read from the environment.
type Config struct {
	Env      string `env:"APP_ENV" env-default:"dev"`
	HTTPAddr string `env:"HTTP_ADDR" env-default:":8080"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	DatabaseURL string `env:"DATABASE_URL" env-required:"true"`

	RedisAddr     string `env:"REDIS_ADDR" env-required:"true"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" env-default:"0"`

	JWTSecret string        `env:"JWT_SECRET" env-required:"true"`
	TokenTTL  time.Duration `env:"JWT_TTL" env-default:"24h"`

	WorkerCount  int           `env:"WORKER_COUNT" env-default:"1"`
	UserCacheTTL time.Duration `env:"USER_CACHE_TTL" env-default:"5m"`

	WriteRateLimit float64 `env:"WRITE_RATE_LIMIT" env-default:"10"`
	WriteRateBurst int     `env:"WRITE_RATE_BURST" env-default:"20"`
}

var (
	loadDotEnv = func() error { return godotenv.Load() }
	readEnv    = cleanenv.ReadEnv
)

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// .env 不存在時直接使用環境變數
	_ = loadDotEnv()

	var cfg Config
	if err := readEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// IsDevelopment reports whether logs should be human readable.
func (c *Config) IsDevelopment() bool {
	return c.Env == "dev"
}

func (c *Config) validate() error {
	for name, v := range map[string]string{
		"DATABASE_URL": c.DatabaseURL,
		"REDIS_ADDR":   c.RedisAddr,
		"JWT_SECRET":   c.JWTSecret,
	} {
		if v == "" {
			return fmt.Errorf("環境變數 %s 未設定", name)
		}
	}
	if c.WorkerCount <= 0 {
		return fmt.Errorf("invalid WORKER_COUNT: %d", c.WorkerCount)
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("invalid REDIS_DB: %d", c.RedisDB)
	}
	if c.TokenTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	if c.WriteRateLimit < 0 || c.WriteRateBurst < 0 {
		return errors.New("WRITE_RATE_LIMIT and WRITE_RATE_BURST must not be negative")
	}
	return nil
}
