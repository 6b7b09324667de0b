package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

type AppEnv string

const (
	ProductionEnv AppEnv = "production"
	DevelopEnv    AppEnv = "develop"
	TestEnv       AppEnv = "test"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	NotifyLocal = "local"
	NotifyRedis = "redis"

	AuthJWT    = "jwt"
	AuthRemote = "remote"
)

// Config — все настройки сервера и queuectl.
type Config struct {
	AppEnv    AppEnv `env:"APP_ENV" envDefault:"develop"`
	HTTPPort  int    `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	DBDriver      string `env:"DB_DRIVER" envDefault:"sqlite"`
	DBHost        string `env:"DB_HOST" envDefault:"localhost"`
	DBPort        string `env:"DB_PORT" envDefault:"5432"`
	DBUser        string `env:"DB_USER"`
	DBPassword    string `env:"DB_PASSWORD"`
	DBName        string `env:"DB_NAME" envDefault:"queue"`
	DBPath        string `env:"DB_PATH" envDefault:"queue.db"`
	DBAutoMigrate bool   `env:"DB_AUTO_MIGRATE" envDefault:"true"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	NotifyBackend string        `env:"NOTIFY_BACKEND" envDefault:"local"`
	NotifyChannel string        `env:"NOTIFY_CHANNEL" envDefault:"queue:updates"`
	HubBuffer     int           `env:"HUB_BUFFER" envDefault:"64"`
	SSEHeartbeat  time.Duration `env:"SSE_HEARTBEAT" envDefault:"15s"`

	SkipMode string `env:"QUEUE_SKIP_MODE" envDefault:"preserve"`
	SwapMode string `env:"QUEUE_SWAP_MODE" envDefault:"share"`

	AuthMode        string        `env:"AUTH_MODE" envDefault:"jwt"`
	JWTAccessSecret string        `env:"JWT_ACCESS_SECRET"`
	AuthURL         string        `env:"AUTH_URL"`
	AuthCacheTTL    time.Duration `env:"AUTH_CACHE_TTL" envDefault:"5m"`

	PruneAfter    time.Duration `env:"PRUNE_AFTER" envDefault:"0s"`
	StatsSchedule string        `env:"STATS_SCHEDULE" envDefault:"0 * * * * *"`
	PruneSchedule string        `env:"PRUNE_SCHEDULE" envDefault:"0 */5 * * * *"`
}

// Load читает .env (если не задан ENV_CHEK, как в контейнере),
// затем переменные окружения.
func Load() (*Config, error) {
	if os.Getenv("ENV_CHEK") == "" {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrap(err, "config : failed to read .env")
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "config : failed to parse environment")
	}

	return cfg, cfg.Validate()
}

// Validate проверяет, что конфигурация пригодна для запуска.
func (c *Config) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid port: %d", c.HTTPPort)
	}

	switch c.DBDriver {
	case DriverPostgres:
		if c.DBHost == "" || c.DBName == "" {
			return errors.New("DB_HOST and DB_NAME are required for postgres")
		}
	case DriverSQLite:
		if c.DBPath == "" {
			return errors.New("DB_PATH is required for sqlite")
		}
	default:
		return errors.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	switch c.NotifyBackend {
	case NotifyLocal:
	case NotifyRedis:
		if c.RedisAddr == "" {
			return errors.New("REDIS_ADDR is required for the redis notify backend")
		}
	default:
		return errors.Errorf("unsupported NOTIFY_BACKEND %q", c.NotifyBackend)
	}

	if c.HubBuffer < 1 {
		return errors.Errorf("HUB_BUFFER must be positive, got %d", c.HubBuffer)
	}

	if c.SkipMode != "preserve" && c.SkipMode != "requeue" {
		return errors.Errorf("unsupported QUEUE_SKIP_MODE %q", c.SkipMode)
	}
	if c.SwapMode != "share" && c.SwapMode != "exchange" {
		return errors.Errorf("unsupported QUEUE_SWAP_MODE %q", c.SwapMode)
	}

	switch c.AuthMode {
	case AuthJWT:
		if c.JWTAccessSecret == "" {
			return errors.New("JWT_ACCESS_SECRET is required for jwt auth")
		}
	case AuthRemote:
		if c.AuthURL == "" {
			return errors.New("AUTH_URL is required for remote auth")
		}
	default:
		return errors.Errorf("unsupported AUTH_MODE %q", c.AuthMode)
	}

	if c.PruneAfter < 0 {
		return errors.New("PRUNE_AFTER must not be negative")
	}

	return nil
}

// PostgresDSN возвращает строку подключения для postgres-драйвера gorm.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}
