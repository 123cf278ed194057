package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const devJWTSecret = "alumnet-development-secret"

type Config struct {
	Port            string        `env:"PORT,             default=8080"`
	Env             string        `env:"ENV,              default=development"`
	JWTSecret       string        `env:"JWT_SECRET"`
	JWTTTL          time.Duration `env:"JWT_TTL,          default=24h"`
	LogLevel        string        `env:"LOG_LEVEL,        default=info"`
	LogPretty       bool          `env:"LOG_PRETTY,       default=false"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`

	DB       DBConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Activity ActivityConfig
	WS       WSConfig
}

type DBConfig struct {
	Driver       string `env:"DB_DRIVER,         default=sqlite"`
	DSN          string `env:"DB_DSN,            default=file:alumnet.db?_pragma=foreign_keys(1)"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS, default=20"`
	Tracing      bool   `env:"DB_TRACING,        default=false"`
	AutoMigrate  bool   `env:"DB_AUTO_MIGRATE,   default=true"`
}

type MongoConfig struct {
	Enabled  bool   `env:"MONGO_ENABLED, default=false"`
	URI      string `env:"MONGO_URI,     default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,      default=alumnet"`
}

type RedisConfig struct {
	Enabled           bool          `env:"REDIS_ENABLED,       default=false"`
	Addr              string        `env:"REDIS_ADDR,          default=localhost:6379"`
	Password          string        `env:"REDIS_PASSWORD"`
	DB                int           `env:"REDIS_DB,            default=0"`
	AnalyticsCacheTTL time.Duration `env:"ANALYTICS_CACHE_TTL, default=60s"`
	IdempotencyTTL    time.Duration `env:"IDEMPOTENCY_TTL,     default=24h"`
}

type ActivityConfig struct {
	Workers int `env:"ACTIVITY_WORKERS, default=4"`
	Buffer  int `env:"ACTIVITY_BUFFER,  default=256"`
}

type WSConfig struct {
	AllowedOrigins []string `env:"WS_ALLOWED_ORIGINS"`
}

// IsDevelopment reports whether the service runs outside production.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.DB.Driver)
	}
	if c.JWTSecret == "" {
		if !c.IsDevelopment() {
			return fmt.Errorf("config: JWT_SECRET is required outside development")
		}
		c.JWTSecret = devJWTSecret
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("config: JWT_TTL must be positive")
	}
	return nil
}
