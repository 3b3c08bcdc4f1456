package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	// CORSOrigins lists the browser origins allowed to call the API.
	CORSOrigins []string `env:"CORS_ORIGINS, default=http://localhost:5173"`

	Mongo MongoConfig
	Redis RedisConfig
	Admin AdminConfig
}

// AdminConfig seeds the first ADMIN account at startup. Sign-up only creates
// USER accounts, so without it nobody can promote anyone.
type AdminConfig struct {
	Email    string `env:"BOOTSTRAP_ADMIN_EMAIL"`
	Password string `env:"BOOTSTRAP_ADMIN_PASSWORD"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=smartshelf"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// IsDevelopment reports whether the server runs with developer defaults
// (console logs, verbose errors in logs).
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return &cfg, nil
}

// MustLoad is Load that panics on error.
func MustLoad() *Config {
	cfg, err := Load(context.Background())
	if err != nil {
		panic(err.Error())
	}
	return cfg
}
