// Package config loads the SmartShelf CLI settings from the environment.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const DefaultAPIURL = "http://localhost:8080/api"

type Config struct {
	APIURL      string        `env:"SMARTSHELF_API_URL, default=http://localhost:8080/api"`
	SessionFile string        `env:"SMARTSHELF_SESSION_FILE"`
	Timeout     time.Duration `env:"SMARTSHELF_TIMEOUT, default=30s"`
	LogLevel    string        `env:"LOG_LEVEL, default=warn"`
}

// Load reads the CLI configuration. An empty SessionFile resolves to
// <user config dir>/smartshelf/session.yaml.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("config: SMARTSHELF_TIMEOUT must be positive, got %s", cfg.Timeout)
	}

	if cfg.SessionFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("config: resolve session file: %w", err)
		}
		cfg.SessionFile = filepath.Join(dir, "smartshelf", "session.yaml")
	}
	return &cfg, nil
}
