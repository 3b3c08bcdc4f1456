package config

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "session.yaml", filepath.Base(cfg.SessionFile))
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"SMARTSHELF_API_URL":      "https://shop.example.com/api/",
		"SMARTSHELF_SESSION_FILE": "/tmp/s.yaml",
		"SMARTSHELF_TIMEOUT":      "5s",
	}))
	require.NoError(t, err)

	assert.Equal(t, "https://shop.example.com/api", cfg.APIURL, "trailing slash is trimmed")
	assert.Equal(t, "/tmp/s.yaml", cfg.SessionFile)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoad_RejectsBadTimeout(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"SMARTSHELF_SESSION_FILE": "/tmp/s.yaml",
		"SMARTSHELF_TIMEOUT":      "0s",
	}))
	assert.Error(t, err)
}
