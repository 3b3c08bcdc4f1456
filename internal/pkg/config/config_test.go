package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %q", cfg.Port)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("expected 24h token ttl, got %v", cfg.TokenTTL)
	}
	if cfg.Mongo.Database != "smartshelf" {
		t.Errorf("expected smartshelf db, got %q", cfg.Mongo.Database)
	}
	if cfg.Admin.Email != "" {
		t.Errorf("expected no bootstrap admin by default, got %q", cfg.Admin.Email)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://localhost:5173" {
		t.Errorf("unexpected CORS origins: %v", cfg.CORSOrigins)
	}
	if !cfg.IsDevelopment() {
		t.Error("expected development by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":   "s3cret",
		"ENV":          "production",
		"TOKEN_TTL":    "2h",
		"CORS_ORIGINS": "https://shop.example.com,https://admin.example.com",
		"REDIS_DB":     "3",

		"BOOTSTRAP_ADMIN_EMAIL":    "root@example.com",
		"BOOTSTRAP_ADMIN_PASSWORD": "changeme",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.IsDevelopment() {
		t.Error("expected production")
	}
	if cfg.TokenTTL != 2*time.Hour {
		t.Errorf("expected 2h, got %v", cfg.TokenTTL)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("expected 2 origins, got %v", cfg.CORSOrigins)
	}
	if cfg.Redis.DB != 3 {
		t.Errorf("expected redis db 3, got %d", cfg.Redis.DB)
	}
	if cfg.Admin.Email != "root@example.com" || cfg.Admin.Password != "changeme" {
		t.Errorf("unexpected bootstrap admin: %+v", cfg.Admin)
	}
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	if _, err := load(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatal("expected error when JWT_SECRET is missing")
	}
}
