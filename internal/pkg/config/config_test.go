package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.DB.Driver != "sqlite" {
		t.Fatalf("unexpected defaults: port=%s driver=%s", cfg.Port, cfg.DB.Driver)
	}
	if cfg.JWTTTL != 24*time.Hour {
		t.Fatalf("expected 24h token ttl, got %s", cfg.JWTTTL)
	}
	if cfg.JWTSecret != devJWTSecret {
		t.Fatalf("expected development secret fallback")
	}
	if cfg.Redis.AnalyticsCacheTTL != time.Minute {
		t.Fatalf("expected 60s cache ttl, got %s", cfg.Redis.AnalyticsCacheTTL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV":                "production",
		"JWT_SECRET":         "s3cret",
		"DB_DRIVER":          "postgres",
		"ACTIVITY_WORKERS":   "8",
		"WS_ALLOWED_ORIGINS": "https://a.example,https://b.example",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DB.Driver != "postgres" || cfg.Activity.Workers != 8 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if len(cfg.WS.AllowedOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.WS.AllowedOrigins)
	}
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV": "production",
	}))
	if err == nil {
		t.Fatal("expected error without JWT_SECRET")
	}
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"DB_DRIVER": "oracle",
	}))
	if err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}
