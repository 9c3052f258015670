package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestLoadFromDefaults(t *testing.T) {
	v := viper.New()
	v.AddConfigPath(t.TempDir())
	cfg, err := LoadFrom(v)
	if err != nil {
		t.Fatalf("load config failed: %v", err)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("unexpected driver: %s", cfg.Database.Driver)
	}
	if cfg.Database.DSN != "file:billing?mode=memory&cache=shared" {
		t.Fatalf("unexpected dsn: %s", cfg.Database.DSN)
	}
	if !cfg.Billing.SeedDefaultCard || !cfg.Billing.SeedHistory {
		t.Fatalf("seeding should be enabled by default: %+v", cfg.Billing)
	}
	if cfg.Billing.CardRateLimit.MaxRequests != 10 || cfg.Billing.CardRateLimit.WindowSeconds != 60 {
		t.Fatalf("unexpected card rate limit: %+v", cfg.Billing.CardRateLimit)
	}
	if cfg.Queue.Queues["critical"] != 10 {
		t.Fatalf("unexpected queue weights: %+v", cfg.Queue.Queues)
	}
}

func TestLoadFromEnvOverride(t *testing.T) {
	t.Setenv("BILLING_CURRENCY", "EUR")
	t.Setenv("SERVER_PORT", "9090")
	v := viper.New()
	cfg, err := LoadFrom(v)
	if err != nil {
		t.Fatalf("load config failed: %v", err)
	}
	if cfg.Billing.Currency != "EUR" {
		t.Fatalf("env override not applied: %s", cfg.Billing.Currency)
	}
	if cfg.Server.Port != "9090" {
		t.Fatalf("env override not applied: %s", cfg.Server.Port)
	}
}
