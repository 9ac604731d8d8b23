package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Port:      "8080",
		Env:       "development",
		JWTSecret: "secret",
		Scheduler: SchedulerConfig{
			ReconcileCron: "30 2 * * *",
			SummaryCron:   "0 20 * * 5",
			Timezone:      "UTC",
		},
		Notifier: NotifierConfig{Timeout: time.Second},
	}
}

func TestValidate(t *testing.T) {
	t.Run("accepts defaults", func(t *testing.T) {
		if err := validConfig().Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("rejects nil", func(t *testing.T) {
		var c *Config
		if err := c.Validate(); err == nil {
			t.Fatal("expected error for nil config")
		}
	})

	t.Run("rejects bad cron", func(t *testing.T) {
		c := validConfig()
		c.Scheduler.ReconcileCron = "every night"
		if err := c.Validate(); err == nil {
			t.Fatal("expected error for invalid cron expression")
		}
	})

	t.Run("rejects unknown timezone", func(t *testing.T) {
		c := validConfig()
		c.Scheduler.Timezone = "Mars/Olympus_Mons"
		if err := c.Validate(); err == nil {
			t.Fatal("expected error for invalid timezone")
		}
	})

	t.Run("rejects dev secret in production", func(t *testing.T) {
		c := validConfig()
		c.Env = "production"
		c.JWTSecret = "fallback-secret-key-for-dev-only"
		if err := c.Validate(); err == nil {
			t.Fatal("expected error for fallback secret in production")
		}
	})
}

func TestLoad(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_EXPIRES_IN", "not-a-duration")
	t.Setenv("NOTIFY_WEBHOOK_URL", "https://hooks.example.com/herd")
	t.Setenv("ENV", "development")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.JWTExpirationDur != 24*time.Hour {
		t.Errorf("expected fallback 24h expiry, got %s", cfg.JWTExpirationDur)
	}
	if cfg.Notifier.WebhookURL != "https://hooks.example.com/herd" {
		t.Errorf("unexpected webhook url %q", cfg.Notifier.WebhookURL)
	}
	if cfg.Notifier.Timeout != 15*time.Second {
		t.Errorf("expected default notifier timeout, got %s", cfg.Notifier.Timeout)
	}
}
