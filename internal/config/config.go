package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Internal endpoints (reconcile trigger) are keyed by this value.
	InternalAPIKey string

	// Redis backs the ledger sync lock. Empty means in-process locking.
	RedisAddress  string
	RedisPassword string

	Scheduler SchedulerConfig
	Notifier  NotifierConfig
}

// SchedulerConfig holds cron settings for background jobs.
type SchedulerConfig struct {
	ReconcileCron string
	SummaryCron   string
	Timezone      string
}

// NotifierConfig holds the weekly finance summary webhook settings.
type NotifierConfig struct {
	WebhookURL string
	Token      string
	Timeout    time.Duration
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "herdbook"),
		DBPassword: getEnv("DB_PASSWORD", "herdbook"),
		DBName:     getEnv("DB_NAME", "herdbook"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		InternalAPIKey: os.Getenv("INTERNAL_API_KEY"),

		RedisAddress:  os.Getenv("REDIS_ADDRESS"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		Scheduler: SchedulerConfig{
			ReconcileCron: getEnv("RECONCILE_CRON", "30 2 * * *"),
			SummaryCron:   getEnv("SUMMARY_CRON", "0 20 * * 5"),
			Timezone:      getEnv("TIMEZONE", "UTC"),
		},
		Notifier: NotifierConfig{
			WebhookURL: os.Getenv("NOTIFY_WEBHOOK_URL"),
			Token:      os.Getenv("NOTIFY_TOKEN"),
		},
	}

	// Parse JWT expiration duration
	expStr := getEnv("JWT_EXPIRES_IN", "24h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 24h\n", expStr)
		expDur = 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	notifyTimeout := getEnv("NOTIFY_TIMEOUT", "15s")
	config.Notifier.Timeout, err = time.ParseDuration(notifyTimeout)
	if err != nil {
		log.Printf("Warning: invalid NOTIFY_TIMEOUT value '%s', falling back to 15s\n", notifyTimeout)
		config.Notifier.Timeout = 15 * time.Second
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	appConfig = config
	return config, nil
}

// Validate ensures that required configuration fields are populated and
// that cron expressions and the timezone parse.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Port == "" {
		return errors.New("PORT must be provided")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be provided")
	}
	if c.Env == "production" && c.JWTSecret == "fallback-secret-key-for-dev-only" {
		return errors.New("JWT_SECRET must be set in production")
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(c.Scheduler.ReconcileCron); err != nil {
		return fmt.Errorf("invalid RECONCILE_CRON %q: %w", c.Scheduler.ReconcileCron, err)
	}
	if _, err := parser.Parse(c.Scheduler.SummaryCron); err != nil {
		return fmt.Errorf("invalid SUMMARY_CRON %q: %w", c.Scheduler.SummaryCron, err)
	}
	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Scheduler.Timezone, err)
	}

	return nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
