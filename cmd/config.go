package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// Storage is StoragePostgres or StorageMemory.
	Storage string

	// RedisAddr enables the tracking-number index; empty disables it.
	RedisAddr        string
	TrackingIndexTTL time.Duration

	// KafkaBrokers enables the Kafka publisher; empty logs events instead.
	KafkaBrokers          []string
	KafkaOrderEventsTopic string

	// ZonesFile is the YAML zone directory; empty disables city fallback.
	ZonesFile string

	TransitionMaxAttempts    int
	OutboxBatchSize          int
	FailedDeliveryStaleAfter time.Duration

	LogLevel slog.Level
}

// LoadConfig reads the environment, after loading .env when one exists.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}
	return configFromEnv(os.Getenv)
}

func configFromEnv(getenv func(string) string) (Config, error) {
	env := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := Config{
		HTTPPort:              env("HTTP_PORT", "8080"),
		DBHost:                env("DB_HOST", "localhost"),
		DBPort:                env("DB_PORT", "5432"),
		DBUser:                env("DB_USER", "postgres"),
		DBPassword:            env("DB_PASSWORD", ""),
		DBName:                env("DB_NAME", "fulfillment"),
		DBSslMode:             env("DB_SSLMODE", "disable"),
		Storage:               env("STORAGE", StoragePostgres),
		RedisAddr:             env("REDIS_ADDR", ""),
		KafkaOrderEventsTopic: env("KAFKA_ORDER_EVENTS_TOPIC", "fulfillment.order-events"),
		ZonesFile:             env("ZONES_FILE", ""),
	}

	if brokers := env("KAFKA_BROKERS", ""); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	var errs []error
	atoi := func(key string, fallback int) int {
		raw := env(key, strconv.Itoa(fallback))
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			errs = append(errs, fmt.Errorf("%s: %q is not a non-negative integer", key, raw))
			return fallback
		}
		return n
	}

	cfg.TransitionMaxAttempts = atoi("TRANSITION_MAX_ATTEMPTS", 3)
	cfg.OutboxBatchSize = atoi("OUTBOX_BATCH_SIZE", 100)
	cfg.TrackingIndexTTL = time.Duration(atoi("TRACKING_INDEX_TTL_SECONDS", 7*24*3600)) * time.Second
	cfg.FailedDeliveryStaleAfter = time.Duration(atoi("FAILED_DELIVERY_STALE_AFTER_MINUTES", 24*60)) * time.Minute

	if err := cfg.LogLevel.UnmarshalText([]byte(env("LOG_LEVEL", "info"))); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	if cfg.Storage != StoragePostgres && cfg.Storage != StorageMemory {
		errs = append(errs, fmt.Errorf("STORAGE: %q is neither %s nor %s", cfg.Storage, StoragePostgres, StorageMemory))
	}

	return cfg, errors.Join(errs...)
}

// DSN is the Postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
