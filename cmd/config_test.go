package cmd

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnv_Defaults(t *testing.T) {
	cfg, err := configFromEnv(func(string) string { return "" })
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, 3, cfg.TransitionMaxAttempts)
	assert.Equal(t, 100, cfg.OutboxBatchSize)
	assert.Equal(t, 7*24*time.Hour, cfg.TrackingIndexTTL)
	assert.Equal(t, 24*time.Hour, cfg.FailedDeliveryStaleAfter)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Contains(t, cfg.DSN(), "dbname=fulfillment")
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	env := map[string]string{
		"STORAGE":                    "memory",
		"KAFKA_BROKERS":              "k1:9092, k2:9092,",
		"TRACKING_INDEX_TTL_SECONDS": "60",
		"LOG_LEVEL":                  "debug",
	}
	cfg, err := configFromEnv(func(k string) string { return env[k] })
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, time.Minute, cfg.TrackingIndexTTL)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestConfigFromEnv_Invalid(t *testing.T) {
	env := map[string]string{
		"STORAGE":           "sqlite",
		"OUTBOX_BATCH_SIZE": "many",
		"LOG_LEVEL":         "chatty",
	}
	_, err := configFromEnv(func(k string) string { return env[k] })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORAGE")
	assert.Contains(t, err.Error(), "OUTBOX_BATCH_SIZE")
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}
