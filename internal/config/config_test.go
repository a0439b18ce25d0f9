package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setMinimalEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://worker@db/pipeline")
	t.Setenv("MINIO_ENDPOINT", "minio:9000")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")
	t.Setenv("KAFKA_TOPIC", "video-processing-jobs")
}

func TestFromEnv(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test-key")
	t.Setenv("APP_ENV", "development")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "postgres://worker@db/pipeline", cfg.DatabaseURL)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "sk-test-key", cfg.OpenAIAPIKey)
	assert.True(t, cfg.Development)

	// Defaults for everything not set above.
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "videos/uploads/", cfg.UploadPrefix)
}

func TestFromEnvMissingDatabaseURL(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv("DATABASE_URL", "")

	_, err := FromEnv()
	assert.ErrorContains(t, err, "config validation failed")
}

func TestFromEnvRejectsMalformedAPIKey(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv("OPENAI_API_KEY", "not-a-key")

	_, err := FromEnv()
	assert.ErrorContains(t, err, "must start with 'sk-'")
}

func TestIntFromEnv(t *testing.T) {
	t.Setenv("FRAME_LIMIT", "30")
	assert.Equal(t, 30, IntFromEnv("FRAME_LIMIT", 60))

	t.Setenv("FRAME_LIMIT", "thirty")
	assert.Equal(t, 60, IntFromEnv("FRAME_LIMIT", 60))

	t.Setenv("FRAME_LIMIT", "")
	assert.Equal(t, 60, IntFromEnv("FRAME_LIMIT", 60))
}
