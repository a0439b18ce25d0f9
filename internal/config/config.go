package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds everything both binaries read from the environment. The
// dispatcher and the worker share one config type; each validates only
// the fields it needs via the struct tags below.
type Config struct {
	DatabaseURL string `validate:"required"`

	MinioEndpoint  string `validate:"required"`
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool

	KafkaBrokers []string `validate:"required,min=1"`
	KafkaTopic   string   `validate:"required"`

	OpenAIAPIKey string
	GeminiAPIKey string

	// HFToken enables the diarization pass when set.
	HFToken string

	// DiarizationEndpoint is the inference service the HF token authenticates
	// against.
	DiarizationEndpoint string

	// RedisAddr enables the dispatcher's opt-in idempotency guard when set.
	RedisAddr     string
	RedisPassword string

	ListenAddr   string
	UploadPrefix string

	Development bool
}

// LoadEnv loads environment variables from a .env file if one exists near the
// working directory. Missing files are not an error; system-wide environment
// variables may already be set.
func LoadEnv() error {
	envPaths := []string{".env", ".env.local", "../.env"}
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			break
		}
	}
	return nil
}

// FromEnv builds a Config from the process environment and validates it.
func FromEnv() (*Config, error) {
	cfg := &Config{
		DatabaseURL:         strings.TrimSpace(os.Getenv("DATABASE_URL")),
		MinioEndpoint:       envOrDefault("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey:      envOrDefault("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey:      envOrDefault("MINIO_SECRET_KEY", "minioadmin"),
		MinioUseSSL:         os.Getenv("MINIO_USE_SSL") == "true",
		KafkaBrokers:        splitList(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:          envOrDefault("KAFKA_TOPIC", "video-processing-jobs"),
		OpenAIAPIKey:        strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		GeminiAPIKey:        strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		HFToken:             strings.TrimSpace(os.Getenv("HF_TOKEN")),
		DiarizationEndpoint: strings.TrimSpace(os.Getenv("DIARIZATION_ENDPOINT")),
		RedisAddr:           strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		ListenAddr:          envOrDefault("LISTEN_ADDR", ":8080"),
		UploadPrefix:        envOrDefault("UPLOAD_PREFIX", "videos/uploads/"),
		Development:         os.Getenv("APP_ENV") == "development",
	}

	if cfg.OpenAIAPIKey != "" && !strings.HasPrefix(cfg.OpenAIAPIKey, "sk-") {
		return nil, fmt.Errorf("invalid OPENAI_API_KEY format: must start with 'sk-'")
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// IntFromEnv reads an integer environment variable, falling back when unset
// or malformed.
func IntFromEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
