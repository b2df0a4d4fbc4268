package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the configuration for the server.
type Config struct {
	Port   int
	DBPath string

	JWTSecret string
	TokenTTL  time.Duration

	// Optional backends
	RedisAddr    string
	KafkaBrokers []string
	KafkaTopic   string

	// CheckoutClearDelay is how long a finalized cart stays visible before it
	// is cleared. Zero clears immediately.
	CheckoutClearDelay time.Duration

	AllowedOrigins []string
}

// Load reads an optional .env file and then the environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// Missing files are fine; real env vars take precedence.
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read %s: %w", f, err)
		}
	}
	return NewFromEnv()
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
	}
	if len(jwtSecret) < 16 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 16 characters")
	}

	port, err := intEnv("PORT", 8080)
	if err != nil {
		return nil, err
	}

	tokenTTL, err := durationEnv("TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	clearDelay, err := durationEnv("CHECKOUT_CLEAR_DELAY", 3500*time.Millisecond)
	if err != nil {
		return nil, err
	}
	if clearDelay < 0 {
		return nil, fmt.Errorf("CHECKOUT_CLEAR_DELAY cannot be negative")
	}

	return &Config{
		Port:               port,
		DBPath:             getEnv("DB_PATH", "./data/idine.db"),
		JWTSecret:          jwtSecret,
		TokenTTL:           tokenTTL,
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		KafkaBrokers:       listEnv("KAFKA_BROKERS"),
		KafkaTopic:         getEnv("KAFKA_TOPIC", "idine.orders"),
		CheckoutClearDelay: clearDelay,
		AllowedOrigins:     listOrDefault(listEnv("ALLOWED_ORIGINS"), "*"),
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}

func listEnv(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func listOrDefault(list []string, fallback ...string) []string {
	if len(list) == 0 {
		return fallback
	}
	return list
}
