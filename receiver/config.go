package receiver

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/prilive-com/tgcmd/tg"
)

// Config holds receiver configuration.
type Config struct {
	// Bot token
	Token tg.SecretToken

	// API URL (defaults to https://api.telegram.org/bot)
	BaseURL string

	// Long polling configuration
	PollingTimeout     int           // Seconds to wait (0-60)
	PollingLimit       int           // Max updates per request (1-100)
	PollingMaxErrors   int           // Max consecutive errors (0 = unlimited)
	DeleteWebhookFirst bool          // Delete webhook before starting
	AllowedUpdates     []string      // Filter update types
	RetryInitialDelay  time.Duration // Initial retry delay
	RetryMaxDelay      time.Duration // Maximum retry delay
	RetryBackoffFactor float64       // Backoff multiplier

	// Common configuration
	UpdateBufferSize int // Channel buffer size

	// Circuit breaker
	BreakerMaxRequests uint32
	BreakerInterval    time.Duration
	BreakerTimeout     time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		PollingTimeout:     30,
		PollingLimit:       100,
		PollingMaxErrors:   10,
		DeleteWebhookFirst: false,
		RetryInitialDelay:  time.Second,
		RetryMaxDelay:      60 * time.Second,
		RetryBackoffFactor: 2.0,
		UpdateBufferSize:   100,
		BreakerMaxRequests: 5,
		BreakerInterval:    2 * time.Minute,
		BreakerTimeout:     60 * time.Second,
	}
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	cfg.Token = tg.SecretToken(getEnv("TELEGRAM_BOT_TOKEN", ""))

	if url := getEnv("TELEGRAM_API_BASE_URL", ""); url != "" {
		cfg.BaseURL = url
	}

	if timeout, err := strconv.Atoi(getEnv("POLLING_TIMEOUT", "30")); err == nil {
		if timeout < 0 || timeout > 60 {
			return nil, tg.NewValidationError("POLLING_TIMEOUT", "must be 0-60")
		}
		cfg.PollingTimeout = timeout
	}

	if limit, err := strconv.Atoi(getEnv("POLLING_LIMIT", "100")); err == nil {
		if limit < 1 || limit > 100 {
			return nil, tg.NewValidationError("POLLING_LIMIT", "must be 1-100")
		}
		cfg.PollingLimit = limit
	}

	if maxErrors, err := strconv.Atoi(getEnv("POLLING_MAX_ERRORS", "10")); err == nil {
		cfg.PollingMaxErrors = maxErrors
	}

	cfg.DeleteWebhookFirst = strings.ToLower(getEnv("POLLING_DELETE_WEBHOOK", "false")) == "true"

	if updates := getEnv("ALLOWED_UPDATES", ""); updates != "" {
		for _, u := range strings.Split(updates, ",") {
			if trimmed := strings.TrimSpace(u); trimmed != "" {
				cfg.AllowedUpdates = append(cfg.AllowedUpdates, trimmed)
			}
		}
	}

	if d, err := time.ParseDuration(getEnv("POLLING_RETRY_INITIAL_DELAY", "1s")); err == nil {
		cfg.RetryInitialDelay = d
	}
	if d, err := time.ParseDuration(getEnv("POLLING_RETRY_MAX_DELAY", "60s")); err == nil {
		cfg.RetryMaxDelay = d
	}
	if f, err := strconv.ParseFloat(getEnv("POLLING_RETRY_BACKOFF_FACTOR", "2.0"), 64); err == nil {
		cfg.RetryBackoffFactor = f
	}

	if i, err := strconv.Atoi(getEnv("UPDATE_BUFFER_SIZE", "100")); err == nil {
		cfg.UpdateBufferSize = i
	}

	if i, err := strconv.ParseUint(getEnv("BREAKER_MAX_REQUESTS", "5"), 10, 32); err == nil {
		cfg.BreakerMaxRequests = uint32(i)
	}
	if d, err := time.ParseDuration(getEnv("BREAKER_INTERVAL", "2m")); err == nil {
		cfg.BreakerInterval = d
	}
	if d, err := time.ParseDuration(getEnv("BREAKER_TIMEOUT", "60s")); err == nil {
		cfg.BreakerTimeout = d
	}

	return &cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
