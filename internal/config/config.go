package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Store drivers
const (
	StoreMongo  = "mongo"
	StoreSQLite = "sqlite"
)

// Development credentials used when the environment does not set them
const (
	DefaultJWTSecret     = "super-secret-key-change-in-production"
	DefaultAdminPassword = "password123"
)

// Config holds all configuration for the server
type Config struct {
	// Server
	Port  string
	Debug bool

	// Message store
	StoreDriver string
	MongoURI    string
	MongoDB     string
	SQLitePath  string

	// Redis cache; empty address disables caching
	RedisAddr string
	CacheTTL  time.Duration

	// Auth
	JWTSecret     string
	AdminUsername string
	AdminPassword string

	// CORS
	CORSAllowedOrigins string
	CORSAllowedMethods string
	CORSAllowedHeaders string

	Sentiment *SentimentConfig
	AI        *AIConfig
	Trend     *TrendConfig

	// Chat
	HistoryMaxMessages int

	// Backfill job; empty schedule disables it
	BackfillSchedule string
	BackfillBatch    int
}

// SentimentConfig configures the external sentiment classifier
type SentimentConfig struct {
	APIURL   string
	APIToken string
	Timeout  time.Duration
}

// IsEnabled returns true if a classifier endpoint is configured
func (c *SentimentConfig) IsEnabled() bool {
	return c.APIURL != ""
}

// TrendConfig holds the defaults for mood-trend queries
type TrendConfig struct {
	Window     int
	LastN      int
	SlopeSmall float64
	DeltaBig   float64
	LargeJump  float64
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		Debug: getBoolEnv("DEBUG", false),

		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", StoreMongo)),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getEnv("MONGO_DB", "chatbot"),
		SQLitePath:  getEnv("SQLITE_PATH", "chatbot.db"),

		RedisAddr: strings.TrimPrefix(getEnv("REDIS_URI", ""), "redis://"),
		CacheTTL:  getDurationEnv("CACHE_TTL", 24*time.Hour),

		JWTSecret:     getEnv("JWT_SECRET", DefaultJWTSecret),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", DefaultAdminPassword),

		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		CORSAllowedMethods: getEnv("CORS_ALLOWED_METHODS", "GET, POST, PUT, DELETE, OPTIONS"),
		CORSAllowedHeaders: getEnv("CORS_ALLOWED_HEADERS", "Content-Type, Authorization"),

		Sentiment: &SentimentConfig{
			APIURL:   getEnv("SENTIMENT_API_URL", ""),
			APIToken: getEnv("SENTIMENT_API_TOKEN", ""),
			Timeout:  getDurationEnv("SENTIMENT_TIMEOUT", 10*time.Second),
		},
		AI: DefaultAIConfig(),
		Trend: &TrendConfig{
			Window:     getIntEnv("TREND_WINDOW", 3),
			LastN:      getIntEnv("TREND_LAST_N", 200),
			SlopeSmall: getFloatEnv("TREND_SLOPE_SMALL", 0.01),
			DeltaBig:   getFloatEnv("TREND_DELTA_BIG", 0.25),
			LargeJump:  getFloatEnv("TREND_LARGE_JUMP", 0.5),
		},

		HistoryMaxMessages: getIntEnv("HISTORY_MAX_MESSAGES", 12),

		BackfillSchedule: getEnv("BACKFILL_SCHEDULE", "0 */5 * * * *"),
		BackfillBatch:    getIntEnv("BACKFILL_BATCH", 50),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.StoreDriver != StoreMongo && c.StoreDriver != StoreSQLite {
		return fmt.Errorf("STORE_DRIVER must be '%s' or '%s'", StoreMongo, StoreSQLite)
	}

	switch c.AI.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderMock:
	default:
		return fmt.Errorf("LLM_PROVIDER must be '%s', '%s' or '%s'", ProviderGemini, ProviderOpenAI, ProviderMock)
	}

	if c.Trend.Window < 1 {
		return fmt.Errorf("TREND_WINDOW must be positive")
	}
	if c.Trend.LastN < 1 {
		return fmt.Errorf("TREND_LAST_N must be positive")
	}
	if c.Trend.LargeJump <= 0 {
		return fmt.Errorf("TREND_LARGE_JUMP must be positive")
	}
	if c.HistoryMaxMessages < 1 {
		return fmt.Errorf("HISTORY_MAX_MESSAGES must be positive")
	}
	if c.BackfillBatch < 1 {
		return fmt.Errorf("BACKFILL_BATCH must be positive")
	}

	if !c.Debug {
		for _, key := range c.InsecureDefaults() {
			logrus.WithField("setting", key).Warn("Using the built-in development default; set it before exposing the server")
		}
	}

	return nil
}

// InsecureDefaults lists the credential settings still at their built-in values
func (c *Config) InsecureDefaults() []string {
	var keys []string
	if c.JWTSecret == DefaultJWTSecret {
		keys = append(keys, "JWT_SECRET")
	}
	if c.AdminPassword == DefaultAdminPassword {
		keys = append(keys, "ADMIN_PASSWORD")
	}
	return keys
}

// CacheEnabled reports whether a Redis address is configured
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
