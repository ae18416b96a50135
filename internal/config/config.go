package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// placeholderKeys are credential values that count as "not configured".
// CI and local setups tend to leave these in the environment.
var placeholderKeys = map[string]bool{
	"":         true,
	"test-key": true,
	"changeme": true,
}

// Config holds all configuration values.
type Config struct {
	// Search providers
	BraveAPIKey     string
	SerperAPIKey    string
	FallbackEnabled bool
	SearchTimeout   time.Duration
	MaxRetries      int
	RetryBaseDelay  time.Duration

	// Knowledge retrieval
	RelevanceThreshold float64
	MaxEntryAgeDays    int

	// Conversation memory
	MaxSessions         int
	MaxTopicsPerSession int
	MaxRecentMessages   int
	MaxCorrections      int
	RepetitionThreshold float64
	CorrectionThreshold float64

	// Embedding (optional, replaces the bag-of-words vectorizer)
	EmbedProvider string
	EmbedModel    string
	OllamaHost    string
	OpenAIAPIKey  string

	// Inspection server
	HTTPAddr string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Embedding provider names.
const (
	ProviderNone   = ""
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		BraveAPIKey:     os.Getenv("BRAVE_API_KEY"),
		SerperAPIKey:    os.Getenv("SERPER_API_KEY"),
		FallbackEnabled: getEnv("SEARCH_FALLBACK_ENABLED", "true") == "true",
		SearchTimeout:   getDuration("SEARCH_TIMEOUT", 10*time.Second),
		MaxRetries:      getInt("SEARCH_MAX_RETRIES", 3),
		RetryBaseDelay:  getDuration("SEARCH_RETRY_BASE_DELAY", time.Second),

		RelevanceThreshold: getFloat("NERDALERT_RELEVANCE_THRESHOLD", 0.3),
		MaxEntryAgeDays:    getInt("NERDALERT_MAX_ENTRY_AGE_DAYS", 30),

		MaxSessions:         getInt("NERDALERT_MAX_SESSIONS", 50),
		MaxTopicsPerSession: getInt("NERDALERT_MAX_TOPICS", 20),
		MaxRecentMessages:   getInt("NERDALERT_MAX_RECENT_MESSAGES", 5),
		MaxCorrections:      getInt("NERDALERT_MAX_CORRECTIONS", 10),
		RepetitionThreshold: getFloat("NERDALERT_REPETITION_THRESHOLD", 0.7),
		CorrectionThreshold: getFloat("NERDALERT_CORRECTION_THRESHOLD", 0.6),

		EmbedProvider: getEnv("NERDALERT_EMBED_PROVIDER", ProviderNone),
		EmbedModel:    getEnv("NERDALERT_EMBED_MODEL", "all-minilm:l6-v2"),
		OllamaHost:    getEnv("OLLAMA_HOST", "http://localhost:11434"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),

		HTTPAddr: getEnv("NERDALERT_HTTP_ADDR", ":8080"),

		LogFile:  getEnv("NERDALERT_LOG_FILE", "/tmp/nerdalert.log"),
		LogLevel: parseLogLevel(getEnv("NERDALERT_LOG_LEVEL", "INFO")),
	}
}

// BraveConfigured reports whether the Brave credential is usable.
func (c Config) BraveConfigured() bool {
	return !placeholderKeys[c.BraveAPIKey]
}

// SerperConfigured reports whether the Serper credential is usable.
func (c Config) SerperConfigured() bool {
	return !placeholderKeys[c.SerperAPIKey]
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

// getDuration accepts Go duration strings ("10s") and bare numbers,
// which are read as milliseconds.
func getDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(val); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
