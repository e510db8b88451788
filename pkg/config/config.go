package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production, test

	// Redis
	Redis RedisConfig

	// Upstream providers
	Sina   SinaConfig
	Xueqiu XueqiuConfig

	// Quote pipeline
	Quote QuoteConfig

	// Transport
	HTTPTimeout   time.Duration
	HTTPRateLimit int // requests per second, 0 = unlimited

	// Logging
	LogLevel  string
	LogFormat string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// SinaConfig holds the legacy feed endpoints
type SinaConfig struct {
	QuoteURL   string
	SuggestURL string
	Referer    string
}

// XueqiuConfig holds the JSON feed endpoints
type XueqiuConfig struct {
	HomeURL   string
	QuoteURL  string
	SearchURL string
	Referer   string
}

// QuoteConfig holds the poll pipeline settings
type QuoteConfig struct {
	Codes            []string
	SortOrder        int // 0 = provider order, 1 = ascending, -1 = descending
	PollSchedule     string
	FetchConcurrency int
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		Sina: SinaConfig{
			QuoteURL:   getEnv("SINA_QUOTE_URL", "https://hq.sinajs.cn/list="),
			SuggestURL: getEnv("SINA_SUGGEST_URL", "http://suggest3.sinajs.cn/suggest/type=85,86,88&key="),
			Referer:    getEnv("SINA_REFERER", "http://finance.sina.com.cn/"),
		},

		Xueqiu: XueqiuConfig{
			HomeURL:   getEnv("XUEQIU_HOME_URL", "https://xueqiu.com/"),
			QuoteURL:  getEnv("XUEQIU_QUOTE_URL", "https://stock.xueqiu.com/v5/stock/batch/quote.json"),
			SearchURL: getEnv("XUEQIU_SEARCH_URL", "https://xueqiu.com/stock/search.json"),
			Referer:   getEnv("XUEQIU_REFERER", "https://stock.xueqiu.com/"),
		},

		Quote: QuoteConfig{
			Codes:            getEnvAsList("QUOTE_CODES", "sh000001,hk00700,usr_aapl,cnf_V2201"),
			SortOrder:        getEnvAsInt("QUOTE_SORT_ORDER", 0),
			PollSchedule:     getEnv("POLL_SCHEDULE", "*/5 * * * * *"),
			FetchConcurrency: getEnvAsInt("FETCH_CONCURRENCY", 4),
		},

		HTTPTimeout:   getEnvAsDuration("HTTP_TIMEOUT", "10s"),
		HTTPRateLimit: getEnvAsInt("HTTP_RATE_LIMIT", 10),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if configuration values are usable
func (c *Config) validate() error {
	switch c.Env {
	case "development", "staging", "production", "test":
	default:
		return fmt.Errorf("ENV must be one of: development, staging, production, test")
	}

	if c.Quote.SortOrder < -1 || c.Quote.SortOrder > 1 {
		return fmt.Errorf("QUOTE_SORT_ORDER must be -1, 0 or 1, got %d", c.Quote.SortOrder)
	}

	if c.Quote.FetchConcurrency < 1 {
		return fmt.Errorf("FETCH_CONCURRENCY must be >= 1, got %d", c.Quote.FetchConcurrency)
	}

	if c.HTTPRateLimit < 0 {
		return fmt.Errorf("HTTP_RATE_LIMIT must not be negative")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from the working directory or next to the executable
func loadEnvFile() {
	paths := []string{".env"}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	duration, err := time.ParseDuration(getEnv(key, defaultValue))
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}

// getEnvAsList splits a comma separated value, dropping blanks
func getEnvAsList(key string, defaultValue string) []string {
	var out []string
	for _, item := range strings.Split(getEnv(key, defaultValue), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
