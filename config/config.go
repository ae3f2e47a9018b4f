package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config stores the application configuration. Values come from the
// environment (optionally seeded from a .env file) with defaults that
// work against the public catalog out of the box.
type Config struct {
	// HTTP server
	ServerAddr  string
	ProxyPrefix string // path prefix stripped before forwarding to the upstream

	// Upstream catalog API
	UpstreamBaseURL   string
	RequestTimeout    time.Duration // per-attempt bound
	MaxRetries        int           // additional attempts beyond the first
	RetryBaseDelay    time.Duration // backoff schedule is D, 2D, 4D, ...
	MinRequestSpacing time.Duration // minimum gap between call starts per client

	// Redis response cache
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	// Logging
	LogLevel      string
	LogOutputPath string
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvDuration gets an environment variable as a time.Duration
// (e.g. "10s", "100ms") or returns a default value.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// Attempt to load .env file. godotenv.Load() will not override existing env vars.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env, relying on existing environment variables and defaults.")
	}

	return &Config{
		ServerAddr:  getEnv("SERVER_ADDR", ":8080"),
		ProxyPrefix: getEnv("PROXY_PREFIX", "/api/proxy"),

		UpstreamBaseURL:   getEnv("UPSTREAM_BASE_URL", "https://saavn.dev/api"),
		RequestTimeout:    getEnvDuration("REQUEST_TIMEOUT", 10*time.Second),
		MaxRetries:        getEnvInt("MAX_RETRIES", 3),
		RetryBaseDelay:    getEnvDuration("RETRY_BASE_DELAY", time.Second),
		MinRequestSpacing: getEnvDuration("MIN_REQUEST_SPACING", 100*time.Millisecond),

		RedisHost:     getEnv("REDIS_HOST", "127.0.0.1"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		CacheTTL:      getEnvDuration("CACHE_TTL", 10*time.Minute),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogOutputPath: getEnv("LOG_OUTPUT_PATH", ""),
	}
}
