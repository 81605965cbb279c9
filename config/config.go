package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Spoonacular configuration
	SpoonacularAPIKey  string
	SpoonacularBaseURL string

	// LLM configuration
	LLMAPIKey string
	LLMAPIURL string
	LLMModel  string

	// Redis configuration (optional, used for rate limiting)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// CORS
	AllowedOrigins []string

	// External call tuning
	ExternalTimeout   time.Duration
	EnrichConcurrency int
	SearchResults     int
}

// LoadConfig creates a new Config instance from environment variables, with
// Docker-secret file fallbacks for sensitive values.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),

		SpoonacularAPIKey:  getSecret("SPOONACULAR_API_KEY"),
		SpoonacularBaseURL: getEnv("SPOONACULAR_API_URL", "https://api.spoonacular.com"),

		LLMAPIKey: getSecret("LLM_API_KEY"),
		LLMAPIURL: getEnv("LLM_API_URL", "https://api.deepseek.com/v1/chat/completions"),
		LLMModel:  getEnv("LLM_MODEL", "deepseek-chat"),

		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getSecret("REDIS_PASSWORD"),
		RedisURL:      getEnv("REDIS_URL", ""),
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB value %q: %w", dbStr, err)
		}
		cfg.RedisDB = db
	}

	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	timeout, err := getDuration("EXTERNAL_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.ExternalTimeout = timeout

	concurrency, err := getInt("ENRICH_CONCURRENCY", 5)
	if err != nil {
		return nil, err
	}
	cfg.EnrichConcurrency = concurrency

	results, err := getInt("SEARCH_RESULTS", 15)
	if err != nil {
		return nil, err
	}
	cfg.SearchResults = results

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getSecret reads a sensitive value from KEY, or from the file named by
// KEY_FILE (Docker secrets convention).
func getSecret(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if path := os.Getenv(key + "_FILE"); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			return strings.TrimSpace(string(data))
		}
	}
	return ""
}

func getInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return v, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return v, nil
}
