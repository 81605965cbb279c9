package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENV", "CI", "SERVER_PORT", "SERVER_HOST",
		"SPOONACULAR_API_KEY", "SPOONACULAR_API_KEY_FILE", "SPOONACULAR_API_URL",
		"LLM_API_KEY", "LLM_API_KEY_FILE", "LLM_API_URL", "LLM_MODEL",
		"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB", "REDIS_URL",
		"ALLOWED_ORIGINS", "EXTERNAL_TIMEOUT", "ENRICH_CONCURRENCY", "SEARCH_RESULTS",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("should apply defaults", func(t *testing.T) {
		clearConfigEnv(t)

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.ServerPort)
		assert.Equal(t, "https://api.spoonacular.com", cfg.SpoonacularBaseURL)
		assert.Equal(t, "deepseek-chat", cfg.LLMModel)
		assert.Equal(t, 10*time.Second, cfg.ExternalTimeout)
		assert.Equal(t, 5, cfg.EnrichConcurrency)
		assert.Equal(t, 15, cfg.SearchResults)
		assert.Len(t, cfg.AllowedOrigins, 2)
	})

	t.Run("should read values from the environment", func(t *testing.T) {
		clearConfigEnv(t)
		t.Setenv("SERVER_PORT", "9000")
		t.Setenv("SPOONACULAR_API_KEY", "spoon-key")
		t.Setenv("LLM_API_KEY", "llm-key")
		t.Setenv("EXTERNAL_TIMEOUT", "3s")
		t.Setenv("ENRICH_CONCURRENCY", "8")
		t.Setenv("ALLOWED_ORIGINS", "https://app.example.com")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "9000", cfg.ServerPort)
		assert.Equal(t, "spoon-key", cfg.SpoonacularAPIKey)
		assert.Equal(t, "llm-key", cfg.LLMAPIKey)
		assert.Equal(t, 3*time.Second, cfg.ExternalTimeout)
		assert.Equal(t, 8, cfg.EnrichConcurrency)
		assert.Equal(t, []string{"https://app.example.com"}, cfg.AllowedOrigins)
	})

	t.Run("should read secrets from files", func(t *testing.T) {
		clearConfigEnv(t)
		keyFile := t.TempDir() + "/spoonacular_api_key"
		require.NoError(t, os.WriteFile(keyFile, []byte("file-key\n"), 0600))
		t.Setenv("SPOONACULAR_API_KEY_FILE", keyFile)

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "file-key", cfg.SpoonacularAPIKey)
	})

	t.Run("should reject malformed numeric values", func(t *testing.T) {
		clearConfigEnv(t)
		t.Setenv("ENRICH_CONCURRENCY", "many")

		_, err := LoadConfig()

		assert.Error(t, err)
	})

	t.Run("should reject a non-positive concurrency", func(t *testing.T) {
		clearConfigEnv(t)
		t.Setenv("ENRICH_CONCURRENCY", "0")

		_, err := LoadConfig()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "ENRICH_CONCURRENCY")
	})

	t.Run("should require API keys in production", func(t *testing.T) {
		clearConfigEnv(t)
		t.Setenv("ENV", "production")

		_, err := LoadConfig()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "SPOONACULAR_API_KEY")
		assert.Contains(t, err.Error(), "LLM_API_KEY")
	})
}
