package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the configuration carries everything the
// pipeline needs. API keys are hard requirements in production; in other
// environments the server starts without them so that handler and service
// tests can run against fakes.
func ValidateConfig(cfg *Config) error {
	var errs []string

	if cfg.ServerPort == "" {
		errs = append(errs, "SERVER_PORT must not be empty")
	}
	if cfg.SpoonacularBaseURL == "" {
		errs = append(errs, "SPOONACULAR_API_URL must not be empty")
	}
	if cfg.LLMAPIURL == "" {
		errs = append(errs, "LLM_API_URL must not be empty")
	}
	if cfg.ExternalTimeout <= 0 {
		errs = append(errs, "EXTERNAL_TIMEOUT must be positive")
	}
	if cfg.EnrichConcurrency < 1 {
		errs = append(errs, "ENRICH_CONCURRENCY must be at least 1")
	}
	if cfg.SearchResults < 1 {
		errs = append(errs, "SEARCH_RESULTS must be at least 1")
	}

	if IsProduction() {
		if cfg.SpoonacularAPIKey == "" {
			errs = append(errs, "SPOONACULAR_API_KEY or SPOONACULAR_API_KEY_FILE is required in production")
		}
		if cfg.LLMAPIKey == "" {
			errs = append(errs, "LLM_API_KEY or LLM_API_KEY_FILE is required in production")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "\n"))
	}

	return nil
}
