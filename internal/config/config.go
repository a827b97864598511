package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/dvloznov/moneylover-importer/internal/moneylover"
	"github.com/dvloznov/moneylover-importer/internal/suggest"
)

type Config struct {
	// MoneyLover
	AccessToken string
	BaseURL     string
	WalletName  string
	HTTPTimeout time.Duration

	// Gemini (category suggestions, optional)
	GeminiAPIKey string
	GeminiModel  string

	// Google Cloud Storage (gs:// paths, optional)
	GoogleCredentialsFile string

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads configuration from the environment.
// Callers load a .env file first if they want one.
func Load() *Config {
	return &Config{
		AccessToken: getEnv("MONEYLOVER_ACCESS_TOKEN", os.Getenv("ACCESS_TOKEN")),
		BaseURL:     getEnv("MONEYLOVER_BASE_URL", moneylover.DefaultBaseURL),
		WalletName:  getEnv("MONEYLOVER_WALLET", ""),
		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 30*time.Second),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", suggest.DefaultModel),

		GoogleCredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", ""),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}
}

// Validate checks the settings every command relies on.
func (c *Config) Validate() error {
	var errors []string

	if parsed, err := url.Parse(c.BaseURL); err != nil {
		errors = append(errors, fmt.Sprintf("invalid MONEYLOVER_BASE_URL '%s': %v", c.BaseURL, err))
	} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
		errors = append(errors, fmt.Sprintf("invalid MONEYLOVER_BASE_URL scheme '%s': must be 'http' or 'https'", parsed.Scheme))
	}

	if c.HTTPTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid HTTP_TIMEOUT %v: must be at least 1 second", c.HTTPTimeout))
	}

	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		errors = append(errors, fmt.Sprintf("invalid LOG_FORMAT '%s': must be 'console' or 'json'", c.LogFormat))
	}

	if c.GoogleCredentialsFile != "" {
		if _, err := os.Stat(c.GoogleCredentialsFile); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("Google credentials file does not exist: %s", c.GoogleCredentialsFile))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

// ValidateRemote checks the settings needed to talk to MoneyLover.
func (c *Config) ValidateRemote() error {
	if strings.TrimSpace(c.AccessToken) == "" {
		return fmt.Errorf("configuration validation failed:\n- MONEYLOVER_ACCESS_TOKEN (or ACCESS_TOKEN) is required")
	}
	return nil
}

// ValidateSuggest checks the settings needed for Gemini suggestions.
func (c *Config) ValidateSuggest() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("configuration validation failed:\n- GEMINI_API_KEY is required for suggestions")
	}
	if c.GeminiModel == "" {
		return fmt.Errorf("configuration validation failed:\n- GEMINI_MODEL cannot be empty")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
