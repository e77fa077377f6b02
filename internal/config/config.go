package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"balances/internal/logger"
	"balances/internal/money"
)

type Config struct {
	// HTTP Server Configuration
	HTTPAddr           string
	HTTPRequestTimeout time.Duration
	MaxUploadBytes     int64

	// Currency Configuration
	CurrencyOverridesFile string
	ExchangeRounding      money.RoundingMode

	// Google Sheets Configuration
	GoogleSheetURL   string
	GoogleSheetRange string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	timeout, err := time.ParseDuration(getEnv("HTTP_REQUEST_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("config validation failed: HTTP_REQUEST_TIMEOUT: %w", err)
	}

	maxUpload, err := strconv.ParseInt(getEnv("MAX_UPLOAD_BYTES", "10485760"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("config validation failed: MAX_UPLOAD_BYTES: %w", err)
	}

	rounding, err := money.ParseRoundingMode(getEnv("EXCHANGE_ROUNDING", "half-up"))
	if err != nil {
		return nil, fmt.Errorf("config validation failed: EXCHANGE_ROUNDING: %w", err)
	}

	config := &Config{
		HTTPAddr:              getEnv("HTTP_ADDR", ":8080"),
		HTTPRequestTimeout:    timeout,
		MaxUploadBytes:        maxUpload,
		CurrencyOverridesFile: getEnv("CURRENCY_OVERRIDES_FILE", ""),
		ExchangeRounding:      rounding,
		GoogleSheetURL:        getEnv("GOOGLE_SHEET_URL", ""),
		GoogleSheetRange:      getEnv("GOOGLE_SHEET_RANGE", "Documents!A:G"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		LogFormat:             getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:         getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:             getEnv("LOG_OUTPUT", "stderr"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if c.HTTPRequestTimeout <= 0 {
		return fmt.Errorf("HTTP_REQUEST_TIMEOUT must be positive, got %s", c.HTTPRequestTimeout)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes)
	}
	if c.CurrencyOverridesFile != "" {
		if _, err := os.Stat(c.CurrencyOverridesFile); err != nil {
			return fmt.Errorf("CURRENCY_OVERRIDES_FILE: %w", err)
		}
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
