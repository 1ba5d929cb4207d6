package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Rules  RulesConfig
	OCR    OCRConfig
	Export ExportConfig
}

// RulesConfig holds extraction-rule configuration
type RulesConfig struct {
	// Path points at an alternate rules artifact. Empty means the embedded
	// default rule set.
	Path string
}

// OCRConfig holds text-extraction configuration
type OCRConfig struct {
	MaxPages    int
	ReadTimeout time.Duration
}

// ExportConfig holds report-export configuration
type ExportConfig struct {
	SheetName string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Rules: RulesConfig{
			Path: getEnv("DOCPROC_RULES_PATH", ""),
		},
		OCR: OCRConfig{
			MaxPages:    getEnvAsInt("DOCPROC_MAX_PAGES", 0),
			ReadTimeout: getEnvAsDuration("DOCPROC_READ_TIMEOUT", 30*time.Second),
		},
		Export: ExportConfig{
			SheetName: getEnv("DOCPROC_EXPORT_SHEET", "Documents"),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.OCR.MaxPages < 0 {
		return NewAppError("CONFIG_ERROR", "DOCPROC_MAX_PAGES must be >= 0", ErrInvalidInput)
	}
	if c.Export.SheetName == "" {
		return NewAppError("CONFIG_ERROR", "DOCPROC_EXPORT_SHEET is required", ErrInvalidInput)
	}
	return nil
}
