package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joseph-ayodele/dossier-eval/constants"
)

// Config holds all application configuration
type Config struct {
	LLM     LLMConfig
	Extract ExtractConfig
	Files   FilesConfig
	Batch   BatchConfig
}

// LLMConfig holds scoring-service configuration
type LLMConfig struct {
	URL         string
	Model       string
	APIKey      string
	MaxTokens   int
	Timeout     time.Duration
}

// ExtractConfig holds PDF text extraction configuration
type ExtractConfig struct {
	Pdftotext string
	MaxChars  int
	Timeout   time.Duration
}

// FilesConfig holds the locations of the ledger and diagnostic log
type FilesConfig struct {
	Ledger  string
	DiagLog string
}

// BatchConfig holds interactive batch settings
type BatchConfig struct {
	ConfirmThreshold int
	WatchDebounce    time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			URL:         getEnv("LLM_URL", "http://localhost:1234/v1/chat/completions"),
			Model:       getEnv("LLM_MODEL", "gemma-3-27b-it-qat"),
			APIKey:      getEnv("LLM_API_KEY", ""),
			MaxTokens:   getEnvAsInt("LLM_MAX_TOKENS", 500),
			Timeout:     getEnvAsDuration("LLM_TIMEOUT", 120*time.Second),
		},
		Extract: ExtractConfig{
			Pdftotext: getEnv("PDFTOTEXT_BIN", "pdftotext"),
			MaxChars:  getEnvAsInt("EXTRACT_MAX_CHARS", constants.DefaultMaxChars),
			Timeout:   getEnvAsDuration("EXTRACT_TIMEOUT", 60*time.Second),
		},
		Files: FilesConfig{
			Ledger:  getEnv("LEDGER_PATH", constants.DefaultLedgerFile),
			DiagLog: getEnv("DIAG_LOG_PATH", constants.DefaultDiagLogFile),
		},
		Batch: BatchConfig{
			ConfirmThreshold: getEnvAsInt("CONFIRM_THRESHOLD", 50),
			WatchDebounce:    getEnvAsDuration("WATCH_DEBOUNCE", 2*time.Second),
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
	v := NewValidator().
		Field("LLM_URL", c.LLM.URL, Required, HTTPURL).
		Field("LLM_MODEL", c.LLM.Model, Required).
		Field("LLM_MAX_TOKENS", c.LLM.MaxTokens, Positive).
		Field("LLM_TIMEOUT", c.LLM.Timeout, Positive).
		Field("EXTRACT_MAX_CHARS", c.Extract.MaxChars, Positive).
		Field("LEDGER_PATH", c.Files.Ledger, Required)
	if err := v.Error(); err != nil {
		return NewAppError(CodeConfig, "invalid configuration", fmt.Errorf("%w: %w", ErrValidation, err))
	}
	return nil
}
