package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// External APIs
	DART   DARTConfig
	Gemini GeminiConfig

	// Data files
	Data DataConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DARTConfig holds DART (전자공시) API configuration
type DARTConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// GeminiConfig holds Gemini API configuration for /api/explain
type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// DataConfig holds paths for the company reference dataset and store
type DataConfig struct {
	CorpCodesPath string
	StorePath     string
	BatchSize     int

	// Optional cron schedule for reloading the directory in a long-running
	// server. Empty disables the refresh job.
	RefreshCron string
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "4500"),
		Env:  getEnv("ENV", "development"),

		DART: DARTConfig{
			APIKey:  getEnv("DART_API_KEY", ""),
			BaseURL: getEnv("DART_BASE_URL", "https://opendart.fss.or.kr"),
			Timeout: getEnvAsDuration("DART_TIMEOUT", "10s"),
		},

		Gemini: GeminiConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			Model:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			Timeout: getEnvAsDuration("GEMINI_TIMEOUT", "30s"),
		},

		Data: DataConfig{
			CorpCodesPath: getEnv("CORP_CODES_PATH", filepath.Join("data", "corpCodes.json")),
			StorePath:     getEnv("COMPANY_STORE_PATH", filepath.Join("data", "companies.db")),
			BatchSize:     getEnvAsInt("COMPANY_STORE_BATCH_SIZE", 1000),
			RefreshCron:   getEnv("DIRECTORY_REFRESH_CRON", ""),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set.
// DART_API_KEY is intentionally not required here: a missing key degrades
// /api/financial to a per-request 400 instead of failing startup.
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Data.BatchSize <= 0 {
		return fmt.Errorf("COMPANY_STORE_BATCH_SIZE must be positive")
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	// Also try relative to executable
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
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
