package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Reporting pipeline configuration
	Reporting ReportingConfig

	// Rate limiting configuration
	RateLimit RateLimitConfig

	// Logging configuration
	Logging LoggingConfig

	// Application metadata
	App AppConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// ReportingConfig holds the default aggregation settings. Per-request
// settings payloads override these defaults field by field.
type ReportingConfig struct {
	TPPCapacityMax      float64
	TPPOptimalMax       float64
	TPPLimitMax         float64
	CompareWindowMonths int
	MaxUploadBytes      int64
	CacheTTL            time.Duration
	CacheSweepInterval  time.Duration
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	BurstSize         int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// AppConfig holds application metadata
type AppConfig struct {
	Name        string
	Version     string
	Environment string
	CORSOrigins []string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnvOrDefault("SERVER_PORT", ":8080"),
			ReadTimeout:     getDurationOrDefault("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationOrDefault("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:     getDurationOrDefault("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDurationOrDefault("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Reporting: ReportingConfig{
			TPPCapacityMax:      getFloatOrDefault("REPORT_TPP_CAPACITY_MAX", 40),
			TPPOptimalMax:       getFloatOrDefault("REPORT_TPP_OPTIMAL_MAX", 70),
			TPPLimitMax:         getFloatOrDefault("REPORT_TPP_LIMIT_MAX", 95),
			CompareWindowMonths: getIntOrDefault("REPORT_COMPARE_WINDOW_MONTHS", 12),
			MaxUploadBytes:      getInt64OrDefault("REPORT_MAX_UPLOAD_BYTES", 20<<20),
			CacheTTL:            getDurationOrDefault("REPORT_CACHE_TTL", 10*time.Minute),
			CacheSweepInterval:  getDurationOrDefault("REPORT_CACHE_SWEEP_INTERVAL", time.Minute),
		},
		RateLimit: RateLimitConfig{
			Enabled:           getBoolOrDefault("RATE_LIMIT_ENABLED", true),
			RequestsPerSecond: getFloatOrDefault("RATE_LIMIT_RPS", 10),
			BurstSize:         getIntOrDefault("RATE_LIMIT_BURST", 20),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
		},
		App: AppConfig{
			Name:        getEnvOrDefault("APP_NAME", "care-teams-dashboard"),
			Version:     getEnvOrDefault("APP_VERSION", "dev"),
			Environment: getEnvOrDefault("APP_ENV", "development"),
			CORSOrigins: getStringSliceOrDefault("CORS_ORIGINS", []string{"*"}),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs []string

	if c.Reporting.MaxUploadBytes <= 0 {
		errs = append(errs, "REPORT_MAX_UPLOAD_BYTES must be positive")
	}

	if c.Reporting.CacheTTL <= 0 {
		errs = append(errs, "REPORT_CACHE_TTL must be positive")
	}

	switch c.Reporting.CompareWindowMonths {
	case 3, 6, 12:
	default:
		errs = append(errs, "REPORT_COMPARE_WINDOW_MONTHS must be 3, 6 or 12")
	}

	if c.App.Environment == "production" {
		for _, origin := range c.App.CORSOrigins {
			if origin == "*" {
				errs = append(errs, "CORS_ORIGINS must not contain * in production")
			}
		}
	}

	if len(errs) > 0 {
		return errors.New("configuration errors:\n  - " + strings.Join(errs, "\n  - "))
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getStringSliceOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}

// String returns a string representation of the config (safe for logging)
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Server: %s, CompareWindow: %dm, UploadLimit: %d, RateLimit: %v, Environment: %s}",
		c.Server.Port,
		c.Reporting.CompareWindowMonths,
		c.Reporting.MaxUploadBytes,
		c.RateLimit.Enabled,
		c.App.Environment,
	)
}
