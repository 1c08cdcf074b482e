package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	GoEnv string `env:"GO_ENV" default:"development"`

	// Service Ports
	HTTPPort       int           `env:"HTTP_PORT" default:"5000"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" default:"5s"`

	// Database
	DatabaseURL string `env:"DATABASE_URL" required:"true"`

	// Authentication
	JWTSecret      string        `env:"JWT_SECRET" required:"true"`
	JWTExpiry      time.Duration `env:"JWT_EXPIRY" default:"168h"`
	AdminSecretKey string        `env:"ADMIN_SECRET_KEY"`
	AuthRateLimit  int           `env:"AUTH_RATE_LIMIT" default:"5"`
	AuthRateBurst  int           `env:"AUTH_RATE_BURST" default:"10"`

	// Redis (token revocation)
	RedisURL      string `env:"REDIS_URL" default:"redis://localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// Asset storage
	MinioEndpoint   string `env:"MINIO_ENDPOINT"`
	MinioAccessKey  string `env:"MINIO_ACCESS_KEY"`
	MinioSecretKey  string `env:"MINIO_SECRET_KEY"`
	MinioBucket     string `env:"MINIO_BUCKET" default:"books"`
	MinioUseSSL     bool   `env:"MINIO_USE_SSL" default:"false"`
	AssetPublicURL  string `env:"ASSET_PUBLIC_URL"`
	DefaultCoverURL string `env:"DEFAULT_COVER_URL"`
	UploadMaxSize   string `env:"UPLOAD_MAX_SIZE" default:"4MB"`

	// Monitoring
	PrometheusEnabled bool `env:"PROMETHEUS_ENABLED" default:"false"`

	// Development
	LogLevel    string   `env:"LOG_LEVEL" default:"info"`
	LogFormat   string   `env:"LOG_FORMAT" default:"json"`
	CORSOrigins []string `env:"CORS_ORIGINS" default:"http://localhost:5173"`
}

const defaultCoverURL = "https://res.cloudinary.com/dnwfwdumf/image/upload/v1748079152/03_janwsq.jpg"

// LoadConfig loads configuration from environment variables, reading .env first when present.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		// system env vars are still used
		slog.Debug("dotenv_not_loaded", "error", err)
	}

	config := &Config{}

	loadEnvString(&config.GoEnv, "GO_ENV", "development")

	if err := loadEnvInt(&config.HTTPPort, "HTTP_PORT", 5000); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.RequestTimeout, "REQUEST_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}

	// Database
	if err := loadEnvStringRequired(&config.DatabaseURL, "DATABASE_URL"); err != nil {
		return nil, err
	}

	// Authentication
	if err := loadEnvStringRequired(&config.JWTSecret, "JWT_SECRET"); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.JWTExpiry, "JWT_EXPIRY", 7*24*time.Hour); err != nil {
		return nil, err
	}
	loadEnvString(&config.AdminSecretKey, "ADMIN_SECRET_KEY", "")
	if err := loadEnvInt(&config.AuthRateLimit, "AUTH_RATE_LIMIT", 5); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.AuthRateBurst, "AUTH_RATE_BURST", 10); err != nil {
		return nil, err
	}

	// Redis
	loadEnvString(&config.RedisURL, "REDIS_URL", "redis://localhost:6379")
	loadEnvString(&config.RedisPassword, "REDIS_PASSWORD", "")

	// Asset storage
	loadEnvString(&config.MinioEndpoint, "MINIO_ENDPOINT", "")
	loadEnvString(&config.MinioAccessKey, "MINIO_ACCESS_KEY", "")
	loadEnvString(&config.MinioSecretKey, "MINIO_SECRET_KEY", "")
	loadEnvString(&config.MinioBucket, "MINIO_BUCKET", "books")
	if err := loadEnvBool(&config.MinioUseSSL, "MINIO_USE_SSL", false); err != nil {
		return nil, err
	}
	loadEnvString(&config.AssetPublicURL, "ASSET_PUBLIC_URL", "")
	loadEnvString(&config.DefaultCoverURL, "DEFAULT_COVER_URL", defaultCoverURL)
	loadEnvString(&config.UploadMaxSize, "UPLOAD_MAX_SIZE", "4MB")

	// Monitoring
	if err := loadEnvBool(&config.PrometheusEnabled, "PROMETHEUS_ENABLED", false); err != nil {
		return nil, err
	}

	// Development
	loadEnvString(&config.LogLevel, "LOG_LEVEL", "info")
	loadEnvString(&config.LogFormat, "LOG_FORMAT", "json")

	// FRONTEND_URL is the older single-origin setting
	defaultOrigins := []string{"http://localhost:5173"}
	if frontend := strings.TrimSpace(os.Getenv("FRONTEND_URL")); frontend != "" {
		defaultOrigins = []string{frontend}
	}
	loadEnvStringSlice(&config.CORSOrigins, "CORS_ORIGINS", defaultOrigins)

	return config, nil
}

// Helper functions for type conversion and validation
func loadEnvString(target *string, key, defaultValue string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	} else {
		*target = defaultValue
	}
}

func loadEnvStringRequired(target *string, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return fmt.Errorf("required environment variable %s is not set", key)
	}
	*target = value
	return nil
}

func loadEnvInt(target *int, key string, defaultValue int) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %w", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvBool(target *bool, key string, defaultValue bool) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %w", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvDuration(target *time.Duration, key string, defaultValue time.Duration) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %w", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvStringSlice(target *[]string, key string, defaultValue []string) {
	value := os.Getenv(key)
	if value == "" {
		*target = defaultValue
		return
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	*target = out
}

// Validate performs validation on the loaded configuration
func (c *Config) Validate() error {
	var errs []string

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errs = append(errs, "HTTP_PORT must be between 1 and 65535")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", ")))
	}

	validLogFormats := []string{"text", "json"}
	if !contains(validLogFormats, c.LogFormat) {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT must be one of: %s", strings.Join(validLogFormats, ", ")))
	}

	if c.IsProduction() && len(c.JWTSecret) < 32 {
		errs = append(errs, "JWT_SECRET should be at least 32 characters long")
	}

	if c.JWTExpiry <= 0 {
		errs = append(errs, "JWT_EXPIRY must be positive")
	}

	if c.AuthRateLimit < 1 || c.AuthRateBurst < 1 {
		errs = append(errs, "AUTH_RATE_LIMIT and AUTH_RATE_BURST must be positive")
	}

	if _, err := c.UploadMaxBytes(); err != nil {
		errs = append(errs, err.Error())
	}

	if c.MinioEndpoint != "" && (c.MinioAccessKey == "" || c.MinioSecretKey == "") {
		errs = append(errs, "MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required when MINIO_ENDPOINT is set")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// RedisAddr strips the scheme from REDIS_URL so it can be fed to redis.Options.Addr.
func (c *Config) RedisAddr() string {
	addr := strings.TrimPrefix(c.RedisURL, "redis://")
	return strings.TrimPrefix(addr, "rediss://")
}

// UploadMaxBytes parses UPLOAD_MAX_SIZE ("4MB", "512KB", "1048576").
func (c *Config) UploadMaxBytes() (int64, error) {
	raw := strings.ToUpper(strings.TrimSpace(c.UploadMaxSize))
	multiplier := int64(1)
	switch {
	case strings.HasSuffix(raw, "MB"):
		multiplier = 1 << 20
		raw = strings.TrimSuffix(raw, "MB")
	case strings.HasSuffix(raw, "KB"):
		multiplier = 1 << 10
		raw = strings.TrimSuffix(raw, "KB")
	case strings.HasSuffix(raw, "B"):
		raw = strings.TrimSuffix(raw, "B")
	}
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("UPLOAD_MAX_SIZE %q is not a valid size", c.UploadMaxSize)
	}
	return n * multiplier, nil
}

// Helper function to check if slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
