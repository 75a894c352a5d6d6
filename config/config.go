package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const defaultJWTSecret = "dev-only-secret-change-me"

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Object storage for recipe images
	S3Bucket  string
	AWSRegion string

	// Logging
	LogLevel  string
	LogFormat string

	// Similar-recipe lookups
	RecommendLimit         int
	RecommendMaxLimit      int
	RecommendMaxCandidates int
	RecommendWorkers       int
	RecommendCacheTTL      time.Duration
}

// lookupFunc resolves a setting by its environment variable name.
type lookupFunc func(envVar string) string

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	var lookup lookupFunc
	switch env {
	case CI:
		lookup = os.Getenv
	case Development, Test:
		lookup = envThenSecret
	case Production:
		lookup = secretThenEnv
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	cfg := defaults(env)
	if err := cfg.apply(lookup); err != nil {
		return nil, fmt.Errorf("failed to load %s configuration: %w", env, err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// defaults returns the baseline configuration for env.
func defaults(env Environment) *Config {
	cfg := &Config{
		ServerPort:             "8080",
		ServerHost:             "0.0.0.0",
		DBDriver:               "postgres",
		DBHost:                 "localhost",
		DBPort:                 "5432",
		DBUser:                 "postgres",
		DBName:                 "recipes",
		DBSSLMode:              "disable",
		SQLitePath:             "recipes.db",
		RedisHost:              "localhost",
		RedisPort:              "6379",
		LogLevel:               "info",
		LogFormat:              "json",
		RecommendLimit:         6,
		RecommendMaxLimit:      50,
		RecommendMaxCandidates: 1000,
		RecommendWorkers:       4,
		RecommendCacheTTL:      10 * time.Minute,
	}

	switch env {
	case Development:
		cfg.DBPassword = "postgres"
		cfg.JWTSecret = defaultJWTSecret
		cfg.LogLevel = "debug"
		cfg.LogFormat = "console"
	case Test:
		cfg.DBDriver = "sqlite"
		cfg.SQLitePath = "file::memory:?cache=shared"
		cfg.JWTSecret = "test-secret"
		cfg.LogLevel = "warn"
	}

	return cfg
}

// apply overlays every setting lookup can resolve onto cfg.
func (cfg *Config) apply(lookup lookupFunc) error {
	strs := map[string]*string{
		"SERVER_PORT":    &cfg.ServerPort,
		"SERVER_HOST":    &cfg.ServerHost,
		"DB_DRIVER":      &cfg.DBDriver,
		"DB_HOST":        &cfg.DBHost,
		"DB_PORT":        &cfg.DBPort,
		"DB_USER":        &cfg.DBUser,
		"DB_PASSWORD":    &cfg.DBPassword,
		"DB_NAME":        &cfg.DBName,
		"DB_SSL_MODE":    &cfg.DBSSLMode,
		"SQLITE_PATH":    &cfg.SQLitePath,
		"REDIS_HOST":     &cfg.RedisHost,
		"REDIS_PORT":     &cfg.RedisPort,
		"REDIS_PASSWORD": &cfg.RedisPassword,
		"REDIS_URL":      &cfg.RedisURL,
		"JWT_SECRET":     &cfg.JWTSecret,
		"S3_BUCKET_NAME": &cfg.S3Bucket,
		"AWS_REGION":     &cfg.AWSRegion,
		"LOG_LEVEL":      &cfg.LogLevel,
		"LOG_FORMAT":     &cfg.LogFormat,
	}
	for name, dst := range strs {
		if v := lookup(name); v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"REDIS_DB":                 &cfg.RedisDB,
		"RECOMMEND_LIMIT":          &cfg.RecommendLimit,
		"RECOMMEND_MAX_LIMIT":      &cfg.RecommendMaxLimit,
		"RECOMMEND_MAX_CANDIDATES": &cfg.RecommendMaxCandidates,
		"RECOMMEND_WORKERS":        &cfg.RecommendWorkers,
	}
	for name, dst := range ints {
		v := lookup(name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return ValidationError{Field: name, Message: fmt.Sprintf("not an integer: %q", v)}
		}
		*dst = n
	}

	if v := lookup("RECOMMEND_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return ValidationError{Field: "RECOMMEND_CACHE_TTL", Message: fmt.Sprintf("not a duration: %q", v)}
		}
		cfg.RecommendCacheTTL = d
	}

	return nil
}

// PostgresDSN builds a lib/pq style connection string.
func (cfg *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
	)
}

// RedisEnabled reports whether enough Redis settings exist to attempt a connection.
func (cfg *Config) RedisEnabled() bool {
	return cfg.RedisURL != "" || (cfg.RedisHost != "" && cfg.RedisPort != "")
}

func envThenSecret(name string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return readSecret(strings.ToLower(name))
}

func secretThenEnv(name string) string {
	if v := readSecret(strings.ToLower(name)); v != "" {
		return v
	}
	return os.Getenv(name)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
