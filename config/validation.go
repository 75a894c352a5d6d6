package config

import (
	"errors"
	"fmt"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()

	var errs []error
	require := func(field, value string) {
		if value == "" {
			errs = append(errs, ValidationError{Field: field, Message: "is required"})
		}
	}

	require("SERVER_PORT", cfg.ServerPort)

	switch cfg.DBDriver {
	case "postgres":
		require("DB_HOST", cfg.DBHost)
		require("DB_PORT", cfg.DBPort)
		require("DB_USER", cfg.DBUser)
		require("DB_NAME", cfg.DBName)
		if env == CI || env == Production {
			require("DB_PASSWORD", cfg.DBPassword)
		}
	case "sqlite":
		require("SQLITE_PATH", cfg.SQLitePath)
		if env == Production {
			errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: "sqlite is not supported in production"})
		}
	default:
		errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unsupported driver %q", cfg.DBDriver)})
	}

	require("JWT_SECRET", cfg.JWTSecret)
	if env == Production && cfg.JWTSecret == defaultJWTSecret {
		errs = append(errs, ValidationError{Field: "JWT_SECRET", Message: "must not use the development default"})
	}

	if cfg.RecommendLimit < 1 {
		errs = append(errs, ValidationError{Field: "RECOMMEND_LIMIT", Message: "must be at least 1"})
	}
	if cfg.RecommendMaxLimit < cfg.RecommendLimit {
		errs = append(errs, ValidationError{Field: "RECOMMEND_MAX_LIMIT", Message: "must not be below RECOMMEND_LIMIT"})
	}
	if cfg.RecommendMaxCandidates < 1 {
		errs = append(errs, ValidationError{Field: "RECOMMEND_MAX_CANDIDATES", Message: "must be at least 1"})
	}
	if cfg.RecommendCacheTTL < 0 {
		errs = append(errs, ValidationError{Field: "RECOMMEND_CACHE_TTL", Message: "must not be negative"})
	}

	return errors.Join(errs...)
}
