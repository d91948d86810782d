package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/timex"
)

// parseEnv overlays environment variables. Unset values keep the current
// setting; unparsable values keep it too and are reported in the returned
// error.
//
//	ADDRESS                 HTTP bind address
//	DATABASE_DSN            PostgreSQL DSN
//	JWT_SECRET              access token secret
//	JWT_REFRESH_SECRET      refresh token secret
//	JWT_EXPIRES_IN          access token lifetime ("15m", "7d" or seconds)
//	JWT_REFRESH_EXPIRES_IN  refresh token lifetime
//	MAX_PAGE_SIZE           list "limit" cap
//	LOG_LEVEL               debug|info|warn|error
//	CORS_ALLOWED_ORIGINS    comma-separated origins, "*" for any
//	HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_IDLE_TIMEOUT, SHUTDOWN_TIMEOUT
func parseEnv(c *Config) error {
	var errs []error
	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"JWT_EXPIRES_IN", &c.AccessTokenValidityDuration},
		{"JWT_REFRESH_EXPIRES_IN", &c.RefreshTokenValidityDuration},
		{"HTTP_READ_TIMEOUT", &c.ReadTimeout},
		{"HTTP_WRITE_TIMEOUT", &c.WriteTimeout},
		{"HTTP_IDLE_TIMEOUT", &c.IdleTimeout},
		{"SHUTDOWN_TIMEOUT", &c.ShutdownTimeout},
	}

	c.EndpointAddrHTTP = getEnv("ADDRESS", c.EndpointAddrHTTP)
	c.DatabaseDSN = getEnv("DATABASE_DSN", c.DatabaseDSN)
	c.AccessTokenSecret = getEnv("JWT_SECRET", c.AccessTokenSecret)
	c.RefreshTokenSecret = getEnv("JWT_REFRESH_SECRET", c.RefreshTokenSecret)
	for _, d := range durations {
		if err := getEnvDuration(d.key, d.dst); err != nil {
			errs = append(errs, err)
		}
	}
	if err := getEnvInt("MAX_PAGE_SIZE", &c.MaxPageSize); err != nil {
		errs = append(errs, err)
	}
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		c.CORSAllowedOrigins = splitList(v)
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, dst *int) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("env %s: %w", key, err)
	}
	*dst = n
	return nil
}

func getEnvDuration(key string, dst *time.Duration) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	d, err := timex.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("env %s: %w", key, err)
	}
	*dst = d
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
