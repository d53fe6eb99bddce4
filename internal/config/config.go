// Package config loads and validates application configuration from
// environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `env:"PORT" env-default:"8080"`

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string `env:"DATABASE_URL" env-required:"true"`

	// LogLevel controls the minimum log level.
	// Valid values: debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	// CORSOriginsRaw is a comma-separated list of allowed cross-origin
	// request origins. Parsed into CORSOrigins by Load.
	CORSOriginsRaw string `env:"CORS_ORIGINS" env-default:"http://localhost:5173"`

	// JWTSecret signs and verifies HS256 bearer tokens. Required unless
	// DebugUserID is set.
	JWTSecret string `env:"AUTH_JWT_SECRET"`

	// JWTIssuer, when non-empty, is matched against the token's iss claim.
	JWTIssuer string `env:"AUTH_JWT_ISSUER"`

	// DebugUserID, when set to a UUID, bypasses token validation and treats
	// every request as coming from that user. Local development only.
	DebugUserID string `env:"AUTH_DEBUG_USER_ID"`

	// MaxBodyBytes caps the size of incoming request bodies.
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" env-default:"1048576"`

	// CORSOrigins is parsed from CORSOriginsRaw.
	CORSOrigins []string `env:"-"`
}

// Load reads configuration from environment variables and returns a Config.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}

	cfg.CORSOrigins = splitCSV(cfg.CORSOriginsRaw)

	if cfg.JWTSecret == "" && cfg.DebugUserID == "" {
		return Config{}, fmt.Errorf("config.Load: either AUTH_JWT_SECRET or AUTH_DEBUG_USER_ID must be set")
	}

	return cfg, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring
// empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
