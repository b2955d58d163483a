// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config maps environment variables onto a typed [Config].

It uses 'caarlos0/env' for parsing and defaults, then applies the cross-field
rules that a struct tag cannot express (secret strength, Redis availability).

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

The loaded value is read-only and handed to constructors explicitly. In
particular the session signing secret is never kept in a package variable.
*/
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// MinSessionSecretLength is the shortest HS256 secret accepted at startup.
const MinSessionSecretLength = 32

// # Configuration Schema

// Config holds all runtime configuration for the API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Honour X-Real-IP / X-Forwarded-For. Enable only behind a proxy that
	// overwrites them; otherwise clients choose their own rate-limit bucket.
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL   string `env:"DATABASE_URL,required"`
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value store (Redis). Only needed for the session denylist.
	RedisURL string `env:"REDIS_URL"`

	// Session credential
	SessionSecret     string        `env:"SESSION_SECRET,required"`
	SessionTTL        time.Duration `env:"SESSION_TTL"         envDefault:"1h"`
	SessionCookieName string        `env:"SESSION_COOKIE_NAME" envDefault:"token"`
	SessionDenylist   bool          `env:"SESSION_DENYLIST"    envDefault:"false"`

	// Cross-Origin Resource Sharing
	ClientOrigins []string `env:"CLIENT_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	// Media hosting (S3-compatible object storage)
	S3Bucket          string `env:"S3_BUCKET"`
	S3Region          string `env:"S3_REGION"            envDefault:"auto"`
	S3Endpoint        string `env:"S3_ENDPOINT"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	S3PublicBaseURL   string `env:"S3_PUBLIC_BASE_URL"`
	S3KeyPrefix       string `env:"S3_KEY_PREFIX"        envDefault:"dish-diary"`

	// Recipe images
	UploadMaxBytes     int64  `env:"UPLOAD_MAX_BYTES"     envDefault:"10485760"`
	DefaultRecipeImage string `env:"DEFAULT_RECIPE_IMAGE" envDefault:"/default-recipe.jpg"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct and validates it.
func Load() (*Config, error) {
	cfg := &Config{}

	// Fails if any field marked 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the rules that span several fields.
func (c *Config) Validate() error {
	var errs []error

	if len(c.SessionSecret) < MinSessionSecretLength {
		errs = append(errs, fmt.Errorf("config: SESSION_SECRET must be at least %d bytes", MinSessionSecretLength))
	}

	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("config: SESSION_TTL must be positive"))
	}

	if c.SessionDenylist && c.RedisURL == "" {
		errs = append(errs, errors.New("config: SESSION_DENYLIST requires REDIS_URL"))
	}

	if c.UploadMaxBytes <= 0 {
		errs = append(errs, errors.New("config: UPLOAD_MAX_BYTES must be positive"))
	}

	if c.S3Bucket != "" && c.S3PublicBaseURL == "" {
		errs = append(errs, errors.New("config: S3_PUBLIC_BASE_URL is required when S3_BUCKET is set"))
	}

	return errors.Join(errs...)
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// MediaEnabled reports whether image uploads can reach an object store.
func (c *Config) MediaEnabled() bool {
	return c.S3Bucket != ""
}

// AllowedOrigins returns the trimmed, non-empty CORS origins.
func (c *Config) AllowedOrigins() []string {
	origins := make([]string, 0, len(c.ClientOrigins))
	for _, origin := range c.ClientOrigins {
		if trimmed := strings.TrimRight(strings.TrimSpace(origin), "/"); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
